package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/aaeabdo/sloburn/config"
	"github.com/aaeabdo/sloburn/engine"
	"github.com/aaeabdo/sloburn/model"
	"github.com/aaeabdo/sloburn/simulate"
	"github.com/aaeabdo/sloburn/ui"
)

// Version is set at build time via ldflags.
var Version = "0.1.0"

// Config holds CLI configuration after flags are parsed.
type Config struct {
	Interval    time.Duration
	Speed       float64
	Seed        int64
	Scenario    string
	HistorySize int
	AlertCap    int
	Tier        string
	TiersPath   string
	PromAddr    string
	LogPath     string
	WatchMode   bool
	WatchCount  int
	JSONMode    bool
	ExportPath  string
	Minutes     float64
	RecordPath  string
	ReplayPath  string
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `sloburn v%s — SLO burn-rate alerting lab on a compressed clock

Usage:
  sloburn [OPTIONS] [INTERVAL]

Modes:
  (default)         Interactive TUI (bubbletea, fullscreen)
  -watch            CLI output mode — prints one status line per tick
  -json             Fast-forward -minutes demo minutes, print status JSON, exit
  -export FILE      Fast-forward -minutes demo minutes, write event history JSON, exit
  -record FILE      Run TUI while recording session frames to FILE
  -replay FILE      Replay a recorded session through the TUI (read-only)
  -version          Print version and exit

Options:
  -interval N       Wall seconds per tick (default: 1)
  -speed F          Demo seconds per wall second (default: 60 — 1s becomes 1min)
  -seed N           Traffic generator seed (0 = time-based)
  -scenario NAME    steady, latency-creep, error-spike, outage, surge, quiet
  -history N        Events kept in the ring buffer (default: 3000)
  -tier NAME        Starting service tier (default: gold)
  -tiers FILE       YAML tier catalog overriding the built-ins
  -prom ADDR        Serve Prometheus metrics on ADDR (e.g. :9090)
  -log FILE         Write structured logs to FILE
  -count N          Iterations for -watch (0 = infinite)
  -minutes F        Demo minutes to simulate for -json / -export (default: 30)

Positional:
  INTERVAL          First positional arg sets interval: sloburn 5 = sloburn -interval 5

Examples:
  sloburn                              TUI, steady traffic, x60 clock
  sloburn -scenario error-spike        Watch the fast windows catch a spike
  sloburn -watch -count 20             Twenty status lines, then exit
  sloburn -json -minutes 60 | jq '.status.rules'
  sloburn -export events.json -scenario outage -seed 7
  sloburn -record session.jsonl -prom :9090
  sloburn -replay session.jsonl
`, Version)
}

// Run parses flags and starts the application.
func Run() error {
	prefs := config.Load()

	var cfg Config
	var intervalSec int
	var showVersion bool

	flag.IntVar(&intervalSec, "interval", prefs.IntervalSec, "Wall seconds per tick")
	flag.Float64Var(&cfg.Speed, "speed", prefs.Speed, "Demo seconds per wall second")
	flag.Int64Var(&cfg.Seed, "seed", 0, "Traffic generator seed (0 = time-based)")
	flag.StringVar(&cfg.Scenario, "scenario", prefs.Scenario, "Starting traffic scenario")
	flag.IntVar(&cfg.HistorySize, "history", prefs.HistorySize, "Events kept in the ring buffer")
	flag.StringVar(&cfg.Tier, "tier", prefs.DefaultTier, "Starting service tier")
	flag.StringVar(&cfg.TiersPath, "tiers", prefs.TiersPath, "YAML tier catalog path")
	flag.StringVar(&cfg.PromAddr, "prom", prefs.PromAddr, "Prometheus listen address (empty = off)")
	flag.StringVar(&cfg.LogPath, "log", prefs.LogPath, "Structured log file path")
	flag.BoolVar(&cfg.WatchMode, "watch", false, "CLI output mode (no TUI)")
	flag.IntVar(&cfg.WatchCount, "count", 0, "Iterations for -watch (0=infinite)")
	flag.BoolVar(&cfg.JSONMode, "json", false, "Fast-forward and print status JSON")
	flag.StringVar(&cfg.ExportPath, "export", "", "Fast-forward and write event history JSON to FILE")
	flag.Float64Var(&cfg.Minutes, "minutes", 30, "Demo minutes to simulate for -json/-export")
	flag.StringVar(&cfg.RecordPath, "record", "", "Record session frames to FILE")
	flag.StringVar(&cfg.ReplayPath, "replay", "", "Replay a recorded session file")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")

	flag.Usage = printUsage
	flag.Parse()

	if showVersion {
		fmt.Printf("sloburn v%s\n", Version)
		return nil
	}

	// Support positional arg for interval: `sloburn 5` = `sloburn -interval 5`
	if args := flag.Args(); len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			intervalSec = n
		}
	}
	if intervalSec < 1 {
		intervalSec = 1
	}
	cfg.Interval = time.Duration(intervalSec) * time.Second
	if cfg.Speed <= 0 {
		cfg.Speed = 60
	}
	cfg.AlertCap = prefs.AlertCap
	if cfg.AlertCap < 1 {
		cfg.AlertCap = 500
	}

	if !simulate.Valid(cfg.Scenario) {
		var names []string
		for _, k := range simulate.Kinds() {
			names = append(names, string(k))
		}
		fmt.Fprintf(os.Stderr, "Error: unknown scenario %q\n", cfg.Scenario)
		fmt.Fprintf(os.Stderr, "Valid scenarios: %s\n\n", strings.Join(names, ", "))
		printUsage()
		os.Exit(1)
	}

	if cfg.ReplayPath != "" {
		return runReplay(cfg)
	}

	headless := cfg.WatchMode || cfg.JSONMode || cfg.ExportPath != ""
	logger, closeLog, err := newLogger(cfg.LogPath, headless && !cfg.JSONMode)
	if err != nil {
		return err
	}
	defer closeLog()

	session, err := buildSession(cfg, logger)
	if err != nil {
		return err
	}

	var metrics *engine.Metrics
	if cfg.PromAddr != "" {
		metrics = engine.NewMetrics()
		session.ticker.WithMetrics(metrics)
		go serveMetrics(cfg.PromAddr, metrics, logger)
	}

	switch {
	case cfg.JSONMode:
		return runJSON(session, cfg)
	case cfg.ExportPath != "":
		return runExport(session, cfg)
	case cfg.WatchMode:
		return runWatch(session, cfg)
	}

	// TUI, optionally recording.
	if cfg.RecordPath != "" {
		f, err := os.Create(cfg.RecordPath)
		if err != nil {
			return fmt.Errorf("cannot create record file: %w", err)
		}
		defer f.Close()
		session.ticker.WithRecorder(engine.NewRecorder(f))
	}

	m := ui.NewModel(session.ticker, session.eng, session.gen,
		session.catalog, session.tierIdx, cfg.Interval, cfg.Speed)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// session bundles the live pipeline: generator -> engine -> ticker.
type session struct {
	gen     *simulate.Generator
	eng     *engine.Engine
	ticker  *engine.LiveTicker
	catalog []model.Tier
	tierIdx int
}

func buildSession(cfg Config, logger zerolog.Logger) (*session, error) {
	catalog, err := config.LoadCatalog(cfg.TiersPath)
	if err != nil {
		return nil, err
	}
	tier, ok := config.FindTier(catalog, cfg.Tier)
	if !ok {
		var names []string
		for _, t := range catalog {
			names = append(names, t.Name)
		}
		return nil, fmt.Errorf("unknown tier %q (catalog has: %s)", cfg.Tier, strings.Join(names, ", "))
	}
	tierIdx := 0
	for i, t := range catalog {
		if t.Name == tier.Name {
			tierIdx = i
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	startMs := time.Now().UnixMilli()

	pol := model.Policy{
		BakeSLI:            true,
		AvailabilityTarget: tier.AvailabilityTarget,
		LatencyTargetMs:    tier.LatencyTargetMs,
	}
	eng := engine.New(cfg.HistorySize, cfg.AlertCap, pol, logger)
	eng.SetTier(tier, startMs)

	gen := simulate.New(simulate.Kind(cfg.Scenario), seed, startMs, logger)
	stepSec := cfg.Speed * cfg.Interval.Seconds()
	ticker := engine.NewLiveTicker(gen, eng, stepSec)

	return &session{gen: gen, eng: eng, ticker: ticker, catalog: catalog, tierIdx: tierIdx}, nil
}

// newLogger builds the zerolog sink: a file when -log is set, console
// stderr for headless modes, and discard for the TUI (stderr would
// corrupt the screen).
func newLogger(path string, console bool) (zerolog.Logger, func(), error) {
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return zerolog.Nop(), func() {}, fmt.Errorf("cannot open log file: %w", err)
		}
		logger := zerolog.New(f).With().Timestamp().Logger()
		return logger, func() { _ = f.Close() }, nil
	}
	if console {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		return logger, func() {}, nil
	}
	return zerolog.Nop(), func() {}, nil
}

func serveMetrics(addr string, metrics *engine.Metrics, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	logger.Info().Str("addr", addr).Msg("serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error().Err(err).Msg("metrics server stopped")
	}
}

// fastForward runs the session without sleeping until the requested
// demo minutes have elapsed.
func fastForward(s *session, cfg Config) engine.Frame {
	stepSec := cfg.Speed * cfg.Interval.Seconds()
	ticks := int(cfg.Minutes * 60 / stepSec)
	if ticks < 1 {
		ticks = 1
	}
	var last engine.Frame
	for i := 0; i < ticks; i++ {
		last, _ = s.ticker.Tick()
	}
	return last
}

// runJSON fast-forwards the simulation and prints the final frame.
func runJSON(s *session, cfg Config) error {
	frame := fastForward(s, cfg)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(frame)
}

// runExport fast-forwards the simulation and writes the event history.
func runExport(s *session, cfg Config) error {
	fastForward(s, cfg)
	f, err := os.Create(cfg.ExportPath)
	if err != nil {
		return fmt.Errorf("cannot create export file: %w", err)
	}
	defer f.Close()
	if err := s.eng.ExportEvents(f); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", cfg.ExportPath)
	return nil
}

// runWatch prints one status line per tick.
func runWatch(s *session, cfg Config) error {
	for i := 0; cfg.WatchCount == 0 || i < cfg.WatchCount; i++ {
		if i > 0 {
			time.Sleep(cfg.Interval)
		}
		frame, _ := s.ticker.Tick()
		printWatchLine(frame)
	}
	return nil
}

func printWatchLine(f engine.Frame) {
	st := f.Status
	var rules []string
	for _, r := range st.Rules {
		mark := " "
		if r.Firing {
			mark = "*"
		}
		rules = append(rules, fmt.Sprintf("%s%s=%s/%s",
			mark, r.Rule.Name, fmtBurnPlain(r.Short.Burn), fmtBurnPlain(r.Long.Burn)))
	}
	open := 0
	for i := range st.Alerts {
		if st.Alerts[i].Open() {
			open++
		}
	}
	fmt.Printf("%s  %-13s %s  open=%d  events=%d  score=%.0f%s\n",
		clockOf(st.NowMs), f.Scenario, strings.Join(rules, " "), open,
		st.Ingested.Total, st.Score.Score, st.Score.Grade)
}

func fmtBurnPlain(burn float64) string {
	if burn >= 1e6 {
		return "inf"
	}
	return fmt.Sprintf("%.1f", burn)
}

func clockOf(ms int64) string {
	s := ms / 1000
	return fmt.Sprintf("%02d:%02d:%02d", s/3600%24, s/60%60, s%60)
}

// runReplay replays a recorded session file through the TUI.
func runReplay(cfg Config) error {
	f, err := os.Open(cfg.ReplayPath)
	if err != nil {
		return fmt.Errorf("cannot open replay file: %w", err)
	}
	defer f.Close()

	player, err := engine.NewPlayer(f)
	if err != nil {
		return fmt.Errorf("cannot parse replay file: %w", err)
	}
	if player.Len() == 0 {
		return fmt.Errorf("replay file %s holds no frames", cfg.ReplayPath)
	}

	m := ui.NewReplayModel(player, cfg.Interval)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
