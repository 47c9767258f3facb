package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aaeabdo/sloburn/engine"
	"github.com/aaeabdo/sloburn/model"
	"github.com/aaeabdo/sloburn/simulate"
)

// Page identifies the current screen.
type Page int

const (
	PageDashboard Page = iota
	PageWindows
	PageAlerts
	PageEvents
	PagePolicy
	PageScore
	pageCount
)

var pageNames = []string{"Dashboard", "Windows", "Alerts", "Events", "Policy", "Score"}

// Availability targets the policy page steps through.
var availLadder = []float64{95, 98, 99, 99.5, 99.9, 99.95, 99.99}

type tickMsg time.Time

type frameMsg struct {
	frame engine.Frame
	ok    bool
}

// saveConfirmMsg is sent after an export completes.
type saveConfirmMsg struct {
	path string
	err  error
}

// series holds the rolling chart buffers the dashboard draws from.
type series struct {
	ts   []int64
	burn []float64 // short-window burn of the fastest rule
	bad  []float64 // contrast-window bad percentage
	cpu  []float64
}

const seriesCap = 240

func (s *series) push(f engine.Frame) {
	s.ts = append(s.ts, f.Status.NowMs)
	if len(f.Status.Rules) > 0 {
		s.burn = append(s.burn, f.Status.Rules[0].Short.Burn)
	} else {
		s.burn = append(s.burn, 0)
	}
	s.bad = append(s.bad, f.Status.Contrast.BadPercent)
	s.cpu = append(s.cpu, f.Status.Gauges.CPUPct)
	if len(s.ts) > seriesCap {
		s.ts = s.ts[1:]
		s.burn = s.burn[1:]
		s.bad = s.bad[1:]
		s.cpu = s.cpu[1:]
	}
}

func (s *series) span() (startMs, endMs int64) {
	if len(s.ts) == 0 {
		return 0, 0
	}
	return s.ts[0], s.ts[len(s.ts)-1]
}

// Model is the bubbletea model. In replay mode eng and sim are nil and
// every mutation key is disabled; the player drives the frames.
type Model struct {
	ticker   engine.Ticker
	eng      *engine.Engine
	sim      *simulate.Generator
	player   *engine.Player
	catalog  []model.Tier
	tierIdx  int
	interval time.Duration
	speed    float64

	width  int
	height int

	frame     engine.Frame
	haveFrame bool
	charts    series

	page     Page
	showHelp bool
	paused   bool

	alertSel    int
	eventScroll int

	saveMsg     string
	saveMsgTime time.Time
}

// NewModel creates the live TUI model.
func NewModel(ticker engine.Ticker, eng *engine.Engine, sim *simulate.Generator,
	catalog []model.Tier, tierIdx int, interval time.Duration, speed float64) Model {
	return Model{
		ticker:   ticker,
		eng:      eng,
		sim:      sim,
		catalog:  catalog,
		tierIdx:  tierIdx,
		interval: interval,
		speed:    speed,
	}
}

// NewReplayModel creates a read-only model that replays a session file.
func NewReplayModel(player *engine.Player, interval time.Duration) Model {
	return Model{
		ticker:   player,
		player:   player,
		interval: interval,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(m.interval), step(m.ticker))
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func step(ticker engine.Ticker) tea.Cmd {
	return func() tea.Msg {
		f, ok := ticker.Tick()
		return frameMsg{frame: f, ok: ok}
	}
}

// exportEvents saves the full event history to a JSON file.
func exportEvents(eng *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		path := fmt.Sprintf("sloburn-events-%s.json", time.Now().Format("20060102-150405"))
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return saveConfirmMsg{err: err}
		}
		defer f.Close()
		if err := eng.ExportEvents(f); err != nil {
			return saveConfirmMsg{err: err}
		}
		return saveConfirmMsg{path: path}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tickMsg:
		if m.paused {
			return m, nil
		}
		return m, tea.Batch(tick(m.interval), step(m.ticker))
	case frameMsg:
		if msg.ok && !m.paused {
			m.applyFrame(msg.frame)
		}
	case saveConfirmMsg:
		if msg.err != nil {
			m.saveMsg = fmt.Sprintf("Export failed: %v", msg.err)
		} else {
			m.saveMsg = fmt.Sprintf("Saved: %s", msg.path)
		}
		m.saveMsgTime = time.Now()
	}
	return m, nil
}

func (m *Model) applyFrame(f engine.Frame) {
	m.frame = f
	m.haveFrame = true
	m.charts.push(f)
	if max := len(f.Status.Alerts) - 1; m.alertSel > max {
		m.alertSel = 0
	}
}

// refreshStatus re-reads engine state after a mutation so the change
// shows before the next tick.
func (m *Model) refreshStatus() {
	if m.eng == nil {
		return
	}
	m.frame.Status = m.eng.Status(m.frame.Status.NowMs)
	if m.sim != nil {
		m.frame.Scenario = m.sim.Scenario()
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.showHelp = true
	case "p":
		m.paused = !m.paused
		if !m.paused {
			return m, tea.Batch(tick(m.interval), step(m.ticker))
		}
	case "n":
		// Step one frame while paused
		if m.paused {
			if f, ok := m.ticker.Tick(); ok {
				m.applyFrame(f)
			}
		}
	case "[":
		m.seek(-10)
	case "]":
		m.seek(+10)
	case "{":
		m.seek(-60)
	case "}":
		m.seek(+60)
	case "J":
		if m.player != nil {
			if f, ok := m.player.Seek(0); ok {
				m.applyFrame(f)
			}
		}
	case "K":
		if m.player != nil {
			if f, ok := m.player.Seek(m.player.Len() - 1); ok {
				m.applyFrame(f)
			}
		}
	case "1":
		m.page = PageDashboard
	case "2":
		m.page = PageWindows
	case "3":
		m.page = PageAlerts
		m.alertSel = 0
	case "4":
		m.page = PageEvents
		m.eventScroll = 0
	case "5":
		m.page = PagePolicy
	case "6":
		m.page = PageScore
	case "esc":
		m.page = PageDashboard
	case "j", "down":
		switch m.page {
		case PageAlerts:
			if m.alertSel < len(m.frame.Status.Alerts)-1 {
				m.alertSel++
			}
		case PageEvents:
			m.eventScroll++
		}
	case "k", "up":
		switch m.page {
		case PageAlerts:
			if m.alertSel > 0 {
				m.alertSel--
			}
		case PageEvents:
			if m.eventScroll > 0 {
				m.eventScroll--
			}
		}
	case "a":
		if m.eng != nil && m.alertSel < len(m.frame.Status.Alerts) {
			m.eng.Acknowledge(m.frame.Status.Alerts[m.alertSel].ID, m.frame.Status.NowMs)
			m.refreshStatus()
		}
	case "r":
		if m.eng != nil && m.alertSel < len(m.frame.Status.Alerts) {
			m.eng.Resolve(m.frame.Status.Alerts[m.alertSel].ID, m.frame.Status.NowMs)
			m.refreshStatus()
		}
	case "s":
		if m.sim != nil {
			m.sim.SetKind(simulate.Next(m.sim.Kind()))
			m.saveMsg = fmt.Sprintf("Scenario: %s", m.sim.Kind())
			m.saveMsgTime = time.Now()
		}
	case "t":
		if m.eng != nil && len(m.catalog) > 0 {
			m.tierIdx = (m.tierIdx + 1) % len(m.catalog)
			m.eng.SetTier(m.catalog[m.tierIdx], m.frame.Status.NowMs)
			m.refreshStatus()
			m.saveMsg = fmt.Sprintf("Tier: %s", m.catalog[m.tierIdx].Name)
			m.saveMsgTime = time.Now()
		}
	case "x":
		if m.eng != nil {
			return m, exportEvents(m.eng)
		}
	case "ctrl+d":
		// Set current scenario and tier as defaults
		if m.sim == nil {
			break
		}
		tier := ""
		if len(m.catalog) > 0 {
			tier = m.catalog[m.tierIdx].Name
		}
		if err := saveDefaults(string(m.sim.Kind()), tier); err != nil {
			m.saveMsg = fmt.Sprintf("Error: %v", err)
		} else {
			m.saveMsg = fmt.Sprintf("Defaults saved: %s, %s", m.sim.Kind(), tier)
		}
		m.saveMsgTime = time.Now()
	case "b":
		if m.eng != nil && m.page == PagePolicy {
			p := m.eng.Policy()
			p.BakeSLI = !p.BakeSLI
			m.eng.SetPolicy(p, m.frame.Status.NowMs)
			m.refreshStatus()
		}
	case "L":
		if m.eng != nil && m.page == PagePolicy {
			p := m.eng.Policy()
			p.LockExpected = !p.LockExpected
			if !p.LockExpected {
				p.LockedTarget = 0
			}
			m.eng.SetPolicy(p, m.frame.Status.NowMs)
			m.refreshStatus()
		}
	case "+", "=":
		if m.eng != nil && m.page == PagePolicy {
			p := m.eng.Policy()
			p.LatencyTargetMs += 25
			m.eng.SetPolicy(p, m.frame.Status.NowMs)
			m.refreshStatus()
		}
	case "-":
		if m.eng != nil && m.page == PagePolicy {
			p := m.eng.Policy()
			p.LatencyTargetMs -= 25
			if p.LatencyTargetMs < 25 {
				p.LatencyTargetMs = 25
			}
			m.eng.SetPolicy(p, m.frame.Status.NowMs)
			m.refreshStatus()
		}
	case "<":
		m.stepAvail(-1)
	case ">":
		m.stepAvail(+1)
	}
	return m, nil
}

// stepAvail moves the availability target along the preset ladder.
func (m *Model) stepAvail(dir int) {
	if m.eng == nil || m.page != PagePolicy {
		return
	}
	p := m.eng.Policy()
	idx := 0
	for i, v := range availLadder {
		if p.AvailabilityTarget >= v {
			idx = i
		}
	}
	idx += dir
	if idx < 0 {
		idx = 0
	}
	if idx >= len(availLadder) {
		idx = len(availLadder) - 1
	}
	p.AvailabilityTarget = availLadder[idx]
	m.eng.SetPolicy(p, m.frame.Status.NowMs)
	m.refreshStatus()
}

func (m *Model) seek(delta int) {
	if m.player == nil {
		return
	}
	if f, ok := m.player.Seek(m.player.Index() + delta); ok {
		m.applyFrame(f)
	}
}

func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}
	if m.width == 0 {
		return "Loading..."
	}
	if !m.haveFrame {
		return "Generating first sample..."
	}

	var content string
	switch m.page {
	case PageDashboard:
		content = renderDashboard(m.frame, m.charts, m.width, m.height)
	case PageWindows:
		content = renderWindowsPage(m.frame, m.width, m.height)
	case PageAlerts:
		content = renderAlertsPage(m.frame, m.alertSel, m.eng != nil, m.width, m.height)
	case PageEvents:
		content = renderEventsPage(m.frame, m.eventScroll, m.player != nil, m.width, m.height)
	case PagePolicy:
		content = renderPolicyPage(m.frame, m.catalog, m.width, m.height)
	case PageScore:
		content = renderScorePage(m.frame, m.width, m.height)
	}

	content = m.injectClock(content)

	// Trim to viewport height (leave room for status bar)
	lines := strings.Split(content, "\n")
	maxLines := m.height - 2
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	content = strings.Join(lines, "\n")

	return content + "\n" + m.renderStatusBar()
}

func (m Model) renderStatusBar() string {
	buildTabs := func(short bool) string {
		var tabs []string
		for i, name := range pageNames {
			label := fmt.Sprintf("%d:%s", i+1, name)
			if short {
				label = fmt.Sprintf("%d:%s", i+1, name[:3])
			}
			if Page(i) == m.page {
				tabs = append(tabs, headerStyle.Render("["+label+"]"))
			} else {
				tabs = append(tabs, dimStyle.Render(" "+label+" "))
			}
		}
		return strings.Join(tabs, "")
	}

	var indicators string
	if m.player != nil {
		indicators += "  " + orangeStyle.Render(fmt.Sprintf("[REPLAY %d/%d]", m.player.Index(), m.player.Len()))
	} else {
		indicators += "  " + dimStyle.Render("["+m.frame.Scenario+"]")
	}
	if m.paused {
		indicators += "  " + critStyle.Render("[PAUSED]")
	}
	if m.saveMsg != "" && time.Since(m.saveMsgTime) < 5*time.Second {
		indicators += "  " + okStyle.Render(m.saveMsg)
	}

	help := helpStyle.Render("a:ack  r:resolve  s:scenario  t:tier  p:pause  x:export  ?:help  q:quit")
	if m.player != nil {
		help = helpStyle.Render("[ ]:seek ±10  { }:seek ±60  J/K:start/end  n:step  p:pause  ?:help  q:quit")
	}

	left := buildTabs(false) + indicators
	leftW := lipgloss.Width(left)
	helpW := lipgloss.Width(help)

	if leftW+helpW+1 <= m.width {
		gap := m.width - leftW - helpW
		return left + strings.Repeat(" ", gap) + help
	}
	if leftW <= m.width {
		return left
	}
	left = buildTabs(true) + indicators
	if lipgloss.Width(left) <= m.width {
		return left
	}
	return buildTabs(true)
}

// injectClock overlays the demo clock on the top-right of the first line.
func (m Model) injectClock(content string) string {
	if m.width < 40 {
		return content
	}

	clockStr := fmtClock(m.frame.Status.NowMs)
	if m.speed > 0 {
		clockStr += fmt.Sprintf("  x%.0f", m.speed)
	}
	clock := dimStyle.Render(clockStr)
	clockW := lipgloss.Width(clock)

	lines := strings.Split(content, "\n")
	if len(lines) == 0 {
		return content
	}

	firstLine := lines[0]
	lineW := lipgloss.Width(firstLine)
	gap := m.width - lineW - clockW
	if gap < 2 {
		return strings.Repeat(" ", m.width-clockW) + clock + "\n" + content
	}
	lines[0] = firstLine + strings.Repeat(" ", gap) + clock
	return strings.Join(lines, "\n")
}

func (m Model) renderHelp() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("sloburn — SLO Burn-Rate Alerting Lab"))
	sb.WriteString("\n\n")
	sb.WriteString(headerStyle.Render("Navigation"))
	sb.WriteString("\n")
	sb.WriteString("  1         Dashboard (burn chart, rule strip, open alerts)\n")
	sb.WriteString("  2         Windows (every rule's short/long window detail)\n")
	sb.WriteString("  3         Alerts (lifecycle, j/k to select)\n")
	sb.WriteString("  4         Events (classified request stream)\n")
	sb.WriteString("  5         Policy (targets, bakeSLI, tiers)\n")
	sb.WriteString("  6         Score (operator performance)\n")
	sb.WriteString("  Esc       Back to dashboard\n")
	sb.WriteString("\n")
	sb.WriteString(headerStyle.Render("Controls"))
	sb.WriteString("\n")
	sb.WriteString("  a / r     Acknowledge / resolve selected alert\n")
	sb.WriteString("  s         Cycle traffic scenario\n")
	sb.WriteString("  t         Cycle service tier\n")
	sb.WriteString("  p         Pause / resume\n")
	sb.WriteString("  n         Step one tick while paused\n")
	sb.WriteString("  x         Export event history to JSON\n")
	sb.WriteString("  ctrl+d    Save scenario and tier as defaults\n")
	sb.WriteString("  j/k       Move selection / scroll\n")
	sb.WriteString("\n")
	sb.WriteString(headerStyle.Render("Policy page"))
	sb.WriteString("\n")
	sb.WriteString("  b         Toggle bakeSLI (latency counts toward goodness)\n")
	sb.WriteString("  L         Lock expected-bad reference to current target\n")
	sb.WriteString("  + / -     Latency target ±25ms\n")
	sb.WriteString("  < / >     Availability target down/up the ladder\n")
	sb.WriteString("\n")
	sb.WriteString(headerStyle.Render("Replay"))
	sb.WriteString("\n")
	sb.WriteString("  [ / ]     Seek -10 / +10 frames\n")
	sb.WriteString("  { / }     Seek -60 / +60 frames\n")
	sb.WriteString("  J / K     Jump to start / end\n")
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Press any key to close"))
	return sb.String()
}
