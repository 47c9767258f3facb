package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Config holds user-configurable defaults. Command-line flags take
// these as their default values, so the file sets preferences and flags
// override per run.
type Config struct {
	IntervalSec int     `json:"interval_sec"`
	Speed       float64 `json:"speed"` // demo seconds per wall second
	HistorySize int     `json:"history_size"`
	AlertCap    int     `json:"alert_cap"`
	Scenario    string  `json:"scenario"`
	DefaultTier string  `json:"default_tier"`
	TiersPath   string  `json:"tiers_path"`
	PromAddr    string  `json:"prom_addr"`
	LogPath     string  `json:"log_path"`
}

// Default returns a config with sensible defaults.
func Default() Config {
	return Config{
		IntervalSec: 1,
		Speed:       60,
		HistorySize: 3000,
		AlertCap:    500,
		Scenario:    "steady",
		DefaultTier: "gold",
	}
}

// Path returns ~/.config/sloburn/config.json (or XDG_CONFIG_HOME).
// Returns empty string if home directory cannot be determined.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "" // refuse to fall back to /tmp (security risk)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "sloburn", "config.json")
}

// Load loads config from disk; returns defaults on error.
func Load() Config {
	cfg := Default()
	p := Path()
	if p == "" {
		return cfg
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("sloburn: warning: config parse error: %v", err)
	}
	return cfg
}

// Save writes the config to disk.
func Save(cfg Config) error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
