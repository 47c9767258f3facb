package ui

import "github.com/aaeabdo/sloburn/config"

// saveDefaults persists the current scenario and tier as the defaults
// future sessions start from. Other settings in the file are kept.
func saveDefaults(scenario, tier string) error {
	cfg := config.Load()
	cfg.Scenario = scenario
	if tier != "" {
		cfg.DefaultTier = tier
	}
	return config.Save(cfg)
}
