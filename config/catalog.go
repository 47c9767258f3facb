package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aaeabdo/sloburn/model"
)

// catalogFile is the on-disk shape of a tier catalog.
type catalogFile struct {
	Tiers []model.Tier `yaml:"tiers"`
}

// DefaultCatalog returns the built-in service tiers, loosest first.
func DefaultCatalog() []model.Tier {
	return []model.Tier{
		{Name: "bronze", AvailabilityTarget: 99.0, LatencyTargetMs: 800, Description: "best effort"},
		{Name: "silver", AvailabilityTarget: 99.5, LatencyTargetMs: 500, Description: "internal tools"},
		{Name: "gold", AvailabilityTarget: 99.9, LatencyTargetMs: 300, Description: "customer facing"},
		{Name: "platinum", AvailabilityTarget: 99.95, LatencyTargetMs: 200, Description: "revenue critical"},
	}
}

// LoadCatalog reads a tier catalog from a YAML file. An empty path
// returns the built-in catalog. Every tier is validated; a bad file is
// rejected whole rather than partially applied.
func LoadCatalog(path string) ([]model.Tier, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tier catalog: %w", err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing tier catalog %s: %w", path, err)
	}
	if len(f.Tiers) == 0 {
		return nil, fmt.Errorf("tier catalog %s: no tiers defined", path)
	}
	seen := make(map[string]bool)
	for i, t := range f.Tiers {
		if t.Name == "" {
			return nil, fmt.Errorf("tier catalog %s: tier %d has no name", path, i)
		}
		if seen[t.Name] {
			return nil, fmt.Errorf("tier catalog %s: duplicate tier %q", path, t.Name)
		}
		seen[t.Name] = true
		if t.AvailabilityTarget <= 0 || t.AvailabilityTarget > 100 {
			return nil, fmt.Errorf("tier catalog %s: tier %q availability target %.3f outside (0,100]", path, t.Name, t.AvailabilityTarget)
		}
		if t.LatencyTargetMs <= 0 {
			return nil, fmt.Errorf("tier catalog %s: tier %q latency target %.0fms not positive", path, t.Name, t.LatencyTargetMs)
		}
	}
	return f.Tiers, nil
}

// FindTier looks a tier up by name.
func FindTier(catalog []model.Tier, name string) (model.Tier, bool) {
	for _, t := range catalog {
		if t.Name == name {
			return t, true
		}
	}
	return model.Tier{}, false
}
