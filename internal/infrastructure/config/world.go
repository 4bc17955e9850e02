package config

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/spaceshard-go/internal/domain/galaxy"
)

// GeneratorOptions returns the generator bounds configured for the world
func (w WorldConfig) GeneratorOptions() galaxy.GeneratorOptions {
	return galaxy.GeneratorOptions{
		Systems:    w.Systems,
		MinPlanets: w.MinPlanets,
		MaxPlanets: w.MaxPlanets,
		MaxDeposit: w.MaxDeposit,
	}
}

// SectorSpecification loads the configured specification file, or generates one from
// the seed when none is set
func (w WorldConfig) SectorSpecification() (*galaxy.SectorSpecification, error) {
	if w.Specification == "" {
		return galaxy.Generate(w.Seed, w.GeneratorOptions()), nil
	}
	spec, err := galaxy.LoadSpecification(w.Specification)
	if err != nil {
		return nil, fmt.Errorf("failed to load sector specification: %w", err)
	}
	return spec, nil
}

// GalaxyWormholes converts the configured wormholes, sorted by name
func (c *Config) GalaxyWormholes() []galaxy.Wormhole {
	out := make([]galaxy.Wormhole, 0, len(c.Wormholes))
	for name, w := range c.Wormholes {
		out = append(out, galaxy.Wormhole{
			Name:           name,
			BaseURI:        w.BaseURI,
			System:         w.System,
			User:           w.User,
			SharedPassword: w.SharedPassword,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
