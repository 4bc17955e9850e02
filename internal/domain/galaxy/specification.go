package galaxy

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

// SectorSpecification is the serializable description of a sector map
type SectorSpecification struct {
	Seed    string                `yaml:"seed,omitempty"`
	Systems []SystemSpecification `yaml:"systems"`
}

type SystemSpecification struct {
	Name    string                `yaml:"name"`
	Planets []PlanetSpecification `yaml:"planets"`
}

type PlanetSpecification struct {
	Name    string         `yaml:"name"`
	Size    int            `yaml:"size"`
	Deposit map[string]int `yaml:"deposit,omitempty"`
}

// LoadSpecification reads a YAML sector specification from disk
func LoadSpecification(path string) (*SectorSpecification, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sector specification: %w", err)
	}
	var spec SectorSpecification
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("parse sector specification: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// YAML renders the specification
func (s *SectorSpecification) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}

// Validate checks that names are unique and deposits only name known resources
func (s *SectorSpecification) Validate() error {
	if len(s.Systems) == 0 {
		return fmt.Errorf("sector specification has no systems")
	}
	systems := make(map[string]bool, len(s.Systems))
	for _, sys := range s.Systems {
		if sys.Name == "" {
			return fmt.Errorf("system with empty name")
		}
		if systems[sys.Name] {
			return fmt.Errorf("duplicate system %q", sys.Name)
		}
		systems[sys.Name] = true

		planets := make(map[string]bool, len(sys.Planets))
		for _, p := range sys.Planets {
			if p.Name == "" {
				return fmt.Errorf("system %s: planet with empty name", sys.Name)
			}
			if planets[p.Name] {
				return fmt.Errorf("system %s: duplicate planet %q", sys.Name, p.Name)
			}
			planets[p.Name] = true
			if _, err := shared.QuantitiesFromStrings(p.Deposit); err != nil {
				return fmt.Errorf("system %s planet %s: %w", sys.Name, p.Name, err)
			}
		}
	}
	return nil
}

// Build instantiates the sector. rng drives random system selection.
func (s *SectorSpecification) Build(rng *rand.Rand) (*Sector, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	systems := make([]*System, 0, len(s.Systems))
	for _, sysSpec := range s.Systems {
		planets := make([]*Planet, 0, len(sysSpec.Planets))
		for _, pSpec := range sysSpec.Planets {
			deposit, _ := shared.QuantitiesFromStrings(pSpec.Deposit)
			planets = append(planets, NewPlanet(pSpec.Name, pSpec.Size, deposit))
		}
		systems = append(systems, NewSystem(sysSpec.Name, planets))
	}
	return NewSector(systems, rng), nil
}
