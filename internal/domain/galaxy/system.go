package galaxy

import (
	"sort"
	"sync"

	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

// Occupant is anything tracked as present in a system (units)
type Occupant interface {
	ID() string
}

// System is a named star system holding planets and the units currently in it
type System struct {
	name    string
	planets []*Planet

	mu        sync.Mutex
	occupants map[string]Occupant
}

// NewSystem creates a system and claims the given planets
func NewSystem(name string, planets []*Planet) *System {
	s := &System{name: name, planets: planets, occupants: make(map[string]Occupant)}
	for _, p := range planets {
		p.system = s
	}
	return s
}

func (s *System) Name() string { return s.name }

// Planets returns the planets in generation order
func (s *System) Planets() []*Planet {
	out := make([]*Planet, len(s.planets))
	copy(out, s.planets)
	return out
}

// Planet looks a planet up by name
func (s *System) Planet(name string) (*Planet, error) {
	for _, p := range s.planets {
		if p.name == name {
			return p, nil
		}
	}
	return nil, shared.NewNotFoundError("planet", name)
}

func (s *System) AddOccupant(o Occupant) {
	s.mu.Lock()
	s.occupants[o.ID()] = o
	s.mu.Unlock()
}

func (s *System) RemoveOccupant(id string) {
	s.mu.Lock()
	delete(s.occupants, id)
	s.mu.Unlock()
}

func (s *System) HasOccupant(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.occupants[id]
	return ok
}

// Occupants returns the units present, sorted by id
func (s *System) Occupants() []Occupant {
	s.mu.Lock()
	out := make([]Occupant, 0, len(s.occupants))
	for _, o := range s.occupants {
		out = append(out, o)
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}
