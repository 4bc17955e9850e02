package galaxy

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

// Sector is the shard's map: an immutable set of systems plus the wormholes that
// lead out of it.
type Sector struct {
	systems []*System
	byName  map[string]*System

	mu        sync.Mutex
	rng       *rand.Rand
	wormholes map[string]*Wormhole
}

// NewSector indexes the systems; rng drives RandomSystem
func NewSector(systems []*System, rng *rand.Rand) *Sector {
	s := &Sector{
		systems:   systems,
		byName:    make(map[string]*System, len(systems)),
		rng:       rng,
		wormholes: make(map[string]*Wormhole),
	}
	for _, sys := range systems {
		s.byName[sys.name] = sys
	}
	return s
}

// Systems returns every system in generation order
func (s *Sector) Systems() []*System {
	out := make([]*System, len(s.systems))
	copy(out, s.systems)
	return out
}

// System looks a system up by name
func (s *Sector) System(name string) (*System, error) {
	sys, ok := s.byName[name]
	if !ok {
		return nil, shared.NewNotFoundError("system", name)
	}
	return sys, nil
}

// RandomSystem picks a system uniformly
func (s *Sector) RandomSystem() *System {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.systems[s.rng.Intn(len(s.systems))]
}

// AttachWormholes registers wormholes whose local system exists and returns the names
// of the ones that were skipped.
func (s *Sector) AttachWormholes(wormholes []Wormhole) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var skipped []string
	for i := range wormholes {
		w := wormholes[i]
		if _, ok := s.byName[w.System]; !ok {
			skipped = append(skipped, w.Name)
			continue
		}
		s.wormholes[w.Name] = &w
	}
	return skipped
}

// Wormhole looks a wormhole up by destination shard name
func (s *Sector) Wormhole(name string) (*Wormhole, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wormholes[name]
	if !ok {
		return nil, shared.NewNotFoundError("wormhole", name)
	}
	return w, nil
}

// Wormholes returns the attached wormholes sorted by name
func (s *Sector) Wormholes() []*Wormhole {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Wormhole, 0, len(s.wormholes))
	for _, w := range s.wormholes {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ArrivalSystem is where units arriving from sibling shards land when their
// requested system is unknown: the system of the first wormhole by name.
func (s *Sector) ArrivalSystem() (*System, error) {
	ws := s.Wormholes()
	if len(ws) == 0 {
		return nil, shared.NewNotFoundError("wormhole", "")
	}
	return s.System(ws[0].System)
}
