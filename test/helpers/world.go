package helpers

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/andrescamacho/spaceshard-go/internal/domain/combat"
	"github.com/andrescamacho/spaceshard-go/internal/domain/galaxy"
	"github.com/andrescamacho/spaceshard-go/internal/domain/player"
	"github.com/andrescamacho/spaceshard-go/internal/domain/scheduler"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

// Epoch is the simulated start time of test worlds: three seconds past the minute, so
// the first combat tick is three seconds away and bombers sit it out.
var Epoch = time.Date(2024, 3, 1, 12, 0, 3, 0, time.UTC)

// TestSectorSpecification is a small fixed map: Alpha with two planets and Beta with one
func TestSectorSpecification() *galaxy.SectorSpecification {
	return &galaxy.SectorSpecification{
		Seed: "test",
		Systems: []galaxy.SystemSpecification{
			{Name: "Alpha", Planets: []galaxy.PlanetSpecification{
				{Name: "Alpha I", Size: 3, Deposit: map[string]int{"iron": 10, "carbon": 5, "water": 20, "oxygen": 8}},
				{Name: "Alpha II", Size: 1, Deposit: map[string]int{"gold": 2}},
			}},
			{Name: "Beta", Planets: []galaxy.PlanetSpecification{
				{Name: "Beta I", Size: 5, Deposit: map[string]int{"titanium": 4}},
			}},
		},
	}
}

// TestWorld bundles the simulation machinery of a shard driven by a manual scheduler
type TestWorld struct {
	Scheduler *scheduler.Scheduler
	Sector    *galaxy.Sector
	Combat    *combat.Organiser
	Deps      *player.Dependencies

	mu  sync.Mutex
	ids int
}

// NewTestWorld builds the fixed test sector with sequential ids ("id-1", "id-2", ...)
func NewTestWorld(t TB) *TestWorld {
	sector, err := TestSectorSpecification().Build(rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("failed to build test sector: %v", err)
	}
	sched := scheduler.New(Epoch)
	w := &TestWorld{
		Scheduler: sched,
		Sector:    sector,
		Combat:    combat.NewOrganiser(sched, nil, nil),
	}
	w.Deps = &player.Dependencies{
		Sector:    sector,
		Scheduler: sched,
		Combat:    w.Combat,
		NewID:     w.nextID,
	}
	return w
}

func (w *TestWorld) nextID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ids++
	return fmt.Sprintf("id-%d", w.ids)
}

// System returns a system of the test sector or fails the test
func (w *TestWorld) System(t TB, name string) *galaxy.System {
	t.Helper()
	sys, err := w.Sector.System(name)
	if err != nil {
		t.Fatalf("system %s: %v", name, err)
	}
	return sys
}

// Planet returns a planet of the test sector or fails the test
func (w *TestWorld) Planet(t TB, system, name string) *galaxy.Planet {
	t.Helper()
	p, err := w.System(t, system).Planet(name)
	if err != nil {
		t.Fatalf("planet %s: %v", name, err)
	}
	return p
}

// RegisterPlayer creates a regular player or fails the test
func (w *TestWorld) RegisterPlayer(t TB, id string) *player.Player {
	t.Helper()
	p, err := player.Register(w.Deps, player.Registration{ID: id, Pseudo: id})
	if err != nil {
		t.Fatalf("register player %s: %v", id, err)
	}
	return p
}

// RegisterEmptyPlayer creates a player with no units and the given resources
func (w *TestWorld) RegisterEmptyPlayer(t TB, id string, resources shared.Quantities) *player.Player {
	t.Helper()
	p, err := player.Register(w.Deps, player.Registration{ID: id, Pseudo: id, Transfer: true})
	if err != nil {
		t.Fatalf("register player %s: %v", id, err)
	}
	if err := p.UpdateResources(resources); err != nil {
		t.Fatalf("set resources of %s: %v", id, err)
	}
	return p
}
