package combat_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spaceshard-go/internal/domain/combat"
	"github.com/andrescamacho/spaceshard-go/internal/domain/galaxy"
	"github.com/andrescamacho/spaceshard-go/internal/domain/scheduler"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
	"github.com/andrescamacho/spaceshard-go/internal/domain/unit"
)

type owner struct{ id shared.PlayerID }

func (o *owner) PlayerID() shared.PlayerID { return o.id }
func (o *owner) ReleaseUnit(*unit.Unit)    {}

type arena struct {
	sched     *scheduler.Scheduler
	organiser *combat.Organiser
	alpha     *galaxy.System
	beta      *galaxy.System
	planet    *galaxy.Planet
	red       *owner
	blue      *owner
	seq       int
}

func newArena(start time.Time) *arena {
	planet := galaxy.NewPlanet("Alpha I", 1, nil)
	sched := scheduler.New(start)
	return &arena{
		sched:     sched,
		organiser: combat.NewOrganiser(sched, nil, nil),
		alpha:     galaxy.NewSystem("Alpha", []*galaxy.Planet{planet}),
		beta:      galaxy.NewSystem("Beta", nil),
		planet:    planet,
		red:       &owner{id: shared.MustNewPlayerID("red")},
		blue:      &owner{id: shared.MustNewPlayerID("blue")},
	}
}

func (a *arena) spawn(t *testing.T, typ unit.Type, o *owner, sys *galaxy.System, planet *galaxy.Planet) *unit.Unit {
	t.Helper()
	a.seq++
	u, err := unit.New(unit.Environment{Scheduler: a.sched}, unit.Params{
		ID: fmt.Sprintf("%s-%d", typ, a.seq), Type: typ, Owner: o, System: sys, Planet: planet,
	})
	require.NoError(t, err)
	a.organiser.Register(u)
	return u
}

// 12:00:03, so the first tick lands on 12:00:06 and bombers wait for 12:01:00
var offMinute = time.Date(2024, 3, 1, 12, 0, 3, 0, time.UTC)

func TestFirstTickDelay(t *testing.T) {
	assert.Equal(t, 3*time.Second, combat.FirstTickDelay(offMinute))
	assert.Equal(t, 6*time.Second, combat.FirstTickDelay(time.Date(2024, 3, 1, 12, 0, 12, 0, time.UTC)))
	assert.Equal(t, 2500*time.Millisecond,
		combat.FirstTickDelay(time.Date(2024, 3, 1, 12, 0, 3, int(500*time.Millisecond), time.UTC)))
}

func TestTick_SimultaneousFire(t *testing.T) {
	a := newArena(offMinute)
	red := a.spawn(t, unit.Fighter, a.red, a.alpha, nil)
	blue := a.spawn(t, unit.Fighter, a.blue, a.alpha, nil)
	a.organiser.Start(context.Background())

	a.sched.Advance(3 * time.Second)

	assert.Equal(t, 70, red.Health())
	assert.Equal(t, 70, blue.Health())
}

func TestTick_SameOwnerDoesNotFight(t *testing.T) {
	a := newArena(offMinute)
	first := a.spawn(t, unit.Fighter, a.red, a.alpha, nil)
	second := a.spawn(t, unit.Fighter, a.red, a.alpha, nil)

	a.organiser.Tick(a.sched.Now())

	assert.Equal(t, 80, first.Health())
	assert.Equal(t, 80, second.Health())
}

func TestTick_DifferentSystemsDoNotFight(t *testing.T) {
	a := newArena(offMinute)
	red := a.spawn(t, unit.Fighter, a.red, a.alpha, nil)
	blue := a.spawn(t, unit.Fighter, a.blue, a.beta, nil)

	a.organiser.Tick(a.sched.Now())

	assert.Equal(t, 80, red.Health())
	assert.Equal(t, 80, blue.Health())
}

func TestTick_AttackerOnPlanetOnlyHitsThatPlanet(t *testing.T) {
	a := newArena(offMinute)
	grounded := a.spawn(t, unit.Fighter, a.red, a.alpha, a.planet)
	orbiting := a.spawn(t, unit.Fighter, a.blue, a.alpha, nil)

	a.organiser.Tick(a.sched.Now())

	// the orbiting fighter reaches the planet, the grounded one cannot reach orbit
	assert.Equal(t, 70, grounded.Health())
	assert.Equal(t, 80, orbiting.Health())
}

func TestTick_BombersOnlyFireOnTheMinute(t *testing.T) {
	a := newArena(offMinute)
	bomber := a.spawn(t, unit.Bomber, a.red, a.alpha, nil)
	cruiser := a.spawn(t, unit.Cruiser, a.blue, a.alpha, nil)
	a.organiser.Start(context.Background())

	a.sched.Advance(3 * time.Second)
	assert.Equal(t, 400, cruiser.Health())
	assert.Equal(t, 46, bomber.Health())

	// eight more ticks up to 12:00:54, then 12:01:00 is the bomber's turn
	a.sched.Advance(57 * time.Second)

	assert.False(t, cruiser.IsAlive())
	assert.Empty(t, filterType(a.organiser.Roster(), unit.Cruiser))
}

func TestTick_TargetPriority(t *testing.T) {
	a := newArena(offMinute)
	fighter := a.spawn(t, unit.Fighter, a.red, a.alpha, nil)
	cruiser := a.spawn(t, unit.Cruiser, a.blue, a.alpha, nil)
	bomber := a.spawn(t, unit.Bomber, a.blue, a.alpha, nil)

	a.organiser.Tick(a.sched.Now())

	// the fighter prefers bombers; the cruiser prefers fighters
	assert.Equal(t, 40, bomber.Health())
	assert.Equal(t, 400, cruiser.Health())
	assert.Equal(t, 40, fighter.Health())
}

func TestTick_PurgesDestroyedUnits(t *testing.T) {
	a := newArena(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	bomber := a.spawn(t, unit.Bomber, a.red, a.alpha, nil)
	fighter := a.spawn(t, unit.Fighter, a.blue, a.alpha, nil)

	a.organiser.Tick(a.sched.Now())

	assert.False(t, fighter.IsAlive())
	assert.Equal(t, []*unit.Unit{bomber}, a.organiser.Roster())
	assert.False(t, a.alpha.HasOccupant(fighter.ID()))
}

func TestRegister_IgnoresNonCombatUnits(t *testing.T) {
	a := newArena(offMinute)
	a.spawn(t, unit.Scout, a.red, a.alpha, nil)
	a.spawn(t, unit.Cargo, a.blue, a.alpha, nil)

	assert.Empty(t, a.organiser.Roster())
}

func filterType(units []*unit.Unit, typ unit.Type) []*unit.Unit {
	var out []*unit.Unit
	for _, u := range units {
		if u.Type() == typ {
			out = append(out, u)
		}
	}
	return out
}
