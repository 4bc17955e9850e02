package unit_test

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spaceshard-go/internal/domain/galaxy"
	"github.com/andrescamacho/spaceshard-go/internal/domain/scheduler"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
	"github.com/andrescamacho/spaceshard-go/internal/domain/unit"
)

var epoch = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

type fakeOwner struct {
	mu       sync.Mutex
	id       shared.PlayerID
	released []string
}

func (o *fakeOwner) PlayerID() shared.PlayerID { return o.id }

func (o *fakeOwner) ReleaseUnit(u *unit.Unit) {
	o.mu.Lock()
	o.released = append(o.released, u.ID())
	o.mu.Unlock()
}

type world struct {
	sched  *scheduler.Scheduler
	sector *galaxy.Sector
	alpha  *galaxy.System
	beta   *galaxy.System
	a1, a2 *galaxy.Planet
	b1     *galaxy.Planet
}

func newWorld() *world {
	a1 := galaxy.NewPlanet("Alpha I", 2, nil)
	a2 := galaxy.NewPlanet("Alpha II", 3, nil)
	b1 := galaxy.NewPlanet("Beta I", 4, nil)
	alpha := galaxy.NewSystem("Alpha", []*galaxy.Planet{a1, a2})
	beta := galaxy.NewSystem("Beta", []*galaxy.Planet{b1})
	return &world{
		sched:  scheduler.New(epoch),
		sector: galaxy.NewSector([]*galaxy.System{alpha, beta}, rand.New(rand.NewSource(1))),
		alpha:  alpha, beta: beta, a1: a1, a2: a2, b1: b1,
	}
}

func (w *world) spawn(t *testing.T, id string, typ unit.Type, owner unit.Owner, sys *galaxy.System, planet *galaxy.Planet) *unit.Unit {
	t.Helper()
	u, err := unit.New(unit.Environment{Scheduler: w.sched}, unit.Params{
		ID: id, Type: typ, Owner: owner, System: sys, Planet: planet,
	})
	require.NoError(t, err)
	return u
}

func TestNew_AppliesTypeDefaults(t *testing.T) {
	w := newWorld()
	owner := &fakeOwner{id: shared.MustNewPlayerID("p1")}

	cruiser := w.spawn(t, "c1", unit.Cruiser, owner, w.alpha, nil)

	assert.Equal(t, 400, cruiser.Health())
	assert.Equal(t, -10, cruiser.Damage())
	assert.True(t, w.alpha.HasOccupant("c1"))
	assert.False(t, cruiser.Trunk().CanCarry())
}

func TestNew_CargoCarriesResources(t *testing.T) {
	w := newWorld()
	health := 55

	cargo, err := unit.New(unit.Environment{Scheduler: w.sched}, unit.Params{
		ID: "k1", Type: unit.Cargo, System: w.alpha, Health: &health,
		Resources: shared.Quantities{shared.Iron: 4},
	})

	require.NoError(t, err)
	assert.Equal(t, 55, cargo.Health())
	assert.Equal(t, 4, cargo.Trunk().Get(shared.Iron))
}

func TestNew_RejectsResourcesOnNonCargo(t *testing.T) {
	w := newWorld()

	_, err := unit.New(unit.Environment{Scheduler: w.sched}, unit.Params{
		ID: "s1", Type: unit.Scout, System: w.alpha, Resources: shared.Quantities{shared.Iron: 1},
	})

	assert.ErrorIs(t, err, shared.ErrIneligibleActor)
}

func TestNew_RejectsPlanetOutsideSystem(t *testing.T) {
	w := newWorld()

	_, err := unit.New(unit.Environment{Scheduler: w.sched}, unit.Params{
		ID: "s1", Type: unit.Scout, System: w.alpha, Planet: w.b1,
	})

	assert.ErrorIs(t, err, shared.ErrInvalidRequest)
}

func TestMoveTo_CrossSystemToPlanet(t *testing.T) {
	w := newWorld()
	u := w.spawn(t, "s1", unit.Scout, nil, w.alpha, w.a1)

	require.NoError(t, u.MoveTo(w.beta, w.b1))

	eta := u.ETA()
	require.NotNil(t, eta)
	assert.Equal(t, epoch.Add(75*time.Second), *eta)

	w.sched.Advance(15 * time.Second)
	sys, planet := u.Location()
	assert.Same(t, w.alpha, sys)
	assert.Nil(t, planet)

	w.sched.Advance(45 * time.Second)
	sys, planet = u.Location()
	assert.Same(t, w.beta, sys)
	assert.Nil(t, planet)
	assert.True(t, w.beta.HasOccupant("s1"))
	assert.False(t, w.alpha.HasOccupant("s1"))
	assert.True(t, u.IsTravelling())

	w.sched.Advance(15 * time.Second)
	sys, planet = u.Location()
	assert.Same(t, w.beta, sys)
	assert.Same(t, w.b1, planet)
	assert.Nil(t, u.ETA())
	assert.False(t, u.IsTravelling())
	st := u.Snapshot()
	assert.Empty(t, st.DestinationSystem)
	assert.Empty(t, st.DestinationPlanet)
}

func TestMoveTo_ETAByRoute(t *testing.T) {
	tests := []struct {
		name   string
		dest   func(w *world) (*galaxy.System, *galaxy.Planet)
		offset time.Duration
	}{
		{"same system other planet", func(w *world) (*galaxy.System, *galaxy.Planet) { return w.alpha, w.a2 }, 15 * time.Second},
		{"other system open space", func(w *world) (*galaxy.System, *galaxy.Planet) { return w.beta, nil }, time.Minute},
		{"other system planet", func(w *world) (*galaxy.System, *galaxy.Planet) { return w.beta, w.b1 }, 75 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorld()
			u := w.spawn(t, "s1", unit.Scout, nil, w.alpha, w.a1)
			sys, planet := tt.dest(w)

			require.NoError(t, u.MoveTo(sys, planet))

			require.NotNil(t, u.ETA())
			assert.Equal(t, epoch.Add(tt.offset), *u.ETA())

			w.sched.Advance(tt.offset)
			gotSys, gotPlanet := u.Location()
			assert.Same(t, sys, gotSys)
			assert.Equal(t, planet, gotPlanet)
			assert.Nil(t, u.ETA())
		})
	}
}

func TestMoveTo_LeavingPlanetForOpenSpaceIsImmediate(t *testing.T) {
	w := newWorld()
	u := w.spawn(t, "s1", unit.Scout, nil, w.alpha, w.a1)

	require.NoError(t, u.MoveTo(w.alpha, nil))

	_, planet := u.Location()
	assert.Nil(t, planet)
	assert.False(t, u.IsTravelling())
}

func TestMoveTo_SameLocationIsNoop(t *testing.T) {
	w := newWorld()
	u := w.spawn(t, "s1", unit.Scout, nil, w.alpha, w.a1)

	require.NoError(t, u.MoveTo(w.alpha, w.a1))

	assert.Nil(t, u.ETA())
	assert.Equal(t, 0, w.sched.Pending())
}

func TestMoveTo_RejectsPlanetOfAnotherSystem(t *testing.T) {
	w := newWorld()
	u := w.spawn(t, "s1", unit.Scout, nil, w.alpha, nil)

	err := u.MoveTo(w.alpha, w.b1)

	assert.ErrorIs(t, err, shared.ErrInvalidRequest)
}

func TestAwaitArrival(t *testing.T) {
	w := newWorld()
	u := w.spawn(t, "s1", unit.Scout, nil, w.alpha, nil)
	require.NoError(t, u.AwaitArrival(context.Background()))

	require.NoError(t, u.MoveTo(w.beta, nil))
	done := make(chan error, 1)
	go func() { done <- u.AwaitArrival(context.Background()) }()

	w.sched.Advance(time.Minute)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("AwaitArrival did not return")
	}
}

func TestAwaitArrival_SupersededJourneyIsCancelled(t *testing.T) {
	w := newWorld()
	u := w.spawn(t, "s1", unit.Scout, nil, w.alpha, nil)
	require.NoError(t, u.MoveTo(w.beta, nil))
	done := make(chan error, 1)
	go func() { done <- u.AwaitArrival(context.Background()) }()

	require.NoError(t, u.MoveTo(w.alpha, w.a2))
	w.sched.Advance(2 * time.Minute)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, shared.ErrCancelled)
	case <-time.After(2 * time.Second):
		t.Fatal("AwaitArrival did not return")
	}
	sys, planet := u.Location()
	assert.Same(t, w.alpha, sys)
	assert.Same(t, w.a2, planet)
}

func TestGetShotAt_DestroysAndReleases(t *testing.T) {
	w := newWorld()
	owner := &fakeOwner{id: shared.MustNewPlayerID("p1")}
	bomber := w.spawn(t, "b1", unit.Bomber, nil, w.alpha, nil)
	fighter := w.spawn(t, "f1", unit.Fighter, owner, w.alpha, nil)

	destroyed := bomber.Shoot(fighter)

	assert.True(t, destroyed)
	assert.Equal(t, -320, fighter.Health())
	assert.False(t, fighter.IsAlive())
	assert.False(t, w.alpha.HasOccupant("f1"))
	assert.Equal(t, []string{"f1"}, owner.released)
}

func TestGetShotAt_BomberTakesTenthOfCruiserDamage(t *testing.T) {
	w := newWorld()
	cruiser := w.spawn(t, "c1", unit.Cruiser, nil, w.alpha, nil)
	bomber := w.spawn(t, "b1", unit.Bomber, nil, w.alpha, nil)

	cruiser.Shoot(bomber)

	assert.Equal(t, 46, bomber.Health())
}

func TestShoot_CruiserHitsFourTimes(t *testing.T) {
	w := newWorld()
	cruiser := w.spawn(t, "c1", unit.Cruiser, nil, w.alpha, nil)
	fighter := w.spawn(t, "f1", unit.Fighter, nil, w.alpha, nil)

	cruiser.Shoot(fighter)

	assert.Equal(t, 40, fighter.Health())
}

func TestGetShotAt_NonCombatCannotBeTargeted(t *testing.T) {
	w := newWorld()
	fighter := w.spawn(t, "f1", unit.Fighter, nil, w.alpha, nil)
	scout := w.spawn(t, "s1", unit.Scout, nil, w.alpha, nil)

	_, err := scout.GetShotAt(fighter)
	assert.ErrorIs(t, err, shared.ErrIneligibleActor)
	assert.False(t, scout.Shoot(fighter))
	assert.Equal(t, 80, fighter.Health())
}

func TestDetach_AbortsJourney(t *testing.T) {
	w := newWorld()
	u := w.spawn(t, "s1", unit.Scout, nil, w.alpha, nil)
	require.NoError(t, u.MoveTo(w.beta, nil))

	require.True(t, u.Detach())
	assert.False(t, u.Detach())

	w.sched.Advance(time.Hour)
	sys, _ := u.Location()
	assert.Same(t, w.alpha, sys)
	assert.False(t, w.beta.HasOccupant("s1"))
	assert.ErrorIs(t, u.MoveTo(w.beta, nil), shared.ErrIneligibleActor)
}

func TestDetach_RacingJumpLeavesNoStaleOccupant(t *testing.T) {
	w := newWorld()
	units := make([]*unit.Unit, 0, 64)
	for i := 0; i < 64; i++ {
		u := w.spawn(t, fmt.Sprintf("s%02d", i), unit.Scout, nil, w.alpha, nil)
		require.NoError(t, u.MoveTo(w.beta, nil))
		units = append(units, u)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.sched.Advance(unit.SystemLegDuration)
	}()
	for _, u := range units {
		wg.Add(1)
		go func(u *unit.Unit) {
			defer wg.Done()
			u.Detach()
		}(u)
	}
	wg.Wait()

	assert.Empty(t, w.alpha.Occupants())
	assert.Empty(t, w.beta.Occupants())
}

func TestParseType(t *testing.T) {
	typ, err := unit.ParseType("Cruiser")
	require.NoError(t, err)
	assert.Equal(t, unit.Cruiser, typ)

	_, err = unit.ParseType("battleship")
	assert.ErrorIs(t, err, shared.ErrInvalidRequest)

	assert.Equal(t, 0, unit.Fighter.PriorityOf(unit.Bomber))
	assert.Equal(t, 3, unit.Fighter.PriorityOf(unit.Scout))
}
