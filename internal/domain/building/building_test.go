package building_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spaceshard-go/internal/domain/building"
	"github.com/andrescamacho/spaceshard-go/internal/domain/galaxy"
	"github.com/andrescamacho/spaceshard-go/internal/domain/ledger"
	"github.com/andrescamacho/spaceshard-go/internal/domain/scheduler"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
	"github.com/andrescamacho/spaceshard-go/internal/domain/unit"
)

var epoch = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

type fakeOwner struct {
	id      shared.PlayerID
	ledger  *ledger.Ledger
	sched   *scheduler.Scheduler
	spawned []*unit.Unit
}

func (o *fakeOwner) PlayerID() shared.PlayerID { return o.id }
func (o *fakeOwner) Ledger() *ledger.Ledger    { return o.ledger }
func (o *fakeOwner) ReleaseUnit(*unit.Unit)    {}

func (o *fakeOwner) SpawnUnit(t unit.Type, sys *galaxy.System, planet *galaxy.Planet) (*unit.Unit, error) {
	u, err := unit.New(unit.Environment{Scheduler: o.sched}, unit.Params{
		ID: "spawned", Type: t, Owner: o, System: sys, Planet: planet,
	})
	if err != nil {
		return nil, err
	}
	o.spawned = append(o.spawned, u)
	return u, nil
}

type fixture struct {
	sched   *scheduler.Scheduler
	planet  *galaxy.Planet
	system  *galaxy.System
	owner   *fakeOwner
	builder *unit.Unit
	env     building.Environment
}

func newFixture(t *testing.T, deposit shared.Quantities, resources shared.Quantities) *fixture {
	t.Helper()
	sched := scheduler.New(epoch)
	planet := galaxy.NewPlanet("Alpha I", 2, deposit)
	system := galaxy.NewSystem("Alpha", []*galaxy.Planet{planet})
	galaxy.NewSector([]*galaxy.System{system}, rand.New(rand.NewSource(1)))
	owner := &fakeOwner{id: shared.MustNewPlayerID("p1"), ledger: ledger.New(resources), sched: sched}
	builder, err := unit.New(unit.Environment{Scheduler: sched}, unit.Params{
		ID: "builder-1", Type: unit.Builder, Owner: owner, System: system, Planet: planet,
	})
	require.NoError(t, err)
	return &fixture{
		sched: sched, planet: planet, system: system, owner: owner, builder: builder,
		env: building.Environment{Scheduler: sched},
	}
}

func (f *fixture) start(t *testing.T, typ building.Type, category shared.ResourceCategory) *building.Building {
	t.Helper()
	b, err := building.New(f.env, building.Params{
		ID: "bld-1", Type: typ, Owner: f.owner, Builder: f.builder, Category: category,
	})
	require.NoError(t, err)
	return b
}

func TestNew_RequiresBuilderOnPlanet(t *testing.T) {
	f := newFixture(t, nil, nil)
	require.NoError(t, f.builder.MoveTo(f.system, nil))

	_, err := building.New(f.env, building.Params{
		ID: "bld-1", Type: building.Starport, Owner: f.owner, Builder: f.builder,
	})

	assert.ErrorIs(t, err, shared.ErrIneligibleActor)
	assert.Empty(t, f.planet.Buildings())
}

func TestNew_RejectsNonBuilder(t *testing.T) {
	f := newFixture(t, nil, nil)
	scout, err := unit.New(unit.Environment{Scheduler: f.sched}, unit.Params{
		ID: "scout-1", Type: unit.Scout, System: f.system, Planet: f.planet,
	})
	require.NoError(t, err)

	_, err = building.New(f.env, building.Params{ID: "bld-1", Type: building.Starport, Owner: f.owner, Builder: scout})

	assert.ErrorIs(t, err, shared.ErrIneligibleActor)
}

func TestNew_MineNeedsCategory(t *testing.T) {
	f := newFixture(t, nil, nil)

	_, err := building.New(f.env, building.Params{ID: "bld-1", Type: building.Mine, Owner: f.owner, Builder: f.builder})

	assert.ErrorIs(t, err, shared.ErrInvalidRequest)
}

func TestConstruction_CompletesAfterFiveMinutes(t *testing.T) {
	f := newFixture(t, nil, nil)
	b := f.start(t, building.Starport, "")

	require.NotNil(t, b.ETA())
	assert.Equal(t, epoch.Add(5*time.Minute), *b.ETA())
	assert.Len(t, f.planet.Buildings(), 1)

	f.sched.Advance(5*time.Minute - time.Second)
	assert.False(t, b.IsBuilt())

	f.sched.Advance(time.Second)
	assert.True(t, b.IsBuilt())
	assert.Nil(t, b.ETA())
	assert.NoError(t, b.AwaitBuilt(context.Background()))
}

func TestCancel_BeforeCompletion(t *testing.T) {
	f := newFixture(t, nil, nil)
	b := f.start(t, building.Starport, "")

	require.True(t, b.Cancel())
	assert.False(t, b.Cancel())
	f.sched.Advance(time.Hour)

	assert.False(t, b.IsBuilt())
	assert.Nil(t, b.ETA())
	assert.ErrorIs(t, b.AwaitBuilt(context.Background()), shared.ErrCancelled)
}

func TestCancel_AfterCompletionIsRefused(t *testing.T) {
	f := newFixture(t, nil, nil)
	b := f.start(t, building.Starport, "")
	f.sched.Advance(building.ConstructionDuration)

	assert.False(t, b.Cancel())
	assert.True(t, b.IsBuilt())
}

func TestMine_ProducesEveryMinuteUntilDepleted(t *testing.T) {
	f := newFixture(t, shared.Quantities{shared.Iron: 1, shared.Water: 5}, ledger.ZeroQuantities())
	f.start(t, building.Mine, shared.Solid)
	f.sched.Advance(building.ConstructionDuration)

	f.sched.Advance(2 * building.ProductionInterval)

	assert.Equal(t, 1, f.owner.ledger.Get(shared.Iron))
	assert.Equal(t, 0, f.planet.Deposit()[shared.Iron])
	assert.Equal(t, 5, f.planet.Deposit()[shared.Water])
}

func TestStarport_UseBeforeBuilt(t *testing.T) {
	f := newFixture(t, nil, ledger.StarterQuantities())
	b := f.start(t, building.Starport, "")

	_, err := b.Use(unit.Scout)

	assert.ErrorIs(t, err, shared.ErrIneligibleActor)
}

func TestStarport_ProducesAndDebits(t *testing.T) {
	f := newFixture(t, nil, ledger.StarterQuantities())
	b := f.start(t, building.Starport, "")
	f.sched.Advance(building.ConstructionDuration)

	u, err := b.Use(unit.Scout)

	require.NoError(t, err)
	require.NotNil(t, u)
	sys, planet := u.Location()
	assert.Same(t, f.system, sys)
	assert.Same(t, f.planet, planet)
	assert.Equal(t, 15, f.owner.ledger.Get(shared.Carbon))
	assert.Equal(t, 5, f.owner.ledger.Get(shared.Iron))
}

func TestStarport_InsufficientResourcesLeavesLedgerUntouched(t *testing.T) {
	f := newFixture(t, nil, ledger.StarterQuantities())
	b := f.start(t, building.Starport, "")
	f.sched.Advance(building.ConstructionDuration)

	_, err := b.Use(unit.Cruiser)

	assert.ErrorIs(t, err, shared.ErrInsufficientResources)
	assert.Equal(t, ledger.StarterQuantities(), f.owner.ledger.Snapshot())
	assert.Empty(t, f.owner.spawned)
}

func TestUnitCost(t *testing.T) {
	cost, ok := building.UnitCost(unit.Cargo)
	require.True(t, ok)
	assert.Equal(t, shared.Quantities{shared.Carbon: 10, shared.Iron: 10, shared.Gold: 5}, cost)

	_, ok = building.UnitCost(unit.Type("battleship"))
	assert.False(t, ok)
}
