package player_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spaceshard-go/internal/domain/building"
	"github.com/andrescamacho/spaceshard-go/internal/domain/ledger"
	"github.com/andrescamacho/spaceshard-go/internal/domain/player"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
	"github.com/andrescamacho/spaceshard-go/internal/domain/unit"
	"github.com/andrescamacho/spaceshard-go/test/helpers"
)

func TestRegister_StartsWithScoutAndBuilderInOpenSpace(t *testing.T) {
	w := helpers.NewTestWorld(t)

	p, err := player.Register(w.Deps, player.Registration{ID: "alice_01", Pseudo: "Alice"})

	require.NoError(t, err)
	assert.Equal(t, "Alice", p.Pseudo())
	assert.Equal(t, helpers.Epoch, p.CreatedAt())
	assert.Equal(t, ledger.StarterQuantities(), p.Ledger().Snapshot())

	units := p.Units()
	require.Len(t, units, 2)
	assert.Equal(t, unit.Scout, units[0].Type())
	assert.Equal(t, unit.Builder, units[1].Type())
	sys0, planet0 := units[0].Location()
	sys1, planet1 := units[1].Location()
	assert.Same(t, sys0, sys1)
	assert.Nil(t, planet0)
	assert.Nil(t, planet1)
}

func TestRegister_RejectsInvalidIdentifier(t *testing.T) {
	w := helpers.NewTestWorld(t)

	for _, id := range []string{"", "has space", "semi;colon", "é"} {
		_, err := player.Register(w.Deps, player.Registration{ID: id})
		assert.ErrorIs(t, err, shared.ErrInvalidIdentifier, id)
	}
}

func TestRegister_TransferKeepsCreationDateAndZeroesLedger(t *testing.T) {
	w := helpers.NewTestWorld(t)
	created := time.Date(2023, 5, 4, 3, 2, 1, 0, time.UTC)

	p, err := player.Register(w.Deps, player.Registration{ID: "bob", Transfer: true, CreatedAt: &created})

	require.NoError(t, err)
	assert.Empty(t, p.Units())
	assert.Equal(t, created, p.CreatedAt())
	assert.Equal(t, ledger.ZeroQuantities(), p.Ledger().Snapshot())
}

func TestAddUnit_RejectsDuplicateID(t *testing.T) {
	w := helpers.NewTestWorld(t)
	p := w.RegisterEmptyPlayer(t, "p1", nil)
	alpha := w.System(t, "Alpha")

	_, err := p.AddUnit(player.UnitSpec{ID: "u1", Type: unit.Scout, System: alpha})
	require.NoError(t, err)
	_, err = p.AddUnit(player.UnitSpec{ID: "u1", Type: unit.Fighter, System: alpha})

	assert.ErrorIs(t, err, shared.ErrInvalidRequest)
}

func TestAddUnit_RegistersCombatUnits(t *testing.T) {
	w := helpers.NewTestWorld(t)
	p := w.RegisterEmptyPlayer(t, "p1", nil)

	fighter, err := p.AddUnit(player.UnitSpec{Type: unit.Fighter, System: w.System(t, "Alpha")})
	require.NoError(t, err)

	assert.Equal(t, []*unit.Unit{fighter}, w.Combat.Roster())
}

func TestStartBuilding_AndMoveCancelsUnfinishedConstruction(t *testing.T) {
	w := helpers.NewTestWorld(t)
	p := w.RegisterEmptyPlayer(t, "p1", nil)
	alpha := w.System(t, "Alpha")
	planet := w.Planet(t, "Alpha", "Alpha I")
	builder, err := p.AddUnit(player.UnitSpec{Type: unit.Builder, System: alpha, Planet: planet})
	require.NoError(t, err)

	b, err := p.StartBuilding(builder.ID(), building.Mine, shared.Solid)
	require.NoError(t, err)
	require.Len(t, planet.Buildings(), 1)

	_, err = p.MoveUnit(builder.ID(), alpha, w.Planet(t, "Alpha", "Alpha II"))
	require.NoError(t, err)

	assert.True(t, b.IsCancelled())
	assert.Empty(t, p.Buildings())
	assert.Empty(t, planet.Buildings())
	_, err = p.Building(b.ID())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestMoveUnit_KeepsFinishedBuildings(t *testing.T) {
	w := helpers.NewTestWorld(t)
	p := w.RegisterEmptyPlayer(t, "p1", nil)
	alpha := w.System(t, "Alpha")
	planet := w.Planet(t, "Alpha", "Alpha I")
	builder, err := p.AddUnit(player.UnitSpec{Type: unit.Builder, System: alpha, Planet: planet})
	require.NoError(t, err)
	b, err := p.StartBuilding(builder.ID(), building.Starport, "")
	require.NoError(t, err)
	w.Scheduler.Advance(building.ConstructionDuration)

	_, err = p.MoveUnit(builder.ID(), w.System(t, "Beta"), nil)
	require.NoError(t, err)

	assert.True(t, b.IsBuilt())
	assert.Len(t, p.Buildings(), 1)
	assert.True(t, planet.HasBuilt("starport"))
}

func TestStartBuilding_UnknownBuilder(t *testing.T) {
	w := helpers.NewTestWorld(t)
	p := w.RegisterEmptyPlayer(t, "p1", nil)

	_, err := p.StartBuilding("ghost", building.Starport, "")

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestStarportProducedUnitBelongsToPlayer(t *testing.T) {
	w := helpers.NewTestWorld(t)
	p := w.RegisterEmptyPlayer(t, "p1", shared.Quantities{shared.Iron: 100, shared.Gold: 20})
	planet := w.Planet(t, "Alpha", "Alpha I")
	builder, err := p.AddUnit(player.UnitSpec{Type: unit.Builder, System: w.System(t, "Alpha"), Planet: planet})
	require.NoError(t, err)
	b, err := p.StartBuilding(builder.ID(), building.Starport, "")
	require.NoError(t, err)
	w.Scheduler.Advance(building.ConstructionDuration)

	cruiser, err := b.Use(unit.Cruiser)

	require.NoError(t, err)
	found, err := p.Unit(cruiser.ID())
	require.NoError(t, err)
	assert.Same(t, cruiser, found)
	assert.Equal(t, 40, p.Ledger().Get(shared.Iron))
	assert.Equal(t, 0, p.Ledger().Get(shared.Gold))
}

func TestReleaseUnit_OnCombatDeath(t *testing.T) {
	w := helpers.NewTestWorld(t)
	red := w.RegisterEmptyPlayer(t, "red", nil)
	blue := w.RegisterEmptyPlayer(t, "blue", nil)
	alpha := w.System(t, "Alpha")
	bomber, err := red.AddUnit(player.UnitSpec{Type: unit.Bomber, System: alpha})
	require.NoError(t, err)
	fighter, err := blue.AddUnit(player.UnitSpec{Type: unit.Fighter, System: alpha})
	require.NoError(t, err)

	bomber.Shoot(fighter)

	assert.Empty(t, blue.Units())
	assert.Equal(t, []*unit.Unit{bomber}, w.Combat.Roster())
}

func TestRemoveUnit(t *testing.T) {
	w := helpers.NewTestWorld(t)
	p := w.RegisterPlayer(t, "p1")
	scout := p.Units()[0]
	sys, _ := scout.Location()

	removed, err := p.RemoveUnit(scout.ID())

	require.NoError(t, err)
	assert.Same(t, scout, removed)
	assert.Len(t, p.Units(), 1)
	assert.False(t, sys.HasOccupant(scout.ID()))
	_, err = p.RemoveUnit(scout.ID())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestLoadCargo(t *testing.T) {
	w := helpers.NewTestWorld(t)
	p := w.RegisterEmptyPlayer(t, "p1", shared.Quantities{shared.Iron: 10, shared.Carbon: 3})
	alpha := w.System(t, "Alpha")
	planet := w.Planet(t, "Alpha", "Alpha I")
	builder, err := p.AddUnit(player.UnitSpec{Type: unit.Builder, System: alpha, Planet: planet})
	require.NoError(t, err)
	cargo, err := p.AddUnit(player.UnitSpec{Type: unit.Cargo, System: alpha, Planet: planet})
	require.NoError(t, err)

	_, err = p.LoadCargo(cargo.ID(), shared.Quantities{shared.Iron: 4})
	assert.ErrorIs(t, err, shared.ErrIneligibleActor, "no starport yet")

	_, err = p.StartBuilding(builder.ID(), building.Starport, "")
	require.NoError(t, err)
	w.Scheduler.Advance(building.ConstructionDuration)

	_, err = p.LoadCargo(cargo.ID(), shared.Quantities{shared.Iron: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, cargo.Trunk().Get(shared.Iron))
	assert.Equal(t, 6, p.Ledger().Get(shared.Iron))

	_, err = p.LoadCargo(cargo.ID(), shared.Quantities{shared.Iron: 1, shared.Carbon: 5})
	assert.ErrorIs(t, err, shared.ErrInsufficientResources)
	assert.Equal(t, 4, cargo.Trunk().Get(shared.Iron))

	_, err = p.LoadCargo(cargo.ID(), shared.Quantities{shared.Iron: 1, shared.Carbon: 3})
	require.NoError(t, err)
	assert.Equal(t, 9, p.Ledger().Get(shared.Iron))
	assert.Equal(t, 0, p.Ledger().Get(shared.Carbon))

	_, err = p.LoadCargo(builder.ID(), shared.Quantities{shared.Iron: 1})
	assert.ErrorIs(t, err, shared.ErrIneligibleActor)
}

func TestUpdateResourcesAndSnapshot(t *testing.T) {
	w := helpers.NewTestWorld(t)
	p := w.RegisterPlayer(t, "p1")

	require.NoError(t, p.UpdateResources(shared.Quantities{shared.Gold: 42}))

	st := p.Snapshot()
	assert.Equal(t, "p1", st.ID)
	assert.Equal(t, 42, st.Resources[shared.Gold])
	assert.Equal(t, 20, st.Resources[shared.Carbon])
}
