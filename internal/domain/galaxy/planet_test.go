package galaxy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spaceshard-go/internal/domain/galaxy"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

type stubStructure struct {
	id    string
	kind  string
	built bool
}

func (s stubStructure) ID() string       { return s.id }
func (s stubStructure) TypeName() string { return s.kind }
func (s stubStructure) IsBuilt() bool    { return s.built }

func TestRemoveOneUnit_PicksMostPresentInCategory(t *testing.T) {
	planet := galaxy.NewPlanet("Alpha I", 3, shared.Quantities{
		shared.Iron:   10,
		shared.Carbon: 4,
		shared.Water:  99,
	})

	kind, err := planet.RemoveOneUnitOfMostPresentResource(shared.Solid)

	require.NoError(t, err)
	assert.Equal(t, shared.Iron, kind)
	assert.Equal(t, 9, planet.Deposit()[shared.Iron])
	assert.Equal(t, 99, planet.Deposit()[shared.Water])
}

func TestRemoveOneUnit_TieGoesToRarerKind(t *testing.T) {
	planet := galaxy.NewPlanet("Alpha I", 3, shared.Quantities{
		shared.Iron:     5,
		shared.Gold:     5,
		shared.Titanium: 5,
	})

	kind, err := planet.RemoveOneUnitOfMostPresentResource(shared.Solid)

	require.NoError(t, err)
	assert.Equal(t, shared.Titanium, kind)
	assert.Equal(t, 4, planet.Deposit()[shared.Titanium])
}

func TestRemoveOneUnit_EmptyCategory(t *testing.T) {
	planet := galaxy.NewPlanet("Alpha I", 3, shared.Quantities{shared.Iron: 0, shared.Water: 3})

	_, err := planet.RemoveOneUnitOfMostPresentResource(shared.Solid)
	assert.ErrorIs(t, err, galaxy.ErrNoResourceLeft)

	_, err = planet.RemoveOneUnitOfMostPresentResource(shared.Gaseous)
	assert.ErrorIs(t, err, galaxy.ErrNoResourceLeft)
}

func TestRemoveOneUnit_DrainsToZero(t *testing.T) {
	planet := galaxy.NewPlanet("Alpha I", 3, shared.Quantities{shared.Oxygen: 2})

	for i := 0; i < 2; i++ {
		_, err := planet.RemoveOneUnitOfMostPresentResource(shared.Gaseous)
		require.NoError(t, err)
	}
	_, err := planet.RemoveOneUnitOfMostPresentResource(shared.Gaseous)

	assert.ErrorIs(t, err, galaxy.ErrNoResourceLeft)
	assert.Equal(t, 0, planet.Deposit()[shared.Oxygen])
}

func TestPlanetBuildings(t *testing.T) {
	planet := galaxy.NewPlanet("Alpha I", 3, nil)
	planet.AddBuilding(stubStructure{id: "b1", kind: "starport"})
	planet.AddBuilding(stubStructure{id: "b2", kind: "starport", built: true})

	assert.True(t, planet.HasBuilt("starport"))
	assert.False(t, planet.HasBuilt("mine"))

	assert.True(t, planet.RemoveBuilding("b2"))
	assert.False(t, planet.RemoveBuilding("b2"))
	assert.False(t, planet.HasBuilt("starport"))
	assert.Len(t, planet.Buildings(), 1)
}
