package galaxy_test

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spaceshard-go/internal/domain/galaxy"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

func newTestSector() *galaxy.Sector {
	alpha := galaxy.NewSystem("Alpha", []*galaxy.Planet{galaxy.NewPlanet("Alpha I", 2, nil)})
	beta := galaxy.NewSystem("Beta", nil)
	return galaxy.NewSector([]*galaxy.System{alpha, beta}, rand.New(rand.NewSource(1)))
}

func TestSector_SystemLookup(t *testing.T) {
	sector := newTestSector()

	sys, err := sector.System("Beta")
	require.NoError(t, err)
	assert.Equal(t, "Beta", sys.Name())

	_, err = sector.System("Gamma")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSector_PlanetBacklink(t *testing.T) {
	sector := newTestSector()
	alpha, _ := sector.System("Alpha")

	planet, err := alpha.Planet("Alpha I")
	require.NoError(t, err)
	assert.Same(t, alpha, planet.System())

	_, err = alpha.Planet("Alpha IX")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSector_RandomSystemIsAMember(t *testing.T) {
	sector := newTestSector()
	for i := 0; i < 20; i++ {
		sys := sector.RandomSystem()
		_, err := sector.System(sys.Name())
		assert.NoError(t, err)
	}
}

func TestSector_AttachWormholesSkipsUnknownSystems(t *testing.T) {
	sector := newTestSector()

	skipped := sector.AttachWormholes([]galaxy.Wormhole{
		{Name: "shard-b", BaseURI: "http://b", System: "Alpha", User: "a", SharedPassword: "pw"},
		{Name: "shard-c", BaseURI: "http://c", System: "Nowhere"},
	})

	assert.Equal(t, []string{"shard-c"}, skipped)
	wh, err := sector.Wormhole("shard-b")
	require.NoError(t, err)
	assert.Equal(t, "http://b/users/p1/units/u1", wh.UnitURL("p1", "u1"))
	user, pw := wh.Credentials()
	assert.Equal(t, "shard-a", user)
	assert.Equal(t, "pw", pw)

	_, err = sector.Wormhole("shard-c")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	arrival, err := sector.ArrivalSystem()
	require.NoError(t, err)
	assert.Equal(t, "Alpha", arrival.Name())
}

func TestSystemOccupants(t *testing.T) {
	sys := galaxy.NewSystem("Alpha", nil)
	sys.AddOccupant(occupant("u2"))
	sys.AddOccupant(occupant("u1"))

	ids := []string{}
	for _, o := range sys.Occupants() {
		ids = append(ids, o.ID())
	}
	assert.Equal(t, []string{"u1", "u2"}, ids)

	sys.RemoveOccupant("u1")
	assert.False(t, sys.HasOccupant("u1"))
	assert.True(t, sys.HasOccupant("u2"))
}

type occupant string

func (o occupant) ID() string { return string(o) }

func TestGenerate_IsDeterministic(t *testing.T) {
	a := galaxy.Generate(galaxy.DefaultSeed, galaxy.DefaultGeneratorOptions())
	b := galaxy.Generate(galaxy.DefaultSeed, galaxy.DefaultGeneratorOptions())
	c := galaxy.Generate("another seed", galaxy.DefaultGeneratorOptions())

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a.Systems, 10)
	require.NoError(t, a.Validate())
}

func TestSpecification_YAMLRoundTripBuildsSector(t *testing.T) {
	spec := galaxy.Generate("yaml", galaxy.GeneratorOptions{Systems: 3, MinPlanets: 1, MaxPlanets: 2, MaxDeposit: 10})
	raw, err := spec.YAML()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sector.yaml")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	loaded, err := galaxy.LoadSpecification(path)
	require.NoError(t, err)
	sector, err := loaded.Build(rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Len(t, sector.Systems(), 3)
}

func TestSpecification_RejectsUnknownResource(t *testing.T) {
	spec := &galaxy.SectorSpecification{Systems: []galaxy.SystemSpecification{{
		Name:    "Alpha",
		Planets: []galaxy.PlanetSpecification{{Name: "Alpha I", Deposit: map[string]int{"unobtainium": 3}}},
	}}}

	assert.Error(t, spec.Validate())
}
