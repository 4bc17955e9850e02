package queries_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spaceshard-go/internal/application/galaxy/queries"
	"github.com/andrescamacho/spaceshard-go/internal/domain/galaxy"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
	"github.com/andrescamacho/spaceshard-go/test/helpers"
)

func TestListSystems_HidesWormholeCredentials(t *testing.T) {
	app := helpers.NewTestApp(t, galaxy.Wormhole{
		Name: "west", BaseURI: "http://west.test", System: "Beta", User: "east", SharedPassword: "s3cret",
	})

	resp, err := app.Mediator.Send(context.Background(), &queries.ListSystemsQuery{})

	require.NoError(t, err)
	out := resp.(*queries.ListSystemsResponse)
	require.Len(t, out.Systems, 2)
	assert.Equal(t, "Alpha", out.Systems[0].Name)
	assert.Len(t, out.Systems[0].Planets, 2)
	assert.Equal(t, []*queries.WormholeView{{Name: "west", System: "Beta", BaseURI: "http://west.test"}}, out.Wormholes)
}

func TestGetSystem_ListsOccupants(t *testing.T) {
	app := helpers.NewTestApp(t)
	p := app.AddEmptyPlayer(t, "alice", shared.Quantities{})
	u, err := p.SpawnUnit("scout", app.System(t, "Beta"), nil)
	require.NoError(t, err)

	resp, err := app.Mediator.Send(context.Background(), &queries.GetSystemQuery{Name: "Beta"})

	require.NoError(t, err)
	out := resp.(*queries.GetSystemResponse)
	assert.Equal(t, "Beta", out.System.Name)
	assert.Equal(t, []string{u.ID()}, out.Occupants)
}

func TestGetSystem_Unknown(t *testing.T) {
	app := helpers.NewTestApp(t)

	_, err := app.Mediator.Send(context.Background(), &queries.GetSystemQuery{Name: "Gamma"})

	assert.ErrorIs(t, err, shared.ErrNotFound)
}
