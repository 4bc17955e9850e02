package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spaceshard-go/internal/application/player/commands"
	"github.com/andrescamacho/spaceshard-go/internal/domain/ledger"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
	"github.com/andrescamacho/spaceshard-go/test/helpers"
)

func TestRegisterPlayer_CreatesPlayerWithStarterLedger(t *testing.T) {
	app := helpers.NewTestApp(t)

	resp, err := app.Mediator.Send(context.Background(), &commands.RegisterPlayerCommand{PlayerID: "alice", Pseudo: "Alice"})

	require.NoError(t, err)
	out := resp.(*commands.RegisterPlayerResponse)
	assert.True(t, out.Created)
	assert.Equal(t, "Alice", out.Player.Pseudo)
	assert.Equal(t, helpers.Epoch, out.Player.DateOfCreation)
	assert.Equal(t, ledger.StarterQuantities().StringKeys(), out.Player.ResourcesQuantity)
	assert.Equal(t, 1, app.Players.Count())
}

func TestRegisterPlayer_DuplicateIsRefusedForUsers(t *testing.T) {
	app := helpers.NewTestApp(t)
	app.AddPlayer(t, "alice")

	_, err := app.Mediator.Send(helpers.As(shared.RoleUser, "alice"), &commands.RegisterPlayerCommand{PlayerID: "alice"})

	assert.ErrorIs(t, err, shared.ErrInvalidRequest)
}

func TestRegisterPlayer_AdminOverwritesResources(t *testing.T) {
	app := helpers.NewTestApp(t)
	app.AddPlayer(t, "alice")

	resp, err := app.Mediator.Send(helpers.AsAdmin(), &commands.RegisterPlayerCommand{
		PlayerID:  "alice",
		Resources: map[string]int{"gold": 7, "iron": 0},
	})

	require.NoError(t, err)
	out := resp.(*commands.RegisterPlayerResponse)
	assert.False(t, out.Created)
	assert.Equal(t, 7, out.Player.ResourcesQuantity["gold"])
	assert.Equal(t, 0, out.Player.ResourcesQuantity["iron"])
	assert.Equal(t, 20, out.Player.ResourcesQuantity["carbon"])
}

func TestRegisterPlayer_ShardArrivalKeepsHistory(t *testing.T) {
	app := helpers.NewTestApp(t)
	created := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)

	_, err := app.Mediator.Send(helpers.As(shared.RoleShard, "shard-west"), &commands.RegisterPlayerCommand{
		PlayerID:  "bob",
		Pseudo:    "Bob",
		CreatedAt: &created,
		Resources: map[string]int{"titanium": 3},
	})

	require.NoError(t, err)
	p, err := app.Players.FindByID(context.Background(), "bob")
	require.NoError(t, err)
	assert.Empty(t, p.Units())
	assert.Equal(t, created, p.CreatedAt())
	assert.Equal(t, 3, p.Ledger().Snapshot()[shared.Titanium])
	assert.Equal(t, 0, p.Ledger().Snapshot()[shared.Oxygen])
}

func TestRegisterPlayer_RejectsInvalidIdentifier(t *testing.T) {
	app := helpers.NewTestApp(t)

	_, err := app.Mediator.Send(context.Background(), &commands.RegisterPlayerCommand{PlayerID: "not valid"})

	assert.ErrorIs(t, err, shared.ErrInvalidIdentifier)
	assert.Zero(t, app.Players.Count())
}
