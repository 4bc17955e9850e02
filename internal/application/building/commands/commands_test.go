package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spaceshard-go/internal/application/building/commands"
	unitCmd "github.com/andrescamacho/spaceshard-go/internal/application/unit/commands"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
	"github.com/andrescamacho/spaceshard-go/test/helpers"
)

// builderOn places a builder for alice on a planet of Alpha and returns its id
func builderOn(t *testing.T, app *helpers.TestApp, planet string) string {
	t.Helper()
	resp, err := app.Mediator.Send(helpers.AsAdmin(), &unitCmd.CreateUnitCommand{
		PlayerID: "alice", Type: "builder", System: "Alpha", Planet: planet,
	})
	require.NoError(t, err)
	return resp.(*unitCmd.CreateUnitResponse).Unit.ID
}

func TestCreateBuilding_StarportTakesFiveMinutes(t *testing.T) {
	app := helpers.NewTestApp(t)
	app.AddPlayer(t, "alice")
	builderID := builderOn(t, app, "Alpha I")
	ctx := helpers.As(shared.RoleUser, "alice")

	resp, err := app.Mediator.Send(ctx, &commands.CreateBuildingCommand{
		PlayerID: "alice", BuilderID: builderID, Type: "starport",
	})

	require.NoError(t, err)
	b := resp.(*commands.CreateBuildingResponse).Building
	assert.False(t, b.IsBuilt)
	assert.Equal(t, "Alpha I", b.Planet)
	require.NotNil(t, b.EstimatedBuildTime)
	assert.Equal(t, helpers.Epoch.Add(5*time.Minute), *b.EstimatedBuildTime)

	app.Scheduler.Advance(5 * time.Minute)

	planet := app.Planet(t, "Alpha", "Alpha I")
	assert.True(t, planet.HasBuilt("starport"))
}

func TestCreateBuilding_MineNeedsCategory(t *testing.T) {
	app := helpers.NewTestApp(t)
	app.AddPlayer(t, "alice")
	builderID := builderOn(t, app, "Alpha I")

	_, err := app.Mediator.Send(helpers.As(shared.RoleUser, "alice"), &commands.CreateBuildingCommand{
		PlayerID: "alice", BuilderID: builderID, Type: "mine",
	})

	assert.ErrorIs(t, err, shared.ErrInvalidRequest)
}

func TestCreateBuilding_RejectsUnknownType(t *testing.T) {
	app := helpers.NewTestApp(t)
	app.AddPlayer(t, "alice")
	builderID := builderOn(t, app, "Alpha I")

	_, err := app.Mediator.Send(helpers.As(shared.RoleUser, "alice"), &commands.CreateBuildingCommand{
		PlayerID: "alice", BuilderID: builderID, Type: "shipyard",
	})

	assert.ErrorIs(t, err, shared.ErrInvalidRequest)
}

func TestUseBuilding_StarportProducesUnitAndDebitsLedger(t *testing.T) {
	app := helpers.NewTestApp(t)
	app.AddPlayer(t, "alice")
	builderID := builderOn(t, app, "Alpha I")
	ctx := helpers.As(shared.RoleUser, "alice")
	resp, err := app.Mediator.Send(ctx, &commands.CreateBuildingCommand{
		PlayerID: "alice", BuilderID: builderID, Type: "starport",
	})
	require.NoError(t, err)
	buildingID := resp.(*commands.CreateBuildingResponse).Building.ID

	_, err = app.Mediator.Send(ctx, &commands.UseBuildingCommand{PlayerID: "alice", BuildingID: buildingID, UnitType: "scout"})
	assert.ErrorIs(t, err, shared.ErrIneligibleActor)

	app.Scheduler.Advance(5 * time.Minute)
	out, err := app.Mediator.Send(ctx, &commands.UseBuildingCommand{PlayerID: "alice", BuildingID: buildingID, UnitType: "scout"})

	require.NoError(t, err)
	used := out.(*commands.UseBuildingResponse)
	require.NotNil(t, used.Unit)
	assert.Equal(t, "scout", used.Unit.Type)
	assert.Equal(t, "Alpha I", used.Unit.Planet)
	assert.Equal(t, 15, used.Player.ResourcesQuantity["carbon"])
	assert.Equal(t, 5, used.Player.ResourcesQuantity["iron"])

	_, err = app.Mediator.Send(ctx, &commands.UseBuildingCommand{PlayerID: "alice", BuildingID: buildingID, UnitType: "fighter"})
	assert.ErrorIs(t, err, shared.ErrInsufficientResources)
}

func TestUseBuilding_MineRunsOneCycle(t *testing.T) {
	app := helpers.NewTestApp(t)
	app.AddPlayer(t, "alice")
	builderID := builderOn(t, app, "Alpha II")
	ctx := helpers.As(shared.RoleUser, "alice")
	resp, err := app.Mediator.Send(ctx, &commands.CreateBuildingCommand{
		PlayerID: "alice", BuilderID: builderID, Type: "mine", ResourceCategory: "solid",
	})
	require.NoError(t, err)
	app.Scheduler.Advance(5 * time.Minute)

	out, err := app.Mediator.Send(ctx, &commands.UseBuildingCommand{
		PlayerID: "alice", BuildingID: resp.(*commands.CreateBuildingResponse).Building.ID,
	})

	require.NoError(t, err)
	used := out.(*commands.UseBuildingResponse)
	assert.Nil(t, used.Unit)
	assert.Equal(t, 1, used.Player.ResourcesQuantity["gold"])

	p, err := app.Players.FindByID(context.Background(), "alice")
	require.NoError(t, err)
	assert.Len(t, p.Buildings(), 1)
}
