package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spaceshard-go/internal/application/common"
	"github.com/andrescamacho/spaceshard-go/internal/application/mediator"
	"github.com/andrescamacho/spaceshard-go/internal/domain/building"
	"github.com/andrescamacho/spaceshard-go/internal/domain/player"
	"github.com/andrescamacho/spaceshard-go/internal/domain/unit"
)

// UseBuildingCommand runs a building's effect: a starport produces a unit of UnitType,
// a mine runs one production cycle
type UseBuildingCommand struct {
	PlayerID   string
	BuildingID string
	UnitType   string
}

// UseBuildingResponse carries the produced unit, if any, and the owner's resources
type UseBuildingResponse struct {
	Unit   *common.UnitView
	Player *common.PlayerView
}

// UseBuildingHandler handles the UseBuilding command
type UseBuildingHandler struct {
	playerRepo player.Repository
}

// NewUseBuildingHandler creates a new UseBuildingHandler
func NewUseBuildingHandler(playerRepo player.Repository) *UseBuildingHandler {
	return &UseBuildingHandler{playerRepo: playerRepo}
}

// Handle executes the UseBuilding command
func (h *UseBuildingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*UseBuildingCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *UseBuildingCommand")
	}

	p, err := h.playerRepo.FindByID(ctx, cmd.PlayerID)
	if err != nil {
		return nil, err
	}
	b, err := p.Building(cmd.BuildingID)
	if err != nil {
		return nil, err
	}

	var unitType unit.Type
	if b.Type() == building.Starport {
		if unitType, err = unit.ParseType(cmd.UnitType); err != nil {
			return nil, err
		}
	}

	u, err := b.Use(unitType)
	if err != nil {
		return nil, err
	}

	resp := &UseBuildingResponse{Player: common.NewPlayerView(p)}
	if u != nil {
		resp.Unit = common.NewUnitView(u)
		common.LoggerFromContext(ctx).Log("INFO", "unit produced", map[string]interface{}{
			"player_id":   cmd.PlayerID,
			"building_id": cmd.BuildingID,
			"unit_id":     u.ID(),
			"unit_type":   string(unitType),
		})
	}
	return resp, nil
}
