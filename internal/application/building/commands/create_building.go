package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spaceshard-go/internal/application/common"
	"github.com/andrescamacho/spaceshard-go/internal/application/mediator"
	"github.com/andrescamacho/spaceshard-go/internal/domain/building"
	"github.com/andrescamacho/spaceshard-go/internal/domain/player"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

// CreateBuildingCommand has a builder start a construction on the planet it stands on
type CreateBuildingCommand struct {
	PlayerID  string
	BuilderID string
	Type      string
	// ResourceCategory is required for mines
	ResourceCategory string
}

// CreateBuildingResponse carries the building under construction
type CreateBuildingResponse struct {
	Building *common.BuildingView
}

// CreateBuildingHandler handles the CreateBuilding command
type CreateBuildingHandler struct {
	playerRepo player.Repository
}

// NewCreateBuildingHandler creates a new CreateBuildingHandler
func NewCreateBuildingHandler(playerRepo player.Repository) *CreateBuildingHandler {
	return &CreateBuildingHandler{playerRepo: playerRepo}
}

// Handle executes the CreateBuilding command
func (h *CreateBuildingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CreateBuildingCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CreateBuildingCommand")
	}

	buildingType, err := building.ParseType(cmd.Type)
	if err != nil {
		return nil, err
	}
	var category shared.ResourceCategory
	if cmd.ResourceCategory != "" {
		if category, err = shared.ParseResourceCategory(cmd.ResourceCategory); err != nil {
			return nil, err
		}
	}

	p, err := h.playerRepo.FindByID(ctx, cmd.PlayerID)
	if err != nil {
		return nil, err
	}
	b, err := p.StartBuilding(cmd.BuilderID, buildingType, category)
	if err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log("INFO", "construction started", map[string]interface{}{
		"player_id":   cmd.PlayerID,
		"building_id": b.ID(),
		"type":        string(buildingType),
		"planet":      b.Planet().Name(),
	})
	return &CreateBuildingResponse{Building: common.NewBuildingView(b)}, nil
}
