package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spaceshard-go/internal/application/common"
	"github.com/andrescamacho/spaceshard-go/internal/application/mediator"
	"github.com/andrescamacho/spaceshard-go/internal/domain/player"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

// LoadCargoCommand sets a cargo unit's trunk to the given quantities
type LoadCargoCommand struct {
	PlayerID  string
	UnitID    string
	Resources map[string]int
}

// LoadCargoResponse carries the loaded unit and the owner's remaining resources
type LoadCargoResponse struct {
	Unit   *common.UnitView
	Player *common.PlayerView
}

// LoadCargoHandler handles the LoadCargo command
type LoadCargoHandler struct {
	playerRepo player.Repository
}

// NewLoadCargoHandler creates a new LoadCargoHandler
func NewLoadCargoHandler(playerRepo player.Repository) *LoadCargoHandler {
	return &LoadCargoHandler{playerRepo: playerRepo}
}

// Handle executes the LoadCargo command
func (h *LoadCargoHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*LoadCargoCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *LoadCargoCommand")
	}

	desired, err := shared.QuantitiesFromStrings(cmd.Resources)
	if err != nil {
		return nil, err
	}
	p, err := h.playerRepo.FindByID(ctx, cmd.PlayerID)
	if err != nil {
		return nil, err
	}
	u, err := p.LoadCargo(cmd.UnitID, desired)
	if err != nil {
		return nil, err
	}
	return &LoadCargoResponse{Unit: common.NewUnitView(u), Player: common.NewPlayerView(p)}, nil
}
