package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spaceshard-go/internal/application/common"
	"github.com/andrescamacho/spaceshard-go/internal/application/mediator"
	"github.com/andrescamacho/spaceshard-go/internal/domain/player"
)

// GetUnitLocationQuery describes where a unit stands and what it can see there
type GetUnitLocationQuery struct {
	PlayerID string
	UnitID   string
}

// GetUnitLocationResponse carries the location
type GetUnitLocationResponse struct {
	Location *common.LocationView
}

// GetUnitLocationHandler handles the GetUnitLocation query
type GetUnitLocationHandler struct {
	playerRepo player.Repository
}

// NewGetUnitLocationHandler creates a new GetUnitLocationHandler
func NewGetUnitLocationHandler(playerRepo player.Repository) *GetUnitLocationHandler {
	return &GetUnitLocationHandler{playerRepo: playerRepo}
}

// Handle executes the GetUnitLocation query
func (h *GetUnitLocationHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetUnitLocationQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetUnitLocationQuery")
	}

	p, err := h.playerRepo.FindByID(ctx, query.PlayerID)
	if err != nil {
		return nil, err
	}
	u, err := p.Unit(query.UnitID)
	if err != nil {
		return nil, err
	}
	return &GetUnitLocationResponse{Location: common.NewLocationView(u)}, nil
}
