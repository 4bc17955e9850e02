package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spaceshard-go/internal/application/common"
	"github.com/andrescamacho/spaceshard-go/internal/application/mediator"
	"github.com/andrescamacho/spaceshard-go/internal/domain/player"
)

// ListUnitsQuery lists the units of a player in creation order
type ListUnitsQuery struct {
	PlayerID string
}

// ListUnitsResponse carries the units
type ListUnitsResponse struct {
	Units []*common.UnitView
}

// ListUnitsHandler handles the ListUnits query
type ListUnitsHandler struct {
	playerRepo player.Repository
}

// NewListUnitsHandler creates a new ListUnitsHandler
func NewListUnitsHandler(playerRepo player.Repository) *ListUnitsHandler {
	return &ListUnitsHandler{playerRepo: playerRepo}
}

// Handle executes the ListUnits query
func (h *ListUnitsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListUnitsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListUnitsQuery")
	}

	p, err := h.playerRepo.FindByID(ctx, query.PlayerID)
	if err != nil {
		return nil, err
	}
	units := p.Units()
	views := make([]*common.UnitView, 0, len(units))
	for _, u := range units {
		views = append(views, common.NewUnitView(u))
	}
	return &ListUnitsResponse{Units: views}, nil
}
