package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spaceshard-go/internal/application/common"
	"github.com/andrescamacho/spaceshard-go/internal/application/mediator"
	"github.com/andrescamacho/spaceshard-go/internal/domain/player"
)

// ListBuildingsQuery lists the buildings of a player in creation order
type ListBuildingsQuery struct {
	PlayerID string
}

// ListBuildingsResponse carries the buildings
type ListBuildingsResponse struct {
	Buildings []*common.BuildingView
}

// ListBuildingsHandler handles the ListBuildings query
type ListBuildingsHandler struct {
	playerRepo player.Repository
}

// NewListBuildingsHandler creates a new ListBuildingsHandler
func NewListBuildingsHandler(playerRepo player.Repository) *ListBuildingsHandler {
	return &ListBuildingsHandler{playerRepo: playerRepo}
}

// Handle executes the ListBuildings query
func (h *ListBuildingsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListBuildingsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListBuildingsQuery")
	}

	p, err := h.playerRepo.FindByID(ctx, query.PlayerID)
	if err != nil {
		return nil, err
	}
	buildings := p.Buildings()
	views := make([]*common.BuildingView, 0, len(buildings))
	for _, b := range buildings {
		views = append(views, common.NewBuildingView(b))
	}
	return &ListBuildingsResponse{Buildings: views}, nil
}
