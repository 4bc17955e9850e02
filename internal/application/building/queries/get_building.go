package queries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andrescamacho/spaceshard-go/internal/application/common"
	"github.com/andrescamacho/spaceshard-go/internal/application/mediator"
	"github.com/andrescamacho/spaceshard-go/internal/domain/player"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

// CompletionWaitThreshold is how close to completion a construction must be for a
// read to wait for it
const CompletionWaitThreshold = 2 * time.Second

// GetBuildingQuery fetches one building of a player
type GetBuildingQuery struct {
	PlayerID   string
	BuildingID string
}

// GetBuildingResponse carries the building
type GetBuildingResponse struct {
	Building *common.BuildingView
}

// GetBuildingHandler handles the GetBuilding query
type GetBuildingHandler struct {
	playerRepo player.Repository
}

// NewGetBuildingHandler creates a new GetBuildingHandler
func NewGetBuildingHandler(playerRepo player.Repository) *GetBuildingHandler {
	return &GetBuildingHandler{playerRepo: playerRepo}
}

// Handle executes the GetBuilding query. A construction about to finish is waited
// for; one cancelled while waiting is reported as not found once its builder has
// reached wherever it was heading.
func (h *GetBuildingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetBuildingQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetBuildingQuery")
	}

	p, err := h.playerRepo.FindByID(ctx, query.PlayerID)
	if err != nil {
		return nil, err
	}
	b, err := p.Building(query.BuildingID)
	if err != nil {
		return nil, err
	}

	if remaining, pending := b.RemainingConstruction(); pending && remaining <= CompletionWaitThreshold {
		err := b.AwaitBuilt(ctx)
		switch {
		case errors.Is(err, shared.ErrCancelled):
			if err := b.Builder().AwaitArrival(ctx); err != nil && !errors.Is(err, shared.ErrCancelled) {
				return nil, err
			}
			return nil, shared.NewNotFoundError("building", query.BuildingID)
		case err != nil:
			return nil, err
		}
	}
	if b.IsCancelled() {
		return nil, shared.NewNotFoundError("building", query.BuildingID)
	}
	return &GetBuildingResponse{Building: common.NewBuildingView(b)}, nil
}
