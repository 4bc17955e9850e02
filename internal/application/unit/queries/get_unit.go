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

// ArrivalWaitThreshold is how close to arrival a unit must be for a read to wait for it
const ArrivalWaitThreshold = 2 * time.Second

// GetUnitQuery fetches one unit of a player
type GetUnitQuery struct {
	PlayerID string
	UnitID   string
}

// GetUnitResponse carries the unit
type GetUnitResponse struct {
	Unit *common.UnitView
}

// GetUnitHandler handles the GetUnit query
type GetUnitHandler struct {
	playerRepo player.Repository
}

// NewGetUnitHandler creates a new GetUnitHandler
func NewGetUnitHandler(playerRepo player.Repository) *GetUnitHandler {
	return &GetUnitHandler{playerRepo: playerRepo}
}

// Handle executes the GetUnit query. A unit about to arrive is waited for so the
// caller sees it at its destination.
func (h *GetUnitHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetUnitQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetUnitQuery")
	}

	p, err := h.playerRepo.FindByID(ctx, query.PlayerID)
	if err != nil {
		return nil, err
	}
	u, err := p.Unit(query.UnitID)
	if err != nil {
		return nil, err
	}

	if remaining, travelling := u.RemainingTravel(); travelling && remaining <= ArrivalWaitThreshold {
		if err := u.AwaitArrival(ctx); err != nil && !errors.Is(err, shared.ErrCancelled) {
			return nil, err
		}
	}
	if u.IsRemoved() {
		return nil, shared.NewNotFoundError("unit", query.UnitID)
	}
	return &GetUnitResponse{Unit: common.NewUnitView(u)}, nil
}
