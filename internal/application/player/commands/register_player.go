package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andrescamacho/spaceshard-go/internal/application/auth"
	"github.com/andrescamacho/spaceshard-go/internal/application/common"
	"github.com/andrescamacho/spaceshard-go/internal/application/mediator"
	"github.com/andrescamacho/spaceshard-go/internal/domain/player"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

// RegisterPlayerCommand creates a player, or updates the resources of an existing one
// when issued by an admin or a sibling shard
type RegisterPlayerCommand struct {
	PlayerID string
	Pseudo   string
	// CreatedAt is honoured for players arriving from a sibling shard
	CreatedAt *time.Time
	// Resources are absolute balances, applied to existing players (admin or shard) and
	// to players arriving from a sibling shard
	Resources map[string]int
}

// RegisterPlayerResponse carries the registered player
type RegisterPlayerResponse struct {
	Player  *common.PlayerView
	Created bool
}

// RegisterPlayerHandler handles the RegisterPlayer command
type RegisterPlayerHandler struct {
	playerRepo player.Repository
	deps       *player.Dependencies
}

// NewRegisterPlayerHandler creates a new RegisterPlayerHandler
func NewRegisterPlayerHandler(playerRepo player.Repository, deps *player.Dependencies) *RegisterPlayerHandler {
	return &RegisterPlayerHandler{playerRepo: playerRepo, deps: deps}
}

// Handle executes the RegisterPlayer command
func (h *RegisterPlayerHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RegisterPlayerCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RegisterPlayerCommand")
	}
	if _, err := shared.NewPlayerID(cmd.PlayerID); err != nil {
		return nil, err
	}

	resources, err := shared.QuantitiesFromStrings(cmd.Resources)
	if err != nil {
		return nil, err
	}

	caller := auth.CallerFromContext(ctx)
	logger := common.LoggerFromContext(ctx)

	existing, err := h.playerRepo.FindByID(ctx, cmd.PlayerID)
	switch {
	case err == nil:
		if !caller.Role.Elevated() {
			return nil, shared.NewInvalidRequestError(fmt.Sprintf("player %s already exists", cmd.PlayerID))
		}
		if err := existing.UpdateResources(resources); err != nil {
			return nil, err
		}
		logger.Log("INFO", "player resources updated", map[string]interface{}{
			"player_id": cmd.PlayerID,
			"role":      caller.Role.String(),
		})
		return &RegisterPlayerResponse{Player: common.NewPlayerView(existing)}, nil
	case !errors.Is(err, shared.ErrNotFound):
		return nil, fmt.Errorf("failed to look up player: %w", err)
	}

	transfer := caller.Role == shared.RoleShard
	p, err := player.Register(h.deps, player.Registration{
		ID:        cmd.PlayerID,
		Pseudo:    cmd.Pseudo,
		Transfer:  transfer,
		CreatedAt: cmd.CreatedAt,
	})
	if err != nil {
		return nil, err
	}
	if transfer {
		if err := p.UpdateResources(resources); err != nil {
			return nil, err
		}
	}
	if err := h.playerRepo.Add(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save player: %w", err)
	}

	logger.Log("INFO", "player registered", map[string]interface{}{
		"player_id": cmd.PlayerID,
		"transfer":  transfer,
	})
	return &RegisterPlayerResponse{Player: common.NewPlayerView(p), Created: true}, nil
}
