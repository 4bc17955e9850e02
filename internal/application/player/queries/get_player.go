package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spaceshard-go/internal/application/common"
	"github.com/andrescamacho/spaceshard-go/internal/application/mediator"
	"github.com/andrescamacho/spaceshard-go/internal/domain/player"
)

// GetPlayerQuery fetches one player
type GetPlayerQuery struct {
	PlayerID string
}

// GetPlayerResponse carries the player
type GetPlayerResponse struct {
	Player *common.PlayerView
}

// GetPlayerHandler handles the GetPlayer query
type GetPlayerHandler struct {
	playerRepo player.Repository
}

// NewGetPlayerHandler creates a new GetPlayerHandler
func NewGetPlayerHandler(playerRepo player.Repository) *GetPlayerHandler {
	return &GetPlayerHandler{playerRepo: playerRepo}
}

// Handle executes the GetPlayer query
func (h *GetPlayerHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetPlayerQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetPlayerQuery")
	}

	p, err := h.playerRepo.FindByID(ctx, query.PlayerID)
	if err != nil {
		return nil, err
	}
	return &GetPlayerResponse{Player: common.NewPlayerView(p)}, nil
}

// ListPlayersQuery lists every player of the shard
type ListPlayersQuery struct{}

// ListPlayersResponse carries the players
type ListPlayersResponse struct {
	Players []*common.PlayerView
}

// ListPlayersHandler handles the ListPlayers query
type ListPlayersHandler struct {
	playerRepo player.Repository
}

// NewListPlayersHandler creates a new ListPlayersHandler
func NewListPlayersHandler(playerRepo player.Repository) *ListPlayersHandler {
	return &ListPlayersHandler{playerRepo: playerRepo}
}

// Handle executes the ListPlayers query
func (h *ListPlayersHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ListPlayersQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListPlayersQuery")
	}

	players, err := h.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	views := make([]*common.PlayerView, 0, len(players))
	for _, p := range players {
		views = append(views, common.NewPlayerView(p))
	}
	return &ListPlayersResponse{Players: views}, nil
}
