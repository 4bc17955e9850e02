package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spaceshard-go/internal/application/mediator"
	"github.com/andrescamacho/spaceshard-go/internal/domain/transfer"
)

// ListTransfersQuery lists the transfer attempts of a player, newest first
type ListTransfersQuery struct {
	PlayerID string
}

// ListTransfersResponse carries the transfer records
type ListTransfersResponse struct {
	Transfers []*transfer.Record
}

// ListTransfersHandler handles the ListTransfers query
type ListTransfersHandler struct {
	logRepo transfer.LogRepository
}

// NewListTransfersHandler creates a new ListTransfersHandler
func NewListTransfersHandler(logRepo transfer.LogRepository) *ListTransfersHandler {
	return &ListTransfersHandler{logRepo: logRepo}
}

// Handle executes the ListTransfers query
func (h *ListTransfersHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListTransfersQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListTransfersQuery")
	}

	records, err := h.logRepo.ListByPlayer(ctx, query.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	return &ListTransfersResponse{Transfers: records}, nil
}
