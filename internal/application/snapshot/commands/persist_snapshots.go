package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spaceshard-go/internal/application/common"
	"github.com/andrescamacho/spaceshard-go/internal/application/mediator"
	"github.com/andrescamacho/spaceshard-go/internal/domain/player"
	"github.com/andrescamacho/spaceshard-go/internal/domain/scheduler"
)

// PersistSnapshotsCommand writes one snapshot row per player
type PersistSnapshotsCommand struct{}

// PersistSnapshotsResponse reports how many players were written
type PersistSnapshotsResponse struct {
	Players int
}

// PersistSnapshotsHandler handles the PersistSnapshots command
type PersistSnapshotsHandler struct {
	playerRepo   player.Repository
	snapshotRepo player.SnapshotRepository
	sched        *scheduler.Scheduler
}

// NewPersistSnapshotsHandler creates a new PersistSnapshotsHandler
func NewPersistSnapshotsHandler(
	playerRepo player.Repository,
	snapshotRepo player.SnapshotRepository,
	sched *scheduler.Scheduler,
) *PersistSnapshotsHandler {
	return &PersistSnapshotsHandler{playerRepo: playerRepo, snapshotRepo: snapshotRepo, sched: sched}
}

// Handle executes the PersistSnapshots command
func (h *PersistSnapshotsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*PersistSnapshotsCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *PersistSnapshotsCommand")
	}

	players, err := h.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	if len(players) == 0 {
		return &PersistSnapshotsResponse{}, nil
	}

	now := h.sched.Now()
	records := make([]*player.SnapshotRecord, 0, len(players))
	for _, p := range players {
		records = append(records, p.Record(now))
	}
	if err := h.snapshotRepo.Save(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to save snapshots: %w", err)
	}

	common.LoggerFromContext(ctx).Log("DEBUG", "snapshots persisted", map[string]interface{}{
		"players": len(records),
	})
	return &PersistSnapshotsResponse{Players: len(records)}, nil
}
