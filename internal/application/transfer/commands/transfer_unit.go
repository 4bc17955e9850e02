package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/spaceshard-go/internal/application/common"
	"github.com/andrescamacho/spaceshard-go/internal/application/mediator"
	"github.com/andrescamacho/spaceshard-go/internal/domain/galaxy"
	"github.com/andrescamacho/spaceshard-go/internal/domain/player"
	"github.com/andrescamacho/spaceshard-go/internal/domain/scheduler"
	"github.com/andrescamacho/spaceshard-go/internal/domain/transfer"
)

// TransferUnitCommand sends a unit and its owner's state through a wormhole
type TransferUnitCommand struct {
	PlayerID string
	UnitID   string
	Wormhole string
}

// TransferUnitResponse tells the caller where the unit now lives
type TransferUnitResponse struct {
	Redirect string
	Record   *transfer.Record
}

// TransferUnitHandler handles the TransferUnit command
type TransferUnitHandler struct {
	playerRepo player.Repository
	sector     *galaxy.Sector
	gateway    transfer.Gateway
	logRepo    transfer.LogRepository
	reporter   transfer.Reporter
	sched      *scheduler.Scheduler
}

// NewTransferUnitHandler creates a new TransferUnitHandler. logRepo and reporter may
// be nil.
func NewTransferUnitHandler(
	playerRepo player.Repository,
	sector *galaxy.Sector,
	gateway transfer.Gateway,
	logRepo transfer.LogRepository,
	reporter transfer.Reporter,
	sched *scheduler.Scheduler,
) *TransferUnitHandler {
	return &TransferUnitHandler{
		playerRepo: playerRepo,
		sector:     sector,
		gateway:    gateway,
		logRepo:    logRepo,
		reporter:   reporter,
		sched:      sched,
	}
}

// Handle executes the TransferUnit command
func (h *TransferUnitHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*TransferUnitCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *TransferUnitCommand")
	}

	p, err := h.playerRepo.FindByID(ctx, cmd.PlayerID)
	if err != nil {
		return nil, err
	}
	u, err := p.Unit(cmd.UnitID)
	if err != nil {
		return nil, err
	}
	wormhole, err := h.sector.Wormhole(cmd.Wormhole)
	if err != nil {
		return nil, err
	}

	pkg := transfer.NewPackage(wormhole, p.Snapshot(), u.Snapshot())
	record := &transfer.Record{
		ID:          uuid.NewString(),
		PlayerID:    cmd.PlayerID,
		UnitID:      cmd.UnitID,
		UnitType:    pkg.Unit.Type,
		Destination: wormhole.Name,
		Redirect:    pkg.RedirectTarget(),
		At:          h.sched.Now(),
	}

	logger := common.LoggerFromContext(ctx)
	deliverErr := h.gateway.Deliver(ctx, pkg)
	if deliverErr == nil {
		if _, err := p.RemoveUnit(cmd.UnitID); err != nil {
			deliverErr = fmt.Errorf("unit delivered but not released locally: %w", err)
		}
	}
	record.Succeeded = deliverErr == nil
	if deliverErr != nil {
		record.Error = deliverErr.Error()
	}

	if h.reporter != nil {
		h.reporter.RecordTransfer(wormhole.Name, record.Succeeded)
	}
	if h.logRepo != nil {
		if err := h.logRepo.Save(ctx, record); err != nil {
			logger.Log("WARN", "failed to record transfer", map[string]interface{}{
				"transfer_id": record.ID,
				"error":       err.Error(),
			})
		}
	}

	if deliverErr != nil {
		logger.Log("ERROR", "unit transfer failed", map[string]interface{}{
			"player_id":   cmd.PlayerID,
			"unit_id":     cmd.UnitID,
			"destination": wormhole.Name,
			"error":       deliverErr.Error(),
		})
		return nil, fmt.Errorf("failed to transfer unit %s to %s: %w", cmd.UnitID, wormhole.Name, deliverErr)
	}

	logger.Log("INFO", "unit transferred", map[string]interface{}{
		"player_id":   cmd.PlayerID,
		"unit_id":     cmd.UnitID,
		"destination": wormhole.Name,
		"redirect":    record.Redirect,
	})
	return &TransferUnitResponse{Redirect: record.Redirect, Record: record}, nil
}
