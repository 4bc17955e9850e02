package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spaceshard-go/internal/application/common"
	"github.com/andrescamacho/spaceshard-go/internal/application/mediator"
	transferCmd "github.com/andrescamacho/spaceshard-go/internal/application/transfer/commands"
	"github.com/andrescamacho/spaceshard-go/internal/domain/galaxy"
	"github.com/andrescamacho/spaceshard-go/internal/domain/player"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

// MoveUnitCommand sends a unit towards a system and optionally a planet. A destination
// shard hands the unit over to a sibling shard instead.
type MoveUnitCommand struct {
	PlayerID string
	UnitID   string
	// System defaults to the unit's current system when empty
	System           string
	Planet           string
	DestinationShard string
}

// MoveUnitResponse carries the travelling unit, or the redirect target of a unit that
// left the shard
type MoveUnitResponse struct {
	Unit     *common.UnitView
	Redirect string
}

// MoveUnitHandler handles the MoveUnit command
type MoveUnitHandler struct {
	playerRepo player.Repository
	sector     *galaxy.Sector
	mediator   mediator.Mediator
}

// NewMoveUnitHandler creates a new MoveUnitHandler
func NewMoveUnitHandler(playerRepo player.Repository, sector *galaxy.Sector, m mediator.Mediator) *MoveUnitHandler {
	return &MoveUnitHandler{playerRepo: playerRepo, sector: sector, mediator: m}
}

// Handle executes the MoveUnit command
func (h *MoveUnitHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*MoveUnitCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *MoveUnitCommand")
	}

	if cmd.DestinationShard != "" {
		return h.transfer(ctx, cmd)
	}

	p, err := h.playerRepo.FindByID(ctx, cmd.PlayerID)
	if err != nil {
		return nil, err
	}
	u, err := p.Unit(cmd.UnitID)
	if err != nil {
		return nil, err
	}

	dest, _ := u.Location()
	if cmd.System != "" {
		if dest, err = h.sector.System(cmd.System); err != nil {
			return nil, err
		}
	}
	var destPlanet *galaxy.Planet
	if cmd.Planet != "" {
		if destPlanet, err = dest.Planet(cmd.Planet); err != nil {
			return nil, err
		}
	}

	if _, err := p.MoveUnit(cmd.UnitID, dest, destPlanet); err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log("INFO", "unit moving", map[string]interface{}{
		"player_id": cmd.PlayerID,
		"unit_id":   cmd.UnitID,
		"system":    dest.Name(),
		"planet":    cmd.Planet,
	})
	return &MoveUnitResponse{Unit: common.NewUnitView(u)}, nil
}

func (h *MoveUnitHandler) transfer(ctx context.Context, cmd *MoveUnitCommand) (*MoveUnitResponse, error) {
	if h.mediator == nil {
		return nil, shared.NewInvalidRequestError("this shard has no route to other shards")
	}
	resp, err := h.mediator.Send(ctx, &transferCmd.TransferUnitCommand{
		PlayerID: cmd.PlayerID,
		UnitID:   cmd.UnitID,
		Wormhole: cmd.DestinationShard,
	})
	if err != nil {
		return nil, err
	}
	out, ok := resp.(*transferCmd.TransferUnitResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T", resp)
	}
	return &MoveUnitResponse{Redirect: out.Redirect}, nil
}
