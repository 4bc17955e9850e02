package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spaceshard-go/internal/application/auth"
	"github.com/andrescamacho/spaceshard-go/internal/application/common"
	"github.com/andrescamacho/spaceshard-go/internal/application/mediator"
	"github.com/andrescamacho/spaceshard-go/internal/domain/galaxy"
	"github.com/andrescamacho/spaceshard-go/internal/domain/player"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
	"github.com/andrescamacho/spaceshard-go/internal/domain/unit"
)

// CreateUnitCommand places a new unit for an existing player. Only admins and sibling
// shards may create units.
type CreateUnitCommand struct {
	PlayerID string
	UnitID   string
	Type     string
	// System defaults to the arrival system of the shard when empty
	System    string
	Planet    string
	Health    *int
	Resources map[string]int
}

// CreateUnitResponse carries the created unit
type CreateUnitResponse struct {
	Unit *common.UnitView
}

// CreateUnitHandler handles the CreateUnit command
type CreateUnitHandler struct {
	playerRepo player.Repository
	sector     *galaxy.Sector
}

// NewCreateUnitHandler creates a new CreateUnitHandler
func NewCreateUnitHandler(playerRepo player.Repository, sector *galaxy.Sector) *CreateUnitHandler {
	return &CreateUnitHandler{playerRepo: playerRepo, sector: sector}
}

// Handle executes the CreateUnit command
func (h *CreateUnitHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CreateUnitCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CreateUnitCommand")
	}
	if err := auth.RequireElevated(ctx, "create a unit"); err != nil {
		return nil, err
	}

	unitType, err := unit.ParseType(cmd.Type)
	if err != nil {
		return nil, err
	}
	resources, err := shared.QuantitiesFromStrings(cmd.Resources)
	if err != nil {
		return nil, err
	}

	p, err := h.playerRepo.FindByID(ctx, cmd.PlayerID)
	if err != nil {
		return nil, err
	}

	system, planet, err := h.resolveLocation(cmd.System, cmd.Planet)
	if err != nil {
		return nil, err
	}

	u, err := p.AddUnit(player.UnitSpec{
		ID:        cmd.UnitID,
		Type:      unitType,
		System:    system,
		Planet:    planet,
		Health:    cmd.Health,
		Resources: resources,
	})
	if err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log("INFO", "unit created", map[string]interface{}{
		"player_id": cmd.PlayerID,
		"unit_id":   u.ID(),
		"unit_type": string(unitType),
		"system":    system.Name(),
	})
	return &CreateUnitResponse{Unit: common.NewUnitView(u)}, nil
}

func (h *CreateUnitHandler) resolveLocation(systemName, planetName string) (*galaxy.System, *galaxy.Planet, error) {
	var system *galaxy.System
	var err error
	if systemName == "" {
		system, err = h.sector.ArrivalSystem()
	} else {
		system, err = h.sector.System(systemName)
	}
	if err != nil {
		return nil, nil, err
	}
	if planetName == "" {
		return system, nil, nil
	}
	planet, err := system.Planet(planetName)
	if err != nil {
		return nil, nil, err
	}
	return system, planet, nil
}
