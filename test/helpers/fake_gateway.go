package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/spaceshard-go/internal/application/auth"
	"github.com/andrescamacho/spaceshard-go/internal/application/mediator"
	playerCmd "github.com/andrescamacho/spaceshard-go/internal/application/player/commands"
	unitCmd "github.com/andrescamacho/spaceshard-go/internal/application/unit/commands"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
	"github.com/andrescamacho/spaceshard-go/internal/domain/transfer"
)

// FakeGateway records delivered packages. With Remote set it plays the sibling shard
// in-process: the player then the unit are sent to Remote as a shard caller.
type FakeGateway struct {
	mu         sync.Mutex
	deliveries []*transfer.Package

	// Err, when set, fails every delivery
	Err    error
	Remote mediator.Mediator
}

// NewFakeGateway creates a gateway that accepts every package
func NewFakeGateway() *FakeGateway {
	return &FakeGateway{}
}

// Deliver implements transfer.Gateway
func (g *FakeGateway) Deliver(ctx context.Context, pkg *transfer.Package) error {
	g.mu.Lock()
	g.deliveries = append(g.deliveries, pkg)
	err, remote := g.Err, g.Remote
	g.mu.Unlock()
	if err != nil {
		return err
	}
	if remote == nil {
		return nil
	}

	ctx = auth.WithCaller(ctx, auth.Caller{Username: "shard-" + pkg.Wormhole.User, Role: shared.RoleShard})
	created := pkg.Player.CreatedAt
	if _, err := remote.Send(ctx, &playerCmd.RegisterPlayerCommand{
		PlayerID:  pkg.Player.ID,
		Pseudo:    pkg.Player.Pseudo,
		CreatedAt: &created,
		Resources: pkg.Player.Resources,
	}); err != nil {
		return err
	}
	health := pkg.Unit.Health
	_, err = remote.Send(ctx, &unitCmd.CreateUnitCommand{
		PlayerID:  pkg.Player.ID,
		UnitID:    pkg.Unit.ID,
		Type:      pkg.Unit.Type,
		System:    pkg.Unit.System,
		Health:    &health,
		Resources: pkg.Unit.Resources,
	})
	return err
}

// Deliveries returns the packages delivered so far
func (g *FakeGateway) Deliveries() []*transfer.Package {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]*transfer.Package(nil), g.deliveries...)
}
