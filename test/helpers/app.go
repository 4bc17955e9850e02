package helpers

import (
	"context"

	"github.com/andrescamacho/spaceshard-go/internal/adapters/persistence"
	"github.com/andrescamacho/spaceshard-go/internal/application/auth"
	"github.com/andrescamacho/spaceshard-go/internal/application/mediator"
	"github.com/andrescamacho/spaceshard-go/internal/application/setup"
	"github.com/andrescamacho/spaceshard-go/internal/domain/galaxy"
	"github.com/andrescamacho/spaceshard-go/internal/domain/player"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

// TestApp is a shard wired like the daemon, minus the transports: a test world, the
// in-memory player registry, a fake gateway and a configured mediator.
type TestApp struct {
	*TestWorld
	Players   *persistence.InMemoryPlayerRepository
	Gateway   *FakeGateway
	Transfers *persistence.GormTransferLogRepository
	Snapshots *persistence.GormSnapshotRepository
	Mediator  mediator.Mediator
}

// NewTestApp builds a TestApp with wormholes attached before the mediator is wired
func NewTestApp(t TB, wormholes ...galaxy.Wormhole) *TestApp {
	t.Helper()
	world := NewTestWorld(t)
	if skipped := world.Sector.AttachWormholes(wormholes); len(skipped) > 0 {
		t.Fatalf("wormholes without a local system: %v", skipped)
	}

	db := NewTestDB(t)
	snapshots, err := persistence.NewGormSnapshotRepository(db)
	if err != nil {
		t.Fatalf("snapshot repository: %v", err)
	}
	app := &TestApp{
		TestWorld: world,
		Players:   persistence.NewInMemoryPlayerRepository(),
		Gateway:   NewFakeGateway(),
		Transfers: persistence.NewGormTransferLogRepository(db),
		Snapshots: snapshots,
	}
	registry := setup.NewHandlerRegistry(app.Players, world.Deps, app.Gateway, app.Transfers, nil, snapshots)
	app.Mediator, err = registry.CreateConfiguredMediator()
	if err != nil {
		t.Fatalf("mediator: %v", err)
	}
	return app
}

// AddPlayer registers a regular player in the registry
func (a *TestApp) AddPlayer(t TB, id string) *player.Player {
	t.Helper()
	p := a.RegisterPlayer(t, id)
	if err := a.Players.Add(context.Background(), p); err != nil {
		t.Fatalf("add player %s: %v", id, err)
	}
	return p
}

// AddEmptyPlayer registers a player without units holding the given resources
func (a *TestApp) AddEmptyPlayer(t TB, id string, resources shared.Quantities) *player.Player {
	t.Helper()
	p := a.RegisterEmptyPlayer(t, id, resources)
	if err := a.Players.Add(context.Background(), p); err != nil {
		t.Fatalf("add player %s: %v", id, err)
	}
	return p
}

// As returns a context carrying a caller with the given role
func As(role shared.Role, username string) context.Context {
	return auth.WithCaller(context.Background(), auth.Caller{Username: username, Role: role})
}

// AsAdmin returns a context carrying the admin caller
func AsAdmin() context.Context {
	return As(shared.RoleAdmin, "admin")
}
