package setup

import (
	"reflect"

	buildingCommands "github.com/andrescamacho/spaceshard-go/internal/application/building/commands"
	buildingQueries "github.com/andrescamacho/spaceshard-go/internal/application/building/queries"
	galaxyQueries "github.com/andrescamacho/spaceshard-go/internal/application/galaxy/queries"
	"github.com/andrescamacho/spaceshard-go/internal/application/mediator"
	playerCommands "github.com/andrescamacho/spaceshard-go/internal/application/player/commands"
	playerQueries "github.com/andrescamacho/spaceshard-go/internal/application/player/queries"
	snapshotCommands "github.com/andrescamacho/spaceshard-go/internal/application/snapshot/commands"
	transferCommands "github.com/andrescamacho/spaceshard-go/internal/application/transfer/commands"
	transferQueries "github.com/andrescamacho/spaceshard-go/internal/application/transfer/queries"
	unitCommands "github.com/andrescamacho/spaceshard-go/internal/application/unit/commands"
	unitQueries "github.com/andrescamacho/spaceshard-go/internal/application/unit/queries"
	"github.com/andrescamacho/spaceshard-go/internal/domain/player"
	"github.com/andrescamacho/spaceshard-go/internal/domain/transfer"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	playerRepo   player.Repository
	deps         *player.Dependencies
	gateway      transfer.Gateway
	transferLog  transfer.LogRepository
	transferRep  transfer.Reporter
	snapshotRepo player.SnapshotRepository
}

// NewHandlerRegistry creates a new handler registry with required dependencies.
// gateway, transferLog, transferRep and snapshotRepo are optional: the handlers that
// need them are only registered when they are set.
func NewHandlerRegistry(
	playerRepo player.Repository,
	deps *player.Dependencies,
	gateway transfer.Gateway,
	transferLog transfer.LogRepository,
	transferRep transfer.Reporter,
	snapshotRepo player.SnapshotRepository,
) *HandlerRegistry {
	return &HandlerRegistry{
		playerRepo:   playerRepo,
		deps:         deps,
		gateway:      gateway,
		transferLog:  transferLog,
		transferRep:  transferRep,
		snapshotRepo: snapshotRepo,
	}
}

type registration struct {
	request reflect.Type
	handler mediator.RequestHandler
}

func register(m mediator.Mediator, regs []registration) error {
	for _, reg := range regs {
		if err := m.Register(reg.request, reg.handler); err != nil {
			return err
		}
	}
	return nil
}

// RegisterPlayerHandlers registers the player commands and queries
func (r *HandlerRegistry) RegisterPlayerHandlers(m mediator.Mediator) error {
	return register(m, []registration{
		{reflect.TypeOf(&playerCommands.RegisterPlayerCommand{}), playerCommands.NewRegisterPlayerHandler(r.playerRepo, r.deps)},
		{reflect.TypeOf(&playerQueries.GetPlayerQuery{}), playerQueries.NewGetPlayerHandler(r.playerRepo)},
		{reflect.TypeOf(&playerQueries.ListPlayersQuery{}), playerQueries.NewListPlayersHandler(r.playerRepo)},
	})
}

// RegisterUnitHandlers registers the unit commands and queries. MoveUnit routes
// transfers back through m.
func (r *HandlerRegistry) RegisterUnitHandlers(m mediator.Mediator) error {
	return register(m, []registration{
		{reflect.TypeOf(&unitCommands.CreateUnitCommand{}), unitCommands.NewCreateUnitHandler(r.playerRepo, r.deps.Sector)},
		{reflect.TypeOf(&unitCommands.MoveUnitCommand{}), unitCommands.NewMoveUnitHandler(r.playerRepo, r.deps.Sector, m)},
		{reflect.TypeOf(&unitCommands.LoadCargoCommand{}), unitCommands.NewLoadCargoHandler(r.playerRepo)},
		{reflect.TypeOf(&unitQueries.GetUnitQuery{}), unitQueries.NewGetUnitHandler(r.playerRepo)},
		{reflect.TypeOf(&unitQueries.GetUnitLocationQuery{}), unitQueries.NewGetUnitLocationHandler(r.playerRepo)},
		{reflect.TypeOf(&unitQueries.ListUnitsQuery{}), unitQueries.NewListUnitsHandler(r.playerRepo)},
	})
}

// RegisterBuildingHandlers registers the building commands and queries
func (r *HandlerRegistry) RegisterBuildingHandlers(m mediator.Mediator) error {
	return register(m, []registration{
		{reflect.TypeOf(&buildingCommands.CreateBuildingCommand{}), buildingCommands.NewCreateBuildingHandler(r.playerRepo)},
		{reflect.TypeOf(&buildingCommands.UseBuildingCommand{}), buildingCommands.NewUseBuildingHandler(r.playerRepo)},
		{reflect.TypeOf(&buildingQueries.GetBuildingQuery{}), buildingQueries.NewGetBuildingHandler(r.playerRepo)},
		{reflect.TypeOf(&buildingQueries.ListBuildingsQuery{}), buildingQueries.NewListBuildingsHandler(r.playerRepo)},
	})
}

// RegisterGalaxyHandlers registers the sector queries
func (r *HandlerRegistry) RegisterGalaxyHandlers(m mediator.Mediator) error {
	return register(m, []registration{
		{reflect.TypeOf(&galaxyQueries.ListSystemsQuery{}), galaxyQueries.NewListSystemsHandler(r.deps.Sector)},
		{reflect.TypeOf(&galaxyQueries.GetSystemQuery{}), galaxyQueries.NewGetSystemHandler(r.deps.Sector)},
	})
}

// RegisterTransferHandlers registers the cross-shard transfer handlers
func (r *HandlerRegistry) RegisterTransferHandlers(m mediator.Mediator) error {
	regs := []registration{
		{reflect.TypeOf(&transferCommands.TransferUnitCommand{}), transferCommands.NewTransferUnitHandler(
			r.playerRepo, r.deps.Sector, r.gateway, r.transferLog, r.transferRep, r.deps.Scheduler)},
	}
	if r.transferLog != nil {
		regs = append(regs, registration{
			reflect.TypeOf(&transferQueries.ListTransfersQuery{}), transferQueries.NewListTransfersHandler(r.transferLog),
		})
	}
	return register(m, regs)
}

// RegisterSnapshotHandlers registers the snapshot command
func (r *HandlerRegistry) RegisterSnapshotHandlers(m mediator.Mediator) error {
	return register(m, []registration{
		{reflect.TypeOf(&snapshotCommands.PersistSnapshotsCommand{}), snapshotCommands.NewPersistSnapshotsHandler(
			r.playerRepo, r.snapshotRepo, r.deps.Scheduler)},
	})
}

// CreateConfiguredMediator creates a new mediator with every available handler
// registered and the given middlewares installed, outermost first
func (r *HandlerRegistry) CreateConfiguredMediator(middlewares ...mediator.Middleware) (mediator.Mediator, error) {
	m := mediator.NewMediator()
	for _, mw := range middlewares {
		m.Use(mw)
	}

	for _, fn := range []func(mediator.Mediator) error{
		r.RegisterPlayerHandlers,
		r.RegisterUnitHandlers,
		r.RegisterBuildingHandlers,
		r.RegisterGalaxyHandlers,
	} {
		if err := fn(m); err != nil {
			return nil, err
		}
	}

	if r.gateway != nil {
		if err := r.RegisterTransferHandlers(m); err != nil {
			return nil, err
		}
	}
	if r.snapshotRepo != nil {
		if err := r.RegisterSnapshotHandlers(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}
