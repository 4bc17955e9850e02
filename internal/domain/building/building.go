package building

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/andrescamacho/spaceshard-go/internal/domain/galaxy"
	"github.com/andrescamacho/spaceshard-go/internal/domain/ledger"
	"github.com/andrescamacho/spaceshard-go/internal/domain/scheduler"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
	"github.com/andrescamacho/spaceshard-go/internal/domain/unit"
)

const (
	// ConstructionDuration is the time between starting a building and completing it
	ConstructionDuration = 5 * time.Minute
	// ProductionInterval is the mine production period
	ProductionInterval = time.Minute
)

// Owner is the player a building belongs to, seen from the building
type Owner interface {
	PlayerID() shared.PlayerID
	Ledger() *ledger.Ledger
	// SpawnUnit adds a freshly produced unit to the owner at the given location
	SpawnUnit(t unit.Type, system *galaxy.System, planet *galaxy.Planet) (*unit.Unit, error)
}

// Reporter observes construction and production outcomes
type Reporter interface {
	RecordBuildingEvent(t Type, event string)
	RecordResourceMined(kind shared.ResourceKind)
}

type nopReporter struct{}

func (nopReporter) RecordBuildingEvent(Type, string)        {}
func (nopReporter) RecordResourceMined(shared.ResourceKind) {}

// Environment is the shared machinery every building runs on
type Environment struct {
	Scheduler *scheduler.Scheduler
	Logger    shared.Logger
	Reporter  Reporter
}

// Params describes a building to start
type Params struct {
	ID       string
	Type     Type
	Owner    Owner
	Builder  *unit.Unit
	Category shared.ResourceCategory
}

// Building is a structure raised by a builder on a planet.
//
// Lifecycle: under construction -> built, or under construction -> cancelled.
// A built Mine removes one unit of its category from the planet every minute and
// credits it to the owner. A built Starport turns owner resources into units.
type Building struct {
	id       string
	typ      Type
	owner    Owner
	env      Environment
	builder  *unit.Unit
	system   *galaxy.System
	planet   *galaxy.Planet
	category shared.ResourceCategory

	mu        sync.Mutex
	built     bool
	cancelled bool
	eta       *time.Time
	done      chan struct{}
	err       error
	stop      context.CancelFunc
}

// New starts construction. The builder must be a builder unit standing on a planet.
// The building is listed on the planet from the start.
func New(env Environment, p Params) (*Building, error) {
	if p.ID == "" {
		return nil, shared.NewInvalidIdentifierError(p.ID)
	}
	if p.Builder == nil || !p.Builder.CanBuild() {
		return nil, shared.NewIneligibleActorError("construction needs a builder standing on a planet")
	}
	switch p.Type {
	case Mine:
		if _, err := shared.ParseResourceCategory(string(p.Category)); err != nil {
			return nil, shared.NewInvalidRequestError("a mine needs a resource category")
		}
	case Starport:
	default:
		return nil, shared.NewInvalidRequestError(fmt.Sprintf("unknown building type %q", p.Type))
	}
	if env.Logger == nil {
		env.Logger = shared.NopLogger{}
	}
	if env.Reporter == nil {
		env.Reporter = nopReporter{}
	}

	system, planet := p.Builder.Location()
	if planet == nil {
		return nil, shared.NewIneligibleActorError("construction needs a builder standing on a planet")
	}

	ctx, stop := context.WithCancel(context.Background())
	eta := env.Scheduler.Now().Add(ConstructionDuration)
	b := &Building{
		id:       p.ID,
		typ:      p.Type,
		owner:    p.Owner,
		env:      env,
		builder:  p.Builder,
		system:   system,
		planet:   planet,
		category: p.Category,
		eta:      &eta,
		done:     make(chan struct{}),
		stop:     stop,
	}
	planet.AddBuilding(b)
	env.Scheduler.After(ctx, ConstructionDuration, func(time.Time) { b.complete() })
	env.Reporter.RecordBuildingEvent(b.typ, "started")
	return b, nil
}

func (b *Building) ID() string                        { return b.id }
func (b *Building) Type() Type                        { return b.typ }
func (b *Building) TypeName() string                  { return string(b.typ) }
func (b *Building) Owner() Owner                      { return b.owner }
func (b *Building) Builder() *unit.Unit               { return b.builder }
func (b *Building) System() *galaxy.System            { return b.system }
func (b *Building) Planet() *galaxy.Planet            { return b.planet }
func (b *Building) Category() shared.ResourceCategory { return b.category }

func (b *Building) IsBuilt() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.built
}

func (b *Building) IsCancelled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cancelled
}

// ETA returns the estimated completion time while under construction, nil otherwise
func (b *Building) ETA() *time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.eta == nil {
		return nil
	}
	eta := *b.eta
	return &eta
}

// RemainingConstruction returns the time left until completion on the scheduler clock
func (b *Building) RemainingConstruction() (time.Duration, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.eta == nil {
		return 0, false
	}
	return b.eta.Sub(b.env.Scheduler.Now()), true
}

func (b *Building) complete() {
	b.mu.Lock()
	if b.cancelled || b.built {
		b.mu.Unlock()
		return
	}
	b.built = true
	b.eta = nil
	close(b.done)
	if b.typ == Mine {
		b.env.Scheduler.Every(context.Background(), ProductionInterval, ProductionInterval,
			func(time.Time) { b.produce() })
	}
	b.mu.Unlock()

	b.env.Reporter.RecordBuildingEvent(b.typ, "completed")
	b.env.Logger.Log("INFO", "building completed", map[string]interface{}{
		"building_id": b.id,
		"type":        string(b.typ),
		"planet":      b.planet.Name(),
	})
}

// Cancel aborts construction. It returns false when the building is already built or
// cancelled. Waiters on AwaitBuilt receive a Cancelled error.
func (b *Building) Cancel() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.built || b.cancelled {
		return false
	}
	b.cancelled = true
	b.eta = nil
	b.stop()
	b.err = shared.NewCancelledError(fmt.Sprintf("construction of building %s was cancelled", b.id))
	close(b.done)
	b.env.Reporter.RecordBuildingEvent(b.typ, "cancelled")
	return true
}

// AwaitBuilt blocks until construction completes or is cancelled
func (b *Building) AwaitBuilt(ctx context.Context) error {
	select {
	case <-b.done:
		b.mu.Lock()
		defer b.mu.Unlock()
		return b.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Use runs the building's effect. A starport produces a unit of the requested type;
// a mine runs one production cycle and returns no unit.
func (b *Building) Use(unitType unit.Type) (*unit.Unit, error) {
	if !b.IsBuilt() {
		return nil, shared.NewIneligibleActorError(fmt.Sprintf("building %s is not built yet", b.id))
	}
	switch b.typ {
	case Mine:
		b.produce()
		return nil, nil
	case Starport:
		return b.queue(unitType)
	}
	return nil, shared.NewInvalidRequestError(fmt.Sprintf("building type %q has no use", b.typ))
}

func (b *Building) queue(unitType unit.Type) (*unit.Unit, error) {
	cost, ok := UnitCost(unitType)
	if !ok {
		return nil, shared.NewInvalidRequestError(fmt.Sprintf("starport cannot produce unit type %q", unitType))
	}
	if err := b.owner.Ledger().TryDebit(cost); err != nil {
		return nil, err
	}
	u, err := b.owner.SpawnUnit(unitType, b.system, b.planet)
	if err != nil {
		for kind, n := range cost {
			b.owner.Ledger().Add(kind, n)
		}
		return nil, err
	}
	return u, nil
}

func (b *Building) produce() {
	kind, err := b.planet.RemoveOneUnitOfMostPresentResource(b.category)
	if err != nil {
		b.env.Logger.Log("DEBUG", "mine found nothing to extract", map[string]interface{}{
			"building_id": b.id,
			"category":    string(b.category),
		})
		return
	}
	b.owner.Ledger().Add(kind, 1)
	b.env.Reporter.RecordResourceMined(kind)
}

// State is a point-in-time copy of a building
type State struct {
	ID        string
	Type      Type
	OwnerID   string
	BuilderID string
	System    string
	Planet    string
	Built     bool
	Cancelled bool
	ETA       *time.Time
	Category  shared.ResourceCategory
}

func (b *Building) Snapshot() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	st := State{
		ID:        b.id,
		Type:      b.typ,
		BuilderID: b.builder.ID(),
		System:    b.system.Name(),
		Planet:    b.planet.Name(),
		Built:     b.built,
		Cancelled: b.cancelled,
		Category:  b.category,
	}
	if b.owner != nil {
		st.OwnerID = b.owner.PlayerID().String()
	}
	if b.eta != nil {
		eta := *b.eta
		st.ETA = &eta
	}
	return st
}
