package player

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/spaceshard-go/internal/domain/building"
	"github.com/andrescamacho/spaceshard-go/internal/domain/combat"
	"github.com/andrescamacho/spaceshard-go/internal/domain/galaxy"
	"github.com/andrescamacho/spaceshard-go/internal/domain/ledger"
	"github.com/andrescamacho/spaceshard-go/internal/domain/scheduler"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
	"github.com/andrescamacho/spaceshard-go/internal/domain/unit"
)

// Reporter observes unit and building lifecycle events across all players
type Reporter interface {
	building.Reporter
	RecordUnitCreated(t unit.Type)
	RecordUnitDestroyed(t unit.Type)
}

type nopReporter struct{}

func (nopReporter) RecordBuildingEvent(building.Type, string) {}
func (nopReporter) RecordResourceMined(shared.ResourceKind)   {}
func (nopReporter) RecordUnitCreated(unit.Type)               {}
func (nopReporter) RecordUnitDestroyed(unit.Type)             {}

// Dependencies is the simulation machinery shared by every player of the shard.
// It is built once at process start.
type Dependencies struct {
	Sector    *galaxy.Sector
	Scheduler *scheduler.Scheduler
	Combat    *combat.Organiser
	Logger    shared.Logger
	Reporter  Reporter
	// NewID generates unit and building identifiers
	NewID func() string
}

func (d *Dependencies) withDefaults() *Dependencies {
	out := *d
	if out.Logger == nil {
		out.Logger = shared.NopLogger{}
	}
	if out.Reporter == nil {
		out.Reporter = nopReporter{}
	}
	if out.NewID == nil {
		out.NewID = uuid.NewString
	}
	return &out
}

func (d *Dependencies) unitEnv() unit.Environment {
	return unit.Environment{Scheduler: d.Scheduler, Logger: d.Logger}
}

func (d *Dependencies) buildingEnv() building.Environment {
	return building.Environment{Scheduler: d.Scheduler, Logger: d.Logger, Reporter: d.Reporter}
}

// Registration describes a player to create
type Registration struct {
	ID     string
	Pseudo string
	// Transfer marks a player arriving from a sibling shard: no starting units, an
	// all-zero ledger, and CreatedAt taken from the registration when set.
	Transfer  bool
	CreatedAt *time.Time
}

// Player is the aggregate root owning a ledger, units and buildings.
//
// Invariants:
// - every owned unit and building has this player as owner
// - a destroyed or transferred unit is no longer listed
// - ledger quantities never go negative
type Player struct {
	id        shared.PlayerID
	pseudo    string
	createdAt time.Time
	ledger    *ledger.Ledger
	deps      *Dependencies

	mu        sync.RWMutex
	units     []*unit.Unit
	buildings []*building.Building
}

// Register creates a player. A regular player starts with the starter ledger and a
// scout and a builder in a random system, in open space.
func Register(deps *Dependencies, reg Registration) (*Player, error) {
	id, err := shared.NewPlayerID(reg.ID)
	if err != nil {
		return nil, err
	}
	deps = deps.withDefaults()

	pseudo := reg.Pseudo
	if pseudo == "" {
		pseudo = reg.ID
	}
	createdAt := deps.Scheduler.Now()
	quantities := ledger.StarterQuantities()
	if reg.Transfer {
		quantities = ledger.ZeroQuantities()
		if reg.CreatedAt != nil {
			createdAt = *reg.CreatedAt
		}
	}

	p := &Player{
		id:        id,
		pseudo:    pseudo,
		createdAt: createdAt,
		ledger:    ledger.New(quantities),
		deps:      deps,
	}
	if reg.Transfer {
		return p, nil
	}

	home := deps.Sector.RandomSystem()
	for _, t := range []unit.Type{unit.Scout, unit.Builder} {
		if _, err := p.AddUnit(UnitSpec{Type: t, System: home}); err != nil {
			return nil, fmt.Errorf("starting %s: %w", t, err)
		}
	}
	return p, nil
}

// PlayerID satisfies the unit and building owner interfaces
func (p *Player) PlayerID() shared.PlayerID { return p.id }
func (p *Player) Pseudo() string            { return p.pseudo }
func (p *Player) CreatedAt() time.Time      { return p.createdAt }
func (p *Player) Ledger() *ledger.Ledger    { return p.ledger }

// UnitSpec describes a unit to add to the player
type UnitSpec struct {
	ID        string
	Type      unit.Type
	System    *galaxy.System
	Planet    *galaxy.Planet
	Health    *int
	Resources shared.Quantities
}

// AddUnit creates a unit owned by the player; an empty ID is generated
func (p *Player) AddUnit(spec UnitSpec) (*unit.Unit, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if spec.ID == "" {
		spec.ID = p.deps.NewID()
	}
	if p.findUnitLocked(spec.ID) != nil {
		return nil, shared.NewInvalidRequestError(fmt.Sprintf("unit %s already exists", spec.ID))
	}

	u, err := unit.New(p.deps.unitEnv(), unit.Params{
		ID:        spec.ID,
		Type:      spec.Type,
		Owner:     p,
		System:    spec.System,
		Planet:    spec.Planet,
		Health:    spec.Health,
		Resources: spec.Resources,
	})
	if err != nil {
		return nil, err
	}
	p.units = append(p.units, u)
	if p.deps.Combat != nil {
		p.deps.Combat.Register(u)
	}
	p.deps.Reporter.RecordUnitCreated(u.Type())
	return u, nil
}

// SpawnUnit adds a unit produced by one of the player's starports
func (p *Player) SpawnUnit(t unit.Type, system *galaxy.System, planet *galaxy.Planet) (*unit.Unit, error) {
	return p.AddUnit(UnitSpec{Type: t, System: system, Planet: planet})
}

// ReleaseUnit forgets a destroyed unit
func (p *Player) ReleaseUnit(u *unit.Unit) {
	p.mu.Lock()
	p.removeUnitLocked(u.ID())
	p.mu.Unlock()

	if p.deps.Combat != nil {
		p.deps.Combat.Deregister(u)
	}
	p.deps.Reporter.RecordUnitDestroyed(u.Type())
	p.deps.Logger.Log("INFO", "unit destroyed", map[string]interface{}{
		"player_id": p.id.String(),
		"unit_id":   u.ID(),
		"unit_type": string(u.Type()),
	})
}

// RemoveUnit takes a unit out of the shard, as when it leaves through a wormhole
func (p *Player) RemoveUnit(unitID string) (*unit.Unit, error) {
	p.mu.Lock()
	u := p.removeUnitLocked(unitID)
	p.mu.Unlock()
	if u == nil {
		return nil, shared.NewNotFoundError("unit", unitID)
	}

	u.Detach()
	if p.deps.Combat != nil {
		p.deps.Combat.Deregister(u)
	}
	return u, nil
}

// Units returns the player's units in creation order
func (p *Player) Units() []*unit.Unit {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*unit.Unit, len(p.units))
	copy(out, p.units)
	return out
}

// Unit looks up one of the player's units
func (p *Player) Unit(unitID string) (*unit.Unit, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if u := p.findUnitLocked(unitID); u != nil {
		return u, nil
	}
	return nil, shared.NewNotFoundError("unit", unitID)
}

// Buildings returns the player's buildings in creation order
func (p *Player) Buildings() []*building.Building {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*building.Building, len(p.buildings))
	copy(out, p.buildings)
	return out
}

// Building looks up one of the player's buildings
func (p *Player) Building(buildingID string) (*building.Building, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, b := range p.buildings {
		if b.ID() == buildingID {
			return b, nil
		}
	}
	return nil, shared.NewNotFoundError("building", buildingID)
}

// StartBuilding has one of the player's builders start a construction where it stands
func (p *Player) StartBuilding(builderID string, t building.Type, category shared.ResourceCategory) (*building.Building, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	builder := p.findUnitLocked(builderID)
	if builder == nil {
		return nil, shared.NewNotFoundError("unit", builderID)
	}
	b, err := building.New(p.deps.buildingEnv(), building.Params{
		ID:       p.deps.NewID(),
		Type:     t,
		Owner:    p,
		Builder:  builder,
		Category: category,
	})
	if err != nil {
		return nil, err
	}
	p.buildings = append(p.buildings, b)
	return b, nil
}

// MoveUnit sends a unit on its way. Constructions the unit started on the planet it
// is leaving, and that are not finished, are cancelled and removed first.
func (p *Player) MoveUnit(unitID string, dest *galaxy.System, destPlanet *galaxy.Planet) (*unit.Unit, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	u := p.findUnitLocked(unitID)
	if u == nil {
		return nil, shared.NewNotFoundError("unit", unitID)
	}

	if _, planet := u.Location(); planet != nil && (dest != planet.System() || destPlanet != planet) {
		kept := p.buildings[:0]
		for _, b := range p.buildings {
			if b.Planet() == planet && b.Builder() == u && b.Cancel() {
				planet.RemoveBuilding(b.ID())
				continue
			}
			kept = append(kept, b)
		}
		p.buildings = kept
	}

	if err := u.MoveTo(dest, destPlanet); err != nil {
		return nil, err
	}
	return u, nil
}

// LoadCargo sets a cargo unit's trunk to the desired quantities, moving the
// differences between the trunk and the player's ledger. The unit must be on a planet
// with a built starport. Nothing moves if the ledger cannot cover every increase.
func (p *Player) LoadCargo(unitID string, desired shared.Quantities) (*unit.Unit, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	u := p.findUnitLocked(unitID)
	if u == nil {
		return nil, shared.NewNotFoundError("unit", unitID)
	}
	if u.Type() != unit.Cargo {
		return nil, shared.NewIneligibleActorError(fmt.Sprintf("unit %s is not a cargo", unitID))
	}
	if _, planet := u.Location(); planet == nil || !planet.HasBuilt(string(building.Starport)) {
		return nil, shared.NewIneligibleActorError("cargo can only be loaded on a planet with a starport")
	}

	trunk := u.Trunk()
	increases := shared.Quantities{}
	for kind, want := range desired {
		if want < 0 {
			return nil, shared.NewInvalidRequestError(fmt.Sprintf("negative quantity %d for %s", want, kind))
		}
		if delta := want - trunk.Get(kind); delta > 0 {
			increases[kind] = delta
		}
	}
	if err := p.ledger.TryDebit(increases); err != nil {
		return nil, err
	}

	for kind, want := range desired {
		have := trunk.Get(kind)
		switch {
		case want > have:
			if err := trunk.Add(kind, want-have); err != nil {
				return nil, err
			}
		case want < have:
			p.ledger.Add(kind, trunk.Remove(kind, have-want))
		}
	}
	return u, nil
}

// UpdateResources overwrites ledger balances
func (p *Player) UpdateResources(q shared.Quantities) error {
	return p.ledger.SetAll(q)
}

// State is the transferable view of a player
type State struct {
	ID        string
	Pseudo    string
	CreatedAt time.Time
	Resources shared.Quantities
}

func (p *Player) Snapshot() State {
	return State{
		ID:        p.id.String(),
		Pseudo:    p.pseudo,
		CreatedAt: p.createdAt,
		Resources: p.ledger.Snapshot(),
	}
}

func (p *Player) findUnitLocked(unitID string) *unit.Unit {
	for _, u := range p.units {
		if u.ID() == unitID {
			return u
		}
	}
	return nil
}

func (p *Player) removeUnitLocked(unitID string) *unit.Unit {
	for i, u := range p.units {
		if u.ID() == unitID {
			p.units = append(p.units[:i], p.units[i+1:]...)
			return u
		}
	}
	return nil
}
