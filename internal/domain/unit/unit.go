package unit

import (
	"fmt"
	"sync"
	"time"

	"github.com/andrescamacho/spaceshard-go/internal/domain/galaxy"
	"github.com/andrescamacho/spaceshard-go/internal/domain/ledger"
	"github.com/andrescamacho/spaceshard-go/internal/domain/scheduler"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

// Owner is the player a unit belongs to, seen from the unit
type Owner interface {
	PlayerID() shared.PlayerID
	// ReleaseUnit is called once when the unit is destroyed
	ReleaseUnit(u *Unit)
}

// Environment is the shared machinery every unit runs on
type Environment struct {
	Scheduler *scheduler.Scheduler
	Logger    shared.Logger
}

// Params describes a unit to create
type Params struct {
	ID     string
	Type   Type
	Owner  Owner
	System *galaxy.System
	Planet *galaxy.Planet
	// Health overrides the type default when set
	Health    *int
	Resources shared.Quantities
}

// Unit is a mobile entity owned by a player.
//
// Invariants:
// - the unit is registered as an occupant of exactly its current system
// - the current planet, when set, belongs to the current system
// - destination and ETA are both set while travelling and both cleared on arrival
// - once removed (destroyed or transferred) the unit never moves or acts again
type Unit struct {
	id    string
	typ   Type
	owner Owner
	env   Environment
	trunk ledger.Trunk

	mu         sync.Mutex
	system     *galaxy.System
	planet     *galaxy.Planet
	destSystem *galaxy.System
	destPlanet *galaxy.Planet
	eta        *time.Time
	health     int
	travel     *journey
	removed    bool
}

// New creates the unit and places it in its system
func New(env Environment, p Params) (*Unit, error) {
	if p.ID == "" {
		return nil, shared.NewInvalidIdentifierError(p.ID)
	}
	profile := p.Type.Profile()
	if profile.Shots == 0 {
		return nil, shared.NewInvalidRequestError(fmt.Sprintf("unknown unit type %q", p.Type))
	}
	if p.System == nil {
		return nil, shared.NewInvalidRequestError("unit needs a system")
	}
	if p.Planet != nil && p.Planet.System() != p.System {
		return nil, shared.NewInvalidRequestError(
			fmt.Sprintf("planet %s is not in system %s", p.Planet.Name(), p.System.Name()))
	}
	if env.Logger == nil {
		env.Logger = shared.NopLogger{}
	}

	var trunk ledger.Trunk = ledger.NoneTrunk{}
	if profile.Carries {
		trunk = ledger.NewCargoTrunk(p.Resources)
	} else if len(p.Resources) > 0 {
		for _, n := range p.Resources {
			if n > 0 {
				return nil, shared.NewIneligibleActorError(fmt.Sprintf("%s units cannot carry resources", p.Type))
			}
		}
	}

	health := profile.Health
	if p.Health != nil {
		health = *p.Health
	}

	u := &Unit{
		id:     p.ID,
		typ:    p.Type,
		owner:  p.Owner,
		env:    env,
		trunk:  trunk,
		system: p.System,
		planet: p.Planet,
		health: health,
	}
	p.System.AddOccupant(u)
	return u, nil
}

func (u *Unit) ID() string          { return u.id }
func (u *Unit) Type() Type          { return u.typ }
func (u *Unit) Owner() Owner        { return u.owner }
func (u *Unit) Trunk() ledger.Trunk { return u.trunk }

// Location returns the current system and planet (planet may be nil)
func (u *Unit) Location() (*galaxy.System, *galaxy.Planet) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.system, u.planet
}

func (u *Unit) Health() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.health
}

// IsAlive is false once health dropped to zero or the unit left the shard
func (u *Unit) IsAlive() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.health > 0 && !u.removed
}

// IsRemoved reports whether the unit was destroyed or detached from the shard
func (u *Unit) IsRemoved() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.removed
}

// ETA returns the estimated arrival time, or nil when the unit is not travelling
func (u *Unit) ETA() *time.Time {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.eta == nil {
		return nil
	}
	eta := *u.eta
	return &eta
}

// CanBuild is true for builders standing on a planet
func (u *Unit) CanBuild() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.typ.Profile().Builds && u.planet != nil && !u.removed
}

// State is a consistent point-in-time copy of a unit
type State struct {
	ID                string
	Type              Type
	OwnerID           string
	System            string
	Planet            string
	DestinationSystem string
	DestinationPlanet string
	ETA               *time.Time
	Health            int
	Resources         shared.Quantities
}

// Snapshot copies the unit's state under its lock
func (u *Unit) Snapshot() State {
	u.mu.Lock()
	defer u.mu.Unlock()
	st := State{
		ID:        u.id,
		Type:      u.typ,
		Health:    u.health,
		Resources: u.trunk.Snapshot(),
	}
	if u.owner != nil {
		st.OwnerID = u.owner.PlayerID().String()
	}
	if u.system != nil {
		st.System = u.system.Name()
	}
	if u.planet != nil {
		st.Planet = u.planet.Name()
	}
	if u.destSystem != nil {
		st.DestinationSystem = u.destSystem.Name()
	}
	if u.destPlanet != nil {
		st.DestinationPlanet = u.destPlanet.Name()
	}
	if u.eta != nil {
		eta := *u.eta
		st.ETA = &eta
	}
	return st
}

// Detach takes the unit out of the simulation without notifying its owner: any
// journey is aborted and the unit leaves its system. It reports whether this call
// did the detaching.
func (u *Unit) Detach() bool {
	u.mu.Lock()
	if u.removed {
		u.mu.Unlock()
		return false
	}
	u.removed = true
	u.abortJourneyLocked("unit was removed")
	u.system.RemoveOccupant(u.id)
	u.mu.Unlock()
	return true
}
