package unit

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/spaceshard-go/internal/domain/galaxy"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

const (
	// PlanetLegDuration is the time to leave or land on a planet
	PlanetLegDuration = 15 * time.Second
	// SystemLegDuration is the time to jump between systems
	SystemLegDuration = time.Minute
)

// journey tracks one in-flight move. done is closed exactly once, after err is set.
type journey struct {
	cancel context.CancelFunc
	done   chan struct{}
	err    error
	legs   int
}

// MoveTo starts travelling towards dest and, optionally, one of its planets.
//
// Travel runs as up to three legs on the scheduler:
//   - leave the current planet: 15s after departure
//   - change system: 60s after departure, only when dest differs
//   - land on destPlanet: 15s after the system leg, or 15s after departure
//
// A move issued while travelling replaces the previous journey; waiters on the old
// journey get a Cancelled error. Moving to where the unit already is does nothing.
func (u *Unit) MoveTo(dest *galaxy.System, destPlanet *galaxy.Planet) error {
	if dest == nil {
		return shared.NewInvalidRequestError("destination system is required")
	}
	if destPlanet != nil && destPlanet.System() != dest {
		return shared.NewInvalidRequestError(
			fmt.Sprintf("planet %s is not in system %s", destPlanet.Name(), dest.Name()))
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if u.removed {
		return shared.NewIneligibleActorError(fmt.Sprintf("unit %s no longer exists", u.id))
	}
	u.abortJourneyLocked("superseded by a new move")

	if dest == u.system && destPlanet == u.planet {
		return nil
	}

	changeSystem := dest != u.system
	var total time.Duration
	if changeSystem {
		total += SystemLegDuration
	}
	if destPlanet != nil {
		total += PlanetLegDuration
	}
	if total == 0 {
		// leaving a planet for open space in the same system
		u.planet = nil
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	j := &journey{cancel: cancel, done: make(chan struct{})}
	u.travel = j
	now := u.env.Scheduler.Now()
	eta := now.Add(total)
	u.destSystem, u.destPlanet, u.eta = dest, destPlanet, &eta

	if u.planet != nil {
		j.legs++
		u.env.Scheduler.After(ctx, PlanetLegDuration, func(time.Time) { u.leavePlanet(j) })
	}
	if changeSystem {
		j.legs++
		u.env.Scheduler.After(ctx, SystemLegDuration, func(time.Time) { u.jump(ctx, j, dest, destPlanet) })
	} else {
		j.legs++
		u.env.Scheduler.After(ctx, PlanetLegDuration, func(time.Time) { u.land(j, destPlanet) })
	}
	return nil
}

func (u *Unit) leavePlanet(j *journey) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.travel != j {
		return
	}
	u.planet = nil
	u.legDoneLocked(j)
}

func (u *Unit) jump(ctx context.Context, j *journey, dest *galaxy.System, destPlanet *galaxy.Planet) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.travel != j {
		return
	}
	// occupant sets change under u.mu so Detach never sees a half-finished jump
	u.system.RemoveOccupant(u.id)
	dest.AddOccupant(u)
	u.system = dest
	u.planet = nil
	if destPlanet != nil {
		j.legs++
		u.env.Scheduler.After(ctx, PlanetLegDuration, func(time.Time) { u.land(j, destPlanet) })
	}
	u.legDoneLocked(j)
}

func (u *Unit) land(j *journey, destPlanet *galaxy.Planet) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.travel != j {
		return
	}
	u.planet = destPlanet
	u.legDoneLocked(j)
}

func (u *Unit) legDoneLocked(j *journey) {
	j.legs--
	if j.legs > 0 {
		return
	}
	u.destSystem, u.destPlanet, u.eta = nil, nil, nil
	u.travel = nil
	j.cancel()
	close(j.done)

	planet := ""
	if u.planet != nil {
		planet = u.planet.Name()
	}
	u.env.Logger.Log("DEBUG", "unit arrived", map[string]interface{}{
		"unit_id": u.id,
		"system":  u.system.Name(),
		"planet":  planet,
	})
}

func (u *Unit) abortJourneyLocked(reason string) {
	j := u.travel
	if j == nil {
		return
	}
	u.travel = nil
	u.destSystem, u.destPlanet, u.eta = nil, nil, nil
	j.cancel()
	j.err = shared.NewCancelledError(fmt.Sprintf("travel of unit %s cancelled: %s", u.id, reason))
	close(j.done)
}

// IsTravelling reports whether a journey is in progress
func (u *Unit) IsTravelling() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.travel != nil
}

// RemainingTravel returns the time left until arrival measured on the scheduler clock
func (u *Unit) RemainingTravel() (time.Duration, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.eta == nil {
		return 0, false
	}
	return u.eta.Sub(u.env.Scheduler.Now()), true
}

// AwaitArrival blocks until the current journey completes. It returns nil at once when
// the unit is not travelling, and a Cancelled error when the journey is superseded or
// the unit is removed.
func (u *Unit) AwaitArrival(ctx context.Context) error {
	u.mu.Lock()
	j := u.travel
	u.mu.Unlock()
	if j == nil {
		return nil
	}

	select {
	case <-j.done:
		return j.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
