// Package combat runs the shard-wide combat tick.
//
// Every six seconds, aligned to wall-clock seconds divisible by six, each combat unit
// picks the best co-located enemy by its priority list and fires at it. Bombers only
// fight on the tick that falls on second zero of a minute. All targets are chosen
// before any shot lands, so fire within one tick is simultaneous.
package combat

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/andrescamacho/spaceshard-go/internal/domain/scheduler"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
	"github.com/andrescamacho/spaceshard-go/internal/domain/unit"
)

// TickInterval is the combat period
const TickInterval = 6 * time.Second

// Reporter observes combat outcomes
type Reporter interface {
	RecordCombatTick(participants int)
	RecordShot(attacker, target unit.Type, destroyed bool)
}

type nopReporter struct{}

func (nopReporter) RecordCombatTick(int)                  {}
func (nopReporter) RecordShot(unit.Type, unit.Type, bool) {}

// Organiser keeps the roster of combat units and resolves ticks
type Organiser struct {
	sched    *scheduler.Scheduler
	logger   shared.Logger
	reporter Reporter

	mu     sync.Mutex
	roster []*unit.Unit
	timer  *scheduler.Timer
}

// NewOrganiser creates an idle organiser; call Start to begin ticking
func NewOrganiser(sched *scheduler.Scheduler, logger shared.Logger, reporter Reporter) *Organiser {
	if logger == nil {
		logger = shared.NopLogger{}
	}
	if reporter == nil {
		reporter = nopReporter{}
	}
	return &Organiser{sched: sched, logger: logger, reporter: reporter}
}

// Start schedules the periodic tick. The first tick lands on the next second
// divisible by six. Calling Start twice has no effect.
func (o *Organiser) Start(ctx context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.timer != nil {
		return
	}
	o.timer = o.sched.Every(ctx, FirstTickDelay(o.sched.Now()), TickInterval, o.Tick)
}

// Stop cancels the periodic tick
func (o *Organiser) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
}

// FirstTickDelay is the delay from now to the next second divisible by six. A time
// already on such a second waits a full period.
func FirstTickDelay(now time.Time) time.Duration {
	sub := time.Duration(now.Nanosecond())
	return time.Duration(6-now.Second()%6)*time.Second - sub
}

// Register adds a combat unit to the roster; other units are ignored
func (o *Organiser) Register(u *unit.Unit) {
	if !u.Type().IsCombat() {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, existing := range o.roster {
		if existing == u {
			return
		}
	}
	o.roster = append(o.roster, u)
}

// Deregister drops a unit from the roster
func (o *Organiser) Deregister(u *unit.Unit) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i, existing := range o.roster {
		if existing == u {
			o.roster = append(o.roster[:i], o.roster[i+1:]...)
			return
		}
	}
}

// Roster returns the registered units in registration order
func (o *Organiser) Roster() []*unit.Unit {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]*unit.Unit, len(o.roster))
	copy(out, o.roster)
	return out
}

type engagement struct {
	attacker *unit.Unit
	target   *unit.Unit
}

// Tick resolves one combat round at now
func (o *Organiser) Tick(now time.Time) {
	roster := o.liveRoster()

	attackers := make([]*unit.Unit, 0, len(roster))
	for _, u := range roster {
		if u.Type() == unit.Bomber && now.Second() != 0 {
			continue
		}
		attackers = append(attackers, u)
	}
	sort.SliceStable(attackers, func(i, j int) bool {
		return attackers[i].Damage() < attackers[j].Damage()
	})

	var fights []engagement
	for _, attacker := range attackers {
		if target := selectTarget(attacker, roster); target != nil {
			fights = append(fights, engagement{attacker: attacker, target: target})
		}
	}

	for _, f := range fights {
		destroyed := f.attacker.Shoot(f.target)
		o.reporter.RecordShot(f.attacker.Type(), f.target.Type(), destroyed)
		if destroyed {
			o.logger.Log("INFO", "unit destroyed in combat", map[string]interface{}{
				"unit_id":     f.target.ID(),
				"unit_type":   string(f.target.Type()),
				"attacker_id": f.attacker.ID(),
			})
		}
	}

	o.purge()
	o.reporter.RecordCombatTick(len(fights))
}

func (o *Organiser) liveRoster() []*unit.Unit {
	o.mu.Lock()
	defer o.mu.Unlock()
	live := make([]*unit.Unit, 0, len(o.roster))
	for _, u := range o.roster {
		if u.IsAlive() {
			live = append(live, u)
		}
	}
	return live
}

func (o *Organiser) purge() {
	o.mu.Lock()
	defer o.mu.Unlock()
	kept := o.roster[:0]
	for _, u := range o.roster {
		if u.IsAlive() {
			kept = append(kept, u)
		}
	}
	for i := len(kept); i < len(o.roster); i++ {
		o.roster[i] = nil
	}
	o.roster = kept
}

// selectTarget returns the highest-priority enemy co-located with attacker: on the
// same planet when the attacker is on one, otherwise in the same system.
func selectTarget(attacker *unit.Unit, roster []*unit.Unit) *unit.Unit {
	sys, planet := attacker.Location()
	owner := ownerID(attacker)

	var best *unit.Unit
	bestRank := 0
	for _, candidate := range roster {
		if candidate == attacker || ownerID(candidate) == owner {
			continue
		}
		cSys, cPlanet := candidate.Location()
		if planet != nil {
			if cPlanet != planet {
				continue
			}
		} else if cSys != sys {
			continue
		}
		rank := attacker.Type().PriorityOf(candidate.Type())
		if best == nil || rank < bestRank {
			best, bestRank = candidate, rank
		}
	}
	return best
}

func ownerID(u *unit.Unit) string {
	if u.Owner() == nil {
		return ""
	}
	return u.Owner().PlayerID().String()
}
