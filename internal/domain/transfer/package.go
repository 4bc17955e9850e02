package transfer

import (
	"context"
	"time"

	"github.com/andrescamacho/spaceshard-go/internal/domain/galaxy"
	"github.com/andrescamacho/spaceshard-go/internal/domain/player"
	"github.com/andrescamacho/spaceshard-go/internal/domain/unit"
)

// PlayerPayload is the owning player's state as sent to the destination shard
type PlayerPayload struct {
	ID        string
	Pseudo    string
	CreatedAt time.Time
	Resources map[string]int
}

// UnitPayload is the travelling unit as sent to the destination shard
type UnitPayload struct {
	ID               string
	Type             string
	System           string
	Health           int
	DestinationShard string
	Resources        map[string]int
}

// Package is everything a destination shard needs to take over a unit
type Package struct {
	Wormhole *galaxy.Wormhole
	Player   PlayerPayload
	Unit     UnitPayload
}

// NewPackage bundles a unit and its owner for travel through wormhole. The unit is
// addressed to the wormhole's system.
func NewPackage(wormhole *galaxy.Wormhole, owner player.State, u unit.State) *Package {
	return &Package{
		Wormhole: wormhole,
		Player: PlayerPayload{
			ID:        owner.ID,
			Pseudo:    owner.Pseudo,
			CreatedAt: owner.CreatedAt,
			Resources: owner.Resources.StringKeys(),
		},
		Unit: UnitPayload{
			ID:               u.ID,
			Type:             string(u.Type),
			System:           wormhole.System,
			Health:           u.Health,
			DestinationShard: wormhole.Name,
			Resources:        u.Resources.StringKeys(),
		},
	}
}

// RedirectTarget is where the unit can be found once delivered
func (p *Package) RedirectTarget() string {
	return p.Wormhole.UnitURL(p.Player.ID, p.Unit.ID)
}

// Gateway delivers packages to sibling shards: first the player, then the unit
type Gateway interface {
	Deliver(ctx context.Context, pkg *Package) error
}

// Record is one attempted transfer, kept for audit
type Record struct {
	ID          string
	PlayerID    string
	UnitID      string
	UnitType    string
	Destination string
	Redirect    string
	Succeeded   bool
	Error       string
	At          time.Time
}

// LogRepository stores transfer records
type LogRepository interface {
	Save(ctx context.Context, record *Record) error
	ListByPlayer(ctx context.Context, playerID string) ([]*Record, error)
}

// Reporter observes transfer outcomes
type Reporter interface {
	RecordTransfer(destination string, succeeded bool)
}
