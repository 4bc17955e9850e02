package player

import (
	"context"
	"time"

	"github.com/andrescamacho/spaceshard-go/internal/domain/building"
	"github.com/andrescamacho/spaceshard-go/internal/domain/unit"
)

// SnapshotRecord is a point-in-time copy of a player with its units and buildings.
// Records are diagnostics and are never loaded back into the simulation.
type SnapshotRecord struct {
	State
	Units     []unit.State
	Buildings []building.State
	TakenAt   time.Time
}

// Record captures the player's current state
func (p *Player) Record(at time.Time) *SnapshotRecord {
	rec := &SnapshotRecord{State: p.Snapshot(), TakenAt: at}
	for _, u := range p.Units() {
		rec.Units = append(rec.Units, u.Snapshot())
	}
	for _, b := range p.Buildings() {
		rec.Buildings = append(rec.Buildings, b.Snapshot())
	}
	return rec
}

// SnapshotRepository stores snapshot records
type SnapshotRepository interface {
	Save(ctx context.Context, records []*SnapshotRecord) error
	Latest(ctx context.Context, playerID string) (*SnapshotRecord, error)
}
