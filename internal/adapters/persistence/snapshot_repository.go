package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"
	"gorm.io/gorm"

	"github.com/andrescamacho/spaceshard-go/internal/domain/building"
	"github.com/andrescamacho/spaceshard-go/internal/domain/player"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
	"github.com/andrescamacho/spaceshard-go/internal/domain/unit"
)

// snapshotPayload is the compressed part of a snapshot row
type snapshotPayload struct {
	Units     []unit.State     `json:"units"`
	Buildings []building.State `json:"buildings"`
}

// GormSnapshotRepository implements player.SnapshotRepository using GORM
type GormSnapshotRepository struct {
	db        *gorm.DB
	enc       *zstd.Encoder
	dec       *zstd.Decoder
	retention time.Duration
}

type snapshotOptions struct {
	level     zstd.EncoderLevel
	retention time.Duration
}

// SnapshotOption tunes a GormSnapshotRepository
type SnapshotOption func(*snapshotOptions) error

// WithCompressionLevel sets the zstd level by name: fastest, default, better or best
func WithCompressionLevel(name string) SnapshotOption {
	return func(o *snapshotOptions) error {
		if name == "" {
			return nil
		}
		ok, level := zstd.EncoderLevelFromString(name)
		if !ok {
			return fmt.Errorf("unknown compression level %q", name)
		}
		o.level = level
		return nil
	}
}

// WithRetention prunes rows older than d, relative to the newest saved batch
func WithRetention(d time.Duration) SnapshotOption {
	return func(o *snapshotOptions) error {
		if d < 0 {
			return fmt.Errorf("negative snapshot retention %s", d)
		}
		o.retention = d
		return nil
	}
}

// NewGormSnapshotRepository creates a new GORM snapshot repository
func NewGormSnapshotRepository(db *gorm.DB, opts ...SnapshotOption) (*GormSnapshotRepository, error) {
	o := snapshotOptions{level: zstd.SpeedDefault}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(o.level))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &GormSnapshotRepository{db: db, enc: enc, dec: dec, retention: o.retention}, nil
}

// Save writes all records in one transaction
func (r *GormSnapshotRepository) Save(ctx context.Context, records []*player.SnapshotRecord) error {
	if len(records) == 0 {
		return nil
	}
	models := make([]*PlayerSnapshotModel, 0, len(records))
	var newest time.Time
	for _, rec := range records {
		if rec.TakenAt.After(newest) {
			newest = rec.TakenAt
		}
		model, err := r.recordToModel(rec)
		if err != nil {
			return fmt.Errorf("failed to convert snapshot of %s: %w", rec.ID, err)
		}
		models = append(models, model)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models).Error; err != nil {
			return fmt.Errorf("failed to save snapshots: %w", err)
		}
		if r.retention == 0 {
			return nil
		}
		if err := tx.Where("taken_at < ?", newest.Add(-r.retention)).Delete(&PlayerSnapshotModel{}).Error; err != nil {
			return fmt.Errorf("failed to prune snapshots: %w", err)
		}
		return nil
	})
}

// Latest returns the most recent snapshot of a player
func (r *GormSnapshotRepository) Latest(ctx context.Context, playerID string) (*player.SnapshotRecord, error) {
	var model PlayerSnapshotModel
	result := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("taken_at DESC").Order("id DESC").
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("snapshot", playerID)
		}
		return nil, fmt.Errorf("failed to find snapshot: %w", result.Error)
	}
	return r.modelToRecord(&model)
}

func (r *GormSnapshotRepository) recordToModel(rec *player.SnapshotRecord) (*PlayerSnapshotModel, error) {
	resources, err := json.Marshal(rec.Resources.StringKeys())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resources: %w", err)
	}
	raw, err := json.Marshal(snapshotPayload{Units: rec.Units, Buildings: rec.Buildings})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	return &PlayerSnapshotModel{
		PlayerID:      rec.ID,
		Pseudo:        rec.Pseudo,
		CreatedAt:     rec.CreatedAt,
		Resources:     string(resources),
		UnitCount:     len(rec.Units),
		BuildingCount: len(rec.Buildings),
		Payload:       r.enc.EncodeAll(raw, nil),
		TakenAt:       rec.TakenAt,
	}, nil
}

func (r *GormSnapshotRepository) modelToRecord(model *PlayerSnapshotModel) (*player.SnapshotRecord, error) {
	var resources map[string]int
	if model.Resources != "" {
		if err := json.Unmarshal([]byte(model.Resources), &resources); err != nil {
			return nil, fmt.Errorf("failed to unmarshal resources: %w", err)
		}
	}
	quantities, err := shared.QuantitiesFromStrings(resources)
	if err != nil {
		return nil, err
	}

	var payload snapshotPayload
	if len(model.Payload) > 0 {
		raw, err := r.dec.DecodeAll(model.Payload, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress payload: %w", err)
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	return &player.SnapshotRecord{
		State: player.State{
			ID:        model.PlayerID,
			Pseudo:    model.Pseudo,
			CreatedAt: model.CreatedAt,
			Resources: quantities,
		},
		Units:     payload.Units,
		Buildings: payload.Buildings,
		TakenAt:   model.TakenAt,
	}, nil
}
