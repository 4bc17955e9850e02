package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/spaceshard-go/internal/domain/transfer"
)

// GormTransferLogRepository implements transfer.LogRepository using GORM
type GormTransferLogRepository struct {
	db *gorm.DB
}

// NewGormTransferLogRepository creates a new GORM transfer log repository
func NewGormTransferLogRepository(db *gorm.DB) *GormTransferLogRepository {
	return &GormTransferLogRepository{db: db}
}

// Save persists a transfer record
func (r *GormTransferLogRepository) Save(ctx context.Context, record *transfer.Record) error {
	model := &TransferLogModel{
		ID:          record.ID,
		PlayerID:    record.PlayerID,
		UnitID:      record.UnitID,
		UnitType:    record.UnitType,
		Destination: record.Destination,
		Redirect:    record.Redirect,
		Succeeded:   record.Succeeded,
		Error:       record.Error,
		At:          record.At,
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save transfer log: %w", err)
	}
	return nil
}

// ListByPlayer returns a player's transfers, newest first
func (r *GormTransferLogRepository) ListByPlayer(ctx context.Context, playerID string) ([]*transfer.Record, error) {
	var models []TransferLogModel
	result := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list transfer logs: %w", result.Error)
	}

	records := make([]*transfer.Record, 0, len(models))
	for _, m := range models {
		records = append(records, &transfer.Record{
			ID:          m.ID,
			PlayerID:    m.PlayerID,
			UnitID:      m.UnitID,
			UnitType:    m.UnitType,
			Destination: m.Destination,
			Redirect:    m.Redirect,
			Succeeded:   m.Succeeded,
			Error:       m.Error,
			At:          m.At,
		})
	}
	return records, nil
}
