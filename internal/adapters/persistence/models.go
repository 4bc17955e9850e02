package persistence

import (
	"time"
)

// PlayerSnapshotModel represents the player_snapshots table
// Units and buildings are stored as zstd-compressed JSON
type PlayerSnapshotModel struct {
	ID            uint      `gorm:"column:id;primaryKey;autoIncrement"`
	PlayerID      string    `gorm:"column:player_id;not null;index:idx_snapshot_player_taken"`
	Pseudo        string    `gorm:"column:pseudo;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;not null"`
	Resources     string    `gorm:"column:resources;type:text"` // JSON object as text
	UnitCount     int       `gorm:"column:unit_count;not null;default:0"`
	BuildingCount int       `gorm:"column:building_count;not null;default:0"`
	Payload       []byte    `gorm:"column:payload"`
	TakenAt       time.Time `gorm:"column:taken_at;not null;index:idx_snapshot_player_taken"`
}

func (PlayerSnapshotModel) TableName() string {
	return "player_snapshots"
}

// TransferLogModel represents the transfer_logs table
type TransferLogModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	PlayerID    string    `gorm:"column:player_id;not null;index"`
	UnitID      string    `gorm:"column:unit_id;not null"`
	UnitType    string    `gorm:"column:unit_type"`
	Destination string    `gorm:"column:destination;not null"`
	Redirect    string    `gorm:"column:redirect"`
	Succeeded   bool      `gorm:"column:succeeded;not null;default:false"`
	Error       string    `gorm:"column:error;type:text"`
	At          time.Time `gorm:"column:at;not null"`
}

func (TransferLogModel) TableName() string {
	return "transfer_logs"
}
