package config

import "time"

// DatabaseConfig describes the optional store for player snapshots and the transfer log.
// The simulation itself never reads from it.
type DatabaseConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Type selects the GORM driver
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`

	// URL is a full postgres DSN and wins over the discrete fields below
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`

	// Path is the sqlite file; empty or ":memory:" keeps everything in memory
	Path string `mapstructure:"path"`

	Pool      PoolConfig          `mapstructure:"pool"`
	Snapshots SnapshotStoreConfig `mapstructure:"snapshots"`
}

// PoolConfig sizes the postgres connection pool
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}

// SnapshotStoreConfig tunes how snapshot rows are written
type SnapshotStoreConfig struct {
	// Compression is the zstd level of the unit and building payload
	Compression string `mapstructure:"compression" validate:"omitempty,oneof=fastest default better best"`

	// Retention drops rows older than this, measured in simulation time from the newest
	// batch. Zero keeps every row.
	Retention time.Duration `mapstructure:"retention" validate:"min=0"`
}
