package config

import "time"

// ShardConfig identifies this shard to its siblings
type ShardConfig struct {
	// Name of the shard, as used by siblings in their wormhole configuration
	Name string `mapstructure:"name" validate:"required,identifier"`

	// PublicURI is the base URI siblings use to reach this shard's gateway
	PublicURI string `mapstructure:"public_uri" validate:"omitempty,url"`
}

// WorldConfig controls how the sector is generated or loaded
type WorldConfig struct {
	// Seed for the deterministic generator
	Seed string `mapstructure:"seed" validate:"required"`

	// Number of systems to generate
	Systems int `mapstructure:"systems" validate:"min=1"`

	// Planets per generated system
	MinPlanets int `mapstructure:"min_planets" validate:"min=1"`
	MaxPlanets int `mapstructure:"max_planets" validate:"gtefield=MinPlanets"`

	// Upper bound of a generated deposit per resource
	MaxDeposit int `mapstructure:"max_deposit" validate:"min=1"`

	// Specification is an optional YAML sector file; it replaces generation when set
	Specification string `mapstructure:"specification"`
}

// SimulationConfig controls the real-time driver
type SimulationConfig struct {
	// Resolution is how often the scheduler is advanced to wall-clock time
	Resolution time.Duration `mapstructure:"resolution" validate:"required"`

	// SnapshotInterval between player snapshots; 0 disables them
	SnapshotInterval time.Duration `mapstructure:"snapshot_interval" validate:"min=0"`
}

// WormholeConfig links a local system to a sibling shard
type WormholeConfig struct {
	// BaseURI of the sibling shard's gateway
	BaseURI string `mapstructure:"base_uri" validate:"required,url"`

	// System is the local system the wormhole opens in
	System string `mapstructure:"system" validate:"required"`

	// User this shard authenticates as, without the "shard-" prefix
	User string `mapstructure:"user" validate:"required,identifier"`

	// SharedPassword expected by the sibling shard
	SharedPassword string `mapstructure:"shared_password" validate:"required"`
}

// AuthConfig holds the credentials the gateway accepts
type AuthConfig struct {
	AdminUser     string `mapstructure:"admin_user" validate:"required"`
	AdminPassword string `mapstructure:"admin_password" validate:"required"`

	// SharedPassword sibling shards present as "shard-<name>"
	SharedPassword string `mapstructure:"shared_password"`

	// KnownShards restricts which sibling names are accepted; empty accepts any
	KnownShards []string `mapstructure:"known_shards"`
}

// GatewayConfig holds the inbound HTTP server configuration
type GatewayConfig struct {
	// Address to listen on (host:port)
	Address string `mapstructure:"address" validate:"required"`

	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}
