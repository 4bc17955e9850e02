package config

import (
	"time"

	"github.com/andrescamacho/spaceshard-go/internal/domain/galaxy"
)

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Shard defaults
	if cfg.Shard.Name == "" {
		cfg.Shard.Name = "shard-local"
	}

	// World defaults
	gen := galaxy.DefaultGeneratorOptions()
	if cfg.World.Seed == "" {
		cfg.World.Seed = galaxy.DefaultSeed
	}
	if cfg.World.Systems == 0 {
		cfg.World.Systems = gen.Systems
	}
	if cfg.World.MinPlanets == 0 {
		cfg.World.MinPlanets = gen.MinPlanets
	}
	if cfg.World.MaxPlanets == 0 {
		cfg.World.MaxPlanets = gen.MaxPlanets
	}
	if cfg.World.MaxDeposit == 0 {
		cfg.World.MaxDeposit = gen.MaxDeposit
	}

	// Simulation defaults
	if cfg.Simulation.Resolution == 0 {
		cfg.Simulation.Resolution = 100 * time.Millisecond
	}

	// Auth defaults
	if cfg.Auth.AdminUser == "" {
		cfg.Auth.AdminUser = "admin"
	}
	if cfg.Auth.AdminPassword == "" {
		cfg.Auth.AdminPassword = "admin"
	}

	// Gateway defaults
	if cfg.Gateway.Address == "" {
		cfg.Gateway.Address = "localhost:8080"
	}
	if cfg.Gateway.ReadTimeout == 0 {
		cfg.Gateway.ReadTimeout = 10 * time.Second
	}
	if cfg.Gateway.WriteTimeout == 0 {
		cfg.Gateway.WriteTimeout = 30 * time.Second
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "spaceshard.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "spaceshard"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "spaceshard"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}
	if cfg.Database.Snapshots.Compression == "" {
		cfg.Database.Snapshots.Compression = "default"
	}

	// API defaults
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 10 * time.Second
	}
	if cfg.API.RateLimit.Requests == 0 {
		cfg.API.RateLimit.Requests = 10
	}
	if cfg.API.RateLimit.Burst == 0 {
		cfg.API.RateLimit.Burst = 20
	}
	if cfg.API.Retry.MaxAttempts == 0 {
		cfg.API.Retry.MaxAttempts = 3
	}
	if cfg.API.Retry.BackoffBase == 0 {
		cfg.API.Retry.BackoffBase = 500 * time.Millisecond
	}
	if cfg.API.CircuitBreaker.MaxFailures == 0 {
		cfg.API.CircuitBreaker.MaxFailures = 5
	}
	if cfg.API.CircuitBreaker.Timeout == 0 {
		cfg.API.CircuitBreaker.Timeout = 30 * time.Second
	}

	// Daemon defaults
	if cfg.Daemon.Address == "" {
		cfg.Daemon.Address = "localhost:50061"
	}
	if cfg.Daemon.PIDFile == "" {
		cfg.Daemon.PIDFile = "/tmp/spaceshard-daemon.pid"
	}
	if cfg.Daemon.ShutdownTimeout == 0 {
		cfg.Daemon.ShutdownTimeout = 15 * time.Second
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	// Metrics defaults
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}
