package config

import "time"

// DaemonConfig configures the operator side of the shard process
type DaemonConfig struct {
	// Address of the operator gRPC service (host:port)
	Address string `mapstructure:"address" validate:"required"`

	PIDFile string `mapstructure:"pid_file"`

	// ShutdownTimeout bounds the drain of both listeners and the final snapshot
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`

	// FinalSnapshot writes one more snapshot batch after the listeners stop
	FinalSnapshot bool `mapstructure:"final_snapshot"`
}
