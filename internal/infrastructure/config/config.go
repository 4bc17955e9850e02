package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the main configuration struct combining all sub-configs
type Config struct {
	Shard      ShardConfig               `mapstructure:"shard"`
	World      WorldConfig               `mapstructure:"world"`
	Simulation SimulationConfig          `mapstructure:"simulation"`
	Wormholes  map[string]WormholeConfig `mapstructure:"wormholes" validate:"dive,keys,identifier,endkeys"`
	Auth       AuthConfig                `mapstructure:"auth"`
	Gateway    GatewayConfig             `mapstructure:"gateway"`
	Daemon     DaemonConfig              `mapstructure:"daemon"`
	API        APIConfig                 `mapstructure:"api"`
	Database   DatabaseConfig            `mapstructure:"database"`
	Logging    LoggingConfig             `mapstructure:"logging"`
	Metrics    MetricsConfig             `mapstructure:"metrics"`
}

// LoadConfig loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. Config file (config.yaml)
// 3. Defaults (lowest priority)
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/spaceshard")
	}

	v.SetEnvPrefix("SHARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// DATABASE_URL is honoured without the prefix, as hosting platforms set it
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		v.Set("database.url", dbURL)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	SetDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// bindEnv registers the keys that may come from the environment alone. AutomaticEnv
// only covers keys viper already knows from a file or a default.
func bindEnv(v *viper.Viper) {
	for _, key := range []string{
		"shard.name", "shard.public_uri",
		"world.seed", "world.systems", "world.specification",
		"simulation.resolution", "simulation.snapshot_interval",
		"auth.admin_user", "auth.admin_password", "auth.shared_password",
		"gateway.address",
		"daemon.address", "daemon.pid_file", "daemon.final_snapshot",
		"database.enabled", "database.type", "database.url", "database.path",
		"database.snapshots.compression", "database.snapshots.retention",
		"logging.level", "logging.format", "logging.output", "logging.file_path", "logging.add_source",
		"metrics.enabled", "metrics.path",
	} {
		_ = v.BindEnv(key)
	}
}

// LoadConfigOrDefault loads configuration or returns a default config on error
func LoadConfigOrDefault(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		defaultCfg := &Config{}
		SetDefaults(defaultCfg)
		return defaultCfg
	}
	return cfg
}

// MustLoadConfig loads configuration and panics on error (for use in main.go)
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}
