package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/spaceshard-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage shardctl configuration settings.

Shard configuration is loaded from multiple sources with priority:
1. Environment variables (SHARD_* prefix)
2. Config file (config.yaml)
3. Default values

User preferences (default player, daemon address) are stored in
~/.spaceshard/config.json

Examples:
  shardctl config show
  shardctl config set-player alice
  shardctl config set-daemon localhost:50061
  shardctl config clear-player`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetPlayerCommand())
	cmd.AddCommand(newConfigClearPlayerCommand())
	cmd.AddCommand(newConfigSetDaemonCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(w, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(w, "Using default configuration.")
				cfg = config.LoadConfigOrDefault(configPath)
			}

			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			userCfg, err := handler.Load()
			if err != nil {
				fmt.Fprintf(w, "Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			fmt.Fprintln(w, "Shard Configuration")
			fmt.Fprintln(w, "===================")

			fmt.Fprintln(w, "User Preferences:")
			fmt.Fprintf(w, "  Config file:      %s\n", handler.GetConfigPath())
			fmt.Fprintf(w, "  Default Player:   %s\n", orDash(userCfg.DefaultPlayerID))
			fmt.Fprintf(w, "  Daemon Address:   %s\n", orDash(userCfg.DaemonAddress))

			fmt.Fprintln(w, "\nShard:")
			fmt.Fprintf(w, "  Name:             %s\n", cfg.Shard.Name)
			fmt.Fprintf(w, "  Public URI:       %s\n", orDash(cfg.Shard.PublicURI))
			fmt.Fprintf(w, "  Gateway:          %s\n", cfg.Gateway.Address)

			fmt.Fprintln(w, "\nWorld:")
			if cfg.World.Specification != "" {
				fmt.Fprintf(w, "  Specification:    %s\n", cfg.World.Specification)
			} else {
				fmt.Fprintf(w, "  Seed:             %s\n", cfg.World.Seed)
				fmt.Fprintf(w, "  Systems:          %d\n", cfg.World.Systems)
				fmt.Fprintf(w, "  Planets/System:   %d-%d\n", cfg.World.MinPlanets, cfg.World.MaxPlanets)
			}

			fmt.Fprintln(w, "\nWormholes:")
			if len(cfg.Wormholes) == 0 {
				fmt.Fprintln(w, "  (none)")
			}
			for _, wh := range cfg.GalaxyWormholes() {
				fmt.Fprintf(w, "  %-16s %s via %s\n", wh.Name, wh.BaseURI, wh.System)
			}

			fmt.Fprintln(w, "\nDatabase:")
			fmt.Fprintf(w, "  Enabled:          %t\n", cfg.Database.Enabled)
			fmt.Fprintf(w, "  Type:             %s\n", cfg.Database.Type)
			if cfg.Database.URL != "" {
				fmt.Fprintf(w, "  URL:              %s\n", maskPassword(cfg.Database.URL))
			} else if cfg.Database.Type == "sqlite" {
				fmt.Fprintf(w, "  Path:             %s\n", cfg.Database.Path)
			} else {
				fmt.Fprintf(w, "  Host:             %s:%d\n", cfg.Database.Host, cfg.Database.Port)
			}

			fmt.Fprintln(w, "\nDaemon:")
			fmt.Fprintf(w, "  Address:          %s\n", cfg.Daemon.Address)
			fmt.Fprintf(w, "  PID File:         %s\n", cfg.Daemon.PIDFile)

			fmt.Fprintln(w, "\nLogging:")
			fmt.Fprintf(w, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(w, "  Format:           %s\n", cfg.Logging.Format)
			return nil
		},
	}
}

func newConfigSetPlayerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-player <player-id>",
		Short: "Set the default player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateUserConfig(cmd, func(c *config.UserConfig) { c.DefaultPlayerID = args[0] },
				"✓ Default player set to "+args[0])
		},
	}
}

func newConfigClearPlayerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-player",
		Short: "Clear the default player",
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateUserConfig(cmd, func(c *config.UserConfig) { c.DefaultPlayerID = "" },
				"✓ Default player cleared")
		},
	}
}

func newConfigSetDaemonCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-daemon <address>",
		Short: "Set the daemon address to dial",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateUserConfig(cmd, func(c *config.UserConfig) { c.DaemonAddress = args[0] },
				"✓ Daemon address set to "+args[0])
		},
	}
}

func updateUserConfig(cmd *cobra.Command, fn func(*config.UserConfig), message string) error {
	handler, err := config.NewUserConfigHandler()
	if err != nil {
		return fmt.Errorf("failed to create user config handler: %w", err)
	}
	if err := handler.Update(fn); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), message)
	return nil
}

// maskPassword hides the password of a database URL
func maskPassword(url string) string {
	at := -1
	for i := len(url) - 1; i >= 0; i-- {
		if url[i] == '@' {
			at = i
			break
		}
	}
	if at < 0 {
		return url
	}
	scheme := 0
	for i := 0; i+2 < len(url); i++ {
		if url[i:i+3] == "://" {
			scheme = i + 3
			break
		}
	}
	for i := scheme; i < at; i++ {
		if url[i] == ':' {
			return url[:i+1] + "****" + url[at:]
		}
	}
	return url
}
