package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath    string
	daemonAddress string
	username      string
	password      string
	playerFlag    string
	outputFormat  string
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shardctl",
		Short: "shardctl - operate a DuncanShard daemon",
		Long: `shardctl talks to a running shard daemon over gRPC to manage players, units,
buildings and transfers, and generates sector maps locally.

Examples:
  shardctl player register alice --pseudo Alice
  shardctl unit list --player alice
  shardctl unit move id-1 --system Alpha --planet "Alpha I" --player alice
  shardctl unit move id-1 --shard west --player alice
  shardctl building create --builder id-2 --type mine --category solid --player alice
  shardctl system list
  shardctl daemon status
  shardctl world generate --seed galaxy-one --systems 12 --out sector.yaml`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to the shard config file (default: search ., ./configs, /etc/spaceshard)")
	rootCmd.PersistentFlags().StringVar(&daemonAddress, "daemon", "",
		"Daemon address, host:port or unix:<path> (default: user config, then daemon.address)")
	rootCmd.PersistentFlags().StringVar(&username, "user", "",
		"Username presented to the daemon (default: auth.admin_user)")
	rootCmd.PersistentFlags().StringVar(&password, "password", "",
		"Password presented to the daemon (default: auth.admin_password)")
	rootCmd.PersistentFlags().StringVarP(&playerFlag, "player", "p", "",
		"Player id (default: user config default player)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format: table or json")

	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewPlayerCommand())
	rootCmd.AddCommand(NewUnitCommand())
	rootCmd.AddCommand(NewBuildingCommand())
	rootCmd.AddCommand(NewSystemCommand())
	rootCmd.AddCommand(NewTransferCommand())
	rootCmd.AddCommand(NewDaemonCommand())
	rootCmd.AddCommand(NewWorldCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
