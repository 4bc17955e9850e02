package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/spaceshard-go/internal/infrastructure/config"
	"github.com/andrescamacho/spaceshard-go/internal/infrastructure/pidfile"
)

// NewDaemonCommand creates the daemon command with subcommands
func NewDaemonCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Inspect the shard daemon",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Check that the daemon is running and responsive",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfigOrDefault(configPath)
			w := cmd.OutOrStdout()
			if pid, err := pidfile.New(cfg.Daemon.PIDFile).Running(); err == nil {
				fmt.Fprintf(w, "PID file:  %s (pid %d)\n", cfg.Daemon.PIDFile, pid)
			} else {
				fmt.Fprintf(w, "PID file:  %s (%v)\n", cfg.Daemon.PIDFile, err)
			}

			resp, err := call("Status", nil)
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			return render(w, resp, func(w io.Writer, resp map[string]interface{}) {
				fmt.Fprintln(w, "✓ Daemon is healthy")
				keys := make([]string, 0, len(resp))
				for k := range resp {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(w, "  %-16s %s\n", k+":", str(resp, k))
				}
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "snapshot",
		Short: "Write a snapshot of every player now",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := call("PersistSnapshots", nil)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), resp, func(w io.Writer, resp map[string]interface{}) {
				fmt.Fprintf(w, "✓ Snapshot written for %s player(s)\n", str(resp, "Players"))
			})
		},
	})

	return cmd
}
