package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewPlayerCommand creates the player command with subcommands
func NewPlayerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Manage players",
		Long: `Register players and inspect their resources.

Examples:
  shardctl player register alice --pseudo Alice
  shardctl player list
  shardctl player info alice
  shardctl player resources alice iron=100 gold=5`,
	}

	cmd.AddCommand(newPlayerRegisterCommand())
	cmd.AddCommand(newPlayerListCommand())
	cmd.AddCommand(newPlayerInfoCommand())
	cmd.AddCommand(newPlayerResourcesCommand())

	return cmd
}

func newPlayerRegisterCommand() *cobra.Command {
	var pseudo string

	cmd := &cobra.Command{
		Use:   "register <player-id>",
		Short: "Register a new player",
		Long: `Register a new player. The player starts with the starter resources and a
scout and a builder in a random system.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := call("RegisterPlayer", map[string]interface{}{
				"playerId": args[0],
				"pseudo":   pseudo,
			})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), resp, func(w io.Writer, resp map[string]interface{}) {
				if resp["Created"] == true {
					fmt.Fprintln(w, "✓ Player registered successfully")
				}
				printPlayer(w, object(resp, "Player"))
			})
		},
	}

	cmd.Flags().StringVar(&pseudo, "pseudo", "", "Display name (default: the player id)")

	return cmd
}

func newPlayerListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all registered players",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := call("ListPlayers", nil)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), resp, func(w io.Writer, resp map[string]interface{}) {
				printPlayers(w, objects(resp, "Players"))
			})
		},
	}
}

func newPlayerInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info [player-id]",
		Short: "Show a player's resources",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := playerFromArgs(args)
			if err != nil {
				return err
			}
			resp, err := call("GetPlayer", map[string]interface{}{"playerId": id})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), resp, func(w io.Writer, resp map[string]interface{}) {
				printPlayer(w, object(resp, "Player"))
			})
		},
	}
}

func newPlayerResourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resources <player-id> <resource=amount>...",
		Short: "Overwrite a player's resource balances (admin)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantities, err := parseQuantities(args[1:])
			if err != nil {
				return err
			}
			resp, err := call("RegisterPlayer", map[string]interface{}{
				"playerId":  args[0],
				"resources": quantities,
			})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), resp, func(w io.Writer, resp map[string]interface{}) {
				printPlayer(w, object(resp, "Player"))
			})
		},
	}
}

func playerFromArgs(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return resolvePlayer()
}
