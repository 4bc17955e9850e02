package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewUnitCommand creates the unit command with subcommands
func NewUnitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unit",
		Short: "Manage a player's units",
		Long: `List, create, move and load units.

Examples:
  shardctl unit list --player alice
  shardctl unit move id-1 --system Alpha --planet "Alpha I" --player alice
  shardctl unit move id-1 --shard west --player alice
  shardctl unit create --type fighter --system Alpha --player alice
  shardctl unit load id-7 iron=20 --player alice`,
	}

	cmd.AddCommand(newUnitListCommand())
	cmd.AddCommand(newUnitGetCommand())
	cmd.AddCommand(newUnitLocationCommand())
	cmd.AddCommand(newUnitCreateCommand())
	cmd.AddCommand(newUnitMoveCommand())
	cmd.AddCommand(newUnitLoadCommand())

	return cmd
}

func newUnitListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the player's units",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePlayer()
			if err != nil {
				return err
			}
			resp, err := call("ListUnits", map[string]interface{}{"playerId": id})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), resp, func(w io.Writer, resp map[string]interface{}) {
				printUnits(w, objects(resp, "Units"))
			})
		},
	}
}

func newUnitGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <unit-id>",
		Short: "Show one unit",
		Long: `Show one unit. A unit arriving within two seconds is reported after its
arrival.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePlayer()
			if err != nil {
				return err
			}
			resp, err := call("GetUnit", map[string]interface{}{"playerId": id, "unitId": args[0]})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), resp, func(w io.Writer, resp map[string]interface{}) {
				printUnit(w, object(resp, "Unit"))
			})
		},
	}
}

func newUnitLocationCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "location <unit-id>",
		Short: "Show what a unit sees where it stands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePlayer()
			if err != nil {
				return err
			}
			resp, err := call("GetUnitLocation", map[string]interface{}{"playerId": id, "unitId": args[0]})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), resp, func(w io.Writer, resp map[string]interface{}) {
				loc := object(resp, "Location")
				fmt.Fprintf(w, "System:  %s\n", str(loc, "system"))
				fmt.Fprintf(w, "Planet:  %s\n", orDash(str(loc, "planet")))
				if deposit := object(loc, "resourcesQuantity"); len(deposit) > 0 {
					fmt.Fprintf(w, "Deposit: %s\n", formatQuantities(deposit))
				}
			})
		},
	}
}

func newUnitCreateCommand() *cobra.Command {
	var (
		unitID     string
		unitType   string
		system     string
		planet     string
		health     int
		cargoItems []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a unit (admin)",
		Long: `Create a unit for a player. Without --system the unit lands in the arrival
system of the shard.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if unitType == "" {
				return fmt.Errorf("--type flag is required")
			}
			id, err := resolvePlayer()
			if err != nil {
				return err
			}
			req := map[string]interface{}{
				"playerId": id,
				"unitId":   unitID,
				"type":     unitType,
				"system":   system,
				"planet":   planet,
			}
			if cmd.Flags().Changed("health") {
				req["health"] = health
			}
			if len(cargoItems) > 0 {
				cargo, err := parseQuantities(cargoItems)
				if err != nil {
					return err
				}
				req["resources"] = cargo
			}
			resp, err := call("CreateUnit", req)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), resp, func(w io.Writer, resp map[string]interface{}) {
				fmt.Fprintln(w, "✓ Unit created")
				printUnit(w, object(resp, "Unit"))
			})
		},
	}

	cmd.Flags().StringVar(&unitID, "id", "", "Unit id (default: generated)")
	cmd.Flags().StringVar(&unitType, "type", "", "Unit type: scout, builder, fighter, bomber, cruiser, cargo (required)")
	cmd.Flags().StringVar(&system, "system", "", "System to place the unit in")
	cmd.Flags().StringVar(&planet, "planet", "", "Planet to place the unit on")
	cmd.Flags().IntVar(&health, "health", 0, "Health override (cargo units only)")
	cmd.Flags().StringSliceVar(&cargoItems, "cargo", nil, "Cargo contents as resource=amount (cargo units only)")

	return cmd
}

func newUnitMoveCommand() *cobra.Command {
	var (
		system string
		planet string
		shard  string
	)

	cmd := &cobra.Command{
		Use:   "move <unit-id>",
		Short: "Move a unit, or send it through a wormhole",
		Long: `Move a unit to a system and optionally a planet. A move supersedes any move
in progress. With --shard the unit travels through the wormhole to that sibling shard
and the command prints where it can be found there.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePlayer()
			if err != nil {
				return err
			}
			resp, err := call("MoveUnit", map[string]interface{}{
				"playerId":         id,
				"unitId":           args[0],
				"system":           system,
				"planet":           planet,
				"destinationShard": shard,
			})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), resp, func(w io.Writer, resp map[string]interface{}) {
				if redirect := str(resp, "Redirect"); redirect != "" {
					fmt.Fprintf(w, "✓ Unit transferred to %s\n  Now at: %s\n", shard, redirect)
					return
				}
				printUnit(w, object(resp, "Unit"))
			})
		},
	}

	cmd.Flags().StringVar(&system, "system", "", "Destination system (default: current system)")
	cmd.Flags().StringVar(&planet, "planet", "", "Destination planet")
	cmd.Flags().StringVar(&shard, "shard", "", "Destination shard, through the wormhole of that name")

	return cmd
}

func newUnitLoadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "load <unit-id> [resource=amount]...",
		Short: "Set a cargo unit's trunk contents",
		Long: `Set the trunk of a cargo unit standing on a planet with a starport. The
difference is taken from or returned to the player's resources. With no quantities
the trunk is emptied.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePlayer()
			if err != nil {
				return err
			}
			quantities, err := parseQuantities(args[1:])
			if err != nil {
				return err
			}
			resp, err := call("LoadCargo", map[string]interface{}{
				"playerId":  id,
				"unitId":    args[0],
				"resources": quantities,
			})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), resp, func(w io.Writer, resp map[string]interface{}) {
				printUnit(w, object(resp, "Unit"))
				fmt.Fprintf(w, "Player resources: %s\n", formatQuantities(object(object(resp, "Player"), "resourcesQuantity")))
			})
		},
	}
}
