package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewBuildingCommand creates the building command with subcommands
func NewBuildingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "building",
		Short: "Manage a player's buildings",
		Long: `Construct and use mines and starports.

Examples:
  shardctl building create --builder id-2 --type mine --category solid --player alice
  shardctl building create --builder id-2 --type starport --player alice
  shardctl building use id-5 --unit-type fighter --player alice
  shardctl building list --player alice`,
	}

	cmd.AddCommand(newBuildingListCommand())
	cmd.AddCommand(newBuildingGetCommand())
	cmd.AddCommand(newBuildingCreateCommand())
	cmd.AddCommand(newBuildingUseCommand())

	return cmd
}

func newBuildingListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the player's buildings",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePlayer()
			if err != nil {
				return err
			}
			resp, err := call("ListBuildings", map[string]interface{}{"playerId": id})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), resp, func(w io.Writer, resp map[string]interface{}) {
				printBuildings(w, objects(resp, "Buildings"))
			})
		},
	}
}

func newBuildingGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <building-id>",
		Short: "Show one building",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePlayer()
			if err != nil {
				return err
			}
			resp, err := call("GetBuilding", map[string]interface{}{"playerId": id, "buildingId": args[0]})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), resp, func(w io.Writer, resp map[string]interface{}) {
				printBuildings(w, []map[string]interface{}{object(resp, "Building")})
			})
		},
	}
}

func newBuildingCreateCommand() *cobra.Command {
	var (
		builderID    string
		buildingType string
		category     string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Start a construction with a builder",
		Long: `Start a construction on the planet the builder stands on. Mines need a
resource category: solid, liquid or gaseous. Moving the builder away cancels the
construction.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if builderID == "" || buildingType == "" {
				return fmt.Errorf("--builder and --type flags are required")
			}
			id, err := resolvePlayer()
			if err != nil {
				return err
			}
			resp, err := call("CreateBuilding", map[string]interface{}{
				"playerId":         id,
				"builderId":        builderID,
				"type":             buildingType,
				"resourceCategory": category,
			})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), resp, func(w io.Writer, resp map[string]interface{}) {
				fmt.Fprintln(w, "✓ Construction started")
				printBuildings(w, []map[string]interface{}{object(resp, "Building")})
			})
		},
	}

	cmd.Flags().StringVar(&builderID, "builder", "", "Builder unit id (required)")
	cmd.Flags().StringVar(&buildingType, "type", "", "Building type: mine or starport (required)")
	cmd.Flags().StringVar(&category, "category", "", "Resource category of a mine: solid, liquid or gaseous")

	return cmd
}

func newBuildingUseCommand() *cobra.Command {
	var unitType string

	cmd := &cobra.Command{
		Use:   "use <building-id>",
		Short: "Buy a unit at a starport, or run a mine cycle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePlayer()
			if err != nil {
				return err
			}
			resp, err := call("UseBuilding", map[string]interface{}{
				"playerId":   id,
				"buildingId": args[0],
				"unitType":   unitType,
			})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), resp, func(w io.Writer, resp map[string]interface{}) {
				if unit := object(resp, "Unit"); unit != nil {
					fmt.Fprintln(w, "✓ Unit produced")
					printUnit(w, unit)
				}
				fmt.Fprintf(w, "Player resources: %s\n", formatQuantities(object(object(resp, "Player"), "resourcesQuantity")))
			})
		},
	}

	cmd.Flags().StringVar(&unitType, "unit-type", "", "Unit type to buy at a starport")

	return cmd
}
