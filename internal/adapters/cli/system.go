package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewSystemCommand creates the system command with subcommands
func NewSystemCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "system",
		Short: "Inspect the sector map",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List systems, planets and wormholes",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := call("ListSystems", nil)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), resp, printSystems)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <name>",
		Short: "Show a system and the units present",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := call("GetSystem", map[string]interface{}{"name": args[0]})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), resp, func(w io.Writer, resp map[string]interface{}) {
				printSystems(w, map[string]interface{}{"systems": []interface{}{resp["system"]}})
				occupants, _ := resp["occupants"].([]interface{})
				fmt.Fprintf(w, "\n%d unit(s) present\n", len(occupants))
			})
		},
	})

	return cmd
}

func printSystems(w io.Writer, resp map[string]interface{}) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SYSTEM\tPLANETS")
	fmt.Fprintln(tw, "------\t-------")
	for _, sys := range objects(resp, "systems") {
		var planets []string
		for _, p := range objects(sys, "planets") {
			planets = append(planets, fmt.Sprintf("%s (size %s)", str(p, "name"), str(p, "size")))
		}
		fmt.Fprintf(tw, "%s\t%s\n", str(sys, "name"), orDash(strings.Join(planets, ", ")))
	}
	tw.Flush()

	wormholes := objects(resp, "wormholes")
	if len(wormholes) == 0 {
		return
	}
	fmt.Fprintln(w, "\nWormholes:")
	for _, wh := range wormholes {
		fmt.Fprintf(w, "  %s -> %s (%s)\n", str(wh, "system"), str(wh, "name"), str(wh, "baseUri"))
	}
}
