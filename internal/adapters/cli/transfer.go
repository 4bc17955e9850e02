package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewTransferCommand creates the transfer command
func NewTransferCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Inspect cross-shard transfers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List a player's transfer attempts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePlayer()
			if err != nil {
				return err
			}
			resp, err := call("ListTransfers", map[string]interface{}{"playerId": id})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), resp, func(w io.Writer, resp map[string]interface{}) {
				records := objects(resp, "Transfers")
				if len(records) == 0 {
					fmt.Fprintln(w, "No transfers.")
					return
				}
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "AT\tUNIT\tTYPE\tDESTINATION\tOUTCOME")
				fmt.Fprintln(tw, "--\t----\t----\t-----------\t-------")
				for _, r := range records {
					outcome := "ok"
					if r["Succeeded"] != true {
						outcome = "failed: " + str(r, "Error")
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
						str(r, "At"), str(r, "UnitID"), str(r, "UnitType"), str(r, "Destination"), outcome)
				}
				tw.Flush()
			})
		},
	})

	return cmd
}
