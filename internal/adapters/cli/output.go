package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// render prints resp as JSON when requested, otherwise with the table printer
func render(w io.Writer, resp map[string]interface{}, table func(io.Writer, map[string]interface{})) error {
	if outputFormat == "json" {
		return printJSON(w, resp)
	}
	table(w, resp)
	return nil
}

func printPlayer(w io.Writer, p map[string]interface{}) {
	fmt.Fprintf(w, "Player:     %s\n", str(p, "id"))
	fmt.Fprintf(w, "  Pseudo:   %s\n", str(p, "pseudo"))
	fmt.Fprintf(w, "  Created:  %s\n", str(p, "dateOfCreation"))
	fmt.Fprintf(w, "  Resources: %s\n", formatQuantities(object(p, "resourcesQuantity")))
}

func printPlayers(w io.Writer, players []map[string]interface{}) {
	if len(players) == 0 {
		fmt.Fprintln(w, "No players registered.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPSEUDO\tCREATED")
	fmt.Fprintln(tw, "--\t------\t-------")
	for _, p := range players {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", str(p, "id"), str(p, "pseudo"), str(p, "dateOfCreation"))
	}
	tw.Flush()
}

func printUnits(w io.Writer, units []map[string]interface{}) {
	if len(units) == 0 {
		fmt.Fprintln(w, "No units.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tSYSTEM\tPLANET\tHEALTH\tDESTINATION\tETA")
	fmt.Fprintln(tw, "--\t----\t------\t------\t------\t-----------\t---")
	for _, u := range units {
		dest := str(u, "destinationSystem")
		if planet := str(u, "destinationPlanet"); planet != "" {
			dest += "/" + planet
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			str(u, "id"), str(u, "type"), str(u, "system"), orDash(str(u, "planet")),
			str(u, "health"), orDash(dest), orDash(str(u, "estimatedTimeOfArrival")))
	}
	tw.Flush()
}

func printUnit(w io.Writer, u map[string]interface{}) {
	fmt.Fprintf(w, "Unit:        %s (%s)\n", str(u, "id"), str(u, "type"))
	fmt.Fprintf(w, "  Location:  %s %s\n", str(u, "system"), str(u, "planet"))
	fmt.Fprintf(w, "  Health:    %s\n", str(u, "health"))
	if dest := str(u, "destinationSystem"); dest != "" {
		fmt.Fprintf(w, "  Moving to: %s %s (ETA %s)\n", dest, str(u, "destinationPlanet"), str(u, "estimatedTimeOfArrival"))
	}
	if cargo := object(u, "resourcesQuantity"); len(cargo) > 0 {
		fmt.Fprintf(w, "  Cargo:     %s\n", formatQuantities(cargo))
	}
}

func printBuildings(w io.Writer, buildings []map[string]interface{}) {
	if len(buildings) == 0 {
		fmt.Fprintln(w, "No buildings.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tSYSTEM\tPLANET\tBUILT\tETA")
	fmt.Fprintln(tw, "--\t----\t------\t------\t-----\t---")
	for _, b := range buildings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			str(b, "id"), str(b, "type"), str(b, "system"), str(b, "planet"),
			str(b, "isBuilt"), orDash(str(b, "estimatedBuildTime")))
	}
	tw.Flush()
}
