package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/spaceshard-go/internal/domain/galaxy"
	"github.com/andrescamacho/spaceshard-go/internal/infrastructure/config"
)

// NewWorldCommand creates the world command. It works offline, without the daemon.
func NewWorldCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "world",
		Short: "Generate and check sector specifications",
		Long: `Generate sector specifications as YAML. Point world.specification at the
file to have the daemon load it instead of generating the map from its seed.

Examples:
  shardctl world generate --seed galaxy-one --systems 12 --out sector.yaml
  shardctl world check sector.yaml`,
	}

	cmd.AddCommand(newWorldGenerateCommand())
	cmd.AddCommand(newWorldCheckCommand())

	return cmd
}

func newWorldGenerateCommand() *cobra.Command {
	var (
		seed string
		opts galaxy.GeneratorOptions
		out  string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a sector specification",
		Long: `Generate a sector specification. Flags left unset take the values of the
world section of the shard config, so the output matches what the daemon generates.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			world := config.LoadConfigOrDefault(configPath).World
			flags := cmd.Flags()
			if flags.Changed("seed") {
				world.Seed = seed
			}
			if flags.Changed("systems") {
				world.Systems = opts.Systems
			}
			if flags.Changed("min-planets") {
				world.MinPlanets = opts.MinPlanets
			}
			if flags.Changed("max-planets") {
				world.MaxPlanets = opts.MaxPlanets
			}
			if flags.Changed("max-deposit") {
				world.MaxDeposit = opts.MaxDeposit
			}
			world.Specification = ""

			spec, err := world.SectorSpecification()
			if err != nil {
				return err
			}
			data, err := spec.YAML()
			if err != nil {
				return fmt.Errorf("failed to render specification: %w", err)
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d systems to %s\n", len(spec.Systems), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&seed, "seed", galaxy.DefaultSeed, "Generator seed")
	cmd.Flags().IntVar(&opts.Systems, "systems", 0, "Number of systems")
	cmd.Flags().IntVar(&opts.MinPlanets, "min-planets", 0, "Minimum planets per system")
	cmd.Flags().IntVar(&opts.MaxPlanets, "max-planets", 0, "Maximum planets per system")
	cmd.Flags().IntVar(&opts.MaxDeposit, "max-deposit", 0, "Upper bound of a deposit per resource")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default: stdout)")

	return cmd
}

func newWorldCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a sector specification file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := galaxy.LoadSpecification(args[0])
			if err != nil {
				return err
			}
			planets := 0
			for _, sys := range spec.Systems {
				planets += len(sys.Planets)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid: %d systems, %d planets\n", args[0], len(spec.Systems), planets)
			return nil
		},
	}
}
