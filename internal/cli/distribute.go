package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/compactsheet/pkg/distribute"
	sheetio "github.com/matzehuels/compactsheet/pkg/io"
)

// distributeCommand creates the distribute command for laying out content units.
func (c *CLI) distributeCommand() *cobra.Command {
	var (
		flags  configFlags
		output string
		strict bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "distribute [units.toml|units.json]",
		Short: "Distribute content units into page columns",
		Long: `Distribute content units into page columns.

Units are read from a TOML file ([[unit]] tables) or a JSON array. Each unit
becomes a sized block; blocks are placed by priority into the least-loaded
column and breakable blocks are split across columns when they do not fit.

By default a summary is printed. Use --output to write the full distribution
as JSON, or --json to print it. Both may be combined.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			p, err := flags.partial(cmd)
			if err != nil {
				return err
			}
			units, err := sheetio.ImportUnits(args[0])
			if err != nil {
				return err
			}

			policy := distribute.Lenient
			if strict {
				policy = distribute.Strict
			}
			eng, err := c.newEngine(p, policy)
			if err != nil {
				return err
			}
			d, err := eng.Compose(units)
			if err != nil {
				return err
			}
			prog.record(d)
			prog.done(fmt.Sprintf("Distributed %d units", len(units)))

			w := cmd.OutOrStdout()
			if output != "" {
				if err := sheetio.ExportDistribution(d, output); err != nil {
					return fmt.Errorf("write output %s: %w", output, err)
				}
			}
			if asJSON {
				return sheetio.WriteDistribution(w, d)
			}

			g := eng.CalculateLayout()
			printInfo(w, "%d blocks on %s, %d column(s) of %.2fin", d.BlockCount(), eng.Config().PaperSize, g.ColumnCount, g.ColumnCapacity)
			printDistribution(w, d)
			if output != "" {
				printSuccess(w, "Layout written")
				printFile(w, output)
			} else {
				printNextStep(w, "Save the layout", appName+" distribute "+args[0]+" -o layout.json")
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the distribution as JSON to this file")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail instead of overflowing when content does not fit")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the distribution as JSON")
	return cmd
}
