package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/compactsheet/pkg/distribute"
	sheetio "github.com/matzehuels/compactsheet/pkg/io"
)

// geometryCommand creates the geometry command for inspecting page capacity.
func (c *CLI) geometryCommand() *cobra.Command {
	var (
		flags  configFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "geometry",
		Short: "Show the page geometry for a configuration",
		Long: `Show the page geometry for a configuration.

Prints page and column dimensions, characters per line, lines per column and
the estimated content density that the configuration yields.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := flags.partial(cmd)
			if err != nil {
				return err
			}
			eng, err := c.newEngine(p, distribute.Lenient)
			if err != nil {
				return err
			}
			g := eng.CalculateLayout()

			w := cmd.OutOrStdout()
			if asJSON {
				return sheetio.WriteJSON(w, g)
			}

			fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("%s, %d column(s)", eng.Config().PaperSize, g.ColumnCount)))
			printKeyValue(w, "Page", fmt.Sprintf("%.2f x %.2f in", g.PageWidth, g.PageHeight))
			printKeyValue(w, "Content area", fmt.Sprintf("%.2f x %.2f in", g.ContentWidth, g.ContentHeight))
			printKeyValue(w, "Column width", fmt.Sprintf("%.2f in", g.ColumnWidth))
			printKeyValue(w, "Line height", fmt.Sprintf("%.1f pt", g.EffectiveLineHeight))
			printKeyValue(w, "Characters per line", strconv.Itoa(g.CharactersPerLine))
			printKeyValue(w, "Lines per column", strconv.Itoa(g.LinesPerColumn))
			printKeyValue(w, "Density", fmt.Sprintf("%.0f chars/sq in", g.EstimatedContentDensity))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print geometry as JSON")
	return cmd
}
