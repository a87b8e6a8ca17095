package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackgrid/pkg/grid"
	gridio "github.com/matzehuels/stackgrid/pkg/io"
	"github.com/matzehuels/stackgrid/pkg/render/sink"
	"github.com/matzehuels/stackgrid/pkg/render/styles"
)

const demoOutput = "image.svg"

// demoLayout is the built-in example: four columns (20%, auto, auto, 20%)
// over two rows (15%, auto) in an 800x600 viewport.
func demoLayout() (grid.Layout, error) {
	return grid.NewBuilder().
		WithColumns(grid.Percent(20), grid.Auto, grid.Auto, grid.Percent(20)).
		WithRows(grid.Percent(15), grid.Auto).
		WithViewport(800, 600).
		Build()
}

// demoCommand creates the demo command.
func (c *CLI) demoCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Render the built-in example grid to image.svg",
		Long: `Render the built-in example grid.

The example has four columns (20%, auto, auto, 20%) and two rows (15%, auto)
in an 800x600 viewport. Each cell's rectangle is printed as it is drawn and
the SVG is written to image.svg.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDemo(cmd.OutOrStdout(), cmd.ErrOrStderr(), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", demoOutput, "output SVG file")
	return cmd
}

// runDemo prints the cell lines to out and status lines to status.
func (c *CLI) runDemo(out, status io.Writer, output string) error {
	l, err := demoLayout()
	if err != nil {
		return fmt.Errorf("could not create layout: %w", err)
	}

	resolved := l.Resolve()
	printCells(out, resolved.Cells)

	svg := sink.RenderSVG(resolved, sink.WithPalette(styles.DefaultPalette))
	if err := gridio.ExportFile(output, svg); err != nil {
		return err
	}

	c.Logger.Debug("demo written", "path", output, "bytes", len(svg))
	p := newPrinter(status)
	p.success("Generated %s", styleHighlight.Render(output))
	p.nextStep("Render your own grid", `stackgrid render -c "25%, auto" -r "auto, 10%"`)
	return nil
}

// printCells writes one "Cell (x1, y1, x2, y2)" line per cell.
func printCells(w io.Writer, cells []grid.Cell) {
	for _, cell := range cells {
		fmt.Fprintf(w, "Cell (%g, %g, %g, %g)\n", cell.X1, cell.Y1, cell.X2, cell.Y2)
	}
}
