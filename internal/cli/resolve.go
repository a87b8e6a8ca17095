package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackgrid/pkg/grid"
	gridio "github.com/matzehuels/stackgrid/pkg/io"
	"github.com/matzehuels/stackgrid/pkg/pipeline"
	"github.com/matzehuels/stackgrid/pkg/render/sink"
)

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	var (
		gf      gridFlags
		cells   bool
		asJSON  bool
		saveDoc string
	)

	cmd := &cobra.Command{
		Use:   "resolve [grid.toml|grid.json]",
		Short: "Print resolved track sizes",
		Long: `Print the base size and offsets of every column and row.

  stackgrid resolve -c "20%, auto, auto, 20%" -r "15%, auto"

Use --cells to also list every cell rectangle, --json for machine-readable
output, and --save to store the grid definition as a document.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(cmd, args, &gf, nil)
			if err != nil {
				return err
			}
			l, err := pipeline.BuildLayout(opts)
			if err != nil {
				return err
			}
			resolved, err := pipeline.ResolveLayout(l, opts.Strict)
			if err != nil {
				return err
			}

			if saveDoc != "" {
				if err := gridio.SaveDocument(saveDoc, gridio.FromLayout(l)); err != nil {
					return err
				}
				loggerFromContext(cmd.Context()).Info("saved grid document", "path", saveDoc)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := sink.RenderJSON(resolved)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}
			printResolved(out, resolved, cells)
			return nil
		},
	}

	gf.register(cmd)
	cmd.Flags().BoolVar(&cells, "cells", false, "list cell rectangles")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of tables")
	cmd.Flags().StringVar(&saveDoc, "save", "", "write the grid definition to a .toml or .json document")

	return cmd
}

func printResolved(w io.Writer, r grid.Resolved, cells bool) {
	width, height := r.Size()
	fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf("Viewport %gx%g", width, height)))
	fmt.Fprintln(w, trackTable("Column", r.Columns, r.ColumnSizes))
	fmt.Fprintln(w, trackTable("Row", r.Rows, r.RowSizes))
	if cells {
		printCells(w, r.Cells)
	}
}

// trackTable renders one axis as a table of track, size and offsets.
// Negative sizes, produced when percentages overfill the axis, are
// highlighted.
func trackTable(axis string, tracks []grid.CellSize, sizes []float64) string {
	rows := make([][]string, len(tracks))
	offset := 0.0
	for i, t := range tracks {
		size := sizes[i]
		rows[i] = []string{
			strconv.Itoa(i),
			t.String(),
			formatSize(size),
			formatSize(offset),
			formatSize(offset + size),
		}
		offset += size
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleDim).
		Headers(axis, "Track", "Size", "Start", "End").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if col == 2 && row < len(sizes) && sizes[row] < 0 {
				return styleWarning
			}
			if col >= 2 {
				return styleNumber
			}
			return styleValue
		}).
		Render()
}

func formatSize(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
