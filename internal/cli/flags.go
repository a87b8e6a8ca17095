package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackgrid/pkg/grid"
	gridio "github.com/matzehuels/stackgrid/pkg/io"
	"github.com/matzehuels/stackgrid/pkg/pipeline"
	"github.com/matzehuels/stackgrid/pkg/render/styles"
)

// gridFlags holds the flags that describe a grid. Values given on the
// command line override those read from a document.
type gridFlags struct {
	columns string
	rows    string
	width   uint32
	height  uint32
	strict  bool
}

func (f *gridFlags) register(cmd *cobra.Command) {
	f.width, f.height = pipeline.DefaultWidth, pipeline.DefaultHeight
	cmd.Flags().StringVarP(&f.columns, "columns", "c", "", `column tracks, e.g. "20%, auto, auto, 20%" (default: one auto column)`)
	cmd.Flags().StringVarP(&f.rows, "rows", "r", "", `row tracks, e.g. "15%, auto" (default: one auto row)`)
	cmd.Flags().Uint32Var(&f.width, "width", f.width, "viewport width in pixels")
	cmd.Flags().Uint32Var(&f.height, "height", f.height, "viewport height in pixels")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "reject percentages outside 0-100 and overfull tracks")
}

// renderFlags holds presentation flags.
type renderFlags struct {
	style   string
	palette string
	labels  bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.style, "style", "", "visual style: "+strings.Join(styles.Names(), ", ")+" (default simple)")
	cmd.Flags().StringVar(&f.palette, "palette", "", `comma-separated hex fill colors, e.g. "#ff0000,#00ff00"`)
	cmd.Flags().BoolVar(&f.labels, "labels", false, `label each cell with "row,col"`)
}

// loadOptions builds pipeline options from an optional document and the
// command-line flags. Without a document, the viewport flags always apply;
// with one, only flags set explicitly override its values.
func loadOptions(cmd *cobra.Command, args []string, gf *gridFlags, rf *renderFlags) (pipeline.Options, error) {
	var opts pipeline.Options
	changed := cmd.Flags().Changed

	if len(args) > 0 {
		doc, err := gridio.LoadDocument(args[0])
		if err != nil {
			return opts, err
		}
		if err := doc.Validate(); err != nil {
			return opts, fmt.Errorf("%s: %w", args[0], err)
		}
		opts = pipeline.OptionsFromDocument(doc)
	}

	if gf.columns != "" {
		cols, err := grid.ParseTracks(gf.columns)
		if err != nil {
			return opts, fmt.Errorf("--columns: %w", err)
		}
		opts.Columns = cols
	}
	if gf.rows != "" {
		rows, err := grid.ParseTracks(gf.rows)
		if err != nil {
			return opts, fmt.Errorf("--rows: %w", err)
		}
		opts.Rows = rows
	}

	switch {
	case len(args) == 0:
		opts.Viewport = &gridio.Viewport{Width: gf.width, Height: gf.height}
	case changed("width") || changed("height"):
		vp := gridio.Viewport{Width: gf.width, Height: gf.height}
		if opts.Viewport != nil {
			if !changed("width") {
				vp.Width = opts.Viewport.Width
			}
			if !changed("height") {
				vp.Height = opts.Viewport.Height
			}
		}
		opts.Viewport = &vp
	}
	opts.Strict = gf.strict

	if rf != nil {
		if rf.style != "" {
			opts.Style = rf.style
		}
		if rf.palette != "" {
			p, err := styles.ParsePalette(rf.palette)
			if err != nil {
				return opts, fmt.Errorf("--palette: %w", err)
			}
			opts.Palette = p
		}
		if changed("labels") {
			opts.Labels = rf.labels
		}
	}

	return opts, nil
}

// outputPaths maps each format to its output file. A single format with an
// explicit output path writes exactly there; otherwise the output (or input)
// path minus its extension is used as a base name.
func outputPaths(formats []string, output, input string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}

	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input, falling back to
// "grid" when there is no input either. Known format extensions are stripped
// from output.
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return "grid"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
