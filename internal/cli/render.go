package cli

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackgrid/pkg/errors"
	gridio "github.com/matzehuels/stackgrid/pkg/io"
	"github.com/matzehuels/stackgrid/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		gf         gridFlags
		rf         renderFlags
		cf         cacheFlags
		formatsStr string
		output     string
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "render [grid.toml|grid.json]",
		Short: "Resolve a grid and write SVG, PNG, PDF or JSON",
		Long: `Resolve a grid and write the result.

The grid comes from a TOML or JSON document, from flags, or both; flags
override document values. Without a document the viewport defaults to
800x600.

  stackgrid render grid.toml -f svg,png
  stackgrid render -c "20%, auto, auto, 20%" -r "15%, auto" -o layout.svg

Results are cached locally (or in Redis with --redis-url) for faster
subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := pipeline.ParseFormats(formatsStr)
			if err != nil {
				return err
			}
			if len(formats) == 0 {
				formats = []string{pipeline.FormatSVG}
			}
			opts, err := loadOptions(cmd, args, &gf, &rf)
			if err != nil {
				return err
			}
			opts.Formats = formats
			opts.Refresh = refresh

			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			return c.runRender(cmd.Context(), cmd.ErrOrStderr(), opts, input, output, cf)
		},
	}

	gf.register(cmd)
	rf.register(cmd)
	cf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", pipeline.FormatSVG, "output format(s): svg, json, pdf, png (comma-separated)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results")

	return cmd
}

// runRender executes the pipeline and writes one file per format. Status
// output and the spinner go to status.
func (c *CLI) runRender(ctx context.Context, status io.Writer, opts pipeline.Options, input, output string, cf cacheFlags) error {
	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	p := newPrinter(status)
	prog := newProgress(c.Logger)

	sp := startSpinner(ctx, status, "Resolving grid...")
	opts.Progress = func(format string, i, n int) {
		sp.update(renderStep(format, i, n))
	}

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		sp.fail(p, "Render failed")
		if errors.IsConfiguration(err) {
			return fmt.Errorf("grid configuration: %w", err)
		}
		return err
	}
	sp.stop()

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, output, input)
	if err != nil {
		return err
	}
	p.success("Generated %d file(s)", len(paths))
	for _, path := range paths {
		p.file(path)
	}
	p.summary(result)
	prog.done(fmt.Sprintf("Rendered %d artifact(s)", len(result.Artifacts)))
	return nil
}

// renderStep is the spinner message while format i of n is rendered.
func renderStep(format string, i, n int) string {
	return fmt.Sprintf("Rendering %s (%d/%d)...", format, i+1, n)
}

// writeArtifacts writes each rendered format to its output path and returns
// the written paths, sorted by format.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, input string) ([]string, error) {
	paths := outputPaths(formats, output, input)
	sorted := slices.Clone(formats)
	slices.Sort(sorted)

	var written []string
	for _, format := range sorted {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		if err := gridio.ExportFile(paths[format], data); err != nil {
			return written, err
		}
		written = append(written, paths[format])
	}
	return written, nil
}
