package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/stackgrid/pkg/grid"
	"github.com/matzehuels/stackgrid/pkg/render/sink"
	"github.com/matzehuels/stackgrid/pkg/render/styles"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, g grid.Resolved, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for i, format := range opts.Formats {
		if opts.Progress != nil {
			opts.Progress(format, i, len(opts.Formats))
		}

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(g, svgOpts...)
		case FormatPNG:
			scale := opts.Scale
			if scale == 0 {
				scale = DefaultScale
			}
			data, err = sink.RenderPNG(ctx, g, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(scale))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, g, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(g, buildJSONOptions(opts)...)
		default:
			err = ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption

	if s, ok := styles.ByName(opts.Style); ok {
		svgOpts = append(svgOpts, sink.WithStyle(s))
	}
	if len(opts.Palette) > 0 {
		svgOpts = append(svgOpts, sink.WithPalette(opts.Palette))
	}
	if opts.Labels {
		svgOpts = append(svgOpts, sink.WithLabels())
	}

	return svgOpts
}

func buildJSONOptions(opts Options) []sink.JSONOption {
	return []sink.JSONOption{
		sink.WithJSONStyle(opts.Style),
		sink.WithJSONPalette(opts.Palette),
	}
}
