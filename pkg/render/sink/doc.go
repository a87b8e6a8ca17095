// Package sink provides output format renderers for resolved grids.
//
// # Overview
//
// A "sink" transforms a [grid.Resolved] into a final output format:
//
//   - SVG: one closed path per cell, colored from a palette
//   - JSON: tracks, resolved sizes and cell rectangles for external tools
//   - PDF: print-ready output (requires rsvg-convert)
//   - PNG: raster image output (requires rsvg-convert)
//
// # SVG Output
//
// [RenderSVG] writes a document whose viewBox is the layout viewport, so cell
// coordinates map one-to-one onto user units:
//
//	svg := sink.RenderSVG(l.Resolve(),
//	    sink.WithStyle(styles.Simple{}),
//	    sink.WithPalette(styles.DefaultPalette),
//	    sink.WithLabels(),
//	)
//
// # SVG Options
//
//   - [WithStyle]: Visual style ([styles.Simple] or [styles.Outline])
//   - [WithPalette]: Fill colors, cycled in reading order
//   - [WithLabels]: Place a "row,col" label in each cell
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] generate SVG first and convert it via
// [render.ToPDF] and [render.ToPNG].
//
// [grid.Resolved]: github.com/matzehuels/stackgrid/pkg/grid.Resolved
// [styles.Simple]: github.com/matzehuels/stackgrid/pkg/render/styles.Simple
// [styles.Outline]: github.com/matzehuels/stackgrid/pkg/render/styles.Outline
// [render.ToPDF]: github.com/matzehuels/stackgrid/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/stackgrid/pkg/render.ToPNG
package sink
