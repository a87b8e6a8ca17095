// Package render turns computed grids into output documents.
//
// # Overview
//
// Rendering is split into two layers:
//
//   - [styles]: how a single cell looks (fill, stroke, label)
//   - [sink]: how a whole grid becomes a document (SVG, JSON, PNG, PDF)
//
// This package holds the format conversion shared by the raster and print
// sinks: [ToPNG] and [ToPDF] convert SVG bytes by piping them through
// rsvg-convert, which must be installed:
//
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [styles]: github.com/matzehuels/stackgrid/pkg/render/styles
// [sink]: github.com/matzehuels/stackgrid/pkg/render/sink
package render
