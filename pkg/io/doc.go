// Package io reads and writes grid documents.
//
// # Overview
//
// A grid document describes a layout in a configuration file: its column and
// row tracks, the viewport, and optional rendering hints. Documents are TOML
// or JSON; the format is chosen from the file extension.
//
// # TOML Format
//
//	columns = ["20%", "auto", "auto", "20%"]
//	rows    = ["15%", "auto"]
//
//	[viewport]
//	width  = 800
//	height = 600
//
//	[render]
//	style   = "simple"
//	palette = ["#ff0000", "#00ff00"]
//	labels  = true
//
// The JSON form uses the same keys.
//
// # Fields
//
//   - columns, rows: track sizes, each "auto" or a percentage such as "20%".
//     A missing key defaults to a single auto track. An empty list is an error.
//   - viewport: width and height in pixels. Required to build a layout.
//   - render: optional style name, palette and label flag.
//
// # Import
//
// Use [LoadDocument] to read a document from a file path, or [ReadDocument] to
// read from any io.Reader. [Document.Builder] converts the document into a
// [grid.Builder]:
//
//	doc, err := io.LoadDocument("grid.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	layout, err := doc.Builder().Build()
//
// # Export
//
// [WriteDocument] encodes a document, and [FromLayout] captures an existing
// layout so it can be saved and reloaded. [ExportFile] writes rendered
// artifacts to disk.
//
// [grid.Builder]: github.com/matzehuels/stackgrid/pkg/grid.Builder
package io
