// Package grid computes rectangular cell boundaries from column and row track
// definitions and a fixed viewport.
//
// # Overview
//
// The engine implements a reduced form of the CSS Grid track sizing algorithm.
// A track (one column or one row) is either:
//
//   - [Auto]: sized by splitting leftover axis space evenly between all auto
//     tracks on that axis
//   - [Percent]: a fixed fraction p/100 of the axis length
//
// Columns and rows are resolved independently: the column axis against the
// viewport width and the row axis against the viewport height. There is no
// coupling between the two axes.
//
// # Track Sizing
//
// [Resolve] runs two passes over one axis:
//
//  1. Initialize: every percentage track gets its base size immediately.
//  2. Distribute: free space (axis length minus the sized tracks) is divided
//     evenly among the tracks still unsized.
//
// Percentages are not clamped. When they sum past 100% the free space goes
// negative and auto tracks receive negative sizes; this is propagated, not
// reported. [ResolveStrict] offers the checked variant.
//
// # Building a Layout
//
// Layouts are configured through a [Builder]. The viewport is required;
// columns and rows default to a single auto track:
//
//	l, err := grid.NewBuilder().
//	    WithColumns(grid.Percent(20), grid.Auto, grid.Auto, grid.Percent(20)).
//	    WithRows(grid.Percent(15), grid.Auto).
//	    WithViewport(800, 600).
//	    Build()
//	if err != nil {
//	    return err
//	}
//	for _, c := range l.Grid() {
//	    fmt.Println(c.X1, c.Y1, c.X2, c.Y2)
//	}
//
// [Layout.Grid] returns one [Cell] per (row, column) pair in row-major order:
// the column index varies fastest, so cells read left-to-right, top-to-bottom.
//
// # Track Syntax
//
// Tracks have a textual form used by configuration files, the CLI and the
// HTTP API: "auto" or a percentage such as "20%". See [ParseCellSize] and
// [ParseTracks]. [CellSize] implements [encoding.TextMarshaler] so it can be
// embedded directly in TOML and JSON documents.
//
// # Scope
//
// Absolute length units, content-based sizing, growth limits, gaps, spanning
// cells and nested grids are not supported.
package grid
