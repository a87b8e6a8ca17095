// Package pkg provides the core libraries for stackgrid.
//
// # Overview
//
// Stackgrid splits a viewport into column and row tracks, each sized either as
// a percentage of the axis or as "auto", and computes the rectangle of every
// cell. The pkg directory is organized into these areas:
//
//  1. [grid] - Track resolution, the layout builder and cell geometry
//  2. [io] - TOML and JSON grid documents
//  3. [render] - Cell styles and output sinks (SVG, JSON, PNG, PDF)
//  4. [pipeline] - Orchestration (build → resolve → render) with caching
//  5. [cache] - File, Redis and no-op caches plus key derivation
//  6. [observability], [errors], [buildinfo] - Shared infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	Grid document or flags
//	         ↓
//	    [io] package (decode tracks and viewport)
//	         ↓
//	    [grid] package (Builder → Layout → Resolved)
//	         ↓
//	    [render/sink] package (SVG/PNG/PDF/JSON)
//
// # Quick Start
//
//	import "github.com/matzehuels/stackgrid/pkg/grid"
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
// Auto tracks share whatever the percentage tracks leave of the axis. When
// the percentages add up to more than 100, the remainder is negative and so
// are the auto tracks; [grid.ResolveStrict] rejects such definitions instead.
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/stackgrid/pkg/grid
// [io]: https://pkg.go.dev/github.com/matzehuels/stackgrid/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/stackgrid/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/stackgrid/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/stackgrid/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/stackgrid/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/stackgrid/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/stackgrid/pkg/buildinfo
// [grid.ResolveStrict]: https://pkg.go.dev/github.com/matzehuels/stackgrid/pkg/grid#ResolveStrict
//
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/stackgrid/pkg/render/sink
package pkg
