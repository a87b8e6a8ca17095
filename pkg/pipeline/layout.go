package pipeline

import (
	"github.com/matzehuels/stackgrid/pkg/grid"
)

// BuildLayout assembles the layout described by opts.
func BuildLayout(opts Options) (grid.Layout, error) {
	b := grid.NewBuilder()
	if opts.Columns != nil {
		b = b.WithColumns(opts.Columns...)
	}
	if opts.Rows != nil {
		b = b.WithRows(opts.Rows...)
	}
	if opts.Viewport != nil {
		b = b.WithViewport(opts.Viewport.Width, opts.Viewport.Height)
	}
	return b.Build()
}

// ResolveLayout computes the geometry of l, checking percentages and overflow
// when strict is set.
func ResolveLayout(l grid.Layout, strict bool) (grid.Resolved, error) {
	if strict {
		return l.ResolveStrict()
	}
	return l.Resolve(), nil
}
