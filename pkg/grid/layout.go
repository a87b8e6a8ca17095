package grid

import (
	"slices"

	"github.com/matzehuels/stackgrid/pkg/errors"
)

// ErrMissingViewport is returned by [Builder.Build] when no viewport was set.
var ErrMissingViewport = errors.New(errors.ErrCodeMissingViewport, "viewport not defined")

// Viewport is the size of the area the grid is laid out in.
type Viewport struct {
	Width, Height uint32
}

// Size returns the viewport dimensions as floats for computation.
func (v Viewport) Size() (width, height float64) {
	return float64(v.Width), float64(v.Height)
}

// Layout is a validated grid definition. It is immutable: accessors return
// copies and every query recomputes from the definition.
type Layout struct {
	columns  []CellSize
	rows     []CellSize
	viewport Viewport
}

// Columns returns the column track definitions, left to right.
func (l Layout) Columns() []CellSize { return slices.Clone(l.columns) }

// Rows returns the row track definitions, top to bottom.
func (l Layout) Rows() []CellSize { return slices.Clone(l.rows) }

// Viewport returns the viewport the layout was built for.
func (l Layout) Viewport() Viewport { return l.viewport }

// Dimensions returns the number of column and row tracks.
func (l Layout) Dimensions() (cols, rows int) { return len(l.columns), len(l.rows) }

// ColumnSizes resolves the column tracks against the viewport width.
func (l Layout) ColumnSizes() []float64 {
	w, _ := l.viewport.Size()
	return Resolve(l.columns, w)
}

// RowSizes resolves the row tracks against the viewport height.
func (l Layout) RowSizes() []float64 {
	_, h := l.viewport.Size()
	return Resolve(l.rows, h)
}

// Grid resolves both axes and returns one cell per (row, column) pair in
// row-major order. Cell r*cols+c belongs to row r and column c.
func (l Layout) Grid() []Cell {
	return composeCells(l.ColumnSizes(), l.RowSizes())
}

// GridStrict is Grid with both axes resolved through [ResolveStrict].
func (l Layout) GridStrict() ([]Cell, error) {
	w, h := l.viewport.Size()
	cols, err := ResolveStrict(l.columns, w)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTracks, err, "columns")
	}
	rows, err := ResolveStrict(l.rows, h)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTracks, err, "rows")
	}
	return composeCells(cols, rows), nil
}

// Builder accumulates a grid definition. Setters return an updated copy and
// overwrite any earlier value for the same field; nothing is validated until
// [Builder.Build].
type Builder struct {
	columns  []CellSize
	rows     []CellSize
	viewport *Viewport
}

// NewBuilder returns an empty builder.
func NewBuilder() Builder {
	return Builder{}
}

// WithColumns sets the column tracks, left to right.
func (b Builder) WithColumns(cols ...CellSize) Builder {
	b.columns = cloneTracks(cols)
	return b
}

// WithRows sets the row tracks, top to bottom.
func (b Builder) WithRows(rows ...CellSize) Builder {
	b.rows = cloneTracks(rows)
	return b
}

// WithViewport sets the viewport size. It is required.
func (b Builder) WithViewport(width, height uint32) Builder {
	b.viewport = &Viewport{Width: width, Height: height}
	return b
}

// Build validates the definition and returns the layout.
//
// It fails with [ErrMissingViewport] if no viewport was set. Columns and rows
// that were never set default to a single [Auto] track. A track list that was
// set explicitly to an empty list is rejected with
// [errors.ErrCodeEmptyTracks]; it would otherwise yield a grid with no cells.
func (b Builder) Build() (Layout, error) {
	if b.viewport == nil {
		return Layout{}, ErrMissingViewport
	}

	cols, err := tracksOrDefault(b.columns, "columns")
	if err != nil {
		return Layout{}, err
	}
	rows, err := tracksOrDefault(b.rows, "rows")
	if err != nil {
		return Layout{}, err
	}

	return Layout{
		columns:  cols,
		rows:     rows,
		viewport: *b.viewport,
	}, nil
}

// cloneTracks copies tracks, turning nil into an empty but set list so that
// an explicit empty call is distinguishable from no call.
func cloneTracks(tracks []CellSize) []CellSize {
	out := make([]CellSize, len(tracks))
	copy(out, tracks)
	return out
}

func tracksOrDefault(tracks []CellSize, axis string) ([]CellSize, error) {
	if tracks == nil {
		return []CellSize{Auto}, nil
	}
	if len(tracks) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyTracks, "%s set to an empty track list", axis)
	}
	return slices.Clone(tracks), nil
}
