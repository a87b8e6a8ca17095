package grid

// Resolved is the computed geometry of a layout: the definition it came from,
// the base size of every track, and the cells.
type Resolved struct {
	Viewport    Viewport
	Columns     []CellSize
	Rows        []CellSize
	ColumnSizes []float64
	RowSizes    []float64
	Cells       []Cell
}

// Resolve computes the full geometry of the layout.
func (l Layout) Resolve() Resolved {
	cols, rows := l.ColumnSizes(), l.RowSizes()
	return Resolved{
		Viewport:    l.viewport,
		Columns:     l.Columns(),
		Rows:        l.Rows(),
		ColumnSizes: cols,
		RowSizes:    rows,
		Cells:       composeCells(cols, rows),
	}
}

// ResolveStrict is Resolve with both axes checked by [ResolveStrict].
func (l Layout) ResolveStrict() (Resolved, error) {
	cells, err := l.GridStrict()
	if err != nil {
		return Resolved{}, err
	}
	return Resolved{
		Viewport:    l.viewport,
		Columns:     l.Columns(),
		Rows:        l.Rows(),
		ColumnSizes: l.ColumnSizes(),
		RowSizes:    l.RowSizes(),
		Cells:       cells,
	}, nil
}

// Size returns the viewport dimensions as floats.
func (r Resolved) Size() (width, height float64) { return r.Viewport.Size() }
