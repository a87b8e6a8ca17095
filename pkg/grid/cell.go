package grid

// Cell is one leaf rectangle of the grid in viewport coordinates, with the
// origin at the top-left corner. X1 < X2 and Y1 < Y2 whenever every track
// resolved to a positive size.
type Cell struct {
	Row, Col       int
	X1, Y1, X2, Y2 float64
}

// Width returns the horizontal span of the cell.
func (c Cell) Width() float64 { return c.X2 - c.X1 }

// Height returns the vertical span of the cell.
func (c Cell) Height() float64 { return c.Y2 - c.Y1 }

// CenterX returns the horizontal center point of the cell.
func (c Cell) CenterX() float64 { return (c.X1 + c.X2) / 2 }

// CenterY returns the vertical center point of the cell.
func (c Cell) CenterY() float64 { return (c.Y1 + c.Y2) / 2 }

// composeCells folds resolved column widths and row heights into cells,
// rows outer and columns inner.
func composeCells(colSizes, rowSizes []float64) []Cell {
	cells := make([]Cell, 0, len(colSizes)*len(rowSizes))
	var rowPos float64
	for r, rowSize := range rowSizes {
		var colPos float64
		for c, colSize := range colSizes {
			cells = append(cells, Cell{
				Row: r, Col: c,
				X1: colPos, Y1: rowPos,
				X2: colPos + colSize, Y2: rowPos + rowSize,
			})
			colPos += colSize
		}
		rowPos += rowSize
	}
	return cells
}
