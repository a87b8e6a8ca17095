package styles

import "bytes"

// Style defines the visual appearance of a rendered grid.
type Style interface {
	// Name returns the identifier used in configuration ("simple", "outline").
	Name() string
	// RenderDefs writes SVG <defs> content, if any.
	RenderDefs(buf *bytes.Buffer)
	// RenderCell writes the SVG for a single cell shape.
	RenderCell(buf *bytes.Buffer, c Cell)
	// RenderLabel writes the SVG for a cell's label text.
	RenderLabel(buf *bytes.Buffer, c Cell)
}

// Cell contains all data needed to render one grid cell.
type Cell struct {
	Index          int     // Position in reading order
	Row, Col       int     // Track indices
	X1, Y1, X2, Y2 float64 // Corner coordinates
	Fill           string  // Palette color
	Label          string  // Display text (empty for none)
}

// W returns the cell width.
func (c Cell) W() float64 { return c.X2 - c.X1 }

// H returns the cell height.
func (c Cell) H() float64 { return c.Y2 - c.Y1 }

// CX returns the horizontal center.
func (c Cell) CX() float64 { return (c.X1 + c.X2) / 2 }

// CY returns the vertical center.
func (c Cell) CY() float64 { return (c.Y1 + c.Y2) / 2 }

// Style names.
const (
	NameSimple  = "simple"
	NameOutline = "outline"
)

// ByName returns the style registered under name.
func ByName(name string) (Style, bool) {
	switch name {
	case NameSimple, "":
		return Simple{}, true
	case NameOutline:
		return Outline{}, true
	}
	return nil, false
}

// Names lists the available style names.
func Names() []string { return []string{NameSimple, NameOutline} }
