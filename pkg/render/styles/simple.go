package styles

import (
	"bytes"
	"fmt"
)

// Simple fills each cell with its palette color as a closed path.
type Simple struct{}

func (Simple) Name() string { return NameSimple }

func (Simple) RenderDefs(*bytes.Buffer) {}

// RenderCell traces the cell counter-clockwise from its top-left corner:
// down the left edge, across the bottom, up the right edge, then closes.
func (Simple) RenderCell(buf *bytes.Buffer, c Cell) {
	fmt.Fprintf(buf, `  <path id="cell-%d" class="cell" d="M%s,%s L%s,%s L%s,%s L%s,%s Z" fill="%s" stroke="none" stroke-width="3"/>`+"\n",
		c.Index,
		num(c.X1), num(c.Y1),
		num(c.X1), num(c.Y2),
		num(c.X2), num(c.Y2),
		num(c.X2), num(c.Y1),
		EscapeXML(c.Fill))
}

func (Simple) RenderLabel(buf *bytes.Buffer, c Cell) {
	renderCenteredText(buf, c, "#000")
}
