package styles

import (
	"bytes"
	"fmt"
	"math"
)

const outlineStroke = "#333"

// Outline draws each cell as a stroked rectangle with a translucent palette
// tint, which keeps track boundaries visible when neighbouring cells share a
// color.
type Outline struct{}

func (Outline) Name() string { return NameOutline }

func (Outline) RenderDefs(*bytes.Buffer) {}

func (Outline) RenderCell(buf *bytes.Buffer, c Cell) {
	// Inverted cells (from overfull percentages) are normalized so the
	// rectangle stays visible.
	x, y := math.Min(c.X1, c.X2), math.Min(c.Y1, c.Y2)
	w, h := math.Abs(c.W()), math.Abs(c.H())
	fmt.Fprintf(buf, `  <rect id="cell-%d" class="cell" x="%s" y="%s" width="%s" height="%s" fill="%s" fill-opacity="0.25" stroke="%s" stroke-width="2"/>`+"\n",
		c.Index, num(x), num(y), num(w), num(h), EscapeXML(c.Fill), outlineStroke)
}

func (Outline) RenderLabel(buf *bytes.Buffer, c Cell) {
	renderCenteredText(buf, c, outlineStroke)
}
