package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

const (
	fontHeightRatio = 0.6
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.55
	fontSizeMin     = 8.0
	fontSizeMax     = 24.0
)

// FontSize returns a font size that fits the label inside the cell.
func FontSize(c Cell) float64 {
	n := max(1, len(c.Label))
	byHeight := c.H() * fontHeightRatio
	byWidth := (c.W() * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// DefaultLabel returns the label used when labels are enabled: "row,col".
func DefaultLabel(row, col int) string {
	return fmt.Sprintf("%d,%d", row, col)
}

func renderCenteredText(buf *bytes.Buffer, c Cell, fill string) {
	if c.Label == "" || c.W() <= 0 || c.H() <= 0 {
		return
	}
	fmt.Fprintf(buf, `  <text class="cell-label" x="%.2f" y="%.2f" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="central" font-family="monospace">%s</text>`+"\n",
		c.CX(), c.CY(), FontSize(c), fill, EscapeXML(c.Label))
}
