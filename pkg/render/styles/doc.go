// Package styles provides visual styles for grid rendering.
//
// A [Style] decides how each cell is drawn: as a filled shape, an outline, and
// whether a label is placed in its center. Colors come from a [Palette],
// indexed by cell position in reading order.
//
// Two styles are available:
//
//   - [Simple]: solid filled paths with no stroke, one palette color per cell
//   - [Outline]: unfilled stroked rectangles tinted by the palette, with labels
//
// Styles write SVG fragments into a bytes.Buffer; document framing is the job
// of the sink package.
package styles
