package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/stackgrid/pkg/grid"
	"github.com/matzehuels/stackgrid/pkg/render/styles"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style   styles.Style
	palette styles.Palette
	labels  bool
}

func WithStyle(s styles.Style) SVGOption     { return func(r *svgRenderer) { r.style = s } }
func WithPalette(p styles.Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }
func WithLabels() SVGOption                  { return func(r *svgRenderer) { r.labels = true } }
func withSVGOptions(opts []SVGOption) SVGOption {
	return func(r *svgRenderer) {
		for _, opt := range opts {
			opt(r)
		}
	}
}

// RenderSVG renders every cell of g into a standalone SVG document.
func RenderSVG(g grid.Resolved, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	w, h := g.Size()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %g %g" width="%g" height="%g">`+"\n",
		w, h, w, h)

	r.style.RenderDefs(&buf)

	cells := buildCells(g, r.palette, r.labels)
	for _, c := range cells {
		r.style.RenderCell(&buf, c)
	}
	if r.labels {
		for _, c := range cells {
			r.style.RenderLabel(&buf, c)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}, palette: styles.DefaultPalette}
	for _, opt := range opts {
		opt(&r)
	}
	if r.style == nil {
		r.style = styles.Simple{}
	}
	return r
}

func buildCells(g grid.Resolved, palette styles.Palette, labels bool) []styles.Cell {
	cells := make([]styles.Cell, len(g.Cells))
	for i, c := range g.Cells {
		sc := styles.Cell{
			Index: i,
			Row:   c.Row, Col: c.Col,
			X1: c.X1, Y1: c.Y1, X2: c.X2, Y2: c.Y2,
			Fill: palette.At(i),
		}
		if labels {
			sc.Label = styles.DefaultLabel(c.Row, c.Col)
		}
		cells[i] = sc
	}
	return cells
}
