package sink

import (
	"encoding/json"

	"github.com/matzehuels/stackgrid/pkg/grid"
	"github.com/matzehuels/stackgrid/pkg/render/styles"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style   string
	palette styles.Palette
	colors  bool
}

// WithJSONStyle records the style name in the output for round-trip rendering.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONPalette attaches the fill color of every cell to the output.
func WithJSONPalette(p styles.Palette) JSONOption {
	return func(r *jsonRenderer) { r.palette = p; r.colors = true }
}

type jsonOutput struct {
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
	Style       string          `json:"style,omitempty"`
	Columns     []grid.CellSize `json:"columns"`
	Rows        []grid.CellSize `json:"rows"`
	ColumnSizes []float64       `json:"column_sizes"`
	RowSizes    []float64       `json:"row_sizes"`
	Cells       []jsonCell      `json:"cells"`
}

type jsonCell struct {
	Index int     `json:"index"`
	Row   int     `json:"row"`
	Col   int     `json:"col"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Fill  string  `json:"fill,omitempty"`
}

// RenderJSON exports the resolved grid as a pretty-printed JSON document
// containing the track definitions, their base sizes and every cell in
// reading order.
//
// RenderJSON returns an error only if JSON marshaling fails, which happens
// when a coordinate is NaN or infinite.
func RenderJSON(g grid.Resolved, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := g.Size()
	out := jsonOutput{
		Width:       w,
		Height:      h,
		Style:       r.style,
		Columns:     g.Columns,
		Rows:        g.Rows,
		ColumnSizes: g.ColumnSizes,
		RowSizes:    g.RowSizes,
		Cells:       make([]jsonCell, len(g.Cells)),
	}
	for i, c := range g.Cells {
		jc := jsonCell{Index: i, Row: c.Row, Col: c.Col, X1: c.X1, Y1: c.Y1, X2: c.X2, Y2: c.Y2}
		if r.colors {
			jc.Fill = r.palette.At(i)
		}
		out.Cells[i] = jc
	}

	return json.MarshalIndent(out, "", "  ")
}
