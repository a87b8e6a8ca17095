package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/stackgrid/pkg/errors"
	"github.com/matzehuels/stackgrid/pkg/grid"
	"github.com/matzehuels/stackgrid/pkg/render/styles"
)

// Format identifies a document encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the document format from a file extension.
// Unknown extensions default to TOML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	default:
		return FormatTOML
	}
}

// Document is the on-disk description of a grid.
type Document struct {
	Columns  []grid.CellSize `toml:"columns,omitempty" json:"columns,omitempty"`
	Rows     []grid.CellSize `toml:"rows,omitempty" json:"rows,omitempty"`
	Viewport *Viewport       `toml:"viewport,omitempty" json:"viewport,omitempty"`
	Render   RenderOptions   `toml:"render,omitempty" json:"render,omitzero"`
}

// Viewport is the document form of [grid.Viewport].
type Viewport struct {
	Width  uint32 `toml:"width" json:"width"`
	Height uint32 `toml:"height" json:"height"`
}

// RenderOptions holds presentation hints stored alongside the layout.
type RenderOptions struct {
	Style   string   `toml:"style,omitempty" json:"style,omitempty"`
	Palette []string `toml:"palette,omitempty" json:"palette,omitempty"`
	Labels  bool     `toml:"labels,omitempty" json:"labels,omitempty"`
}

// Builder returns a grid builder populated from the document. Keys absent
// from the document are left unset so the builder applies its defaults.
func (d *Document) Builder() grid.Builder {
	b := grid.NewBuilder()
	if d.Columns != nil {
		b = b.WithColumns(d.Columns...)
	}
	if d.Rows != nil {
		b = b.WithRows(d.Rows...)
	}
	if d.Viewport != nil {
		b = b.WithViewport(d.Viewport.Width, d.Viewport.Height)
	}
	return b
}

// Validate checks the render options. Track and viewport problems surface
// from [grid.Builder.Build].
func (d *Document) Validate() error {
	if _, ok := styles.ByName(d.Render.Style); !ok {
		return errors.New(errors.ErrCodeInvalidStyle, "unknown style %q (want one of %s)",
			d.Render.Style, strings.Join(styles.Names(), ", "))
	}
	return errors.ValidatePalette(d.Render.Palette)
}

// FromLayout captures a layout as a document.
func FromLayout(l grid.Layout) *Document {
	vp := l.Viewport()
	return &Document{
		Columns:  l.Columns(),
		Rows:     l.Rows(),
		Viewport: &Viewport{Width: vp.Width, Height: vp.Height},
	}
}
