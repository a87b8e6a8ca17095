package styles

import (
	"strings"

	"github.com/matzehuels/stackgrid/pkg/errors"
)

// Palette is an ordered list of fill colors.
type Palette []string

// DefaultPalette holds eight saturated colors, enough for the 4x2 demo grid
// without repeats.
var DefaultPalette = Palette{
	"#ff0000", "#00ff00", "#0000ff", "#ffff00",
	"#00ffff", "#ff00ff", "#7f18ee", "#ee187f",
}

// At returns the color for cell index i, cycling when the grid has more cells
// than the palette has colors. Negative indices count back from the end. An
// empty palette falls back to DefaultPalette.
func (p Palette) At(i int) string {
	if len(p) == 0 {
		p = DefaultPalette
	}
	n := len(p)
	return p[(i%n+n)%n]
}

// Validate checks that every color is a hex literal.
func (p Palette) Validate() error {
	return errors.ValidatePalette(p)
}

// ParsePalette parses a comma-separated list of hex colors. An empty string
// returns nil, which renders with DefaultPalette.
func ParsePalette(s string) (Palette, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	p := make(Palette, 0, len(parts))
	for _, part := range parts {
		p = append(p, strings.TrimSpace(part))
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
