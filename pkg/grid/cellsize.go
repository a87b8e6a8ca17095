package grid

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/stackgrid/pkg/errors"
)

// Kind distinguishes the sizing rule of a track.
type Kind uint8

const (
	// KindAuto tracks share the leftover axis space.
	KindAuto Kind = iota
	// KindPercent tracks take a fixed fraction of the axis length.
	KindPercent
)

const autoKeyword = "auto"

// CellSize describes how the length of one track is determined.
// The zero value is an auto track.
type CellSize struct {
	kind    Kind
	percent float64
}

// Auto is a track sized by distributing leftover space.
var Auto = CellSize{kind: KindAuto}

// Percent returns a track sized to p/100 of the axis length. p is not
// bounded; values outside [0, 100] are accepted.
func Percent(p float64) CellSize {
	return CellSize{kind: KindPercent, percent: p}
}

// Kind returns the sizing rule of the track.
func (c CellSize) Kind() Kind { return c.kind }

// IsAuto reports whether the track is an auto track.
func (c CellSize) IsAuto() bool { return c.kind == KindAuto }

// Percent returns the percentage of a percent track. ok is false for auto tracks.
func (c CellSize) Percent() (p float64, ok bool) {
	if c.kind != KindPercent {
		return 0, false
	}
	return c.percent, true
}

// String returns the textual form: "auto" or "<p>%".
func (c CellSize) String() string {
	if c.kind == KindPercent {
		return strconv.FormatFloat(c.percent, 'f', -1, 64) + "%"
	}
	return autoKeyword
}

// MarshalText implements encoding.TextMarshaler.
func (c CellSize) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *CellSize) UnmarshalText(text []byte) error {
	parsed, err := ParseCellSize(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCellSize parses a single track definition. Accepted forms are "auto"
// (case-insensitive) and a number followed by "%". Bare numbers are rejected
// because absolute lengths are not supported.
func ParseCellSize(s string) (CellSize, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, autoKeyword) {
		return Auto, nil
	}

	num, ok := strings.CutSuffix(s, "%")
	if !ok {
		if s == "" {
			return CellSize{}, errors.New(errors.ErrCodeInvalidTracks, "empty track definition")
		}
		return CellSize{}, errors.New(errors.ErrCodeInvalidTracks, "invalid track %q (want \"auto\" or a percentage like \"20%%\")", s)
	}

	p, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return CellSize{}, errors.Wrap(errors.ErrCodeInvalidTracks, err, "invalid percentage %q", s)
	}
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return CellSize{}, errors.New(errors.ErrCodeInvalidTracks, "percentage must be finite, got %q", s)
	}
	return Percent(p), nil
}

// ParseTracks parses a comma- or whitespace-separated list of track
// definitions, e.g. "20%, auto, auto, 20%". An empty string yields no tracks.
func ParseTracks(s string) ([]CellSize, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	tracks := make([]CellSize, 0, len(fields))
	for i, f := range fields {
		c, err := ParseCellSize(f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTracks, err, "track %d", i)
		}
		tracks = append(tracks, c)
	}
	return tracks, nil
}

// FormatTracks returns the textual form of tracks, comma separated.
func FormatTracks(tracks []CellSize) string {
	parts := make([]string, len(tracks))
	for i, t := range tracks {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}
