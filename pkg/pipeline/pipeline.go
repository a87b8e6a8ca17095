// Package pipeline provides the grid pipeline shared by the CLI and the HTTP
// API.
//
// This package implements the build → resolve → render pipeline. By
// centralizing it, the CLI and the server apply the same defaults, the same
// validation, and the same caching.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: Assemble a [grid.Layout] from track definitions and a viewport
//  2. Resolve: Compute track sizes and cell rectangles
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Columns:  []grid.CellSize{grid.Percent(20), grid.Auto},
//	    Viewport: &io.Viewport{Width: 800, Height: 600},
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// [grid.Layout]: github.com/matzehuels/stackgrid/pkg/grid.Layout
package pipeline

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackgrid/pkg/cache"
	"github.com/matzehuels/stackgrid/pkg/errors"
	"github.com/matzehuels/stackgrid/pkg/grid"
	gridio "github.com/matzehuels/stackgrid/pkg/io"
	"github.com/matzehuels/stackgrid/pkg/render/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the viewport width the CLI offers when none is given.
	DefaultWidth uint32 = 800

	// DefaultHeight is the viewport height the CLI offers when none is given.
	DefaultHeight uint32 = 600

	// DefaultStyle is the default visual style.
	DefaultStyle = styles.NameSimple

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ContentTypes maps output formats to MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the grid pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Grid definition. Nil tracks default to a single auto track; a nil
	// viewport fails with MISSING_VIEWPORT.
	Columns  []grid.CellSize  `json:"columns,omitempty"`
	Rows     []grid.CellSize  `json:"rows,omitempty"`
	Viewport *gridio.Viewport `json:"viewport,omitempty"`
	Strict   bool             `json:"strict,omitempty"`
	Refresh  bool             `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"`
	Palette []string `json:"palette,omitempty"`
	Labels  bool     `json:"labels,omitempty"`
	Scale   float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)

	// Logger replaces the runner's logger for this run, e.g. to tag lines
	// with a request id.
	Logger *log.Logger `json:"-"`

	// Progress, if set, is called before each format is rendered. Formats
	// served from the cache are not reported.
	Progress func(format string, index, total int) `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// OptionsFromDocument copies the grid definition and render hints of doc.
func OptionsFromDocument(doc *gridio.Document) Options {
	return Options{
		Columns:  doc.Columns,
		Rows:     doc.Rows,
		Viewport: doc.Viewport,
		Style:    doc.Render.Style,
		Palette:  doc.Render.Palette,
		Labels:   doc.Render.Labels,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the validated grid definition.
	Layout grid.Layout

	// Grid holds the resolved track sizes and cells.
	Grid grid.Resolved

	// GridHash is the content hash of the resolved grid.
	GridHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Columns    int
	Rows       int
	Cells      int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GridHit   bool // Whether the resolved grid came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if style == "" {
		return errors.New(errors.ErrCodeInvalidStyle, "style is required")
	}
	if _, ok := styles.ByName(style); !ok {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: %s)",
			style, strings.Join(styles.Names(), ", "))
	}
	return nil
}

// ParseFormats splits a comma-separated format list and validates it.
func ParseFormats(s string) ([]string, error) {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || slices.Contains(formats, f) {
			continue
		}
		formats = append(formats, f)
	}
	if err := ValidateFormats(formats); err != nil {
		return nil, err
	}
	return formats, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies render defaults and validates the render
// options. Track and viewport problems are reported by [BuildLayout].
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if err := errors.ValidatePalette(o.Palette); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// GridKeyOpts returns cache key options for resolving l. The viewport is
// taken from the layout, which may differ from o.Viewport when the layout was
// built elsewhere.
func (o *Options) GridKeyOpts(l grid.Layout) cache.GridKeyOpts {
	vp := l.Viewport()
	return cache.GridKeyOpts{Width: vp.Width, Height: vp.Height, Strict: o.Strict}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:  format,
		Style:   o.Style,
		Palette: o.Palette,
		Labels:  o.Labels,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
