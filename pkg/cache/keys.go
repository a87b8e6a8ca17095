package cache

import "fmt"

// Keyer builds cache keys.
type Keyer interface {
	// GridKey identifies a resolved grid.
	GridKey(docHash string, opts GridKeyOpts) string
	// ArtifactKey identifies a rendered output of a resolved grid.
	ArtifactKey(gridHash string, opts ArtifactKeyOpts) string
}

// GridKeyOpts are the inputs besides the tracks that change a resolved grid.
type GridKeyOpts struct {
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
	Strict bool   `json:"strict,omitempty"`
}

// ArtifactKeyOpts are the render settings that change an artifact.
type ArtifactKeyOpts struct {
	Format  string   `json:"format"`
	Style   string   `json:"style,omitempty"`
	Palette []string `json:"palette,omitempty"`
	Labels  bool     `json:"labels,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
}

// DefaultKeyer produces unprefixed keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

func (k *DefaultKeyer) GridKey(docHash string, opts GridKeyOpts) string {
	return hashKey("grid", docHash, opts)
}

func (k *DefaultKeyer) ArtifactKey(gridHash string, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), gridHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)
