package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/stackgrid/pkg/pipeline"
)

var (
	colorAccent = lipgloss.Color("36")  // teal
	colorOK     = lipgloss.Color("35")  // green
	colorWarn   = lipgloss.Color("220") // amber
	colorErr    = lipgloss.Color("167") // soft red
	colorLink   = lipgloss.Color("75")  // light blue
	colorValue  = lipgloss.Color("255")
	colorLabel  = lipgloss.Color("245")
	colorMuted  = lipgloss.Color("240")
)

// Styles shared by the status printer, the resolve table and the preview.
var (
	styleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	styleLink      = lipgloss.NewStyle().Foreground(colorLink).Underline(true)
	styleHeader    = lipgloss.NewStyle().Foreground(colorLabel).Bold(true)
	styleDim       = lipgloss.NewStyle().Foreground(colorMuted)
	styleValue     = lipgloss.NewStyle().Foreground(colorValue)
	styleNumber    = lipgloss.NewStyle().Foreground(colorAccent)
	styleWarning   = lipgloss.NewStyle().Foreground(colorWarn)

	styleOK      = lipgloss.NewStyle().Foreground(colorOK)
	styleErr     = lipgloss.NewStyle().Foreground(colorErr)
	styleLabel   = lipgloss.NewStyle().Foreground(colorLabel)
	styleKey     = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
	styleCommand = lipgloss.NewStyle().Foreground(colorLink)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
)

// printer writes human-oriented status lines. Commands point it at their
// error stream so stdout carries only data (cell lines, tables, JSON).
type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) printer {
	return printer{w: w}
}

func (p printer) line(s string) {
	fmt.Fprintln(p.w, s)
}

func (p printer) success(format string, args ...any) {
	p.line(styleOK.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func (p printer) failure(format string, args ...any) {
	p.line(styleErr.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func (p printer) info(format string, args ...any) {
	p.line(styleLabel.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

func (p printer) detail(format string, args ...any) {
	p.line("  " + styleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints an indented "→ path" line for a written artifact.
func (p printer) file(path string) {
	p.line("  " + styleDim.Render(iconArrow) + " " + styleValue.Render(path))
}

func (p printer) keyValue(key, value string) {
	p.line(styleKey.Render(key) + " " + styleValue.Render(value))
}

// summary prints the grid dimensions and where each stage came from, e.g.
// "4 columns · 2 rows · 8 cells · grid cached · artifacts fresh".
func (p printer) summary(r *pipeline.Result) {
	parts := []string{
		styleDim.Render(fmt.Sprintf("%d columns", r.Stats.Columns)),
		styleDim.Render(fmt.Sprintf("%d rows", r.Stats.Rows)),
		styleDim.Render(fmt.Sprintf("%d cells", r.Stats.Cells)),
		cacheState("grid", r.CacheInfo.GridHit),
		cacheState("artifacts", r.CacheInfo.RenderHit),
	}
	p.line("  " + strings.Join(parts, styleDim.Render(" · ")))
}

func cacheState(stage string, hit bool) string {
	if hit {
		return styleOK.Render(stage + " cached")
	}
	return styleLabel.Render(stage + " fresh")
}

func (p printer) nextStep(description, cmd string) {
	p.line(styleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}
