package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackgrid/pkg/grid"
	"github.com/matzehuels/stackgrid/pkg/pipeline"
	"github.com/matzehuels/stackgrid/pkg/render/styles"
)

const (
	previewStep          = 10
	previewDefaultWidth  = 64
	previewDefaultHeight = 16
	previewChrome        = 5 // title, help and spacing lines
)

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		gf gridFlags
		rf renderFlags
	)

	cmd := &cobra.Command{
		Use:   "preview [grid.toml|grid.json]",
		Short: "Preview a grid in the terminal",
		Long: `Preview a grid in the terminal.

Arrow keys (or h/j/k/l) resize the viewport by 10 pixels so you can see how
auto tracks absorb the change. Press q to quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(cmd, args, &gf, &rf)
			if err != nil {
				return err
			}
			m, err := newPreviewModel(opts)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen()).Run()
			return err
		},
	}

	gf.register(cmd)
	rf.register(cmd)
	return cmd
}

// previewModel is the bubbletea model for the live preview.
type previewModel struct {
	opts     pipeline.Options
	palette  styles.Palette
	canvasW  int
	canvasH  int
	resolved grid.Resolved
	err      error
}

func newPreviewModel(opts pipeline.Options) (previewModel, error) {
	m := previewModel{
		opts:    opts,
		palette: opts.Palette,
		canvasW: previewDefaultWidth,
		canvasH: previewDefaultHeight,
	}
	// Validate up front; later errors are shown inline.
	if _, err := pipeline.BuildLayout(opts); err != nil {
		return m, err
	}
	m.resolve()
	return m, nil
}

func (m *previewModel) resolve() {
	l, err := pipeline.BuildLayout(m.opts)
	if err == nil {
		m.resolved, err = pipeline.ResolveLayout(l, m.opts.Strict)
	}
	m.err = err
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		vp := *m.opts.Viewport
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l":
			vp.Width += previewStep
		case "left", "h":
			vp.Width = shrink(vp.Width)
		case "up", "k":
			vp.Height = shrink(vp.Height)
		case "down", "j":
			vp.Height += previewStep
		default:
			return m, nil
		}
		m.opts.Viewport = &vp
		m.resolve()
	case tea.WindowSizeMsg:
		m.canvasW = max(8, msg.Width-2)
		m.canvasH = max(4, msg.Height-previewChrome)
	}
	return m, nil
}

func shrink(v uint32) uint32 {
	if v < previewStep {
		return 0
	}
	return v - previewStep
}

func (m previewModel) View() string {
	var b strings.Builder

	vp := m.opts.Viewport
	b.WriteString(styleTitle.Render(fmt.Sprintf("Grid %dx%d", vp.Width, vp.Height)))
	b.WriteString("  ")
	b.WriteString(styleDim.Render(fmt.Sprintf("columns %s · rows %s",
		grid.FormatTracks(m.resolved.Columns), grid.FormatTracks(m.resolved.Rows))))
	b.WriteString("\n")
	b.WriteString(styleDim.Render("←/→ width  ↑/↓ height  q quit"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(styleWarning.Render(m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.canvas())
	return b.String()
}

// canvas scales the grid onto a character canvas and paints each cell with
// its palette color. Cells with negative extent are normalized first.
func (m previewModel) canvas() string {
	w, h := m.resolved.Size()
	if w <= 0 || h <= 0 {
		return styleDim.Render("(empty viewport)") + "\n"
	}

	owner := make([][]int, m.canvasH)
	for y := range owner {
		owner[y] = make([]int, m.canvasW)
		for x := range owner[y] {
			owner[y][x] = -1
		}
	}

	for i, c := range m.resolved.Cells {
		x1, x2 := scaleSpan(c.X1, c.X2, w, m.canvasW)
		y1, y2 := scaleSpan(c.Y1, c.Y2, h, m.canvasH)
		for y := y1; y < y2; y++ {
			for x := x1; x < x2; x++ {
				owner[y][x] = i
			}
		}
	}

	var b strings.Builder
	for _, line := range owner {
		for x := 0; x < len(line); {
			run := x
			for run < len(line) && line[run] == line[x] {
				run++
			}
			seg := strings.Repeat(" ", run-x)
			if idx := line[x]; idx >= 0 {
				seg = lipgloss.NewStyle().Background(lipgloss.Color(m.palette.At(idx))).Render(seg)
			}
			b.WriteString(seg)
			x = run
		}
		b.WriteString("\n")
	}
	return b.String()
}

// scaleSpan maps [a, b] in viewport units onto [0, cells) canvas columns.
func scaleSpan(a, b, total float64, cells int) (int, int) {
	if math.IsNaN(a) || math.IsNaN(b) {
		return 0, 0
	}
	if a > b {
		a, b = b, a
	}
	lo := int(math.Round(a / total * float64(cells)))
	hi := int(math.Round(b / total * float64(cells)))
	return min(max(lo, 0), cells), min(max(hi, 0), cells)
}
