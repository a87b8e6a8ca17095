package grid

import (
	stderrors "errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/stackgrid/pkg/errors"
)

func demoLayout(t *testing.T) Layout {
	t.Helper()
	l, err := NewBuilder().
		WithColumns(Percent(20), Auto, Auto, Percent(20)).
		WithRows(Percent(15), Auto).
		WithViewport(800, 600).
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return l
}

func TestBuildMissingViewport(t *testing.T) {
	_, err := NewBuilder().WithColumns(Auto).Build()
	if err == nil {
		t.Fatal("Build() without viewport should fail")
	}
	if !stderrors.Is(err, ErrMissingViewport) {
		t.Errorf("Build() error = %v, want ErrMissingViewport", err)
	}
	if !errors.IsConfiguration(err) {
		t.Error("missing viewport should be a configuration error")
	}
	if errors.UserMessage(err) != "viewport not defined" {
		t.Errorf("UserMessage() = %q", errors.UserMessage(err))
	}
}

func TestBuildDefaults(t *testing.T) {
	l, err := NewBuilder().WithViewport(320, 200).Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	cols, rows := l.Dimensions()
	if cols != 1 || rows != 1 {
		t.Errorf("Dimensions() = %d, %d; want 1, 1", cols, rows)
	}

	cells := l.Grid()
	want := []Cell{{X1: 0, Y1: 0, X2: 320, Y2: 200}}
	if diff := cmp.Diff(want, cells); diff != "" {
		t.Errorf("Grid() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildEmptyTracks(t *testing.T) {
	tests := []struct {
		name string
		b    Builder
	}{
		{"empty columns", NewBuilder().WithColumns().WithViewport(10, 10)},
		{"empty rows", NewBuilder().WithRows([]CellSize{}...).WithViewport(10, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.b.Build()
			if !errors.Is(err, errors.ErrCodeEmptyTracks) {
				t.Errorf("Build() error = %v, want %s", err, errors.ErrCodeEmptyTracks)
			}
		})
	}
}

func TestBuilderSettersOverwrite(t *testing.T) {
	l, err := NewBuilder().
		WithColumns(Auto, Auto, Auto).
		WithColumns(Percent(50)).
		WithViewport(1, 1).
		WithViewport(100, 50).
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if cols, _ := l.Dimensions(); cols != 1 {
		t.Errorf("columns = %d, want 1", cols)
	}
	if l.Viewport() != (Viewport{Width: 100, Height: 50}) {
		t.Errorf("Viewport() = %+v", l.Viewport())
	}
}

func TestBuilderIsNotAliased(t *testing.T) {
	cols := []CellSize{Auto, Auto}
	base := NewBuilder().WithColumns(cols...).WithViewport(100, 100)
	cols[0] = Percent(90)

	l, err := base.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if !l.Columns()[0].IsAuto() {
		t.Error("builder should copy the columns it is given")
	}

	// Branching off a shared builder does not affect the original.
	_ = base.WithRows(Percent(10))
	l2, _ := base.Build()
	if _, rows := l2.Dimensions(); rows != 1 {
		t.Errorf("rows = %d, want 1", rows)
	}

	// Accessors return copies.
	got := l.Columns()
	got[0] = Percent(1)
	if !l.Columns()[0].IsAuto() {
		t.Error("Columns() should return a copy")
	}
}

func TestLayoutScenario(t *testing.T) {
	l := demoLayout(t)

	if diff := cmp.Diff([]float64{160, 240, 240, 160}, l.ColumnSizes(), approx); diff != "" {
		t.Errorf("ColumnSizes() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{90, 510}, l.RowSizes(), approx); diff != "" {
		t.Errorf("RowSizes() mismatch (-want +got):\n%s", diff)
	}

	cells := l.Grid()
	if len(cells) != 8 {
		t.Fatalf("len(Grid()) = %d, want 8", len(cells))
	}

	first := Cell{Row: 0, Col: 0, X1: 0, Y1: 0, X2: 160, Y2: 90}
	if diff := cmp.Diff(first, cells[0], approx); diff != "" {
		t.Errorf("first cell mismatch (-want +got):\n%s", diff)
	}
	last := Cell{Row: 1, Col: 3, X1: 640, Y1: 90, X2: 800, Y2: 600}
	if diff := cmp.Diff(last, cells[7], approx); diff != "" {
		t.Errorf("last cell mismatch (-want +got):\n%s", diff)
	}
}

func TestGridRowMajorOrder(t *testing.T) {
	l, err := NewBuilder().
		WithColumns(Percent(10), Auto, Percent(30)).
		WithRows(Auto, Percent(25), Auto, Auto).
		WithViewport(640, 480).
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	cells := l.Grid()
	const C, R = 3, 4
	if len(cells) != C*R {
		t.Fatalf("len(Grid()) = %d, want %d", len(cells), C*R)
	}

	for r := 0; r < R; r++ {
		for c := 0; c < C; c++ {
			cell := cells[r*C+c]
			if cell.Row != r || cell.Col != c {
				t.Errorf("cell %d has (row, col) = (%d, %d), want (%d, %d)", r*C+c, cell.Row, cell.Col, r, c)
			}
			rowRef := cells[r*C]
			if cell.Y1 != rowRef.Y1 || cell.Y2 != rowRef.Y2 {
				t.Errorf("cell (%d, %d) y-span differs from its row", r, c)
			}
			colRef := cells[c]
			if cell.X1 != colRef.X1 || cell.X2 != colRef.X2 {
				t.Errorf("cell (%d, %d) x-span differs from its column", r, c)
			}
		}
	}
}

func TestGridTilesViewport(t *testing.T) {
	l, err := NewBuilder().
		WithColumns(Percent(12.5), Auto, Auto, Percent(40), Auto).
		WithRows(Percent(33), Auto, Percent(7)).
		WithViewport(1024, 768).
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	cells := l.Grid()
	var area float64
	for i, a := range cells {
		if a.Width() < 0 || a.Height() < 0 {
			t.Fatalf("cell %d has negative size", i)
		}
		area += a.Width() * a.Height()
		for j := i + 1; j < len(cells); j++ {
			b := cells[j]
			ox := math.Min(a.X2, b.X2) - math.Max(a.X1, b.X1)
			oy := math.Min(a.Y2, b.Y2) - math.Max(a.Y1, b.Y1)
			if ox > 1e-9 && oy > 1e-9 {
				t.Errorf("cells %d and %d overlap", i, j)
			}
		}
	}
	if math.Abs(area-1024*768) > 1e-6 {
		t.Errorf("total area = %v, want %v", area, 1024*768)
	}

	last := cells[len(cells)-1]
	if math.Abs(last.X2-1024) > 1e-9 || math.Abs(last.Y2-768) > 1e-9 {
		t.Errorf("last cell ends at (%v, %v), want (1024, 768)", last.X2, last.Y2)
	}
}

func TestGridOverfullPercentages(t *testing.T) {
	l, err := NewBuilder().
		WithColumns(Percent(70), Percent(50), Auto).
		WithViewport(100, 10).
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	cells := l.Grid()
	if got := cells[2].Width(); math.Abs(got+20) > 1e-9 {
		t.Errorf("auto cell width = %v, want -20", got)
	}
	if cells[2].X2 >= cells[2].X1 {
		t.Error("overfull percentages should yield an inverted cell")
	}

	if _, err := l.GridStrict(); !errors.Is(err, errors.ErrCodeInvalidTracks) {
		t.Errorf("GridStrict() error = %v, want %s", err, errors.ErrCodeInvalidTracks)
	}
}

func TestGridStrictMatchesGrid(t *testing.T) {
	l := demoLayout(t)
	strict, err := l.GridStrict()
	if err != nil {
		t.Fatalf("GridStrict() error: %v", err)
	}
	if diff := cmp.Diff(l.Grid(), strict, approx); diff != "" {
		t.Errorf("GridStrict() mismatch (-grid +strict):\n%s", diff)
	}
}

func TestGridIsRecomputed(t *testing.T) {
	l := demoLayout(t)
	a := l.Grid()
	a[0].X2 = -1
	b := l.Grid()
	if b[0].X2 == -1 {
		t.Error("Grid() should return a fresh slice on every call")
	}
}

func TestResolveLayout(t *testing.T) {
	l := demoLayout(t)
	r := l.Resolve()

	if r.Viewport != (Viewport{Width: 800, Height: 600}) {
		t.Errorf("Viewport = %+v", r.Viewport)
	}
	if len(r.Columns) != 4 || len(r.Rows) != 2 {
		t.Errorf("tracks = %d x %d, want 4 x 2", len(r.Columns), len(r.Rows))
	}
	if diff := cmp.Diff(l.Grid(), r.Cells, approx); diff != "" {
		t.Errorf("Cells mismatch (-grid +resolved):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{90, 510}, r.RowSizes, approx); diff != "" {
		t.Errorf("RowSizes mismatch (-want +got):\n%s", diff)
	}

	strict, err := l.ResolveStrict()
	if err != nil {
		t.Fatalf("ResolveStrict() error: %v", err)
	}
	if diff := cmp.Diff(r, strict, approx, cmp.AllowUnexported(CellSize{})); diff != "" {
		t.Errorf("ResolveStrict() mismatch (-resolve +strict):\n%s", diff)
	}
}
