package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRunDemo(t *testing.T) {
	c := New(io.Discard, LogInfo)
	output := filepath.Join(t.TempDir(), demoOutput)

	var buf, status bytes.Buffer
	if err := c.runDemo(&buf, &status, output); err != nil {
		t.Fatalf("runDemo: %v", err)
	}
	for _, want := range []string{"Generated " + output, "stackgrid render"} {
		if !strings.Contains(status.String(), want) {
			t.Errorf("status output missing %q:\n%s", want, status.String())
		}
	}

	want := []string{
		"Cell (0, 0, 160, 90)",
		"Cell (160, 0, 400, 90)",
		"Cell (400, 0, 640, 90)",
		"Cell (640, 0, 800, 90)",
		"Cell (0, 90, 160, 600)",
		"Cell (160, 90, 400, 600)",
		"Cell (400, 90, 640, 600)",
		"Cell (640, 90, 800, 600)",
	}
	got := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("cell lines mismatch (-want +got):\n%s", diff)
	}

	svg, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read %s: %v", output, err)
	}
	s := string(svg)
	if !strings.Contains(s, `viewBox="0 0 800 600"`) {
		t.Error("svg missing 800x600 viewBox")
	}
	if n := strings.Count(s, "<path"); n != 8 {
		t.Errorf("svg has %d paths, want 8", n)
	}
	for _, color := range []string{"#ff0000", "#ee187f"} {
		if !strings.Contains(s, color) {
			t.Errorf("svg missing palette color %s", color)
		}
	}
}

func TestDemoLayout(t *testing.T) {
	l, err := demoLayout()
	if err != nil {
		t.Fatalf("demoLayout: %v", err)
	}
	cols, rows := l.Dimensions()
	if cols != 4 || rows != 2 {
		t.Errorf("dimensions = %dx%d, want 4x2", cols, rows)
	}
}

func TestPrintCells(t *testing.T) {
	l, err := demoLayout()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	printCells(&buf, l.Grid()[:1])
	if got := buf.String(); got != "Cell (0, 0, 160, 90)\n" {
		t.Errorf("printCells = %q", got)
	}
}
