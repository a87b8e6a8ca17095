package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerDrawsAndClears(t *testing.T) {
	var buf bytes.Buffer
	s := startSpinner(context.Background(), &buf, "Resolving grid...")
	s.stop()

	out := buf.String()
	if !strings.Contains(out, "Resolving grid...") {
		t.Errorf("spinner never drew its message: %q", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("spinner did not clear its line: %q", out)
	}
	if s.cancelled() {
		t.Error("stop should not count as cancellation")
	}
}

func TestSpinnerUpdate(t *testing.T) {
	var buf bytes.Buffer
	s := startSpinner(context.Background(), &buf, "Resolving grid...")
	for i, format := range []string{"svg", "png", "pdf"} {
		s.update(renderStep(format, i, 3))
	}
	s.stop()

	out := buf.String()
	for _, want := range []string{"Rendering svg (1/3)...", "Rendering png (2/3)...", "Rendering pdf (3/3)..."} {
		if !strings.Contains(out, want) {
			t.Errorf("spinner output missing %q: %q", want, out)
		}
	}

	// Updates after stop are dropped.
	n := buf.Len()
	s.update("Rendering json (4/3)...")
	if buf.Len() != n {
		t.Errorf("update after stop wrote %q", buf.String()[n:])
	}
}

func TestSpinnerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var buf bytes.Buffer
	s := startSpinner(ctx, &buf, "Resolving grid...")
	cancel()

	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Fatal("spinner kept running after cancel")
	}
	if !s.cancelled() {
		t.Error("spinner should report cancellation")
	}

	var status bytes.Buffer
	s.fail(newPrinter(&status), "Render failed")
	if !strings.Contains(status.String(), "Render failed (cancelled)") {
		t.Errorf("fail output = %q", status.String())
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := startSpinner(context.Background(), &bytes.Buffer{}, "Resolving grid...")
	s.stop()
	s.stop()
}
