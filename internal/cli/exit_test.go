package cli

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/matzehuels/stackgrid/pkg/errors"
	"github.com/matzehuels/stackgrid/pkg/grid"
	"github.com/matzehuels/stackgrid/pkg/observability"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, ExitOK},
		{"interrupted", fmt.Errorf("render: %w", context.Canceled), ExitCanceled},
		{"missing viewport", fmt.Errorf("grid configuration: %w", grid.ErrMissingViewport), ExitUsage},
		{"bad track", errors.New(errors.ErrCodeInvalidTracks, "percentage 120 out of range"), ExitUsage},
		{"bad format", errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", "gif"), ExitUsage},
		{"redis down", errors.New(errors.ErrCodeNetwork, "connect to redis"), ExitFailure},
		{"plain error", fmt.Errorf("listen :8080: address in use"), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestVerboseFlag(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Cleanup(observability.Reset)
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"-v", "cache", "path"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got := c.Logger.GetLevel(); got != LogDebug {
		t.Errorf("level after -v = %v, want debug", got)
	}
}
