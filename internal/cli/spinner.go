package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const spinnerInterval = 80 * time.Millisecond

var (
	spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	styleSpinner  = lipgloss.NewStyle().Foreground(colorAccent)
)

// spinner animates a one-line status on w until stopped or until its context
// is cancelled. The message can change while it runs, which the render
// command uses to report the format being rendered.
type spinner struct {
	w      io.Writer
	parent context.Context
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once

	mu     sync.Mutex
	msg    string
	frame  int
	width  int
	closed bool
}

// startSpinner draws the first frame right away and animates in the
// background.
func startSpinner(ctx context.Context, w io.Writer, msg string) *spinner {
	runCtx, cancel := context.WithCancel(ctx)
	s := &spinner{
		w:      w,
		parent: ctx,
		cancel: cancel,
		done:   make(chan struct{}),
		msg:    msg,
	}
	s.mu.Lock()
	s.drawLocked()
	s.mu.Unlock()
	go s.run(runCtx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			s.clearLocked()
			s.mu.Unlock()
			return
		case <-ticker.C:
			s.mu.Lock()
			s.frame++
			s.drawLocked()
			s.mu.Unlock()
		}
	}
}

// update replaces the message and redraws. It is a no-op once stopped.
func (s *spinner) update(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.msg = msg
	s.drawLocked()
}

func (s *spinner) drawLocked() {
	if s.closed {
		return
	}
	line := styleSpinner.Render(spinnerFrames[s.frame%len(spinnerFrames)]) + " " + styleDim.Render(s.msg)
	// Pad over a longer previous message.
	pad := max(s.width-lipgloss.Width(line), 0)
	fmt.Fprintf(s.w, "\r%s%s", line, strings.Repeat(" ", pad))
	s.width = max(s.width, lipgloss.Width(line))
}

func (s *spinner) clearLocked() {
	if s.closed {
		return
	}
	s.closed = true
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
}

// stop clears the line and waits for the animation to end. Safe to call
// more than once.
func (s *spinner) stop() {
	s.once.Do(func() {
		s.cancel()
		<-s.done
	})
}

// fail stops the spinner and reports msg through p, noting cancellation.
func (s *spinner) fail(p printer, msg string) {
	s.stop()
	if s.cancelled() {
		msg += " (cancelled)"
	}
	p.failure("%s", msg)
}

// cancelled reports whether the spinner ended because its parent context
// was cancelled rather than through stop.
func (s *spinner) cancelled() bool {
	return s.parent.Err() != nil
}
