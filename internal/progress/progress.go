// Package progress shows an indicator while a tool call is in flight.
// Output goes to stderr to keep stdout clean for piping and JSON, and
// nothing is drawn unless stderr is a terminal.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// interval is the time between animation frames.
const interval = 100 * time.Millisecond

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a label until stopped.
type Spinner struct {
	mu      sync.Mutex
	w       io.Writer
	label   string
	frame   int
	enabled bool
	stop    chan struct{}
	done    chan struct{}
}

// NewSpinner creates a spinner that writes to stderr.
func NewSpinner(label string) *Spinner {
	return newSpinner(os.Stderr, label, term.IsTerminal(int(os.Stderr.Fd())))
}

func newSpinner(w io.Writer, label string, enabled bool) *Spinner {
	return &Spinner{w: w, label: label, enabled: enabled}
}

// Start draws the first frame and animates in the background. Calling
// Start on a running spinner does nothing.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled || s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	fmt.Fprintf(s.w, "%s %s...", frames[0], s.label)
	go s.run(s.stop, s.done)
}

func (s *Spinner) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			s.tick()
		}
	}
}

func (s *Spinner) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame = (s.frame + 1) % len(frames)
	fmt.Fprintf(s.w, "\r%s %s...", frames[s.frame], s.label)
}

// Stop ends the animation and clears the line. Safe to call more than once.
func (s *Spinner) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done

	s.mu.Lock()
	defer s.mu.Unlock()
	// label, frame, space and "..." all need blanking.
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.label)+6))
}
