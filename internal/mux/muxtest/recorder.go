package muxtest

import (
	"sync"

	"github.com/abhinav/muxenv/internal/mux"
)

// Recorder is a mux.Controller that records the control lines sent to it
// instead of delivering them.
type Recorder struct {
	// Err, if set, is returned from every Send.
	// Lines are recorded even if Err is set.
	Err error

	mu    sync.Mutex
	lines []mux.ControlLine
}

var _ mux.Controller = (*Recorder)(nil)

// Send records the given control line.
func (r *Recorder) Send(line mux.ControlLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lines = append(r.lines, append(mux.ControlLine(nil), line...))
	return r.Err
}

// Lines returns the string form of all control lines sent so far, in order.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.lines))
	for i, l := range r.lines {
		out[i] = l.String()
	}
	return out
}

// Calls returns all control lines sent so far, in order.
func (r *Recorder) Calls() []mux.ControlLine {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]mux.ControlLine(nil), r.lines...)
}
