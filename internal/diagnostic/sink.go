package diagnostic

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/remlc/remlc/internal/schema"
)

// Sink receives validated audit events, one at a time, in emission
// order. Implementations must not interleave the bytes of two Emit
// calls — a Sink backed by a shared writer serializes internally.
type Sink interface {
	Emit(Event) error
}

// LineSink writes each event as one line-delimited deterministic-JSON
// record to w, guarding w with a mutex so concurrent Emit calls never
// interleave their output. The zero value writes to os.Stderr.
type LineSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLineSink returns a LineSink writing to w.
func NewLineSink(w io.Writer) *LineSink {
	return &LineSink{w: w}
}

// NewStderrSink returns a LineSink writing to os.Stderr, the default
// audit destination when no sink is configured.
func NewStderrSink() *LineSink {
	return NewLineSink(os.Stderr)
}

// Emit validates the event, serializes it deterministically, and
// writes it as a single line. The mutex scope covers exactly one
// Emit's write, so two goroutines sharing a LineSink still produce
// one write call's worth of bytes per event, never interleaved.
func (s *LineSink) Emit(event Event) error {
	if err := event.Validate(); err != nil {
		return err
	}
	data, err := schema.MarshalDeterministic(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write audit event: %w", err)
	}
	return nil
}

// DisabledSink discards every event without validating it — audit
// emission turned off entirely is still a no-op sink, not a missing one.
type DisabledSink struct{}

// Emit always succeeds and writes nothing.
func (DisabledSink) Emit(Event) error { return nil }
