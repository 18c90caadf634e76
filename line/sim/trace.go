package sim

import (
	"fmt"

	"github.com/ardnew/softshift/line"
)

// Event is a single level set on a named line.
type Event struct {
	Line  string
	Level line.Level
}

// String returns the event formatted as "name=level".
func (e Event) String() string {
	return fmt.Sprintf("%s=%s", e.Line, e.Level)
}

// Trace records line events in the order they were issued.
// The zero value is ready to use.
type Trace struct {
	events []Event
}

// NewTrace returns an empty trace.
func NewTrace() *Trace {
	return &Trace{}
}

// Record appends an event.
func (t *Trace) Record(name string, level line.Level) {
	t.events = append(t.events, Event{Line: name, Level: level})
}

// Events returns a copy of the recorded events.
func (t *Trace) Events() []Event {
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// Levels returns the levels recorded for the named line, in order.
func (t *Trace) Levels(name string) []line.Level {
	var out []line.Level
	for _, e := range t.events {
		if e.Line == name {
			out = append(out, e.Level)
		}
	}
	return out
}

// Len returns the number of recorded events.
func (t *Trace) Len() int {
	return len(t.events)
}

// Reset discards all recorded events.
func (t *Trace) Reset() {
	t.events = t.events[:0]
}

// Line creates a named line that records into t.
func (t *Trace) Line(name string) *Line {
	return &Line{name: name, trace: t}
}

// Line is a recorded output line.
type Line struct {
	name  string
	trace *Trace
	level line.Level
	err   error
}

// Name returns the line name used in recorded events.
func (l *Line) Name() string {
	return l.name
}

// Level returns the last level successfully driven.
func (l *Line) Level() line.Level {
	return l.level
}

// Fail makes subsequent operations return err without changing the level
// or recording an event. Pass nil to restore normal operation.
func (l *Line) Fail(err error) {
	l.err = err
}

// SetHigh implements line.Line.
func (l *Line) SetHigh() error {
	return l.drive(line.High)
}

// SetLow implements line.Line.
func (l *Line) SetLow() error {
	return l.drive(line.Low)
}

func (l *Line) drive(level line.Level) error {
	if l.err != nil {
		return l.err
	}
	l.level = level
	if l.trace != nil {
		l.trace.Record(l.name, level)
	}
	return nil
}
