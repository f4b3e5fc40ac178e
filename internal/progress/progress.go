package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

// Event is a single progress update from the summarize pipeline.
type Event struct {
	Type     string // "stage", "category", "done"
	Message  string
	Category string
	Entries  int
}

// Emitter receives progress events.
type Emitter interface {
	Emit(event Event)
	Close()
}

// New returns a spinner on w when w is a terminal, and a log emitter
// otherwise.
func New(w io.Writer, logger *log.Logger) Emitter {
	if f, ok := w.(*os.File); ok && isTerminal(f) {
		return NewSpinnerEmitter(f)
	}
	return &LogEmitter{Logger: logger}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// LogEmitter writes progress events to a logger at debug level.
type LogEmitter struct {
	Logger *log.Logger
}

// Emit logs the event. A nil logger discards it.
func (e *LogEmitter) Emit(ev Event) {
	if e.Logger == nil {
		return
	}
	switch ev.Type {
	case "category":
		e.Logger.Debug(ev.Message, "category", ev.Category, "entries", ev.Entries)
	default:
		e.Logger.Debug(ev.Message)
	}
}

// Close is a no-op.
func (e *LogEmitter) Close() {}

// SpinnerEmitter shows the current stage next to a terminal spinner.
type SpinnerEmitter struct {
	s *spinner.Spinner
}

// NewSpinnerEmitter starts a spinner on w.
func NewSpinnerEmitter(w io.Writer) *SpinnerEmitter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Start()
	return &SpinnerEmitter{s: s}
}

// Emit updates the spinner suffix.
func (e *SpinnerEmitter) Emit(ev Event) {
	e.s.Lock()
	e.s.Suffix = " " + Format(ev)
	e.s.Unlock()
}

// Close stops the spinner and clears its line.
func (e *SpinnerEmitter) Close() {
	e.s.Stop()
}

// Format renders an event as a single human-readable line.
func Format(ev Event) string {
	switch ev.Type {
	case "category":
		return fmt.Sprintf("%s [%s] (%d entries)", ev.Message, ev.Category, ev.Entries)
	default:
		return ev.Message
	}
}

// Discard drops every event.
var Discard Emitter = discard{}

type discard struct{}

func (discard) Emit(Event) {}
func (discard) Close()     {}
