// Package diag is the diagnostics collaborator of the mini-game.
// Sessions report lifecycle events here; recorders forward them to the
// structured log and the SQLite journal. Recording is best-effort and never
// feeds back into game state.
package diag

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Kind names a lifecycle event.
type Kind string

const (
	KindDisabled Kind = "disabled" // No play area at construction
	KindStarted  Kind = "started"  // Idle/Stopped -> Running
	KindWon      Kind = "won"      // Win threshold reached
	KindReset    Kind = "reset"    // Explicit reset
)

// Event is a single diagnostics record.
type Event struct {
	SessionID string
	Kind      Kind
	State     string // State label after the transition
	Message   string // Player-facing message after the transition
	Detail    string // Optional free-form context
	At        time.Time
}

// Recorder receives diagnostics events.
type Recorder interface {
	Record(evt Event)
}

// RecorderFunc adapts a function to the Recorder interface.
type RecorderFunc func(evt Event)

// Record calls f(evt).
func (f RecorderFunc) Record(evt Event) {
	f(evt)
}

// Discard drops every event.
var Discard Recorder = RecorderFunc(func(Event) {})

// Fanout forwards each event to every non-nil recorder in order.
type Fanout []Recorder

// Record implements Recorder.
func (f Fanout) Record(evt Event) {
	for _, r := range f {
		if r != nil {
			r.Record(evt)
		}
	}
}

// LogRecorder writes events to a structured logger.
type LogRecorder struct {
	logger *log.Logger
}

// NewLogRecorder creates a recorder backed by logger.
func NewLogRecorder(logger *log.Logger) *LogRecorder {
	return &LogRecorder{logger: logger}
}

// Record implements Recorder.
func (r *LogRecorder) Record(evt Event) {
	kv := []any{
		"session", evt.SessionID,
		"state", evt.State,
	}
	if evt.Message != "" {
		kv = append(kv, "message", evt.Message)
	}
	if evt.Detail != "" {
		kv = append(kv, "detail", evt.Detail)
	}

	switch evt.Kind {
	case KindDisabled:
		r.logger.Warn("mini-game disabled", kv...)
	default:
		r.logger.Info("session "+string(evt.Kind), kv...)
	}
}

// NewLogger builds a component logger in the house style.
// level is one of debug, info, warn, error; empty means info.
func NewLogger(w io.Writer, prefix, level string) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		parsed, err := log.ParseLevel(strings.ToLower(level))
		if err != nil {
			return nil, fmt.Errorf("diag: unknown log level %q: %w", level, err)
		}
		lvl = parsed
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           lvl,
	}), nil
}
