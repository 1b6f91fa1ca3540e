package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"
)

// EventType identifies what a LogEntry describes.
type EventType string

const (
	// EventLine is recorded once per logical line with its final status.
	EventLine EventType = "line"
	// EventRunCommand is recorded for each command that was started.
	EventRunCommand EventType = "run_command"
	// EventUnknownCommand is recorded when a command couldn't be resolved.
	EventUnknownCommand EventType = "unknown_command"
	// EventSyntaxError is recorded when a line was rejected.
	EventSyntaxError EventType = "syntax_error"
)

// LogEntry is a single event.
type LogEntry struct {
	TimestampMicros int64     `json:"timestamp_micros"`
	SessionID       string    `json:"session_id,omitempty"`
	Type            EventType `json:"type"`

	Line         string   `json:"line,omitempty"`
	Command      []string `json:"command,omitempty"`
	ResolvedPath string   `json:"resolved_path,omitempty"`
	Builtin      bool     `json:"builtin,omitempty"`
	ExitStatus   int      `json:"exit_status"`
	Error        string   `json:"error,omitempty"`
}

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *LogEntry) error

// Logger captures the events of shell sessions.
type Logger struct {
	Record LogRecorder

	// Now returns the event time, defaults to time.Now.
	Now func() time.Time
}

// NewJsonLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format.
func NewJsonLinesLogRecorder(w io.Writer) *Logger {
	var mu sync.Mutex
	return &Logger{
		Record: func(le *LogEntry) error {
			entry, err := json.Marshal(le)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

func (l *Logger) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

func (l *Logger) record(sessionID string, le *LogEntry) error {
	le.TimestampMicros = l.now().UnixMicro()
	le.SessionID = sessionID
	return l.Record(le)
}

// NewSession creates a logger with attached session ID.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: fmt.Sprintf("%d", rand.Uint64())}
}

// SessionLogger logs messages with a shared session ID. A nil SessionLogger
// discards everything.
type SessionLogger struct {
	*Logger
	sessionID string
}

// SessionID returns the ID attached to every event.
func (l *SessionLogger) SessionID() string {
	if l == nil {
		return ""
	}
	return l.sessionID
}

func (l *SessionLogger) recordEntry(le *LogEntry) error {
	if l == nil || l.Logger == nil {
		return nil
	}
	return l.record(l.sessionID, le)
}

// RecordLine records a logical line and the status it left behind.
func (l *SessionLogger) RecordLine(line string, status int) error {
	return l.recordEntry(&LogEntry{Type: EventLine, Line: line, ExitStatus: status})
}

// RecordCommand records a finished command.
func (l *SessionLogger) RecordCommand(argv []string, resolvedPath string, builtin bool, status int) error {
	return l.recordEntry(&LogEntry{
		Type:         EventRunCommand,
		Command:      argv,
		ResolvedPath: resolvedPath,
		Builtin:      builtin,
		ExitStatus:   status,
	})
}

// RecordUnknownCommand records a command that couldn't be run.
func (l *SessionLogger) RecordUnknownCommand(argv []string, err error, status int) error {
	return l.recordEntry(&LogEntry{
		Type:       EventUnknownCommand,
		Command:    argv,
		ExitStatus: status,
		Error:      err.Error(),
	})
}

// RecordSyntaxError records a rejected line.
func (l *SessionLogger) RecordSyntaxError(line string, err error, status int) error {
	return l.recordEntry(&LogEntry{
		Type:       EventSyntaxError,
		Line:       line,
		ExitStatus: status,
		Error:      err.Error(),
	})
}
