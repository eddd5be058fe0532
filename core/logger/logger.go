// Package logger is a standardized event logging framework for the
// interpreter.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *LogEntry) error

// Logger captures interpreter events.
type Logger struct {
	Record LogRecorder
}

// NewJsonLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format.
func NewJsonLinesLogRecorder(w io.Writer) *Logger {
	return &Logger{
		Record: func(le *LogEntry) error {
			entry, err := json.Marshal(le)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

// NewNopLogger creates a Logger that discards all events.
func NewNopLogger() *Logger {
	return &Logger{
		Record: func(le *LogEntry) error { return nil },
	}
}

// LogEntry is one logged event. Exactly one of the event fields is set.
type LogEntry struct {
	TimestampMicros int64 `json:"timestamp_micros"`

	RunCommand  *RunCommand  `json:"run_command,omitempty"`
	CommandDone *CommandDone `json:"command_done,omitempty"`
	Builtin     *Builtin     `json:"builtin,omitempty"`
	ChildReaped *ChildReaped `json:"child_reaped,omitempty"`
	InputError  *InputError  `json:"input_error,omitempty"`
}

// RunCommand records an external command being launched.
type RunCommand struct {
	Command    []string `json:"command"`
	Pid        int      `json:"pid"`
	Background bool     `json:"background"`
	Stdin      string   `json:"stdin,omitempty"`
	Stdout     string   `json:"stdout,omitempty"`
	Append     bool     `json:"append,omitempty"`
}

// CommandDone records a foreground command finishing.
type CommandDone struct {
	Pid     int  `json:"pid"`
	Status  int  `json:"status"`
	Signal  int  `json:"signal,omitempty"`
	Stopped bool `json:"stopped,omitempty"`
}

// Builtin records a built-in invocation.
type Builtin struct {
	Command []string `json:"command"`
	Error   string   `json:"error,omitempty"`
}

// ChildReaped records a background child collected before the prompt.
type ChildReaped struct {
	Pid     int  `json:"pid"`
	Status  int  `json:"status"`
	Signal  int  `json:"signal,omitempty"`
	Stopped bool `json:"stopped,omitempty"`
}

// InputError records a rejected input line.
type InputError struct {
	Line  string `json:"line"`
	Error string `json:"error"`
}

func (l *Logger) record(le *LogEntry) error {
	le.TimestampMicros = time.Now().UnixNano() / int64(time.Microsecond)
	return l.Record(le)
}

func (l *Logger) LogRunCommand(msg *RunCommand) error {
	return l.record(&LogEntry{RunCommand: msg})
}

func (l *Logger) LogCommandDone(msg *CommandDone) error {
	return l.record(&LogEntry{CommandDone: msg})
}

func (l *Logger) LogBuiltin(msg *Builtin) error {
	return l.record(&LogEntry{Builtin: msg})
}

func (l *Logger) LogChildReaped(msg *ChildReaped) error {
	return l.record(&LogEntry{ChildReaped: msg})
}

func (l *Logger) LogInputError(msg *InputError) error {
	return l.record(&LogEntry{InputError: msg})
}

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}
