// Package logging provides structured JSON logging for ccjk components.
// Events go to stderr as one JSON object per line; normal command output
// stays on stdout.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Level represents log severity.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Event represents a structured log event.
type Event struct {
	Timestamp string         `json:"ts"`
	Level     Level          `json:"level"`
	Component string         `json:"component"`
	Event     string         `json:"event"`
	Tool      string         `json:"tool,omitempty"`
	Duration  int64          `json:"duration_ms,omitempty"`
	Error     string         `json:"error,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// Logger provides structured logging for one component.
type Logger struct {
	component string
	tool      string
	out       io.Writer
	verbose   bool
}

// New creates a logger for a component. Debug events are suppressed
// unless CCJK_DEBUG is set.
func New(component string) *Logger {
	return &Logger{
		component: component,
		out:       os.Stderr,
		verbose:   os.Getenv("CCJK_DEBUG") != "",
	}
}

// WithTool sets the managed-tool context ("claude" or "codex").
func (l *Logger) WithTool(tool string) *Logger {
	return &Logger{
		component: l.component,
		tool:      tool,
		out:       l.out,
		verbose:   l.verbose,
	}
}

// WithOutput redirects events, mainly for tests.
func (l *Logger) WithOutput(w io.Writer) *Logger {
	return &Logger{
		component: l.component,
		tool:      l.tool,
		out:       w,
		verbose:   l.verbose,
	}
}

func (l *Logger) log(level Level, event string, extra map[string]any, err error) {
	e := Event{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level,
		Component: l.component,
		Event:     event,
		Tool:      l.tool,
		Extra:     extra,
	}
	if err != nil {
		e.Error = err.Error()
	}

	data, _ := json.Marshal(e)
	fmt.Fprintln(l.out, string(data))
}

// Debug logs a debug event when CCJK_DEBUG is set.
func (l *Logger) Debug(event string, extra map[string]any) {
	if !l.verbose {
		return
	}
	l.log(LevelDebug, event, extra, nil)
}

// Info logs an info event.
func (l *Logger) Info(event string, extra map[string]any) {
	l.log(LevelInfo, event, extra, nil)
}

// Warn logs a warning event.
func (l *Logger) Warn(event string, extra map[string]any, err error) {
	l.log(LevelWarn, event, extra, err)
}

// Error logs an error event.
func (l *Logger) Error(event string, extra map[string]any, err error) {
	l.log(LevelError, event, extra, err)
}

// TimedEvent logs an info event with the elapsed time since start.
func (l *Logger) TimedEvent(event string, start time.Time, extra map[string]any) {
	e := Event{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     LevelInfo,
		Component: l.component,
		Event:     event,
		Tool:      l.tool,
		Duration:  time.Since(start).Milliseconds(),
		Extra:     extra,
	}

	data, _ := json.Marshal(e)
	fmt.Fprintln(l.out, string(data))
}
