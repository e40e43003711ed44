package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Logger wraps charm/log for structured logging. Every logger carries a
// run_id so lines from one invocation can be grouped in a shared log file.
type Logger struct {
	*log.Logger
	RunID string
}

func newLogger(w io.Writer, level log.Level) *Logger {
	runID := uuid.NewString()
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
		Prefix:          "mdjson",
	})
	return &Logger{Logger: l.With("run_id", runID), RunID: runID}
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	return newLogger(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	return newLogger(w, level)
}

// NewFileLogger creates a logger that appends to a file
func NewFileLogger(path string, level log.Level) (*Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	cleanup := func() {
		f.Close()
	}

	return newLogger(f, level), cleanup, nil
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// ParseLevel maps a config log level onto charm/log levels
func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "warn", "":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	}
	return log.InfoLevel, fmt.Errorf("unknown log level %q", s)
}

// ConversionStarted logs the start of a conversion
func (l *Logger) ConversionStarted(direction, source string) {
	l.Debug("conversion started",
		"direction", direction,
		"source", source)
}

// ConversionCompleted logs the completion of a conversion
func (l *Logger) ConversionCompleted(direction string, bytes int, diagnostics int, duration time.Duration) {
	l.Info("conversion completed",
		"direction", direction,
		"bytes", bytes,
		"diagnostics", diagnostics,
		"duration", duration.Round(time.Microsecond))
}

// Diagnostic records a decoder diagnostic. The CLI already shows these to
// the user, so they log at info level.
func (l *Logger) Diagnostic(source, message string) {
	l.Info("decode diagnostic",
		"source", source,
		"message", message)
}

// InputError logs a failure to read or parse an input
func (l *Logger) InputError(source string, err error) {
	l.Error("input error",
		"source", source,
		"error", err)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(path string, indent, maxDepth int) {
	l.Debug("config loaded",
		"path", path,
		"indent_size", indent,
		"max_depth", maxDepth)
}
