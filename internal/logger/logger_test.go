package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected log.Level
		wantErr  bool
	}{
		{"debug", log.DebugLevel, false},
		{"INFO", log.InfoLevel, false},
		{"warn", log.WarnLevel, false},
		{"", log.WarnLevel, false},
		{"error", log.ErrorLevel, false},
		{"loud", log.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if level != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, level, tt.expected)
			}
		})
	}
}

func TestLoggerIncludesRunID(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithLevel(&buf, log.DebugLevel)

	if l.RunID == "" {
		t.Fatal("RunID should be set")
	}

	l.ConversionCompleted("to-md", 120, 0, 3*time.Millisecond)
	out := buf.String()

	if !strings.Contains(out, l.RunID) {
		t.Errorf("log line missing run_id: %s", out)
	}
	if !strings.Contains(out, "conversion completed") {
		t.Errorf("log line missing message: %s", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithLevel(&buf, log.InfoLevel)

	l.ConversionStarted("to-json", "stdin")
	if buf.Len() != 0 {
		t.Errorf("debug line should be filtered: %s", buf.String())
	}

	l.Diagnostic("stdin", "row 2: expected 3 columns, got 2")
	if !strings.Contains(buf.String(), "expected 3 columns") {
		t.Errorf("diagnostic missing: %s", buf.String())
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mdjson.log")

	l, cleanup, err := NewFileLogger(path, log.InfoLevel)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	l.InputError("input.json", errors.New("unexpected EOF"))
	cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "unexpected EOF") {
		t.Errorf("log file missing error: %s", data)
	}
}

func TestNewFileLoggerBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "mdjson.log")
	if _, _, err := NewFileLogger(path, log.InfoLevel); err == nil {
		t.Error("expected error for unwritable path")
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	// Should not panic
	l.ConfigLoaded("/tmp/config.json", 2, 10)
	l.Diagnostic("x", "y")
}
