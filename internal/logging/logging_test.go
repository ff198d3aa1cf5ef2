package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	logger, err := New("debug", io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger == nil {
		t.Fatalf("expected logger instance")
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug level to be enabled")
	}
	_ = logger.Sync()
}

func TestNewRespectsLevel(t *testing.T) {
	logger, err := New("warn", io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("expected info level to be disabled at warn")
	}
}

func TestNewWritesJSONToOutput(t *testing.T) {
	var out bytes.Buffer
	logger, err := New("info", &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("hello")
	_ = logger.Sync()

	var entry map[string]any
	if err := json.Unmarshal(out.Bytes(), &entry); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", out.String(), err)
	}
	if entry["msg"] != "hello" {
		t.Fatalf("unexpected message: %v", entry["msg"])
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Fatalf("expected timestamp key, got %v", entry)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("chatty", io.Discard); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
