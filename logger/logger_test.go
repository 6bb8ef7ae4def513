package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, slog.LevelInfo, "json")

	l.Debug("hidden")
	l.Info("visible", FieldComponent, "test")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 record, got %d: %q", len(lines), buf.String())
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("Expected JSON record, got %q: %v", lines[0], err)
	}
	if record["msg"] != "visible" || record[FieldComponent] != "test" {
		t.Errorf("Unexpected record %v", record)
	}
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelDebug, "text").Debug("hello", FieldRequestID, "abc")

	if !strings.Contains(buf.String(), "msg=hello") || !strings.Contains(buf.String(), "request_id=abc") {
		t.Errorf("Unexpected text output %q", buf.String())
	}
}

func TestFromContext(t *testing.T) {
	if FromContext(context.Background()) != slog.Default() {
		t.Error("Expected default logger for empty context")
	}

	l := New(&bytes.Buffer{}, slog.LevelInfo, "text")
	ctx := WithContext(context.Background(), l)
	if FromContext(ctx) != l {
		t.Error("Expected logger stored in context")
	}
}
