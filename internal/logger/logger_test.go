package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInitWithJSON(t *testing.T) {
	var buf bytes.Buffer
	InitWith(&buf, "info", "")

	Debug("hidden")
	With("coordinator").Info("pick made", "player_id", "123")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["component"] != "coordinator" || entry["player_id"] != "123" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestInitWithText(t *testing.T) {
	var buf bytes.Buffer
	InitWith(&buf, "debug", "text")

	Warn("slow subscriber", "subject", "draft.picks")
	if !strings.Contains(buf.String(), "subject=draft.picks") {
		t.Errorf("expected text output, got %q", buf.String())
	}
}
