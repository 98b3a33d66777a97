package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLevelFromString(t *testing.T) {
	cases := []struct {
		input string
		want  slog.Level
	}{
		{"error", slog.LevelError},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, c := range cases {
		if got := LevelFromString(c.input); got != c.want {
			t.Errorf("LevelFromString(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestNewWithWriterFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown", "component", "test")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered: %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "component=test") {
		t.Fatalf("expected warn line with attrs: %s", out)
	}
}
