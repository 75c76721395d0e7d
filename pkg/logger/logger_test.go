package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{name: "debug", want: slog.LevelDebug},
		{name: "info", want: slog.LevelInfo},
		{name: "warn", want: slog.LevelWarn},
		{name: "warning", want: slog.LevelWarn},
		{name: "error", want: slog.LevelError},
		{name: "ERROR", want: slog.LevelError},
		{name: "bogus", want: slog.LevelInfo},
		{name: "", want: slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.name); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestColorHandlerColorsByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewColorHandler(&buf, slog.LevelDebug))

	log.Error("boom")
	if !strings.Contains(buf.String(), colorRed) {
		t.Error("error record missing red escape")
	}

	buf.Reset()
	log.Warn("careful")
	if !strings.Contains(buf.String(), colorYellow) {
		t.Error("warn record missing yellow escape")
	}

	buf.Reset()
	log.Info("plain")
	if strings.Contains(buf.String(), "\033[") {
		t.Error("info record should not be colored")
	}
}

func TestColorHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewColorHandler(&buf, slog.LevelWarn))

	log.Info("suppressed")
	if buf.Len() != 0 {
		t.Errorf("info below handler level still wrote: %q", buf.String())
	}
}

func TestNewLoggerFormats(t *testing.T) {
	var buf bytes.Buffer

	NewLogger(&buf, slog.LevelInfo, "json").Info("hello")
	if !strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Errorf("json format did not produce JSON: %q", buf.String())
	}

	buf.Reset()
	NewLogger(&buf, slog.LevelInfo, "text").Info("hello")
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Errorf("text format missing msg attribute: %q", buf.String())
	}
}
