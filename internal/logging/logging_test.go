package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", log.WarnLevel},
		{"verbose", log.WarnLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormatter(t *testing.T) {
	if ParseFormatter("json") != log.JSONFormatter {
		t.Error("expected json formatter")
	}
	if ParseFormatter("logfmt") != log.LogfmtFormatter {
		t.Error("expected logfmt formatter")
	}
	if ParseFormatter("") != log.TextFormatter {
		t.Error("expected text formatter by default")
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "warn", Format: "logfmt"})

	logger.Debug("hidden")
	logger.Warn("shown", "path", "tasks.json")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line should be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "path=tasks.json") {
		t.Errorf("expected warn line with field, got %q", out)
	}
	if !strings.Contains(out, Prefix) {
		t.Errorf("expected prefix %q, got %q", Prefix, out)
	}
}

func TestNew_ReportTimestamp(t *testing.T) {
	var plain, stamped bytes.Buffer
	New(&plain, Options{Format: "logfmt"}).Warn("x")
	New(&stamped, Options{Format: "logfmt", ReportTimestamp: true}).Warn("x")

	if strings.Contains(plain.String(), "time=") {
		t.Errorf("expected no timestamp by default, got %q", plain.String())
	}
	if !strings.Contains(stamped.String(), "time=") {
		t.Errorf("expected a timestamp, got %q", stamped.String())
	}
}
