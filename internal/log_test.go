package internal

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	level, ok := ParseLogLevel("debug")
	if !ok || level != LogLevelDebug {
		t.Errorf("expected DEBUG, got %v (ok=%v)", level, ok)
	}
	if _, ok := ParseLogLevel("VERBOSE"); ok {
		t.Error("VERBOSE should not parse")
	}
}

func TestNamedKeepsLevel(t *testing.T) {
	logger := NewLoggerTo(&bytes.Buffer{}, LogLevelTrace).Named("Matrix")
	if logger.GetLevel() != LogLevelTrace {
		t.Errorf("expected TRACE, got %v", logger.GetLevel())
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, LogLevelWarn).Named("Normality")

	logger.Info("hidden %d", 1)
	logger.Warn("shapiro on %d samples", 6000)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line should be filtered at WARN level: %q", out)
	}
	if !strings.Contains(out, "[WARN] [Normality] shapiro on 6000 samples") {
		t.Errorf("unexpected warn line: %q", out)
	}
}
