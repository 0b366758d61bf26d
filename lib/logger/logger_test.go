package logger

import (
	"bytes"
	"strings"
	"testing"
)

// TestLevelFiltering tests that messages below the configured level are suppressed
func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("test", INFO, &buf)

	l.Debugf("this should be suppressed")
	l.Infof("info message %d", 1)
	l.Warningf("warn message")
	l.Errorf("error message")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Errorf("DEBUG message was logged at INFO level:\n%s", out)
	}
	for _, want := range []string{"info message 1", "warn message", "error message"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
}

// TestSetLevel tests that the level can be raised at runtime
func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("test", ERROR, &buf)

	l.Infof("hidden")
	l.SetLevel(DEBUG)
	l.Debugf("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("INFO message was logged at ERROR level:\n%s", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("DEBUG message missing after SetLevel(DEBUG):\n%s", out)
	}
}

// TestOutputFormat tests the fixed column layout of log lines
func TestOutputFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("dict", INFO, &buf)

	l.Infof("hello")

	out := buf.String()
	if !strings.Contains(out, "INFO  | dict            | hello") {
		t.Errorf("unexpected log format: %q", out)
	}
}

// TestParseLevel tests the string to level conversion
func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input     string
		want      LogLevel
		expectErr bool
	}{
		{"debug", DEBUG, false},
		{"INFO", INFO, false},
		{"warn", WARNING, false},
		{"warning", WARNING, false},
		{"Error", ERROR, false},
		{"critical", CRITICAL, false},
		{"verbose", INFO, true},
		{"", INFO, true},
	}

	for _, tc := range testCases {
		got, err := ParseLevel(tc.input)
		if tc.expectErr {
			if err == nil {
				t.Errorf("ParseLevel(%q) expected error, got none", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLevel(%q) unexpected error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

// TestPanicf tests that Panicf panics regardless of level
func TestPanicf(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("test", CRITICAL, &buf)

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Panicf did not panic")
		} else if !strings.Contains(r.(string), "boom 7") {
			t.Errorf("unexpected panic value: %v", r)
		}
	}()
	l.Panicf("boom %d", 7)
}
