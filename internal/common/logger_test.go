package common

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		severity Severity
		expected string
	}{
		{SeverityDebug, "DEBUG"},
		{SeverityInfo, "INFO"},
		{SeverityWarning, "WARNING"},
		{SeverityError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got := tt.severity.String()
			if got != tt.expected {
				t.Errorf("Severity.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStdLogger_Log(t *testing.T) {
	var out bytes.Buffer
	logger := NewStdLoggerWithWriter(&out, SeverityDebug)

	tests := []struct {
		name     string
		severity Severity
		message  string
		prefix   string
	}{
		{"Debug", SeverityDebug, "debug message", "DEBUG:"},
		{"Info", SeverityInfo, "info message", ""},
		{"Warning", SeverityWarning, "warning message", "WARNING:"},
		{"Error", SeverityError, "error message", "ERROR:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out.Reset()

			logger.Log(tt.severity, tt.message)

			output := out.String()
			if !strings.Contains(output, tt.message) {
				t.Errorf("Log output should contain %q, got: %s", tt.message, output)
			}
			if tt.prefix != "" && !strings.HasPrefix(output, tt.prefix) {
				t.Errorf("Log output should start with %q, got: %s", tt.prefix, output)
			}
		})
	}
}

func TestStdLogger_MinLevel(t *testing.T) {
	var out bytes.Buffer
	logger := NewStdLoggerWithWriter(&out, SeverityWarning)

	logger.Debug("debug message")
	logger.Info("info message")

	if out.Len() != 0 {
		t.Errorf("Debug and Info should not be logged when minLevel is Warning, got: %s", out.String())
	}

	logger.Warning("warning message")

	if !strings.Contains(out.String(), "warning message") {
		t.Errorf("Warning should be logged, got: %s", out.String())
	}
}

func TestStdLogger_Error(t *testing.T) {
	var out bytes.Buffer
	logger := NewStdLoggerWithWriter(&out, SeverityInfo)

	logger.Error(errors.New("test error"))

	if !strings.Contains(out.String(), "test error") {
		t.Errorf("Error output should contain error message, got: %s", out.String())
	}

	out.Reset()
	logger.Error(nil)
	if out.Len() != 0 {
		t.Errorf("Error(nil) should not log anything, got: %s", out.String())
	}
}

func TestNoOpLogger(t *testing.T) {
	logger := NewNoOpLogger()
	if logger == nil {
		t.Fatal("NewNoOpLogger() returned nil")
	}

	// All these should do nothing and not panic
	logger.Log(SeverityInfo, "test")
	logger.Logf(SeverityInfo, "test %s", "formatted")
	logger.Error(errors.New("test error"))
	logger.Debug("debug")
	logger.Info("info")
	logger.Warning("warning")
}
