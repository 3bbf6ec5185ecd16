package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLoggerLevels(t *testing.T) {
	t.Parallel()

	t.Run("default level hides info and shows errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, Options{})
		logger.Info("collecting")
		logger.Error("failed to get kernel version", "command", "uname -r")

		output := buf.String()
		if strings.Contains(output, "collecting") {
			t.Errorf("info message should be filtered: %s", output)
		}
		if !strings.Contains(output, "failed to get kernel version") {
			t.Errorf("error message missing: %s", output)
		}
	})

	t.Run("verbose shows debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, Options{Verbose: true})
		logger.Debug("step completed", "step", "disk")

		if !strings.Contains(buf.String(), "step=disk") {
			t.Errorf("expected debug output, got %s", buf.String())
		}
	})
}

func TestNewLoggerJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, Options{Format: FormatJSON})
	logger.Warn("df returned no data row", "path", "/")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["path"] != "/" {
		t.Errorf("expected path attribute, got %v", entry)
	}
}

func TestRedactHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		log  func(*slog.Logger)
	}{
		{
			name: "message",
			log:  func(l *slog.Logger) { l.Error("uname on secret-host failed") },
		},
		{
			name: "string attribute",
			log:  func(l *slog.Logger) { l.Error("collected", "full", "Darwin secret-host 23.4.0") },
		},
		{
			name: "error attribute",
			log:  func(l *slog.Logger) { l.Error("failed", "error", errors.New("secret-host: timeout")) },
		},
		{
			name: "group attribute",
			log: func(l *slog.Logger) {
				l.Error("failed", slog.Group("kernel", slog.String("full", "secret-host")))
			},
		},
		{
			name: "preset attribute",
			log:  func(l *slog.Logger) { l.With("host", "secret-host").Error("failed") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := NewLogger(&buf, Options{Redact: []string{"secret-host", ""}})
			tt.log(logger)

			output := buf.String()
			if strings.Contains(output, "secret-host") {
				t.Errorf("expected hostname to be masked: %s", output)
			}
			if !strings.Contains(output, MaskValue) {
				t.Errorf("expected mask in output: %s", output)
			}
		})
	}
}

func TestRedactHandlerKeepsOtherValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, Options{Redact: []string{"secret-host"}})
	logger.Error("failed", "command", "df -h /", "code", 1)

	output := buf.String()
	if !strings.Contains(output, `command="df -h /"`) {
		t.Errorf("expected command attribute untouched: %s", output)
	}
	if !strings.Contains(output, "code=1") {
		t.Errorf("expected code attribute untouched: %s", output)
	}
}
