package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.InfoLevel, false},
		{"info", zerolog.InfoLevel, false},
		{"DEBUG", zerolog.DebugLevel, false},
		{" warn ", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"loud", zerolog.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "info", true)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug().Msg("hidden")
	logger.Warn().Str("word", "zzqx").Msg("no data")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line (debug filtered), got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Line is not JSON: %v", err)
	}
	if entry["level"] != "warn" || entry["word"] != "zzqx" || entry["message"] != "no data" {
		t.Errorf("Unexpected entry: %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Error("Expected timestamp field")
	}
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "debug", false)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info().Msg("processed 1/2")
	if !strings.Contains(buf.String(), "processed 1/2") {
		t.Errorf("Console output missing message: %q", buf.String())
	}
	if strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Error("Console output should not be JSON")
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "verbose", false); err == nil {
		t.Error("Expected error for invalid level")
	}
}

func TestWithRunID(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := New(&buf, "info", true)

	logger, id := WithRunID(logger)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("run id %q is not a UUID: %v", id, err)
	}

	logger.Info().Msg("start")
	if !strings.Contains(buf.String(), `"run_id":"`+id+`"`) {
		t.Errorf("Expected run_id in output, got %q", buf.String())
	}
}
