package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"
)

func TestConfigureJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: DebugLevel, Output: &buf})
	defer Configure(Config{Level: InfoLevel, Pretty: true, Output: os.Stdout})

	Debug().Str("column", "tags").Msg("encoding structured value")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["level"] != "debug" {
		t.Errorf("level = %v, want debug", entry["level"])
	}
	if entry["column"] != "tags" {
		t.Errorf("column = %v, want tags", entry["column"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("expected timestamp field")
	}
}

func TestConfigureLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: WarnLevel, Output: &buf})
	defer Configure(Config{Level: InfoLevel, Pretty: true, Output: os.Stdout})

	Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %q", buf.String())
	}

	l := With("storage")
	l.Warn().Msg("kept")
	if !bytes.Contains(buf.Bytes(), []byte(`"component":"storage"`)) {
		t.Errorf("expected component field, got %q", buf.String())
	}
}
