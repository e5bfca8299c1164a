package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewWithWriter_Levels(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter("prod", &buf).Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug must be suppressed outside dev, got %q", buf.String())
	}

	NewWithWriter("dev", &buf).Debug("shown", "store", "materials")
	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected JSON line: %v", err)
	}
	if line["msg"] != "shown" || line["store"] != "materials" || line["env"] != "dev" {
		t.Errorf("unexpected record: %v", line)
	}
}
