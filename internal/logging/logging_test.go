package logging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func withLogFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "trace.log")
	Configure(path)
	t.Cleanup(func() {
		Configure("")
		SetTraceEnabled(false)
	})
	return path
}

func TestTraceWritesJSONWhenEnabled(t *testing.T) {
	path := withLogFile(t)
	SetTraceEnabled(true)

	Trace("shell.select", map[string]interface{}{"tab": "todo"})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var entry struct {
		Event   string                 `json:"event"`
		Payload map[string]interface{} `json:"payload"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry.Event != "shell.select" || entry.Payload["tab"] != "todo" {
		t.Fatalf("unexpected entry %#v", entry)
	}
}

func TestTraceIsSilentWhenDisabled(t *testing.T) {
	path := withLogFile(t)
	SetTraceEnabled(false)

	Trace("ignored", nil)

	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no log file, stat err = %v", err)
	}
}

func TestErrorAppendsMessage(t *testing.T) {
	path := withLogFile(t)

	Error(errors.New("first"))
	Errorf("second %d", 2)
	Error(nil)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "first") || !strings.Contains(text, "second 2") {
		t.Fatalf("expected both errors in log, got %q", text)
	}
	if got := strings.Count(strings.TrimSpace(text), "\n"); got != 1 {
		t.Fatalf("expected two lines, got %d newlines in %q", got, text)
	}
}

func TestConfigureEmptyRestoresDefault(t *testing.T) {
	withLogFile(t)
	Configure("   ")
	if Path() != defaultLogPath() {
		t.Fatalf("expected default path, got %q", Path())
	}
}
