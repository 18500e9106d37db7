package logger

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWithFieldsAddsAttributes(t *testing.T) {
	prev := globalLogger
	t.Cleanup(func() {
		globalLogger = prev
		slog.SetDefault(prev)
	})

	path := filepath.Join(t.TempDir(), "logs", "app.log")
	if err := InitWithConfig(Config{Level: LevelInfo, OutputPath: path, Format: "json"}); err != nil {
		t.Fatalf("InitWithConfig: %v", err)
	}

	WithFields("command", "report", "user_id", 7).Info("Handling command")
	Debug("dropped below level")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), data)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["msg"] != "Handling command" || entry["command"] != "report" || entry["user_id"] != float64(7) {
		t.Errorf("entry = %v", entry)
	}
}
