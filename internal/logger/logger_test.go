package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{level: "error", expected: []string{"ERROR"}, excluded: []string{"WARN", "INFO", "DEBUG"}},
		{level: "warn", expected: []string{"ERROR", "WARN"}, excluded: []string{"INFO", "DEBUG"}},
		{level: "info", expected: []string{"ERROR", "WARN", "INFO"}, excluded: []string{"DEBUG"}},
		{level: "", expected: []string{"ERROR", "WARN", "INFO"}, excluded: []string{"DEBUG"}},
		{level: "debug", expected: []string{"ERROR", "WARN", "INFO", "DEBUG"}},
	}

	for _, tt := range tests {
		t.Run("level="+tt.level, func(t *testing.T) {
			logFile := filepath.Join(t.TempDir(), "voxray.log")
			rot := DefaultRotation(logFile)
			rot.Compress = false

			if err := Setup(Options{Level: tt.level, File: rot}); err != nil {
				t.Fatalf("setup: %v", err)
			}

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")
			Sync()

			content, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatalf("failed to read log file: %v", err)
			}
			out := string(content)

			for _, exp := range tt.expected {
				if !strings.Contains(out, exp) {
					t.Errorf("expected %s in log output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(out, exc) {
					t.Errorf("unexpected %s in log output for level %q", exc, tt.level)
				}
			}
		})
	}
}

func TestConsoleSink(t *testing.T) {
	var buf bytes.Buffer
	if err := Setup(Options{Level: "info", Console: &buf}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	Named("shader").Info("program linked")
	Sync()

	out := buf.String()
	if !strings.Contains(out, "program linked") || !strings.Contains(out, "shader") {
		t.Errorf("unexpected console output %q", out)
	}
}

func TestBadLevel(t *testing.T) {
	if err := Setup(Options{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestDefaultRotation(t *testing.T) {
	rot := DefaultRotation("/tmp/voxray.log")

	if rot.Path != "/tmp/voxray.log" {
		t.Errorf("expected path /tmp/voxray.log, got %s", rot.Path)
	}
	if rot.MaxSizeMB != 50 || rot.MaxBackups != 3 || rot.MaxAgeDays != 7 {
		t.Errorf("unexpected rotation limits %+v", rot)
	}
	if !rot.Compress {
		t.Error("expected Compress to be true")
	}
}
