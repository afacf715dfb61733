package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesToFile(t *testing.T) {
	tmpDir := t.TempDir()
	logFile := filepath.Join(tmpDir, "engine.log")

	cfg := FileConfig{
		Path:       logFile,
		MaxSizeMB:  1,
		MaxBackups: 1,
		MaxAgeDays: 1,
		Compress:   false,
	}

	if err := InitWithFileConfig("debug", cfg, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	defer Sync()

	Sugar.Debugw("frame submitted", "index", 42)
	Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "frame submitted") {
		t.Error("expected log entry in file")
	}
}

func TestSetLevelFiltersDebug(t *testing.T) {
	tmpDir := t.TempDir()
	logFile := filepath.Join(tmpDir, "engine.log")

	if err := InitWithFileConfig("info", DefaultFileConfig(logFile), false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	defer Sync()

	Debug("hidden message")
	Info("visible message")
	Sync()

	data, _ := os.ReadFile(logFile)
	if strings.Contains(string(data), "hidden message") {
		t.Error("debug message should be filtered at info level")
	}
	if !strings.Contains(string(data), "visible message") {
		t.Error("info message should be logged")
	}

	SetLevel("debug")
	Debug("now visible")
	Sync()

	data, _ = os.ReadFile(logFile)
	if !strings.Contains(string(data), "now visible") {
		t.Error("debug message should pass after SetLevel")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]string{
		"debug": "debug",
		"warn":  "warn",
		"error": "error",
		"info":  "info",
		"bogus": "info",
		"":      "info",
	}
	for in, want := range cases {
		if got := parseLevel(in).String(); got != want {
			t.Errorf("parseLevel(%q) = %q, want %q", in, got, want)
		}
	}
}
