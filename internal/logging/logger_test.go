package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
		wantErr  bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{" warn ", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}

	for _, test := range tests {
		level, err := ParseLevel(test.input)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", test.input, err, test.wantErr)
		}
		if level != test.expected {
			t.Errorf("ParseLevel(%q) = %s, expected %s", test.input, level, test.expected)
		}
	}
}

func TestNewWritesToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := New(Options{Level: "info", Dir: dir})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	logger.Debug("hidden")
	logger.Info("records loaded")
	_ = logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	content := string(data)
	if !strings.Contains(content, "records loaded") {
		t.Errorf("Expected info entry in log file, got %q", content)
	}
	if strings.Contains(content, "hidden") {
		t.Error("Debug entry should be filtered at info level")
	}
}

func TestNewVerboseEnablesDebug(t *testing.T) {
	dir := t.TempDir()

	logger, err := New(Options{Level: "error", Verbose: true, Dir: dir})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Verbose should enable debug level")
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(Options{Level: "chatty"}); err == nil {
		t.Error("Expected error for invalid level")
	}
}
