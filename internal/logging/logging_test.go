package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewAppliesLevel(t *testing.T) {
	logger, err := New("warn", false)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	defer logger.Sync()

	core := logger.Desugar().Core()
	if core.Enabled(zapcore.InfoLevel) {
		t.Fatal("expected info to be disabled at warn level")
	}
	if !core.Enabled(zapcore.WarnLevel) {
		t.Fatal("expected warn to be enabled")
	}
}

func TestNewDevelopmentDefaultsToInfo(t *testing.T) {
	logger, err := New("", true)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	if logger.Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("expected debug to be disabled by default")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("verbose", false); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
