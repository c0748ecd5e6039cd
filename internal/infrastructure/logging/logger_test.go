package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestInitLogger_Level(t *testing.T) {
	t.Cleanup(func() { Logger = nil })

	if err := InitLogger("warn", "json"); err != nil {
		t.Fatal(err)
	}
	if Logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info should be disabled at warn level")
	}
	if !Logger.Core().Enabled(zapcore.WarnLevel) {
		t.Fatal("warn should be enabled")
	}
}

func TestInitLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	t.Cleanup(func() { Logger = nil })

	if err := InitLogger("loud", "text"); err != nil {
		t.Fatal(err)
	}
	if !Logger.Core().Enabled(zapcore.InfoLevel) || Logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("expected info level")
	}
}

func TestGetLoggerLazyDefault(t *testing.T) {
	Logger = nil
	t.Cleanup(func() { Logger = nil })

	if GetLogger() == nil || WithComponent("test") == nil {
		t.Fatal("expected a default logger")
	}
}
