package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetupLogger_Levels(t *testing.T) {
	restore := SetLogger(zap.NewNop())
	defer restore()

	l := SetupLogger("local", "error")
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l = SetupLogger("prod", "warn")
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	l = SetupLogger("prod", "bogus")
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.Same(t, l, Logger())
}

func TestPackageHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := SetLogger(zap.New(core))
	defer restore()

	Debug("d")
	Info("i", zap.String("k", "v"))
	Warn("w")
	Error("e")

	entries := logs.All()
	if assert.Len(t, entries, 4) {
		assert.Equal(t, "i", entries[1].Message)
		assert.Equal(t, "v", entries[1].ContextMap()["k"])
		assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	}
}
