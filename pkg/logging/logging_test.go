package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"DEBUG":   zapcore.DebugLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}

	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), "level %q", in)
	}
}

func TestLoggersDoNotPanic(t *testing.T) {
	for _, l := range []*Logger{NewNop(), New("error"), NewConsole("error")} {
		assert.NotPanics(t, func() {
			child := l.With("component", "test")
			child.Debug("debug", "k", 1)
			child.Info("info")
			child.Warn("warn", "k", "v")
			_ = child.Sync()
		})
	}
}
