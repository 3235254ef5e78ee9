package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &ZapLogger{sugar: zap.New(core).Sugar()}, logs
}

func TestZapLogger_FieldsAndLevels(t *testing.T) {
	log, logs := observed()

	child := log.With("service", "waitlist")
	child.Info("Waitlist entry created", "interest_score", 8)
	child.Error("Insert failed", errors.New("connection reset"), "operation", "waitlist.join")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "waitlist", entries[0].ContextMap()["service"])
	assert.EqualValues(t, 8, entries[0].ContextMap()["interest_score"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "connection reset", entries[1].ContextMap()["error"])
	assert.Equal(t, "waitlist.join", entries[1].ContextMap()["operation"])
}

func TestNew(t *testing.T) {
	for _, env := range []string{"development", "production", "test"} {
		log, err := New(env)
		require.NoError(t, err, env)
		assert.NotNil(t, log)
	}
	NewNop().Info("discarded")
}
