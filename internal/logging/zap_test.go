package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_ForwardsFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := NewZapLogger(zap.New(core))

	ctx := context.Background()
	logger.Info(ctx, "hello", "k", "v")
	logger.With("module", "test").Warn(ctx, "careful")
	logger.Error(ctx, "boom", "err", "nope")

	entries := logs.All()
	require.Len(t, entries, 3)
	require.Equal(t, "hello", entries[0].Message)
	require.Equal(t, "v", entries[0].ContextMap()["k"])
	require.Equal(t, "test", entries[1].ContextMap()["module"])
	require.Equal(t, zap.ErrorLevel, entries[2].Level)
}
