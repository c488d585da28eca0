package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupLogger(t *testing.T) {
	ctx := context.Background()

	prod := setupLogger("prod")
	assert.False(t, prod.Enabled(ctx, slog.LevelDebug))
	assert.True(t, prod.Enabled(ctx, slog.LevelInfo))
	assert.IsType(t, &slog.JSONHandler{}, prod.Handler())

	staging := setupLogger("staging")
	assert.True(t, staging.Enabled(ctx, slog.LevelDebug))
	assert.IsType(t, &slog.JSONHandler{}, staging.Handler())

	dev := setupLogger("anything")
	assert.True(t, dev.Enabled(ctx, slog.LevelDebug))
	assert.IsType(t, &slog.TextHandler{}, dev.Handler())
}
