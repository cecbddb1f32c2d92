package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"shiftbill/internal/app/server/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		env           string
		expectedLevel slog.Level
	}{
		{
			name:          "local environment",
			env:           config.EnvLocal,
			expectedLevel: slog.LevelDebug,
		},
		{
			name:          "dev environment",
			env:           config.EnvDev,
			expectedLevel: slog.LevelDebug,
		},
		{
			name:          "prod environment",
			env:           config.EnvProd,
			expectedLevel: slog.LevelInfo,
		},
		{
			name:          "unknown environment falls back to prod",
			env:           "staging",
			expectedLevel: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.env)
			require.NotNil(t, logger)
			ctx := context.Background()
			assert.Equal(t, tt.expectedLevel <= slog.LevelDebug, logger.Enabled(ctx, slog.LevelDebug))
			assert.True(t, logger.Enabled(ctx, slog.LevelInfo))
		})
	}
}

func TestSetupPrettySlog(t *testing.T) {
	logger := setupPrettySlog()
	require.NotNil(t, logger)

	ctx := context.Background()
	assert.True(t, logger.Enabled(ctx, slog.LevelDebug))
	_, ok := logger.Handler().(*PrettyHandler)
	assert.True(t, ok)
}

func TestPrettyHandler_Output(t *testing.T) {
	var buf bytes.Buffer
	h := PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelInfo}}.NewPrettyHandler(&buf)
	log := slog.New(h).With("component", "test")

	log.Debug("hidden")
	log.Info("invoice saved", "request_id", "req-1")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "invoice saved")
	assert.Contains(t, out, `"component": "test"`)
	assert.Contains(t, out, `"request_id": "req-1"`)
}

func TestPrettyHandler_Group(t *testing.T) {
	var buf bytes.Buffer
	h := PrettyHandlerOptions{}.NewPrettyHandler(&buf)

	slog.New(h).WithGroup("http").Info("request", "status", 200)

	assert.Contains(t, buf.String(), `"http.status": 200`)
}
