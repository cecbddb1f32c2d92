package health

import (
	"context"
	"errors"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

func TestHandler_healthCheck(t *testing.T) {
	tests := []struct {
		name             string
		db               Pinger
		expectedStatus   string
		expectedDatabase string
		wantErr          bool
	}{
		{
			name:           "without database",
			expectedStatus: "OK",
		},
		{
			name:             "database reachable",
			db:               pingerFunc(func(context.Context) error { return nil }),
			expectedStatus:   "OK",
			expectedDatabase: "OK",
		},
		{
			name:    "database down",
			db:      pingerFunc(func(context.Context) error { return errors.New("connection refused") }),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			handler := NewHandler(tt.db, slog.Default(), huma.Middlewares{})

			// Act
			output, err := handler.healthCheck(context.Background(), &Input{})

			// Assert
			if tt.wantErr {
				var se huma.StatusError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, 503, se.GetStatus())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, output.Body.Status)
			assert.Equal(t, tt.expectedDatabase, output.Body.Database)
		})
	}
}

func TestNewHandler(t *testing.T) {
	// Arrange
	log := slog.Default()
	middleware := huma.Middlewares{}

	// Act
	handler := NewHandler(nil, log, middleware)

	// Assert
	assert.NotNil(t, handler)
	assert.NotNil(t, handler.log)
	assert.NotNil(t, handler.middleware)
}
