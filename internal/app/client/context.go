package client

import (
	"context"
	"errors"
)

type appKey struct{}

var ErrNoApp = errors.New("приложение не инициализировано")

// WithApp кладет приложение в контекст команды.
func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

func FromContext(ctx context.Context) (*App, error) {
	app, ok := ctx.Value(appKey{}).(*App)
	if !ok || app == nil {
		return nil, ErrNoApp
	}
	return app, nil
}
