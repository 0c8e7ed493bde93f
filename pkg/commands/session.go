package commands

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/logging"
	"tableflip.dev/roadmap/pkg/store"
	"tableflip.dev/roadmap/pkg/viewport"
)

// session is the loaded roadmap behind one command invocation.
type session struct {
	Settings    *store.Settings
	Persistence store.Persistence
	Service     *app.Service
	Log         *zap.Logger
}

func openSession(ctx context.Context) (*session, error) {
	settings, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	log := logging.Must(debug || settings.Debug)
	p, err := store.Load(settings)
	if err != nil {
		return nil, err
	}
	svc := app.New(app.Options{
		KV:     p,
		Logger: log,
		Viewport: viewport.Config{
			DayWidth: settings.DayWidth,
			MinZoom:  settings.MinZoom,
			MaxZoom:  settings.MaxZoom,
		},
		UndoDepth:     settings.UndoDepth,
		AutosaveDelay: settings.AutosaveDelay,
		Locale:        settings.Locale,
	})
	if err := svc.Load(ctx); err != nil {
		return nil, err
	}
	log.Debug("session opened", zap.String("path", settings.Path))
	return &session{
		Settings:    settings,
		Persistence: p,
		Service:     svc,
		Log:         log,
	}, nil
}

// Close writes pending changes.
func (s *session) Close() error {
	defer func() { _ = s.Log.Sync() }()
	if err := s.Service.Close(); err != nil && !errors.Is(err, app.ErrNoPersistence) {
		return err
	}
	return nil
}

// withSession opens a session, runs fn and flushes, reporting the first error.
func withSession(fn func(ctx context.Context, s *session) error) error {
	ctx := context.Background()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	err = fn(ctx, s)
	if cerr := s.Close(); err == nil {
		err = cerr
	}
	return err
}
