// Package ui starts the interactive timeline viewer.
package ui

import (
	"context"

	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/store"
	"tableflip.dev/roadmap/pkg/tui/timeline"
)

type UI struct {
	View    string
	Compact bool
	Profile termenv.Profile
	Logger  *zap.Logger

	Service     *app.Service
	Persistence store.Persistence
}

func (d *UI) Do(ctx context.Context) error {
	opts := timeline.Options{
		Service: d.Service,
		Logger:  d.Logger,
		Compact: d.Compact,
		View:    d.View,
		Profile: d.Profile,
	}
	if d.Persistence != nil {
		opts.Watcher = d.Persistence
	}
	return timeline.Run(ctx, opts)
}
