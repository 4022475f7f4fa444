package commands

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/assetopt/internal/watch"
)

type WatchCmd struct {
	OptimizeFlags `embed:""`
	AssetFlags    `embed:""`
	Debounce      time.Duration `help:"quiet period before rebuilding after a change" default:"300ms"`
}

func (w *WatchCmd) Run(ctx context.Context, globals *Globals) error {
	builder, err := newBuilder(w.OptimizeFlags, w.AssetFlags)
	if err != nil {
		return err
	}

	// An initial failure is reported but the watcher still starts so the
	// next change gets a chance to fix it.
	if _, err := builder.Build(ctx); err != nil {
		log.Error().Err(err).Msg("initial build failed")
	}

	rebuild := func(ctx context.Context) error {
		_, err := builder.Build(ctx)
		return err
	}

	return watch.New(w.Src, w.Debounce, rebuild).Run(ctx)
}
