package commands

import (
	"context"

	"github.com/rs/zerolog/log"
)

type BuildCmd struct {
	OptimizeFlags `embed:""`
	AssetFlags    `embed:""`
}

func (b *BuildCmd) Run(ctx context.Context, globals *Globals) error {
	builder, err := newBuilder(b.OptimizeFlags, b.AssetFlags)
	if err != nil {
		return err
	}

	manifest, err := builder.Build(ctx)
	if err != nil {
		return err
	}

	log.Debug().Str("version", globals.Version).Int("files", len(manifest.Files)).Msg("Build complete")
	return nil
}
