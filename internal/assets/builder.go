package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/wolfeidau/assetopt/internal/optimize"
)

// Build reads every source file, runs it through the pipeline and writes the
// result, then writes the manifest. Per-file optimizer failures never fail the
// build; only I/O errors do.
func (b *Builder) Build(ctx context.Context) (*Manifest, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	log := zerolog.Ctx(ctx)
	started := time.Now()

	log.Info().
		Str("source", b.config.SourceDir).
		Str("output", b.config.OutputDir).
		Strs("stages", b.pipeline.Stages()).
		Msg("Building assets")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	in := make(chan *optimize.File)
	sourceErr := make(chan error, 1)
	go func() {
		sourceErr <- b.source.Files(ctx, in)
	}()

	manifest, err := b.sink.Write(ctx, b.pipeline.Run(ctx, in))
	if err != nil {
		cancel()
		<-sourceErr
		return nil, err
	}

	if err := <-sourceErr; err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}

	if b.config.ManifestPath != "" {
		if err := writeManifest(b.config.ManifestPath, manifest); err != nil {
			return nil, err
		}
	}

	log.Info().
		Int("files", len(manifest.Files)).
		Int64("source_bytes", manifest.SourceBytes).
		Int64("output_bytes", manifest.OutputBytes).
		Dur("duration", time.Since(started)).
		Msg("Built assets")

	return manifest, nil
}

func writeManifest(path string, manifest *Manifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
