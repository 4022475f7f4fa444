package assets

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"
	"github.com/wolfeidau/assetopt/internal/optimize"
)

var compressible = map[string]bool{
	".html": true,
	".css":  true,
	".js":   true,
	".json": true,
	".svg":  true,
	".map":  true,
	".txt":  true,
}

// Sink writes files under an output directory.
type Sink struct {
	root        string
	gzip        bool
	gzipMinSize int64
}

func NewSink(root string, gzip bool, gzipMinSize int64) *Sink {
	return &Sink{root: root, gzip: gzip, gzipMinSize: gzipMinSize}
}

// Write consumes in until it is closed, writing every file and recording it
// in the returned manifest. The first write error stops consumption.
func (s *Sink) Write(ctx context.Context, in <-chan *optimize.File) (*Manifest, error) {
	manifest := &Manifest{Files: []Entry{}}

	for f := range in {
		dest := filepath.Join(s.root, filepath.FromSlash(f.Relative))

		if f.IsDir() {
			if err := os.MkdirAll(dest, 0o750); err != nil {
				return nil, err
			}
			continue
		}
		if f.IsNull() {
			continue
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
			return nil, err
		}
		if err := os.WriteFile(dest, f.Contents, filePerm(f)); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.Relative, err)
		}

		entry := Entry{
			Path:       f.Relative,
			SourceSize: f.SourceSize,
			Size:       int64(len(f.Contents)),
		}

		if s.shouldCompress(f) {
			size, err := writeGzip(dest+".gz", f.Contents)
			if err != nil {
				return nil, fmt.Errorf("compress %s: %w", f.Relative, err)
			}
			entry.GzipSize = size
		}

		zerolog.Ctx(ctx).Debug().
			Str("file", f.Relative).
			Int64("source_size", entry.SourceSize).
			Int64("size", entry.Size).
			Msg("Built file")

		manifest.Files = append(manifest.Files, entry)
		manifest.SourceBytes += entry.SourceSize
		manifest.OutputBytes += entry.Size
	}

	return manifest, nil
}

func (s *Sink) shouldCompress(f *optimize.File) bool {
	return s.gzip && int64(len(f.Contents)) >= s.gzipMinSize && compressible[path.Ext(f.Relative)]
}

func writeGzip(dest string, data []byte) (int64, error) {
	var buf bytes.Buffer

	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return 0, err
	}
	if _, err := zw.Write(data); err != nil {
		return 0, err
	}
	if err := zw.Close(); err != nil {
		return 0, err
	}

	if err := os.WriteFile(dest, buf.Bytes(), 0o600); err != nil {
		return 0, err
	}
	return int64(buf.Len()), nil
}

func filePerm(f *optimize.File) os.FileMode {
	if perm := f.Mode.Perm(); perm != 0 {
		return perm
	}
	return 0o600
}
