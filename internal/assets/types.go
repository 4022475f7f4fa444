package assets

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/wolfeidau/assetopt/internal/optimize"
)

// ErrOutputInsideSource is returned when the output directory would be walked
// as part of the sources.
var ErrOutputInsideSource = errors.New("output directory must not be inside the source directory")

// Manifest describes the files written by a build.
type Manifest struct {
	Files       []Entry `json:"files"`
	SourceBytes int64   `json:"sourceBytes"`
	OutputBytes int64   `json:"outputBytes"`
}

type Entry struct {
	Path       string `json:"path"`
	SourceSize int64  `json:"sourceSize"`
	Size       int64  `json:"size"`
	GzipSize   int64  `json:"gzipSize,omitempty"`
}

// Builder reads sources, runs them through the optimizer pipeline and writes
// the results.
type Builder struct {
	config   Config
	pipeline *optimize.Pipeline
	source   *Source
	sink     *Sink
	mu       sync.Mutex
}

// New creates a builder for config using the given pipeline
func New(config Config, pipeline *optimize.Pipeline) (*Builder, error) {
	src, err := filepath.Abs(config.SourceDir)
	if err != nil {
		return nil, err
	}
	out, err := filepath.Abs(config.OutputDir)
	if err != nil {
		return nil, err
	}

	if rel, err := filepath.Rel(src, out); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("%w: %s", ErrOutputInsideSource, config.OutputDir)
	}

	source, err := NewSource(src, config.Include)
	if err != nil {
		return nil, err
	}

	return &Builder{
		config:   config,
		pipeline: pipeline,
		source:   source,
		sink:     NewSink(out, config.Gzip, config.GzipMinSize),
	}, nil
}
