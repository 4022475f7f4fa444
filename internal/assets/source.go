package assets

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"github.com/wolfeidau/assetopt/internal/optimize"
)

// Source walks a directory and emits one File per entry in lexical order.
type Source struct {
	root    string
	include []glob.Glob
}

// NewSource creates a source rooted at root. When include is non-empty only
// regular files matching one of the globs are emitted.
func NewSource(root string, include []string) (*Source, error) {
	s := &Source{root: root}
	for _, pattern := range include {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("include %q: %w", pattern, err)
		}
		s.include = append(s.include, g)
	}
	return s, nil
}

func (s *Source) included(rel string) bool {
	if len(s.include) == 0 {
		return true
	}
	for _, g := range s.include {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// Files sends every entry under the root to out and closes it when done.
// Directories are emitted without contents.
func (s *Source) Files(ctx context.Context, out chan<- *optimize.File) error {
	defer close(out)

	return filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		f := &optimize.File{Path: path, Relative: rel, Mode: info.Mode()}

		if !d.IsDir() {
			if !info.Mode().IsRegular() || !s.included(rel) {
				return nil
			}
			data, err := os.ReadFile(path) // #nosec G304 - path comes from walking the source root
			if err != nil {
				return fmt.Errorf("read %s: %w", rel, err)
			}
			f.Contents = data
			f.SourceSize = int64(len(data))
		}

		select {
		case out <- f:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}
