package optimize

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher decides whether a stage applies to a file, based on the file
// extension and a list of exclusion globs tested against the relative path.
type Matcher struct {
	ext      string
	excludes []glob.Glob
}

// NewMatcher compiles the exclusion globs. `*` and `?` stop at `/`, `**`
// crosses it.
func NewMatcher(ext string, excludes []string) (*Matcher, error) {
	m := &Matcher{
		ext:      ext,
		excludes: make([]glob.Glob, 0, len(excludes)),
	}

	for _, pattern := range excludes {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, pattern, err)
		}
		m.excludes = append(m.excludes, g)
	}

	return m, nil
}

// Match reports whether f has the matcher's extension and no exclusion
// pattern matches its relative path.
func (m *Matcher) Match(f *File) bool {
	if f == nil || f.Relative == "" {
		return false
	}

	if !strings.HasSuffix(f.Relative, m.ext) {
		return false
	}

	for _, g := range m.excludes {
		if g.Match(f.Relative) {
			return false
		}
	}

	return true
}

// Matches is the uncompiled form of Matcher.Match. It returns false when an
// exclusion pattern fails to compile.
func Matches(f *File, ext string, opt *Toggle) bool {
	m, err := NewMatcher(ext, opt.Excludes())
	if err != nil {
		return false
	}
	return m.Match(f)
}
