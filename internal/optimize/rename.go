package optimize

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// DefaultHelperPrefix is the name compilers give the variable caching a
// tagged template object.
const DefaultHelperPrefix = "_templateObject"

// IDFunc returns a fresh identifier-safe token on every call.
type IDFunc func() string

// NewID returns a random UUID without hyphens.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Renamer appends a per-call random suffix to template helper identifiers so
// that separately compiled files do not share the helper once concatenated.
type Renamer struct {
	pattern *regexp.Regexp
	ids     IDFunc
}

// NewRenamer matches prefix followed by optional digits, delimited by word
// boundaries. A nil ids uses NewID.
func NewRenamer(prefix string, ids IDFunc) *Renamer {
	if ids == nil {
		ids = NewID
	}

	return &Renamer{
		pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(prefix) + `\d*\b`),
		ids:     ids,
	}
}

// Rename rewrites every helper identifier in text with one suffix shared by
// all occurrences.
func (r *Renamer) Rename(text string) string {
	if !r.pattern.MatchString(text) {
		return text
	}

	suffix := "_" + strings.ReplaceAll(r.ids(), "-", "")

	return r.pattern.ReplaceAllStringFunc(text, func(ident string) string {
		return ident + suffix
	})
}
