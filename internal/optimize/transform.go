package optimize

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Transform applies one named optimizer to the text of a file. A failing
// optimizer never fails the build: the file is forwarded unmodified and a
// warning is logged.
type Transform struct {
	name     string
	optimize func(string) (string, error)
}

// NewTransform binds an optimizer function to its options.
func NewTransform[O any](name string, fn func(string, O) (string, error), opts O) *Transform {
	return &Transform{
		name: name,
		optimize: func(text string) (string, error) {
			return fn(text, opts)
		},
	}
}

// Name returns the optimizer name used in log output.
func (t *Transform) Name() string {
	return t.name
}

// Apply optimizes f in place and returns it. Null files are returned as is.
func (t *Transform) Apply(ctx context.Context, f *File) *File {
	if f.IsNull() {
		return f
	}

	out, err := t.run(string(f.Contents))
	if err != nil {
		zerolog.Ctx(ctx).Warn().
			Str("optimizer", t.name).
			Str("path", f.Path).
			Err(err).
			Msg("unable to optimize file, passing through unmodified")
		return f
	}

	f.Contents = []byte(out)
	return f
}

// run calls the optimizer, converting panics raised by a collaborator into
// errors so they are handled the same way as returned failures.
func (t *Transform) run(text string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: panic: %v", ErrOptimizerFailed, t.name, r)
		}
	}()

	return t.optimize(text)
}
