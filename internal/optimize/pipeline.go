package optimize

import (
	"context"
	"fmt"
	"slices"
)

// Stage names, in pipeline order.
const (
	StageJSCompile         = "js-compile"
	StageHTMLMinify        = "html-minify"
	StageCSSMinify         = "css-minify"
	StageCSSMinifyEmbedded = "css-minify-embedded"
	StageJSMinify          = "js-minify"
)

// Optimizers are the collaborator functions the stages call.
type Optimizers struct {
	HTMLMinify        func(string, HTMLOptions) (string, error)
	CSSMinify         func(string, CSSOptions) (string, error)
	CSSMinifyEmbedded func(string, CSSOptions) (string, error)
	JSCompile         func(string, CompileOptions) (string, error)
	JSMinify          func(string, MinifyOptions) (string, error)
}

// DefaultOptimizers returns the esbuild and tdewolff/minify backed optimizers.
func DefaultOptimizers() Optimizers {
	return Optimizers{
		HTMLMinify:        HTMLMinify,
		CSSMinify:         CSSMinify,
		CSSMinifyEmbedded: CSSMinifyEmbedded,
		JSCompile:         JSCompile,
		JSMinify:          JSMinify,
	}
}

// Stage pairs a matcher with the transform it gates.
type Stage struct {
	name      string
	matcher   *Matcher
	transform *Transform
}

func (s Stage) Name() string {
	return s.name
}

// Process applies the transform when the matcher accepts f, otherwise returns
// f untouched.
func (s Stage) Process(ctx context.Context, f *File) *File {
	if !s.matcher.Match(f) {
		return f
	}
	return s.transform.Apply(ctx, f)
}

// Pipeline is the ordered list of stages built from a Config.
type Pipeline struct {
	stages []Stage
}

type buildOptions struct {
	ids        IDFunc
	optimizers Optimizers
}

// Option customises Build.
type Option func(*buildOptions)

// WithIDFunc sets the generator for template helper suffixes.
func WithIDFunc(ids IDFunc) Option {
	return func(o *buildOptions) {
		o.ids = ids
	}
}

// WithOptimizers replaces the collaborator functions. Nil fields keep the
// defaults.
func WithOptimizers(opt Optimizers) Option {
	return func(o *buildOptions) {
		if opt.HTMLMinify != nil {
			o.optimizers.HTMLMinify = opt.HTMLMinify
		}
		if opt.CSSMinify != nil {
			o.optimizers.CSSMinify = opt.CSSMinify
		}
		if opt.CSSMinifyEmbedded != nil {
			o.optimizers.CSSMinifyEmbedded = opt.CSSMinifyEmbedded
		}
		if opt.JSCompile != nil {
			o.optimizers.JSCompile = opt.JSCompile
		}
		if opt.JSMinify != nil {
			o.optimizers.JSMinify = opt.JSMinify
		}
	}
}

// Build assembles the stages enabled by cfg in their fixed order: compile,
// HTML minify, CSS minify (standalone then embedded), JS minify. Disabled
// stages are not constructed at all.
func Build(cfg Config, opts ...Option) (*Pipeline, error) {
	o := buildOptions{
		ids:        NewID,
		optimizers: DefaultOptimizers(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	p := &Pipeline{}
	renamer := NewRenamer(DefaultHelperPrefix, o.ids)

	add := func(name, ext string, excludes []string, t *Transform) error {
		m, err := NewMatcher(ext, excludes)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		p.stages = append(p.stages, Stage{name: name, matcher: m, transform: t})
		return nil
	}

	if cfg.JS != nil && cfg.JS.Compile.On() {
		target, err := ParseTarget(cfg.JS.Target)
		if err != nil {
			return nil, err
		}
		t := NewTransform(StageJSCompile, o.optimizers.JSCompile, CompileOptions{
			Target:  target,
			Renamer: renamer,
		})
		if err := add(StageJSCompile, ".js", jsExcludes(cfg.JS.Compile), t); err != nil {
			return nil, err
		}
	}

	if cfg.HTML != nil && cfg.HTML.Minify.On() {
		t := NewTransform(StageHTMLMinify, o.optimizers.HTMLMinify, HTMLOptions{
			CollapseWhitespace: true,
			RemoveComments:     true,
		})
		if err := add(StageHTMLMinify, ".html", cfg.HTML.Minify.Excludes(), t); err != nil {
			return nil, err
		}
	}

	if cfg.CSS != nil && cfg.CSS.Minify.On() {
		cssOpts := CSSOptions{StripWhitespace: true}
		excludes := cfg.CSS.Minify.Excludes()
		if err := add(StageCSSMinify, ".css", excludes,
			NewTransform(StageCSSMinify, o.optimizers.CSSMinify, cssOpts)); err != nil {
			return nil, err
		}
		if err := add(StageCSSMinifyEmbedded, ".html", excludes,
			NewTransform(StageCSSMinifyEmbedded, o.optimizers.CSSMinifyEmbedded, cssOpts)); err != nil {
			return nil, err
		}
	}

	// Minify last so it sees the compiled form of the code.
	if cfg.JS != nil && cfg.JS.Minify.On() {
		t := NewTransform(StageJSMinify, o.optimizers.JSMinify, MinifyOptions{
			SimplifyComparisons: cfg.JS.SimplifyComparisons,
			Renamer:             renamer,
		})
		if err := add(StageJSMinify, ".js", jsExcludes(cfg.JS.Minify), t); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func jsExcludes(t *Toggle) []string {
	return append(slices.Clone(DefaultJSExcludes), t.Excludes()...)
}

// Stages returns the stage names in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, 0, len(p.stages))
	for _, s := range p.stages {
		names = append(names, s.name)
	}
	return names
}

// Process runs f through every stage in order.
func (p *Pipeline) Process(ctx context.Context, f *File) *File {
	for _, s := range p.stages {
		f = s.Process(ctx, f)
	}
	return f
}

// Run processes files from in one at a time, preserving arrival order. The
// returned channel is closed once in is drained or ctx is done.
func (p *Pipeline) Run(ctx context.Context, in <-chan *File) <-chan *File {
	out := make(chan *File)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case f, ok := <-in:
				if !ok {
					return
				}
				f = p.Process(ctx, f)
				select {
				case out <- f:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
