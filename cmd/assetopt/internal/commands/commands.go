package commands

import (
	"github.com/wolfeidau/assetopt/internal/assets"
	"github.com/wolfeidau/assetopt/internal/optimize"
)

type Globals struct {
	Debug   bool
	Version string
}

// OptimizeFlags select the optimizer stages. Stage flags enable a stage on
// top of whatever the config file says.
type OptimizeFlags struct {
	Config     string `help:"optimizer config file (YAML or JSON)" type:"existingfile" env:"ASSETOPT_CONFIG"`
	HTMLMinify bool   `name:"html-minify" help:"minify HTML files" env:"ASSETOPT_HTML_MINIFY"`
	CSSMinify  bool   `name:"css-minify" help:"minify CSS files and inline style blocks" env:"ASSETOPT_CSS_MINIFY"`
	JSCompile  bool   `name:"js-compile" help:"compile JS files to the configured target" env:"ASSETOPT_JS_COMPILE"`
	JSMinify   bool   `name:"js-minify" help:"minify JS files" env:"ASSETOPT_JS_MINIFY"`
	JSTarget   string `name:"js-target" help:"JS compile target (es5, es2015 ... esnext), overrides the config file" env:"ASSETOPT_JS_TARGET"`
}

// AssetFlags locate the sources and outputs.
type AssetFlags struct {
	Src         string   `help:"source directory" default:"src" env:"ASSETOPT_SRC"`
	Out         string   `help:"output directory" default:"build" env:"ASSETOPT_OUT"`
	Manifest    string   `help:"path of the JSON build manifest, empty to skip" default:"" env:"ASSETOPT_MANIFEST"`
	Include     []string `help:"only copy files matching these globs (relative to --src)" env:"ASSETOPT_INCLUDE"`
	Gzip        bool     `help:"write precompressed .gz files next to text assets" env:"ASSETOPT_GZIP"`
	GzipMinSize int64    `help:"minimum size in bytes for precompression" default:"1024"`
}

func (f *OptimizeFlags) load() (optimize.Config, error) {
	var cfg optimize.Config
	if f.Config != "" {
		var err error
		cfg, err = optimize.LoadConfig(f.Config)
		if err != nil {
			return optimize.Config{}, err
		}
	}

	if f.HTMLMinify {
		if cfg.HTML == nil {
			cfg.HTML = &optimize.HTMLConfig{}
		}
		cfg.HTML.Minify = enable(cfg.HTML.Minify)
	}
	if f.CSSMinify {
		if cfg.CSS == nil {
			cfg.CSS = &optimize.CSSConfig{}
		}
		cfg.CSS.Minify = enable(cfg.CSS.Minify)
	}
	if f.JSCompile || f.JSMinify || f.JSTarget != "" {
		if cfg.JS == nil {
			cfg.JS = &optimize.JSConfig{}
		}
		if f.JSCompile {
			cfg.JS.Compile = enable(cfg.JS.Compile)
		}
		if f.JSMinify {
			cfg.JS.Minify = enable(cfg.JS.Minify)
		}
		if f.JSTarget != "" {
			cfg.JS.Target = f.JSTarget
		}
	}

	return cfg, nil
}

// enable turns t on, keeping any exclusions from the config file.
func enable(t *optimize.Toggle) *optimize.Toggle {
	if t == nil {
		return optimize.Enabled()
	}
	return optimize.Enabled(t.Exclude...)
}

func newBuilder(of OptimizeFlags, af AssetFlags) (*assets.Builder, error) {
	cfg, err := of.load()
	if err != nil {
		return nil, err
	}

	pipeline, err := optimize.Build(cfg)
	if err != nil {
		return nil, err
	}

	return assets.New(assets.Config{
		SourceDir:    af.Src,
		OutputDir:    af.Out,
		Include:      af.Include,
		ManifestPath: af.Manifest,
		Gzip:         af.Gzip,
		GzipMinSize:  af.GzipMinSize,
	}, pipeline)
}
