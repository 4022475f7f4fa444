package optimize

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config selects which optimizations run. A nil section or a nil toggle means
// the matching stage is never constructed.
type Config struct {
	HTML *HTMLConfig `yaml:"html"`
	CSS  *CSSConfig  `yaml:"css"`
	JS   *JSConfig   `yaml:"js"`
}

type HTMLConfig struct {
	Minify *Toggle `yaml:"minify"`
}

type CSSConfig struct {
	Minify *Toggle `yaml:"minify"`
}

type JSConfig struct {
	Compile *Toggle `yaml:"compile"`
	Minify  *Toggle `yaml:"minify"`
	// Target is the esbuild language target for compilation (e.g., "es5", "es2017")
	Target string `yaml:"target"`
	// SimplifyComparisons enables esbuild syntax minification
	SimplifyComparisons bool `yaml:"simplifyComparisons"`
}

// Toggle is either a plain boolean or a mapping carrying exclusion globs. A
// mapping always means enabled.
type Toggle struct {
	Enabled bool
	Exclude []string
}

// Enabled returns a toggle that is on with the given exclusions.
func Enabled(exclude ...string) *Toggle {
	return &Toggle{Enabled: true, Exclude: exclude}
}

// On reports whether the toggle is present and enabled.
func (t *Toggle) On() bool {
	return t != nil && t.Enabled
}

// Excludes returns the exclusion globs, nil when the toggle is a boolean.
func (t *Toggle) Excludes() []string {
	if t == nil {
		return nil
	}
	return t.Exclude
}

func (t *Toggle) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var enabled bool
		if err := node.Decode(&enabled); err != nil {
			return fmt.Errorf("%w: line %d: expected boolean or {exclude: [...]}", ErrInvalidConfig, node.Line)
		}
		*t = Toggle{Enabled: enabled}
	case yaml.MappingNode:
		var raw struct {
			Exclude []string `yaml:"exclude"`
		}
		if err := node.Decode(&raw); err != nil {
			return fmt.Errorf("%w: line %d: exclude must be a list of strings", ErrInvalidConfig, node.Line)
		}
		*t = Toggle{Enabled: true, Exclude: raw.Exclude}
	default:
		return fmt.Errorf("%w: line %d: expected boolean or {exclude: [...]}", ErrInvalidConfig, node.Line)
	}
	return nil
}

// ParseConfig decodes a YAML (or JSON) optimizer configuration.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		if errors.Is(err, ErrInvalidConfig) {
			return Config{}, err
		}
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// LoadConfig reads the optimizer configuration from path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is supplied by the operator
	if err != nil {
		return Config{}, fmt.Errorf("read optimizer config: %w", err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
