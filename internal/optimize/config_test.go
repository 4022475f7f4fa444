package optimize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
html:
  minify: true
css:
  minify:
    exclude:
      - "themes/**"
js:
  compile: false
  minify:
    exclude: ["vendor/**", "*.min.js"]
  target: es2017
`))
	require.NoError(t, err)

	require.True(t, cfg.HTML.Minify.On())
	require.Empty(t, cfg.HTML.Minify.Excludes())

	require.True(t, cfg.CSS.Minify.On())
	require.Equal(t, []string{"themes/**"}, cfg.CSS.Minify.Excludes())

	require.False(t, cfg.JS.Compile.On())
	require.True(t, cfg.JS.Minify.On())
	require.Equal(t, []string{"vendor/**", "*.min.js"}, cfg.JS.Minify.Excludes())
	require.Equal(t, "es2017", cfg.JS.Target)
}

func TestParseConfig_json(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{"js": {"compile": true, "minify": {"exclude": ["vendor/**"]}}}`))
	require.NoError(t, err)

	require.Nil(t, cfg.HTML)
	require.Nil(t, cfg.CSS)
	require.True(t, cfg.JS.Compile.On())
	require.Equal(t, []string{"vendor/**"}, cfg.JS.Minify.Excludes())
}

func TestParseConfig_missingKeys(t *testing.T) {
	cfg, err := ParseConfig([]byte("js: {}\n"))
	require.NoError(t, err)

	require.NotNil(t, cfg.JS)
	require.Nil(t, cfg.JS.Compile)
	require.False(t, cfg.JS.Compile.On())
	require.Nil(t, cfg.JS.Compile.Excludes())
}

func TestParseConfig_invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "string toggle", doc: "js:\n  compile: \"yes please\"\n"},
		{name: "list toggle", doc: "js:\n  compile: [a, b]\n"},
		{name: "scalar exclude", doc: "css:\n  minify:\n    exclude: 5\n"},
		{name: "malformed yaml", doc: "html: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.doc))
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "optimize.yaml")
	require.NoError(t, os.WriteFile(path, []byte("html:\n  minify: true\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.True(t, cfg.HTML.Minify.On())

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
