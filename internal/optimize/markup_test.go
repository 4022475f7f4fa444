package optimize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTMLMinify(t *testing.T) {
	src := "<!DOCTYPE html>\n<html>\n  <body>\n    <!-- navigation -->\n    <p>Hello     world</p>\n  </body>\n</html>\n"

	out, err := HTMLMinify(src, HTMLOptions{CollapseWhitespace: true, RemoveComments: true})
	require.NoError(t, err)
	require.NotContains(t, out, "<!--")
	require.NotContains(t, out, "navigation")
	require.NotContains(t, out, "\n    ")
	require.Contains(t, out, "<p>Hello world</p>")
	require.Less(t, len(out), len(src))
}

func TestHTMLMinify_keepComments(t *testing.T) {
	out, err := HTMLMinify("<div><!-- keep --><p>a</p></div>", HTMLOptions{CollapseWhitespace: true})
	require.NoError(t, err)
	require.Contains(t, out, "<!-- keep -->")
}

func TestCSSMinify(t *testing.T) {
	src := "body {\n  margin: 0;\n  padding: 0;\n}\n"

	out, err := CSSMinify(src, CSSOptions{StripWhitespace: true})
	require.NoError(t, err)
	require.Equal(t, "body{margin:0;padding:0}", out)
}

func TestCSSMinify_gatedOnStripWhitespace(t *testing.T) {
	src := "body {\n  margin: 0;\n}\n"

	out, err := CSSMinify(src, CSSOptions{})
	require.NoError(t, err)
	require.Equal(t, src, out)

	out, err = CSSMinifyEmbedded("<style>\n  a { color: red; }\n</style>", CSSOptions{})
	require.NoError(t, err)
	require.Equal(t, "<style>\n  a { color: red; }\n</style>", out)
}

func TestCSSMinifyEmbedded(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{
			name: "inline style block",
			src: "<html><head><style>\n  body {\n    color: red;\n  }\n</style></head>" +
				"<body>\n  <p>  keep   me </p>\n</body></html>",
			expected: "<html><head><style>body{color:red}</style></head>" +
				"<body>\n  <p>  keep   me </p>\n</body></html>",
		},
		{
			name:     "explicit css type",
			src:      "<style type=\"text/css\">\n a { color: blue; }\n</style>",
			expected: "<style type=\"text/css\">a{color:blue}</style>",
		},
		{
			name:     "upper case tag keeps its case",
			src:      "<STYLE>\n a { color: blue; }\n</STYLE>",
			expected: "<STYLE>a{color:blue}</STYLE>",
		},
		{
			name:     "non css style block untouched",
			src:      "<style type=\"text/less\">\n @c: red;\n</style>",
			expected: "<style type=\"text/less\">\n @c: red;\n</style>",
		},
		{
			name:     "empty style block",
			src:      "<style></style><p> x </p>",
			expected: "<style></style><p> x </p>",
		},
		{
			name:     "no style block",
			src:      "<!-- c -->\n<div class=\"a  b\">\n  text\n</div>\n",
			expected: "<!-- c -->\n<div class=\"a  b\">\n  text\n</div>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := CSSMinifyEmbedded(tt.src, CSSOptions{StripWhitespace: true})
			require.NoError(t, err)
			require.Equal(t, tt.expected, out)
		})
	}
}
