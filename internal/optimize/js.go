package optimize

import (
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// DefaultJSExcludes protects the webcomponents polyfill shim, whose syntax must
// survive untouched, from both JS stages.
var DefaultJSExcludes = []string{
	"webcomponentsjs/webcomponents-lite.js",
	"**/webcomponentsjs/webcomponents-lite.js",
}

var targets = map[string]api.Target{
	"es5":    api.ES5,
	"es2015": api.ES2015,
	"es2016": api.ES2016,
	"es2017": api.ES2017,
	"es2018": api.ES2018,
	"es2019": api.ES2019,
	"es2020": api.ES2020,
	"es2021": api.ES2021,
	"es2022": api.ES2022,
	"esnext": api.ESNext,
}

// ParseTarget resolves an esbuild language target name, defaulting to ES5.
func ParseTarget(name string) (api.Target, error) {
	if name == "" {
		return api.ES5, nil
	}
	target, ok := targets[strings.ToLower(name)]
	if !ok {
		return api.DefaultTarget, fmt.Errorf("%w: unknown js target %q", ErrInvalidConfig, name)
	}
	return target, nil
}

// CompileOptions configures JSCompile.
type CompileOptions struct {
	Target  api.Target
	Renamer *Renamer
}

// MinifyOptions configures JSMinify.
type MinifyOptions struct {
	// SimplifyComparisons turns on esbuild syntax minification, which among
	// other things rewrites strict comparisons into loose ones.
	SimplifyComparisons bool
	Renamer             *Renamer
}

// JSCompile lowers modern syntax to opts.Target. Module syntax is left as is
// and dynamic import() is always passed through.
func JSCompile(text string, opts CompileOptions) (string, error) {
	result := api.Transform(text, api.TransformOptions{
		Loader: api.LoaderJS,
		Target: opts.Target,
		Format: api.FormatDefault,
		Supported: map[string]bool{
			"dynamic-import": true,
		},
	})
	if len(result.Errors) > 0 {
		return "", transformError("compile", result.Errors)
	}

	return rename(opts.Renamer, string(result.Code)), nil
}

// JSMinify minifies whitespace and local identifiers without lowering syntax.
func JSMinify(text string, opts MinifyOptions) (string, error) {
	result := api.Transform(text, api.TransformOptions{
		Loader:            api.LoaderJS,
		Target:            api.ESNext,
		Format:            api.FormatDefault,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      opts.SimplifyComparisons,
	})
	if len(result.Errors) > 0 {
		return "", transformError("minify", result.Errors)
	}

	return rename(opts.Renamer, string(result.Code)), nil
}

func rename(r *Renamer, code string) string {
	if r == nil {
		return code
	}
	return r.Rename(code)
}

func transformError(op string, msgs []api.Message) error {
	msg := msgs[0]

	var b strings.Builder
	b.WriteString(op)
	b.WriteString(": ")
	if msg.Location != nil {
		fmt.Fprintf(&b, "%d:%d: ", msg.Location.Line, msg.Location.Column)
	}
	b.WriteString(msg.Text)
	if len(msgs) > 1 {
		fmt.Fprintf(&b, " (and %d more)", len(msgs)-1)
	}

	return fmt.Errorf("%w: %s", ErrOptimizerFailed, b.String())
}
