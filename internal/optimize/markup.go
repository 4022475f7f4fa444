package optimize

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	minhtml "github.com/tdewolff/minify/v2/html"
	"golang.org/x/net/html"
)

const (
	mimeCSS  = "text/css"
	mimeHTML = "text/html"
)

// HTMLOptions configures HTMLMinify.
type HTMLOptions struct {
	CollapseWhitespace bool
	RemoveComments     bool
}

// CSSOptions configures CSSMinify and CSSMinifyEmbedded. The minifier only
// runs when StripWhitespace is set.
type CSSOptions struct {
	StripWhitespace bool
}

// HTMLMinify minifies an HTML document. Document structure, quotes and
// default attribute values are kept so templates relying on them still work.
func HTMLMinify(text string, opts HTMLOptions) (string, error) {
	m := minify.New()
	m.Add(mimeHTML, &minhtml.Minifier{
		KeepWhitespace:      !opts.CollapseWhitespace,
		KeepComments:        !opts.RemoveComments,
		KeepDocumentTags:    true,
		KeepEndTags:         true,
		KeepQuotes:          true,
		KeepDefaultAttrVals: true,
	})

	out, err := m.String(mimeHTML, text)
	if err != nil {
		return "", fmt.Errorf("%w: html: %w", ErrOptimizerFailed, err)
	}
	return out, nil
}

// CSSMinify minifies a standalone stylesheet.
func CSSMinify(text string, opts CSSOptions) (string, error) {
	if !opts.StripWhitespace {
		return text, nil
	}

	out, err := cssMinifier().String(mimeCSS, text)
	if err != nil {
		return "", fmt.Errorf("%w: css: %w", ErrOptimizerFailed, err)
	}
	return out, nil
}

// CSSMinifyEmbedded minifies the body of every <style> element in an HTML
// document. All other bytes of the document are written back unchanged.
func CSSMinifyEmbedded(doc string, opts CSSOptions) (string, error) {
	if !opts.StripWhitespace {
		return doc, nil
	}

	m := cssMinifier()
	z := html.NewTokenizer(strings.NewReader(doc))

	var b bytes.Buffer
	b.Grow(len(doc))
	inStyle := false

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return b.String(), nil
			}
			return "", fmt.Errorf("%w: css in html: %w", ErrOptimizerFailed, z.Err())
		case html.TextToken:
			if !inStyle {
				b.Write(z.Raw())
				continue
			}
			out, err := m.String(mimeCSS, string(z.Raw()))
			if err != nil {
				return "", fmt.Errorf("%w: css in html: %w", ErrOptimizerFailed, err)
			}
			b.WriteString(out)
		case html.StartTagToken:
			// Raw must be copied out before TagName/TagAttr, which lowercase in place.
			b.Write(z.Raw())
			inStyle = isStylesheet(z)
		case html.EndTagToken:
			b.Write(z.Raw())
			inStyle = false
		default:
			b.Write(z.Raw())
		}
	}
}

// isStylesheet reports whether the current start tag opens a CSS <style> block.
func isStylesheet(z *html.Tokenizer) bool {
	name, hasAttr := z.TagName()
	if string(name) != "style" {
		return false
	}

	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		if string(key) == "type" {
			t := strings.TrimSpace(strings.ToLower(string(val)))
			return t == "" || t == mimeCSS
		}
	}
	return true
}

func cssMinifier() *minify.M {
	m := minify.New()
	m.Add(mimeCSS, &css.Minifier{})
	return m
}
