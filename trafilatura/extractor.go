// Package trafilatura implements ratedoc.ContentExtractor with
// go-trafilatura's main-content detection.
package trafilatura

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fwojciec/ratedoc"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements ratedoc.ContentExtractor at compile time.
var _ ratedoc.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract the main content of a
// resource page.
type Extractor struct {
	converter ratedoc.Converter
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConverter renders the content node as Markdown using c instead of
// using trafilatura's plain text.
func WithConverter(c ratedoc.Converter) Option {
	return func(e *Extractor) {
		e.converter = c
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the cleaned main text of rawHTML, or the empty string
// for empty input.
func (e *Extractor) Extract(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", nil
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", fmt.Errorf("trafilatura: %w", err)
	}

	text := result.ContentText
	if e.converter != nil && result.ContentNode != nil {
		if md, err := e.markdown(result.ContentNode); err == nil {
			text = md
		}
	}

	return ratedoc.CleanText(text), nil
}

func (e *Extractor) markdown(n *html.Node) (string, error) {
	rendered, err := renderNode(n)
	if err != nil {
		return "", err
	}
	return e.converter.Convert(rendered)
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
