// Package readability implements ratedoc.ContentExtractor with
// go-readability, the Go port of Mozilla's Readability.
package readability

import (
	"fmt"
	"strings"

	"github.com/fwojciec/ratedoc"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements ratedoc.ContentExtractor at compile time.
var _ ratedoc.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the article of a resource page.
type Extractor struct {
	converter ratedoc.Converter
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConverter renders the article HTML as Markdown using c instead of
// using its text content.
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

// Extract returns the cleaned article text of rawHTML, or the empty
// string for empty input.
func (e *Extractor) Extract(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", nil
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", fmt.Errorf("readability: %w", err)
	}

	text := article.TextContent
	if e.converter != nil && article.Content != "" {
		if md, err := e.converter.Convert(article.Content); err == nil {
			text = md
		}
	}

	return ratedoc.CleanText(text), nil
}
