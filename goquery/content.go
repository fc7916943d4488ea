package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ratedoc"
)

// RemoveSelectors match non-content structures removed before any text is read.
var RemoveSelectors = []string{
	"script", "style", "noscript", "template",
	"nav", "header", "footer", "aside",
	"form[role=search]", ".search",
	"[role=navigation]", "[role=banner]", "[role=contentinfo]",
	".navigation", ".nav", ".menu", ".breadcrumb", ".breadcrumbs",
	".sidebar", ".header", ".footer", ".skip-link",
	".share", ".sharing", ".social", ".print", ".cookie",
}

// ContentSelectors are tried in order to locate the content region.
var ContentSelectors = []string{
	".article-content",
	"article",
	".main-content",
	"main",
	"[role=main]",
	"#content",
	".content",
	".post-content",
	".entry-content",
}

// Thresholds for the largest block heuristic.
const (
	MinBlockChars = 100
	MinBlockWords = 50
)

// BlockSelector matches the block-level candidates of the largest block heuristic.
const BlockSelector = "div, section, article, main, p, td, blockquote, ul, ol, table"

// ContentStrategy locates the content region of a cleaned document.
type ContentStrategy interface {
	// Select returns the content region, or nil if the strategy does not apply.
	Select(doc *goquery.Document) *goquery.Selection
}

// SelectorStrategy picks the first node of the first selector with a match.
type SelectorStrategy struct {
	Selectors []string
}

// Select implements ContentStrategy.
func (s SelectorStrategy) Select(doc *goquery.Document) *goquery.Selection {
	for _, selector := range s.Selectors {
		if m := doc.Find(selector); m.Length() > 0 {
			return m.First()
		}
	}
	return nil
}

// LargestBlockStrategy picks the block with the longest text among blocks
// that exceed both MinChars characters and MinWords words.
type LargestBlockStrategy struct {
	Selector string
	MinChars int
	MinWords int
}

// Select implements ContentStrategy.
func (s LargestBlockStrategy) Select(doc *goquery.Document) *goquery.Selection {
	var best *goquery.Selection
	bestLen := 0
	doc.Find("body").Find(s.Selector).Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(Text(sel))
		n := utf8.RuneCountInString(text)
		if n <= s.MinChars || len(strings.Fields(text)) <= s.MinWords {
			return
		}
		if n > bestLen {
			best, bestLen = sel, n
		}
	})
	return best
}

// BodyStrategy picks the whole body.
type BodyStrategy struct{}

// Select implements ContentStrategy.
func (BodyStrategy) Select(doc *goquery.Document) *goquery.Selection {
	if body := doc.Find("body"); body.Length() > 0 {
		return body.First()
	}
	return doc.Selection
}

// DefaultStrategies returns the content selectors, then the largest block
// heuristic, then the whole body.
func DefaultStrategies() []ContentStrategy {
	return []ContentStrategy{
		SelectorStrategy{Selectors: ContentSelectors},
		LargestBlockStrategy{Selector: BlockSelector, MinChars: MinBlockChars, MinWords: MinBlockWords},
		BodyStrategy{},
	}
}

// Ensure ContentExtractor implements ratedoc.ContentExtractor at compile time.
var _ ratedoc.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor extracts the text of a resource page by removing
// boilerplate, locating the content region and cleaning its text.
type ContentExtractor struct {
	remove     []string
	strategies []ContentStrategy
	converter  ratedoc.Converter
}

// ContentOption configures a ContentExtractor.
type ContentOption func(*ContentExtractor)

// WithStrategies replaces the region selection strategies.
func WithStrategies(strategies ...ContentStrategy) ContentOption {
	return func(e *ContentExtractor) {
		e.strategies = strategies
	}
}

// WithRemoveSelectors replaces the boilerplate selectors.
func WithRemoveSelectors(selectors ...string) ContentOption {
	return func(e *ContentExtractor) {
		e.remove = selectors
	}
}

// WithConverter renders the content region as Markdown using c instead
// of flattening it to text. If conversion fails the text is used.
func WithConverter(c ratedoc.Converter) ContentOption {
	return func(e *ContentExtractor) {
		e.converter = c
	}
}

// NewContentExtractor creates a new ContentExtractor.
func NewContentExtractor(opts ...ContentOption) *ContentExtractor {
	e := &ContentExtractor{
		remove:     RemoveSelectors,
		strategies: DefaultStrategies(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the cleaned text of the page's content region, or the
// empty string if the page has no text.
func (e *ContentExtractor) Extract(html string) (string, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return "", err
	}

	if len(e.remove) > 0 {
		doc.Find(strings.Join(e.remove, ", ")).Remove()
	}

	region := e.Region(doc)
	if region == nil {
		return "", nil
	}

	return ratedoc.CleanText(e.render(region)), nil
}

// Region returns the content region chosen by the first applicable strategy.
func (e *ContentExtractor) Region(doc *goquery.Document) *goquery.Selection {
	for _, s := range e.strategies {
		if sel := s.Select(doc); sel != nil {
			return sel
		}
	}
	return nil
}

func (e *ContentExtractor) render(region *goquery.Selection) string {
	if e.converter != nil {
		if inner, err := region.Html(); err == nil {
			if md, err := e.converter.Convert(inner); err == nil {
				return md
			}
		}
	}
	return Text(region)
}
