package goquery

import (
	"unicode/utf8"

	"github.com/fwojciec/ratedoc"
)

// MaxHeadingLength is the rune length below which element text can be a
// date heading. Date headings are terse ("27. januar").
const MaxHeadingLength = 50

// ResourceLabels are the link texts of decision resources on chronicle
// pages. An anchor qualifies when its text contains one of them, which
// also covers the full "Innledning til pressekonferanse (bakgrunn for
// rentebeslutningen)".
var ResourceLabels = []string{"Pressemelding", "Innledning"}

// headingTags are the tags a date heading may use. Short dates inside
// <div>, <span> or <p> are ignored since body text often mentions dates.
var headingTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"strong": true, "b": true,
}

// Ensure ChronicleParser implements ratedoc.YearParser at compile time.
var _ ratedoc.YearParser = (*ChronicleParser)(nil)

// ChronicleParser parses year pages of the chronicle layout, where each
// decision is a date heading followed by its resource links.
type ChronicleParser struct{}

// NewChronicleParser creates a new ChronicleParser.
func NewChronicleParser() *ChronicleParser {
	return &ChronicleParser{}
}

// Layout returns ratedoc.LayoutChronicle.
func (p *ChronicleParser) Layout() ratedoc.Layout {
	return ratedoc.LayoutChronicle
}

type dateHeading struct {
	index int
	date  ratedoc.Date
}

// ParseYear scans the page in document order. Every date heading opens a
// window that ends at the next date heading; anchors in the window whose
// text matches a resource label become the links of that heading's
// decision. Headings without links are dropped and repeated dates keep
// the first decision.
func (p *ChronicleParser) ParseYear(html string, year int, pageURL string) ([]ratedoc.Decision, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}
	base, err := documentBase(doc, pageURL)
	if err != nil {
		return nil, err
	}

	elements := Elements(doc.Find("body"))

	var headings []dateHeading
	for _, el := range elements {
		if date, ok := headingDate(el, year); ok {
			headings = append(headings, dateHeading{index: el.Index, date: date})
		}
	}

	decisions := make([]ratedoc.Decision, 0, len(headings))
	for i, h := range headings {
		end := len(elements)
		if i+1 < len(headings) {
			end = headings[i+1].index
		}

		d := ratedoc.Decision{Date: h.date}
		for _, el := range elements[h.index+1 : end] {
			if el.Tag != "a" {
				continue
			}
			text := el.Text()
			if !containsAny(text, ResourceLabels) {
				continue
			}
			href, _ := el.Attr("href")
			resolved := resolveURL(base, href)
			if resolved == "" {
				continue
			}
			d.AddLink(ratedoc.Link{Text: text, URL: resolved})
		}
		decisions = append(decisions, d)
	}

	return ratedoc.DedupeDecisions(decisions), nil
}

// headingDate returns the date of el if it is a date heading.
func headingDate(el Element, year int) (ratedoc.Date, bool) {
	if !headingTags[el.Tag] {
		return ratedoc.Date{}, false
	}
	text := el.Text()
	if n := utf8.RuneCountInString(text); n == 0 || n >= MaxHeadingLength {
		return ratedoc.Date{}, false
	}
	return ratedoc.ParseDate(text, year)
}
