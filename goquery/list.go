package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ratedoc"
)

// DecisionKeywords identify decision announcements on list layout pages.
var DecisionKeywords = []string{"rentebeslutning", "rentemøte", "styringsrente"}

// MeetingResourceKeywords identify resource links on a meeting page.
var MeetingResourceKeywords = []string{"pressemelding", "innledning", "bakgrunn"}

// Compile-time interface verification.
var (
	_ ratedoc.YearParser     = (*ListParser)(nil)
	_ ratedoc.ResourceParser = (*ListParser)(nil)
)

// ListParser parses year pages of the list layout, where each decision is
// a single anchor to its meeting page.
type ListParser struct{}

// NewListParser creates a new ListParser.
func NewListParser() *ListParser {
	return &ListParser{}
}

// Layout returns ratedoc.LayoutList.
func (p *ListParser) Layout() ratedoc.Layout {
	return ratedoc.LayoutList
}

// ParseYear returns one decision per anchor whose text names a decision.
// The date comes from the anchor text; when only a month is named the day
// defaults to 1. Each decision links to the anchor's meeting page.
// Repeated dates keep the first anchor.
func (p *ListParser) ParseYear(html string, year int, pageURL string) ([]ratedoc.Decision, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}
	base, err := documentBase(doc, pageURL)
	if err != nil {
		return nil, err
	}

	var decisions []ratedoc.Decision
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		text := collapseSpace(sel.Text())
		if !containsAny(text, DecisionKeywords) {
			return
		}
		date, ok := listDate(text, year)
		if !ok {
			return
		}
		href, _ := sel.Attr("href")
		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		decisions = append(decisions, ratedoc.Decision{
			Date:  date,
			Links: []ratedoc.Link{{Text: text, URL: resolved}},
		})
	})

	return ratedoc.DedupeDecisions(decisions), nil
}

// ParseResources implements ratedoc.ResourceParser.
func (p *ListParser) ParseResources(html string, baseURL string) ([]ratedoc.Link, error) {
	return ParseMeetingResources(html, baseURL)
}

// ParseMeetingResources returns the press release, introductory statement
// and background links of a meeting page, resolved and deduplicated by URL.
func ParseMeetingResources(html string, baseURL string) ([]ratedoc.Link, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}
	base, err := documentBase(doc, baseURL)
	if err != nil {
		return nil, err
	}
	return collectLinks(doc, base, MeetingResourceKeywords), nil
}

// listDate derives the decision date of a list anchor. A month name
// without a day yields the first of the month, in the year named by the
// text or else the fallback year.
func listDate(text string, year int) (ratedoc.Date, bool) {
	if date, ok := ratedoc.ParseDate(text, year); ok {
		return date, true
	}
	month, ok := ratedoc.FindMonth(text)
	if !ok {
		return ratedoc.Date{}, false
	}
	if y, ok := ratedoc.FindYear(text); ok {
		year = y
	}
	if year == 0 {
		return ratedoc.Date{}, false
	}
	return ratedoc.Date{Year: year, Month: month, Day: 1}, true
}
