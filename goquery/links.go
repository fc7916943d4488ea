package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ratedoc"
)

// parseDocument parses html into a goquery document.
func parseDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, ratedoc.Errorf(ratedoc.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// documentBase returns the URL relative links of doc resolve against.
// A <base href> element takes precedence over pageURL.
func documentBase(doc *goquery.Document, pageURL string) (*url.URL, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, ratedoc.Errorf(ratedoc.EINVALID, "invalid base URL: %v", err)
	}
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok && href != "" {
		if ref, err := url.Parse(strings.TrimSpace(href)); err == nil {
			base = base.ResolveReference(ref)
		}
	}
	return base, nil
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed or is not an HTTP link.
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || isNonHTTPLink(href) {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") ||
		strings.HasPrefix(href, "#")
}

// containsAny reports whether text contains any keyword, ignoring case.
func containsAny(text string, keywords []string) bool {
	text = strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// collectLinks returns the anchors of doc whose text contains one of
// keywords, resolved against base and deduplicated by URL.
func collectLinks(doc *goquery.Document, base *url.URL, keywords []string) []ratedoc.Link {
	var d ratedoc.Decision
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		text := collapseSpace(sel.Text())
		if !containsAny(text, keywords) {
			return
		}
		href, _ := sel.Attr("href")
		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		d.AddLink(ratedoc.Link{Text: text, URL: resolved})
	})
	return d.Links
}
