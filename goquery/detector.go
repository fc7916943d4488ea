package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ratedoc"
)

// anyYear lets date headings without a year match during detection.
const anyYear = 1

// Ensure Detector implements ratedoc.LayoutDetector at compile time.
var _ ratedoc.LayoutDetector = (*Detector)(nil)

// Detector identifies the layout of a year index page from its markup.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes html and returns the identified layout.
//
// Checks, in order:
//   - chronicle: a date heading followed later by a resource label anchor
//   - list: an anchor naming a decision with a derivable date
//   - list: a script-rendered application shell with no text yet
func (d *Detector) Detect(html string) ratedoc.Layout {
	doc, err := parseDocument(html)
	if err != nil {
		return ratedoc.LayoutUnknown
	}

	if d.hasChronicleMarkers(doc) {
		return ratedoc.LayoutChronicle
	}
	if d.hasListMarkers(doc) {
		return ratedoc.LayoutList
	}
	if d.isAppShell(doc) {
		return ratedoc.LayoutList
	}
	return ratedoc.LayoutUnknown
}

// hasChronicleMarkers checks for a date heading with a resource link after it.
func (d *Detector) hasChronicleMarkers(doc *goquery.Document) bool {
	sawHeading := false
	found := false
	Walk(doc.Find("body"), func(el Element) {
		if found {
			return
		}
		if _, ok := headingDate(el, anyYear); ok {
			sawHeading = true
			return
		}
		if sawHeading && el.Tag == "a" && containsAny(el.Text(), ResourceLabels) {
			found = true
		}
	})
	return found
}

// hasListMarkers checks for at least one decision anchor with a date.
func (d *Detector) hasListMarkers(doc *goquery.Document) bool {
	found := false
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := collapseSpace(sel.Text())
		if containsAny(text, DecisionKeywords) {
			if _, ok := listDate(text, anyYear); ok {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

// isAppShell checks for a page whose content is rendered by scripts.
func (d *Detector) isAppShell(doc *goquery.Document) bool {
	if doc.Find("#__next, #root, #app, [data-reactroot], [ng-app], [data-server-rendered]").Length() == 0 {
		return false
	}
	body := doc.Find("body").Clone()
	body.Find("script, style, noscript").Remove()
	return len(collapseSpace(body.Text())) < MinBlockChars
}
