package ratedoc

// Link is a resource hyperlink belonging to a decision.
// URL is absolute; relative hrefs are resolved when the page is parsed.
type Link struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// Decision is one detected interest-rate decision.
type Decision struct {
	Date  Date   `json:"date"`
	Links []Link `json:"links"`
}

// AddLink appends link unless a link with the same URL is already present.
// Returns false if the link was a duplicate.
func (d *Decision) AddLink(link Link) bool {
	for _, l := range d.Links {
		if l.URL == link.URL {
			return false
		}
	}
	d.Links = append(d.Links, link)
	return true
}

// DedupeDecisions returns decisions with distinct dates, keeping the first
// decision seen for each date. Decisions without links are dropped.
func DedupeDecisions(decisions []Decision) []Decision {
	seen := make(map[Date]bool, len(decisions))
	var result []Decision
	for _, d := range decisions {
		if len(d.Links) == 0 || seen[d.Date] {
			continue
		}
		seen[d.Date] = true
		result = append(result, d)
	}
	return result
}

// EnrichDecision returns a copy of d with resources appended to its links.
// Resources already linked from d are skipped.
func EnrichDecision(d Decision, resources []Link) Decision {
	enriched := Decision{
		Date:  d.Date,
		Links: make([]Link, 0, len(d.Links)+len(resources)),
	}
	for _, l := range d.Links {
		enriched.AddLink(l)
	}
	for _, l := range resources {
		enriched.AddLink(l)
	}
	return enriched
}
