package ratedoc

// ContentExtractor extracts the substantive text of a resource page.
type ContentExtractor interface {
	// Extract returns the normalized, deduplicated text of html.
	// An empty string means no content could be located; an error is
	// returned only for input that cannot be parsed.
	Extract(html string) (string, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment into Markdown.
	Convert(html string) (string, error)
}
