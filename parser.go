package ratedoc

// Layout identifies the structure of a year index page.
type Layout string

// Known year page layouts.
const (
	LayoutUnknown Layout = ""

	// LayoutChronicle is the older layout: date headings, each followed by
	// the resource links of that decision.
	LayoutChronicle Layout = "chronicle"

	// LayoutList is the newer layout: a flat list of anchors, one per
	// decision, each pointing to a meeting page.
	LayoutList Layout = "list"
)

// YearParser extracts decisions from a year index page.
type YearParser interface {
	// ParseYear parses html fetched from pageURL. year is used for dates
	// that omit it; pageURL is the base for resolving relative links.
	// Returns an empty slice when the page contains no decisions and an
	// error only when the input cannot be parsed at all.
	ParseYear(html string, year int, pageURL string) ([]Decision, error)

	// Layout returns the page layout this parser understands.
	Layout() Layout
}

// ResourceParser extracts resource links from a single meeting page.
type ResourceParser interface {
	ParseResources(html string, baseURL string) ([]Link, error)
}

// LayoutDetector identifies the layout of a year index page from its HTML.
type LayoutDetector interface {
	// Detect returns LayoutUnknown when the layout cannot be determined.
	Detect(html string) Layout
}

// ParserRegistry maps layouts to year parsers.
type ParserRegistry interface {
	// Get returns the parser for a layout, or nil if none is registered.
	Get(layout Layout) YearParser

	// GetForHTML detects the layout of html and returns its parser,
	// falling back to the registry's default parser.
	GetForHTML(html string) YearParser

	// Register adds a parser for its layout.
	Register(parser YearParser)

	// List returns all registered layouts.
	List() []Layout
}
