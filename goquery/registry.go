package goquery

import "github.com/fwojciec/ratedoc"

var _ ratedoc.ParserRegistry = (*Registry)(nil)

// Registry manages layout-specific year parsers and auto-detects layouts
// from HTML content. It uses a LayoutDetector to identify the layout and
// returns the matching parser, falling back to a default parser when the
// layout is unknown or no parser is registered for it.
type Registry struct {
	detector ratedoc.LayoutDetector
	fallback ratedoc.YearParser
	parsers  map[ratedoc.Layout]ratedoc.YearParser
}

// NewRegistry creates a new Registry with the given detector and fallback parser.
// The fallback parser is also registered for its own layout.
func NewRegistry(detector ratedoc.LayoutDetector, fallback ratedoc.YearParser) *Registry {
	r := &Registry{
		detector: detector,
		fallback: fallback,
		parsers:  make(map[ratedoc.Layout]ratedoc.YearParser),
	}
	if fallback != nil {
		r.Register(fallback)
	}
	return r
}

// NewDefaultRegistry returns a registry with the chronicle and list parsers,
// falling back to the chronicle parser.
func NewDefaultRegistry() *Registry {
	r := NewRegistry(NewDetector(), NewChronicleParser())
	r.Register(NewListParser())
	return r
}

// Get returns the parser for a specific layout.
// Returns nil if no parser is registered for the layout.
func (r *Registry) Get(layout ratedoc.Layout) ratedoc.YearParser {
	return r.parsers[layout]
}

// GetForHTML detects the layout from HTML and returns the appropriate parser.
func (r *Registry) GetForHTML(html string) ratedoc.YearParser {
	layout := r.detector.Detect(html)
	if parser, ok := r.parsers[layout]; ok {
		return parser
	}
	return r.fallback
}

// Register adds a parser for its layout.
// If a parser is already registered for the layout, it is replaced.
func (r *Registry) Register(parser ratedoc.YearParser) {
	r.parsers[parser.Layout()] = parser
}

// List returns all registered layouts.
func (r *Registry) List() []ratedoc.Layout {
	layouts := make([]ratedoc.Layout, 0, len(r.parsers))
	for l := range r.parsers {
		layouts = append(layouts, l)
	}
	return layouts
}
