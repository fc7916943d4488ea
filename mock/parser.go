package mock

import "github.com/fwojciec/ratedoc"

var _ ratedoc.YearParser = (*YearParser)(nil)

// YearParser is a mock implementation of ratedoc.YearParser.
type YearParser struct {
	ParseYearFn func(html string, year int, pageURL string) ([]ratedoc.Decision, error)
	LayoutFn    func() ratedoc.Layout
}

func (p *YearParser) ParseYear(html string, year int, pageURL string) ([]ratedoc.Decision, error) {
	return p.ParseYearFn(html, year, pageURL)
}

func (p *YearParser) Layout() ratedoc.Layout {
	return p.LayoutFn()
}

var _ ratedoc.ResourceParser = (*ResourceParser)(nil)

// ResourceParser is a mock implementation of ratedoc.ResourceParser.
type ResourceParser struct {
	ParseResourcesFn func(html string, baseURL string) ([]ratedoc.Link, error)
}

func (p *ResourceParser) ParseResources(html string, baseURL string) ([]ratedoc.Link, error) {
	return p.ParseResourcesFn(html, baseURL)
}

var _ ratedoc.LayoutDetector = (*LayoutDetector)(nil)

// LayoutDetector is a mock implementation of ratedoc.LayoutDetector.
type LayoutDetector struct {
	DetectFn func(html string) ratedoc.Layout
}

func (d *LayoutDetector) Detect(html string) ratedoc.Layout {
	return d.DetectFn(html)
}

var _ ratedoc.ParserRegistry = (*ParserRegistry)(nil)

// ParserRegistry is a mock implementation of ratedoc.ParserRegistry.
type ParserRegistry struct {
	GetFn        func(layout ratedoc.Layout) ratedoc.YearParser
	GetForHTMLFn func(html string) ratedoc.YearParser
	RegisterFn   func(parser ratedoc.YearParser)
	ListFn       func() []ratedoc.Layout
}

func (r *ParserRegistry) Get(layout ratedoc.Layout) ratedoc.YearParser {
	return r.GetFn(layout)
}

func (r *ParserRegistry) GetForHTML(html string) ratedoc.YearParser {
	return r.GetForHTMLFn(html)
}

func (r *ParserRegistry) Register(parser ratedoc.YearParser) {
	r.RegisterFn(parser)
}

func (r *ParserRegistry) List() []ratedoc.Layout {
	return r.ListFn()
}
