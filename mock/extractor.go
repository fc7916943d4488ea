package mock

import "github.com/fwojciec/ratedoc"

var _ ratedoc.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of ratedoc.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (string, error)
}

func (e *ContentExtractor) Extract(html string) (string, error) {
	return e.ExtractFn(html)
}
