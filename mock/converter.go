package mock

import "github.com/fwojciec/ratedoc"

var _ ratedoc.Converter = (*Converter)(nil)

// Converter is a mock implementation of ratedoc.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
