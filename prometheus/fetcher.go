package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/ratedoc"
)

// Ensure Fetcher implements ratedoc.Fetcher.
var _ ratedoc.Fetcher = (*Fetcher)(nil)

// Fetcher wraps a ratedoc.Fetcher and records counts and durations.
type Fetcher struct {
	next    ratedoc.Fetcher
	metrics *Metrics
	name    string
}

// NewFetcher instruments next, labelling its metrics with name.
func NewFetcher(next ratedoc.Fetcher, metrics *Metrics, name string) *Fetcher {
	return &Fetcher{next: next, metrics: metrics, name: name}
}

// Fetch delegates to the wrapped fetcher and records the outcome.
func (f *Fetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		result := "ok"
		if err != nil {
			result = "error"
		}
		f.metrics.fetches.WithLabelValues(f.name, result).Inc()
		f.metrics.fetchDuration.WithLabelValues(f.name).Observe(time.Since(begin).Seconds())
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *Fetcher) Close() error {
	return f.next.Close()
}
