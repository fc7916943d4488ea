package harvest

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/ratedoc"
	"golang.org/x/time/rate"
)

// DefaultRequestsPerSecond matches a 500ms pause between requests to one host.
const DefaultRequestsPerSecond = 2.0

var _ ratedoc.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter keeps one token bucket per host so that pages on
// norges-bank.no are paced while requests elsewhere proceed on their own.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter returns a limiter allowing rps requests per second per
// domain with a burst of 1. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until a request to domain is allowed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if d.rps <= 0 {
		return ctx.Err()
	}

	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// Host returns the host of rawURL, or rawURL itself when it does not parse.
func Host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
