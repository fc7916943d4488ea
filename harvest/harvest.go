// Package harvest orchestrates the harvesting of rate decisions. Year index
// pages are fetched and parsed, list-layout decisions are enriched from
// their meeting pages, and each decision's resources are fetched,
// extracted, assembled into a report and stored.
package harvest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/ratedoc"
	"golang.org/x/sync/errgroup"
)

// Default harvest settings.
const (
	DefaultTransitionYear = 2007
	DefaultConcurrency    = 3
	DefaultYearDelay      = time.Second
)

// Harvester orchestrates harvesting of one or more years.
type Harvester struct {
	Fetcher ratedoc.Fetcher
	// Browser re-fetches list pages that parse to nothing, which happens
	// when the decisions are rendered client side. Optional.
	Browser   ratedoc.Fetcher
	Parsers   ratedoc.ParserRegistry
	Detector  ratedoc.LayoutDetector
	Resources ratedoc.ResourceParser
	Extractor ratedoc.ContentExtractor
	Store     ratedoc.ArtifactStore
	Records   ratedoc.RecordService
	Limiter   ratedoc.DomainLimiter
	Metrics   ratedoc.HarvestMetrics
	YearLogs  YearLogs
	Logger    *slog.Logger

	// ChronicleURL and ListURL are year page templates with one %d verb.
	// Both default to DefaultYearURL.
	ChronicleURL string
	ListURL      string
	// TransitionYear is the first year expected to use the list layout.
	// It decides the layout when detection is inconclusive.
	TransitionYear int
	Concurrency    int
	// RetryDelays defaults to DefaultRetryDelays when nil. An empty
	// non-nil slice disables retries.
	RetryDelays []time.Duration
	// YearDelay is the pause between consecutive years.
	YearDelay time.Duration
	// Force re-harvests decisions that already have a record.
	Force bool
	Now   func() time.Time
}

// Result holds the outcome of harvesting a range of years.
type Result struct {
	Years   []YearResult
	Saved   int
	Skipped int
	Failed  int
	Bytes   int
}

// YearResult holds the outcome of harvesting a single year.
type YearResult struct {
	Year      int
	URL       string
	Layout    ratedoc.Layout
	Decisions int
	Saved     int
	Skipped   int
	Failed    int
	Bytes     int
	// Err is set when the year page could not be fetched or parsed.
	Err error
}

// Scan is a parsed year page.
type Scan struct {
	Year   int
	URL    string
	Layout ratedoc.Layout
	// Rendered reports whether the decisions came from a browser render.
	Rendered  bool
	Decisions []ratedoc.Decision
}

// ProgressEvent reports progress during a harvest.
type ProgressEvent struct {
	Type  ProgressType
	Year  int
	Date  ratedoc.Date
	Path  string
	Links int
	Error error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressYearStarted ProgressType = iota
	ProgressSaved
	ProgressSkipped
	ProgressFailed
	ProgressYearFinished
)

// ProgressFunc is a callback for reporting harvest progress.
type ProgressFunc func(event ProgressEvent)

// HarvestYears harvests every year from from to to inclusive, pausing
// YearDelay between years. A year whose page cannot be fetched is recorded
// in its YearResult and does not stop the run; only cancellation does.
func (h *Harvester) HarvestYears(ctx context.Context, from, to int, progress ProgressFunc) (*Result, error) {
	if from <= 0 || to < from {
		return nil, ratedoc.Errorf(ratedoc.EINVALID, "invalid year range %d-%d", from, to)
	}

	result := &Result{}
	for year := from; year <= to; year++ {
		yr, err := h.HarvestYear(ctx, year, progress)
		if yr != nil {
			result.add(*yr)
		}
		if err != nil {
			return result, err
		}

		if year < to && h.YearDelay > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(h.YearDelay):
			}
		}
	}
	return result, nil
}

func (r *Result) add(yr YearResult) {
	r.Years = append(r.Years, yr)
	r.Saved += yr.Saved
	r.Skipped += yr.Skipped
	r.Failed += yr.Failed
	r.Bytes += yr.Bytes
}

// HarvestYear harvests the decisions of a single year. The returned error
// is non-nil only when ctx is done.
func (h *Harvester) HarvestYear(ctx context.Context, year int, progress ProgressFunc) (*YearResult, error) {
	logger := yearLogger(h.logger(), h.YearLogs, year)
	notify(progress, ProgressEvent{Type: ProgressYearStarted, Year: year})
	logger.Info("processing year")

	yr := &YearResult{Year: year}
	scan, err := h.scan(ctx, year, logger)
	if err != nil {
		if ctx.Err() != nil {
			return yr, ctx.Err()
		}
		logger.Error("year failed", "err", err)
		yr.Err = err
		notify(progress, ProgressEvent{Type: ProgressYearFinished, Year: year, Error: err})
		return yr, nil
	}
	yr.URL = scan.URL
	yr.Layout = scan.Layout
	yr.Decisions = len(scan.Decisions)
	logger.Info("found decisions", "count", len(scan.Decisions), "layout", string(scan.Layout))
	if h.Metrics != nil {
		h.Metrics.DecisionsFound(scan.Layout, len(scan.Decisions))
	}

	for _, d := range scan.Decisions {
		if err := h.harvestDecision(ctx, logger, scan.Layout, d, yr, progress); err != nil {
			return yr, err
		}
	}

	notify(progress, ProgressEvent{Type: ProgressYearFinished, Year: year})
	return yr, nil
}

// ScanYear fetches and parses a year page without fetching any resource or
// writing anything. List decisions are enriched from their meeting pages.
func (h *Harvester) ScanYear(ctx context.Context, year int) (*Scan, error) {
	return h.scan(ctx, year, h.logger().With("year", year))
}

func (h *Harvester) scan(ctx context.Context, year int, logger *slog.Logger) (*Scan, error) {
	expected := h.expectedLayout(year)
	pageURL := YearURL(h.template(expected), year)

	html, err := h.fetch(ctx, h.Fetcher, pageURL, logger)
	if err != nil {
		return nil, fmt.Errorf("fetch year page: %w", err)
	}

	layout := ratedoc.LayoutUnknown
	if h.Detector != nil {
		layout = h.Detector.Detect(html)
	}
	if layout == ratedoc.LayoutUnknown {
		layout = expected
	}

	parser := h.Parsers.Get(layout)
	if parser == nil {
		parser = h.Parsers.GetForHTML(html)
	}
	if parser == nil {
		return nil, ratedoc.Errorf(ratedoc.EINTERNAL, "no parser for layout %q", layout)
	}

	scan := &Scan{Year: year, URL: pageURL, Layout: parser.Layout()}
	decisions, err := parser.ParseYear(html, year, pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse year page: %w", err)
	}

	if len(decisions) == 0 && scan.Layout == ratedoc.LayoutList && h.Browser != nil {
		logger.Info("rendering year page", "url", pageURL)
		rendered, err := h.fetch(ctx, h.Browser, pageURL, logger)
		switch {
		case err != nil && ctx.Err() != nil:
			return nil, ctx.Err()
		case err != nil:
			logger.Warn("render failed", "url", pageURL, "err", err)
		default:
			decisions, err = parser.ParseYear(rendered, year, pageURL)
			if err != nil {
				return nil, fmt.Errorf("parse rendered year page: %w", err)
			}
			scan.Rendered = true
		}
	}

	if scan.Layout == ratedoc.LayoutList && h.Resources != nil {
		decisions, err = h.enrich(ctx, decisions, logger)
		if err != nil {
			return nil, err
		}
	}

	scan.Decisions = decisions
	return scan, nil
}

// enrich appends the resources of each decision's meeting page to its
// links. A meeting page that cannot be fetched leaves the decision as is.
func (h *Harvester) enrich(ctx context.Context, decisions []ratedoc.Decision, logger *slog.Logger) ([]ratedoc.Decision, error) {
	out := make([]ratedoc.Decision, len(decisions))
	for i, d := range decisions {
		out[i] = d
		if len(d.Links) == 0 {
			continue
		}

		meetingURL := d.Links[0].URL
		html, err := h.fetch(ctx, h.Fetcher, meetingURL, logger)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("meeting page unavailable", "url", meetingURL, "err", err)
			continue
		}

		resources, err := h.Resources.ParseResources(html, meetingURL)
		if err != nil {
			logger.Warn("meeting page unparsable", "url", meetingURL, "err", err)
			continue
		}
		out[i] = ratedoc.EnrichDecision(d, resources)
	}
	return out, nil
}

func (h *Harvester) harvestDecision(ctx context.Context, logger *slog.Logger, layout ratedoc.Layout, d ratedoc.Decision, yr *YearResult, progress ProgressFunc) error {
	if !h.Force && h.Records != nil {
		rec, err := h.Records.FindRecordByDate(ctx, d.Date)
		switch {
		case err == nil && !rec.HasContent():
			logger.Info("re-harvesting empty record", "date", d.Date.String())
		case err == nil:
			logger.Info("already harvested", "date", d.Date.String())
			yr.Skipped++
			if h.Metrics != nil {
				h.Metrics.DecisionSkipped()
			}
			notify(progress, ProgressEvent{Type: ProgressSkipped, Year: yr.Year, Date: d.Date, Links: len(d.Links)})
			return nil
		case ratedoc.ErrorCode(err) != ratedoc.ENOTFOUND:
			logger.Warn("record lookup failed", "date", d.Date.String(), "err", err)
		}
	}

	contents, err := h.fetchContents(ctx, d.Links, logger)
	if err != nil {
		return err
	}

	fetchedAt := h.now()
	report := ratedoc.Assemble(d, contents, fetchedAt)
	path, err := h.Store.Save(ctx, d.Date, report)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Error("save failed", "date", d.Date.String(), "err", err)
		yr.Failed++
		notify(progress, ProgressEvent{Type: ProgressFailed, Year: yr.Year, Date: d.Date, Links: len(d.Links), Error: err})
		return nil
	}
	logger.Info("created", "path", path, "links", len(d.Links))

	yr.Saved++
	yr.Bytes += len(report)
	if h.Metrics != nil {
		h.Metrics.ArtifactSaved(len(report))
	}

	if h.Records != nil {
		record := &ratedoc.Record{
			Date:        d.Date,
			Layout:      layout,
			Links:       d.Links,
			Path:        path,
			ContentHash: ComputeHash(report),
			Fetched:     countFetched(contents),
			FetchedAt:   fetchedAt,
		}
		if err := h.Records.SaveRecord(ctx, record); err != nil {
			logger.Warn("record not saved", "date", d.Date.String(), "err", err)
		}
	}

	notify(progress, ProgressEvent{Type: ProgressSaved, Year: yr.Year, Date: d.Date, Path: path, Links: len(d.Links)})
	return nil
}

// fetchContents fetches and extracts every link concurrently. Results are
// stored by link index; a failed link leaves an empty entry.
func (h *Harvester) fetchContents(ctx context.Context, links []ratedoc.Link, logger *slog.Logger) ([]string, error) {
	contents := make([]string, len(links))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency())
	for i, link := range links {
		g.Go(func() error {
			logger.Info("fetching", "url", link.URL)
			html, err := h.fetch(gctx, h.Fetcher, link.URL, logger)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				logger.Warn("resource unavailable", "url", link.URL, "err", err)
				h.resourceFailed()
				return nil
			}

			text, err := h.Extractor.Extract(html)
			if err != nil {
				logger.Warn("extraction failed", "url", link.URL, "err", err)
				h.resourceFailed()
				return nil
			}
			if text == "" {
				logger.Debug("no content", "url", link.URL)
			}
			contents[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return contents, nil
}

func (h *Harvester) fetch(ctx context.Context, fetcher ratedoc.Fetcher, url string, logger *slog.Logger) (string, error) {
	fetch := func(ctx context.Context, url string) (string, error) {
		if h.Limiter != nil {
			if err := h.Limiter.Wait(ctx, Host(url)); err != nil {
				return "", err
			}
		}
		return fetcher.Fetch(ctx, url)
	}
	return FetchWithRetryDelays(ctx, url, fetch, logger, h.retryDelays())
}

func (h *Harvester) expectedLayout(year int) ratedoc.Layout {
	transition := h.TransitionYear
	if transition <= 0 {
		transition = DefaultTransitionYear
	}
	if year < transition {
		return ratedoc.LayoutChronicle
	}
	return ratedoc.LayoutList
}

func (h *Harvester) template(layout ratedoc.Layout) string {
	tmpl := h.ChronicleURL
	if layout == ratedoc.LayoutList {
		tmpl = h.ListURL
	}
	if tmpl == "" {
		return DefaultYearURL
	}
	return tmpl
}

func (h *Harvester) concurrency() int {
	if h.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return h.Concurrency
}

func (h *Harvester) retryDelays() []time.Duration {
	if h.RetryDelays == nil {
		return DefaultRetryDelays()
	}
	return h.RetryDelays
}

func (h *Harvester) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Harvester) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (h *Harvester) resourceFailed() {
	if h.Metrics != nil {
		h.Metrics.ResourceFailed()
	}
}

func countFetched(contents []string) int {
	var n int
	for _, c := range contents {
		if c != "" {
			n++
		}
	}
	return n
}

func notify(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}
