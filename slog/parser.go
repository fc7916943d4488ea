package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/ratedoc"
)

// Ensure LoggingParser implements ratedoc.YearParser.
var _ ratedoc.YearParser = (*LoggingParser)(nil)

// LoggingParser wraps a YearParser with logging.
type LoggingParser struct {
	next   ratedoc.YearParser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next ratedoc.YearParser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// ParseYear logs the number of decisions found and delegates to the
// wrapped parser.
func (p *LoggingParser) ParseYear(html string, year int, pageURL string) (decisions []ratedoc.Decision, err error) {
	defer func(begin time.Time) {
		p.logger.Info("parse year",
			"layout", string(p.next.Layout()),
			"year", year,
			"url", pageURL,
			"decisions", len(decisions),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.ParseYear(html, year, pageURL)
}

// Layout delegates to the wrapped parser.
func (p *LoggingParser) Layout() ratedoc.Layout {
	return p.next.Layout()
}
