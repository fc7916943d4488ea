package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/ratedoc"
)

// Ensure LoggingExtractor implements ratedoc.ContentExtractor.
var _ ratedoc.ContentExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a ContentExtractor with logging.
type LoggingExtractor struct {
	next   ratedoc.ContentExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next ratedoc.ContentExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract logs input and output sizes and delegates to the wrapped extractor.
func (e *LoggingExtractor) Extract(html string) (text string, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"bytes", len(html),
			"chars", len([]rune(text)),
			"empty", text == "",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}
