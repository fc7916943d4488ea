package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/ratedoc"
)

// Ensure LoggingRegistry implements ratedoc.ParserRegistry.
var _ ratedoc.ParserRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a ParserRegistry with logging for layout detection.
type LoggingRegistry struct {
	next     ratedoc.ParserRegistry
	detector ratedoc.LayoutDetector
	logger   *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next ratedoc.ParserRegistry, detector ratedoc.LayoutDetector, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, detector: detector, logger: logger}
}

// Get delegates to the wrapped registry.
func (r *LoggingRegistry) Get(layout ratedoc.Layout) ratedoc.YearParser {
	return r.next.Get(layout)
}

// GetForHTML detects the layout, logs it, and returns the matching parser.
func (r *LoggingRegistry) GetForHTML(html string) ratedoc.YearParser {
	begin := time.Now()
	layout := r.detector.Detect(html)
	name := string(layout)
	if layout == ratedoc.LayoutUnknown {
		name = "(unknown)"
	}
	r.logger.Info("layout detection",
		"layout", name,
		"duration", time.Since(begin),
	)
	return r.next.GetForHTML(html)
}

// Register delegates to the wrapped registry.
func (r *LoggingRegistry) Register(parser ratedoc.YearParser) {
	r.next.Register(parser)
}

// List delegates to the wrapped registry.
func (r *LoggingRegistry) List() []ratedoc.Layout {
	return r.next.List()
}
