package harvest

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

// YearLogs provides the per-year log destination.
type YearLogs interface {
	Writer(year int) (io.Writer, error)
}

var _ slog.Handler = (*TeeHandler)(nil)

// TeeHandler dispatches each record to every handler that accepts its level.
type TeeHandler struct {
	handlers []slog.Handler
}

// NewTeeHandler returns a handler writing to all of handlers.
func NewTeeHandler(handlers ...slog.Handler) *TeeHandler {
	return &TeeHandler{handlers: handlers}
}

func (t *TeeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t *TeeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t *TeeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &TeeHandler{handlers: handlers}
}

func (t *TeeHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &TeeHandler{handlers: handlers}
}

// yearLogger returns a logger that also writes to the year's log file.
// A year log that cannot be opened is reported on base and skipped.
func yearLogger(base *slog.Logger, logs YearLogs, year int) *slog.Logger {
	logger := base.With("year", year)
	if logs == nil {
		return logger
	}
	w, err := logs.Writer(year)
	if err != nil {
		logger.Warn("year log unavailable", "err", err)
		return logger
	}
	file := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(NewTeeHandler(base.Handler(), file)).With("year", year)
}
