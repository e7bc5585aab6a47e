package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor pulls one request-scoped attribute out of a context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// contextHandler adds extracted attributes to every record it handles.
type contextHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
}

// WithExtractors wraps next so each record carries the attributes the
// extractors find in the record's context. Nil extractors are dropped.
func WithExtractors(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	clean := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	if len(clean) == 0 {
		return next
	}
	return &contextHandler{next: next, extractors: clean}
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{next: h.next.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{next: h.next.WithGroup(name), extractors: h.extractors}
}
