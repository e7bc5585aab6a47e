package middlewares

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/folio/internal"
	"github.com/dmitrymomot/folio/pkg/logger"
)

type requestIDKey struct{}

// DefaultRequestIDHeaders are the headers checked (in order) for an existing request ID.
var DefaultRequestIDHeaders = []string{"X-Request-ID", "X-Correlation-ID"}

// maxRequestIDLength bounds IDs accepted from clients.
const maxRequestIDLength = 128

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	Generator      func() string // ID generator function
	ResponseHeader string        // Response header name
	Headers        []string      // Headers to check for existing ID (in order)
}

// RequestIDOption configures RequestIDConfig.
type RequestIDOption func(*RequestIDConfig)

// WithRequestIDHeaders sets the headers to check for existing request IDs.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		cfg.Headers = headers
	}
}

// WithRequestIDGenerator sets a custom ID generator function.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		if gen != nil {
			cfg.Generator = gen
		}
	}
}

// WithRequestIDResponseHeader sets the response header name.
func WithRequestIDResponseHeader(header string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		cfg.ResponseHeader = header
	}
}

// newUUIDv7 returns a time-ordered ID so log lines sort by arrival.
func newUUIDv7() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// RequestID assigns an ID to each request. An upstream ID from one of the
// configured headers is kept; otherwise a UUIDv7 is generated.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := &RequestIDConfig{
		Headers:        DefaultRequestIDHeaders,
		Generator:      newUUIDv7,
		ResponseHeader: "X-Request-ID",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var reqID string
			for _, header := range cfg.Headers {
				if v := r.Header.Get(header); v != "" && len(v) <= maxRequestIDLength {
					reqID = v
					break
				}
			}
			if reqID == "" {
				reqID = cfg.Generator()
			}

			if cfg.ResponseHeader != "" {
				w.Header().Set(cfg.ResponseHeader, reqID)
			}
			ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetRequestID returns the request ID stored in ctx, or "".
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// RequestIDExtractor adds "request_id" to every log entry written with the
// request context.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v := GetRequestID(ctx); v != "" {
			return slog.String("request_id", v), true
		}
		return slog.Attr{}, false
	}
}
