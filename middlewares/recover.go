package middlewares

import (
	"log/slog"
	"net/http"
	"runtime"

	"github.com/dmitrymomot/folio/internal"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// RecoverConfig configures the recover middleware.
type RecoverConfig struct {
	ErrorHandler      internal.ErrorHandler
	StackSize         int  // Max stack trace size (default: 4096)
	DisablePrintStack bool // Disable stack trace in logs
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverStackSize sets the maximum stack trace size.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		if size > 0 {
			cfg.StackSize = size
		}
	}
}

// WithRecoverDisablePrintStack disables including stack trace in logs.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisablePrintStack = true
	}
}

// WithRecoverErrorHandler renders the PanicError. Default: plain 500.
func WithRecoverErrorHandler(h internal.ErrorHandler) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.ErrorHandler = h
	}
}

// Recover turns a panic into a logged PanicError rendered by the error
// handler. http.ErrAbortHandler is re-panicked so net/http can abort the
// connection.
func Recover(log *slog.Logger, opts ...RecoverOption) internal.Middleware {
	cfg := &RecoverConfig{StackSize: DefaultStackSize}
	for _, opt := range opts {
		opt(cfg)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := internal.NewResponseWriter(w)
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler { //nolint:errorlint // sentinel compared by identity
					panic(rec)
				}

				pe := &PanicError{Value: rec}
				attrs := []any{slog.Any("panic", rec), slog.String("path", r.URL.Path)}
				if !cfg.DisablePrintStack {
					stack := make([]byte, cfg.StackSize)
					pe.Stack = stack[:runtime.Stack(stack, false)]
					attrs = append(attrs, slog.String("stack", string(pe.Stack)))
				}
				log.ErrorContext(r.Context(), "panic recovered", attrs...)

				if !rw.Written() {
					cfg.ErrorHandler(rw, r, internal.ErrInternal("", internal.WithError(pe)))
				}
			}()

			next.ServeHTTP(rw, r)
		})
	}
}
