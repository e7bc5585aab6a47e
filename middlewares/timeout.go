package middlewares

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/folio/internal"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// Timeout puts a deadline on the request context. Content lookups and
// template rendering observe it. When the handler returns after the
// deadline without writing, onTimeout renders a 504 TimeoutError.
func Timeout(timeout time.Duration, onTimeout internal.ErrorHandler) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if onTimeout == nil {
		onTimeout = func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, http.StatusText(http.StatusGatewayTimeout), http.StatusGatewayTimeout)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			rw := internal.NewResponseWriter(w)
			next.ServeHTTP(rw, r.WithContext(ctx))

			if errors.Is(ctx.Err(), context.DeadlineExceeded) && !rw.Written() {
				onTimeout(rw, r, internal.NewHTTPError(http.StatusGatewayTimeout, "",
					internal.WithError(&TimeoutError{Duration: timeout})))
			}
		})
	}
}
