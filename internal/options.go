package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
)

// Option configures the application.
type Option func(*App)

// WithMiddleware adds global middleware. Middleware runs in the order given.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithSite sets the handler serving every path not claimed by another route.
func WithSite(h HandlerFunc) Option {
	return func(a *App) {
		a.site = h
	}
}

// WithStaticFiles serves fsys under pattern, e.g. "/assets/".
// Directory listings are disabled.
func WithStaticFiles(pattern string, fsys fs.FS) Option {
	return func(a *App) {
		prefix := strings.TrimSuffix(pattern, "/")
		fileServer := http.StripPrefix(prefix, http.FileServerFS(fsys))

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Cache-Control", "public, max-age=3600")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			fileServer.ServeHTTP(w, r)
		})

		a.staticRoutes = append(a.staticRoutes, staticRoute{handler: handler, pattern: prefix})
	}
}

// WithErrorHandler sets the renderer for errors returned by the site handler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		if h != nil {
			a.errorHandler = h
		}
	}
}

// WithHealth mounts liveness and readiness probes at the default paths.
//
//	internal.WithHealth(health.LivenessHandler(), checker.ReadinessHandler())
func WithHealth(liveness, readiness http.Handler) Option {
	return func(a *App) {
		a.liveness = liveness
		a.readiness = readiness
	}
}

// WithHealthPaths overrides the probe paths. Empty values keep the defaults.
func WithHealthPaths(liveness, readiness string) Option {
	return func(a *App) {
		if liveness != "" {
			a.livenessPath = liveness
		}
		if readiness != "" {
			a.readinessPath = readiness
		}
	}
}

// WithMetrics mounts the Prometheus scrape handler at path.
// An empty path means "/metrics".
func WithMetrics(path string, h http.Handler) Option {
	return func(a *App) {
		if path != "" {
			a.metricsPath = path
		}
		a.metrics = h
	}
}

// WithLogger sets the application logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}
