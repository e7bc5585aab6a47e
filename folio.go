package folio

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/folio/internal"
	"github.com/dmitrymomot/folio/pkg/cache"
	"github.com/dmitrymomot/folio/pkg/content"
	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/theme"
)

// Type aliases - public API
type (
	// App is the folio HTTP server.
	App = internal.App

	// Site turns route matches into rendered pages.
	Site = internal.Site

	// Page is the data passed to theme templates.
	Page = internal.Page

	// HandlerFunc is an http handler that returns an error.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps an http.Handler.
	Middleware = internal.Middleware

	// ErrorHandler renders errors returned by handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// SiteOption configures the site handler.
	SiteOption = internal.SiteOption

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HTTPError carries a status code and user-facing message.
	HTTPError = internal.HTTPError

	// Matcher resolves requests to route matches.
	Matcher = internal.Matcher

	// Lister runs listing queries.
	Lister = internal.Lister

	// ContextExtractor adds request-scoped attributes to log records.
	ContextExtractor = logger.ContextExtractor
)

// New creates an application.
//
//	app := folio.New(
//	    folio.WithSite(site.Handle),
//	    folio.WithErrorHandler(site.HandleError),
//	)
//	err := app.Run(ctx, ":8080")
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// NewSite creates the handler that serves content pages.
func NewSite(m Matcher, l Lister, md content.Renderer, th theme.Renderer, opts ...SiteOption) *Site {
	return internal.NewSite(m, l, md, th, opts...)
}

// App options

// WithMiddleware appends middleware, applied in order.
func WithMiddleware(mw ...Middleware) Option { return internal.WithMiddleware(mw...) }

// WithSite sets the catch-all handler, usually (*Site).Handle.
func WithSite(h HandlerFunc) Option { return internal.WithSite(h) }

// WithErrorHandler sets the handler for errors returned by the site.
func WithErrorHandler(h ErrorHandler) Option { return internal.WithErrorHandler(h) }

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option { return internal.WithLogger(l) }

// WithHealth mounts liveness and readiness probes.
func WithHealth(liveness, readiness http.Handler) Option {
	return internal.WithHealth(liveness, readiness)
}

// WithMetrics mounts a metrics handler. Empty path means /metrics.
func WithMetrics(path string, h http.Handler) Option { return internal.WithMetrics(path, h) }

// WithStaticFiles serves theme assets from fsys under pattern.
func WithStaticFiles(pattern string, fsys fs.FS) Option {
	return internal.WithStaticFiles(pattern, fsys)
}

// Site options

// WithRenderCache caches rendered item HTML, typically in Redis.
func WithRenderCache(c cache.Cache[string], ttl time.Duration) SiteOption {
	return internal.WithRenderCache(c, ttl)
}

// WithSiteParams exposes static values to templates as .Site.
func WithSiteParams(params map[string]any) SiteOption { return internal.WithSiteParams(params) }

// Run options

// WithShutdownTimeout bounds graceful shutdown.
func WithShutdownTimeout(d time.Duration) RunOption { return internal.WithShutdownTimeout(d) }

// WithStartupHook runs fn before the server accepts connections.
func WithStartupHook(fn func(context.Context) error) RunOption {
	return internal.WithStartupHook(fn)
}

// WithShutdownHook runs fn after the server stops.
func WithShutdownHook(fn func(context.Context) error) RunOption {
	return internal.WithShutdownHook(fn)
}
