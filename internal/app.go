package internal

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Default server timeouts.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// Default operational endpoints.
const (
	DefaultLivenessPath  = "/health/live"
	DefaultReadinessPath = "/health/ready"
	DefaultMetricsPath   = "/metrics"
)

// App is the folio HTTP server: operational endpoints, static theme assets
// and the site handler for every other path.
// App is immutable after creation; configure it with options to New.
type App struct {
	router        chi.Router
	site          HandlerFunc
	errorHandler  ErrorHandler
	liveness      http.Handler
	readiness     http.Handler
	metrics       http.Handler
	logger        *slog.Logger
	livenessPath  string
	readinessPath string
	metricsPath   string
	middlewares   []Middleware
	staticRoutes  []staticRoute
}

type staticRoute struct {
	handler http.Handler
	pattern string
}

// New creates an application.
//
//	app := internal.New(
//	    internal.WithLogger(log),
//	    internal.WithMiddleware(middlewares.RequestID(), middlewares.Recover(log)),
//	    internal.WithSite(site.Handle),
//	    internal.WithErrorHandler(site.HandleError),
//	)
func New(opts ...Option) *App {
	a := &App{
		router:        chi.NewRouter(),
		logger:        slog.New(slog.DiscardHandler),
		livenessPath:  DefaultLivenessPath,
		readinessPath: DefaultReadinessPath,
		metricsPath:   DefaultMetricsPath,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.errorHandler == nil {
		a.errorHandler = DefaultErrorHandler(a.logger)
	}

	a.setupRoutes()
	return a
}

// Router returns the underlying chi.Router.
func (a *App) Router() chi.Router {
	return a.router
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled or a termination signal arrives.
func (a *App) Run(ctx context.Context, addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if cfg.logger == nil {
		cfg.logger = a.logger
	}
	return runServer(ctx, runtimeConfig{
		handler:         a,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		listener:        cfg.listener,
	})
}

func (a *App) setupRoutes() {
	for _, mw := range a.middlewares {
		a.router.Use(mw)
	}

	if a.liveness != nil {
		a.router.Get(a.livenessPath, a.liveness.ServeHTTP)
	}
	if a.readiness != nil {
		a.router.Get(a.readinessPath, a.readiness.ServeHTTP)
	}
	if a.metrics != nil {
		a.router.Get(a.metricsPath, a.metrics.ServeHTTP)
	}

	for _, sr := range a.staticRoutes {
		a.router.Mount(sr.pattern, sr.handler)
	}

	site := a.site
	if site == nil {
		site = func(http.ResponseWriter, *http.Request) error { return ErrNotFound("") }
	}
	// The site router decides methods itself so every path reaches it.
	a.router.Handle("/*", a.Wrap(site))
}

// Wrap converts h into an http.HandlerFunc that renders returned errors.
func (a *App) Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rw := NewResponseWriter(w)
		if err := h(rw, r); err != nil {
			if rw.Written() {
				LogError(a.logger, r, AsHTTPError(err))
				return
			}
			a.errorHandler(rw, r, err)
		}
	}
}
