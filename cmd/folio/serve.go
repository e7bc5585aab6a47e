package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/folio/internal"
	"github.com/dmitrymomot/folio/middlewares"
	"github.com/dmitrymomot/folio/pkg/cache"
	"github.com/dmitrymomot/folio/pkg/content"
	"github.com/dmitrymomot/folio/pkg/health"
	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/metrics"
	"github.com/dmitrymomot/folio/pkg/redis"
	"github.com/dmitrymomot/folio/pkg/routetable"
	"github.com/dmitrymomot/folio/pkg/routing"
	"github.com/dmitrymomot/folio/pkg/theme"
)

const (
	sentryFlushTimeout  = 2 * time.Second
	renderCacheEntries  = 4096
	renderCacheRedisKey = "folio:html"
)

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides FOLIO_ADDR)")
	return cmd
}

func serve(ctx context.Context, cfg config) error {
	log, flush, err := logger.NewWithSentry(cfg.Log, cfg.Sentry, middlewares.RequestIDExtractor())
	if err != nil {
		return err
	}
	defer flush(sentryFlushTimeout)

	var m *metrics.Metrics
	var observer routing.Observer
	if !cfg.MetricsOff {
		m = metrics.New()
		observer = m
	}

	c, err := buildCore(ctx, cfg, log, observer)
	if err != nil {
		return err
	}

	checker := health.New(health.WithTimeout(cfg.HealthTimeout), health.WithLogger(log))
	checker.Add("content", c.store.Healthcheck())
	checker.Add("routes", c.routesCheck)

	runOpts := []internal.RunOption{
		internal.WithShutdownTimeout(cfg.ShutdownTimeout),
		internal.WithShutdownHook(func(context.Context) error { return c.store.Close() }),
	}

	html := renderCache(ctx, cfg, log, checker, &runOpts)
	runOpts = append(runOpts, internal.WithShutdownHook(func(context.Context) error { return html.Close() }))

	th := theme.New(os.DirFS(cfg.ThemeDir), theme.WithReload(cfg.ReloadTheme), theme.WithLogger(log))
	runOpts = append(runOpts, internal.WithShutdownHook(func(context.Context) error { return th.Close() }))

	site := internal.NewSite(c.router, c.store, content.NewMarkdown(), th,
		internal.WithRenderCache(html, cfg.RenderCacheTTL),
		internal.WithSiteLogger(log),
	)

	if cfg.WatchRoutes {
		watcher, err := newRouteWatcher(ctx, cfg, log, c, m)
		if err != nil {
			return err
		}
		runOpts = append(runOpts,
			internal.WithStartupHook(watcher.Start),
			internal.WithShutdownHook(func(context.Context) error { return watcher.Stop() }),
		)
	}

	mws := []internal.Middleware{
		middlewares.RequestID(),
		middlewares.AccessLog(log, internal.DefaultLivenessPath, internal.DefaultReadinessPath, internal.DefaultMetricsPath),
		middlewares.Recover(log, middlewares.WithRecoverErrorHandler(site.HandleError)),
		middlewares.Timeout(cfg.RequestTimeout, site.HandleError),
	}
	appOpts := []internal.Option{
		internal.WithLogger(log),
		internal.WithSite(site.Handle),
		internal.WithErrorHandler(site.HandleError),
		internal.WithHealth(health.LivenessHandler(), checker.ReadinessHandler()),
		internal.WithStaticFiles(cfg.AssetsPath, os.DirFS(filepath.Join(cfg.ThemeDir, "assets"))),
	}
	if m != nil {
		m.SetTable(c.tables.Snapshot())
		if sr, ok := html.(cache.StatsReporter); ok {
			m.RegisterCache("render", sr)
		}
		mws = append([]internal.Middleware{m.Middleware}, mws...)
		appOpts = append(appOpts, internal.WithMetrics("", m.Handler()))
	}
	appOpts = append(appOpts, internal.WithMiddleware(mws...))

	log.InfoContext(ctx, "folio configured",
		slog.String("content", cfg.ContentDir),
		slog.String("routes", cfg.RoutesFile),
		slog.String("theme", cfg.ThemeDir),
		slog.Int("content_types", len(c.types)),
		slog.Int("route_entries", c.tables.Snapshot().Len()),
		slog.Bool("redis", cfg.Redis.Enabled()),
	)
	return internal.New(appOpts...).Run(ctx, cfg.Addr, runOpts...)
}

// renderCache prefers Redis so rendered pages survive restarts and are
// shared between replicas. Without it, or when it cannot be reached, an
// in-process LRU is used.
func renderCache(ctx context.Context, cfg config, log *slog.Logger, checker *health.Checker, runOpts *[]internal.RunOption) cache.Cache[string] {
	memory := func() cache.Cache[string] {
		return cache.NewMemory[string](cache.WithMaxEntries(renderCacheEntries), cache.WithDefaultTTL(cfg.RenderCacheTTL))
	}
	if !cfg.Redis.Enabled() {
		return memory()
	}

	client, err := redis.Open(ctx, cfg.Redis, log)
	if err != nil {
		log.WarnContext(ctx, "redis unavailable, using in-memory render cache", slog.Any("error", err))
		return memory()
	}
	checker.AddOptional("redis", redis.Healthcheck(client))
	*runOpts = append(*runOpts, internal.WithShutdownHook(redis.Shutdown(client)))

	return cache.NewRedis[string](client, cache.String{},
		cache.WithNamespace(renderCacheRedisKey),
		cache.WithRedisDefaultTTL(cfg.RenderCacheTTL),
	)
}

// newRouteWatcher reloads the route table on change. The indexer rewrites
// the table after content changes, so the content index is rebuilt too.
func newRouteWatcher(ctx context.Context, cfg config, log *slog.Logger, c *core, m *metrics.Metrics) (*routetable.Watcher, error) {
	return routetable.NewWatcher(cfg.RoutesFile, c.tables,
		routetable.WithWatcherLogger(log),
		routetable.WithReloadCallback(func(t *routetable.Table) {
			if m != nil {
				m.TableReloaded(t)
			}
			if err := c.store.Reload(ctx); err != nil {
				log.ErrorContext(ctx, "content reindex failed", slog.Any("error", err))
			}
		}),
		routetable.WithReloadErrorCallback(func(err error) {
			if m != nil {
				m.TableReloadFailed(err)
			}
		}),
	)
}
