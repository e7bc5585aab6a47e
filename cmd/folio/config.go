package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/redis"
	"github.com/dmitrymomot/folio/pkg/routing"
)

// config is read from the environment. Nested structs keep their own tags.
type config struct {
	Log    logger.Config
	Sentry logger.SentryConfig
	Redis  redis.Config

	Addr          string `env:"FOLIO_ADDR" envDefault:":8080"`
	ContentDir    string `env:"FOLIO_CONTENT_DIR" envDefault:"content"`
	RoutesFile    string `env:"FOLIO_ROUTES_FILE" envDefault:"routes.json"`
	TypesFile     string `env:"FOLIO_TYPES_FILE" envDefault:"content_types.yaml"`
	ThemeDir      string `env:"FOLIO_THEME_DIR" envDefault:"theme"`
	AssetsPath    string `env:"FOLIO_ASSETS_PATH" envDefault:"/assets/"`
	TrailingSlash string `env:"FOLIO_TRAILING_SLASH" envDefault:"ignore"`
	PreviewSecret string `env:"FOLIO_PREVIEW_SECRET"`

	Taxonomies []string `env:"FOLIO_TAXONOMIES" envDefault:"tags,categories" envSeparator:","`

	RequestTimeout  time.Duration `env:"FOLIO_REQUEST_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"FOLIO_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	RenderCacheTTL  time.Duration `env:"FOLIO_RENDER_CACHE_TTL" envDefault:"1h"`
	HealthTimeout   time.Duration `env:"FOLIO_HEALTH_TIMEOUT" envDefault:"3s"`

	WatchRoutes bool `env:"FOLIO_WATCH_ROUTES" envDefault:"true"`
	ReloadTheme bool `env:"FOLIO_RELOAD_THEME"`
	MetricsOff  bool `env:"FOLIO_METRICS_DISABLED"`
}

var errInvalidConfig = errors.New("folio: invalid configuration")

func loadConfig() (config, error) {
	cfg, err := env.ParseAs[config]()
	if err != nil {
		return config{}, errors.Join(errInvalidConfig, err)
	}
	if _, ok := routing.ParseSlashPolicy(cfg.TrailingSlash); !ok {
		return config{}, fmt.Errorf("%w: FOLIO_TRAILING_SLASH=%q (want ignore, require or forbid)", errInvalidConfig, cfg.TrailingSlash)
	}
	return cfg, nil
}

func (c config) slashPolicy() routing.SlashPolicy {
	p, _ := routing.ParseSlashPolicy(c.TrailingSlash)
	return p
}
