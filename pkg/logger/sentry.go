package logger

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig enables error reporting when DSN is set.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	Release     string `env:"SENTRY_RELEASE"`
	// Warnings are kept as Sentry logs unless MinLevel is error.
	MinLevel slog.Level
}

// NewWithSentry logs to the base handler of cfg and, when a DSN is set, to
// Sentry as well: errors become issues, warnings become searchable logs.
// The returned flush must run before exit so buffered events are sent.
func NewWithSentry(cfg Config, sc SentryConfig, extractors ...ContextExtractor) (*slog.Logger, func(time.Duration), error) {
	base, err := cfg.Handler(os.Stdout)
	if err != nil {
		return nil, nil, err
	}
	noflush := func(time.Duration) {}

	if sc.DSN == "" {
		return slog.New(WithExtractors(base, extractors...)), noflush, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         sc.DSN,
		Environment: sc.Environment,
		Release:     sc.Release,
		EnableLogs:  true,
	}); err != nil {
		slog.New(base).Error("sentry init failed, logging to stdout only", slog.Any("error", err))
		return slog.New(WithExtractors(base, extractors...)), noflush, nil
	}

	logLevels := []slog.Level{slog.LevelWarn, slog.LevelError}
	if sc.MinLevel >= slog.LevelError {
		logLevels = []slog.Level{slog.LevelError}
	}
	sh := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevels,
	}.NewSentryHandler(context.Background())

	flush := func(timeout time.Duration) { sentry.Flush(timeout) }
	return slog.New(WithExtractors(fanout{base, sh}, extractors...)), flush, nil
}
