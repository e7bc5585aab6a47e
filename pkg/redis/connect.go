package redis

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Open parses cfg.URL (redis:// or rediss://), applies pool settings and pings
// the server, retrying up to cfg.Retries times.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (redis.UniversalClient, error) {
	opts, err := clientOptions(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	attempts := max(cfg.Retries, 1)
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		client := redis.NewClient(opts)
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}
		_ = client.Close()

		logger.WarnContext(ctx, "redis ping failed",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", attempts),
			slog.Any("error", lastErr),
		)
		if attempt == attempts {
			break
		}
		if err := sleep(ctx, time.Duration(attempt)*cfg.RetryInterval); err != nil {
			return nil, errors.Join(ErrConnectionFailed, err)
		}
	}
	return nil, errors.Join(ErrConnectionFailed, lastErr)
}

func clientOptions(cfg Config) (*redis.Options, error) {
	if cfg.URL == "" {
		return nil, ErrEmptyConnectionURL
	}
	if !strings.HasPrefix(cfg.URL, "redis://") && !strings.HasPrefix(cfg.URL, "rediss://") {
		return nil, ErrInvalidURL
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
