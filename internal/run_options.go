package internal

import (
	"context"
	"log/slog"
	"net"
	"time"
)

// RunOption configures the server runtime.
type RunOption func(*runConfig)

type runConfig struct {
	logger          *slog.Logger
	listener        net.Listener
	startupHooks    []func(context.Context) error
	shutdownHooks   []func(context.Context) error
	shutdownTimeout time.Duration
}

func buildRunConfig(opts ...RunOption) *runConfig {
	cfg := &runConfig{shutdownTimeout: defaultShutdownTimeout}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithShutdownTimeout bounds graceful shutdown. Default: 30s.
func WithShutdownTimeout(d time.Duration) RunOption {
	return func(cfg *runConfig) {
		if d > 0 {
			cfg.shutdownTimeout = d
		}
	}
}

// WithStartupHook runs fn before the server accepts connections.
// A failing hook aborts startup. Hooks must not block.
func WithStartupHook(fn func(context.Context) error) RunOption {
	return func(cfg *runConfig) {
		cfg.startupHooks = append(cfg.startupHooks, fn)
	}
}

// WithShutdownHook runs fn after the server stopped accepting requests.
// Hooks run in registration order.
func WithShutdownHook(fn func(context.Context) error) RunOption {
	return func(cfg *runConfig) {
		cfg.shutdownHooks = append(cfg.shutdownHooks, fn)
	}
}

// WithListener serves on ln instead of listening on the address.
func WithListener(ln net.Listener) RunOption {
	return func(cfg *runConfig) {
		cfg.listener = ln
	}
}

// WithRunLogger sets the logger for server lifecycle events.
func WithRunLogger(l *slog.Logger) RunOption {
	return func(cfg *runConfig) {
		cfg.logger = l
	}
}
