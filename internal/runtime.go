package internal

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

type runtimeConfig struct {
	handler         http.Handler
	logger          *slog.Logger
	listener        net.Listener
	address         string
	startupHooks    []func(context.Context) error
	shutdownHooks   []func(context.Context) error
	shutdownTimeout time.Duration
}

// runServer starts the HTTP server and blocks until shutdown.
func runServer(ctx context.Context, cfg runtimeConfig) error {
	if cfg.address == "" {
		cfg.address = ":8080"
	}
	if cfg.shutdownTimeout == 0 {
		cfg.shutdownTimeout = defaultShutdownTimeout
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	for _, hook := range cfg.startupHooks {
		if err := hook(ctx); err != nil {
			return errors.Join(err, runHooks(logger, cfg.shutdownHooks, cfg.shutdownTimeout))
		}
	}

	server := &http.Server{
		Addr:              cfg.address,
		Handler:           cfg.handler,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	ln := cfg.listener
	if ln == nil {
		var err error
		if ln, err = net.Listen("tcp", server.Addr); err != nil {
			return errors.Join(err, runHooks(logger, cfg.shutdownHooks, cfg.shutdownTimeout))
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if hookErr := runHooks(logger, cfg.shutdownHooks, cfg.shutdownTimeout); hookErr != nil {
		err = errors.Join(err, hookErr)
	}
	if err != nil {
		logger.Error("shutdown completed with errors", slog.Any("error", err))
		return err
	}
	logger.Info("shutdown completed")
	return nil
}

func runHooks(logger *slog.Logger, hooks []func(context.Context) error, timeout time.Duration) error {
	if len(hooks) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	for _, hook := range hooks {
		if err := hook(ctx); err != nil {
			logger.Error("shutdown hook failed", slog.Any("error", err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
