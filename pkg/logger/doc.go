// Package logger builds the slog loggers used across folio.
//
// Request-scoped values are attached through context extractors, so
// handlers log with the request context and get request_id for free:
//
//	log := logger.New(middlewares.RequestIDExtractor())
//	log.InfoContext(r.Context(), "page rendered", slog.String("path", r.URL.Path))
//
// NewWithSentry adds Sentry fan-out when SENTRY_DSN is set. Errors are
// reported as issues and warnings kept as logs; without a DSN it behaves
// like NewWithConfig on stdout.
//
//	log, flush, err := logger.NewWithSentry(cfg.Log, cfg.Sentry, extractors...)
//	if err != nil {
//		return err
//	}
//	defer flush(2 * time.Second)
package logger
