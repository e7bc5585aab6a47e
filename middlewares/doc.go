// Package middlewares provides the net/http middleware folio mounts in
// front of the site.
//
// # Request ID
//
// RequestID keeps an upstream X-Request-ID or generates a UUIDv7, stores it
// in the request context and echoes it in the response. Pair it with the
// log extractor so every log line carries request_id:
//
//	log := logger.New(middlewares.RequestIDExtractor())
//	app := internal.New(internal.WithMiddleware(middlewares.RequestID()))
//
// # Recover
//
// Recover logs a panic with its stack and renders a 500 through the error
// handler when the response has not started:
//
//	middlewares.Recover(log, middlewares.WithRecoverErrorHandler(site.HandleError))
//
// # Timeout
//
// Timeout places a deadline on the request context and answers 504 when a
// handler gives up because of it.
//
// # Access log
//
// AccessLog writes method, path, status, size and duration per request.
package middlewares
