// Package internal holds the folio HTTP application: the chi-based App with
// its operational endpoints and graceful runtime, and the Site handler that
// turns route matches into rendered pages.
//
// # Request flow
//
// The App answers /health/live, /health/ready and /metrics itself, serves
// theme assets from WithStaticFiles mounts, and sends every other path to the
// site handler. The site handler accepts GET and HEAD, resolves the request
// with the content router and dispatches on the match kind:
//
//   - single: the item body is rendered to HTML (cached by file and mod
//     time when WithRenderCache is set) and passed to the item template
//   - archive and taxonomy: the match query is listed and paginated
//   - taxonomy_index: the terms of the taxonomy are passed to "terms"
//   - redirect: answered with the match code
//   - plugin and response matches serve their own handler
//
// No match renders the theme's "404" template, falling back to plain text.
// Preview requests are marked no-store and noindex.
//
// # Errors
//
// Handlers return errors instead of writing them. HTTPError carries the
// status code; any other error is treated as a 500. The ErrorHandler runs
// only while the response is still unwritten:
//
//	app := internal.New(
//	    internal.WithSite(site.Handle),
//	    internal.WithErrorHandler(site.HandleError),
//	)
//
// # Running
//
// Run listens, runs startup hooks, and on SIGINT, SIGTERM or context
// cancellation shuts the server down before running shutdown hooks:
//
//	err := app.Run(ctx, ":8080",
//	    internal.WithStartupHook(watcher.Start),
//	    internal.WithShutdownHook(func(context.Context) error { return watcher.Stop() }),
//	)
package internal
