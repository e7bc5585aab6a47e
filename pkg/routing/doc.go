// Package routing resolves requests for a flat-file site.
//
// A Router runs a fixed pipeline and stops at the first stage that settles
// the request:
//
//  1. before-match hooks
//  2. trailing slash canonicalization (301)
//  3. static redirects from the route table
//  4. system routes, exact or {placeholder} patterns, in registration order
//  5. exact route table entries (single items and archives)
//  6. preview of unpublished items by content type pattern
//  7. prefix routes in registration order
//  8. taxonomy indexes and term archives
//
// Match returns nil with a nil error when nothing matched; the caller renders
// a 404. Stale route table entries and unpublished items without a valid
// preview token also end as nil so drafts cannot be probed for.
//
// System and prefix handlers return an [Outcome]. A handler whose route
// matched but which returns [Declined] ends the request unmatched; later
// routes are not tried.
//
//	r, err := routing.New(tables, store,
//	    routing.WithTrailingSlash(routing.SlashForbid),
//	    routing.WithPreviewSecret(os.Getenv("FOLIO_PREVIEW_SECRET")),
//	    routing.WithContentTypes(types),
//	)
//	_ = r.AddRoute("/api/{type}/{id}", apiHandler)
//	_ = r.AddPrefixRoute("/feeds/", feedHandler)
//
//	m, err := r.Match(ctx, routing.FromHTTP(req))
//
// Registration is not safe concurrently with Match; finish it during boot.
package routing
