// Package folio serves a flat-file CMS: Markdown files with YAML
// frontmatter, a route table written by an indexer, and an html/template
// theme.
//
// A request goes through the content router in pkg/routing, which tries
// hooks, trailing-slash policy, redirects, system routes, the route table,
// preview patterns, prefix routes and taxonomy archives in that order. The
// resulting match is rendered by the Site handler.
//
// # Quick Start
//
//	store := content.NewStore(os.DirFS("content"), content.WithTypes(types))
//	tables := routetable.NewStore(table)
//	router, err := routing.New(tables, store, routing.WithContentTypes(types))
//	if err != nil {
//	    return err
//	}
//
//	site := folio.NewSite(router, store, content.NewMarkdown(), theme.New(os.DirFS("theme")))
//	app := folio.New(
//	    folio.WithSite(site.Handle),
//	    folio.WithErrorHandler(site.HandleError),
//	)
//	return app.Run(ctx, ":8080")
//
// The folio command in cmd/folio wires the same pieces from environment
// variables, adding Redis render caching, route table reloads, metrics and
// health probes.
package folio
