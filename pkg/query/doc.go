// Package query describes filtered, paginated content listings.
//
// A Query is a small immutable value: every builder method returns a modified
// copy, so a Query can be shared between goroutines and stored on a route match.
//
//	q := query.New("post").
//	    Published().
//	    WithTerm("tags", "go").
//	    Merge(r.URL.Query())
//
// The query itself does not know how to load content. Repositories accept a
// Query, filter their items, and use [Paginate] to cut the requested page.
package query
