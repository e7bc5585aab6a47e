// Package cache provides a generic cache with in-memory and Redis backends.
//
// folio uses it for two things: parsed content items, which always live in
// process memory, and rendered HTML, which can be shared across instances
// through Redis.
//
//	var c cache.Cache[string] = cache.NewMemory[string](cache.WithMaxEntries(1024))
//	if client != nil {
//	    c = cache.NewRedis(client, cache.String{}, cache.WithNamespace("folio:html"))
//	}
//	html := cache.NewLoader(c, 24*time.Hour)
//	out, err := html.GetOrSet(ctx, key, render)
//
// [Loader.GetOrSet] collapses concurrent misses for a key into one call, so a
// cold page hit by many requests at once is rendered a single time.
//
// Both backends implement [StatsReporter]; pkg/metrics exports the counters.
package cache
