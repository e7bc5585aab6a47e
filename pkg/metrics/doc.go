// Package metrics exports folio's Prometheus collectors.
//
// [Metrics] implements routing.Observer, so every Match is counted by the
// pipeline stage that settled it and by the kind of match produced. It also
// tracks route table reloads, render cache hit rates and HTTP traffic.
//
//	m := metrics.New(metrics.WithNamespace("folio"))
//	router, _ := routing.New(tables, store, routing.WithObserver(m))
//	mux.Handle("/metrics", m.Handler())
//
// Collectors are registered on a private registry unless [WithRegistry] is
// given, so several instances can coexist in tests.
package metrics
