package routing

import (
	"context"
	"strings"
)

// Handler serves a system or prefix route. Returning Declined after the
// route matched ends matching for the request with no result.
type Handler func(ctx context.Context, req *Request, params Params) (Outcome, error)

type systemRoute struct {
	pattern *pattern
	handler Handler
}

type prefixRoute struct {
	handler Handler
	prefix  string
}

// registry keeps routes in registration order. Registering the same key again
// swaps the handler in place.
type registry[R any] struct {
	index  map[string]int
	routes []R
}

func (r *registry[R]) put(key string, route R) {
	if r.index == nil {
		r.index = map[string]int{}
	}
	if i, ok := r.index[key]; ok {
		r.routes[i] = route
		return
	}
	r.index[key] = len(r.routes)
	r.routes = append(r.routes, route)
}

func (r *registry[R]) all() []R { return r.routes }

func (r *registry[R]) len() int { return len(r.routes) }

// AddRoute registers a system route. The pattern may contain {name}
// placeholders and is compiled immediately. Registration must finish before
// the router serves requests.
func (r *Router) AddRoute(pattern string, h Handler) error {
	if h == nil {
		return ErrNilHandler
	}
	p, err := compilePattern(pattern)
	if err != nil {
		return err
	}
	r.system.put(pattern, systemRoute{pattern: p, handler: h})
	r.logger.Debug("system route registered", "pattern", pattern)
	return nil
}

// AddPrefixRoute registers a handler for every path starting with prefix.
// Include the trailing separator ("/api/", not "/api") to stay on a segment boundary.
func (r *Router) AddPrefixRoute(prefix string, h Handler) error {
	if h == nil {
		return ErrNilHandler
	}
	if !strings.HasPrefix(prefix, "/") {
		return ErrInvalidPrefix
	}
	r.prefix.put(prefix, prefixRoute{prefix: prefix, handler: h})
	r.logger.Debug("prefix route registered", "prefix", prefix)
	return nil
}
