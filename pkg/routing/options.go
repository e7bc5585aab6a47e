package routing

import (
	"log/slog"

	"github.com/dmitrymomot/folio/pkg/content"
)

// SlashPolicy controls trailing slash canonicalization.
type SlashPolicy int

const (
	// SlashIgnore serves a path with and without a trailing slash.
	SlashIgnore SlashPolicy = iota
	// SlashRequire redirects "/a" to "/a/".
	SlashRequire
	// SlashForbid redirects "/a/" to "/a".
	SlashForbid
)

// ParseSlashPolicy maps "ignore", "require" and "forbid" to a policy.
func ParseSlashPolicy(s string) (SlashPolicy, bool) {
	switch s {
	case "", "ignore":
		return SlashIgnore, true
	case "require":
		return SlashRequire, true
	case "forbid":
		return SlashForbid, true
	}
	return SlashIgnore, false
}

func (p SlashPolicy) String() string {
	switch p {
	case SlashRequire:
		return "require"
	case SlashForbid:
		return "forbid"
	}
	return "ignore"
}

// Option configures a Router.
type Option func(*Router)

// WithTrailingSlash sets the canonical form of paths. Default: SlashIgnore.
func WithTrailingSlash(p SlashPolicy) Option {
	return func(r *Router) { r.slash = p }
}

// WithPreviewSecret sets the token that unlocks preview mode. Empty disables preview.
func WithPreviewSecret(secret string) Option {
	return func(r *Router) { r.previewSecret = secret }
}

// WithContentTypes sets the URL patterns preview mode tries, in order.
func WithContentTypes(types []content.Type) Option {
	return func(r *Router) { r.types = types }
}

// WithHooks sets the before-match chain. Without it the router owns an empty chain.
func WithHooks(h *Hooks) Option {
	return func(r *Router) {
		if h != nil {
			r.hooks = h
		}
	}
}

// WithObserver reports stage outcomes to o. A nil observer is ignored.
func WithObserver(o Observer) Option {
	return func(r *Router) {
		if o != nil {
			r.observer = o
		}
	}
}

// WithLogger sets the router logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}
