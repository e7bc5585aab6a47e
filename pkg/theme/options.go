package theme

import (
	"html/template"
	"log/slog"
)

// Option configures a Theme.
type Option func(*Theme)

// WithFuncs adds template functions. They override the built-in ones.
func WithFuncs(funcs template.FuncMap) Option {
	return func(t *Theme) {
		for k, v := range funcs {
			t.funcs[k] = v
		}
	}
}

// WithReload re-parses templates on every render. Use while editing a theme.
func WithReload(enabled bool) Option {
	return func(t *Theme) { t.reload = enabled }
}

// WithFallback overrides the template used when the requested one is missing.
// Default: "index".
func WithFallback(name string) Option {
	return func(t *Theme) {
		if name != "" {
			t.fallback = name
		}
	}
}

// WithLogger sets the logger for parse failures.
func WithLogger(l *slog.Logger) Option {
	return func(t *Theme) {
		if l != nil {
			t.logger = l
		}
	}
}
