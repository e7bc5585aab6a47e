package theme

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/dmitrymomot/folio/pkg/cache"
)

const (
	// Ext is the file extension of theme templates.
	Ext = ".html"

	// PartialsGlob matches templates shared by every page template.
	PartialsGlob = "partials/*" + Ext
)

// Renderer renders a named template into w.
type Renderer interface {
	Render(ctx context.Context, w io.Writer, name string, data any) error
	Has(name string) bool
}

// Theme loads html/template files from a file system. A page template
// "single" lives at single.html and may use any {{define}} from partials/.
type Theme struct {
	fsys     fs.FS
	parsed   *cache.Loader[*template.Template]
	logger   *slog.Logger
	funcs    template.FuncMap
	fallback string
	reload   bool
}

// New creates a theme over fsys.
func New(fsys fs.FS, opts ...Option) *Theme {
	t := &Theme{
		fsys:     fsys,
		logger:   slog.New(slog.DiscardHandler),
		funcs:    builtinFuncs(),
		fallback: "index",
	}
	for _, opt := range opts {
		opt(t)
	}
	mem := cache.NewMemory[*template.Template](cache.WithDefaultTTL(-1), cache.WithCleanupInterval(0))
	t.parsed = cache.NewLoader[*template.Template](mem, 0)
	return t
}

// Close releases the parse cache.
func (t *Theme) Close() error {
	return t.parsed.Cache().Close()
}

// Has reports whether the theme defines name, without the fallback.
func (t *Theme) Has(name string) bool {
	if !validName(name) {
		return false
	}
	_, err := fs.Stat(t.fsys, name+Ext)
	return err == nil
}

// Render executes name, or the fallback template when name is missing.
// Output is buffered so a failing template writes nothing to w.
func (t *Theme) Render(ctx context.Context, w io.Writer, name string, data any) error {
	resolved := name
	if !t.Has(resolved) {
		if !t.Has(t.fallback) {
			return fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		t.logger.DebugContext(ctx, "template missing, using fallback",
			slog.String("template", name), slog.String("fallback", t.fallback))
		resolved = t.fallback
	}

	tmpl, err := t.lookup(ctx, resolved)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRenderFailed, resolved, err)
	}
	_, err = buf.WriteTo(w)
	return err
}

func (t *Theme) lookup(ctx context.Context, name string) (*template.Template, error) {
	if t.reload {
		return t.parse(name)
	}
	return t.parsed.GetOrSet(ctx, name, func(context.Context) (*template.Template, error) {
		return t.parse(name)
	})
}

func (t *Theme) parse(name string) (*template.Template, error) {
	src, err := fs.ReadFile(t.fsys, name+Ext)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrParseFailed, name, err)
	}

	tmpl, err := template.New(name).Funcs(t.funcs).Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParseFailed, name, err)
	}

	partials, err := fs.Glob(t.fsys, PartialsGlob)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParseFailed, name, err)
	}
	if len(partials) > 0 {
		if tmpl, err = tmpl.ParseFS(t.fsys, partials...); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrParseFailed, name, err)
		}
	}
	return tmpl, nil
}

func validName(name string) bool {
	if name == "" || strings.HasPrefix(name, "_") {
		return false
	}
	return fs.ValidPath(name) && path.Ext(name) == ""
}

func builtinFuncs() template.FuncMap {
	return template.FuncMap{
		"date": func(layout string, t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format(layout)
		},
		"lower": strings.ToLower,
		"join":  strings.Join,

		// safeHTML marks already sanitized markup as safe.
		"safeHTML": func(s string) template.HTML { return template.HTML(s) }, //nolint:gosec
	}
}
