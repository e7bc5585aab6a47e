package routing

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/folio/pkg/content"
	"github.com/dmitrymomot/folio/pkg/query"
	"github.com/dmitrymomot/folio/pkg/routetable"
)

const (
	singleTemplate        = "single"
	archiveTemplate       = "archive"
	taxonomyTemplate      = "taxonomy"
	taxonomyIndexTemplate = "terms"
)

// TableSource hands out the current route table. The router reads it once per Match.
type TableSource interface {
	Snapshot() *routetable.Table
}

// Repository resolves content for the router. Lookups that find nothing
// return an error wrapping content.ErrNotFound.
type Repository interface {
	FindByFile(ctx context.Context, file string) (*content.Item, error)
	FindBySlug(ctx context.Context, contentType, slug string) (*content.Item, error)
	Term(ctx context.Context, taxonomy, term string) (*content.Term, error)
	Terms(ctx context.Context, taxonomy string) ([]*content.Term, error)
}

type previewRoute struct {
	pattern  *pattern
	typeName string
	template string
}

// Router resolves requests to RouteMatch values.
type Router struct {
	table         TableSource
	repo          Repository
	hooks         *Hooks
	observer      Observer
	logger        *slog.Logger
	types         []content.Type
	previewSecret string
	preview       []previewRoute
	system        registry[systemRoute]
	prefix        registry[prefixRoute]
	slash         SlashPolicy
}

// New creates a router. Content type patterns are compiled here and must
// contain a {slug} placeholder.
func New(table TableSource, repo Repository, opts ...Option) (*Router, error) {
	r := &Router{
		table:    table,
		repo:     repo,
		hooks:    NewHooks(),
		observer: nopObserver{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, t := range r.types {
		p, err := compilePattern(t.Pattern)
		if err != nil {
			return nil, fmt.Errorf("content type %s: %w", t.Name, err)
		}
		if !p.has("slug") {
			return nil, fmt.Errorf("%w: content type %s: pattern %q lacks {slug}", ErrInvalidPattern, t.Name, t.Pattern)
		}
		r.preview = append(r.preview, previewRoute{pattern: p, typeName: t.Name, template: t.Template})
	}
	return r, nil
}

// Hooks returns the before-match chain.
func (r *Router) Hooks() *Hooks { return r.hooks }

func (r *Router) snapshot() *routetable.Table {
	if r.table == nil {
		return routetable.Empty()
	}
	if t := r.table.Snapshot(); t != nil {
		return t
	}
	return routetable.Empty()
}

// stageFunc reports done when the stage settled the request; a nil match
// with done set means the request ends unmatched.
type stageFunc func(ctx context.Context, req *Request, t *routetable.Table) (m *RouteMatch, done bool, err error)

// Match runs the pipeline and returns the first result. A nil match with a
// nil error means nothing matched. Errors come from handlers, hooks or the
// repository and are returned unchanged.
func (r *Router) Match(ctx context.Context, req *Request) (*RouteMatch, error) {
	start := time.Now()
	table := r.snapshot()

	stages := []struct {
		run  stageFunc
		name Stage
	}{
		{name: StageHooks, run: r.matchHooks},
		{name: StageSlash, run: r.matchSlash},
		{name: StageRedirect, run: r.matchRedirect},
		{name: StageSystem, run: r.matchSystem},
		{name: StageExact, run: r.matchExact},
		{name: StagePreview, run: r.matchPreview},
		{name: StagePrefix, run: r.matchPrefix},
		{name: StageTaxonomy, run: r.matchTaxonomy},
	}

	for _, s := range stages {
		m, done, err := s.run(ctx, req, table)
		if err != nil {
			r.observer.ObserveError(s.name, err)
			return nil, err
		}
		if done {
			r.observer.ObserveMatch(s.name, m, time.Since(start))
			return m, nil
		}
	}

	r.observer.ObserveMatch(StageUnmatched, nil, time.Since(start))
	return nil, nil
}

func (r *Router) matchHooks(ctx context.Context, req *Request, _ *routetable.Table) (*RouteMatch, bool, error) {
	out, err := r.hooks.run(ctx, req, r)
	if err != nil {
		return nil, false, err
	}
	if m := out.resolve(KindResponse); m != nil {
		return m, true, nil
	}
	return nil, false, nil
}

func (r *Router) matchSlash(_ context.Context, req *Request, _ *routetable.Table) (*RouteMatch, bool, error) {
	raw := req.RawPath
	if raw == "" || raw == "/" {
		return nil, false, nil
	}

	var target string
	switch hasSlash := strings.HasSuffix(raw, "/"); {
	case r.slash == SlashForbid && hasSlash:
		target = req.Path
	case r.slash == SlashRequire && !hasSlash:
		target = raw + "/"
	default:
		return nil, false, nil
	}
	return Redirect(localURL(target, req.Query), http.StatusMovedPermanently), true, nil
}

// localURL re-encodes a decoded path as a same-origin redirect target.
// Leading slashes collapse to one so "//host" cannot leave the site.
func localURL(path string, q url.Values) string {
	u := url.URL{
		Path:     "/" + strings.TrimLeft(path, "/"),
		RawQuery: q.Encode(),
	}
	return u.String()
}

func (r *Router) matchRedirect(_ context.Context, req *Request, t *routetable.Table) (*RouteMatch, bool, error) {
	rd, ok := t.Redirect(req.Path)
	if !ok {
		return nil, false, nil
	}
	return Redirect(rd.To, cmp.Or(rd.Code, http.StatusMovedPermanently)), true, nil
}

// matchSystem settles the request as soon as a pattern matches, even if the
// handler declines.
func (r *Router) matchSystem(ctx context.Context, req *Request, _ *routetable.Table) (*RouteMatch, bool, error) {
	for _, route := range r.system.all() {
		params, ok := route.pattern.match(req.Path)
		if !ok {
			continue
		}
		out, err := route.handler(ctx, req, params)
		if err != nil {
			return nil, true, err
		}
		return out.resolve(KindPlugin), true, nil
	}
	return nil, false, nil
}

func (r *Router) matchExact(ctx context.Context, req *Request, t *routetable.Table) (*RouteMatch, bool, error) {
	entry, ok := t.Exact(req.Path)
	if !ok {
		return nil, false, nil
	}

	switch entry.Type {
	case routetable.EntryArchive:
		return NewMatch(KindArchive,
			WithQuery(query.New(entry.ContentType).Published().Merge(req.Query)),
			WithTemplate(cmp.Or(entry.Template, archiveTemplate)),
			WithParam("type", entry.ContentType),
		), true, nil

	case routetable.EntrySingle:
		item, err := r.repo.FindByFile(ctx, entry.File)
		if errors.Is(err, content.ErrNotFound) {
			r.logger.DebugContext(ctx, "route table entry is stale", slog.String("path", req.Path), slog.String("file", entry.File))
			return nil, true, nil
		}
		if err != nil {
			return nil, true, err
		}
		if !item.Status.Public() && !r.PreviewAllowed(req) {
			return nil, true, nil
		}
		return NewMatch(KindSingle,
			WithItem(item),
			WithTemplate(cmp.Or(entry.Template, item.Template, singleTemplate)),
			WithParam("type", cmp.Or(entry.ContentType, item.Type)),
			WithParam("slug", cmp.Or(entry.Slug, item.Slug)),
		), true, nil
	}

	// routetable.New rejects other entry types.
	return nil, true, nil
}

// matchPreview serves items absent from the route table, drafts included,
// to requests holding the preview token.
func (r *Router) matchPreview(ctx context.Context, req *Request, _ *routetable.Table) (*RouteMatch, bool, error) {
	if len(r.preview) == 0 || !r.PreviewAllowed(req) {
		return nil, false, nil
	}

	for _, pr := range r.preview {
		params, ok := pr.pattern.match(req.Path)
		if !ok {
			continue
		}
		slug, _ := params.Get("slug")
		item, err := r.repo.FindBySlug(ctx, pr.typeName, slug)
		if errors.Is(err, content.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, true, err
		}
		return NewMatch(KindSingle,
			WithItem(item),
			WithTemplate(cmp.Or(item.Template, pr.template, singleTemplate)),
			WithParams(append(Params{{Name: "type", Value: pr.typeName}}, params...)),
		), true, nil
	}
	return nil, false, nil
}

func (r *Router) matchPrefix(ctx context.Context, req *Request, _ *routetable.Table) (*RouteMatch, bool, error) {
	for _, route := range r.prefix.all() {
		rest, ok := cutPrefix(req.Path, route.prefix)
		if !ok {
			continue
		}
		out, err := route.handler(ctx, req, Params{{Name: "rest", Value: rest}})
		if err != nil {
			return nil, true, err
		}
		return out.resolve(KindPlugin), true, nil
	}
	return nil, false, nil
}

// cutPrefix also accepts the normalized form of the prefix itself, so
// "/api/" serves "/api" with an empty rest.
func cutPrefix(path, prefix string) (string, bool) {
	if rest, ok := strings.CutPrefix(path, prefix); ok {
		return rest, true
	}
	if len(prefix) > 1 && path+"/" == prefix {
		return "", true
	}
	return "", false
}

func (r *Router) matchTaxonomy(ctx context.Context, req *Request, t *routetable.Table) (*RouteMatch, bool, error) {
	for _, tax := range t.Taxonomies() {
		base := strings.TrimSuffix(tax.Base, "/")

		if req.Path == base {
			terms, err := r.repo.Terms(ctx, tax.Name)
			if err != nil {
				return nil, true, err
			}
			return NewMatch(KindTaxonomyIndex,
				WithTaxonomy(TaxonomyContext{Name: tax.Name, Terms: terms}),
				WithTemplate(taxonomyIndexTemplate),
				WithParam("taxonomy", tax.Name),
			), true, nil
		}

		slug, ok := strings.CutPrefix(req.Path, base+"/")
		if !ok || slug == "" {
			continue
		}
		term, err := r.repo.Term(ctx, tax.Name, slug)
		if errors.Is(err, content.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, true, err
		}
		return NewMatch(KindTaxonomy,
			WithTaxonomy(TaxonomyContext{Name: tax.Name, Term: term}),
			WithQuery(query.New().Published().WithTerm(tax.Name, term.Slug).Merge(req.Query)),
			WithTemplate(taxonomyTemplate),
			WithParam("taxonomy", tax.Name),
			WithParam("term", term.Slug),
		), true, nil
	}
	return nil, false, nil
}

// URLFor returns the public URL of a content item.
func (r *Router) URLFor(contentType, slug string) (string, bool) {
	return r.snapshot().URLFor(contentType, slug)
}

// URLForTerm joins the taxonomy base and term without checking the term
// exists. An unconfigured taxonomy is assumed to live at "/{taxonomy}".
func (r *Router) URLForTerm(taxonomy, term string) string {
	base := "/" + taxonomy
	if tax, ok := r.snapshot().Taxonomy(taxonomy); ok {
		base = strings.TrimSuffix(tax.Base, "/")
	}
	return base + "/" + term
}
