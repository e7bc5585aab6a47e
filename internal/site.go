package internal

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrymomot/folio/pkg/cache"
	"github.com/dmitrymomot/folio/pkg/content"
	"github.com/dmitrymomot/folio/pkg/query"
	"github.com/dmitrymomot/folio/pkg/routing"
	"github.com/dmitrymomot/folio/pkg/theme"
)

// Templates with a fixed role in every theme.
const (
	NotFoundTemplate = "404"
	ErrorTemplate    = "error"
)

// Matcher resolves requests. *routing.Router implements it.
type Matcher interface {
	Match(ctx context.Context, req *routing.Request) (*routing.RouteMatch, error)
	PreviewAllowed(req *routing.Request) bool
}

// Lister runs listing queries. *content.Store implements it.
type Lister interface {
	List(ctx context.Context, q query.Query) (query.Page[*content.Item], error)
}

// Page is the data every theme template receives.
type Page struct {
	Site       map[string]any
	Match      *routing.RouteMatch
	Item       *content.Item
	Listing    *query.Page[*content.Item]
	Taxonomy   *routing.TaxonomyContext
	Params     map[string]string
	Error      *HTTPError
	Path       string
	Content    template.HTML
	StatusCode int
	Preview    bool
}

// SiteOption configures a Site.
type SiteOption func(*Site)

// WithRenderCache caches rendered item bodies in c for ttl. Entries are
// keyed by file and modification time so edits never serve stale HTML.
func WithRenderCache(c cache.Cache[string], ttl time.Duration) SiteOption {
	return func(s *Site) {
		if c != nil {
			s.html = cache.NewLoader(c, ttl)
		}
	}
}

// WithSiteParams exposes params to templates as .Site.
func WithSiteParams(params map[string]any) SiteOption {
	return func(s *Site) {
		s.params = params
	}
}

// WithSiteLogger sets the logger for render failures.
func WithSiteLogger(l *slog.Logger) SiteOption {
	return func(s *Site) {
		if l != nil {
			s.logger = l
		}
	}
}

// Site turns route matches into HTTP responses.
type Site struct {
	matcher  Matcher
	lister   Lister
	markdown content.Renderer
	theme    theme.Renderer
	html     *cache.Loader[string]
	logger   *slog.Logger
	params   map[string]any
}

// NewSite creates the site handler.
func NewSite(m Matcher, l Lister, md content.Renderer, th theme.Renderer, opts ...SiteOption) *Site {
	s := &Site{
		matcher:  m,
		lister:   l,
		markdown: md,
		theme:    th,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle serves one request. Only GET and HEAD reach the router.
func (s *Site) Handle(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		return ErrMethodNotAllowed("")
	}

	req := routing.FromHTTP(r)
	m, err := s.matcher.Match(r.Context(), req)
	if err != nil {
		return ErrInternal("", WithError(err))
	}
	if m == nil {
		return s.notFound(w, r)
	}

	if h := m.Response(); h != nil {
		h.ServeHTTP(w, r)
		return nil
	}

	if m.Kind() == routing.KindRedirect {
		http.Redirect(w, r, m.RedirectURL(), m.RedirectCode())
		return nil
	}

	page := s.page(r, req, m)
	if m.Kind() == routing.KindSingle {
		item := m.Item()
		if item == nil {
			return s.notFound(w, r)
		}
		body, err := s.renderItem(r.Context(), item)
		if err != nil {
			return ErrInternal("", WithError(err))
		}
		page.Content = template.HTML(body) //nolint:gosec // sanitized by the markdown renderer
		if page.Preview || !item.Status.Public() {
			page.Preview = true
			w.Header().Set("Cache-Control", "no-store")
			w.Header().Set("X-Robots-Tag", "noindex")
		}
	}

	if q := m.Query(); q != nil {
		listing, err := s.lister.List(r.Context(), *q)
		if err != nil {
			return ErrInternal("", WithError(err))
		}
		if listing.Page > listing.TotalPages() {
			return s.notFound(w, r)
		}
		page.Listing = &listing
	}

	return s.render(w, r, m.Template(), page)
}

// HandleError renders err with the theme's "error" template, or as plain
// text when the theme has none. It satisfies ErrorHandler.
func (s *Site) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := AsHTTPError(err)
	LogError(s.logger, r, httpErr)

	if httpErr.Code == http.StatusNotFound {
		if err := s.notFound(w, r); err == nil {
			return
		}
	}

	w.Header().Set("Cache-Control", "no-store")
	if s.theme.Has(ErrorTemplate) {
		page := &Page{Site: s.params, Path: r.URL.Path, Error: httpErr, StatusCode: httpErr.Code}
		if err := s.render(w, r, ErrorTemplate, page); err == nil {
			return
		}
	}
	http.Error(w, httpErr.Message, httpErr.Code)
}

func (s *Site) page(r *http.Request, req *routing.Request, m *routing.RouteMatch) *Page {
	return &Page{
		Site:       s.params,
		Match:      m,
		Item:       m.Item(),
		Taxonomy:   m.Taxonomy(),
		Params:     m.Params().Map(),
		Path:       r.URL.Path,
		StatusCode: http.StatusOK,
		Preview:    s.matcher.PreviewAllowed(req),
	}
}

func (s *Site) notFound(w http.ResponseWriter, r *http.Request) error {
	if !s.theme.Has(NotFoundTemplate) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return nil
	}
	page := &Page{Site: s.params, Path: r.URL.Path, StatusCode: http.StatusNotFound}
	return s.render(w, r, NotFoundTemplate, page)
}

// render buffers in the theme, so a template error leaves w untouched and
// the error handler can still answer.
func (s *Site) render(w http.ResponseWriter, r *http.Request, name string, page *Page) error {
	var buf bytes.Buffer
	if err := s.theme.Render(r.Context(), &buf, name, page); err != nil {
		return ErrInternal("", WithError(err))
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(page.StatusCode)
	if r.Method == http.MethodHead {
		return nil
	}
	_, err := buf.WriteTo(w)
	return err
}

func (s *Site) renderItem(ctx context.Context, item *content.Item) (string, error) {
	if s.html == nil {
		return s.markdown.Render(ctx, item)
	}
	key := "html:" + item.File + ":" + strconv.FormatInt(item.ModTime.UnixNano(), 10)
	return s.html.GetOrSet(ctx, key, func(ctx context.Context) (string, error) {
		return s.markdown.Render(ctx, item)
	})
}
