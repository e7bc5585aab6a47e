package routing

import (
	"net/http"
	"slices"

	"github.com/dmitrymomot/folio/pkg/content"
	"github.com/dmitrymomot/folio/pkg/query"
)

// Kind discriminates how a request resolved. Consumers switch on Kind
// before reading any payload.
type Kind string

const (
	KindSingle        Kind = "single"
	KindArchive       Kind = "archive"
	KindRedirect      Kind = "redirect"
	KindTaxonomy      Kind = "taxonomy"
	KindTaxonomyIndex Kind = "taxonomy_index"
	KindPlugin        Kind = "plugin"
	KindResponse      Kind = "response"
)

const (
	// DefaultTemplate is used when a match names no template.
	DefaultTemplate = "index"

	// RawTemplate marks matches whose Response writes the full reply.
	RawTemplate = "__raw__"

	// DefaultRedirectCode applies to redirect matches built without a code.
	DefaultRedirectCode = http.StatusFound
)

// TaxonomyContext describes the taxonomy a match belongs to.
// Term is set for KindTaxonomy, Terms for KindTaxonomyIndex.
type TaxonomyContext struct {
	Term  *content.Term
	Name  string
	Terms []*content.Term
}

// RouteMatch is the immutable result of resolving a request.
type RouteMatch struct {
	item         *content.Item
	query        *query.Query
	taxonomy     *TaxonomyContext
	response     http.Handler
	kind         Kind
	template     string
	redirectURL  string
	params       Params
	redirectCode int
}

// MatchOption sets a RouteMatch field at construction.
type MatchOption func(*RouteMatch)

// WithItem attaches the resolved content item.
func WithItem(item *content.Item) MatchOption {
	return func(m *RouteMatch) { m.item = item }
}

// WithQuery attaches the listing query.
func WithQuery(q query.Query) MatchOption {
	return func(m *RouteMatch) { m.query = &q }
}

// WithTaxonomy attaches taxonomy context.
func WithTaxonomy(tc TaxonomyContext) MatchOption {
	return func(m *RouteMatch) {
		tc.Terms = slices.Clone(tc.Terms)
		m.taxonomy = &tc
	}
}

// WithTemplate sets the template name. Empty keeps the default.
func WithTemplate(name string) MatchOption {
	return func(m *RouteMatch) {
		if name != "" {
			m.template = name
		}
	}
}

// WithRedirect sets the redirect target and status code.
// A zero code means DefaultRedirectCode.
func WithRedirect(url string, code int) MatchOption {
	return func(m *RouteMatch) {
		m.redirectURL = url
		if code != 0 {
			m.redirectCode = code
		}
	}
}

// WithParams attaches route parameters.
func WithParams(p Params) MatchOption {
	return func(m *RouteMatch) { m.params = slices.Clone(p) }
}

// WithParam appends a single route parameter.
func WithParam(name, value string) MatchOption {
	return func(m *RouteMatch) { m.params = append(m.params, Param{Name: name, Value: value}) }
}

// WithResponse attaches a handler that writes the complete response.
func WithResponse(h http.Handler) MatchOption {
	return func(m *RouteMatch) { m.response = h }
}

// NewMatch constructs a RouteMatch of the given kind.
func NewMatch(kind Kind, opts ...MatchOption) *RouteMatch {
	m := &RouteMatch{
		kind:         kind,
		template:     DefaultTemplate,
		redirectCode: DefaultRedirectCode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Redirect builds a redirect match.
func Redirect(url string, code int) *RouteMatch {
	return NewMatch(KindRedirect, WithRedirect(url, code))
}

// Raw wraps a handler as a match of the given kind with RawTemplate.
func Raw(kind Kind, h http.Handler, opts ...MatchOption) *RouteMatch {
	return NewMatch(kind, append(opts, WithResponse(h), WithTemplate(RawTemplate))...)
}

// Kind says how the request should be served.
func (m *RouteMatch) Kind() Kind { return m.kind }

// Item is the resolved content for KindSingle.
func (m *RouteMatch) Item() *content.Item { return m.item }

// Query returns the listing query for archives and taxonomy terms.
// It may be nil even for those kinds when a handler built the match without one.
func (m *RouteMatch) Query() *query.Query {
	if m.query == nil {
		return nil
	}
	q := *m.query
	return &q
}

// Taxonomy returns the taxonomy context for taxonomy and index matches, or nil.
func (m *RouteMatch) Taxonomy() *TaxonomyContext {
	if m.taxonomy == nil {
		return nil
	}
	tc := *m.taxonomy
	tc.Terms = slices.Clone(tc.Terms)
	return &tc
}

// Template is the theme template to render. RawTemplate marks a handler response.
func (m *RouteMatch) Template() string { return m.template }

// RedirectURL is the Location for KindRedirect.
func (m *RouteMatch) RedirectURL() string { return m.redirectURL }

// RedirectCode is the 3xx status for KindRedirect.
func (m *RouteMatch) RedirectCode() int { return m.redirectCode }

// Params returns a copy of the route parameters.
func (m *RouteMatch) Params() Params { return slices.Clone(m.params) }

// Param returns the named route parameter or "".
func (m *RouteMatch) Param(name string) string {
	v, _ := m.params.Get(name)
	return v
}

// Response returns the handler that writes the whole response, or nil.
func (m *RouteMatch) Response() http.Handler { return m.response }
