package query

import (
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Pagination defaults.
const (
	DefaultPerPage = 10
	MaxPerPage     = 100
	// MaxPage keeps Offset from overflowing at any page size.
	MaxPage = math.MaxInt / MaxPerPage
)

// Sort fields understood by repositories.
const (
	SortDate  = "date"
	SortTitle = "title"
	SortSlug  = "slug"
)

// Request parameters read by Merge.
const (
	ParamPage    = "page"
	ParamPerPage = "per_page"
	ParamSort    = "sort"
	ParamOrder   = "order"
)

// Query is an immutable listing description.
type Query struct {
	types     []string
	taxonomy  string
	term      string
	sort      string
	page      int
	perPage   int
	published bool
	asc       bool
}

// New creates a query scoped to the given content types.
// No types means all types. Results default to newest first.
func New(types ...string) Query {
	return Query{
		types:   slices.Clone(types),
		sort:    SortDate,
		page:    1,
		perPage: DefaultPerPage,
	}
}

// Published restricts the listing to published items.
func (q Query) Published() Query {
	q.published = true
	return q
}

// WithTerm restricts the listing to items classified under term in taxonomy.
func (q Query) WithTerm(taxonomy, term string) Query {
	q.taxonomy = taxonomy
	q.term = term
	return q
}

// WithPage sets the page number and page size. Out-of-range values are clamped.
func (q Query) WithPage(page, perPage int) Query {
	q.page = clampPage(page)
	q.perPage = clampPerPage(perPage)
	return q
}

// WithSort sets the sort field and direction. Unknown fields are ignored.
func (q Query) WithSort(field string, asc bool) Query {
	if isSortField(field) {
		q.sort = field
		q.asc = asc
	}
	return q
}

// Merge applies pagination and sorting parameters from a query string.
// Malformed values are ignored so a bad URL never fails a listing.
func (q Query) Merge(values url.Values) Query {
	if len(values) == 0 {
		return q
	}

	if n, err := strconv.Atoi(values.Get(ParamPage)); err == nil && n > 0 {
		q.page = clampPage(n)
	}
	if n, err := strconv.Atoi(values.Get(ParamPerPage)); err == nil && n > 0 {
		q.perPage = clampPerPage(n)
	}
	if field := strings.ToLower(values.Get(ParamSort)); isSortField(field) {
		q.sort = field
		// Title and slug read naturally A-Z, dates newest first.
		q.asc = field != SortDate
	}
	switch strings.ToLower(values.Get(ParamOrder)) {
	case "asc":
		q.asc = true
	case "desc":
		q.asc = false
	}

	return q
}

// Types returns the content types the query is scoped to.
func (q Query) Types() []string { return slices.Clone(q.types) }

// MatchesType reports whether items of type t belong to the listing.
func (q Query) MatchesType(t string) bool {
	return len(q.types) == 0 || slices.Contains(q.types, t)
}

// Taxonomy returns the taxonomy filter and term, if any.
func (q Query) Taxonomy() (taxonomy, term string, ok bool) {
	return q.taxonomy, q.term, q.taxonomy != ""
}

// PublishedOnly reports whether unpublished items are excluded.
func (q Query) PublishedOnly() bool { return q.published }

// Sort returns the sort field and whether it is ascending.
func (q Query) Sort() (field string, asc bool) { return q.sort, q.asc }

// Page returns the 1-based page number.
func (q Query) Page() int { return clampPage(q.page) }

// PerPage returns the page size.
func (q Query) PerPage() int { return clampPerPage(q.perPage) }

// Offset returns the number of items skipped before the current page.
func (q Query) Offset() int { return (q.Page() - 1) * q.PerPage() }

func clampPage(n int) int {
	return min(max(n, 1), MaxPage)
}

func clampPerPage(n int) int {
	if n <= 0 {
		return DefaultPerPage
	}
	return min(n, MaxPerPage)
}

func isSortField(field string) bool {
	switch field {
	case SortDate, SortTitle, SortSlug:
		return true
	}
	return false
}
