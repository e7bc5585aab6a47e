package routetable

import (
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"
)

// EntryType discriminates exact route entries.
type EntryType string

const (
	// EntrySingle references one content file.
	EntrySingle EntryType = "single"
	// EntryArchive references the listing of a content type.
	EntryArchive EntryType = "archive"
)

// Entry is an exact route table entry.
type Entry struct {
	Type        EntryType `json:"type"`
	File        string    `json:"file,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	Slug        string    `json:"slug,omitempty"`
	Template    string    `json:"template,omitempty"`
}

// Redirect is a static redirect rule.
type Redirect struct {
	To   string `json:"to"`
	Code int    `json:"code,omitempty"`
}

// Taxonomy is a configured classification with its archive base path.
type Taxonomy struct {
	Name string `json:"-"`
	Base string `json:"base"`
}

// Document is the JSON shape written by the content indexer.
type Document struct {
	Exact     map[string]Entry    `json:"exact"`
	Redirects map[string]Redirect `json:"redirects"`
	Taxonomy  map[string]Taxonomy `json:"taxonomy"`
	Reverse   map[string]string   `json:"reverse"`
}

// Table is an immutable route table snapshot.
type Table struct {
	exact      map[string]Entry
	redirects  map[string]Redirect
	reverse    map[string]string
	derived    map[string]string
	taxonomies []Taxonomy
}

// Empty returns a table with no routes.
func Empty() *Table {
	return &Table{
		exact:     map[string]Entry{},
		redirects: map[string]Redirect{},
		reverse:   map[string]string{},
		derived:   map[string]string{},
	}
}

// New validates a document and builds a table from it.
// URL keys are normalized the same way request paths are.
func New(doc Document) (*Table, error) {
	t := Empty()

	// Sorted so "/a" and "/a/" collide the same way on every load.
	for _, url := range slices.Sorted(maps.Keys(doc.Exact)) {
		e := doc.Exact[url]
		if err := validateEntry(url, e); err != nil {
			return nil, err
		}
		key := NormalizePath(url)
		if _, dup := t.exact[key]; dup {
			return nil, fmt.Errorf("%w: %q duplicates %q after normalization", ErrInvalidEntry, url, key)
		}
		t.exact[key] = e
	}

	for _, from := range slices.Sorted(maps.Keys(doc.Redirects)) {
		r := doc.Redirects[from]
		if r.To == "" {
			return nil, fmt.Errorf("%w: %q has no target", ErrInvalidRedirect, from)
		}
		if r.Code == 0 {
			r.Code = http.StatusMovedPermanently
		}
		if r.Code < 300 || r.Code > 399 {
			return nil, fmt.Errorf("%w: %q has non-redirect code %d", ErrInvalidRedirect, from, r.Code)
		}
		key := NormalizePath(from)
		if _, dup := t.redirects[key]; dup {
			return nil, fmt.Errorf("%w: %q duplicates %q after normalization", ErrInvalidRedirect, from, key)
		}
		t.redirects[key] = r
	}

	for _, name := range slices.Sorted(maps.Keys(doc.Taxonomy)) {
		tax := doc.Taxonomy[name]
		if name == "" || tax.Base == "" {
			return nil, fmt.Errorf("%w: %q needs a name and a base path", ErrInvalidTaxonomy, name)
		}
		tax.Name = name
		t.taxonomies = append(t.taxonomies, tax)
	}

	maps.Copy(t.reverse, doc.Reverse)

	// Derived index for URL generation when the indexer omits "reverse".
	// The lexically first URL wins so the result does not depend on map order.
	for _, url := range slices.Sorted(maps.Keys(t.exact)) {
		e := t.exact[url]
		if e.Type != EntrySingle || e.Slug == "" {
			continue
		}
		key := ReverseKey(e.ContentType, e.Slug)
		if _, ok := t.derived[key]; !ok {
			t.derived[key] = url
		}
	}

	return t, nil
}

func validateEntry(url string, e Entry) error {
	if !strings.HasPrefix(url, "/") {
		return fmt.Errorf("%w: %q must start with /", ErrInvalidEntry, url)
	}
	switch e.Type {
	case EntrySingle:
		if e.File == "" {
			return fmt.Errorf("%w: single %q has no file", ErrInvalidEntry, url)
		}
	case EntryArchive:
		if e.ContentType == "" {
			return fmt.Errorf("%w: archive %q has no content_type", ErrInvalidEntry, url)
		}
	default:
		return fmt.Errorf("%w: %q has unknown type %q", ErrInvalidEntry, url, e.Type)
	}
	return nil
}

// Exact looks up an exact entry by normalized path.
func (t *Table) Exact(path string) (Entry, bool) {
	e, ok := t.exact[path]
	return e, ok
}

// Redirect looks up a redirect rule by normalized path.
func (t *Table) Redirect(path string) (Redirect, bool) {
	r, ok := t.redirects[path]
	return r, ok
}

// Taxonomies returns the configured taxonomies ordered by name.
func (t *Table) Taxonomies() []Taxonomy {
	return slices.Clone(t.taxonomies)
}

// Taxonomy looks up a taxonomy by name.
func (t *Table) Taxonomy(name string) (Taxonomy, bool) {
	for _, tax := range t.taxonomies {
		if tax.Name == name {
			return tax, true
		}
	}
	return Taxonomy{}, false
}

// URLFor returns the URL of the content item identified by type and slug.
// The indexer-maintained reverse index is consulted first.
func (t *Table) URLFor(contentType, slug string) (string, bool) {
	key := ReverseKey(contentType, slug)
	if url, ok := t.reverse[key]; ok {
		return url, true
	}
	url, ok := t.derived[key]
	return url, ok
}

// Len returns the number of exact entries.
func (t *Table) Len() int { return len(t.exact) }

// ReverseKey builds the reverse index key for a content item.
func ReverseKey(contentType, slug string) string {
	return contentType + ":" + slug
}

// NormalizePath strips a single trailing slash except for the root path.
// An empty path becomes "/".
func NormalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		return p[:len(p)-1]
	}
	return p
}
