package content

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/folio/pkg/cache"
	"github.com/dmitrymomot/folio/pkg/query"
)

// DefaultTaxonomies are the frontmatter keys treated as classifications.
var DefaultTaxonomies = []string{"tags", "categories"}

const markdownExt = ".md"

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithTaxonomies sets the frontmatter keys treated as taxonomies.
func WithTaxonomies(names ...string) StoreOption {
	return func(s *Store) {
		s.taxonomies = slices.Clone(names)
	}
}

// WithTypes maps content directories to type names, so files under
// "posts/" become items of type "post" when the post type sets dir: posts.
func WithTypes(types []Type) StoreOption {
	return func(s *Store) {
		for _, t := range types {
			if t.Dir != "" {
				s.typeDirs[t.Dir] = t.Name
			}
		}
	}
}

// WithStoreLogger sets the logger used for skipped files and reloads.
func WithStoreLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithParseCache replaces the in-memory cache of parsed files.
func WithParseCache(c cache.Cache[*Item]) StoreOption {
	return func(s *Store) {
		if c != nil {
			s.parsed = c
		}
	}
}

// Store is a content repository backed by Markdown files in an fs.FS.
// It is safe for concurrent use.
type Store struct {
	fsys       fs.FS
	parsed     cache.Cache[*Item]
	typeDirs   map[string]string
	logger     *slog.Logger
	idx        atomic.Pointer[index]
	taxonomies []string
	buildMu    sync.Mutex
}

// index is an immutable view of all content, rebuilt by Reload.
type index struct {
	bySlug map[string]*Item
	terms  map[string]map[string]*Term
	items  []*Item
}

// NewStore creates a repository over fsys. The file tree is indexed lazily
// on first use; call Reload after content changes.
func NewStore(fsys fs.FS, opts ...StoreOption) *Store {
	s := &Store{
		fsys:       fsys,
		taxonomies: slices.Clone(DefaultTaxonomies),
		typeDirs:   map[string]string{},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.parsed == nil {
		s.parsed = cache.NewMemory[*Item](cache.WithDefaultTTL(-1), cache.WithCleanupInterval(0))
	}
	return s
}

// Close releases the parse cache.
func (s *Store) Close() error {
	return s.parsed.Close()
}

// Reload walks the content tree and rebuilds the index.
// Files that fail to parse are logged and skipped.
func (s *Store) Reload(ctx context.Context) error {
	idx := &index{
		bySlug: map[string]*Item{},
		terms:  map[string]map[string]*Term{},
	}

	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if path.Ext(p) != markdownExt || strings.HasPrefix(d.Name(), "_") {
			return nil
		}

		item, err := s.FindByFile(ctx, p)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping content file", slog.String("file", p), slog.Any("error", err))
			return nil
		}
		idx.add(item, s.taxonomies)
		return nil
	})
	if err != nil {
		return fmt.Errorf("content: index: %w", err)
	}

	s.idx.Store(idx)
	s.logger.InfoContext(ctx, "content indexed", slog.Int("items", len(idx.items)))
	return nil
}

func (idx *index) add(item *Item, taxonomies []string) {
	idx.items = append(idx.items, item)

	key := item.Type + ":" + item.Slug
	if _, dup := idx.bySlug[key]; !dup {
		idx.bySlug[key] = item
	}

	// Terms only count published items so drafts do not leak through term archives.
	if item.Status != StatusPublished {
		return
	}
	for _, tax := range taxonomies {
		for _, term := range item.Terms(tax) {
			if idx.terms[tax] == nil {
				idx.terms[tax] = map[string]*Term{}
			}
			t, ok := idx.terms[tax][term]
			if !ok {
				t = &Term{Taxonomy: tax, Slug: term, Name: item.TermName(tax, term)}
				idx.terms[tax][term] = t
			}
			t.Count++
		}
	}
}

func (s *Store) index(ctx context.Context) (*index, error) {
	if idx := s.idx.Load(); idx != nil {
		return idx, nil
	}

	s.buildMu.Lock()
	defer s.buildMu.Unlock()
	if idx := s.idx.Load(); idx != nil {
		return idx, nil
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s.idx.Load(), nil
}

// FindByFile resolves an item by its path relative to the content root.
// A file removed since indexing yields ErrNotFound.
func (s *Store) FindByFile(ctx context.Context, file string) (*Item, error) {
	file = strings.TrimPrefix(file, "/")
	if !fs.ValidPath(file) || path.Ext(file) != markdownExt {
		return nil, ErrNotFound
	}

	info, err := fs.Stat(s.fsys, file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("content: stat %s: %w", file, err)
	}

	if cached, err := s.parsed.Get(ctx, file); err == nil && cached.ModTime.Equal(info.ModTime()) {
		return cached, nil
	}

	data, err := fs.ReadFile(s.fsys, file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", file, err)
	}

	item, err := parseItem(file, data, s.taxonomies, s.typeDirs)
	if err != nil {
		return nil, err
	}
	item.ModTime = info.ModTime()

	_ = s.parsed.Set(ctx, file, item, 0)
	return item, nil
}

// FindBySlug resolves an item of the given type by slug regardless of status.
// Callers decide whether a non-public item may be shown.
func (s *Store) FindBySlug(ctx context.Context, contentType, slug string) (*Item, error) {
	idx, err := s.index(ctx)
	if err != nil {
		return nil, err
	}
	item, ok := idx.bySlug[contentType+":"+slug]
	if !ok {
		return nil, ErrNotFound
	}
	// Re-resolve so edits and deletions since the last index are honored.
	return s.FindByFile(ctx, item.File)
}

// Term looks up a term by slug within a taxonomy.
func (s *Store) Term(ctx context.Context, taxonomy, term string) (*Term, error) {
	idx, err := s.index(ctx)
	if err != nil {
		return nil, err
	}
	t, ok := idx.terms[taxonomy][term]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

// Terms lists the terms of a taxonomy ordered by name.
func (s *Store) Terms(ctx context.Context, taxonomy string) ([]*Term, error) {
	idx, err := s.index(ctx)
	if err != nil {
		return nil, err
	}

	terms := make([]*Term, 0, len(idx.terms[taxonomy]))
	for _, t := range idx.terms[taxonomy] {
		cp := *t
		terms = append(terms, &cp)
	}
	slices.SortFunc(terms, func(a, b *Term) int {
		return cmp.Or(cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)), cmp.Compare(a.Slug, b.Slug))
	})
	return terms, nil
}

// List executes a listing query.
func (s *Store) List(ctx context.Context, q query.Query) (query.Page[*Item], error) {
	idx, err := s.index(ctx)
	if err != nil {
		return query.Page[*Item]{}, err
	}

	taxonomy, term, byTerm := q.Taxonomy()
	matched := make([]*Item, 0, len(idx.items))
	for _, item := range idx.items {
		if !q.MatchesType(item.Type) {
			continue
		}
		if q.PublishedOnly() && item.Status != StatusPublished {
			continue
		}
		if byTerm && !item.HasTerm(taxonomy, term) {
			continue
		}
		matched = append(matched, item)
	}

	field, asc := q.Sort()
	slices.SortStableFunc(matched, func(a, b *Item) int {
		var c int
		switch field {
		case query.SortTitle:
			c = cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		case query.SortSlug:
			c = cmp.Compare(a.Slug, b.Slug)
		default:
			c = a.Date.Compare(b.Date)
		}
		if !asc {
			c = -c
		}
		return cmp.Or(c, cmp.Compare(a.Slug, b.Slug))
	})

	return query.Paginate(matched, q), nil
}

// Healthcheck reports whether the content root is readable.
func (s *Store) Healthcheck() func(context.Context) error {
	return func(ctx context.Context) error {
		if _, err := fs.ReadDir(s.fsys, "."); err != nil {
			return fmt.Errorf("content: root unreadable: %w", err)
		}
		return nil
	}
}
