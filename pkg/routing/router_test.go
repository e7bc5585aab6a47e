package routing_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/content"
	"github.com/dmitrymomot/folio/pkg/routetable"
	"github.com/dmitrymomot/folio/pkg/routing"
)

const routesJSON = `{
  "exact": {
    "/hello":  {"type": "single", "file": "posts/hello.md", "content_type": "post", "slug": "hello"},
    "/about":  {"type": "single", "file": "pages/about.md", "content_type": "page", "slug": "about", "template": "page"},
    "/gone":   {"type": "single", "file": "posts/deleted.md", "content_type": "post", "slug": "deleted"},
    "/wip":    {"type": "single", "file": "posts/wip.md", "content_type": "post", "slug": "wip"},
    "/secret": {"type": "single", "file": "posts/unlisted.md", "content_type": "post", "slug": "unlisted"},
    "/blog":   {"type": "archive", "content_type": "post"}
  },
  "redirects": {
    "/old":  {"to": "/hello", "code": 302},
    "/old2": {"to": "/about"}
  },
  "taxonomy": {
    "tags":       {"base": "/tags/"},
    "categories": {"base": "/topics"}
  },
  "reverse": {"post:hello": "/hello"}
}`

const secret = "s3cr3t-token"

func contentFS() fstest.MapFS {
	mt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := func(s string) *fstest.MapFile { return &fstest.MapFile{Data: []byte(s), ModTime: mt} }
	return fstest.MapFS{
		"posts/hello.md":      f("---\ntitle: Hello\ntags: [go, web]\ncategories: [news]\n---\nHi.\n"),
		"posts/wip.md":        f("---\ntitle: WIP\nstatus: draft\ntemplate: draft-post\n---\nSoon.\n"),
		"posts/unlisted.md":   f("---\ntitle: Unlisted\nstatus: unlisted\n---\nShh.\n"),
		"posts/unindexed.md":  f("---\ntitle: Not in routes\nslug: fresh\ndraft: true\ntags: [hidden-term]\n---\nNew.\n"),
		"pages/about.md":      f("---\ntitle: About\n---\nUs.\n"),
		"pages/draft-page.md": f("---\ntitle: Draft page\ndraft: true\n---\nx\n"),
		"notes/idea.md":       f("---\ntitle: Idea\nstatus: scheduled\n---\nLater.\n"),
	}
}

type fixture struct {
	router *routing.Router
	store  *content.Store
	tables *routetable.Store
}

func newFixture(t *testing.T, opts ...routing.Option) fixture {
	t.Helper()

	table, err := routetable.Parse([]byte(routesJSON))
	require.NoError(t, err)
	tables := routetable.NewStore(table)

	types := []content.Type{
		{Name: "post", Pattern: "/blog/{slug}", Dir: "posts"},
		{Name: "note", Pattern: "/blog/{slug}", Dir: "notes"},
		{Name: "page", Pattern: "/{slug}", Dir: "pages"},
	}
	store := content.NewStore(contentFS(), content.WithTypes(types))
	t.Cleanup(func() { _ = store.Close() })

	base := []routing.Option{routing.WithContentTypes(types), routing.WithPreviewSecret(secret)}
	r, err := routing.New(tables, store, append(base, opts...)...)
	require.NoError(t, err)
	return fixture{router: r, store: store, tables: tables}
}

func match(t *testing.T, r *routing.Router, target string) *routing.RouteMatch {
	t.Helper()
	m, err := r.Match(context.Background(), routing.NewRequest(http.MethodGet, target))
	require.NoError(t, err)
	return m
}

func respond(body string) routing.Handler {
	return func(context.Context, *routing.Request, routing.Params) (routing.Outcome, error) {
		return routing.Responded(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(body))
		})), nil
	}
}

func decline(context.Context, *routing.Request, routing.Params) (routing.Outcome, error) {
	return routing.Declined(), nil
}

func TestMatch_ExactSingle(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	m := match(t, fx.router, "/hello")
	require.NotNil(t, m)
	assert.Equal(t, routing.KindSingle, m.Kind())
	require.NotNil(t, m.Item())
	assert.Equal(t, "posts/hello.md", m.Item().File)
	assert.Equal(t, "Hello", m.Item().Title)
	assert.Equal(t, "single", m.Template())
	assert.Equal(t, routing.Params{{Name: "type", Value: "post"}, {Name: "slug", Value: "hello"}}, m.Params())
	assert.Nil(t, m.Query())

	about := match(t, fx.router, "/about/")
	require.NotNil(t, about)
	assert.Equal(t, "page", about.Template(), "entry template wins")
}

func TestMatch_ExactSingle_Terminal(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	// A prefix route that would catch everything must not rescue stale or hidden entries.
	require.NoError(t, fx.router.AddPrefixRoute("/", respond("fallback")))

	tests := []struct {
		name   string
		target string
	}{
		{name: "file deleted since indexing", target: "/gone"},
		{name: "draft without preview", target: "/wip"},
		{name: "draft with preview flag only", target: "/wip?preview=1"},
		{name: "draft with wrong token", target: "/wip?preview=1&token=nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Nil(t, match(t, fx.router, tt.target))
		})
	}
}

func TestMatch_ExactSingle_Unlisted(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	m := match(t, fx.router, "/secret")
	require.NotNil(t, m)
	assert.Equal(t, "Unlisted", m.Item().Title)
}

func TestMatch_ExactSingle_DraftWithPreview(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	m := match(t, fx.router, "/wip?preview=1&token="+secret)
	require.NotNil(t, m)
	assert.Equal(t, content.StatusDraft, m.Item().Status)
	assert.Equal(t, "draft-post", m.Template(), "frontmatter template applies when the entry has none")
}

func TestMatch_Archive(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	m := match(t, fx.router, "/blog?page=2&per_page=5")
	require.NotNil(t, m)
	assert.Equal(t, routing.KindArchive, m.Kind())
	assert.Equal(t, "archive", m.Template())

	q := m.Query()
	require.NotNil(t, q)
	assert.Equal(t, []string{"post"}, q.Types())
	assert.True(t, q.PublishedOnly())
	assert.Equal(t, 2, q.Page())
	assert.Equal(t, 5, q.PerPage())
	assert.Nil(t, m.Item())
}

func TestMatch_StaticRedirects(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	tests := []struct {
		target string
		to     string
		code   int
	}{
		{target: "/old", to: "/hello", code: http.StatusFound},
		{target: "/old2", to: "/about", code: http.StatusMovedPermanently},
		{target: "/old2/", to: "/about", code: http.StatusMovedPermanently},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			t.Parallel()
			m := match(t, fx.router, tt.target)
			require.NotNil(t, m)
			assert.Equal(t, routing.KindRedirect, m.Kind())
			assert.Equal(t, tt.to, m.RedirectURL())
			assert.Equal(t, tt.code, m.RedirectCode())
		})
	}
}

func TestMatch_TrailingSlash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		policy routing.SlashPolicy
		target string
		to     string
	}{
		{name: "forbid strips slash", policy: routing.SlashForbid, target: "/hello/", to: "/hello"},
		{name: "forbid keeps query", policy: routing.SlashForbid, target: "/blog/?page=2", to: "/blog?page=2"},
		{name: "forbid applies to unknown paths", policy: routing.SlashForbid, target: "/nowhere/", to: "/nowhere"},
		{name: "require adds slash", policy: routing.SlashRequire, target: "/hello", to: "/hello/"},
		{name: "require keeps query", policy: routing.SlashRequire, target: "/blog?page=2", to: "/blog/?page=2"},
		{name: "forbid collapses leading slashes", policy: routing.SlashForbid, target: "//evil.example/", to: "/evil.example"},
		{name: "require collapses leading slashes", policy: routing.SlashRequire, target: "//evil.example", to: "/evil.example/"},
		{name: "forbid keeps escaped question mark", policy: routing.SlashForbid, target: "/a%3Fb/", to: "/a%3Fb"},
		{name: "require keeps escaped question mark", policy: routing.SlashRequire, target: "/a%3Fb?x=1", to: "/a%3Fb/?x=1"},
		{name: "forbid escapes spaces", policy: routing.SlashForbid, target: "/a%20b/", to: "/a%20b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fx := newFixture(t, routing.WithTrailingSlash(tt.policy))

			m := match(t, fx.router, tt.target)
			require.NotNil(t, m)
			assert.Equal(t, routing.KindRedirect, m.Kind())
			assert.Equal(t, tt.to, m.RedirectURL())
			assert.Equal(t, http.StatusMovedPermanently, m.RedirectCode())
		})
	}

	t.Run("root is exempt", func(t *testing.T) {
		t.Parallel()
		for _, p := range []routing.SlashPolicy{routing.SlashForbid, routing.SlashRequire} {
			fx := newFixture(t, routing.WithTrailingSlash(p))
			assert.Nil(t, match(t, fx.router, "/"))
		}
	})

	t.Run("compliant paths pass through", func(t *testing.T) {
		t.Parallel()
		forbid := newFixture(t, routing.WithTrailingSlash(routing.SlashForbid))
		assert.Equal(t, routing.KindSingle, match(t, forbid.router, "/hello").Kind())

		req := newFixture(t, routing.WithTrailingSlash(routing.SlashRequire))
		assert.Equal(t, routing.KindSingle, match(t, req.router, "/hello/").Kind())
	})

	t.Run("ignore serves both forms", func(t *testing.T) {
		t.Parallel()
		fx := newFixture(t)
		assert.Equal(t, routing.KindSingle, match(t, fx.router, "/hello").Kind())
		assert.Equal(t, routing.KindSingle, match(t, fx.router, "/hello/").Kind())
	})
}

func TestMatch_SystemRoutes(t *testing.T) {
	t.Parallel()

	t.Run("placeholders capture segments", func(t *testing.T) {
		t.Parallel()
		fx := newFixture(t)

		var got routing.Params
		require.NoError(t, fx.router.AddRoute("/api/{type}/{id}", func(_ context.Context, _ *routing.Request, p routing.Params) (routing.Outcome, error) {
			got = p
			return routing.Matched(routing.NewMatch(routing.KindPlugin, routing.WithParams(p))), nil
		}))

		m := match(t, fx.router, "/api/posts/456")
		require.NotNil(t, m)
		assert.Equal(t, routing.Params{{Name: "type", Value: "posts"}, {Name: "id", Value: "456"}}, got)
		assert.Equal(t, "posts", m.Param("type"))
		assert.Equal(t, "456", m.Param("id"))

		assert.Nil(t, match(t, fx.router, "/api/posts"), "missing segment")
		assert.Nil(t, match(t, fx.router, "/api/posts/456/extra"), "placeholders do not span slashes")
	})

	t.Run("exact patterns are not prefixes", func(t *testing.T) {
		t.Parallel()
		fx := newFixture(t)
		require.NoError(t, fx.router.AddRoute("/x", respond("x")))

		assert.NotNil(t, match(t, fx.router, "/x"))
		assert.Nil(t, match(t, fx.router, "/x/extra"))
	})

	t.Run("raw responses are wrapped as plugin", func(t *testing.T) {
		t.Parallel()
		fx := newFixture(t)
		require.NoError(t, fx.router.AddRoute("/search", respond("results")))

		m := match(t, fx.router, "/search?q=go")
		require.NotNil(t, m)
		assert.Equal(t, routing.KindPlugin, m.Kind())
		assert.Equal(t, routing.RawTemplate, m.Template())

		rec := httptest.NewRecorder()
		m.Response().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search", nil))
		assert.Equal(t, "results", rec.Body.String())
	})

	t.Run("a declining handler ends matching", func(t *testing.T) {
		t.Parallel()
		fx := newFixture(t)
		require.NoError(t, fx.router.AddRoute("/hello", decline))
		require.NoError(t, fx.router.AddRoute("/{page}", respond("later")))

		assert.Nil(t, match(t, fx.router, "/hello"), "neither the later route nor the exact entry is tried")
	})

	t.Run("first registered pattern wins", func(t *testing.T) {
		t.Parallel()
		fx := newFixture(t)
		require.NoError(t, fx.router.AddRoute("/{a}/{b}", respond("generic")))
		require.NoError(t, fx.router.AddRoute("/docs/{page}", respond("docs")))

		m := match(t, fx.router, "/docs/intro")
		require.NotNil(t, m)
		rec := httptest.NewRecorder()
		m.Response().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "generic", rec.Body.String())
	})

	t.Run("re-registering replaces in place", func(t *testing.T) {
		t.Parallel()
		fx := newFixture(t)
		require.NoError(t, fx.router.AddRoute("/{a}/{b}", respond("first")))
		require.NoError(t, fx.router.AddRoute("/docs/{page}", respond("docs")))
		require.NoError(t, fx.router.AddRoute("/{a}/{b}", respond("replaced")))

		m := match(t, fx.router, "/docs/intro")
		require.NotNil(t, m)
		rec := httptest.NewRecorder()
		m.Response().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "replaced", rec.Body.String())
	})

	t.Run("system routes run before exact entries", func(t *testing.T) {
		t.Parallel()
		fx := newFixture(t)
		require.NoError(t, fx.router.AddRoute("/hello", respond("override")))

		assert.Equal(t, routing.KindPlugin, match(t, fx.router, "/hello").Kind())
	})

	t.Run("redirects run before system routes", func(t *testing.T) {
		t.Parallel()
		fx := newFixture(t)
		require.NoError(t, fx.router.AddRoute("/old", respond("never")))

		assert.Equal(t, routing.KindRedirect, match(t, fx.router, "/old").Kind())
	})
}

func TestMatch_PrefixRoutes(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	var rest string
	require.NoError(t, fx.router.AddPrefixRoute("/p/", func(_ context.Context, _ *routing.Request, p routing.Params) (routing.Outcome, error) {
		rest, _ = p.Get("rest")
		return routing.Matched(routing.NewMatch(routing.KindPlugin, routing.WithParams(p))), nil
	}))
	require.NoError(t, fx.router.AddPrefixRoute("/p/deep/", respond("unreachable")))
	require.NoError(t, fx.router.AddPrefixRoute("/off/", decline))

	m := match(t, fx.router, "/p/a")
	require.NotNil(t, m)
	assert.Equal(t, "a", rest)

	m = match(t, fx.router, "/p/a/b")
	require.NotNil(t, m)
	assert.Equal(t, "a/b", rest)
	assert.Equal(t, "a/b", m.Param("rest"))

	m = match(t, fx.router, "/p/deep/x")
	require.NotNil(t, m)
	assert.Equal(t, "deep/x", rest, "registration order, not specificity")

	assert.Nil(t, match(t, fx.router, "/pa"), "prefix stays on the segment boundary")
	assert.Nil(t, match(t, fx.router, "/off/anything"))

	assert.Equal(t, routing.KindSingle, match(t, fx.router, "/hello").Kind(), "exact entries run first")
}

func TestMatch_Taxonomies(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	t.Run("index", func(t *testing.T) {
		t.Parallel()
		m := match(t, fx.router, "/tags")
		require.NotNil(t, m)
		assert.Equal(t, routing.KindTaxonomyIndex, m.Kind())
		assert.Equal(t, "terms", m.Template())

		tc := m.Taxonomy()
		require.NotNil(t, tc)
		assert.Equal(t, "tags", tc.Name)
		assert.Nil(t, tc.Term)
		require.Len(t, tc.Terms, 2)
		assert.Equal(t, "go", tc.Terms[0].Slug)
	})

	t.Run("term", func(t *testing.T) {
		t.Parallel()
		m := match(t, fx.router, "/topics/news?page=3")
		require.NotNil(t, m)
		assert.Equal(t, routing.KindTaxonomy, m.Kind())
		assert.Equal(t, "taxonomy", m.Template())
		assert.Equal(t, "categories", m.Taxonomy().Name)
		assert.Equal(t, "news", m.Taxonomy().Term.Slug)

		q := m.Query()
		require.NotNil(t, q)
		tax, term, ok := q.Taxonomy()
		assert.True(t, ok)
		assert.Equal(t, "categories", tax)
		assert.Equal(t, "news", term)
		assert.True(t, q.PublishedOnly())
		assert.Equal(t, 3, q.Page())
		assert.Empty(t, q.Types())
	})

	t.Run("unknown term is no match", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, match(t, fx.router, "/tags/rust"))
		assert.Nil(t, match(t, fx.router, "/tags/hidden-term"), "terms used only by drafts are hidden")
	})
}

func TestMatch_Preview(t *testing.T) {
	t.Parallel()

	t.Run("serves unindexed drafts with a valid token", func(t *testing.T) {
		t.Parallel()
		fx := newFixture(t)

		m := match(t, fx.router, "/blog/fresh?preview=1&token="+secret)
		require.NotNil(t, m)
		assert.Equal(t, routing.KindSingle, m.Kind())
		assert.Equal(t, "Not in routes", m.Item().Title)
		assert.Equal(t, "post", m.Param("type"))
		assert.Equal(t, "fresh", m.Param("slug"))
	})

	t.Run("falls through to the next pattern", func(t *testing.T) {
		t.Parallel()
		fx := newFixture(t)

		// Both post and note use /blog/{slug}; only a note has this slug.
		m := match(t, fx.router, "/blog/idea?preview=true&token="+secret)
		require.NotNil(t, m)
		assert.Equal(t, "note", m.Param("type"))
		assert.Equal(t, "notes/idea.md", m.Item().File)

		m = match(t, fx.router, "/draft-page?preview=yes&token="+secret)
		require.NotNil(t, m)
		assert.Equal(t, "page", m.Param("type"))

		assert.Nil(t, match(t, fx.router, "/blog/nothing?preview=1&token="+secret))
	})

	t.Run("denied without credentials", func(t *testing.T) {
		t.Parallel()
		fx := newFixture(t)

		for _, target := range []string{
			"/blog/fresh",
			"/blog/fresh?preview=1",
			"/blog/fresh?preview=1&token=",
			"/blog/fresh?preview=1&token=wrong",
			"/blog/fresh?preview=0&token=" + secret,
			"/blog/fresh?preview=false&token=" + secret,
			"/blog/fresh?token=" + secret,
		} {
			assert.Nil(t, match(t, fx.router, target), target)
		}
	})

	t.Run("denied when no secret is configured", func(t *testing.T) {
		t.Parallel()
		fx := newFixture(t, routing.WithPreviewSecret(""))

		assert.Nil(t, match(t, fx.router, "/blog/fresh?preview=1&token="))
		assert.Nil(t, match(t, fx.router, "/wip?preview=1&token="))
	})
}

func TestPreviewAllowed(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	tests := []struct {
		target string
		want   bool
	}{
		{target: "/?preview=1&token=" + secret, want: true},
		{target: "/?preview&token=" + secret, want: true},
		{target: "/?preview=on&token=" + secret, want: true},
		{target: "/?preview=FALSE&token=" + secret, want: false},
		{target: "/?preview=1&token=" + secret + "x", want: false},
		{target: "/?preview=1&token=" + secret[:4], want: false},
		{target: "/?preview=1", want: false},
		{target: "/", want: false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fx.router.PreviewAllowed(routing.NewRequest(http.MethodGet, tt.target)), tt.target)
	}
}

func TestMatch_NoMatch(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	assert.Nil(t, match(t, fx.router, "/does/not/exist"))
	assert.Nil(t, match(t, fx.router, "/"))
}

func TestMatch_SeesOneSnapshot(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	replaced := false
	fx.router.Hooks().BeforeMatch(0, func(_ context.Context, cur routing.Outcome, _ *routing.Request, _ *routing.Router) (routing.Outcome, error) {
		if !replaced {
			fx.tables.Replace(routetable.Empty())
			replaced = true
		}
		return cur, nil
	})

	assert.NotNil(t, match(t, fx.router, "/hello"), "table swapped mid-request is not observed")
	assert.Nil(t, match(t, fx.router, "/hello"), "next request sees the new table")
}

func TestMatch_HandlerErrorsPropagate(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	boom := errors.New("boom")
	require.NoError(t, fx.router.AddRoute("/fail", func(context.Context, *routing.Request, routing.Params) (routing.Outcome, error) {
		return routing.Declined(), boom
	}))
	require.NoError(t, fx.router.AddPrefixRoute("/broken/", func(context.Context, *routing.Request, routing.Params) (routing.Outcome, error) {
		return routing.Declined(), boom
	}))

	for _, target := range []string{"/fail", "/broken/x"} {
		m, err := fx.router.Match(context.Background(), routing.NewRequest(http.MethodGet, target))
		require.ErrorIs(t, err, boom)
		assert.Nil(t, m)
	}
}

type failingRepo struct{ err error }

func (f failingRepo) FindByFile(context.Context, string) (*content.Item, error) { return nil, f.err }
func (f failingRepo) FindBySlug(context.Context, string, string) (*content.Item, error) {
	return nil, f.err
}
func (f failingRepo) Term(context.Context, string, string) (*content.Term, error) { return nil, f.err }
func (f failingRepo) Terms(context.Context, string) ([]*content.Term, error)       { return nil, f.err }

func TestMatch_RepositoryErrors(t *testing.T) {
	t.Parallel()

	table, err := routetable.Parse([]byte(routesJSON))
	require.NoError(t, err)
	boom := errors.New("disk on fire")

	r, err := routing.New(routetable.NewStore(table), failingRepo{err: boom})
	require.NoError(t, err)

	for _, target := range []string{"/hello", "/tags", "/tags/go"} {
		_, err := r.Match(context.Background(), routing.NewRequest(http.MethodGet, target))
		require.ErrorIs(t, err, boom, target)
	}

	notFound, err := routing.New(routetable.NewStore(table), failingRepo{err: content.ErrNotFound})
	require.NoError(t, err)
	m, err := notFound.Match(context.Background(), routing.NewRequest(http.MethodGet, "/tags/go"))
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestURLFor(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	url, ok := fx.router.URLFor("post", "hello")
	assert.True(t, ok)
	assert.Equal(t, "/hello", url)

	url, ok = fx.router.URLFor("page", "about")
	assert.True(t, ok, "derived from exact entries")
	assert.Equal(t, "/about", url)

	_, ok = fx.router.URLFor("post", "missing")
	assert.False(t, ok)

	assert.Equal(t, "/tags/anything", fx.router.URLForTerm("tags", "anything"))
	assert.Equal(t, "/topics/news", fx.router.URLForTerm("categories", "news"))
	assert.Equal(t, "/series/go", fx.router.URLForTerm("series", "go"))
}

func TestNew_InvalidContentType(t *testing.T) {
	t.Parallel()

	_, err := routing.New(nil, failingRepo{}, routing.WithContentTypes([]content.Type{{Name: "post", Pattern: "/blog/{id}"}}))
	require.ErrorIs(t, err, routing.ErrInvalidPattern)

	_, err = routing.New(nil, failingRepo{}, routing.WithContentTypes([]content.Type{{Name: "post", Pattern: "/blog/{slug"}}))
	require.ErrorIs(t, err, routing.ErrInvalidPattern)
}

func TestNew_NilTableSource(t *testing.T) {
	t.Parallel()

	r, err := routing.New(nil, failingRepo{err: content.ErrNotFound})
	require.NoError(t, err)
	assert.Nil(t, match(t, r, "/anything"))
	_, ok := r.URLFor("post", "hello")
	assert.False(t, ok)
}
