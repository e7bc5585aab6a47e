package folio_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio"
	"github.com/dmitrymomot/folio/pkg/content"
	"github.com/dmitrymomot/folio/pkg/routetable"
	"github.com/dmitrymomot/folio/pkg/routing"
	"github.com/dmitrymomot/folio/pkg/theme"
)

func TestSiteEndToEnd(t *testing.T) {
	t.Parallel()

	table, err := routetable.Parse([]byte(`{"exact": {"/": {"type": "single", "file": "pages/home.md"}}}`))
	require.NoError(t, err)

	store := content.NewStore(fstest.MapFS{
		"pages/home.md": {Data: []byte("---\ntitle: Home\n---\nWelcome **home**.\n")},
	})
	t.Cleanup(func() { _ = store.Close() })

	router, err := routing.New(routetable.NewStore(table), store)
	require.NoError(t, err)

	th := theme.New(fstest.MapFS{
		"index.html": {Data: []byte(`<h1>{{.Item.Title}}</h1>{{.Content}}`)},
	})
	site := folio.NewSite(router, store, content.NewMarkdown(), th)
	app := folio.New(folio.WithSite(site.Handle), folio.WithErrorHandler(site.HandleError))

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Home</h1>")
	assert.Contains(t, rec.Body.String(), "<strong>home</strong>")

	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
