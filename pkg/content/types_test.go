package content_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/content"
)

func TestParseTypes(t *testing.T) {
	t.Parallel()

	types, err := content.ParseTypes([]byte(`
post:
  pattern: /blog/{slug}
  template: post
  dir: posts
page: /{slug}
doc:
  pattern: /docs/{slug}
`))
	require.NoError(t, err)
	assert.Equal(t, []content.Type{
		{Name: "post", Pattern: "/blog/{slug}", Template: "post", Dir: "posts"},
		{Name: "page", Pattern: "/{slug}", Dir: "page"},
		{Name: "doc", Pattern: "/docs/{slug}", Dir: "doc"},
	}, types)
}

func TestParseTypes_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{name: "not yaml", doc: "post: [unclosed"},
		{name: "top level list", doc: "- post"},
		{name: "relative pattern", doc: "post: blog/{slug}"},
		{name: "no slug placeholder", doc: "post: /blog/{id}"},
		{name: "list value", doc: "post: [/a/{slug}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := content.ParseTypes([]byte(tt.doc))
			require.ErrorIs(t, err, content.ErrInvalidTypes)
		})
	}
}

func TestParseTypes_Empty(t *testing.T) {
	t.Parallel()

	types, err := content.ParseTypes(nil)
	require.NoError(t, err)
	assert.Empty(t, types)
}

func TestLoadTypes(t *testing.T) {
	t.Parallel()
	fsys := fstest.MapFS{"content_types.yaml": {Data: []byte("post: /blog/{slug}\n")}}

	types, err := content.LoadTypes(fsys, "content_types.yaml")
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, "post", types[0].Name)

	_, err = content.LoadTypes(fsys, "missing.yaml")
	require.ErrorIs(t, err, content.ErrTypesMissing)
}
