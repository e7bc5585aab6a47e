package routing_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/folio/pkg/routing"
)

func TestNewRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target string
		raw    string
		path   string
		page   string
	}{
		{target: "/", raw: "/", path: "/"},
		{target: "/blog/", raw: "/blog/", path: "/blog"},
		{target: "/blog/hello?page=2", raw: "/blog/hello", path: "/blog/hello", page: "2"},
		{target: "/a//", raw: "/a//", path: "/a/"},
		{target: "not a uri", raw: "/", path: "/"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			t.Parallel()
			req := routing.NewRequest("", tt.target)
			assert.Equal(t, tt.raw, req.RawPath)
			assert.Equal(t, tt.path, req.Path)
			assert.Equal(t, tt.page, req.Query.Get("page"))
			assert.Equal(t, http.MethodGet, req.Method)
		})
	}
}

func TestFromHTTP(t *testing.T) {
	t.Parallel()

	hr := httptest.NewRequest(http.MethodHead, "/tags/go/?preview=1", nil)
	req := routing.FromHTTP(hr)
	assert.Equal(t, http.MethodHead, req.Method)
	assert.Equal(t, "/tags/go/", req.RawPath)
	assert.Equal(t, "/tags/go", req.Path)
	assert.True(t, req.Query.Has("preview"))
}

func TestParseSlashPolicy(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]routing.SlashPolicy{
		"":        routing.SlashIgnore,
		"ignore":  routing.SlashIgnore,
		"require": routing.SlashRequire,
		"forbid":  routing.SlashForbid,
	} {
		got, ok := routing.ParseSlashPolicy(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got)
		if in != "" {
			assert.Equal(t, in, got.String())
		}
	}
	_, ok := routing.ParseSlashPolicy("sometimes")
	assert.False(t, ok)
}
