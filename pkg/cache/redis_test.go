package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/cache"
)

func newMiniredis(t *testing.T) (*miniredis.Miniredis, goredis.UniversalClient) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedis_GetSet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mr, client := newMiniredis(t)

	c := cache.NewRedis(client, cache.String{}, cache.WithNamespace("html"))

	_, err := c.Get(ctx, "missing")
	require.ErrorIs(t, err, cache.ErrNotFound)

	require.NoError(t, c.Set(ctx, "posts/hello.md", "<p>hello</p>", time.Minute))
	v, err := c.Get(ctx, "posts/hello.md")
	require.NoError(t, err)
	require.Equal(t, "<p>hello</p>", v)

	raw, err := mr.Get("html:posts/hello.md")
	require.NoError(t, err)
	require.Equal(t, "<p>hello</p>", raw)

	mr.FastForward(2 * time.Minute)
	_, err = c.Get(ctx, "posts/hello.md")
	require.ErrorIs(t, err, cache.ErrNotFound)

	st := c.Stats()
	require.Equal(t, uint64(1), st.Hits)
	require.Equal(t, uint64(2), st.Misses)
}

func TestRedis_TTL(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mr, client := newMiniredis(t)

	c := cache.NewRedis[int](client, nil, cache.WithRedisDefaultTTL(30*time.Second))
	require.NoError(t, c.Set(ctx, "default", 1, 0))
	require.NoError(t, c.Set(ctx, "forever", 2, -1))

	require.Equal(t, 30*time.Second, mr.TTL("default"))
	require.Zero(t, mr.TTL("forever"))
}

func TestRedis_JSONRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, client := newMiniredis(t)

	type page struct {
		Title string `json:"title"`
		Count int    `json:"count"`
	}
	c := cache.NewRedis[page](client, nil)
	require.NoError(t, c.Set(ctx, "p", page{Title: "Hello", Count: 3}, time.Minute))

	v, err := c.Get(ctx, "p")
	require.NoError(t, err)
	require.Equal(t, page{Title: "Hello", Count: 3}, v)
}

func TestRedis_UnmarshalError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mr, client := newMiniredis(t)

	require.NoError(t, mr.Set("broken", "{not json"))
	c := cache.NewRedis[map[string]int](client, nil)

	_, err := c.Get(ctx, "broken")
	require.ErrorIs(t, err, cache.ErrUnmarshal)
}

func TestRedis_ClearNamespace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mr, client := newMiniredis(t)

	c := cache.NewRedis(client, cache.String{}, cache.WithNamespace("html"))
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, c.Set(ctx, k, k, time.Minute))
	}
	require.NoError(t, mr.Set("other", "keep"))

	require.NoError(t, c.Clear(ctx))

	_, err := c.Get(ctx, "a")
	require.ErrorIs(t, err, cache.ErrNotFound)
	require.True(t, mr.Exists("other"))
}

func TestRedis_DeleteAndLoader(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, client := newMiniredis(t)

	c := cache.NewRedis(client, cache.String{})
	l := cache.NewLoader[string](c, time.Minute)

	calls := 0
	render := func(context.Context) (string, error) {
		calls++
		return "<h1>x</h1>", nil
	}
	for range 2 {
		v, err := l.GetOrSet(ctx, "k", render)
		require.NoError(t, err)
		require.Equal(t, "<h1>x</h1>", v)
	}
	require.Equal(t, 1, calls)

	require.NoError(t, c.Delete(ctx, "k"))
	_, err := l.GetOrSet(ctx, "k", render)
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}
