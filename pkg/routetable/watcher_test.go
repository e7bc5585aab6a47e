package routetable_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/routetable"
)

func TestWatcher(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "routes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"exact": {"/a": {"type": "single", "file": "a.md"}}}`), 0o600))

	store := routetable.NewStore(nil)
	reloaded := make(chan *routetable.Table, 4)
	failed := make(chan error, 4)
	w, err := routetable.NewWatcher(path, store,
		routetable.WithDebounce(10*time.Millisecond),
		routetable.WithReloadCallback(func(t *routetable.Table) {
			select {
			case reloaded <- t:
			default:
			}
		}),
		routetable.WithReloadErrorCallback(func(err error) {
			select {
			case failed <- err:
			default:
			}
		}),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, w.Start(ctx))
	t.Cleanup(func() { _ = w.Stop() })

	_, ok := store.Snapshot().Exact("/a")
	require.True(t, ok, "initial load")

	t.Run("reloads on write", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte(`{"exact": {"/b": {"type": "single", "file": "b.md"}}}`), 0o600))

		require.Eventually(t, func() bool {
			_, ok := store.Snapshot().Exact("/b")
			return ok
		}, 5*time.Second, 10*time.Millisecond)
		require.NotEmpty(t, reloaded)
	})

	t.Run("keeps previous snapshot on bad file", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))

		select {
		case err := <-failed:
			require.Error(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("reload error not reported")
		}

		_, ok := store.Snapshot().Exact("/b")
		require.True(t, ok)
	})
}

func TestWatcher_StartFailsOnMissingFile(t *testing.T) {
	t.Parallel()

	w, err := routetable.NewWatcher(filepath.Join(t.TempDir(), "missing.json"), routetable.NewStore(nil))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	require.Error(t, w.Start(context.Background()))
}
