package internal_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/internal"
)

func TestResponseWriter(t *testing.T) {
	t.Parallel()

	t.Run("write header once", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		rw := internal.NewResponseWriter(rec)
		require.False(t, rw.Written())

		rw.WriteHeader(http.StatusNotFound)
		rw.WriteHeader(http.StatusInternalServerError)

		assert.True(t, rw.Written())
		assert.Equal(t, http.StatusNotFound, rw.Status())
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("implicit 200 on write", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		rw := internal.NewResponseWriter(rec)

		n, err := rw.Write([]byte("hello"))
		require.NoError(t, err)
		assert.Equal(t, 5, n)
		assert.Equal(t, int64(5), rw.Size())
		assert.Equal(t, http.StatusOK, rw.Status())
		assert.True(t, rw.Written())
	})

	t.Run("unwrap", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		rw := internal.NewResponseWriter(rec)
		assert.Same(t, rec, rw.Unwrap())
		rw.Flush()
		assert.True(t, rec.Flushed)
	})
}
