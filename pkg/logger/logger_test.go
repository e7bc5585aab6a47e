package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/logger"
)

type ctxKey struct{}

func requestID(ctx context.Context) (slog.Attr, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	if !ok || id == "" {
		return slog.Attr{}, false
	}
	return slog.String("request_id", id), true
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestNewWithConfig_Extractors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := logger.NewWithConfig(logger.Config{Level: "debug"}, &buf, requestID, nil)
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
	log.With("component", "router").WithGroup("match").DebugContext(ctx, "resolved", slog.String("stage", "exact"))

	m := decode(t, &buf)
	assert.Equal(t, "resolved", m["msg"])
	assert.Equal(t, "router", m["component"])
	group, ok := m["match"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "exact", group["stage"])
	assert.Equal(t, "req-1", group["request_id"])
}

func TestNewWithConfig_NoValueInContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := logger.NewWithConfig(logger.Config{}, &buf, requestID)
	require.NoError(t, err)

	log.InfoContext(context.Background(), "started")
	m := decode(t, &buf)
	assert.NotContains(t, m, "request_id")
}

func TestConfig_Handler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     logger.Config
		debug   bool
		text    bool
		wantErr error
	}{
		{name: "defaults", cfg: logger.Config{}},
		{name: "debug text", cfg: logger.Config{Level: "DEBUG", Format: "text"}, debug: true, text: true},
		{name: "warn", cfg: logger.Config{Level: "warn", Format: "json"}},
		{name: "bad format", cfg: logger.Config{Format: "xml"}, wantErr: logger.ErrInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			h, err := tt.cfg.Handler(&buf)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.debug, h.Enabled(context.Background(), slog.LevelDebug))

			slog.New(h).Error("x")
			if tt.text {
				assert.Contains(t, buf.String(), "level=ERROR")
			} else {
				assert.Contains(t, buf.String(), `"level":"ERROR"`)
			}
		})
	}

	_, err := logger.Config{Level: "loud"}.Handler(&bytes.Buffer{})
	require.Error(t, err)
}

func TestNewWithSentry_NoDSN(t *testing.T) {
	t.Parallel()

	log, flush, err := logger.NewWithSentry(logger.Config{}, logger.SentryConfig{})
	require.NoError(t, err)
	require.NotNil(t, log)
	require.NotNil(t, flush)
	flush(0)
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	log := logger.Discard()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
