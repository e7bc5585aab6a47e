package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/routing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "content", cfg.ContentDir)
	assert.Equal(t, []string{"tags", "categories"}, cfg.Taxonomies)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.WatchRoutes)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, routing.SlashIgnore, cfg.slashPolicy())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("FOLIO_ADDR", ":9000")
	t.Setenv("FOLIO_TAXONOMIES", "series")
	t.Setenv("FOLIO_TRAILING_SLASH", "require")
	t.Setenv("FOLIO_RENDER_CACHE_TTL", "5m")
	t.Setenv("FOLIO_LOG_FORMAT", "text")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, []string{"series"}, cfg.Taxonomies)
	assert.Equal(t, routing.SlashRequire, cfg.slashPolicy())
	assert.Equal(t, 5*time.Minute, cfg.RenderCacheTTL)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"slash policy", "FOLIO_TRAILING_SLASH", "sometimes"},
		{"duration", "FOLIO_REQUEST_TIMEOUT", "soon"},
		{"bool", "FOLIO_WATCH_ROUTES", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := loadConfig()
			require.ErrorIs(t, err, errInvalidConfig)
		})
	}
}
