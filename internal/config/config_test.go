package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModelID)
	assert.Equal(t, 20*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 5*time.Second, cfg.CatalogTimeout)
	assert.Equal(t, 500, cfg.LLMMaxTokens)
	assert.Equal(t, 10, cfg.HistoryLimit)
	assert.Equal(t, 20, cfg.InteractionCap)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("ADMIN_USER_ID", "123456789")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("INTERACTION_CAP", "10")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, int64(123456789), cfg.AdminUserID)
	assert.Equal(t, 5*time.Second, cfg.LLMTimeout)
	assert.True(t, cfg.RedisTLS)
	assert.Equal(t, 10, cfg.InteractionCap)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("ADMIN_USER_ID", "not-a-number")
	t.Setenv("LLM_TIMEOUT", "soon")
	t.Setenv("REDIS_TLS", "yep")

	cfg := Load()

	assert.Equal(t, int64(0), cfg.AdminUserID)
	assert.Equal(t, 20*time.Second, cfg.LLMTimeout)
	assert.False(t, cfg.RedisTLS)
}
