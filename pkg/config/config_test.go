package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ProviderChain(t *testing.T) {
	t.Setenv("AI_PRIMARY_PROVIDER", "OpenAI")
	t.Setenv("AI_PRIMARY_API_KEY", "sk-primary")
	t.Setenv("AI_PRIMARY_MODEL", "gpt-test")
	t.Setenv("AI_FALLBACK_PROVIDER", "anthropic")
	t.Setenv("AI_FALLBACK_API_KEY", "sk-fallback")
	t.Setenv("AI_FALLBACK_BASE_URL", "http://proxy.local")
	t.Setenv("AI_TIMEOUT_SECONDS", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.AI.Primary.Type)
	assert.Equal(t, "sk-primary", cfg.AI.Primary.APIKey)
	assert.Equal(t, "gpt-test", cfg.AI.Primary.Model)
	assert.True(t, cfg.AI.Primary.Enabled())
	assert.Equal(t, ProviderAnthropic, cfg.AI.Fallback.Type)
	assert.Equal(t, "http://proxy.local", cfg.AI.Fallback.BaseURL)
	assert.Equal(t, 7*time.Second, cfg.AI.Timeout)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "review_platform", cfg.Database.Database)
	assert.Equal(t, 15*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 4, cfg.Impressions.Workers)
	assert.Equal(t, 256, cfg.Impressions.QueueSize)
	assert.Equal(t, 20, cfg.Aspects.MinTextLength)
	assert.False(t, cfg.AI.Primary.Enabled(), "no key configured")
	assert.Equal(t, "localhost:6379", cfg.Redis.RedisAddr())
}

func TestLoad_RejectsUnknownProvider(t *testing.T) {
	t.Setenv("AI_FALLBACK_PROVIDER", "cohere")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AI_FALLBACK_PROVIDER")
}

func TestLoad_IgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("IMPRESSION_WORKERS", "many")
	t.Setenv("AI_REQUESTS_PER_MINUTE", "fast")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Impressions.Workers)
	assert.Equal(t, 120.0, cfg.AI.RequestsPerMinute)
}

func TestLoad_AllowedOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://reviews.example, https://admin.example,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://reviews.example", "https://admin.example"}, cfg.Server.AllowedOrigins)
}
