package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Pranavupp12/review-platform/internal/adapters/cache"
	"github.com/Pranavupp12/review-platform/internal/domain/providers"
)

type namedGenerator string

func (g namedGenerator) Name() string { return string(g) }

func (g namedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return "", nil
}

type nopCache struct{}

func (nopCache) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, providers.ErrCacheMiss
}
func (nopCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	return nil
}
func (nopCache) Delete(ctx context.Context, key string) error { return nil }

func TestWithGenerationCache_KeepsChainOrder(t *testing.T) {
	generators := []providers.TextGenerator{namedGenerator("openai/gpt"), namedGenerator("anthropic/claude")}

	cached := withGenerationCache(generators, nopCache{}, 60)

	assert.Len(t, cached, 2)
	assert.Equal(t, "openai/gpt", cached[0].Name())
	assert.Equal(t, "anthropic/claude", cached[1].Name())
	assert.IsType(t, &cache.CachedGenerator{}, cached[0])
}
