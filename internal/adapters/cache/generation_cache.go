package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/Pranavupp12/review-platform/internal/domain/providers"
	"github.com/Pranavupp12/review-platform/internal/infrastructure/observability"
)

const generationKeyPrefix = "generation"

// CachedGenerator wraps a TextGenerator so identical prompts to the same
// provider are answered from cache. Only answers the caller accepted are stored,
// and a rejected cached answer is evicted. Cache failures never fail a generation.
type CachedGenerator struct {
	generator  providers.TextGenerator
	cache      providers.CacheProvider
	ttlSeconds int
}

// NewCachedGenerator creates a caching decorator around generator
func NewCachedGenerator(generator providers.TextGenerator, cache providers.CacheProvider, ttlSeconds int) *CachedGenerator {
	return &CachedGenerator{
		generator:  generator,
		cache:      cache,
		ttlSeconds: ttlSeconds,
	}
}

// Name returns the wrapped provider name so logs and metrics stay per provider
func (g *CachedGenerator) Name() string {
	return g.generator.Name()
}

// Generate returns the cached completion for prompt or calls the provider
func (g *CachedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	logger := observability.LoggerFromContext(ctx)
	key := generationCacheKey(g.generator.Name(), prompt)

	cached, err := g.cache.Get(ctx, key)
	if err == nil {
		logger.Debug().Str("provider", g.Name()).Msg("generation cache hit")
		return string(cached), nil
	}
	if !errors.Is(err, providers.ErrCacheMiss) {
		logger.Warn().Err(err).Str("provider", g.Name()).Msg("generation cache read failed")
	}

	return g.generator.Generate(ctx, prompt)
}

// Accepted stores answer for prompt
func (g *CachedGenerator) Accepted(ctx context.Context, prompt, answer string) {
	key := generationCacheKey(g.generator.Name(), prompt)
	if err := g.cache.Set(ctx, key, []byte(answer), g.ttlSeconds); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("provider", g.Name()).Msg("generation cache write failed")
	}
}

// Rejected evicts any stored answer for prompt so the provider is asked again
func (g *CachedGenerator) Rejected(ctx context.Context, prompt string) {
	key := generationCacheKey(g.generator.Name(), prompt)
	if err := g.cache.Delete(ctx, key); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("provider", g.Name()).Msg("generation cache evict failed")
	}
}

func generationCacheKey(provider, prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return fmt.Sprintf("%s:%s:%s", generationKeyPrefix, provider, hex.EncodeToString(sum[:]))
}
