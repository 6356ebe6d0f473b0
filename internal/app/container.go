// Package app wires configuration, clients, adapters and services for the binaries.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Pranavupp12/review-platform/internal/adapters/cache"
	"github.com/Pranavupp12/review-platform/internal/adapters/database"
	"github.com/Pranavupp12/review-platform/internal/api/handlers"
	"github.com/Pranavupp12/review-platform/internal/application/services"
	"github.com/Pranavupp12/review-platform/internal/domain/providers"
	"github.com/Pranavupp12/review-platform/internal/infrastructure/clients/ai"
	"github.com/Pranavupp12/review-platform/internal/infrastructure/clients/postgres"
	"github.com/Pranavupp12/review-platform/internal/infrastructure/clients/redis"
	"github.com/Pranavupp12/review-platform/pkg/config"
)

// Container holds the long-lived dependencies shared by the API and the CLI
type Container struct {
	Config *config.Config

	Postgres *postgres.Client
	Redis    *redis.Client

	Chain       *services.ExtractionChain
	Resolver    *services.IntentResolver
	Search      *services.SearchService
	Aspects     *services.ReviewAspectService
	Backfill    *services.AspectBackfillService
	Impressions *services.ImpressionRecorder
}

// New connects to Postgres (required) and Redis (optional, generation cache only),
// builds the provider chain and every service
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("initialize PostgreSQL client: %w", err)
	}

	c := &Container{Config: cfg, Postgres: pgClient}

	synonyms, err := services.LoadSynonymIndex(cfg.Search.SynonymsPath)
	if err != nil {
		pgClient.Close()
		return nil, err
	}

	generators, err := ai.BuildProviders(cfg.AI)
	if err != nil {
		pgClient.Close()
		return nil, err
	}
	if len(generators) == 0 {
		log.Warn().Msg("No text-generation provider configured; routing and search use deterministic fallbacks")
	}

	if cfg.AI.CacheEnabled && len(generators) > 0 {
		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			// The cache is an optimisation; providers are still called directly
			log.Warn().Err(err).Msg("Redis unavailable, generation cache disabled")
		} else {
			c.Redis = redisClient
			generators = withGenerationCache(generators, cache.NewRedisAdapter(redisClient.Client()), cfg.AI.CacheTTLSeconds)
			log.Info().Int("ttl_seconds", cfg.AI.CacheTTLSeconds).Msg("Generation cache enabled")
		}
	}

	companies := database.NewCompanyAdapter(pgClient)
	catalog := database.NewCatalogAdapter(pgClient)
	reviews := database.NewReviewAdapter(pgClient)
	impressions := database.NewImpressionAdapter(pgClient)

	taxonomy := services.NewTaxonomyService(catalog)
	c.Chain = services.NewExtractionChain(generators...)

	c.Impressions = services.NewImpressionRecorder(
		impressions,
		cfg.Impressions.Workers,
		cfg.Impressions.QueueSize,
		cfg.Impressions.WriteTimeout,
	)
	c.Resolver = services.NewIntentResolver(companies, catalog, taxonomy, synonyms, c.Chain)
	c.Search = services.NewSearchService(companies, taxonomy, synonyms, c.Chain, c.Impressions)
	c.Aspects = services.NewReviewAspectService(c.Chain, cfg.Aspects.MinTextLength)
	c.Backfill = services.NewAspectBackfillService(
		reviews,
		c.Aspects,
		cfg.Aspects.BackfillWorkers,
		cfg.Aspects.BackfillBatch,
	)

	log.Info().Int("providers", c.Chain.Len()).Msg("Services initialized")
	return c, nil
}

// HealthChecks lists the dependencies /health probes
func (c *Container) HealthChecks() map[string]handlers.Pinger {
	checks := map[string]handlers.Pinger{"postgres": c.Postgres}
	if c.Redis != nil {
		checks["redis"] = c.Redis
	}
	return checks
}

// Close drains queued impressions, then releases connections
func (c *Container) Close(ctx context.Context) error {
	var errs []error
	if c.Impressions != nil {
		if err := c.Impressions.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("drain impressions: %w", err))
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if err := c.Postgres.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close postgres: %w", err))
	}
	return errors.Join(errs...)
}

func withGenerationCache(generators []providers.TextGenerator, cacheProvider providers.CacheProvider, ttlSeconds int) []providers.TextGenerator {
	cached := make([]providers.TextGenerator, len(generators))
	for i, g := range generators {
		cached[i] = cache.NewCachedGenerator(g, cacheProvider, ttlSeconds)
	}
	return cached
}
