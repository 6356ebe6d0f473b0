package ai

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type generatorMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
	rateLimitWait   metric.Float64Histogram
}

var (
	metricsOnce sync.Once
	metricsOK   bool
	aiMetrics   generatorMetrics
)

func ensureMetrics() bool {
	metricsOnce.Do(func() {
		meter := otel.Meter("github.com/Pranavupp12/review-platform/ai")

		requestCount, err := meter.Int64Counter(
			"ai.provider.request.count",
			metric.WithDescription("Number of text-generation requests"),
		)
		if err != nil {
			return
		}
		requestDuration, err := meter.Float64Histogram(
			"ai.provider.request.duration",
			metric.WithDescription("Text-generation request duration in milliseconds"),
			metric.WithUnit("ms"),
		)
		if err != nil {
			return
		}
		requestErrors, err := meter.Int64Counter(
			"ai.provider.request.errors",
			metric.WithDescription("Number of failed text-generation requests"),
		)
		if err != nil {
			return
		}
		rateLimitWait, err := meter.Float64Histogram(
			"ai.provider.rate_limit.wait",
			metric.WithDescription("Time spent waiting for the provider rate limiter in milliseconds"),
			metric.WithUnit("ms"),
		)
		if err != nil {
			return
		}

		aiMetrics = generatorMetrics{
			requestCount:    requestCount,
			requestDuration: requestDuration,
			requestErrors:   requestErrors,
			rateLimitWait:   rateLimitWait,
		}
		metricsOK = true
	})
	return metricsOK
}

func recordRequestMetric(ctx context.Context, provider, model string, duration time.Duration, err error) {
	if !ensureMetrics() {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("ai.provider", provider),
		attribute.String("ai.model", model),
	)
	// ctx may already be cancelled; metrics must still be recorded
	ctx = context.WithoutCancel(ctx)

	aiMetrics.requestCount.Add(ctx, 1, attrs)
	aiMetrics.requestDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	if err != nil {
		aiMetrics.requestErrors.Add(ctx, 1, attrs)
	}
}

func recordRateLimitWait(ctx context.Context, provider, model string, wait time.Duration) {
	if !ensureMetrics() {
		return
	}
	aiMetrics.rateLimitWait.Record(ctx, float64(wait.Milliseconds()), metric.WithAttributes(
		attribute.String("ai.provider", provider),
		attribute.String("ai.model", model),
	))
}
