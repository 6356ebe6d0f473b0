package services

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type searchMetrics struct {
	routeDecisions     metric.Int64Counter
	filterFallbacks    metric.Int64Counter
	impressionsDropped metric.Int64Counter
	impressionErrors   metric.Int64Counter
	aspectsDropped     metric.Int64Counter
}

var (
	searchMetricsOnce sync.Once
	searchMetricsOK   bool
	svcMetrics        searchMetrics
)

func ensureSearchMetrics() bool {
	searchMetricsOnce.Do(func() {
		meter := otel.Meter("github.com/Pranavupp12/review-platform/search")

		var err error
		if svcMetrics.routeDecisions, err = meter.Int64Counter(
			"search.route.decisions",
			metric.WithDescription("Routing decisions by resolver stage"),
		); err != nil {
			return
		}
		if svcMetrics.filterFallbacks, err = meter.Int64Counter(
			"search.filters.fallbacks",
			metric.WithDescription("Queries searched with the raw keyword because no provider answered"),
		); err != nil {
			return
		}
		if svcMetrics.impressionsDropped, err = meter.Int64Counter(
			"search.impressions.dropped",
			metric.WithDescription("Impression batches dropped because the queue was full or closed"),
		); err != nil {
			return
		}
		if svcMetrics.impressionErrors, err = meter.Int64Counter(
			"search.impressions.errors",
			metric.WithDescription("Impression batches that failed to persist"),
		); err != nil {
			return
		}
		if svcMetrics.aspectsDropped, err = meter.Int64Counter(
			"reviews.aspects.dropped",
			metric.WithDescription("Aspect triples discarded during validation"),
		); err != nil {
			return
		}
		searchMetricsOK = true
	})
	return searchMetricsOK
}

func recordRouteDecision(ctx context.Context, stage ResolutionStage) {
	if !ensureSearchMetrics() {
		return
	}
	svcMetrics.routeDecisions.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", string(stage))))
}

func recordFilterFallback(ctx context.Context) {
	if !ensureSearchMetrics() {
		return
	}
	svcMetrics.filterFallbacks.Add(ctx, 1)
}

func recordImpressionDropped(ctx context.Context, reason string) {
	if !ensureSearchMetrics() {
		return
	}
	svcMetrics.impressionsDropped.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func recordImpressionError(ctx context.Context) {
	if !ensureSearchMetrics() {
		return
	}
	svcMetrics.impressionErrors.Add(ctx, 1)
}

func recordAspectDropped(ctx context.Context, reason string) {
	if !ensureSearchMetrics() {
		return
	}
	svcMetrics.aspectsDropped.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
