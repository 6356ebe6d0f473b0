package routes

import (
	"net/http"

	"github.com/Pranavupp12/review-platform/internal/api/handlers"
	"github.com/Pranavupp12/review-platform/internal/api/middleware"
	"github.com/Pranavupp12/review-platform/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	healthHandler *handlers.HealthHandler
	searchHandler *handlers.SearchHandler
	aspectHandler *handlers.AspectHandler

	allowedOrigins []string
	metrics        *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	healthHandler *handlers.HealthHandler,
	searchHandler *handlers.SearchHandler,
	aspectHandler *handlers.AspectHandler,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:            http.NewServeMux(),
		healthHandler:  healthHandler,
		searchHandler:  searchHandler,
		aspectHandler:  aspectHandler,
		allowedOrigins: allowedOrigins,
		metrics:        metrics,
	}
}

// SetupRoutes registers every endpoint and returns the wrapped handler
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", r.healthHandler.Health)

	// Search endpoints
	r.mux.HandleFunc("GET /api/search/route", r.searchHandler.RouteQuery)
	r.mux.HandleFunc("GET /api/search", r.searchHandler.Search)

	// Review endpoints
	if r.aspectHandler != nil {
		r.mux.HandleFunc("POST /api/reviews/aspects", r.aspectHandler.ExtractAspects)
	}

	// Apply middleware in reverse order (last middleware wraps first).
	// The request ID must be outermost so every log line carries it.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)
	handler = middleware.RequestIDMiddleware(handler)

	return handler
}
