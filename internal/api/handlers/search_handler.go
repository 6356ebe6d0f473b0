package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/Pranavupp12/review-platform/internal/application/services"
)

const maxSearchLimit = 100

// QueryRouter decides whether a query navigates straight to a page
type QueryRouter interface {
	Resolve(ctx context.Context, req services.RouteRequest) *services.RouteDecision
}

// CompanySearcher runs the inline company search
type CompanySearcher interface {
	Search(ctx context.Context, req services.SearchRequest) (*services.SearchResponse, error)
}

// SearchHandler handles query routing and search requests
type SearchHandler struct {
	router   QueryRouter
	searcher CompanySearcher
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(router QueryRouter, searcher CompanySearcher) *SearchHandler {
	return &SearchHandler{
		router:   router,
		searcher: searcher,
	}
}

// RouteQuery handles GET /api/search/route
func (h *SearchHandler) RouteQuery(w http.ResponseWriter, r *http.Request) {
	decision := h.router.Resolve(r.Context(), routeRequest(r))

	var path *string
	if decision != nil {
		path = &decision.Path
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"path": path,
	})
}

// Search handles GET /api/search. A navigational query answers with a redirect
// target; everything else runs the inline search.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	req := routeRequest(r)
	if strings.TrimSpace(req.Query) == "" {
		respondWithError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(parsed, maxSearchLimit)
	}

	if decision := h.router.Resolve(r.Context(), req); decision != nil {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"redirect": decision.Path,
			"stage":    decision.Stage,
		})
		return
	}

	resp, err := h.searcher.Search(r.Context(), services.SearchRequest{
		Query:            req.Query,
		ExplicitLocation: req.ExplicitLocation,
		UserRegion:       req.UserRegion,
		Limit:            limit,
	})
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"filters": resp.Filters,
		"results": resp.Results,
		"count":   len(resp.Results),
	})
}

func routeRequest(r *http.Request) services.RouteRequest {
	q := r.URL.Query()
	return services.RouteRequest{
		Query:            q.Get("q"),
		ExplicitLocation: q.Get("loc"),
		UserRegion:       userRegion(r),
	}
}
