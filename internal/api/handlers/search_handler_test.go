package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Pranavupp12/review-platform/internal/application/services"
	"github.com/Pranavupp12/review-platform/internal/domain/entities"
	apperrors "github.com/Pranavupp12/review-platform/pkg/errors"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSearchHandler_RouteQuery(t *testing.T) {
	t.Run("navigational query returns path", func(t *testing.T) {
		router := new(MockQueryRouter)
		router.On("Resolve", mock.Anything, services.RouteRequest{
			Query:            "acme law",
			ExplicitLocation: "Austin",
			UserRegion:       "US",
		}).Return(&services.RouteDecision{Path: "/company/acme-law", Stage: services.StageExactCompany})

		handler := NewSearchHandler(router, new(MockCompanySearcher))
		req := httptest.NewRequest(http.MethodGet, "/api/search/route?q=acme+law&loc=Austin&region=US", nil)
		rec := httptest.NewRecorder()
		handler.RouteQuery(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/company/acme-law", decodeBody(t, rec)["path"])
	})

	t.Run("no decision returns null path", func(t *testing.T) {
		router := new(MockQueryRouter)
		router.On("Resolve", mock.Anything, mock.Anything).Return(nil)

		handler := NewSearchHandler(router, new(MockCompanySearcher))
		rec := httptest.NewRecorder()
		handler.RouteQuery(rec, httptest.NewRequest(http.MethodGet, "/api/search/route?q=something+vague", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Contains(t, body, "path")
		assert.Nil(t, body["path"])
	})
}

func TestSearchHandler_RegionFromEdgeHeader(t *testing.T) {
	router := new(MockQueryRouter)
	router.On("Resolve", mock.Anything, services.RouteRequest{Query: "dentist", UserRegion: "IN"}).Return(nil)

	handler := NewSearchHandler(router, new(MockCompanySearcher))
	req := httptest.NewRequest(http.MethodGet, "/api/search/route?q=dentist", nil)
	req.Header.Set("CF-IPCountry", "in")
	rec := httptest.NewRecorder()
	handler.RouteQuery(rec, req)

	router.AssertExpectations(t)
}

func TestSearchHandler_Search(t *testing.T) {
	t.Run("navigational query answers with redirect", func(t *testing.T) {
		router := new(MockQueryRouter)
		searcher := new(MockCompanySearcher)
		router.On("Resolve", mock.Anything, mock.Anything).
			Return(&services.RouteDecision{Path: "/categories/legal", Stage: services.StageExactCategory})

		handler := NewSearchHandler(router, searcher)
		rec := httptest.NewRecorder()
		handler.Search(rec, httptest.NewRequest(http.MethodGet, "/api/search?q=legal", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/categories/legal", decodeBody(t, rec)["redirect"])
		searcher.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("inline search returns filters and results", func(t *testing.T) {
		router := new(MockQueryRouter)
		searcher := new(MockCompanySearcher)
		router.On("Resolve", mock.Anything, mock.Anything).Return(nil)
		searcher.On("Search", mock.Anything, services.SearchRequest{
			Query:            "cheap lawyers",
			ExplicitLocation: "Austin",
			Limit:            10,
		}).Return(&services.SearchResponse{
			Filters: entities.KeywordFilters("cheap lawyers"),
			Results: []*entities.CompanySummary{{ID: "co1", Slug: "acme-law", Name: "Acme Law"}},
		}, nil)

		handler := NewSearchHandler(router, searcher)
		rec := httptest.NewRecorder()
		handler.Search(rec, httptest.NewRequest(http.MethodGet, "/api/search?q=cheap+lawyers&loc=Austin&limit=10", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.EqualValues(t, 1, body["count"])
		assert.Len(t, body["results"], 1)
		assert.NotNil(t, body["filters"])
	})

	t.Run("missing query is rejected", func(t *testing.T) {
		handler := NewSearchHandler(new(MockQueryRouter), new(MockCompanySearcher))
		rec := httptest.NewRecorder()
		handler.Search(rec, httptest.NewRequest(http.MethodGet, "/api/search?q=+", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad limit is rejected", func(t *testing.T) {
		handler := NewSearchHandler(new(MockQueryRouter), new(MockCompanySearcher))
		rec := httptest.NewRecorder()
		handler.Search(rec, httptest.NewRequest(http.MethodGet, "/api/search?q=gyms&limit=-4", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("store failure is a 500 without details", func(t *testing.T) {
		router := new(MockQueryRouter)
		searcher := new(MockCompanySearcher)
		router.On("Resolve", mock.Anything, mock.Anything).Return(nil)
		searcher.On("Search", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewInternalError("failed to search companies", assert.AnError))

		handler := NewSearchHandler(router, searcher)
		rec := httptest.NewRecorder()
		handler.Search(rec, httptest.NewRequest(http.MethodGet, "/api/search?q=gyms", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal server error", decodeBody(t, rec)["error"])
	})
}
