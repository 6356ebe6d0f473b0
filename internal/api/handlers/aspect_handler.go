package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Pranavupp12/review-platform/internal/application/services"
)

const maxReviewBodyBytes = 64 << 10

// AspectHandler handles review aspect extraction requests
type AspectHandler struct {
	extractor services.AspectExtractor
}

// NewAspectHandler creates a new aspect handler
func NewAspectHandler(extractor services.AspectExtractor) *AspectHandler {
	return &AspectHandler{extractor: extractor}
}

type extractAspectsRequest struct {
	Text string `json:"text"`
}

// ExtractAspects handles POST /api/reviews/aspects
func (h *AspectHandler) ExtractAspects(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxReviewBodyBytes)

	var req extractAspectsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respondWithError(w, http.StatusBadRequest, "text is required")
		return
	}

	aspects, err := h.extractor.Extract(r.Context(), req.Text)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"aspects": aspects,
	})
}
