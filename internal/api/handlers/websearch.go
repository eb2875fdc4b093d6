package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/recallhq/recall/internal/api"
	"github.com/recallhq/recall/internal/domain"
	"github.com/recallhq/recall/internal/websearch"
)

// SearchGateway is the outbound web search collaborator. Failures are
// absorbed by the gateway; an empty result list is the only failure signal.
type SearchGateway interface {
	Search(ctx context.Context, query string, maxResults int) []domain.SearchResult
}

type WebSearchHandler struct {
	gateway SearchGateway
}

func NewWebSearchHandler(gateway SearchGateway) *WebSearchHandler {
	return &WebSearchHandler{gateway: gateway}
}

type WebSearchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type WebSearchResponse struct {
	Success       bool                  `json:"success"`
	Message       string                `json:"message"`
	Results       []domain.SearchResult `json:"results"`
	Query         string                `json:"query"`
	ExecutionTime float64               `json:"execution_time"`
}

func (h *WebSearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req WebSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Reject(w, "invalid request body")
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		api.Reject(w, "query cannot be empty")
		return
	}

	if req.MaxResults == 0 {
		req.MaxResults = websearch.MaxResults
	}
	if req.MaxResults < 1 || req.MaxResults > websearch.MaxResultsLimit {
		api.Reject(w, fmt.Sprintf("max_results must be between 1 and %d", websearch.MaxResultsLimit))
		return
	}

	results := h.gateway.Search(r.Context(), query, req.MaxResults)
	executionTime := time.Since(start).Seconds()

	if len(results) == 0 {
		api.JSON(w, http.StatusOK, WebSearchResponse{
			Success:       false,
			Message:       fmt.Sprintf("No search results found for query: %s", query),
			Results:       []domain.SearchResult{},
			Query:         query,
			ExecutionTime: executionTime,
		})
		return
	}

	api.JSON(w, http.StatusOK, WebSearchResponse{
		Success:       true,
		Message:       fmt.Sprintf("Found %d results for query: %s", len(results), query),
		Results:       results,
		Query:         query,
		ExecutionTime: executionTime,
	})
}
