package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/recallhq/recall/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSearchGateway struct {
	mock.Mock
}

func (m *MockSearchGateway) Search(ctx context.Context, query string, maxResults int) []domain.SearchResult {
	args := m.Called(ctx, query, maxResults)
	return args.Get(0).([]domain.SearchResult)
}

func TestWebSearchHandler_Search(t *testing.T) {
	mockGateway := new(MockSearchGateway)
	h := NewWebSearchHandler(mockGateway)

	mockGateway.On("Search", mock.Anything, "golang", 10).Return([]domain.SearchResult{
		{Title: "The Go Programming Language", URL: "https://go.dev/", Snippet: "Go is open source."},
	})

	rec := postJSON(t, h.Search, "/search", WebSearchRequest{Query: "golang"})

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp WebSearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Found 1 results for query: golang", resp.Message)
	assert.Equal(t, "golang", resp.Query)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "https://go.dev/", resp.Results[0].URL)
	assert.GreaterOrEqual(t, resp.ExecutionTime, 0.0)
}

func TestWebSearchHandler_Search_TrimsQuery(t *testing.T) {
	mockGateway := new(MockSearchGateway)
	h := NewWebSearchHandler(mockGateway)

	mockGateway.On("Search", mock.Anything, "golang", 10).Return([]domain.SearchResult{
		{Title: "t", URL: "u", Snippet: "s"},
	})

	rec := postJSON(t, h.Search, "/search", WebSearchRequest{Query: "  golang  "})

	assert.Equal(t, http.StatusOK, rec.Code)
	mockGateway.AssertExpectations(t)
}

func TestWebSearchHandler_Search_EmptyQuery(t *testing.T) {
	mockGateway := new(MockSearchGateway)
	h := NewWebSearchHandler(mockGateway)

	rec := postJSON(t, h.Search, "/search", WebSearchRequest{Query: "   "})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockGateway.AssertNotCalled(t, "Search")
}

func TestWebSearchHandler_Search_MaxResultsOutOfRange(t *testing.T) {
	mockGateway := new(MockSearchGateway)
	h := NewWebSearchHandler(mockGateway)

	rec := postJSON(t, h.Search, "/search", WebSearchRequest{Query: "golang", MaxResults: 100})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebSearchHandler_Search_NoResults(t *testing.T) {
	mockGateway := new(MockSearchGateway)
	h := NewWebSearchHandler(mockGateway)

	mockGateway.On("Search", mock.Anything, "zxqwv", 10).Return([]domain.SearchResult{})

	rec := postJSON(t, h.Search, "/search", WebSearchRequest{Query: "zxqwv"})

	// An empty result set is the gateway's only failure signal.
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp WebSearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "No search results found for query: zxqwv", resp.Message)
	assert.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
}
