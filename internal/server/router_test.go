package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/recallhq/recall/internal/api/handlers"
	"github.com/recallhq/recall/internal/domain"
	"github.com/recallhq/recall/internal/extract"
	"github.com/recallhq/recall/internal/repository"
	"github.com/recallhq/recall/internal/service"
	"github.com/recallhq/recall/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGateway returns canned web search results without touching the network.
type stubGateway struct {
	results []domain.SearchResult
}

func (s *stubGateway) Search(ctx context.Context, query string, maxResults int) []domain.SearchResult {
	if len(s.results) > maxResults {
		return s.results[:maxResults]
	}
	return s.results
}

func newTestRouter(t *testing.T, gateway handlers.SearchGateway) http.Handler {
	docStore := store.NewMemoryStore()
	knowledgeSvc := service.NewKnowledgeService(repository.NewKnowledgeRepository(docStore))
	memorySvc := service.NewMemoryService(repository.NewMemoryRepository(docStore))

	if gateway == nil {
		gateway = &stubGateway{}
	}

	return NewRouter(RouterConfig{
		KnowledgeHandler: handlers.NewKnowledgeHandler(knowledgeSvc),
		MemoryHandler:    handlers.NewMemoryHandler(memorySvc),
		WebSearchHandler: handlers.NewWebSearchHandler(gateway),
		ExtractHandler:   handlers.NewExtractHandler(extract.New()),
	})
}

func doJSON(t *testing.T, router http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestRouter_KnowledgeLifecycle(t *testing.T) {
	router := newTestRouter(t, nil)

	// Add
	rec := doJSON(t, router, http.MethodPost, "/knowledge", map[string]interface{}{
		"topic":    "Jupiter",
		"content":  "Jupiter is the largest planet in the solar system.",
		"keywords": []string{"planet", "gas giant"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var added struct {
		Success bool `json:"success"`
		Data    struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))
	require.True(t, added.Success)
	require.NotEmpty(t, added.Data.ID)

	// Search finds it
	rec = doJSON(t, router, http.MethodPost, "/knowledge/search", map[string]interface{}{
		"query": "jupiter",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var searched struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
		Items   []struct {
			ID             string  `json:"id"`
			RelevanceScore float64 `json:"relevance_score"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &searched))
	assert.True(t, searched.Success)
	require.Equal(t, 1, searched.Count)
	assert.Equal(t, added.Data.ID, searched.Items[0].ID)
	assert.InDelta(t, 0.8, searched.Items[0].RelevanceScore, 0.001)

	// Update
	rec = doJSON(t, router, http.MethodPost, "/knowledge/update", map[string]interface{}{
		"id":      added.Data.ID,
		"content": "Jupiter is a gas giant.",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "updated_at")

	// List shows one item
	rec = doJSON(t, router, http.MethodGet, "/knowledge", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Retrieved 1 knowledge items")

	// Delete
	rec = doJSON(t, router, http.MethodDelete, "/knowledge/"+added.Data.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "deleted successfully")

	// Gone now
	rec = doJSON(t, router, http.MethodDelete, "/knowledge/"+added.Data.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "not found")
}

func TestRouter_Memories(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/memories", map[string]string{
		"insight": "users prefer terse answers",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Memory successfully stored.")

	rec = doJSON(t, router, http.MethodGet, "/memories", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed struct {
		Success  bool     `json:"success"`
		Memories []string `json:"memories"`
		Count    int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.True(t, listed.Success)
	assert.Equal(t, []string{"users prefer terse answers"}, listed.Memories)
	assert.Equal(t, 1, listed.Count)
}

func TestRouter_WebSearch(t *testing.T) {
	router := newTestRouter(t, &stubGateway{results: []domain.SearchResult{
		{Title: "The Go Programming Language", URL: "https://go.dev/", Snippet: "Go is open source."},
	}})

	rec := doJSON(t, router, http.MethodPost, "/search", map[string]interface{}{
		"query": "golang",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "https://go.dev/")
}

func TestRouter_Extract(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><title>Hello</title></head><body><p>Some page text.</p></body></html>`))
	}))
	t.Cleanup(page.Close)

	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/extract", map[string]interface{}{
		"url": page.URL,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hello")
	assert.Contains(t, rec.Body.String(), "Some page text.")
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/nope", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_RequestIDHeader(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/health", nil)

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
