package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/recallhq/recall/internal/api"
	"github.com/recallhq/recall/internal/domain"
	"github.com/recallhq/recall/internal/service"
)

type KnowledgeService interface {
	Add(ctx context.Context, input service.AddInput) (*domain.KnowledgeItem, error)
	Update(ctx context.Context, input service.UpdateInput) (*domain.KnowledgeItem, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit int) ([]*domain.KnowledgeItem, error)
	Search(ctx context.Context, query string, limit int) ([]domain.ScoredItem, error)
}

type KnowledgeHandler struct {
	svc KnowledgeService
}

func NewKnowledgeHandler(svc KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{svc: svc}
}

type AddKnowledgeRequest struct {
	Topic    string   `json:"topic"`
	Content  string   `json:"content"`
	Keywords []string `json:"keywords"`
}

type UpdateKnowledgeRequest struct {
	ID       string   `json:"id"`
	Topic    *string  `json:"topic"`
	Content  *string  `json:"content"`
	Keywords []string `json:"keywords"`
}

type SearchKnowledgeRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// KnowledgeItemResponse is the wire shape of a stored item.
type KnowledgeItemResponse struct {
	ID        string   `json:"id"`
	Topic     string   `json:"topic"`
	Content   string   `json:"content"`
	Keywords  []string `json:"keywords"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at,omitempty"`
}

// ScoredItemResponse is a search hit: the item plus its relevance score.
type ScoredItemResponse struct {
	KnowledgeItemResponse
	RelevanceScore float64 `json:"relevance_score"`
}

type KnowledgeResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    *KnowledgeItemResponse `json:"data,omitempty"`
}

type KnowledgeListResponse struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message"`
	Items   []*KnowledgeItemResponse `json:"items"`
	Count   int                      `json:"count"`
}

type KnowledgeSearchResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Items   []*ScoredItemResponse `json:"items"`
	Count   int                   `json:"count"`
}

const timeFormat = "2006-01-02T15:04:05Z"

func itemToResponse(item *domain.KnowledgeItem) *KnowledgeItemResponse {
	resp := &KnowledgeItemResponse{
		ID:        item.ID,
		Topic:     item.Topic,
		Content:   item.Content,
		Keywords:  item.Keywords,
		CreatedAt: item.CreatedAt.UTC().Format(timeFormat),
	}
	if item.UpdatedAt != nil {
		resp.UpdatedAt = item.UpdatedAt.UTC().Format(timeFormat)
	}
	return resp
}

func (h *KnowledgeHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddKnowledgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Reject(w, "invalid request body")
		return
	}

	if req.Topic == "" {
		api.Reject(w, "topic is required")
		return
	}
	if req.Content == "" {
		api.Reject(w, "content is required")
		return
	}

	item, err := h.svc.Add(r.Context(), service.AddInput{
		Topic:    req.Topic,
		Content:  req.Content,
		Keywords: req.Keywords,
	})
	if err != nil {
		api.JSON(w, http.StatusOK, KnowledgeResponse{
			Success: false,
			Message: "Failed to add knowledge item: " + api.Message(err),
		})
		return
	}

	api.JSON(w, http.StatusOK, KnowledgeResponse{
		Success: true,
		Message: "Knowledge item added successfully",
		Data:    itemToResponse(item),
	})
}

func (h *KnowledgeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateKnowledgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Reject(w, "invalid request body")
		return
	}

	if req.ID == "" {
		api.Reject(w, "id is required")
		return
	}

	item, err := h.svc.Update(r.Context(), service.UpdateInput{
		ID:       req.ID,
		Topic:    req.Topic,
		Content:  req.Content,
		Keywords: req.Keywords,
	})
	if err != nil {
		if domain.IsNotFound(err) {
			api.JSON(w, http.StatusOK, KnowledgeResponse{
				Success: false,
				Message: fmt.Sprintf("Knowledge item with ID %s not found", req.ID),
			})
			return
		}
		api.JSON(w, http.StatusOK, KnowledgeResponse{
			Success: false,
			Message: "Failed to update knowledge item: " + api.Message(err),
		})
		return
	}

	api.JSON(w, http.StatusOK, KnowledgeResponse{
		Success: true,
		Message: "Knowledge item updated successfully",
		Data:    itemToResponse(item),
	})
}

func (h *KnowledgeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		api.Reject(w, "item_id is required")
		return
	}

	if err := h.svc.Delete(r.Context(), itemID); err != nil {
		if domain.IsNotFound(err) {
			api.JSON(w, http.StatusOK, KnowledgeResponse{
				Success: false,
				Message: fmt.Sprintf("Knowledge item with ID %s not found", itemID),
			})
			return
		}
		api.JSON(w, http.StatusOK, KnowledgeResponse{
			Success: false,
			Message: "Failed to delete knowledge item: " + api.Message(err),
		})
		return
	}

	api.JSON(w, http.StatusOK, KnowledgeResponse{
		Success: true,
		Message: "Knowledge item deleted successfully",
	})
}

func (h *KnowledgeHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := service.DefaultListLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	items, err := h.svc.List(r.Context(), limit)
	if err != nil {
		api.JSON(w, http.StatusOK, KnowledgeListResponse{
			Success: false,
			Message: "Failed to retrieve knowledge items: " + api.Message(err),
			Items:   []*KnowledgeItemResponse{},
		})
		return
	}

	message := fmt.Sprintf("Retrieved %d knowledge items", len(items))
	if len(items) == 0 {
		message = "Knowledge base is empty"
	}

	responses := make([]*KnowledgeItemResponse, len(items))
	for i, item := range items {
		responses[i] = itemToResponse(item)
	}

	api.JSON(w, http.StatusOK, KnowledgeListResponse{
		Success: true,
		Message: message,
		Items:   responses,
		Count:   len(responses),
	})
}

func (h *KnowledgeHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchKnowledgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Reject(w, "invalid request body")
		return
	}

	if req.Limit == 0 {
		req.Limit = service.DefaultSearchLimit
	}
	if req.Limit < 1 || req.Limit > service.MaxSearchLimit {
		api.Reject(w, fmt.Sprintf("limit must be between 1 and %d", service.MaxSearchLimit))
		return
	}

	results, err := h.svc.Search(r.Context(), req.Query, req.Limit)
	if err != nil {
		api.JSON(w, http.StatusOK, KnowledgeSearchResponse{
			Success: false,
			Message: "Failed to search knowledge base: " + api.Message(err),
			Items:   []*ScoredItemResponse{},
		})
		return
	}

	message := fmt.Sprintf("Found %d matching items", len(results))
	if len(results) == 0 {
		message = "No matching items found"
	}

	responses := make([]*ScoredItemResponse, len(results))
	for i, result := range results {
		responses[i] = &ScoredItemResponse{
			KnowledgeItemResponse: *itemToResponse(result.Item),
			RelevanceScore:        result.RelevanceScore,
		}
	}

	api.JSON(w, http.StatusOK, KnowledgeSearchResponse{
		Success: true,
		Message: message,
		Items:   responses,
		Count:   len(responses),
	})
}
