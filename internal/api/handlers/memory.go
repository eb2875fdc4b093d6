package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/recallhq/recall/internal/api"
)

type MemoryService interface {
	Store(ctx context.Context, insight string) error
	List(ctx context.Context) ([]string, error)
}

type MemoryHandler struct {
	svc MemoryService
}

func NewMemoryHandler(svc MemoryService) *MemoryHandler {
	return &MemoryHandler{svc: svc}
}

type StoreMemoryRequest struct {
	Insight string `json:"insight"`
}

type MemoryResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type MemoryListResponse struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	Memories []string `json:"memories"`
	Count    int      `json:"count"`
}

func (h *MemoryHandler) Store(w http.ResponseWriter, r *http.Request) {
	var req StoreMemoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Reject(w, "invalid request body")
		return
	}

	if req.Insight == "" {
		api.Reject(w, "insight is required")
		return
	}

	if err := h.svc.Store(r.Context(), req.Insight); err != nil {
		api.JSON(w, http.StatusOK, MemoryResponse{
			Success: false,
			Message: "Failed to store memory: " + api.Message(err),
		})
		return
	}

	api.JSON(w, http.StatusOK, MemoryResponse{
		Success: true,
		Message: "Memory successfully stored.",
	})
}

func (h *MemoryHandler) List(w http.ResponseWriter, r *http.Request) {
	memories, err := h.svc.List(r.Context())
	if err != nil {
		api.JSON(w, http.StatusOK, MemoryListResponse{
			Success:  false,
			Message:  "Failed to retrieve memories: " + api.Message(err),
			Memories: []string{},
		})
		return
	}

	api.JSON(w, http.StatusOK, MemoryListResponse{
		Success:  true,
		Message:  fmt.Sprintf("Retrieved %d memories", len(memories)),
		Memories: memories,
		Count:    len(memories),
	})
}
