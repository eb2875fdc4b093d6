package service

import (
	"context"

	"github.com/recallhq/recall/internal/telemetry"
)

// MemoryRepositoryInterface defines the repository interface for the memory log
type MemoryRepositoryInterface interface {
	List(ctx context.Context) ([]string, error)
	Append(ctx context.Context, insight string) error
}

// MemoryService handles the append-only memory log
type MemoryService struct {
	repo MemoryRepositoryInterface
}

// NewMemoryService creates a new MemoryService instance
func NewMemoryService(repo MemoryRepositoryInterface) *MemoryService {
	return &MemoryService{repo: repo}
}

// Store appends an insight to the memory log. No dedup, no size cap.
func (s *MemoryService) Store(ctx context.Context, insight string) error {
	ctx, span := telemetry.StartSpan(ctx, "MemoryService.Store", telemetry.SpanAttributes{
		Operation: "store",
	})
	defer span.End()

	return s.repo.Append(ctx, insight)
}

// List returns all stored memories in insertion order.
func (s *MemoryService) List(ctx context.Context) ([]string, error) {
	ctx, span := telemetry.StartSpan(ctx, "MemoryService.List", telemetry.SpanAttributes{
		Operation: "list",
	})
	defer span.End()

	return s.repo.List(ctx)
}
