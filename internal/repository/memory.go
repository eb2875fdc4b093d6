package repository

import (
	"context"

	"github.com/recallhq/recall/internal/domain"
	"github.com/recallhq/recall/internal/store"
)

// MemoryRepository owns the "memories" document: an append-only ordered
// sequence of free-text strings. Entries have no identity and are never
// updated or deleted.
type MemoryRepository struct {
	store store.Store
}

func NewMemoryRepository(s store.Store) *MemoryRepository {
	return &MemoryRepository{store: s}
}

// List returns the stored sequence, initializing to empty when the
// document does not exist yet.
func (r *MemoryRepository) List(ctx context.Context) ([]string, error) {
	var memories []string
	err := r.store.Get(ctx, store.MemoriesKey, &memories)
	if err != nil {
		if domain.IsNotFound(err) {
			return []string{}, nil
		}
		return nil, err
	}
	return memories, nil
}

// Append adds an entry to the end of the sequence and persists it whole.
func (r *MemoryRepository) Append(ctx context.Context, insight string) error {
	memories, err := r.List(ctx)
	if err != nil {
		return err
	}
	memories = append(memories, insight)
	return r.store.Put(ctx, store.MemoriesKey, memories)
}
