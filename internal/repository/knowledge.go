package repository

import (
	"context"

	"github.com/recallhq/recall/internal/domain"
	"github.com/recallhq/recall/internal/store"
)

// KnowledgeRepository owns the "knowledge_base" document: a mapping from
// item ID to knowledge item. Every mutation reads the whole document,
// changes it in memory, and writes the whole document back.
type KnowledgeRepository struct {
	store store.Store
}

func NewKnowledgeRepository(s store.Store) *KnowledgeRepository {
	return &KnowledgeRepository{store: s}
}

// GetAll returns the whole knowledge base, initializing to an empty
// mapping when the document does not exist yet.
func (r *KnowledgeRepository) GetAll(ctx context.Context) (domain.KnowledgeBase, error) {
	kb := domain.KnowledgeBase{}
	err := r.store.Get(ctx, store.KnowledgeBaseKey, &kb)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.KnowledgeBase{}, nil
		}
		return nil, err
	}
	return kb, nil
}

// GetByID returns a single item or domain.ErrKnowledgeItemNotFound.
func (r *KnowledgeRepository) GetByID(ctx context.Context, id string) (*domain.KnowledgeItem, error) {
	kb, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	item, ok := kb[id]
	if !ok {
		return nil, domain.ErrKnowledgeItemNotFound
	}
	return item, nil
}

// Put inserts or replaces an item and persists the whole document.
func (r *KnowledgeRepository) Put(ctx context.Context, item *domain.KnowledgeItem) error {
	kb, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	kb[item.ID] = item
	return r.store.Put(ctx, store.KnowledgeBaseKey, kb)
}

// Delete removes an item and persists the whole document. Returns
// domain.ErrKnowledgeItemNotFound when the ID is absent.
func (r *KnowledgeRepository) Delete(ctx context.Context, id string) error {
	kb, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	if _, ok := kb[id]; !ok {
		return domain.ErrKnowledgeItemNotFound
	}
	delete(kb, id)
	return r.store.Put(ctx, store.KnowledgeBaseKey, kb)
}
