package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/recallhq/recall/internal/domain"
)

// MemoryStore is an in-process document store. It is the default backend
// and the substitute used in tests.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) Get(ctx context.Context, key string, v interface{}) error {
	s.mu.RLock()
	raw, ok := s.docs[key]
	s.mu.RUnlock()
	if !ok {
		return domain.ErrDocumentNotFound
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return storageError("get", err)
	}
	return nil
}

func (s *MemoryStore) Put(ctx context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return storageError("put", err)
	}
	s.mu.Lock()
	s.docs[key] = raw
	s.mu.Unlock()
	return nil
}
