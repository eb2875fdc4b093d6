// Package store provides the key-value JSON document store that backs all
// persisted state. Values are whole documents: callers read a document,
// mutate it in memory, and write it back. That sequence is not atomic
// across concurrent requests; the last writer wins.
package store

import (
	"context"

	"github.com/recallhq/recall/internal/domain"
)

// Store is the document store contract. Get unmarshals the document at key
// into v and returns domain.ErrDocumentNotFound when the key is absent.
// Put marshals v and overwrites the document at key.
type Store interface {
	Get(ctx context.Context, key string, v interface{}) error
	Put(ctx context.Context, key string, v interface{}) error
}

// Well-known document keys.
const (
	KnowledgeBaseKey = "knowledge_base"
	MemoriesKey      = "memories"
)

func storageError(op string, err error) error {
	return domain.NewDomainErrorWithCause(domain.ErrCodeStorage, "document store "+op+" failed", err)
}
