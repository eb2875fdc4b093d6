package domain

import (
	"fmt"
	"time"
)

// KnowledgeItem represents a stored piece of knowledge in the knowledge base.
// Items live inside a single JSON document keyed by item ID, so the struct
// carries its own JSON tags for persistence and API responses alike.
type KnowledgeItem struct {
	ID        string     `json:"id"`
	Topic     string     `json:"topic"`
	Content   string     `json:"content"`
	Keywords  []string   `json:"keywords"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// KnowledgeBase is the persisted shape of the knowledge base document:
// a mapping from item ID to item, with no ordering guarantee.
type KnowledgeBase map[string]*KnowledgeItem

// ScoredItem pairs a knowledge item with its search relevance score.
// Never persisted.
type ScoredItem struct {
	Item           *KnowledgeItem
	RelevanceScore float64
}

// SearchResult is a single external web search hit. Never persisted.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// ValidateKnowledgeItem validates a KnowledgeItem instance
func ValidateKnowledgeItem(k *KnowledgeItem) error {
	if k == nil {
		return fmt.Errorf("knowledge item cannot be nil")
	}

	if k.ID == "" {
		return fmt.Errorf("knowledge item ID is required")
	}

	if k.Topic == "" {
		return fmt.Errorf("knowledge item Topic is required")
	}

	if k.Content == "" {
		return fmt.Errorf("knowledge item Content is required")
	}

	return nil
}
