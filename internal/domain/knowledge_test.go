package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateKnowledgeItem(t *testing.T) {
	valid := &KnowledgeItem{
		ID:      "kb_20250101000000",
		Topic:   "Jupiter",
		Content: "Largest planet.",
	}
	assert.NoError(t, ValidateKnowledgeItem(valid))

	assert.Error(t, ValidateKnowledgeItem(nil))
	assert.Error(t, ValidateKnowledgeItem(&KnowledgeItem{Topic: "t", Content: "c"}))
	assert.Error(t, ValidateKnowledgeItem(&KnowledgeItem{ID: "kb_1", Content: "c"}))
	assert.Error(t, ValidateKnowledgeItem(&KnowledgeItem{ID: "kb_1", Topic: "t"}))
}

func TestKnowledgeItem_JSONOmitsUnsetUpdatedAt(t *testing.T) {
	item := &KnowledgeItem{
		ID:        "kb_1",
		Topic:     "Jupiter",
		Content:   "Largest planet.",
		Keywords:  []string{},
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	raw, err := json.Marshal(item)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "updated_at")

	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	item.UpdatedAt = &now
	raw, err = json.Marshal(item)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "updated_at")
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(ErrKnowledgeItemNotFound))
	assert.True(t, IsNotFound(ErrDocumentNotFound))
	assert.False(t, IsNotFound(ErrEmptyQuery))
	assert.False(t, IsNotFound(nil))
}
