package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/recallhq/recall/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	JSON(rec, http.StatusOK, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestReject(t *testing.T) {
	rec := httptest.NewRecorder()

	Reject(rec, "topic is required")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body RejectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "topic is required", body.Message)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "plain failure", Message(errors.New("plain failure")))
	assert.Equal(t, "knowledge item not found", Message(domain.ErrKnowledgeItemNotFound))
	assert.Equal(t, "storage operation failed: disk full",
		Message(domain.NewDomainErrorWithCause(domain.ErrCodeStorage, "storage operation failed", errors.New("disk full"))))
}
