package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/recallhq/recall/internal/api"
	"github.com/recallhq/recall/internal/domain"
	"github.com/recallhq/recall/internal/extract"
)

type ContentExtractor interface {
	Extract(ctx context.Context, rawURL string, opts extract.Options) (*extract.Page, error)
}

type ExtractHandler struct {
	extractor ContentExtractor
}

func NewExtractHandler(extractor ContentExtractor) *ExtractHandler {
	return &ExtractHandler{extractor: extractor}
}

type ExtractRequest struct {
	URL           string `json:"url"`
	ExtractLinks  bool   `json:"extract_links"`
	ExtractImages bool   `json:"extract_images"`
	Timeout       int    `json:"timeout"`
}

// ExtractResponse carries the page fields on success. The optional fields
// are pointers so a failed extraction reports them as explicit nulls.
type ExtractResponse struct {
	Success     bool            `json:"success"`
	Message     string          `json:"message"`
	URL         string          `json:"url"`
	Title       *string         `json:"title"`
	Content     *string         `json:"content"`
	Description *string         `json:"description"`
	WordCount   *int            `json:"word_count"`
	Links       []extract.Link  `json:"links"`
	Images      []extract.Image `json:"images"`
	FetchTime   float64         `json:"fetch_time"`
}

func (h *ExtractHandler) Extract(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Reject(w, "invalid request body")
		return
	}

	if req.URL == "" {
		api.Reject(w, "url is required")
		return
	}
	if err := extract.ValidateURL(req.URL); err != nil {
		api.Reject(w, api.Message(err))
		return
	}

	if req.Timeout == 0 {
		req.Timeout = int(extract.DefaultTimeout.Seconds())
	}
	if req.Timeout < int(extract.MinTimeout.Seconds()) || req.Timeout > int(extract.MaxTimeout.Seconds()) {
		api.Reject(w, fmt.Sprintf("timeout must be between %d and %d seconds",
			int(extract.MinTimeout.Seconds()), int(extract.MaxTimeout.Seconds())))
		return
	}

	page, err := h.extractor.Extract(r.Context(), req.URL, extract.Options{
		ExtractLinks:  req.ExtractLinks,
		ExtractImages: req.ExtractImages,
		Timeout:       time.Duration(req.Timeout) * time.Second,
	})
	fetchTime := time.Since(start).Seconds()

	if err != nil {
		message := api.Message(err)
		if domainErr, ok := err.(*domain.DomainError); !ok || domainErr.Code != domain.ErrCodeUpstream {
			message = "Failed to process content: " + message
		}
		api.JSON(w, http.StatusOK, ExtractResponse{
			Success:   false,
			Message:   message,
			URL:       req.URL,
			FetchTime: fetchTime,
		})
		return
	}

	resp := ExtractResponse{
		Success:     true,
		Message:     "Content extracted successfully",
		URL:         page.URL,
		Title:       &page.Title,
		Content:     &page.Content,
		Description: &page.Description,
		WordCount:   &page.WordCount,
		FetchTime:   fetchTime,
	}
	if req.ExtractLinks {
		resp.Links = page.Links
	}
	if req.ExtractImages {
		resp.Images = page.Images
	}

	api.JSON(w, http.StatusOK, resp)
}
