// Package websearch wraps the DuckDuckGo HTML endpoint as a web search
// gateway. Failures never propagate: any error yields an empty result
// list and the caller decides how to report it.
package websearch

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/recallhq/recall/internal/domain"
	"github.com/recallhq/recall/internal/telemetry"
)

const (
	defaultBaseURL = "https://html.duckduckgo.com/html/"

	// Browser-like identity; DuckDuckGo serves empty pages to obvious bots.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// MaxResults bounds the number of results per search request.
	MaxResults = 10
	// MaxResultsLimit is the hard upper bound a caller may request.
	MaxResultsLimit = 20

	requestTimeout = 10 * time.Second
	collectBudget  = 8 * time.Second
)

// Client queries DuckDuckGo and parses the HTML result page.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client against the public DuckDuckGo endpoint.
func NewClient() *Client {
	return NewClientWithBaseURL(defaultBaseURL)
}

// NewClientWithBaseURL creates a Client against a custom endpoint (for testing).
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Search runs a text search and returns up to maxResults hits. On any
// failure (timeout, provider error, unparsable page) it logs and returns
// an empty slice.
func (c *Client) Search(ctx context.Context, query string, maxResults int) []domain.SearchResult {
	ctx, span := telemetry.StartSpan(ctx, "websearch.Search", telemetry.SpanAttributes{
		Operation: "search",
	})
	defer span.End()

	if maxResults <= 0 {
		maxResults = MaxResults
	}
	if maxResults > MaxResultsLimit {
		maxResults = MaxResultsLimit
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?q="+url.QueryEscape(query), nil)
	if err != nil {
		log.Printf("websearch: building request failed: %v", err)
		return []domain.SearchResult{}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("websearch: search for %q failed: %v", query, err)
		return []domain.SearchResult{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("websearch: search for %q returned HTTP %d", query, resp.StatusCode)
		return []domain.SearchResult{}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		log.Printf("websearch: parsing results for %q failed: %v", query, err)
		return []domain.SearchResult{}
	}

	results := collectResults(doc, maxResults)
	log.Printf("websearch: found %d results for query %q", len(results), query)
	return results
}

// collectResults walks the result blocks, bounded by maxResults and a
// soft wall-clock budget on processing time.
func collectResults(doc *goquery.Document, maxResults int) []domain.SearchResult {
	results := []domain.SearchResult{}
	deadline := time.Now().Add(collectBudget)

	doc.Find(".result").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if len(results) >= maxResults || time.Now().After(deadline) {
			return false
		}

		link := sel.Find("a.result__a").First()
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return true
		}

		results = append(results, domain.SearchResult{
			Title:   strings.TrimSpace(link.Text()),
			URL:     resolveRedirect(href),
			Snippet: strings.TrimSpace(sel.Find(".result__snippet").Text()),
		})
		return true
	})

	return results
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg=<target> redirect links.
func resolveRedirect(href string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := parsed.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}
