// Package extract fetches a web page and derives its title, description,
// main textual content, and optionally link and image lists.
package extract

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/recallhq/recall/internal/domain"
	"github.com/recallhq/recall/internal/telemetry"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// MaxContentLength truncates extracted content to keep responses bounded.
	MaxContentLength = 100000

	// DefaultTimeout is applied when a request carries no timeout.
	DefaultTimeout = 10 * time.Second
	// MinTimeout and MaxTimeout bound the per-request timeout.
	MinTimeout = 3 * time.Second
	MaxTimeout = 30 * time.Second
)

// mainContentSelector lists likely main-content elements, in priority order.
const mainContentSelector = `article, [role="main"], main, .content, .post, .article, #content, #main`

// excludedNames are class/id names of known non-content subtrees removed
// before text extraction.
var excludedNames = []string{
	"nav", "sidebar", "advertisement", "ad", "footer", "comment",
	"menu", "related", "promo", "banner", "popup",
}

var (
	wordRunPattern    = regexp.MustCompile(`\w+`)
	blankLinePattern  = regexp.MustCompile(`\n\s*\n`)
	multiSpacePattern = regexp.MustCompile(` +`)
)

// Page is the result of a single extraction. Never persisted.
type Page struct {
	URL         string
	Title       string
	Content     string
	Description string
	WordCount   int
	Links       []Link
	Images      []Image
}

// Link is an anchor with a resolved URL and its trimmed text.
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// Image carries the resolved source plus attributes passed through as-is.
type Image struct {
	Src    string `json:"src"`
	Alt    string `json:"alt"`
	Width  string `json:"width"`
	Height string `json:"height"`
}

// Options control what a single extraction produces.
type Options struct {
	ExtractLinks  bool
	ExtractImages bool
	Timeout       time.Duration
}

// Extractor fetches pages over HTTP and parses them.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// ValidateURL checks that rawURL is an absolute HTTP or HTTPS URL with a host.
func ValidateURL(rawURL string) error {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return domain.ErrInvalidURL
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return domain.ErrInvalidURL
	}
	return nil
}

// Extract fetches rawURL and derives the page fields. Redirects are
// followed; the whole fetch is bounded by opts.Timeout.
func (e *Extractor) Extract(ctx context.Context, rawURL string, opts Options) (*Page, error) {
	ctx, span := telemetry.StartSpan(ctx, "extract.Extract", telemetry.SpanAttributes{
		URL:       rawURL,
		Operation: "extract",
	})
	defer span.End()

	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if timeout < MinTimeout {
		timeout = MinTimeout
	}
	if timeout > MaxTimeout {
		timeout = MaxTimeout
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeUpstream, "failed to build request", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return nil, domain.NewDomainError(domain.ErrCodeUpstream,
				fmt.Sprintf("request timed out after %d seconds", int(timeout.Seconds())))
		}
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeUpstream, "failed to fetch URL", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewDomainError(domain.ErrCodeUpstream,
			fmt.Sprintf("failed to fetch URL: HTTP status %d", resp.StatusCode))
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "text/html") && !strings.Contains(contentType, "application/xhtml+xml") {
		return nil, domain.NewDomainError(domain.ErrCodeUpstream,
			fmt.Sprintf("URL does not contain HTML content (Content-Type: %s)", contentType))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeUpstream, "failed to parse HTML", err)
	}

	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, domain.ErrInvalidURL
	}

	content := cleanText(mainContent(doc))
	if len(content) > MaxContentLength {
		content = content[:MaxContentLength]
	}

	page := &Page{
		URL:         rawURL,
		Title:       strings.TrimSpace(doc.Find("title").First().Text()),
		Content:     content,
		Description: description(doc),
		WordCount:   len(wordRunPattern.FindAllString(content, -1)),
	}

	if opts.ExtractLinks {
		page.Links = extractLinks(doc, base)
	}
	if opts.ExtractImages {
		page.Images = extractImages(doc, base)
	}

	return page, nil
}

// description returns the meta description, preferring name=description
// over property=og:description.
func description(doc *goquery.Document) string {
	meta := doc.Find(`meta[name="description"]`).First()
	if meta.Length() == 0 {
		meta = doc.Find(`meta[property="og:description"]`).First()
	}
	content, _ := meta.Attr("content")
	return strings.TrimSpace(content)
}

// mainContent extracts raw text from the most likely content area:
// the first main-content candidate (with non-content subtrees removed),
// falling back to concatenated paragraph text, then whole-body text.
func mainContent(doc *goquery.Document) string {
	candidates := doc.Find(mainContentSelector)
	if candidates.Length() > 0 {
		main := candidates.First()
		removeExcluded(main)

		paragraphs := main.Find("p")
		if paragraphs.Length() > 0 {
			return joinParagraphs(paragraphs)
		}
		return main.Text()
	}

	paragraphs := doc.Find("p")
	if paragraphs.Length() > 0 {
		return joinParagraphs(paragraphs)
	}

	body := doc.Find("body").First()
	if body.Length() > 0 {
		removeExcluded(body)
		return body.Text()
	}

	return ""
}

func joinParagraphs(paragraphs *goquery.Selection) string {
	parts := make([]string, 0, paragraphs.Length())
	paragraphs.Each(func(i int, p *goquery.Selection) {
		parts = append(parts, p.Text())
	})
	return strings.Join(parts, "\n\n")
}

func removeExcluded(sel *goquery.Selection) {
	selectors := make([]string, 0, len(excludedNames)*2)
	for _, name := range excludedNames {
		selectors = append(selectors, "."+name, "#"+name)
	}
	sel.Find(strings.Join(selectors, ", ")).Remove()
}

// cleanText collapses repeated blank lines and spaces and trims the result.
func cleanText(text string) string {
	text = blankLinePattern.ReplaceAllString(text, "\n\n")
	text = multiSpacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func extractLinks(doc *goquery.Document, base *url.URL) []Link {
	links := []Link{}
	doc.Find("a[href]").Each(func(i int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "#") ||
			strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") {
			return
		}

		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}

		links = append(links, Link{
			URL:  resolveURL(base, href),
			Text: text,
		})
	})
	return links
}

func extractImages(doc *goquery.Document, base *url.URL) []Image {
	images := []Image{}
	doc.Find("img").Each(func(i int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		if src == "" {
			return
		}

		// data: URIs carry their content inline; pass them through unresolved.
		if !strings.HasPrefix(src, "data:") {
			src = resolveURL(base, src)
		}

		images = append(images, Image{
			Src:    src,
			Alt:    sel.AttrOr("alt", ""),
			Width:  sel.AttrOr("width", ""),
			Height: sel.AttrOr("height", ""),
		})
	})
	return images
}

// resolveURL resolves a candidate URL against the page's base URL:
// absolute URLs pass through, root-relative paths join the origin, and
// path-relative references drop the base path's last segment.
func resolveURL(base *url.URL, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}

	origin := base.Scheme + "://" + base.Host
	if strings.HasPrefix(ref, "/") {
		return origin + ref
	}

	path := base.Path
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[:i]
	}
	return origin + path + "/" + ref
}
