package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/recallhq/recall/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<!DOCTYPE html>
<html>
<head>
  <title>Test Article</title>
  <meta name="description" content="A page used in tests.">
</head>
<body>
  <nav class="nav"><a href="/home">Home</a></nav>
  <article>
    <div class="sidebar">Ignore this sidebar text</div>
    <p>First paragraph of the article.</p>
    <p>Second paragraph with more words.</p>
  </article>
  <a href="/about">About us</a>
  <a href="https://example.org/external">External</a>
  <a href="#section">Anchor</a>
  <a href="mailto:hi@example.com">Mail</a>
  <img src="/logo.png" alt="Logo" width="100" height="50">
  <img src="data:image/png;base64,AAAA" alt="Inline">
  <footer class="footer">Footer text</footer>
</body>
</html>`

func serveHTML(t *testing.T, body string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestValidateURL(t *testing.T) {
	assert.NoError(t, ValidateURL("https://example.com/page"))
	assert.NoError(t, ValidateURL("http://example.com"))

	assert.Error(t, ValidateURL("ftp://example.com"))
	assert.Error(t, ValidateURL("example.com"))
	assert.Error(t, ValidateURL("https://"))
}

func TestExtractor_Extract(t *testing.T) {
	srv := serveHTML(t, articlePage)
	e := New()

	page, err := e.Extract(context.Background(), srv.URL, Options{})

	require.NoError(t, err)
	assert.Equal(t, "Test Article", page.Title)
	assert.Equal(t, "A page used in tests.", page.Description)
	assert.Contains(t, page.Content, "First paragraph of the article.")
	assert.Contains(t, page.Content, "Second paragraph with more words.")
	assert.NotContains(t, page.Content, "Ignore this sidebar text")
	assert.Positive(t, page.WordCount)
	assert.Nil(t, page.Links, "links are only extracted on request")
	assert.Nil(t, page.Images)
}

func TestExtractor_Extract_Links(t *testing.T) {
	srv := serveHTML(t, articlePage)
	e := New()

	page, err := e.Extract(context.Background(), srv.URL, Options{ExtractLinks: true})

	require.NoError(t, err)

	urls := make([]string, len(page.Links))
	for i, link := range page.Links {
		urls[i] = link.URL
	}
	assert.Contains(t, urls, srv.URL+"/about", "root-relative links resolve against the origin")
	assert.Contains(t, urls, "https://example.org/external")
	assert.NotContains(t, urls, "#section", "fragment links are skipped")
	for _, u := range urls {
		assert.NotContains(t, u, "mailto:")
	}
}

func TestExtractor_Extract_Images(t *testing.T) {
	srv := serveHTML(t, articlePage)
	e := New()

	page, err := e.Extract(context.Background(), srv.URL, Options{ExtractImages: true})

	require.NoError(t, err)
	require.Len(t, page.Images, 2)
	assert.Equal(t, srv.URL+"/logo.png", page.Images[0].Src)
	assert.Equal(t, "Logo", page.Images[0].Alt)
	assert.Equal(t, "100", page.Images[0].Width)
	assert.Equal(t, "data:image/png;base64,AAAA", page.Images[1].Src, "data URIs pass through unresolved")
}

func TestExtractor_Extract_ParagraphFallback(t *testing.T) {
	srv := serveHTML(t, `<html><head><title>Plain</title></head>
<body><p>Only paragraphs here.</p><p>No content container.</p></body></html>`)
	e := New()

	page, err := e.Extract(context.Background(), srv.URL, Options{})

	require.NoError(t, err)
	assert.Contains(t, page.Content, "Only paragraphs here.")
	assert.Contains(t, page.Content, "No content container.")
}

func TestExtractor_Extract_BodyFallback(t *testing.T) {
	srv := serveHTML(t, `<html><head><title>Bare</title></head>
<body>Raw body text without paragraphs.</body></html>`)
	e := New()

	page, err := e.Extract(context.Background(), srv.URL, Options{})

	require.NoError(t, err)
	assert.Contains(t, page.Content, "Raw body text without paragraphs.")
}

func TestExtractor_Extract_InvalidURL(t *testing.T) {
	e := New()

	_, err := e.Extract(context.Background(), "not-a-url", Options{})

	require.Error(t, err)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeValidation, domainErr.Code)
}

func TestExtractor_Extract_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	e := New()

	_, err := e.Extract(context.Background(), srv.URL, Options{})

	require.Error(t, err)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeUpstream, domainErr.Code)
	assert.Contains(t, domainErr.Message, "404")
}

func TestExtractor_Extract_NonHTMLContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"not": "html"}`))
	}))
	t.Cleanup(srv.Close)
	e := New()

	_, err := e.Extract(context.Background(), srv.URL, Options{})

	require.Error(t, err)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeUpstream, domainErr.Code)
	assert.Contains(t, domainErr.Message, "HTML")
}

func TestResolveURL(t *testing.T) {
	base, err := url.Parse("https://example.com/blog/post.html")
	require.NoError(t, err)

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"absolute passes through", "https://other.org/x", "https://other.org/x"},
		{"root-relative joins origin", "/about", "https://example.com/about"},
		{"path-relative drops last segment", "next.html", "https://example.com/blog/next.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveURL(base, tt.ref))
		})
	}
}

func TestCleanText(t *testing.T) {
	in := "First  line\n\n\n\nSecond   line\n"
	assert.Equal(t, "First line\n\nSecond line", cleanText(in))
}
