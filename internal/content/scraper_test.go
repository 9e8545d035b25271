package content

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httpclient"
)

const contactPage = `<!doctype html>
<html><body>
  <section><h2>Visit us</h2><ul><li>Not a question</li></ul></section>
  <section>
    <h2>FAQ</h2>
    <ul>
      <li><h3>What makes our indie games unique?</h3><p>All our games are crafted in-house.</p></li>
      <li><strong>Do you ship abroad?</strong>
          Yes, to most of Europe.</li>
      <li>Gift cards are available in store.</li>
      <li>   </li>
    </ul>
  </section>
</body></html>`

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractFAQs(t *testing.T) {
	faqs := ExtractFAQs(parse(t, contactPage))

	assert.Equal(t, []domain.FAQ{
		{ID: "scraped-1", Question: "What makes our indie games unique?", Answer: "All our games are crafted in-house."},
		{ID: "scraped-2", Question: "Do you ship abroad?", Answer: "Yes, to most of Europe."},
		{ID: "scraped-3", Question: "Gift cards are available in store.", Answer: ""},
	}, faqs)
}

func TestExtractFAQs_HeadingCaseInsensitive(t *testing.T) {
	faqs := ExtractFAQs(parse(t, `<section><h2>Shop faqs</h2><ul><li><h4>Q</h4>A</li></ul></section>`))
	require.Len(t, faqs, 1)
	assert.Equal(t, "Q", faqs[0].Question)
	assert.Equal(t, "A", faqs[0].Answer)
}

func TestExtractFAQs_NoSection(t *testing.T) {
	faqs := ExtractFAQs(parse(t, `<html><body><h2>FAQ</h2><ul><li>outside a section</li></ul></body></html>`))
	assert.NotNil(t, faqs)
	assert.Empty(t, faqs)
}

func newScraper(t *testing.T, handler http.HandlerFunc) *FAQScraper {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewFAQScraper(httpclient.New(httpclient.Config{Timeout: 5 * time.Second, MaxConnsPerHost: 2}), srv.URL+"/pages/contact")
}

func TestScrape(t *testing.T) {
	s := newScraper(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/pages/contact", r.URL.Path)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(contactPage))
	})

	faqs, err := s.Scrape(context.Background())
	require.NoError(t, err)
	assert.Len(t, faqs, 3)
}

func TestScrape_NotFoundPage(t *testing.T) {
	s := newScraper(t, func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	})

	_, err := s.Scrape(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestScrape_ThroughCircuitBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(contactPage))
	}))
	t.Cleanup(srv.Close)

	base := httpclient.New(httpclient.Config{Timeout: 5 * time.Second, MaxConnsPerHost: 2})
	cb := httpclient.NewCircuitBreakerClient(base, httpclient.DefaultCircuitBreakerConfig("contact-page-test"), slog.Default())

	faqs, err := NewFAQScraper(cb, srv.URL).Scrape(context.Background())
	require.NoError(t, err)
	assert.Len(t, faqs, 3)
}

func TestScrape_Disabled(t *testing.T) {
	var s *FAQScraper
	assert.False(t, s.Enabled())

	faqs, err := NewFAQScraper(nil, "").Scrape(context.Background())
	require.NoError(t, err)
	assert.Empty(t, faqs)
}
