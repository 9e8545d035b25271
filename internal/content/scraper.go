// Package content scrapes FAQ entries from the shop's public contact page
// when the shop has no FAQ records of its own.
package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/httpclient"
)

// maxPageSize bounds the HTML read from the contact page.
const maxPageSize = 2 << 20

// PageGetter fetches a page. Satisfied by the httpclient clients.
type PageGetter interface {
	Get(ctx context.Context, url string) (*http.Response, error)
}

// FAQScraper reads FAQ entries from an HTML page.
type FAQScraper struct {
	http PageGetter
	url  string
}

// NewFAQScraper creates a scraper for the page at url.
func NewFAQScraper(getter PageGetter, url string) *FAQScraper {
	return &FAQScraper{http: getter, url: url}
}

// Enabled reports whether a page URL is configured.
func (s *FAQScraper) Enabled() bool {
	return s != nil && s.url != ""
}

// Scrape fetches the page and extracts its FAQ section. A page without one
// yields an empty slice.
func (s *FAQScraper) Scrape(ctx context.Context) ([]domain.FAQ, error) {
	if !s.Enabled() {
		return []domain.FAQ{}, nil
	}

	resp, err := s.http.Get(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("fetch faq page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "contact page")
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil, fmt.Errorf("parse faq page: %w", err)
	}
	return ExtractFAQs(doc), nil
}

// ExtractFAQs finds the first section whose h2 mentions "FAQ" and turns each
// of its list items into an entry. The item's first h3, h4 or strong element
// is the question and the rest of its text is the answer.
func ExtractFAQs(doc *goquery.Document) []domain.FAQ {
	faqs := []domain.FAQ{}

	section := doc.Find("section").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return strings.Contains(strings.ToUpper(sel.Find("h2").Text()), "FAQ")
	}).First()
	if section.Length() == 0 {
		return faqs
	}

	section.Find("li").Each(func(i int, item *goquery.Selection) {
		full := collapse(item.Text())
		if full == "" {
			return
		}

		question := collapse(item.Find("h3, h4, strong").First().Text())
		answer := ""
		if question == "" {
			question = full
		} else {
			answer = strings.TrimSpace(strings.Replace(full, question, "", 1))
		}

		faqs = append(faqs, domain.FAQ{
			ID:       "scraped-" + strconv.Itoa(len(faqs)+1),
			Question: question,
			Answer:   answer,
		})
	})
	return faqs
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
