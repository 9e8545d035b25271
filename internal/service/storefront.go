// Package service holds the storefront's page and wishlist use cases.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/storefront/internal/arcade"
	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/clock"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/event"
	"github.com/utafrali/storefront/pkg/logger"
	"github.com/utafrali/storefront/pkg/pagination"
)

// Empty-state messages shown instead of an empty list.
const (
	EmptyWishlistMessage = "No favorites yet!"
	EmptyFAQMessage      = "No FAQs available at the moment."
	EmptyContactMessage  = "No contact information available."
)

// Catalog is the subset of the Storefront API the service reads.
type Catalog interface {
	ProductsByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	ListProducts(ctx context.Context, filter catalog.Filter, page pagination.Params) (*domain.ProductPage, error)
	ProductByHandle(ctx context.Context, handle string, selectedOptions []domain.SelectedOption) (*domain.Product, error)
	Contact(ctx context.Context) (*domain.ContactInfo, error)
	FAQs(ctx context.Context) ([]domain.FAQ, error)
}

// HandleLister returns every product handle in catalog order.
type HandleLister interface {
	Handles(ctx context.Context) []string
}

// FAQScraper reads FAQ entries from the shop's public pages.
type FAQScraper interface {
	Enabled() bool
	Scrape(ctx context.Context) ([]domain.FAQ, error)
}

// StorefrontService implements the catalog pages and every wishlist entry
// point.
type StorefrontService struct {
	catalog  Catalog
	handles  HandleLister
	scraper  FAQScraper
	producer *event.Producer
	clock    clock.Clock
	logger   *slog.Logger
}

// NewStorefrontService creates the service. scraper may be nil.
func NewStorefrontService(cat Catalog, handles HandleLister, scraper FAQScraper, producer *event.Producer, clk clock.Clock, logger *slog.Logger) *StorefrontService {
	if producer == nil {
		producer = event.NewProducer(nil, logger)
	}
	if clk == nil {
		clk = clock.Real{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StorefrontService{
		catalog:  cat,
		handles:  handles,
		scraper:  scraper,
		producer: producer,
		clock:    clk,
		logger:   logger,
	}
}

// ProductDetail is the product page: the product, its wishlist state and
// its neighbours in the catalog.
type ProductDetail struct {
	Product        *domain.Product `json:"product"`
	Wishlisted     bool            `json:"wishlisted"`
	PreviousHandle string          `json:"previous_handle,omitempty"`
	NextHandle     string          `json:"next_handle,omitempty"`
}

// ContactPage is the contact page with the shop's FAQs.
type ContactPage struct {
	Contact *domain.ContactInfo `json:"contact"`
	Message string              `json:"message,omitempty"`
	FAQs    []domain.FAQ        `json:"faqs"`
}

// FAQPage lists the shop's FAQs.
type FAQPage struct {
	FAQs    []domain.FAQ `json:"faqs"`
	Message string       `json:"message,omitempty"`
}

// ListProducts returns one filtered page of the catalog.
func (s *StorefrontService) ListProducts(ctx context.Context, filter catalog.Filter, page pagination.Params) (*domain.ProductPage, error) {
	result, err := s.catalog.ListProducts(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return result, nil
}

// ProductPage loads the product behind handle together with the visitor's
// wishlist state and the previous and next handles.
func (s *StorefrontService) ProductPage(ctx context.Context, wl WishlistSource, handle string, selectedOptions []domain.SelectedOption) (*ProductDetail, error) {
	product, err := s.catalog.ProductByHandle(ctx, handle, selectedOptions)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	store := s.newStore(ctx, wl)
	wishlisted, err := store.Contains(product.ID)
	if err != nil {
		return nil, err
	}

	detail := &ProductDetail{Product: product, Wishlisted: wishlisted}
	handles := s.handles.Handles(ctx)
	if prev, err := arcade.Adjacent(handles, handle, arcade.Left); err == nil {
		detail.PreviousHandle = prev
	}
	if next, err := arcade.Adjacent(handles, handle, arcade.Right); err == nil {
		detail.NextHandle = next
	}
	return detail, nil
}

// ContactPage returns the shop's contact details and FAQs.
func (s *StorefrontService) ContactPage(ctx context.Context) (*ContactPage, error) {
	info, err := s.catalog.Contact(ctx)
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}

	faqs, err := s.faqs(ctx)
	if err != nil {
		return nil, err
	}

	page := &ContactPage{Contact: info, FAQs: faqs}
	if info == nil {
		page.Message = EmptyContactMessage
	}
	return page, nil
}

// FAQPage returns the shop's FAQs, falling back to the contact page's FAQ
// section when the shop has no FAQ records.
func (s *StorefrontService) FAQPage(ctx context.Context) (*FAQPage, error) {
	faqs, err := s.faqs(ctx)
	if err != nil {
		return nil, err
	}

	page := &FAQPage{FAQs: faqs}
	if len(faqs) == 0 {
		page.Message = EmptyFAQMessage
	}
	return page, nil
}

func (s *StorefrontService) faqs(ctx context.Context) ([]domain.FAQ, error) {
	faqs, err := s.catalog.FAQs(ctx)
	if err != nil {
		return nil, fmt.Errorf("get faqs: %w", err)
	}
	if len(faqs) > 0 || s.scraper == nil || !s.scraper.Enabled() {
		return faqs, nil
	}

	scraped, err := s.scraper.Scrape(ctx)
	if err != nil {
		logger.FromContext(ctx).WarnContext(ctx, "faq page scrape failed", slog.String("error", err.Error()))
		return faqs, nil
	}
	return scraped, nil
}
