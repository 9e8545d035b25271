package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/internal/wishlist"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/pagination"
)

// CatalogHandler serves the product listing, product and content pages.
type CatalogHandler struct {
	service *service.StorefrontService
	logger  *slog.Logger
	secure  bool
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.StorefrontService, logger *slog.Logger, secureCookies bool) *CatalogHandler {
	return &CatalogHandler{service: svc, logger: logger, secure: secureCookies}
}

// ProductListResponse is one page of the filtered catalog.
type ProductListResponse struct {
	Products            httputil.CursorPage[domain.Product] `json:"products"`
	Collections         []domain.Collection                 `json:"collections"`
	SelectedCollections []string                            `json:"selected_collections"`
	SelectedTags        []string                            `json:"selected_tags"`
}

// ListProducts handles GET /api/v1/collections/all
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := catalog.Filter{
		Tags:        listParam(r, "tags"),
		Collections: listParam(r, "collections"),
	}

	page, err := h.service.ListProducts(r.Context(), filter, pagination.FromRequest(r, pagination.DefaultPageBy))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	info := page.PageInfo
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: ProductListResponse{
		Products:            httputil.NewCursorPage(page.Products, info.HasNextPage, info.HasPreviousPage, info.StartCursor, info.EndCursor),
		Collections:         page.Collections,
		SelectedCollections: page.SelectedCollections,
		SelectedTags:        page.SelectedTags,
	}})
}

// GetProduct handles GET /api/v1/products/{handle}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	handle, err := handleParam(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	wl := wishlist.NewCookiePersister(w, r, h.secure)
	detail, err := h.service.ProductPage(r.Context(), wl, handle, selectedOptions(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: detail})
}

// ContactPage handles GET /api/v1/pages/contact
func (h *CatalogHandler) ContactPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ContactPage(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: page})
}

// FAQPage handles GET /api/v1/pages/faq
func (h *CatalogHandler) FAQPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.FAQPage(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: page})
}
