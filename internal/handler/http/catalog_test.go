package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/service"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/pagination"
)

func TestHealthLive(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListProducts(t *testing.T) {
	env := newTestEnv(t)
	env.catalog.On("ListProducts", mock.Anything,
		catalog.Filter{Tags: []string{"retro", "console"}, Collections: []string{"games"}},
		pagination.Params{First: 8, After: "c8"},
	).Return(&domain.ProductPage{
		Products:            []domain.Product{{ID: "p1", Handle: "nes", Tags: []string{"retro"}}},
		PageInfo:            domain.PageInfo{HasNextPage: true, HasPreviousPage: true, StartCursor: "c9", EndCursor: "c16"},
		Collections:         []domain.Collection{{ID: "c", Handle: "games", Title: "Games"}},
		SelectedCollections: []string{"games"},
		SelectedTags:        []string{"retro", "console"},
	}, nil)

	rec := env.do(t, http.MethodGet, "/api/v1/collections/all?tags=retro,console&collections=games&cursor=c8", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "public, max-age=60", rec.Header().Get("Cache-Control"))

	var list struct {
		Products struct {
			Data        []domain.Product `json:"data"`
			HasNextPage bool             `json:"has_next_page"`
			EndCursor   string           `json:"end_cursor"`
		} `json:"products"`
		SelectedTags []string `json:"selected_tags"`
	}
	decode(t, rec, &list)
	assert.Len(t, list.Products.Data, 1)
	assert.True(t, list.Products.HasNextPage)
	assert.Equal(t, "c16", list.Products.EndCursor)
	assert.Equal(t, []string{"retro", "console"}, list.SelectedTags)
}

func TestListProducts_PreviousPage(t *testing.T) {
	env := newTestEnv(t)
	env.catalog.On("ListProducts", mock.Anything, catalog.Filter{}, pagination.Params{Last: 8, Before: "c9"}).
		Return(&domain.ProductPage{}, nil)

	rec := env.do(t, http.MethodGet, "/api/v1/collections/all?cursor=c9&direction=previous", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list struct {
		Products struct {
			Data []domain.Product `json:"data"`
		} `json:"products"`
	}
	decode(t, rec, &list)
	assert.NotNil(t, list.Products.Data)
}

func TestListProducts_CatalogUnavailable(t *testing.T) {
	env := newTestEnv(t)
	env.catalog.On("ListProducts", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.Unavailable("catalog is temporarily unavailable, please retry shortly"))

	rec := env.do(t, http.MethodGet, "/api/v1/collections/all", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	env2 := decode(t, rec, nil)
	require.NotNil(t, env2.Error)
	assert.Equal(t, "SERVICE_UNAVAILABLE", env2.Error.Code)
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)
	env.catalog.On("ProductByHandle", mock.Anything, "snes", []domain.SelectedOption{{Name: "Region", Value: "PAL"}}).
		Return(&domain.Product{ID: productGID, Handle: "snes", Title: "Super Nintendo", Tags: []string{}}, nil)

	rec := env.do(t, http.MethodGet, "/api/v1/products/snes?Region=PAL", "", wishlistCookie(productGID))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var detail service.ProductDetail
	decode(t, rec, &detail)
	assert.Equal(t, "Super Nintendo", detail.Product.Title)
	assert.True(t, detail.Wishlisted)
	assert.Equal(t, "nes", detail.PreviousHandle)
	assert.Equal(t, "n64", detail.NextHandle)
}

func TestGetProduct_NotFound(t *testing.T) {
	env := newTestEnv(t)
	env.catalog.On("ProductByHandle", mock.Anything, "ghost", mock.Anything).
		Return(nil, apperrors.NotFound("product", "ghost"))

	rec := env.do(t, http.MethodGet, "/api/v1/products/ghost", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetProduct_InvalidHandle(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/products/Bad_Handle", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env.catalog.AssertNotCalled(t, "ProductByHandle", mock.Anything, mock.Anything, mock.Anything)
}

func TestContactPage(t *testing.T) {
	env := newTestEnv(t)
	info := domain.NewContactInfo("1 Arcade Way", "+33 1 23 45 67 89", "")
	env.catalog.On("Contact", mock.Anything).Return(&info, nil)
	env.catalog.On("FAQs", mock.Anything).Return([]domain.FAQ{}, nil)

	rec := env.do(t, http.MethodGet, "/api/v1/pages/contact", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page service.ContactPage
	decode(t, rec, &page)
	require.NotNil(t, page.Contact)
	assert.Equal(t, domain.NotAvailable, page.Contact.Email)
	assert.Empty(t, page.FAQs)
}

func TestFAQPage_Empty(t *testing.T) {
	env := newTestEnv(t)
	env.catalog.On("FAQs", mock.Anything).Return([]domain.FAQ{}, nil)

	rec := env.do(t, http.MethodGet, "/api/v1/pages/faq", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page service.FAQPage
	decode(t, rec, &page)
	assert.Equal(t, service.EmptyFAQMessage, page.Message)
}
