package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/internal/wishlist"
)

const (
	productGID  = "gid://shopify/Product/1"
	escapedGID  = "gid:%2F%2Fshopify%2FProduct%2F1"
	toggleRoute = "/api/v1/wishlist/items/" + escapedGID + "/toggle"
)

func TestWishlistPage_Empty(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/wishlist", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var page service.WishlistPage
	decode(t, rec, &page)
	assert.Empty(t, page.Products)
	assert.Equal(t, service.EmptyWishlistMessage, page.Message)
	assert.Empty(t, responseWishlist(t, rec))
	env.catalog.AssertNotCalled(t, "ProductsByIDs", mock.Anything, mock.Anything)
}

func TestWishlistPage_WithItems(t *testing.T) {
	env := newTestEnv(t)
	env.catalog.On("ProductsByIDs", mock.Anything, []string{productGID}).
		Return([]domain.Product{{ID: productGID, Handle: "nes", Tags: []string{}}}, nil)

	rec := env.do(t, http.MethodGet, "/api/v1/wishlist", "", wishlistCookie(productGID))
	require.Equal(t, http.StatusOK, rec.Code)

	var page service.WishlistPage
	decode(t, rec, &page)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "nes", page.Products[0].Handle)
	assert.Empty(t, rec.Result().Cookies())
}

func TestWishlistPage_CorruptCookieRewritten(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/wishlist", "", &http.Cookie{Name: wishlist.CookieName, Value: "garbage"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, responseWishlist(t, rec))
}

func TestToggle_RoundTrip(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, toggleRoute, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res service.ToggleResult
	decode(t, rec, &res)
	assert.Equal(t, service.ToggleResult{ProductID: productGID, Wishlisted: true, Burst: true}, res)
	assert.Equal(t, wishlist.Set{productGID: true}, responseWishlist(t, rec))

	cookie := rec.Result().Cookies()[0]
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.True(t, cookie.Secure)
	assert.Equal(t, "/", cookie.Path)

	rec = env.do(t, http.MethodPost, toggleRoute, "", wishlistCookie(productGID))
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &res)
	assert.False(t, res.Wishlisted)
	assert.False(t, res.Burst)
	assert.Empty(t, responseWishlist(t, rec))
}

func TestToggle_NumericID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/wishlist/items/42/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var res service.ToggleResult
	decode(t, rec, &res)
	assert.Equal(t, "gid://shopify/Product/42", res.ProductID)
}

func TestToggle_RejectsNonJSONBody(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, toggleRoute, strings.NewReader("id=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestRemove(t *testing.T) {
	env := newTestEnv(t)
	other := "gid://shopify/Product/2"

	rec := env.do(t, http.MethodDelete, "/api/v1/wishlist/items/"+escapedGID, "", wishlistCookie(productGID, other))
	require.Equal(t, http.StatusOK, rec.Code)

	var state service.WishlistState
	decode(t, rec, &state)
	assert.True(t, state.Removed)
	assert.Equal(t, []string{other}, state.ProductIDs)
	assert.Equal(t, wishlist.Set{other: true}, responseWishlist(t, rec))
}

func TestStatus(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/wishlist/items/"+escapedGID, "", wishlistCookie(productGID))
	require.Equal(t, http.StatusOK, rec.Code)
	var status StatusResponse
	decode(t, rec, &status)
	assert.True(t, status.Wishlisted)

	rec = env.do(t, http.MethodGet, "/api/v1/wishlist/items/7", "", wishlistCookie(productGID))
	decode(t, rec, &status)
	assert.False(t, status.Wishlisted)
}

func TestArcade(t *testing.T) {
	env := newTestEnv(t)
	env.catalog.On("ProductByHandle", mock.Anything, "snes", []domain.SelectedOption(nil)).
		Return(&domain.Product{ID: productGID, Handle: "snes"}, nil)

	rec := env.do(t, http.MethodPost, "/api/v1/products/snes/arcade", `{"signal":"A"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res service.ArcadeResult
	decode(t, rec, &res)
	assert.True(t, res.Wishlisted)
	assert.Empty(t, res.NextHandle)
	assert.Equal(t, wishlist.Set{productGID: true}, responseWishlist(t, rec))

	rec = env.do(t, http.MethodPost, "/api/v1/products/snes/arcade", `{"signal":"RIGHT"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &res)
	assert.Equal(t, "n64", res.NextHandle)
}

func TestArcade_BadRequests(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		target string
		body   string
		code   string
	}{
		{"missing signal", "/api/v1/products/snes/arcade", `{}`, "VALIDATION_ERROR"},
		{"unknown field", "/api/v1/products/snes/arcade", `{"signal":"A","turbo":true}`, "INVALID_INPUT"},
		{"unknown signal", "/api/v1/products/snes/arcade", `{"signal":"START"}`, "INVALID_INPUT"},
		{"bad handle", "/api/v1/products/Not_A_Handle/arcade", `{"signal":"A"}`, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			env := decode(t, rec, nil)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
	env.catalog.AssertNotCalled(t, "ProductByHandle", mock.Anything, mock.Anything, mock.Anything)
}
