package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/internal/wishlist"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/validator"
)

// WishlistHandler serves every endpoint that reads or writes the wishlist
// cookie.
type WishlistHandler struct {
	service *service.StorefrontService
	logger  *slog.Logger
	secure  bool
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(svc *service.StorefrontService, logger *slog.Logger, secureCookies bool) *WishlistHandler {
	return &WishlistHandler{service: svc, logger: logger, secure: secureCookies}
}

// ArcadeRequest is the JSON request body of a deck signal.
type ArcadeRequest struct {
	Signal string `json:"signal" validate:"required,max=16"`
}

// StatusResponse reports a single product's membership.
type StatusResponse struct {
	ProductID  string `json:"product_id"`
	Wishlisted bool   `json:"wishlisted"`
}

func (h *WishlistHandler) persister(w http.ResponseWriter, r *http.Request) *wishlist.CookiePersister {
	return wishlist.NewCookiePersister(w, r, h.secure)
}

// Page handles GET /wishlist
func (h *WishlistHandler) Page(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.WishlistPage(r.Context(), h.persister(w, r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: page})
}

// Status handles GET /api/v1/wishlist/items/{productId}
func (h *WishlistHandler) Status(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDParam(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	in, err := h.service.IsWishlisted(r.Context(), h.persister(w, r), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: StatusResponse{ProductID: productID, Wishlisted: in}})
}

// Toggle handles POST /api/v1/wishlist/items/{productId}/toggle
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDParam(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	result, err := h.service.ToggleWishlist(r.Context(), h.persister(w, r), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// Remove handles DELETE /api/v1/wishlist/items/{productId}
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDParam(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	state, err := h.service.RemoveFromWishlist(r.Context(), h.persister(w, r), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: state})
}

// Arcade handles POST /api/v1/products/{handle}/arcade
func (h *WishlistHandler) Arcade(w http.ResponseWriter, r *http.Request) {
	handle, err := handleParam(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	var req ArcadeRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	result, err := h.service.Arcade(r.Context(), h.persister(w, r), handle, req.Signal)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}
