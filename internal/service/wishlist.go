package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/utafrali/storefront/internal/arcade"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/wishlist"
	"github.com/utafrali/storefront/pkg/logger"
)

// WishlistSource is where a request's wishlist is persisted, normally the
// visitor's cookie.
type WishlistSource = wishlist.Persister

// WishlistPage lists the wishlisted products still in the catalog.
type WishlistPage struct {
	Products []domain.Product `json:"products"`
	Message  string           `json:"message,omitempty"`
}

// ToggleResult is the outcome of a wishlist toggle.
type ToggleResult struct {
	ProductID  string `json:"product_id"`
	Wishlisted bool   `json:"wishlisted"`
	Burst      bool   `json:"burst"`
}

// WishlistState is the visitor's wishlist after a removal.
type WishlistState struct {
	ProductIDs []string `json:"product_ids"`
	Removed    bool     `json:"removed"`
}

// ArcadeResult is the product view's state after one deck signal.
type ArcadeResult struct {
	Signal     string `json:"signal"`
	Wishlisted bool   `json:"wishlisted"`
	Burst      bool   `json:"burst"`
	NextHandle string `json:"next_handle"`
}

// newStore opens the request's wishlist with the event producer subscribed.
func (s *StorefrontService) newStore(ctx context.Context, wl WishlistSource) *wishlist.Store {
	store := wishlist.NewStore(wl, logger.WithContext(ctx, s.logger))
	store.Subscribe(s.producer.Listener(ctx))
	return store
}

// WishlistPage fetches the wishlisted products. An empty wishlist never
// reaches the catalog.
func (s *StorefrontService) WishlistPage(ctx context.Context, wl WishlistSource) (*WishlistPage, error) {
	set, err := s.newStore(ctx, wl).Get()
	if err != nil {
		return nil, err
	}

	ids := set.IDs()
	if len(ids) == 0 {
		return &WishlistPage{Products: []domain.Product{}, Message: EmptyWishlistMessage}, nil
	}

	products, err := s.catalog.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get wishlisted products: %w", err)
	}

	page := &WishlistPage{Products: products}
	if len(products) == 0 {
		page.Message = EmptyWishlistMessage
	}
	return page, nil
}

// IsWishlisted reports whether productID is on the wishlist.
func (s *StorefrontService) IsWishlisted(ctx context.Context, wl WishlistSource, productID string) (bool, error) {
	return s.newStore(ctx, wl).Contains(productID)
}

// ToggleWishlist flips productID's membership. Burst is set when the
// product was added.
func (s *StorefrontService) ToggleWishlist(ctx context.Context, wl WishlistSource, productID string) (*ToggleResult, error) {
	button := wishlist.NewButton(s.newStore(ctx, wl), productID, wishlist.WithClock(s.clock))
	defer button.Close()

	added, err := button.Click()
	if err != nil {
		return nil, err
	}
	return &ToggleResult{ProductID: productID, Wishlisted: added, Burst: button.Bursting()}, nil
}

// RemoveFromWishlist drops productID and returns what is left.
func (s *StorefrontService) RemoveFromWishlist(ctx context.Context, wl WishlistSource, productID string) (*WishlistState, error) {
	store := s.newStore(ctx, wl)
	removed, err := store.Remove(productID)
	if err != nil {
		return nil, err
	}

	set, err := store.Get()
	if err != nil {
		return nil, err
	}
	return &WishlistState{ProductIDs: set.IDs(), Removed: removed}, nil
}

// Arcade feeds one deck signal to the product page behind handle.
func (s *StorefrontService) Arcade(ctx context.Context, wl WishlistSource, handle, signal string) (*ArcadeResult, error) {
	cmd, ok, err := arcade.ParseSignal(signal)
	if err != nil {
		return nil, err
	}

	product, err := s.catalog.ProductByHandle(ctx, handle, nil)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	var handles []string
	if ok && cmd.Kind == arcade.Navigate {
		handles = s.handles.Handles(ctx)
	}

	var bus arcade.Bus
	view := arcade.NewProductView(&bus, s.newStore(ctx, wl), product.ID, handle, handles,
		logger.WithContext(ctx, s.logger), wishlist.WithClock(s.clock))
	defer view.Close()

	if ok {
		bus.Publish(cmd)
	}
	if err := view.Err(); err != nil {
		return nil, err
	}

	wishlisted, err := view.Button().Wishlisted()
	if err != nil {
		return nil, err
	}
	return &ArcadeResult{
		Signal:     strings.ToUpper(strings.TrimSpace(signal)),
		Wishlisted: wishlisted,
		Burst:      view.Button().Bursting(),
		NextHandle: view.NextHandle(),
	}, nil
}
