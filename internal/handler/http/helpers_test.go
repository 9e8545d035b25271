package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/carousel"
	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/clock"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/internal/wishlist"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/pagination"
)

// --- Mock Catalog ---

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) ProductsByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockCatalog) ListProducts(ctx context.Context, filter catalog.Filter, page pagination.Params) (*domain.ProductPage, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductPage), args.Error(1)
}

func (m *mockCatalog) ProductByHandle(ctx context.Context, handle string, opts []domain.SelectedOption) (*domain.Product, error) {
	args := m.Called(ctx, handle, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockCatalog) Contact(ctx context.Context) (*domain.ContactInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContactInfo), args.Error(1)
}

func (m *mockCatalog) FAQs(ctx context.Context) ([]domain.FAQ, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FAQ), args.Error(1)
}

type staticHandles []string

func (h staticHandles) Handles(context.Context) []string { return h }

// --- Test Env ---

type testEnv struct {
	router  http.Handler
	catalog *mockCatalog
	hub     *carousel.Hub
	clock   *clock.Fake
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewFake(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	cat := new(mockCatalog)
	hub := carousel.NewHub(carousel.DefaultNews(), carousel.DefaultTimings(), 0, clk, logger)
	t.Cleanup(hub.Close)

	storefront := service.NewStorefrontService(cat, staticHandles{"nes", "snes", "n64"}, nil, nil, clk, logger)
	opts := DefaultRouterOptions()
	opts.RateLimitBurst = 1000
	opts.StreamHeartbeat = 0

	return &testEnv{
		router:  NewRouter(ctx, storefront, service.NewNewsService(hub), health.NewHandler(), logger, opts),
		catalog: cat,
		hub:     hub,
		clock:   clk,
	}
}

func (e *testEnv) do(t *testing.T, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil && env.Data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func wishlistCookie(ids ...string) *http.Cookie {
	set := wishlist.Set{}
	for _, id := range ids {
		set[id] = true
	}
	return &http.Cookie{Name: wishlist.CookieName, Value: wishlist.Encode(set)}
}

// responseWishlist decodes the wishlist cookie set by the response.
func responseWishlist(t *testing.T, rec *httptest.ResponseRecorder) wishlist.Set {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == wishlist.CookieName {
			set, err := wishlist.Decode(c.Value)
			require.NoError(t, err)
			return set
		}
	}
	t.Fatalf("response did not set the %s cookie", wishlist.CookieName)
	return nil
}
