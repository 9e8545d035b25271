package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/middleware"
)

const serviceName = "storefront"

// RouterOptions tunes the middleware stack.
type RouterOptions struct {
	CORS           middleware.CORSConfig
	RequestTimeout time.Duration
	// CatalogMaxAge is the Cache-Control max-age, in seconds, of catalog pages
	// that do not depend on the visitor.
	CatalogMaxAge  int
	RateLimitRPS   float64
	RateLimitBurst int
	SecureCookies  bool
	// StreamHeartbeat is the interval of SSE keep-alive comments.
	StreamHeartbeat time.Duration
}

// DefaultRouterOptions returns options suitable for local development.
func DefaultRouterOptions() RouterOptions {
	return RouterOptions{
		CORS:            middleware.DefaultCORSConfig(),
		RequestTimeout:  30 * time.Second,
		CatalogMaxAge:   60,
		RateLimitRPS:    10,
		RateLimitBurst:  20,
		SecureCookies:   true,
		StreamHeartbeat: 15 * time.Second,
	}
}

// NewRouter creates a chi router with every storefront route registered. The
// rate limiter's cleanup loop stops when ctx is cancelled.
func NewRouter(
	ctx context.Context,
	storefront *service.StorefrontService,
	news *service.NewsService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	opts RouterOptions,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(opts.CORS))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	catalogHandler := NewCatalogHandler(storefront, logger, opts.SecureCookies)
	wishlistHandler := NewWishlistHandler(storefront, logger, opts.SecureCookies)
	newsHandler := NewNewsHandler(news, logger, opts.StreamHeartbeat)
	limit := middleware.RateLimit(ctx, opts.RateLimitRPS, opts.RateLimitBurst, logger)

	// The news stream outlives any request timeout.
	r.Get("/api/v1/news/stream", newsHandler.Stream)

	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(opts.RequestTimeout))
		r.Use(ContentTypeJSON)

		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(opts.CatalogMaxAge))

			r.Get("/api/v1/collections/all", catalogHandler.ListProducts)
			r.Get("/api/v1/pages/contact", catalogHandler.ContactPage)
			r.Get("/api/v1/pages/faq", catalogHandler.FAQPage)
			r.Get("/api/v1/news", newsHandler.Feed)
		})

		// Wishlist cookie readers and writers
		r.Group(func(r chi.Router) {
			r.Use(middleware.NoStore)

			r.Get("/wishlist", wishlistHandler.Page)
			r.Get("/api/v1/wishlist", wishlistHandler.Page)
			r.Get("/api/v1/wishlist/items/{productId}", wishlistHandler.Status)
			r.Get("/api/v1/products/{handle}", catalogHandler.GetProduct)

			r.With(limit).Post("/api/v1/wishlist/items/{productId}/toggle", wishlistHandler.Toggle)
			r.With(limit).Delete("/api/v1/wishlist/items/{productId}", wishlistHandler.Remove)
			r.With(limit).Post("/api/v1/products/{handle}/arcade", wishlistHandler.Arcade)
		})

		r.With(limit).Post("/api/v1/news/sessions/{id}/{action}", newsHandler.Act)
	})

	return r
}
