package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"

	"github.com/utafrali/storefront/internal/carousel"
	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/catalog/cache"
	"github.com/utafrali/storefront/internal/clock"
	"github.com/utafrali/storefront/internal/config"
	"github.com/utafrali/storefront/internal/content"
	"github.com/utafrali/storefront/internal/event"
	handler "github.com/utafrali/storefront/internal/handler/http"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/database"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/httpclient"
	pkgkafka "github.com/utafrali/storefront/pkg/kafka"
	"github.com/utafrali/storefront/pkg/tracing"
)

const serviceName = "storefront"

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	rdb            *redis.Client
	producer       *pkgkafka.Producer
	hub            *carousel.Hub
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
	cancel         context.CancelFunc
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Tracing.
	traceCfg := tracing.DefaultConfig(serviceName)
	traceCfg.Environment = cfg.Environment
	traceCfg.Enabled = cfg.OTELEnabled
	traceCfg.OTLPEndpoint = cfg.OTELEndpoint
	traceCfg.SampleRate = cfg.OTELSampleRate
	tracerShutdown, err := tracing.InitTracer(ctx, traceCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Initialize Redis client.
	redisCfg := database.DefaultRedisConfig()
	redisCfg.Host = cfg.RedisHost
	redisCfg.Port = cfg.RedisPort
	redisCfg.Password = cfg.RedisPassword
	redisCfg.DB = cfg.RedisDB
	rdb, err := database.NewRedisClient(ctx, redisCfg)
	if err != nil {
		_ = tracerShutdown(context.Background())
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, rdb, serviceName); err != nil {
		logger.Warn("redis pool metrics not registered", slog.String("error", err.Error()))
	}
	database.SetSlowCommandLogging(100*time.Millisecond, logger)
	logger.Info("connected to Redis",
		slog.String("addr", redisCfg.Addr()),
		slog.Int("db", cfg.RedisDB),
	)

	// Kafka producer, only when brokers are configured.
	var (
		producer  *pkgkafka.Producer
		publisher event.Publisher
	)
	if len(cfg.KafkaBrokers) > 0 {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = producer
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	} else {
		logger.Info("kafka disabled, wishlist events will not be published")
	}

	// Storefront API transport.
	baseClient := httpclient.New(httpclient.DefaultConfig())
	catalogHTTP := httpclient.NewCircuitBreakerClient(baseClient,
		httpclient.DefaultCircuitBreakerConfig("storefront-api"), logger).
		WithFallback(catalog.CircuitOpenFallback)
	pageHTTP := httpclient.NewCircuitBreakerClient(baseClient,
		httpclient.DefaultCircuitBreakerConfig("contact-page"), logger)

	catalogClient := catalog.NewClient(catalog.Config{
		ShopDomain:  cfg.ShopDomain,
		APIVersion:  cfg.APIVersion,
		AccessToken: cfg.AccessToken,
		Endpoint:    cfg.Endpoint,
	}, catalogHTTP, logger)
	handleCache := cache.NewHandleCache(rdb, catalogClient, cfg.HandleCacheTTL, logger)
	scraper := content.NewFAQScraper(pageHTTP, cfg.ContactPageURL)

	// Build the dependency graph.
	eventProducer := event.NewProducer(publisher, logger)
	storefrontService := service.NewStorefrontService(catalogClient, handleCache, scraper, eventProducer, clock.Real{}, logger)

	hub := carousel.NewHub(carousel.DefaultNews(), carousel.Timings{
		Advance:       time.Duration(cfg.CarouselAdvanceMS) * time.Millisecond,
		PulseInterval: time.Duration(cfg.CarouselPulseIntervalMS) * time.Millisecond,
		PulseDuration: time.Duration(cfg.CarouselPulseDurationMS) * time.Millisecond,
	}, cfg.CarouselSessionLimit, clock.Real{}, logger)
	newsService := service.NewNewsService(hub)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.RegisterOptional("storefront_api", func(context.Context) error {
		if catalogHTTP.State() == gobreaker.StateOpen {
			return errors.New("circuit open")
		}
		return nil
	})
	if producer != nil {
		healthHandler.RegisterOptional("kafka", producer.Ping)
	}

	// HTTP router. The app context bounds the rate limiter's cleanup loop.
	appCtx, appCancel := context.WithCancel(context.Background())
	opts := handler.DefaultRouterOptions()
	opts.CORS.AllowedOrigins = cfg.CORSOrigins
	opts.SecureCookies = cfg.SecureCookies
	opts.RateLimitRPS = cfg.RateLimitRPS
	opts.RateLimitBurst = cfg.RateLimitBurst
	opts.CatalogMaxAge = cfg.CatalogMaxAge
	router := handler.NewRouter(appCtx, storefrontService, newsService, healthHandler, logger, opts)

	// WriteTimeout stays zero so the news stream is not cut off; the
	// router applies a per-request timeout to every other route.
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		rdb:            rdb,
		producer:       producer,
		hub:            hub,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
		cancel:         appCancel,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		_ = a.Shutdown()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ending the carousel sessions first lets open news streams return, so
	// the server can drain.
	a.hub.Close()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}
	a.cancel()

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
