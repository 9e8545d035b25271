package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/utafrali/storefront/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort       int      `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`
	CORSOrigins    []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	SecureCookies  bool     `env:"SECURE_COOKIES" envDefault:"true"`
	RateLimitRPS   float64  `env:"RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int      `env:"RATE_LIMIT_BURST" envDefault:"20"`
	CatalogMaxAge  int      `env:"CATALOG_CACHE_MAX_AGE" envDefault:"60"`

	// Storefront API
	ShopDomain  string `env:"SHOP_DOMAIN" envDefault:""`
	APIVersion  string `env:"STOREFRONT_API_VERSION" envDefault:"2024-10"`
	AccessToken string `env:"STOREFRONT_ACCESS_TOKEN" envDefault:""`
	Endpoint    string `env:"STOREFRONT_ENDPOINT" envDefault:""`

	// Public page scraped for FAQs when the shop defines none. Empty disables it.
	ContactPageURL string `env:"CONTACT_PAGE_URL" envDefault:""`

	// Redis
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	HandleCacheTTL time.Duration `env:"HANDLE_CACHE_TTL" envDefault:"5m"`

	// Kafka. Leave KAFKA_BROKERS empty to run without wishlist events.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`

	// News carousel
	CarouselAdvanceMS       int `env:"CAROUSEL_ADVANCE_MS" envDefault:"5000"`
	CarouselPulseIntervalMS int `env:"CAROUSEL_PULSE_INTERVAL_MS" envDefault:"4000"`
	CarouselPulseDurationMS int `env:"CAROUSEL_PULSE_DURATION_MS" envDefault:"1000"`
	CarouselSessionLimit    int `env:"CAROUSEL_SESSION_LIMIT" envDefault:"1000"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsDevelopment reports whether the service runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.RedisPort < 1 || c.RedisPort > 65535 {
		return fmt.Errorf("invalid Redis port: %d", c.RedisPort)
	}
	if c.ShopDomain == "" && c.Endpoint == "" && !c.IsDevelopment() {
		return fmt.Errorf("SHOP_DOMAIN is required outside development")
	}
	if c.CarouselAdvanceMS <= 0 || c.CarouselPulseIntervalMS <= 0 || c.CarouselPulseDurationMS <= 0 {
		return fmt.Errorf("carousel timings must be positive")
	}
	if c.CarouselSessionLimit < 0 {
		return fmt.Errorf("CAROUSEL_SESSION_LIMIT must not be negative")
	}
	if c.HandleCacheTTL <= 0 {
		return fmt.Errorf("HANDLE_CACHE_TTL must be positive")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %v", c.OTELSampleRate)
	}
	return nil
}
