// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/comp-pricer/pkg/logger"
	"github.com/donaldgifford/comp-pricer/pkg/pricing"
	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

// Cache backends.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
	CacheBackendNone   = "none"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Redis         RedisConfig         `yaml:"redis"`
	Ebay          EbayConfig          `yaml:"ebay"`
	Sources       SourcesConfig       `yaml:"sources"`
	Pricing       PricingConfig       `yaml:"pricing"`
	Cache         CacheConfig         `yaml:"cache"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Logging       LoggingConfig       `yaml:"logging"`
	Tracing       TracingConfig       `yaml:"tracing"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig defines PostgreSQL connection settings. The database is
// optional: without a host the service prices on demand only.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// Enabled reports whether a database is configured.
func (d *DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// DSN returns a PostgreSQL connection string. pgxpool reads pool_max_conns
// from the DSN, so the pool size rides along when set.
func (d *DatabaseConfig) DSN() string {
	dsn := fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
	if d.PoolSize > 0 {
		dsn += fmt.Sprintf(" pool_max_conns=%d", d.PoolSize)
	}
	return dsn
}

// RedisConfig defines the Redis connection used by the decision cache.
type RedisConfig struct {
	URL string `yaml:"url"` // redis://[:password@]host:port/db
}

// EbayConfig defines eBay API settings. Active-listing comps are fetched
// only when app_id and cert_id are both set.
type EbayConfig struct {
	AppID        string          `yaml:"app_id"`
	CertID       string          `yaml:"cert_id"`
	TokenURL     string          `yaml:"token_url"`
	BrowseURL    string          `yaml:"browse_url"`
	AnalyticsURL string          `yaml:"analytics_url"`
	Marketplace  string          `yaml:"marketplace"`
	ShipToZip    string          `yaml:"ship_to_zip"`
	CategoryID   string          `yaml:"category_id"`
	PageSize     int             `yaml:"page_size"`
	MaxPages     int             `yaml:"max_pages"`
	TargetItems  int             `yaml:"target_items"`
	RateLimit    RateLimitConfig `yaml:"rate_limit"`
}

// Enabled reports whether eBay credentials are configured.
func (e *EbayConfig) Enabled() bool {
	return e.AppID != "" && e.CertID != ""
}

// RateLimitConfig defines eBay API rate limiting settings.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// SourcesConfig defines the HTTP comp feeds.
type SourcesConfig struct {
	Timeout time.Duration `yaml:"timeout"`
	Retail  []FeedConfig  `yaml:"retail"`
	Sold    *FeedConfig   `yaml:"sold"`
}

// FeedConfig is one HTTP comp feed. Retail feeds are named after their
// retailer ("amazon", "walmart").
type FeedConfig struct {
	Name     string `yaml:"name"`
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
}

// PricingConfig defines the engine's defaults. Defaults holds partial
// overrides applied on top of the built-in settings.
type PricingConfig struct {
	Defaults      domain.SettingsOverrides `yaml:"defaults"`
	MinSamples    int                      `yaml:"min_samples"`
	SourceTimeout time.Duration            `yaml:"source_timeout"`
}

// Settings returns the resolved base settings and any clamp warnings.
func (p *PricingConfig) Settings() (domain.DeliveredPricingSettings, []string) {
	return pricing.Resolve(pricing.DefaultSettings(), &p.Defaults)
}

// CacheConfig defines decision caching.
type CacheConfig struct {
	Backend string        `yaml:"backend"` // memory, redis, none
	TTL     time.Duration `yaml:"ttl"`
}

// ScheduleConfig defines cron intervals. A zero reprice interval after
// defaults can only come from an explicit negative value, which disables
// scheduled repricing.
type ScheduleConfig struct {
	RepriceInterval   time.Duration `yaml:"reprice_interval"`
	QuotaSyncInterval time.Duration `yaml:"quota_sync_interval"`
	StaggerOffset     time.Duration `yaml:"stagger_offset"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord        DiscordConfig `yaml:"discord"`
	BatchThreshold int           `yaml:"batch_threshold"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
	Username   string `yaml:"username"` // overrides the webhook's display name
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// TracingConfig defines OTLP trace export. Tracing is off unless an
// endpoint is set.
type TracingConfig struct {
	Endpoint    string  `yaml:"endpoint"` // host:port of an OTLP/gRPC collector
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
	ServiceName string  `yaml:"service_name"`
}

// Enabled reports whether traces are exported.
func (t *TracingConfig) Enabled() bool {
	return t.Endpoint != ""
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config bytes, expands environment variables, applies
// defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a config with every default applied and no external
// dependencies configured.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyEbayDefaults(&cfg.Ebay)
	applySourcesDefaults(&cfg.Sources)
	applyPricingDefaults(&cfg.Pricing)
	applyCacheDefaults(&cfg.Cache, &cfg.Redis)
	applyScheduleDefaults(&cfg.Schedule)
	applyNotificationsDefaults(&cfg.Notifications)
	applyLoggingDefaults(&cfg.Logging)
	applyTracingDefaults(&cfg.Tracing)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 60 * time.Second
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = 30 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyEbayDefaults(e *EbayConfig) {
	if e.TokenURL == "" {
		e.TokenURL = "https://api.ebay.com/identity/v1/oauth2/token"
	}
	if e.BrowseURL == "" {
		e.BrowseURL = "https://api.ebay.com/buy/browse/v1/item_summary/search"
	}
	if e.AnalyticsURL == "" {
		e.AnalyticsURL = "https://api.ebay.com/developer/analytics/v1_beta/rate_limit/"
	}
	if e.Marketplace == "" {
		e.Marketplace = "EBAY_US"
	}
	if e.PageSize == 0 {
		e.PageSize = 50
	}
	if e.MaxPages == 0 {
		e.MaxPages = 2
	}
	applyRateLimitDefaults(&e.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 5.0
	}
	if r.Burst == 0 {
		r.Burst = 10
	}
	if r.DailyLimit == 0 {
		r.DailyLimit = 5000
	}
}

func applySourcesDefaults(s *SourcesConfig) {
	if s.Timeout == 0 {
		s.Timeout = 10 * time.Second
	}
	if s.Sold != nil && s.Sold.Name == "" {
		s.Sold.Name = "sold"
	}
}

func applyPricingDefaults(p *PricingConfig) {
	if p.MinSamples == 0 {
		p.MinSamples = 3
	}
	if p.SourceTimeout == 0 {
		p.SourceTimeout = 15 * time.Second
	}
}

func applyCacheDefaults(c *CacheConfig, r *RedisConfig) {
	if c.Backend == "" {
		c.Backend = CacheBackendMemory
		if r.URL != "" {
			c.Backend = CacheBackendRedis
		}
	}
	if c.TTL == 0 {
		c.TTL = 48 * time.Hour
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.RepriceInterval == 0 {
		s.RepriceInterval = 6 * time.Hour
	}
	if s.QuotaSyncInterval == 0 {
		s.QuotaSyncInterval = time.Hour
	}
	if s.StaggerOffset == 0 {
		s.StaggerOffset = 250 * time.Millisecond
	}
}

func applyNotificationsDefaults(n *NotificationsConfig) {
	if n.BatchThreshold == 0 {
		n.BatchThreshold = 5
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = logger.FormatText
	}
}

func applyTracingDefaults(t *TracingConfig) {
	if t.SampleRatio == 0 {
		t.SampleRatio = 1
	}
	if t.ServiceName == "" {
		t.ServiceName = "comp-pricer"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535 (got %d)", cfg.Server.Port))
	}

	if cfg.Database.Enabled() {
		if cfg.Database.Name == "" {
			errs = append(errs, errors.New("database.name is required when database.host is set"))
		}
		if cfg.Database.User == "" {
			errs = append(errs, errors.New("database.user is required when database.host is set"))
		}
	}

	if (cfg.Ebay.AppID == "") != (cfg.Ebay.CertID == "") {
		errs = append(errs, errors.New("ebay.app_id and ebay.cert_id must be set together"))
	}

	errs = append(errs, validateSources(&cfg.Sources)...)

	_, warnings := cfg.Pricing.Settings()
	for _, w := range warnings {
		errs = append(errs, fmt.Errorf("pricing.defaults: invalid value (%s)", w))
	}
	if cfg.Pricing.MinSamples < 1 {
		errs = append(errs, errors.New("pricing.min_samples must be at least 1"))
	}

	switch cfg.Cache.Backend {
	case CacheBackendMemory, CacheBackendNone:
	case CacheBackendRedis:
		if cfg.Redis.URL == "" {
			errs = append(errs, errors.New("redis.url is required when cache.backend is redis"))
		}
	default:
		errs = append(errs, fmt.Errorf(
			"cache.backend must be one of: memory, redis, none (got %q)", cfg.Cache.Backend,
		))
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(errs, errors.New("notifications.discord.webhook_url is required when discord is enabled"))
	}

	if !logger.ValidLevel(cfg.Logging.Level) {
		errs = append(errs, fmt.Errorf(
			"logging.level must be one of: debug, info, warn, error (got %q)", cfg.Logging.Level,
		))
	}
	if !logger.ValidFormat(cfg.Logging.Format) {
		errs = append(errs, fmt.Errorf(
			"logging.format must be one of: text, json (got %q)", cfg.Logging.Format,
		))
	}

	if r := cfg.Tracing.SampleRatio; r < 0 || r > 1 {
		errs = append(errs, fmt.Errorf("tracing.sample_ratio must be between 0 and 1 (got %g)", r))
	}

	return errors.Join(errs...)
}

func validateSources(s *SourcesConfig) []error {
	var errs []error

	seen := map[string]struct{}{}
	for i, f := range s.Retail {
		if f.Name == "" {
			errs = append(errs, fmt.Errorf("sources.retail[%d].name is required", i))
		}
		if f.Endpoint == "" {
			errs = append(errs, fmt.Errorf("sources.retail[%d].endpoint is required", i))
		}
		if _, dup := seen[f.Name]; dup && f.Name != "" {
			errs = append(errs, fmt.Errorf("sources.retail[%d].name %q is duplicated", i, f.Name))
		}
		seen[f.Name] = struct{}{}
	}

	if s.Sold != nil && s.Sold.Endpoint == "" {
		errs = append(errs, errors.New("sources.sold.endpoint is required when sources.sold is set"))
	}

	return errs
}
