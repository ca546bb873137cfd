package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/donaldgifford/comp-pricer/api/openapi"
	"github.com/donaldgifford/comp-pricer/internal/api/handlers"
	"github.com/donaldgifford/comp-pricer/internal/api/middleware"
	"github.com/donaldgifford/comp-pricer/internal/cache"
	"github.com/donaldgifford/comp-pricer/internal/config"
	"github.com/donaldgifford/comp-pricer/internal/ebay"
	"github.com/donaldgifford/comp-pricer/internal/engine"
	"github.com/donaldgifford/comp-pricer/internal/notify"
	"github.com/donaldgifford/comp-pricer/internal/sources"
	"github.com/donaldgifford/comp-pricer/internal/store"
	"github.com/donaldgifford/comp-pricer/pkg/match"
)

// app holds the wired service. Optional dependencies are nil when their
// config section is empty.
type app struct {
	cfg *config.Config
	log *slog.Logger

	store        *store.PostgresStore
	cacheBackend cache.Cache
	limiter      *ebay.RateLimiter
	quota        *ebay.QuotaClient

	pricer    *engine.Pricer
	repricer  *engine.Repricer
	scheduler *engine.Scheduler

	closers []func()
}

func newApp(ctx context.Context, cfg *config.Config, log *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}

	if cfg.Database.Enabled() {
		st, err := store.NewPostgresStore(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		a.store = st
		a.closers = append(a.closers, st.Close)
	}

	backend, err := newCacheBackend(cfg)
	if err != nil {
		a.close()
		return nil, err
	}
	a.cacheBackend = backend
	if rc, ok := backend.(*cache.RedisCache); ok {
		a.closers = append(a.closers, func() { _ = rc.Close() })
	}

	srcs := a.buildSources()
	settings, _ := cfg.Pricing.Settings()

	opts := []engine.PricerOption{
		engine.WithLogger(log),
		engine.WithMatcher(match.New()),
		engine.WithBaseSettings(settings),
		engine.WithMinSamples(cfg.Pricing.MinSamples),
		engine.WithSourceTimeout(cfg.Pricing.SourceTimeout),
	}
	if backend != nil {
		opts = append(opts, engine.WithCache(cache.NewDecisionCache(
			backend,
			cache.WithTTL(cfg.Cache.TTL),
			cache.WithLogger(log),
		)))
	}
	a.pricer = engine.NewPricer(srcs, opts...)

	if a.store != nil {
		a.repricer = engine.NewRepricer(
			a.store,
			a.pricer,
			newNotifier(cfg, log),
			engine.WithRepricerLogger(log),
			engine.WithBatchThreshold(cfg.Notifications.BatchThreshold),
			engine.WithStaggerOffset(cfg.Schedule.StaggerOffset),
		)
	}

	schedOpts := []engine.SchedulerOption{engine.WithSchedulerLogger(log)}
	if a.quota != nil {
		schedOpts = append(schedOpts, engine.WithQuotaSync(a.quota, a.limiter, cfg.Schedule.QuotaSyncInterval))
	}

	var st store.Store
	if a.store != nil {
		st = a.store
	}
	sched, err := engine.NewScheduler(a.repricer, st, cfg.Schedule.RepriceInterval, schedOpts...)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("creating scheduler: %w", err)
	}
	a.scheduler = sched

	log.Info("pricing engine ready",
		"sources", a.pricer.SourceNames(),
		"database", a.store != nil,
		"cache", cfg.Cache.Backend,
	)

	return a, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func newCacheBackend(cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		rc, err := cache.NewRedisCacheFromURL(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("creating redis cache: %w", err)
		}
		return rc, nil
	case config.CacheBackendNone:
		return nil, nil
	default:
		return cache.NewMemoryCache(), nil
	}
}

// buildSources creates one source per configured feed. eBay also sets the
// app's rate limiter and quota client.
func (a *app) buildSources() []sources.Source {
	cfg := a.cfg
	var srcs []sources.Source

	for _, f := range cfg.Sources.Retail {
		srcs = append(srcs, sources.NewRetailSource(
			f.Name, f.Endpoint,
			sources.WithTimeout(cfg.Sources.Timeout),
			sources.WithAPIKey(f.APIKey),
		))
	}

	if s := cfg.Sources.Sold; s != nil {
		srcs = append(srcs, sources.NewSoldSource(
			s.Name, s.Endpoint,
			sources.WithTimeout(cfg.Sources.Timeout),
			sources.WithAPIKey(s.APIKey),
		))
	}

	if cfg.Ebay.Enabled() {
		e := &cfg.Ebay
		tokens := ebay.NewOAuthTokenProvider(e.AppID, e.CertID, ebay.WithTokenURL(e.TokenURL))
		a.limiter = ebay.NewRateLimiter(e.RateLimit.PerSecond, e.RateLimit.Burst, e.RateLimit.DailyLimit)
		a.quota = ebay.NewQuotaClient(tokens, ebay.WithQuotaURL(e.AnalyticsURL))

		browse := ebay.NewBrowseClient(
			tokens,
			ebay.WithBrowseURL(e.BrowseURL),
			ebay.WithMarketplace(e.Marketplace),
			ebay.WithShipToPostalCode(e.ShipToZip),
			ebay.WithRateLimiter(a.limiter),
		)
		pager := ebay.NewPaginator(
			browse,
			ebay.WithPageSize(e.PageSize),
			ebay.WithMaxPages(e.MaxPages),
			ebay.WithTargetItems(e.TargetItems),
			ebay.WithPaginatorLogger(a.log),
		)
		srcs = append(srcs, sources.NewEbayActiveSource(
			pager,
			sources.WithCategoryID(e.CategoryID),
			sources.WithEbayLogger(a.log),
		))
	}

	return srcs
}

func newNotifier(cfg *config.Config, log *slog.Logger) notify.Notifier {
	if cfg.Notifications.Discord.Enabled {
		d := cfg.Notifications.Discord
		return notify.NewDiscordNotifier(d.WebhookURL, notify.WithUsername(d.Username))
	}
	return notify.NewLogNotifier(log)
}

// router builds the Echo server with every route the app's dependencies
// support.
func (a *app) router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(a.log))
	e.Use(middleware.Tracing(otel.GetTracerProvider(), otel.GetTextMapPropagator()))
	e.Use(middleware.RequestLog(a.log))
	e.Use(middleware.Metrics())

	var dbPinger, cachePinger handlers.Pinger
	if a.store != nil {
		dbPinger = a.store
	}
	if a.cacheBackend != nil {
		cachePinger = a.cacheBackend
	}
	health := handlers.NewHealthHandler(dbPinger, cachePinger)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("comp-pricer API", Version))
	a.registerRoutes(api)
	openapi.RegisterRoutes(e, api.OpenAPI())

	return e
}

func (a *app) registerRoutes(api huma.API) {
	handlers.RegisterPricingRoutes(api, handlers.NewPricingHandler(a.pricer, nil))

	var syncer handlers.QuotaSyncer
	if a.quota != nil {
		syncer = a.scheduler
	}
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(a.limiter, syncer))

	if a.store == nil {
		return
	}

	handlers.RegisterProductRoutes(api, handlers.NewProductsHandler(a.store, a.repricer))
	handlers.RegisterJobRoutes(api, handlers.NewJobsHandler(a.store, a.scheduler))
	handlers.RegisterTriggerRoutes(api, handlers.NewRepriceHandler(a.repricer))
}

func (a *app) httpServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port),
		Handler:      a.router(),
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}
}
