package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/donaldgifford/comp-pricer/internal/metrics"
	"github.com/donaldgifford/comp-pricer/internal/notify"
	"github.com/donaldgifford/comp-pricer/internal/store"
	"github.com/donaldgifford/comp-pricer/internal/telemetry"
	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

const (
	defaultBatchThreshold = 5
	repricePageSize       = 200
)

// RepriceSummary reports the outcome of one reprice cycle.
type RepriceSummary struct {
	Products int `json:"products"`
	Priced   int `json:"priced"`
	Errors   int `json:"errors"`
	Alerts   int `json:"alerts"`
}

// Repricer re-prices tracked products, persists each decision and alerts on
// products that can no longer compete.
type Repricer struct {
	store    store.Store
	pricer   *Pricer
	notifier notify.Notifier
	log      *slog.Logger

	batchThreshold int
	staggerOffset  time.Duration
}

// RepricerOption configures a Repricer.
type RepricerOption func(*Repricer)

// WithRepricerLogger sets a custom logger.
func WithRepricerLogger(l *slog.Logger) RepricerOption {
	return func(r *Repricer) {
		r.log = l
	}
}

// WithBatchThreshold sets the alert count at which alerts are sent as one
// batch instead of individually.
func WithBatchThreshold(n int) RepricerOption {
	return func(r *Repricer) {
		if n > 0 {
			r.batchThreshold = n
		}
	}
}

// WithStaggerOffset sets the delay between products to avoid source bursts.
func WithStaggerOffset(d time.Duration) RepricerOption {
	return func(r *Repricer) {
		r.staggerOffset = d
	}
}

// NewRepricer creates a Repricer with injected dependencies.
func NewRepricer(
	s store.Store,
	p *Pricer,
	n notify.Notifier,
	opts ...RepricerOption,
) *Repricer {
	r := &Repricer{
		store:          s,
		pricer:         p,
		notifier:       n,
		log:            slog.Default(),
		batchThreshold: defaultBatchThreshold,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunReprice prices every enabled product. Per-product failures are logged
// and counted; only a failure to list products aborts the cycle.
func (r *Repricer) RunReprice(ctx context.Context) (sum *RepriceSummary, err error) {
	ctx, span := telemetry.Tracer().Start(ctx, "repricer.RunReprice")
	defer func() {
		if sum != nil {
			span.SetAttributes(
				attribute.Int("reprice.products", sum.Products),
				attribute.Int("reprice.errors", sum.Errors),
				attribute.Int("reprice.alerts", sum.Alerts),
			)
		}
		telemetry.End(span, err)
	}()

	start := time.Now()
	defer func() {
		metrics.RepriceDuration.Observe(time.Since(start).Seconds())
	}()

	products, err := r.enabledProducts(ctx)
	if err != nil {
		return nil, err
	}

	sum = &RepriceSummary{Products: len(products)}
	var alerts []notify.AlertPayload

	for i := range products {
		if ctx.Err() != nil {
			return sum, ctx.Err()
		}

		p := &products[i]
		rec, perr := r.reprice(ctx, p)
		if perr != nil {
			r.log.Error("reprice failed", "product", p.ID, "error", perr)
			sum.Errors++
		} else {
			sum.Priced++
			if a := notify.NewAlertPayload(p, &rec.Decision); a != nil {
				alerts = append(alerts, *a)
			}
		}

		if i < len(products)-1 && r.staggerOffset > 0 {
			select {
			case <-ctx.Done():
				return sum, ctx.Err()
			case <-time.After(r.staggerOffset):
			}
		}
	}

	sum.Alerts = r.sendAlerts(ctx, alerts)
	metrics.LastRepriceTimestamp.SetToCurrentTime()

	r.log.Info("reprice cycle complete",
		"products", sum.Products,
		"priced", sum.Priced,
		"errors", sum.Errors,
		"alerts", sum.Alerts,
		"duration", time.Since(start),
	)
	return sum, nil
}

// RepriceProduct prices a single product by ID and persists the decision.
func (r *Repricer) RepriceProduct(ctx context.Context, id string) (*domain.DecisionRecord, error) {
	p, err := r.store.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}

	rec, err := r.reprice(ctx, p)
	if err != nil {
		return nil, err
	}

	if a := notify.NewAlertPayload(p, &rec.Decision); a != nil {
		r.sendAlerts(ctx, []notify.AlertPayload{*a})
	}
	return rec, nil
}

func (r *Repricer) reprice(ctx context.Context, p *domain.TrackedProduct) (*domain.DecisionRecord, error) {
	var overrides *domain.SettingsOverrides
	if !p.Overrides.IsZero() {
		overrides = &p.Overrides
	}

	d := r.pricer.GetDeliveredPricing(ctx, PricingRequest{
		Brand:       p.Brand,
		ProductName: p.ProductName,
		Condition:   p.Condition,
		Overrides:   overrides,
		Refresh:     true,
	})

	rec := store.NewDecisionRecord(&p.ID, p.Brand, p.ProductName, d)
	if err := r.store.InsertDecision(ctx, rec); err != nil {
		metrics.RepriceErrorsTotal.Inc()
		return nil, fmt.Errorf("saving decision for %s: %w", p.ID, err)
	}

	if err := r.store.MarkProductPriced(ctx, p.ID, d.ComputedAt); err != nil {
		metrics.RepriceErrorsTotal.Inc()
		return nil, fmt.Errorf("marking %s priced: %w", p.ID, err)
	}

	metrics.RepriceProductsTotal.Inc()
	return rec, nil
}

func (r *Repricer) enabledProducts(ctx context.Context) ([]domain.TrackedProduct, error) {
	var all []domain.TrackedProduct
	q := &store.ProductQuery{EnabledOnly: true, Limit: repricePageSize}

	for {
		page, total, err := r.store.ListProducts(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("listing products: %w", err)
		}
		all = append(all, page...)
		if len(page) < q.Limit || len(all) >= total {
			return all, nil
		}
		q.Offset += len(page)
	}
}

// sendAlerts delivers alerts and returns how many were sent.
func (r *Repricer) sendAlerts(ctx context.Context, alerts []notify.AlertPayload) int {
	if len(alerts) == 0 {
		return 0
	}

	if len(alerts) >= r.batchThreshold {
		if err := r.notifier.SendBatchAlert(ctx, alerts); err != nil {
			r.log.Error("sending batch alert failed", "count", len(alerts), "error", err)
			metrics.NotificationFailuresTotal.Inc()
			return 0
		}
		metrics.LowPriceAlertsTotal.Add(float64(len(alerts)))
		return len(alerts)
	}

	var sent int
	for i := range alerts {
		if err := r.notifier.SendAlert(ctx, &alerts[i]); err != nil {
			r.log.Error("sending alert failed", "product", alerts[i].ProductID, "error", err)
			metrics.NotificationFailuresTotal.Inc()
			continue
		}
		sent++
	}
	metrics.LowPriceAlertsTotal.Add(float64(sent))
	return sent
}
