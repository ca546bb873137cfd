// Package engine orchestrates delivered pricing decisions, scheduled
// repricing of tracked products, and the cron jobs that drive them.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/comp-pricer/internal/cache"
	"github.com/donaldgifford/comp-pricer/internal/metrics"
	"github.com/donaldgifford/comp-pricer/internal/sources"
	"github.com/donaldgifford/comp-pricer/internal/telemetry"
	"github.com/donaldgifford/comp-pricer/pkg/extract"
	"github.com/donaldgifford/comp-pricer/pkg/match"
	"github.com/donaldgifford/comp-pricer/pkg/pricing"
	"github.com/donaldgifford/comp-pricer/pkg/robust"
	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

// Warnings emitted by the pricer in addition to those from pkg/pricing.
const (
	WarnSourceUnavailablePrefix   = "sourceUnavailable:"
	WarnRetailNoPricePrefix       = "retailNoPrice:"
	WarnRetailPackMismatchPrefix  = "retailPackMismatch:"
	WarnRetailRejectedPrefix      = "retailRejected:"
	WarnSoldUnusablePrefix        = "soldHistoryUnusable:"
	WarnFloorOutlierPrefix        = "floorOutlier:"
	WarnWeakCompsOnly             = "weakCompsOnly"
	WarnNoUsableComps             = "noUsableComps"
	WarnCompetitorsMostlyFreeShip = "competitorsMostlyFreeShipping"
)

// Shipping estimate sources recorded on a decision.
const (
	ShippingSourceSoldAvg      = "sold-avg"
	ShippingSourceActiveMedian = "active-median"
	ShippingSourceSettings     = "settings"
)

const (
	defaultSourceTimeout = 15 * time.Second
	defaultMinSamples    = 3
	mostlyFreeShipRate   = 0.5
)

var errNilObservation = errors.New("source returned no observation")

// PricingRequest identifies the product to price.
type PricingRequest struct {
	Brand       string
	ProductName string
	Condition   string
	Overrides   *domain.SettingsOverrides

	// Refresh skips the cache read. The result is still written through.
	Refresh bool
}

// Pricer produces delivered pricing decisions from live comp sources. It
// holds no per-request state and is safe for concurrent use.
type Pricer struct {
	sources       []sources.Source
	cache         *cache.DecisionCache
	matcher       *match.Matcher
	log           *slog.Logger
	tracer        trace.Tracer
	sourceTimeout time.Duration
	base          domain.DeliveredPricingSettings
	minSamples    int
	now           func() time.Time
}

// PricerOption configures a Pricer.
type PricerOption func(*Pricer)

// WithCache enables read-through/write-through decision caching.
func WithCache(c *cache.DecisionCache) PricerOption {
	return func(p *Pricer) {
		p.cache = c
	}
}

// WithMatcher sets a custom comp matcher.
func WithMatcher(m *match.Matcher) PricerOption {
	return func(p *Pricer) {
		p.matcher = m
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) PricerOption {
	return func(p *Pricer) {
		p.log = l
	}
}

// WithTracer sets the tracer for pricing and source fetch spans.
func WithTracer(t trace.Tracer) PricerOption {
	return func(p *Pricer) {
		p.tracer = t
	}
}

// WithSourceTimeout bounds each source fetch.
func WithSourceTimeout(d time.Duration) PricerOption {
	return func(p *Pricer) {
		if d > 0 {
			p.sourceTimeout = d
		}
	}
}

// WithBaseSettings sets the settings request overrides are applied to.
func WithBaseSettings(s domain.DeliveredPricingSettings) PricerOption {
	return func(p *Pricer) {
		p.base = s
	}
}

// WithMinSamples sets how many matches a source needs before ambiguous comps
// stop being used.
func WithMinSamples(n int) PricerOption {
	return func(p *Pricer) {
		if n > 0 {
			p.minSamples = n
		}
	}
}

// WithNowFunc overrides the clock used to stamp decisions.
func WithNowFunc(f func() time.Time) PricerOption {
	return func(p *Pricer) {
		p.now = f
	}
}

// NewPricer creates a Pricer over the given sources.
func NewPricer(srcs []sources.Source, opts ...PricerOption) *Pricer {
	p := &Pricer{
		sources:       srcs,
		matcher:       match.New(),
		log:           slog.Default(),
		tracer:        telemetry.Tracer(),
		sourceTimeout: defaultSourceTimeout,
		base:          pricing.DefaultSettings(),
		minSamples:    defaultMinSamples,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// BaseSettings returns the settings overrides are applied to.
func (p *Pricer) BaseSettings() domain.DeliveredPricingSettings {
	return p.base
}

// SourceNames returns the configured source names in fetch order.
func (p *Pricer) SourceNames() []string {
	names := make([]string, 0, len(p.sources))
	for _, s := range p.sources {
		names = append(names, s.Name())
	}
	return names
}

// fetchResult is the settled outcome of one source fetch.
type fetchResult struct {
	name string
	obs  domain.Observation
	err  error
}

// retailQuote is a usable retail price.
type retailQuote struct {
	name  string
	cents int64
}

// evidence accumulates usable comps across all settled sources.
type evidence struct {
	retail  []retailQuote
	active  []domain.PriceSample
	sold    []domain.PriceSample
	soldOK  bool
	soldAvg int64

	amazonCents  *int64
	walmartCents *int64
}

// GetDeliveredPricing returns a decision for req. It never fails: missing
// data, failing sources and invalid settings degrade the result through its
// warnings and confidence instead.
func (p *Pricer) GetDeliveredPricing(ctx context.Context, req PricingRequest) *domain.DeliveredPricingDecision {
	settings, clampWarnings := pricing.Resolve(p.base, req.Overrides)
	id := extract.BuildIdentity(req.Brand, req.ProductName, req.Condition)
	sig := extract.Signature(req.Brand, req.ProductName)
	key := cache.DecisionKey(sig, id.Condition, pricing.Fingerprint(settings))

	ctx, span := p.tracer.Start(ctx, "pricer.GetDeliveredPricing", trace.WithAttributes(
		attribute.String("product.signature", sig),
		attribute.Bool("pricing.refresh", req.Refresh),
	))
	defer span.End()

	if p.cache != nil && !req.Refresh {
		if cached, ok := p.cache.Get(ctx, key); ok {
			p.log.Debug("decision cache hit", "signature", sig)
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return cached
		}
	}

	start := time.Now()
	d := &domain.DeliveredPricingDecision{
		Identity:   id,
		Signature:  sig,
		ComputedAt: p.now().UTC(),
	}
	for _, w := range clampWarnings {
		d.AddWarning(w)
	}

	results := p.fetchAll(ctx, sources.Query{
		Brand:       req.Brand,
		ProductName: req.ProductName,
		Identity:    id,
	})

	var failures int
	ev := &evidence{}
	for _, r := range results {
		if r.err != nil {
			failures++
			d.AddWarning(WarnSourceUnavailablePrefix + r.name)
			continue
		}
		p.collect(d, ev, id, r.obs)
	}

	soldStats := robust.Compute(ev.sold)
	activeStats := robust.Compute(ev.active)
	p.recordEvidence(d, ev, soldStats, activeStats)

	target := p.merge(d, ev, settings, soldStats, activeStats)
	for range failures {
		d.MatchConfidence = d.MatchConfidence.Downgrade()
	}

	settings = p.applyShipping(d, ev, settings, activeStats)

	split := pricing.Decide(target, settings)
	d.TargetDeliveredCents = target
	d.FinalItemCents = split.FinalItemCents
	d.FinalShipCents = split.FinalShipCents
	d.CanCompete = split.CanCompete
	d.FreeShipApplied = split.FreeShipApplied
	d.SubsidyCents = split.SubsidyCents
	d.SkipListing = split.SkipListing
	for _, w := range split.Warnings {
		d.AddWarning(w)
	}
	d.Settings = settings
	if d.Warnings == nil {
		d.Warnings = []string{}
	}

	span.SetAttributes(
		attribute.String("pricing.comps_source", string(d.CompsSource)),
		attribute.String("pricing.confidence", string(d.MatchConfidence)),
		attribute.Int64("pricing.target_cents", d.TargetDeliveredCents),
		attribute.Bool("pricing.can_compete", d.CanCompete),
	)
	metrics.DecisionDuration.Observe(time.Since(start).Seconds())
	metrics.DecisionsTotal.WithLabelValues(string(d.CompsSource), string(d.MatchConfidence)).Inc()
	if !d.CanCompete {
		metrics.CannotCompeteTotal.Inc()
	}
	if target > 0 {
		metrics.TargetDeliveredDollars.Observe(float64(target) / 100)
	}

	p.log.Info("pricing decision",
		"signature", sig,
		"comps_source", d.CompsSource,
		"confidence", d.MatchConfidence,
		"target_cents", d.TargetDeliveredCents,
		"can_compete", d.CanCompete,
		"warnings", len(d.Warnings),
	)

	// A failed source only degrades this request; the next one retries it.
	if p.cache != nil && failures == 0 {
		p.cache.Put(ctx, key, d)
	}
	return d
}

// fetchAll queries every source in parallel and waits for all of them to
// settle. Goroutines never return an error, so one failure cannot cancel
// the others. Results keep source order.
func (p *Pricer) fetchAll(ctx context.Context, q sources.Query) []fetchResult {
	results := make([]fetchResult, len(p.sources))

	var g errgroup.Group
	for i, src := range p.sources {
		g.Go(func() error {
			name := src.Name()
			fctx, cancel := context.WithTimeout(ctx, p.sourceTimeout)
			defer cancel()
			fctx, span := p.tracer.Start(fctx, "source.Fetch",
				trace.WithAttributes(attribute.String("source.name", name)))

			start := time.Now()
			obs, err := src.Fetch(fctx, q)
			metrics.SourceFetchDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
			if err == nil && obs == nil {
				err = errNilObservation
			}
			telemetry.End(span, err)
			if err != nil {
				metrics.SourceFailuresTotal.WithLabelValues(name).Inc()
				p.log.Warn("comp source unavailable", "source", name, "error", err)
			}
			results[i] = fetchResult{name: name, obs: obs, err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// collect classifies one observation and adds its usable comps to ev.
func (p *Pricer) collect(
	d *domain.DeliveredPricingDecision,
	ev *evidence,
	id domain.CanonicalIdentity,
	obs domain.Observation,
) {
	switch o := obs.(type) {
	case *domain.RetailPrice:
		p.collectRetail(d, ev, id, o)
	case *domain.ActiveListingSet:
		results := p.matcher.ClassifyAll(id, o.Candidates)
		recordVerdicts(domain.SourceKindActive, results)
		for _, r := range match.Accepted(results, p.minSamples) {
			ev.active = append(ev.active, domain.PriceSample{
				ItemCents: r.Candidate.ItemCents,
				ShipCents: r.Candidate.ShipCents,
			})
		}
	case *domain.SoldHistorySet:
		p.collectSold(d, ev, id, o)
	default:
		p.log.Warn("ignoring unknown observation", "source", obs.SourceName())
	}
}

func (p *Pricer) collectRetail(
	d *domain.DeliveredPricingDecision,
	ev *evidence,
	id domain.CanonicalIdentity,
	r *domain.RetailPrice,
) {
	name := r.Retailer
	if r.PriceCents == nil || *r.PriceCents <= 0 {
		d.AddWarning(WarnRetailNoPricePrefix + name)
		return
	}

	pack := max(r.PackQuantity, 1)
	if pack != id.PackCount {
		d.AddWarning(WarnRetailPackMismatchPrefix + name)
		return
	}

	if r.Title != "" {
		res := p.matcher.Classify(id, domain.CompCandidate{
			ID:        name,
			Title:     r.Title,
			ItemCents: *r.PriceCents,
			URL:       r.URL,
		})
		recordVerdicts(domain.SourceKindRetail, []domain.MatchResult{res})
		if res.Verdict == domain.VerdictReject {
			d.AddWarning(WarnRetailRejectedPrefix + name)
			return
		}
	}

	cents := *r.PriceCents
	ev.retail = append(ev.retail, retailQuote{name: name, cents: cents})
	switch strings.ToLower(name) {
	case string(domain.CompsSourceAmazon):
		ev.amazonCents = lowest(ev.amazonCents, cents)
	case string(domain.CompsSourceWalmart):
		ev.walmartCents = lowest(ev.walmartCents, cents)
	}
}

// collectSold classifies titled samples and accepts untitled ones as-is,
// since the history query is already scoped to the product.
func (p *Pricer) collectSold(
	d *domain.DeliveredPricingDecision,
	ev *evidence,
	id domain.CanonicalIdentity,
	s *domain.SoldHistorySet,
) {
	if !s.OK {
		d.AddWarning(WarnSoldUnusablePrefix + s.Source)
		return
	}

	var titled []domain.CompCandidate
	var samples []domain.PriceSample
	for i := range s.Samples {
		smp := &s.Samples[i]
		if smp.Title == "" {
			samples = append(samples, soldSample(smp))
			continue
		}
		titled = append(titled, domain.CompCandidate{
			ID:        s.Source,
			Title:     smp.Title,
			Condition: smp.Condition,
			ItemCents: smp.PriceCents,
			ShipCents: soldSample(smp).ShipCents,
		})
	}

	if len(titled) > 0 {
		results := p.matcher.ClassifyAll(id, titled)
		recordVerdicts(domain.SourceKindSold, results)
		for _, r := range match.Accepted(results, p.minSamples) {
			samples = append(samples, domain.PriceSample{
				ItemCents: r.Candidate.ItemCents,
				ShipCents: r.Candidate.ShipCents,
			})
		}
	}

	if len(samples) == 0 {
		return
	}
	ev.sold = append(ev.sold, samples...)
	if !ev.soldOK || s.AvgShippingCents > ev.soldAvg {
		ev.soldAvg = s.AvgShippingCents
	}
	ev.soldOK = true
}

// soldSample keeps the feed's delivered total authoritative.
func soldSample(s *domain.SoldSample) domain.PriceSample {
	ship := s.ShippingCents
	if s.DeliveredCents > s.PriceCents {
		ship = s.DeliveredCents - s.PriceCents
	}
	return domain.PriceSample{ItemCents: s.PriceCents, ShipCents: ship}
}

func (*Pricer) recordEvidence(
	d *domain.DeliveredPricingDecision,
	ev *evidence,
	soldStats, activeStats domain.RobustStats,
) {
	d.AmazonPriceCents = ev.amazonCents
	d.WalmartPriceCents = ev.walmartCents

	d.SoldCount = soldStats.Count
	d.SoldStrong = robust.IsSoldStrong(soldStats)
	if !soldStats.IsEmpty() {
		d.SoldMedianDeliveredCents = ptr(soldStats.P50)
	}

	d.ActiveCount = activeStats.Count
	if !activeStats.IsEmpty() {
		d.ActiveFloorDeliveredCents = ptr(activeStats.Min)
		d.ActiveMedianDeliveredCents = ptr(activeStats.P50)
	}

	d.SellThrough = robust.SellThrough(soldStats.Count, activeStats.Count)
}

// merge walks the evidence ladder and returns the target delivered price.
// It sets the comps source and confidence on d.
func (*Pricer) merge(
	d *domain.DeliveredPricingDecision,
	ev *evidence,
	s domain.DeliveredPricingSettings,
	soldStats, activeStats domain.RobustStats,
) int64 {
	switch {
	case robust.IsSoldStrong(soldStats):
		d.CompsSource = domain.CompsSourceSold
		d.MatchConfidence = domain.ConfidenceHigh
		if robust.IsFloorOutlier(soldStats) {
			d.MatchConfidence = domain.ConfidenceMedium
			d.AddWarning(WarnFloorOutlierPrefix + string(domain.CompsSourceSold))
		}
		return soldPercentile(soldStats, s.Mode)

	case robust.IsActiveStrong(activeStats):
		d.CompsSource = domain.CompsSourceActive
		d.MatchConfidence = domain.ConfidenceMedium
		if robust.IsFloorOutlier(activeStats) {
			d.MatchConfidence = domain.ConfidenceLow
			d.AddWarning(WarnFloorOutlierPrefix + string(domain.CompsSourceActive))
		}
		return undercut(activePercentile(activeStats, s.Mode), s.UndercutCents)

	case len(ev.retail) > 0:
		best := ev.retail[0]
		for _, q := range ev.retail[1:] {
			if q.cents < best.cents {
				best = q
			}
		}
		d.CompsSource = retailCompsSource(best.name)
		d.MatchConfidence = domain.ConfidenceMedium
		return best.cents

	case !soldStats.IsEmpty():
		d.CompsSource = domain.CompsSourceSold
		d.MatchConfidence = domain.ConfidenceLow
		d.AddWarning(WarnWeakCompsOnly)
		return soldStats.P50

	case !activeStats.IsEmpty():
		d.CompsSource = domain.CompsSourceActive
		d.MatchConfidence = domain.ConfidenceLow
		d.AddWarning(WarnWeakCompsOnly)
		return undercut(activeStats.P35, s.UndercutCents)

	default:
		d.CompsSource = domain.CompsSourceNone
		d.MatchConfidence = domain.ConfidenceLow
		d.AddWarning(WarnNoUsableComps)
		return 0
	}
}

// applyShipping picks the shipping estimate the split uses and returns the
// effective settings.
func (*Pricer) applyShipping(
	d *domain.DeliveredPricingDecision,
	ev *evidence,
	s domain.DeliveredPricingSettings,
	activeStats domain.RobustStats,
) domain.DeliveredPricingSettings {
	d.ShippingEstimateSource = ShippingSourceSettings

	if !activeStats.IsEmpty() && activeStats.FreeShippingRate >= mostlyFreeShipRate {
		d.AddWarning(WarnCompetitorsMostlyFreeShip)
	}

	if s.UseSmartShipping {
		switch {
		case ev.soldOK && ev.soldAvg > 0:
			s.ShippingEstimateCents = ev.soldAvg
			d.ShippingEstimateSource = ShippingSourceSoldAvg
		default:
			if med, ok := robust.MedianNonZeroShipping(ev.active); ok {
				s.ShippingEstimateCents = med
				d.ShippingEstimateSource = ShippingSourceActiveMedian
			}
		}
	}

	d.ShippingEstimateCents = s.ShippingEstimateCents
	return s
}

func soldPercentile(s domain.RobustStats, mode domain.PricingMode) int64 {
	switch mode {
	case domain.ModeFastSale:
		return s.P35
	case domain.ModeMaxMargin:
		return s.P65
	default:
		return s.P50
	}
}

func activePercentile(s domain.RobustStats, mode domain.PricingMode) int64 {
	switch mode {
	case domain.ModeFastSale:
		return s.P20
	case domain.ModeMaxMargin:
		return s.P50
	default:
		return s.P35
	}
}

func undercut(cents, by int64) int64 {
	return max(cents-by, 0)
}

func retailCompsSource(name string) domain.CompsSource {
	switch strings.ToLower(name) {
	case string(domain.CompsSourceAmazon):
		return domain.CompsSourceAmazon
	case string(domain.CompsSourceWalmart):
		return domain.CompsSourceWalmart
	default:
		return domain.CompsSourceRetail
	}
}

func recordVerdicts(kind domain.SourceKind, results []domain.MatchResult) {
	for v, n := range match.Count(results) {
		metrics.CompVerdictsTotal.WithLabelValues(string(kind), string(v)).Add(float64(n))
	}
}

func lowest(cur *int64, v int64) *int64 {
	if cur == nil || v < *cur {
		return ptr(v)
	}
	return cur
}

func ptr[T any](v T) *T {
	return &v
}
