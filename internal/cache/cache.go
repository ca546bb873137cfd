// Package cache provides the byte-level get/set/TTL abstraction the pricing
// engine uses to memoize decisions, with Redis and in-memory backends.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/donaldgifford/comp-pricer/internal/metrics"
	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

const (
	// DefaultTTL is how long a decision stays cached.
	DefaultTTL = 48 * time.Hour

	keyPrefix = "comp-pricer:decision:"
)

// Cache is a key/value store with per-entry expiry. Get reports a miss with
// ok == false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// DecisionKey builds the cache key for a product signature, the requested
// condition and a settings fingerprint.
func DecisionKey(signature string, cond domain.Condition, fingerprint string) string {
	return keyPrefix + signature + ":" + string(cond) + ":" + fingerprint
}

// DecisionCache stores pricing decisions as JSON in a Cache. Backend errors
// are logged and counted, never returned: a broken cache degrades to a miss.
type DecisionCache struct {
	backend Cache
	ttl     time.Duration
	logger  *slog.Logger
}

// DecisionCacheOption configures a DecisionCache.
type DecisionCacheOption func(*DecisionCache)

// WithTTL overrides DefaultTTL. Non-positive values are ignored.
func WithTTL(ttl time.Duration) DecisionCacheOption {
	return func(d *DecisionCache) {
		if ttl > 0 {
			d.ttl = ttl
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) DecisionCacheOption {
	return func(d *DecisionCache) {
		d.logger = l
	}
}

// NewDecisionCache wraps backend.
func NewDecisionCache(backend Cache, opts ...DecisionCacheOption) *DecisionCache {
	d := &DecisionCache{
		backend: backend,
		ttl:     DefaultTTL,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// TTL returns the configured entry lifetime.
func (d *DecisionCache) TTL() time.Duration {
	return d.ttl
}

// Get returns the cached decision for key.
func (d *DecisionCache) Get(ctx context.Context, key string) (*domain.DeliveredPricingDecision, bool) {
	data, ok, err := d.backend.Get(ctx, key)
	if err != nil {
		metrics.CacheErrorsTotal.Inc()
		d.logger.Warn("cache get failed", "key", key, "error", err)
		return nil, false
	}
	if !ok {
		metrics.CacheMissesTotal.Inc()
		return nil, false
	}

	var decision domain.DeliveredPricingDecision
	if err := json.Unmarshal(data, &decision); err != nil {
		metrics.CacheErrorsTotal.Inc()
		d.logger.Warn("discarding corrupt cache entry", "key", key, "error", err)
		return nil, false
	}

	metrics.CacheHitsTotal.Inc()
	return &decision, true
}

// Put stores decision under key.
func (d *DecisionCache) Put(ctx context.Context, key string, decision *domain.DeliveredPricingDecision) {
	if err := d.put(ctx, key, decision); err != nil {
		metrics.CacheErrorsTotal.Inc()
		d.logger.Warn("cache set failed", "key", key, "error", err)
	}
}

func (d *DecisionCache) put(ctx context.Context, key string, decision *domain.DeliveredPricingDecision) error {
	data, err := json.Marshal(decision)
	if err != nil {
		return fmt.Errorf("marshaling decision: %w", err)
	}
	return d.backend.Set(ctx, key, data, d.ttl)
}

// Invalidate removes key.
func (d *DecisionCache) Invalidate(ctx context.Context, key string) error {
	return d.backend.Delete(ctx, key)
}
