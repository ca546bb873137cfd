package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/comp-pricer/internal/ebay"
	"github.com/donaldgifford/comp-pricer/internal/metrics"
	"github.com/donaldgifford/comp-pricer/internal/store"
)

// Job names recorded in job_runs and scheduler_locks.
const (
	JobReprice   = "reprice"
	JobQuotaSync = "quota_sync"
)

const (
	jobStatusSucceeded = "succeeded"
	jobStatusFailed    = "failed"
	staleJobAge        = 2 * time.Hour
	minLockTTL         = 5 * time.Minute
)

// ErrQuotaSyncDisabled is returned by SyncQuota when no quota source is
// configured.
var ErrQuotaSyncDisabled = errors.New("quota sync is not configured")

// QuotaReader reports the eBay Browse API quota.
type QuotaReader interface {
	BrowseQuota(ctx context.Context) (*ebay.QuotaState, error)
}

// Scheduler runs periodic reprice and quota sync jobs. With a store, each
// run holds a cross-replica lock and is recorded as a job run.
type Scheduler struct {
	cron     *cron.Cron
	repricer *Repricer
	store    store.Store
	log      *slog.Logger
	holder   string

	quota         QuotaReader
	limiter       *ebay.RateLimiter
	quotaInterval time.Duration

	repriceInterval  time.Duration
	repriceEntryID   cron.EntryID
	quotaSyncEntryID cron.EntryID
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithSchedulerLogger sets a custom logger.
func WithSchedulerLogger(l *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.log = l
	}
}

// WithQuotaSync periodically aligns the rate limiter with eBay's reported
// quota.
func WithQuotaSync(q QuotaReader, l *ebay.RateLimiter, interval time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		s.quota = q
		s.limiter = l
		s.quotaInterval = interval
	}
}

// NewScheduler creates a Scheduler. A nil repricer or a zero interval
// disables the reprice job; st may be nil when no database is configured.
func NewScheduler(
	r *Repricer,
	st store.Store,
	repriceInterval time.Duration,
	opts ...SchedulerOption,
) (*Scheduler, error) {
	s := &Scheduler{
		cron:            cron.New(),
		repricer:        r,
		store:           st,
		log:             slog.Default(),
		holder:          lockHolder(),
		repriceInterval: repriceInterval,
	}
	for _, opt := range opts {
		opt(s)
	}

	if r != nil && repriceInterval > 0 {
		id, err := s.cron.AddFunc("@every "+repriceInterval.String(), s.runReprice)
		if err != nil {
			return nil, fmt.Errorf("scheduling reprice: %w", err)
		}
		s.repriceEntryID = id
	}

	if s.quota != nil && s.limiter != nil && s.quotaInterval > 0 {
		id, err := s.cron.AddFunc("@every "+s.quotaInterval.String(), s.runQuotaSync)
		if err != nil {
			return nil, fmt.Errorf("scheduling quota sync: %w", err)
		}
		s.quotaSyncEntryID = id
	}

	return s, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started", "jobs", len(s.cron.Entries()))
	s.cron.Start()
	s.SyncNextRunTimestamps()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// NextRuns returns the next scheduled time of each registered job. Jobs
// that are disabled, or not yet started, are absent.
func (s *Scheduler) NextRuns() map[string]time.Time {
	out := make(map[string]time.Time, 2)
	for name, id := range map[string]cron.EntryID{
		JobReprice:   s.repriceEntryID,
		JobQuotaSync: s.quotaSyncEntryID,
	} {
		if id == 0 {
			continue
		}
		if next := s.cron.Entry(id).Next; !next.IsZero() {
			out[name] = next
		}
	}
	return out
}

// SyncNextRunTimestamps publishes each job's next run time.
func (s *Scheduler) SyncNextRunTimestamps() {
	next := s.NextRuns()
	if t, ok := next[JobReprice]; ok {
		metrics.SchedulerNextRepriceTimestamp.Set(float64(t.Unix()))
	}
	if t, ok := next[JobQuotaSync]; ok {
		metrics.SchedulerNextQuotaSyncTimestamp.Set(float64(t.Unix()))
	}
}

// RecoverStaleJobRuns marks runs left in progress by a crashed replica as
// failed.
func (s *Scheduler) RecoverStaleJobRuns(ctx context.Context) {
	if s.store == nil {
		return
	}
	n, err := s.store.RecoverStaleJobRuns(ctx, staleJobAge)
	if err != nil {
		s.log.Error("recovering stale job runs failed", "error", err)
		return
	}
	if n > 0 {
		s.log.Warn("recovered stale job runs", "count", n)
	}
}

// SyncQuota reads the current quota and applies it to the rate limiter.
func (s *Scheduler) SyncQuota(ctx context.Context) (int, error) {
	if s.quota == nil || s.limiter == nil {
		return 0, ErrQuotaSyncDisabled
	}
	q, err := s.quota.BrowseQuota(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading browse quota: %w", err)
	}
	s.limiter.Sync(q)
	metrics.EbayDailyUsage.Set(float64(q.Count))
	s.log.Info("ebay quota synced",
		"count", q.Count,
		"limit", q.Limit,
		"reset_at", q.ResetAt,
	)
	return 0, nil
}

func (s *Scheduler) runReprice() {
	defer s.SyncNextRunTimestamps()
	ctx := context.Background()
	s.log.Info("scheduled reprice starting")

	ttl := max(s.repriceInterval, minLockTTL)
	err := s.runJob(ctx, JobReprice, ttl, func(ctx context.Context) (int, error) {
		sum, err := s.repricer.RunReprice(ctx)
		if sum == nil {
			return 0, err
		}
		return sum.Priced, err
	})
	if err != nil {
		s.log.Error("scheduled reprice failed", "error", err)
	}
}

func (s *Scheduler) runQuotaSync() {
	defer s.SyncNextRunTimestamps()
	ctx := context.Background()

	ttl := max(s.quotaInterval, minLockTTL)
	if err := s.runJob(ctx, JobQuotaSync, ttl, s.SyncQuota); err != nil {
		s.log.Error("scheduled quota sync failed", "error", err)
	}
}

// runJob runs fn under the named scheduler lock and records the run. A lock
// held by another replica skips the run without error.
func (s *Scheduler) runJob(
	ctx context.Context,
	name string,
	ttl time.Duration,
	fn func(context.Context) (int, error),
) error {
	if s.store == nil {
		_, err := fn(ctx)
		recordJob(name, err)
		return err
	}

	acquired, err := s.store.AcquireSchedulerLock(ctx, name, s.holder, ttl)
	if err != nil {
		return fmt.Errorf("acquiring %s lock: %w", name, err)
	}
	if !acquired {
		s.log.Info("job lock held elsewhere, skipping", "job", name)
		return nil
	}
	defer func() {
		if err := s.store.ReleaseSchedulerLock(ctx, name, s.holder); err != nil {
			s.log.Warn("releasing job lock failed", "job", name, "error", err)
		}
	}()

	runID, err := s.store.InsertJobRun(ctx, name)
	if err != nil {
		return fmt.Errorf("recording %s run: %w", name, err)
	}

	rows, jobErr := fn(ctx)

	status, errText := jobStatusSucceeded, ""
	if jobErr != nil {
		status, errText = jobStatusFailed, jobErr.Error()
	}
	if err := s.store.CompleteJobRun(ctx, runID, status, errText, rows); err != nil {
		s.log.Warn("completing job run failed", "job", name, "run_id", runID, "error", err)
	}

	recordJob(name, jobErr)
	return jobErr
}

func recordJob(name string, err error) {
	status := jobStatusSucceeded
	if err != nil {
		status = jobStatusFailed
	}
	metrics.SchedulerJobsTotal.WithLabelValues(name, status).Inc()
}

func lockHolder() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "comp-pricer"
	}
	return host + "-" + uuid.NewString()[:8]
}
