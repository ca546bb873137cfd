package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	ptestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/comp-pricer/internal/ebay"
	"github.com/donaldgifford/comp-pricer/internal/metrics"
	notifyMocks "github.com/donaldgifford/comp-pricer/internal/notify/mocks"
	storeMocks "github.com/donaldgifford/comp-pricer/internal/store/mocks"
)

type fakeQuota struct {
	state *ebay.QuotaState
	err   error
}

func (f *fakeQuota) BrowseQuota(context.Context) (*ebay.QuotaState, error) {
	return f.state, f.err
}

// newSchedulerTestRepricer returns a repricer and the mock store behind it.
func newSchedulerTestRepricer(t *testing.T) (*Repricer, *storeMocks.MockStore) {
	t.Helper()
	ms := storeMocks.NewMockStore(t)
	return newTestRepricer(ms, starvedPricer(), notifyMocks.NewMockNotifier(t)), ms
}

func TestNewScheduler_RegistersCronEntries(t *testing.T) {
	t.Parallel()

	r, ms := newSchedulerTestRepricer(t)
	limiter := ebay.NewRateLimiter(5, 10, 5000)

	tests := []struct {
		name        string
		repricer    *Repricer
		interval    time.Duration
		opts        []SchedulerOption
		wantEntries int
	}{
		{name: "reprice only", repricer: r, interval: time.Hour, wantEntries: 1},
		{
			name:        "reprice and quota sync",
			repricer:    r,
			interval:    time.Hour,
			opts:        []SchedulerOption{WithQuotaSync(&fakeQuota{}, limiter, 15*time.Minute)},
			wantEntries: 2,
		},
		{name: "no repricer", repricer: nil, interval: time.Hour, wantEntries: 0},
		{name: "zero interval", repricer: r, interval: 0, wantEntries: 0},
		{
			name:        "quota sync without limiter",
			repricer:    r,
			interval:    time.Hour,
			opts:        []SchedulerOption{WithQuotaSync(&fakeQuota{}, nil, 15*time.Minute)},
			wantEntries: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := append([]SchedulerOption{WithSchedulerLogger(quietLogger())}, tt.opts...)
			sched, err := NewScheduler(tt.repricer, ms, tt.interval, opts...)
			require.NoError(t, err)
			assert.Len(t, sched.Entries(), tt.wantEntries)
		})
	}
}

func TestScheduler_StartStop(t *testing.T) {
	t.Parallel()

	r, ms := newSchedulerTestRepricer(t)
	sched, err := NewScheduler(r, ms, time.Hour, WithSchedulerLogger(quietLogger()))
	require.NoError(t, err)

	sched.Start()
	ctx := sched.Stop()
	<-ctx.Done()
}

func TestScheduler_SyncNextRunTimestamps(t *testing.T) {
	t.Parallel()

	r, ms := newSchedulerTestRepricer(t)
	sched, err := NewScheduler(r, ms, 15*time.Minute,
		WithSchedulerLogger(quietLogger()),
		WithQuotaSync(&fakeQuota{}, ebay.NewRateLimiter(5, 10, 5000), time.Hour),
	)
	require.NoError(t, err)

	// Start so that cron populates Next times.
	sched.Start()
	defer sched.Stop()

	sched.SyncNextRunTimestamps()

	assert.Greater(t, ptestutil.ToFloat64(metrics.SchedulerNextRepriceTimestamp), float64(0))
	assert.Greater(t, ptestutil.ToFloat64(metrics.SchedulerNextQuotaSyncTimestamp), float64(0))
}

func TestScheduler_NextRuns(t *testing.T) {
	t.Parallel()

	r, ms := newSchedulerTestRepricer(t)
	sched, err := NewScheduler(r, ms, 15*time.Minute,
		WithSchedulerLogger(quietLogger()),
		WithQuotaSync(&fakeQuota{}, ebay.NewRateLimiter(5, 10, 5000), time.Hour),
	)
	require.NoError(t, err)
	assert.NotEqual(t, sched.repriceEntryID, sched.quotaSyncEntryID)
	assert.NotEmpty(t, sched.holder)

	// cron computes next times on start.
	assert.Empty(t, sched.NextRuns())

	before := time.Now()
	sched.Start()
	defer sched.Stop()

	next := sched.NextRuns()
	require.Len(t, next, 2)
	assert.WithinRange(t, next[JobReprice], before, before.Add(16*time.Minute))
	assert.True(t, next[JobQuotaSync].After(next[JobReprice]))
}

func TestScheduler_RunJob_Success(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	sched, err := NewScheduler(nil, ms, 0, WithSchedulerLogger(quietLogger()))
	require.NoError(t, err)

	ms.EXPECT().
		AcquireSchedulerLock(mock.Anything, "test-job", sched.holder, 5*time.Minute).
		Return(true, nil).Once()
	ms.EXPECT().InsertJobRun(mock.Anything, "test-job").Return("run-id-1", nil).Once()
	ms.EXPECT().
		CompleteJobRun(mock.Anything, "run-id-1", "succeeded", "", 7).
		Return(nil).Once()
	ms.EXPECT().
		ReleaseSchedulerLock(mock.Anything, "test-job", sched.holder).
		Return(nil).Once()

	called := false
	err = sched.runJob(context.Background(), "test-job", 5*time.Minute, func(context.Context) (int, error) {
		called = true
		return 7, nil
	})

	require.NoError(t, err)
	assert.True(t, called)
}

func TestScheduler_RunJob_Failure(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	sched, err := NewScheduler(nil, ms, 0, WithSchedulerLogger(quietLogger()))
	require.NoError(t, err)

	jobErr := errors.New("something went wrong")

	ms.EXPECT().
		AcquireSchedulerLock(mock.Anything, "fail-job", mock.Anything, mock.Anything).
		Return(true, nil).Once()
	ms.EXPECT().InsertJobRun(mock.Anything, "fail-job").Return("run-id-2", nil).Once()
	ms.EXPECT().
		CompleteJobRun(mock.Anything, "run-id-2", "failed", jobErr.Error(), 0).
		Return(nil).Once()
	ms.EXPECT().
		ReleaseSchedulerLock(mock.Anything, "fail-job", mock.Anything).
		Return(nil).Once()

	before := ptestutil.ToFloat64(metrics.SchedulerJobsTotal.WithLabelValues("fail-job", "failed"))

	err = sched.runJob(context.Background(), "fail-job", 5*time.Minute, func(context.Context) (int, error) {
		return 0, jobErr
	})

	require.ErrorIs(t, err, jobErr)
	assert.InDelta(t, before+1,
		ptestutil.ToFloat64(metrics.SchedulerJobsTotal.WithLabelValues("fail-job", "failed")), 1e-9)
}

func TestScheduler_RunJob_LockHeldElsewhere(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	sched, err := NewScheduler(nil, ms, 0, WithSchedulerLogger(quietLogger()))
	require.NoError(t, err)

	ms.EXPECT().
		AcquireSchedulerLock(mock.Anything, "busy-job", mock.Anything, mock.Anything).
		Return(false, nil).Once()

	err = sched.runJob(context.Background(), "busy-job", time.Minute, func(context.Context) (int, error) {
		t.Fatal("job must not run without the lock")
		return 0, nil
	})

	require.NoError(t, err)
}

func TestScheduler_RunJob_LockError(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	sched, err := NewScheduler(nil, ms, 0, WithSchedulerLogger(quietLogger()))
	require.NoError(t, err)

	ms.EXPECT().
		AcquireSchedulerLock(mock.Anything, "job", mock.Anything, mock.Anything).
		Return(false, errors.New("db down")).Once()

	err = sched.runJob(context.Background(), "job", time.Minute, func(context.Context) (int, error) {
		return 0, nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "acquiring job lock")
}

func TestScheduler_RunJob_WithoutStore(t *testing.T) {
	t.Parallel()

	sched, err := NewScheduler(nil, nil, 0, WithSchedulerLogger(quietLogger()))
	require.NoError(t, err)

	called := false
	err = sched.runJob(context.Background(), "job", time.Minute, func(context.Context) (int, error) {
		called = true
		return 0, nil
	})

	require.NoError(t, err)
	assert.True(t, called)
	sched.RecoverStaleJobRuns(context.Background())
}

func TestScheduler_RecoverStaleJobs(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	sched, err := NewScheduler(nil, ms, 0, WithSchedulerLogger(quietLogger()))
	require.NoError(t, err)

	ms.EXPECT().
		RecoverStaleJobRuns(mock.Anything, 2*time.Hour).
		Return(3, nil).Once()

	sched.RecoverStaleJobRuns(context.Background())
}

func TestScheduler_SyncQuota(t *testing.T) {
	t.Parallel()

	resetAt := time.Now().Add(6 * time.Hour).Truncate(time.Second)
	limiter := ebay.NewRateLimiter(5, 10, 5000)
	quota := &fakeQuota{state: &ebay.QuotaState{Count: 1200, Limit: 5000, ResetAt: resetAt}}

	sched, err := NewScheduler(nil, nil, 0,
		WithSchedulerLogger(quietLogger()),
		WithQuotaSync(quota, limiter, time.Hour),
	)
	require.NoError(t, err)

	_, err = sched.SyncQuota(context.Background())
	require.NoError(t, err)

	u := limiter.Usage()
	assert.Equal(t, int64(1200), u.Used)
	assert.Equal(t, int64(3800), u.Remaining())
	assert.True(t, u.ResetAt.Equal(resetAt))
}

func TestScheduler_SyncQuota_Error(t *testing.T) {
	t.Parallel()

	limiter := ebay.NewRateLimiter(5, 10, 5000)
	sched, err := NewScheduler(nil, nil, 0,
		WithSchedulerLogger(quietLogger()),
		WithQuotaSync(&fakeQuota{err: errors.New("403")}, limiter, time.Hour),
	)
	require.NoError(t, err)

	_, err = sched.SyncQuota(context.Background())
	require.Error(t, err)
	assert.Zero(t, limiter.Usage().Used)
}

func TestScheduler_SyncQuota_NotConfigured(t *testing.T) {
	t.Parallel()

	sched, err := NewScheduler(nil, nil, 0, WithSchedulerLogger(quietLogger()))
	require.NoError(t, err)

	_, err = sched.SyncQuota(context.Background())
	require.ErrorIs(t, err, ErrQuotaSyncDisabled)
}

func TestScheduler_RunRepriceRecordsJob(t *testing.T) {
	t.Parallel()

	r, ms := newSchedulerTestRepricer(t)
	sched, err := NewScheduler(r, ms, time.Hour, WithSchedulerLogger(quietLogger()))
	require.NoError(t, err)

	ms.EXPECT().AcquireSchedulerLock(mock.Anything, JobReprice, mock.Anything, time.Hour).Return(true, nil).Once()
	ms.EXPECT().InsertJobRun(mock.Anything, JobReprice).Return("run-1", nil).Once()
	expectList(ms, nil)
	ms.EXPECT().CompleteJobRun(mock.Anything, "run-1", "succeeded", "", 0).Return(nil).Once()
	ms.EXPECT().ReleaseSchedulerLock(mock.Anything, JobReprice, mock.Anything).Return(nil).Once()

	sched.runReprice()
}
