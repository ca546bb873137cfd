package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/comp-pricer/internal/api/handlers"
	"github.com/donaldgifford/comp-pricer/internal/engine"
	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

// fakeJobRuns serves canned runs per job and records requested limits.
type fakeJobRuns struct {
	runs   map[string][]domain.JobRun
	err    error
	limits map[string]int
}

func (f *fakeJobRuns) ListJobRuns(_ context.Context, jobName string, limit int) ([]domain.JobRun, error) {
	if f.limits == nil {
		f.limits = map[string]int{}
	}
	f.limits[jobName] = limit
	if f.err != nil {
		return nil, f.err
	}
	runs := f.runs[jobName]
	return runs[:min(limit, len(runs))], nil
}

type fixedSchedule map[string]time.Time

func (s fixedSchedule) NextRuns() map[string]time.Time { return s }

var jobsEpoch = time.Date(2026, 4, 2, 6, 0, 0, 0, time.UTC)

func jobRun(job, status string, ago time.Duration) domain.JobRun {
	return domain.JobRun{
		ID:        job + "-" + status,
		JobName:   job,
		StartedAt: jobsEpoch.Add(-ago),
		Status:    status,
	}
}

func TestListJobs(t *testing.T) {
	t.Parallel()

	store := &fakeJobRuns{runs: map[string][]domain.JobRun{
		engine.JobReprice: {jobRun(engine.JobReprice, "succeeded", time.Hour), jobRun(engine.JobReprice, "failed", 13*time.Hour)},
	}}
	sched := fixedSchedule{engine.JobReprice: jobsEpoch.Add(11 * time.Hour)}

	_, api := humatest.New(t)
	handlers.RegisterJobRoutes(api, handlers.NewJobsHandler(store, sched))

	resp := api.Get("/api/v1/jobs")
	require.Equal(t, http.StatusOK, resp.Code)

	var got []handlers.JobSummary
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	require.Len(t, got, 2)

	assert.Equal(t, engine.JobReprice, got[0].Name)
	require.NotNil(t, got[0].LastRun)
	assert.Equal(t, "succeeded", got[0].LastRun.Status)
	require.NotNil(t, got[0].NextRunAt)
	assert.True(t, jobsEpoch.Add(11*time.Hour).Equal(*got[0].NextRunAt))

	assert.Equal(t, engine.JobQuotaSync, got[1].Name, "never-run jobs are still listed")
	assert.Nil(t, got[1].LastRun)
	assert.Nil(t, got[1].NextRunAt)

	assert.Equal(t, 1, store.limits[engine.JobReprice])
}

func TestListJobs_WithoutSchedule(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterJobRoutes(api, handlers.NewJobsHandler(&fakeJobRuns{}, nil))

	resp := api.Get("/api/v1/jobs")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.NotContains(t, resp.Body.String(), "next_run_at")
}

func TestGetJobHistory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      string
		storeErr  error
		wantCode  int
		wantLimit int
		wantRuns  int
		wantBody  string
	}{
		{name: "default limit", path: "/api/v1/jobs/reprice", wantCode: http.StatusOK, wantLimit: 20, wantRuns: 2},
		{name: "explicit limit", path: "/api/v1/jobs/reprice?limit=1", wantCode: http.StatusOK, wantLimit: 1, wantRuns: 1},
		{name: "no runs yet", path: "/api/v1/jobs/quota_sync", wantCode: http.StatusOK, wantLimit: 20, wantBody: "[]"},
		{name: "unknown job", path: "/api/v1/jobs/backfill", wantCode: http.StatusNotFound, wantBody: "unknown job backfill"},
		{name: "limit above maximum", path: "/api/v1/jobs/reprice?limit=501", wantCode: http.StatusUnprocessableEntity},
		{
			name:     "store failure",
			path:     "/api/v1/jobs/reprice",
			storeErr: errors.New("db error"),
			wantCode: http.StatusInternalServerError,
			wantBody: "fetching job history failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := &fakeJobRuns{
				err: tt.storeErr,
				runs: map[string][]domain.JobRun{
					engine.JobReprice: {jobRun(engine.JobReprice, "succeeded", time.Hour), jobRun(engine.JobReprice, "failed", 13*time.Hour)},
				},
			}

			_, api := humatest.New(t)
			handlers.RegisterJobRoutes(api, handlers.NewJobsHandler(store, nil))

			resp := api.Get(tt.path)
			require.Equal(t, tt.wantCode, resp.Code, resp.Body.String())
			if tt.wantBody != "" {
				assert.Contains(t, resp.Body.String(), tt.wantBody)
			}
			if tt.wantCode != http.StatusOK {
				return
			}

			var runs []domain.JobRun
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &runs))
			assert.Len(t, runs, tt.wantRuns)
			assert.Equal(t, tt.wantLimit, store.limits[engine.JobReprice]+store.limits[engine.JobQuotaSync])
		})
	}
}

func TestListJobs_StoreError(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterJobRoutes(api, handlers.NewJobsHandler(&fakeJobRuns{err: errors.New("db error")}, nil))

	resp := api.Get("/api/v1/jobs")
	require.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Body.String(), "listing jobs failed")
}
