package handlers

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/comp-pricer/internal/engine"
	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

const defaultJobHistoryLimit = 20

// JobsProvider reads recorded job runs, newest first.
type JobsProvider interface {
	ListJobRuns(ctx context.Context, jobName string, limit int) ([]domain.JobRun, error)
}

// JobSchedule reports when each scheduled job runs next.
type JobSchedule interface {
	NextRuns() map[string]time.Time
}

// JobsHandler serves scheduler job status and history.
type JobsHandler struct {
	store    JobsProvider
	schedule JobSchedule
	jobs     []string
}

// NewJobsHandler creates a JobsHandler. schedule may be nil, in which case
// next run times are omitted.
func NewJobsHandler(s JobsProvider, schedule JobSchedule) *JobsHandler {
	return &JobsHandler{
		store:    s,
		schedule: schedule,
		jobs:     []string{engine.JobReprice, engine.JobQuotaSync},
	}
}

// JobSummary is one scheduled job with its latest run.
type JobSummary struct {
	Name      string         `json:"name"                  doc:"Job name"`
	LastRun   *domain.JobRun `json:"last_run,omitempty"    doc:"Most recent recorded run"`
	NextRunAt *time.Time     `json:"next_run_at,omitempty" doc:"Next scheduled start on this replica"`
}

// ListJobsOutput lists every known job.
type ListJobsOutput struct {
	Body []JobSummary
}

// GetJobHistoryInput selects a job's history.
type GetJobHistoryInput struct {
	JobName string `path:"job_name" doc:"Scheduled job name (reprice, quota_sync)"`
	Limit   int    `query:"limit"   doc:"Number of runs (default 20)"               minimum:"0" maximum:"500"`
}

// GetJobHistoryOutput is a job's run history.
type GetJobHistoryOutput struct {
	Body []domain.JobRun
}

// ListJobs returns every known job with its latest run and next start.
func (h *JobsHandler) ListJobs(ctx context.Context, _ *struct{}) (*ListJobsOutput, error) {
	var next map[string]time.Time
	if h.schedule != nil {
		next = h.schedule.NextRuns()
	}

	out := make([]JobSummary, 0, len(h.jobs))
	for _, name := range h.jobs {
		runs, err := h.store.ListJobRuns(ctx, name, 1)
		if err != nil {
			return nil, huma.Error500InternalServerError("listing jobs failed: " + err.Error())
		}

		sum := JobSummary{Name: name}
		if len(runs) > 0 {
			sum.LastRun = &runs[0]
		}
		if t, ok := next[name]; ok {
			sum.NextRunAt = &t
		}
		out = append(out, sum)
	}

	return &ListJobsOutput{Body: out}, nil
}

// GetJobHistory returns a job's recorded runs, newest first.
func (h *JobsHandler) GetJobHistory(ctx context.Context, in *GetJobHistoryInput) (*GetJobHistoryOutput, error) {
	if !slices.Contains(h.jobs, in.JobName) {
		return nil, huma.Error404NotFound("unknown job " + in.JobName)
	}

	limit := in.Limit
	if limit == 0 {
		limit = defaultJobHistoryLimit
	}

	runs, err := h.store.ListJobRuns(ctx, in.JobName, limit)
	if err != nil {
		return nil, huma.Error500InternalServerError("fetching job history failed: " + err.Error())
	}
	if runs == nil {
		runs = []domain.JobRun{}
	}

	return &GetJobHistoryOutput{Body: runs}, nil
}

// RegisterJobRoutes registers scheduler job endpoints with the Huma API.
func RegisterJobRoutes(api huma.API, h *JobsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-jobs",
		Method:      http.MethodGet,
		Path:        "/api/v1/jobs",
		Summary:     "List scheduler jobs",
		Description: "Returns each scheduled job with its most recent run and next start time.",
		Tags:        []string{"scheduler"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.ListJobs)

	huma.Register(api, huma.Operation{
		OperationID: "get-job-history",
		Method:      http.MethodGet,
		Path:        "/api/v1/jobs/{job_name}",
		Summary:     "Get scheduler job history",
		Description: "Returns the run history for one scheduled job, newest first.",
		Tags:        []string{"scheduler"},
		Errors:      []int{http.StatusNotFound, http.StatusInternalServerError},
	}, h.GetJobHistory)
}
