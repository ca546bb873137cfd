package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

// QuotaStatus is the server's view of the eBay daily quota.
type QuotaStatus struct {
	DailyLimit int64     `json:"daily_limit"`
	DailyUsed  int64     `json:"daily_used"`
	Remaining  int64     `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
}

// JobSummary is a scheduled job with its latest run and next start.
type JobSummary struct {
	Name      string         `json:"name"`
	LastRun   *domain.JobRun `json:"last_run,omitempty"`
	NextRunAt *time.Time     `json:"next_run_at,omitempty"`
}

// ListJobs returns every scheduled job the server knows about.
func (c *Client) ListJobs(ctx context.Context) ([]JobSummary, error) {
	var jobs []JobSummary
	if err := c.get(ctx, "/api/v1/jobs", nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetJobHistory returns the run history for a specific scheduled job.
func (c *Client) GetJobHistory(ctx context.Context, jobName string, limit int) ([]domain.JobRun, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var runs []domain.JobRun
	if err := c.get(ctx, fmt.Sprintf("/api/v1/jobs/%s", url.PathEscape(jobName)), q, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

// GetQuota returns the eBay API quota status.
func (c *Client) GetQuota(ctx context.Context) (*QuotaStatus, error) {
	var q QuotaStatus
	if err := c.get(ctx, "/api/v1/quota", nil, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// SyncQuota asks the server to refresh its quota counters from eBay.
func (c *Client) SyncQuota(ctx context.Context) (*QuotaStatus, error) {
	var q QuotaStatus
	if err := c.post(ctx, "/api/v1/quota/sync", nil, &q); err != nil {
		return nil, err
	}
	return &q, nil
}
