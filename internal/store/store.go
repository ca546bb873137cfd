// Package store defines the datastore abstraction for comp-pricer.
// Callers depend on the Store interface, never on concrete implementations,
// so engine and handler tests run against mocks without a database.
package store

import (
	"context"
	"errors"
	"time"

	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ProductQuery defines optional filters for tracked product queries.
type ProductQuery struct {
	EnabledOnly bool
	Brand       *string
	Condition   *domain.Condition
	Search      *string // case-insensitive substring of product_name
	Limit       int     // default 50
	Offset      int
	OrderBy     string // "created_at", "brand", "last_priced_at"
}

// Store defines all data access operations for comp-pricer.
type Store interface {
	// Tracked products
	CreateProduct(ctx context.Context, p *domain.TrackedProduct) error
	GetProduct(ctx context.Context, id string) (*domain.TrackedProduct, error)
	ListProducts(ctx context.Context, q *ProductQuery) ([]domain.TrackedProduct, int, error)
	UpdateProduct(ctx context.Context, p *domain.TrackedProduct) error
	DeleteProduct(ctx context.Context, id string) error
	SetProductEnabled(ctx context.Context, id string, enabled bool) error
	MarkProductPriced(ctx context.Context, id string, t time.Time) error

	// Decisions
	InsertDecision(ctx context.Context, r *domain.DecisionRecord) error
	ListDecisions(ctx context.Context, productID string, limit int) ([]domain.DecisionRecord, error)
	LatestDecision(ctx context.Context, productID string) (*domain.DecisionRecord, error)

	// Scheduler
	InsertJobRun(ctx context.Context, jobName string) (id string, err error)
	CompleteJobRun(ctx context.Context, id string, status string, errText string, rowsAffected int) error
	ListJobRuns(ctx context.Context, jobName string, limit int) ([]domain.JobRun, error)
	RecoverStaleJobRuns(ctx context.Context, olderThan time.Duration) (int, error)
	AcquireSchedulerLock(ctx context.Context, jobName string, holder string, ttl time.Duration) (bool, error)
	ReleaseSchedulerLock(ctx context.Context, jobName string, holder string) error

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
