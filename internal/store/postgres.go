package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
//
// TODO(test): PostgresStore methods require live Postgres, tested via integration tests.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	if !strings.Contains(connString, "pool_max_conns") {
		cfg.MaxConns = defaultPoolSize
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// CreateProduct inserts a tracked product and fills in its generated fields.
func (s *PostgresStore) CreateProduct(ctx context.Context, p *domain.TrackedProduct) error {
	overridesJSON, err := json.Marshal(p.Overrides)
	if err != nil {
		return fmt.Errorf("marshaling overrides: %w", err)
	}

	args := pgx.NamedArgs{
		"brand":        p.Brand,
		"product_name": p.ProductName,
		"condition":    p.Condition,
		"overrides":    overridesJSON,
		"enabled":      p.Enabled,
	}

	if err := s.pool.QueryRow(ctx, queryCreateProduct, args).Scan(
		&p.ID, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return fmt.Errorf("creating product: %w", err)
	}
	return nil
}

// GetProduct retrieves a tracked product by its ID.
func (s *PostgresStore) GetProduct(ctx context.Context, id string) (*domain.TrackedProduct, error) {
	p := &domain.TrackedProduct{}
	if err := scanProduct(s.pool.QueryRow(ctx, queryGetProduct, id), p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting product: %w", err)
	}
	return p, nil
}

// ListProducts queries tracked products with optional filters, returning
// results and the total count.
func (s *PostgresStore) ListProducts(
	ctx context.Context,
	q *ProductQuery,
) ([]domain.TrackedProduct, int, error) {
	if q == nil {
		q = &ProductQuery{}
	}
	dataSQL, countSQL, args := q.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting products: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.TrackedProduct
	for rows.Next() {
		var p domain.TrackedProduct
		if err := scanProduct(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating products: %w", err)
	}

	return products, total, nil
}

// UpdateProduct updates an existing tracked product.
func (s *PostgresStore) UpdateProduct(ctx context.Context, p *domain.TrackedProduct) error {
	overridesJSON, err := json.Marshal(p.Overrides)
	if err != nil {
		return fmt.Errorf("marshaling overrides: %w", err)
	}

	args := pgx.NamedArgs{
		"id":           p.ID,
		"brand":        p.Brand,
		"product_name": p.ProductName,
		"condition":    p.Condition,
		"overrides":    overridesJSON,
		"enabled":      p.Enabled,
	}

	err = s.pool.QueryRow(ctx, queryUpdateProduct, args).Scan(&p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("product %s: %w", p.ID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}
	return nil
}

// DeleteProduct removes a tracked product and, by cascade, its decisions.
func (s *PostgresStore) DeleteProduct(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, queryDeleteProduct, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return nil
}

// SetProductEnabled enables or disables scheduled repricing for a product.
func (s *PostgresStore) SetProductEnabled(ctx context.Context, id string, enabled bool) error {
	tag, err := s.pool.Exec(ctx, querySetProductEnabled, id, enabled)
	if err != nil {
		return fmt.Errorf("setting product enabled: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return nil
}

// MarkProductPriced sets the last_priced_at timestamp for a product.
func (s *PostgresStore) MarkProductPriced(ctx context.Context, id string, t time.Time) error {
	if _, err := s.pool.Exec(ctx, queryMarkProductPriced, id, t); err != nil {
		return fmt.Errorf("updating product last_priced_at: %w", err)
	}
	return nil
}

// InsertDecision persists a pricing decision. The full decision is stored as
// JSONB alongside the columns used for filtering.
func (s *PostgresStore) InsertDecision(ctx context.Context, r *domain.DecisionRecord) error {
	decisionJSON, err := json.Marshal(r.Decision)
	if err != nil {
		return fmt.Errorf("marshaling decision: %w", err)
	}

	args := pgx.NamedArgs{
		"product_id":             r.ProductID,
		"brand":                  r.Brand,
		"product_name":           r.ProductName,
		"signature":              r.Signature,
		"target_delivered_cents": r.TargetDeliveredCents,
		"final_item_cents":       r.FinalItemCents,
		"final_ship_cents":       r.FinalShipCents,
		"can_compete":            r.CanCompete,
		"skip_listing":           r.SkipListing,
		"comps_source":           string(r.CompsSource),
		"match_confidence":       string(r.MatchConfidence),
		"decision":               decisionJSON,
	}

	if err := s.pool.QueryRow(ctx, queryInsertDecision, args).Scan(&r.ID, &r.CreatedAt); err != nil {
		return fmt.Errorf("inserting decision: %w", err)
	}
	return nil
}

// ListDecisions returns the most recent decisions for a product, newest first.
func (s *PostgresStore) ListDecisions(
	ctx context.Context,
	productID string,
	limit int,
) ([]domain.DecisionRecord, error) {
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}

	rows, err := s.pool.Query(ctx, queryListDecisions, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying decisions: %w", err)
	}
	defer rows.Close()

	var records []domain.DecisionRecord
	for rows.Next() {
		var r domain.DecisionRecord
		if err := scanDecision(rows, &r); err != nil {
			return nil, fmt.Errorf("scanning decision: %w", err)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// LatestDecision returns the newest decision for a product.
func (s *PostgresStore) LatestDecision(
	ctx context.Context,
	productID string,
) (*domain.DecisionRecord, error) {
	r := &domain.DecisionRecord{}
	if err := scanDecision(s.pool.QueryRow(ctx, queryLatestDecision, productID), r); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("decision for product %s: %w", productID, ErrNotFound)
		}
		return nil, fmt.Errorf("getting latest decision: %w", err)
	}
	return r, nil
}

// InsertJobRun records the start of a scheduled job and returns its UUID.
func (s *PostgresStore) InsertJobRun(ctx context.Context, jobName string) (string, error) {
	var id string
	if err := s.pool.QueryRow(ctx, queryInsertJobRun, jobName).Scan(&id); err != nil {
		return "", fmt.Errorf("inserting job run: %w", err)
	}
	return id, nil
}

// CompleteJobRun marks a job run as finished with the given status and metadata.
func (s *PostgresStore) CompleteJobRun(
	ctx context.Context,
	id string,
	status string,
	errText string,
	rowsAffected int,
) error {
	_, err := s.pool.Exec(ctx, queryCompleteJobRun, id, status, errText, rowsAffected)
	if err != nil {
		return fmt.Errorf("completing job run: %w", err)
	}
	return nil
}

// ListJobRuns returns the most recent runs for a specific job, newest first.
func (s *PostgresStore) ListJobRuns(
	ctx context.Context,
	jobName string,
	limit int,
) ([]domain.JobRun, error) {
	rows, err := s.pool.Query(ctx, queryListJobRuns, jobName, limit)
	if err != nil {
		return nil, fmt.Errorf("querying job runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.JobRun
	for rows.Next() {
		var r domain.JobRun
		if err := rows.Scan(
			&r.ID, &r.JobName, &r.StartedAt, &r.CompletedAt,
			&r.Status, &r.ErrorText, &r.RowsAffected,
		); err != nil {
			return nil, fmt.Errorf("scanning job run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RecoverStaleJobRuns marks any 'running' job rows older than olderThan as
// 'crashed', then deletes rows older than 30 days. Returns the number of rows
// marked as crashed.
func (s *PostgresStore) RecoverStaleJobRuns(
	ctx context.Context,
	olderThan time.Duration,
) (int, error) {
	cutoff := time.Now().Add(-olderThan)

	tag, err := s.pool.Exec(ctx, queryMarkStaleJobRunsCrashed, cutoff)
	if err != nil {
		return 0, fmt.Errorf("marking stale job runs crashed: %w", err)
	}
	affected := int(tag.RowsAffected())

	if _, err := s.pool.Exec(ctx, queryDeleteOldJobRuns); err != nil {
		return affected, fmt.Errorf("deleting old job runs: %w", err)
	}

	return affected, nil
}

// AcquireSchedulerLock attempts to acquire a distributed lock for the given
// job. Returns true if the lock was acquired, false if another holder owns it.
func (s *PostgresStore) AcquireSchedulerLock(
	ctx context.Context,
	jobName string,
	holder string,
	ttl time.Duration,
) (bool, error) {
	expiresAt := time.Now().Add(ttl)

	var gotName string
	err := s.pool.QueryRow(ctx, queryAcquireSchedulerLock, jobName, holder, expiresAt).Scan(&gotName)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil // held by another replica
	}
	if err != nil {
		return false, fmt.Errorf("acquiring scheduler lock: %w", err)
	}

	return true, nil
}

// ReleaseSchedulerLock deletes the lock row for the given job and holder.
func (s *PostgresStore) ReleaseSchedulerLock(
	ctx context.Context,
	jobName string,
	holder string,
) error {
	_, err := s.pool.Exec(ctx, queryReleaseSchedulerLock, jobName, holder)
	if err != nil {
		return fmt.Errorf("releasing scheduler lock: %w", err)
	}
	return nil
}

// scannable abstracts pgx.Row and pgx.Rows for reuse.
type scannable interface {
	Scan(dest ...any) error
}

func scanProduct(row scannable, p *domain.TrackedProduct) error {
	var overridesJSON []byte
	if err := row.Scan(
		&p.ID, &p.Brand, &p.ProductName, &p.Condition, &overridesJSON, &p.Enabled,
		&p.LastPricedAt, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return err
	}
	if len(overridesJSON) > 0 {
		if err := json.Unmarshal(overridesJSON, &p.Overrides); err != nil {
			return fmt.Errorf("unmarshaling overrides: %w", err)
		}
	}
	return nil
}

func scanDecision(row scannable, r *domain.DecisionRecord) error {
	var (
		decisionJSON []byte
		compsSource  string
		confidence   string
	)
	if err := row.Scan(
		&r.ID, &r.ProductID, &r.Brand, &r.ProductName, &r.Signature,
		&r.TargetDeliveredCents, &r.FinalItemCents, &r.FinalShipCents,
		&r.CanCompete, &r.SkipListing, &compsSource, &confidence,
		&decisionJSON, &r.CreatedAt,
	); err != nil {
		return err
	}
	r.CompsSource = domain.CompsSource(compsSource)
	r.MatchConfidence = domain.MatchConfidence(confidence)
	if err := json.Unmarshal(decisionJSON, &r.Decision); err != nil {
		return fmt.Errorf("unmarshaling decision: %w", err)
	}
	return nil
}

// NewDecisionRecord builds a persistable record from an engine decision.
func NewDecisionRecord(
	productID *string,
	brand, productName string,
	d *domain.DeliveredPricingDecision,
) *domain.DecisionRecord {
	return &domain.DecisionRecord{
		ProductID:            productID,
		Brand:                brand,
		ProductName:          productName,
		Signature:            d.Signature,
		TargetDeliveredCents: d.TargetDeliveredCents,
		FinalItemCents:       d.FinalItemCents,
		FinalShipCents:       d.FinalShipCents,
		CanCompete:           d.CanCompete,
		SkipListing:          d.SkipListing,
		CompsSource:          d.CompsSource,
		MatchConfidence:      d.MatchConfidence,
		Decision:             *d,
	}
}
