package store

// SQL query constants organized by entity.
// PostgresStore methods reference these constants.

const productColumns = `id, brand, product_name, condition, overrides, enabled,
	last_priced_at, created_at, updated_at`

// Tracked product queries.
const (
	queryCreateProduct = `
		INSERT INTO tracked_products (brand, product_name, condition, overrides, enabled)
		VALUES (@brand, @product_name, @condition, @overrides, @enabled)
		RETURNING id, created_at, updated_at`

	queryGetProduct = `
		SELECT ` + productColumns + `
		FROM tracked_products
		WHERE id = $1`

	queryUpdateProduct = `
		UPDATE tracked_products SET
			brand        = @brand,
			product_name = @product_name,
			condition    = @condition,
			overrides    = @overrides,
			enabled      = @enabled,
			updated_at   = now()
		WHERE id = @id
		RETURNING updated_at`

	queryDeleteProduct = `
		DELETE FROM tracked_products WHERE id = $1`

	querySetProductEnabled = `
		UPDATE tracked_products SET enabled = $2, updated_at = now() WHERE id = $1`

	queryMarkProductPriced = `
		UPDATE tracked_products SET last_priced_at = $2 WHERE id = $1`
)

const decisionColumns = `id, product_id, brand, product_name, signature,
	target_delivered_cents, final_item_cents, final_ship_cents,
	can_compete, skip_listing, comps_source, match_confidence,
	decision, created_at`

// Decision queries.
const (
	queryInsertDecision = `
		INSERT INTO pricing_decisions (
			product_id, brand, product_name, signature,
			target_delivered_cents, final_item_cents, final_ship_cents,
			can_compete, skip_listing, comps_source, match_confidence, decision
		) VALUES (
			@product_id, @brand, @product_name, @signature,
			@target_delivered_cents, @final_item_cents, @final_ship_cents,
			@can_compete, @skip_listing, @comps_source, @match_confidence, @decision
		)
		RETURNING id, created_at`

	queryListDecisions = `
		SELECT ` + decisionColumns + `
		FROM pricing_decisions
		WHERE product_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	queryLatestDecision = `
		SELECT ` + decisionColumns + `
		FROM pricing_decisions
		WHERE product_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1`
)

// Scheduler queries.
const (
	queryInsertJobRun = `
		INSERT INTO job_runs (job_name)
		VALUES ($1)
		RETURNING id`

	queryCompleteJobRun = `
		UPDATE job_runs SET
			completed_at  = now(),
			status        = $2,
			error_text    = $3,
			rows_affected = $4
		WHERE id = $1`

	queryListJobRuns = `
		SELECT id, job_name, started_at, completed_at, status,
			COALESCE(error_text, ''), rows_affected
		FROM job_runs
		WHERE job_name = $1
		ORDER BY started_at DESC, id DESC
		LIMIT $2`

	queryMarkStaleJobRunsCrashed = `
		UPDATE job_runs SET
			status       = 'crashed',
			completed_at = now()
		WHERE status = 'running' AND started_at < $1`

	queryDeleteOldJobRuns = `
		DELETE FROM job_runs WHERE started_at < now() - interval '30 days'`

	queryAcquireSchedulerLock = `
		INSERT INTO scheduler_locks (job_name, lock_holder, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (job_name) DO UPDATE
			SET locked_at   = now(),
				lock_holder = EXCLUDED.lock_holder,
				expires_at  = EXCLUDED.expires_at
			WHERE scheduler_locks.expires_at < now()
		RETURNING job_name`

	queryReleaseSchedulerLock = `
		DELETE FROM scheduler_locks WHERE job_name = $1 AND lock_holder = $2`
)
