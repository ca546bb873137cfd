// Package sources adapts external comp feeds into tagged observations the
// pricing engine consumes. Each adapter owns its transport timeouts; the
// engine only sees Source.
package sources

import (
	"context"
	"strings"

	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

// Query identifies the product a source should look up.
type Query struct {
	Brand       string
	ProductName string
	Identity    domain.CanonicalIdentity
}

// Text returns the free-text search string for q.
func (q Query) Text() string {
	return strings.TrimSpace(strings.TrimSpace(q.Brand) + " " + strings.TrimSpace(q.ProductName))
}

// Source fetches one observation for a query.
type Source interface {
	Name() string
	Fetch(ctx context.Context, q Query) (domain.Observation, error)
}
