package sources

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/donaldgifford/comp-pricer/internal/ebay"
	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

// EbayActiveSource turns Browse API searches into active-listing sets.
type EbayActiveSource struct {
	paginator  *ebay.Paginator
	categoryID string
	logger     *slog.Logger
}

// EbayOption configures an EbayActiveSource.
type EbayOption func(*EbayActiveSource)

// WithCategoryID restricts searches to an eBay category.
func WithCategoryID(id string) EbayOption {
	return func(s *EbayActiveSource) {
		s.categoryID = id
	}
}

// WithEbayLogger sets the logger.
func WithEbayLogger(l *slog.Logger) EbayOption {
	return func(s *EbayActiveSource) {
		s.logger = l
	}
}

// NewEbayActiveSource creates an active-listing source on top of p.
func NewEbayActiveSource(p *ebay.Paginator, opts ...EbayOption) *EbayActiveSource {
	s := &EbayActiveSource{paginator: p, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements Source.
func (*EbayActiveSource) Name() string { return "ebay" }

// Fetch implements Source. New-condition products search new listings only;
// the matcher still checks each listing's stated condition.
func (s *EbayActiveSource) Fetch(ctx context.Context, q Query) (domain.Observation, error) {
	req := ebay.SearchRequest{
		Query:          q.Text(),
		CategoryID:     s.categoryID,
		FixedPriceOnly: true,
	}
	if q.Identity.Condition == domain.ConditionNew {
		req.ConditionIDs = []string{ebay.ConditionIDNew}
	}

	res, err := s.paginator.Paginate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("ebay search: %w", err)
	}

	candidates := ebay.ToCandidates(res.Items)
	s.logger.Debug("ebay active comps fetched",
		"query", req.Query,
		"items", len(res.Items),
		"candidates", len(candidates),
		"pages", res.PagesUsed,
		"stopped_at", res.StoppedAt,
	)

	return &domain.ActiveListingSet{Source: s.Name(), Candidates: candidates}, nil
}
