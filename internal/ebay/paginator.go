package ebay

import (
	"context"
	"fmt"
	"log/slog"
)

const (
	defaultPageSize = 50
	defaultMaxPages = 3
)

// StopReason says why pagination ended.
type StopReason string

// Stop reasons.
const (
	StopNoMoreResults StopReason = "no_more_results"
	StopMaxPages      StopReason = "max_pages"
	StopTargetReached StopReason = "target_reached"
	StopError         StopReason = "error"
)

// Paginator walks Browse API result pages for one comp search. Every page
// costs a call against the daily quota, so it stops as soon as it has
// enough distinct listings or eBay has nothing more.
type Paginator struct {
	client      Searcher
	logger      *slog.Logger
	pageSize    int
	maxPages    int
	targetItems int
}

// PaginatorOption configures the Paginator.
type PaginatorOption func(*Paginator)

// WithPageSize sets listings requested per page. Non-positive values are ignored.
func WithPageSize(size int) PaginatorOption {
	return func(p *Paginator) {
		if size > 0 {
			p.pageSize = size
		}
	}
}

// WithMaxPages caps pages fetched per search. Non-positive values are ignored.
func WithMaxPages(n int) PaginatorOption {
	return func(p *Paginator) {
		if n > 0 {
			p.maxPages = n
		}
	}
}

// WithTargetItems stops paging once n distinct listings are collected.
// Zero means no target.
func WithTargetItems(n int) PaginatorOption {
	return func(p *Paginator) {
		p.targetItems = max(n, 0)
	}
}

// WithPaginatorLogger sets the logger.
func WithPaginatorLogger(l *slog.Logger) PaginatorOption {
	return func(p *Paginator) {
		p.logger = l
	}
}

// NewPaginator wraps a Searcher.
func NewPaginator(client Searcher, opts ...PaginatorOption) *Paginator {
	p := &Paginator{
		client:   client,
		logger:   slog.Default(),
		pageSize: defaultPageSize,
		maxPages: defaultMaxPages,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PaginateResult is the outcome of one paginated search.
type PaginateResult struct {
	Items     []ItemSummary
	Total     int
	PagesUsed int
	StoppedAt StopReason
}

// Paginate collects distinct listings for req. An error on the first page
// fails the search; a later error keeps what was already collected.
func (p *Paginator) Paginate(ctx context.Context, req SearchRequest) (*PaginateResult, error) {
	req.Limit = p.pageSize
	res := &PaginateResult{}
	seen := make(map[string]bool)

	for page := 0; ; page++ {
		if page == p.maxPages {
			res.StoppedAt = StopMaxPages
			return res, nil
		}

		req.Offset = page * p.pageSize
		resp, err := p.client.Search(ctx, req)
		if err != nil {
			if page == 0 {
				return nil, fmt.Errorf("searching first page: %w", err)
			}
			p.logger.WarnContext(ctx, "ebay pagination cut short",
				"query", req.Query, "page", page, "error", err)
			res.StoppedAt = StopError
			return res, nil
		}

		res.PagesUsed++
		res.Total = resp.Total
		for _, it := range resp.Items {
			if seen[it.ItemID] {
				continue
			}
			seen[it.ItemID] = true
			res.Items = append(res.Items, it)
		}

		switch {
		case len(resp.Items) == 0 || !resp.HasMore:
			res.StoppedAt = StopNoMoreResults
			return res, nil
		case p.targetItems > 0 && len(res.Items) >= p.targetItems:
			res.StoppedAt = StopTargetReached
			return res, nil
		}
	}
}
