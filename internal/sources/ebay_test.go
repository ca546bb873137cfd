package sources_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/comp-pricer/internal/ebay"
	ebayMocks "github.com/donaldgifford/comp-pricer/internal/ebay/mocks"
	"github.com/donaldgifford/comp-pricer/internal/sources"
	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

func TestEbayActiveSource_Fetch(t *testing.T) {
	t.Parallel()

	searcher := ebayMocks.NewMockSearcher(t)
	searcher.EXPECT().
		Search(mock.Anything, mock.MatchedBy(func(r ebay.SearchRequest) bool {
			return r.Query == "CeraVe Cleanser" &&
				r.FixedPriceOnly &&
				r.CategoryID == "11450" &&
				assert.ObjectsAreEqual([]string{ebay.ConditionIDNew}, r.ConditionIDs)
		})).
		Return(&ebay.SearchResponse{
			Items: []ebay.ItemSummary{
				{ItemID: "1", Title: "CeraVe Cleanser", Price: ebay.ItemPrice{Value: "14.38", Currency: "USD"}},
				{ItemID: "2", Title: "CeraVe Cleanser", Price: ebay.ItemPrice{Value: "9.00", Currency: "EUR"}},
			},
		}, nil).Once()

	s := sources.NewEbayActiveSource(ebay.NewPaginator(searcher), sources.WithCategoryID("11450"))
	assert.Equal(t, "ebay", s.Name())

	obs, err := s.Fetch(context.Background(), sources.Query{
		Brand:       "CeraVe",
		ProductName: "Cleanser",
		Identity:    domain.CanonicalIdentity{Condition: domain.ConditionNew},
	})
	require.NoError(t, err)

	got, ok := obs.(*domain.ActiveListingSet)
	require.True(t, ok)
	assert.Equal(t, "ebay", got.Source)
	require.Len(t, got.Candidates, 1)
	assert.Equal(t, int64(1438), got.Candidates[0].ItemCents)
}

func TestEbayActiveSource_OtherConditionSearchesAll(t *testing.T) {
	t.Parallel()

	searcher := ebayMocks.NewMockSearcher(t)
	searcher.EXPECT().
		Search(mock.Anything, mock.MatchedBy(func(r ebay.SearchRequest) bool {
			return len(r.ConditionIDs) == 0
		})).
		Return(&ebay.SearchResponse{}, nil).Once()

	s := sources.NewEbayActiveSource(ebay.NewPaginator(searcher))
	obs, err := s.Fetch(context.Background(), sources.Query{
		ProductName: "Cleanser",
		Identity:    domain.CanonicalIdentity{Condition: domain.ConditionOther},
	})
	require.NoError(t, err)
	assert.Empty(t, obs.(*domain.ActiveListingSet).Candidates)
}

func TestEbayActiveSource_Error(t *testing.T) {
	t.Parallel()

	searcher := ebayMocks.NewMockSearcher(t)
	searcher.EXPECT().Search(mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()

	_, err := sources.NewEbayActiveSource(ebay.NewPaginator(searcher)).
		Fetch(context.Background(), sources.Query{ProductName: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ebay search")
}
