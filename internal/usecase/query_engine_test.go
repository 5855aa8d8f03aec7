package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/DRSN-tech/shop-backend/internal/domain"
	"github.com/DRSN-tech/shop-backend/pkg/e"
)

func testCatalog() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "商品 1", Price: 500, Rating: 4.0, Category: domain.CategoryPhone},
		{ID: 2, Name: "商品 2", Price: 200, Rating: 4.5, Category: domain.CategoryComputer},
		{ID: 3, Name: "商品 3", Price: 800, Rating: 3.0, Category: domain.CategoryTablet},
		{ID: 4, Name: "商品 4", Price: 200, Rating: 5.0, Category: domain.CategoryPhone},
		{ID: 5, Name: "商品 5", Price: 100, Rating: 4.5, Category: domain.CategoryComputer},
	}
}

func newTestEngine() *QueryEngine {
	return NewQueryEngine(language.Chinese)
}

func ids(items []domain.Product) []int64 {
	out := make([]int64, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}

func TestQueryEngine_Apply_DefaultSortIsPriceAsc(t *testing.T) {
	qe := newTestEngine()

	res, err := qe.Apply(testCatalog(), &QueryReq{Page: 1, PageSize: 10})
	require.NoError(t, err)

	assert.Equal(t, []int64{5, 2, 4, 1, 3}, ids(res.Items))
}

func TestQueryEngine_Apply_SortStabilityOnEqualKeys(t *testing.T) {
	qe := newTestEngine()

	// Products 2 and 4 share price 200: the one earlier in the snapshot wins.
	res, err := qe.Apply(testCatalog(), &QueryReq{Sort: SortPriceAsc, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 2, 4, 1, 3}, ids(res.Items))

	// Products 2 and 5 share rating 4.5.
	res, err = qe.Apply(testCatalog(), &QueryReq{Sort: SortRatingDesc, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 2, 5, 1, 3}, ids(res.Items))
}

func TestQueryEngine_Apply_SortPriceDesc(t *testing.T) {
	qe := newTestEngine()

	res, err := qe.Apply(testCatalog(), &QueryReq{Sort: SortPriceDesc, Page: 1, PageSize: 10})
	require.NoError(t, err)

	assert.Equal(t, []int64{3, 1, 4, 2, 5}, ids(res.Items))
}

func TestQueryEngine_Apply_SortNameAsc(t *testing.T) {
	qe := newTestEngine()

	products := []domain.Product{
		{ID: 1, Name: "商品 3", Price: 1},
		{ID: 2, Name: "商品 1", Price: 2},
		{ID: 3, Name: "商品 2", Price: 3},
	}

	res, err := qe.Apply(products, &QueryReq{Sort: SortNameAsc, Page: 1, PageSize: 10})
	require.NoError(t, err)

	assert.Equal(t, []int64{2, 3, 1}, ids(res.Items))
}

func TestQueryEngine_Apply_InvalidSortKey(t *testing.T) {
	qe := newTestEngine()

	_, err := qe.Apply(testCatalog(), &QueryReq{Sort: "cheapest", Page: 1, PageSize: 10})
	assert.ErrorIs(t, err, e.ErrInvalidSortKey)
}

func TestQueryEngine_Apply_CategoryFilter(t *testing.T) {
	qe := newTestEngine()

	res, err := qe.Apply(testCatalog(), &QueryReq{
		Page:     1,
		PageSize: 10,
		Filters:  QueryFilters{Categories: []domain.Category{domain.CategoryPhone}},
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{4, 1}, ids(res.Items))
}

func TestQueryEngine_Apply_MultipleCategories(t *testing.T) {
	qe := newTestEngine()

	res, err := qe.Apply(testCatalog(), &QueryReq{
		Page:     1,
		PageSize: 10,
		Filters: QueryFilters{
			Categories: []domain.Category{domain.CategoryPhone, domain.CategoryTablet},
		},
	})
	require.NoError(t, err)

	assert.Len(t, res.Items, 3)
}

func TestQueryEngine_Apply_PriceRangeBoundsInclusive(t *testing.T) {
	qe := newTestEngine()

	res, err := qe.Apply(testCatalog(), &QueryReq{
		Page:     1,
		PageSize: 10,
		Filters:  QueryFilters{PriceRange: &PriceRange{Min: 200, Max: 500}},
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{2, 4, 1}, ids(res.Items))
}

func TestQueryEngine_Apply_InvertedPriceRangeNormalized(t *testing.T) {
	qe := newTestEngine()

	inverted, err := qe.Apply(testCatalog(), &QueryReq{
		Page:     1,
		PageSize: 10,
		Filters:  QueryFilters{PriceRange: &PriceRange{Min: 500, Max: 200}},
	})
	require.NoError(t, err)

	straight, err := qe.Apply(testCatalog(), &QueryReq{
		Page:     1,
		PageSize: 10,
		Filters:  QueryFilters{PriceRange: &PriceRange{Min: 200, Max: 500}},
	})
	require.NoError(t, err)

	assert.Equal(t, ids(straight.Items), ids(inverted.Items))
}

func TestQueryEngine_Apply_FilterIsIdempotent(t *testing.T) {
	qe := newTestEngine()
	req := &QueryReq{
		Page:     1,
		PageSize: 10,
		Filters: QueryFilters{
			Categories: []domain.Category{domain.CategoryComputer},
			PriceRange: &PriceRange{Min: 0, Max: 1000},
		},
	}

	first, err := qe.Apply(testCatalog(), req)
	require.NoError(t, err)

	second, err := qe.Apply(first.Items, req)
	require.NoError(t, err)

	assert.Equal(t, ids(first.Items), ids(second.Items))
}

func TestQueryEngine_Apply_Pagination(t *testing.T) {
	qe := newTestEngine()

	res, err := qe.Apply(testCatalog(), &QueryReq{Page: 2, PageSize: 2})
	require.NoError(t, err)

	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, 2, res.CurrentPage)
	assert.Len(t, res.Items, 2)
}

func TestQueryEngine_Apply_PageClampedToLast(t *testing.T) {
	qe := newTestEngine()

	res, err := qe.Apply(testCatalog(), &QueryReq{Page: 999, PageSize: 2})
	require.NoError(t, err)

	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, 3, res.CurrentPage)
	assert.Len(t, res.Items, 1)
}

func TestQueryEngine_Apply_PageClampedToFirst(t *testing.T) {
	qe := newTestEngine()

	res, err := qe.Apply(testCatalog(), &QueryReq{Page: -3, PageSize: 2})
	require.NoError(t, err)

	assert.Equal(t, 1, res.CurrentPage)
	assert.Len(t, res.Items, 2)
}

func TestQueryEngine_Apply_EmptyResultIsOneEmptyPage(t *testing.T) {
	qe := newTestEngine()

	res, err := qe.Apply(testCatalog(), &QueryReq{
		Page:     1,
		PageSize: 10,
		Filters:  QueryFilters{PriceRange: &PriceRange{Min: 100000, Max: 200000}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.TotalPages)
	assert.Equal(t, 1, res.CurrentPage)
	assert.Empty(t, res.Items)
}

func TestQueryEngine_Apply_InvalidPageSize(t *testing.T) {
	qe := newTestEngine()

	_, err := qe.Apply(testCatalog(), &QueryReq{Page: 1, PageSize: 0})
	assert.ErrorIs(t, err, e.ErrInvalidPageSize)

	_, err = qe.Apply(testCatalog(), &QueryReq{Page: 1, PageSize: -1})
	assert.ErrorIs(t, err, e.ErrInvalidPageSize)
}

func TestQueryEngine_Apply_DoesNotMutateSnapshot(t *testing.T) {
	qe := newTestEngine()
	snapshot := testCatalog()

	_, err := qe.Apply(snapshot, &QueryReq{Sort: SortPriceDesc, Page: 1, PageSize: 2})
	require.NoError(t, err)

	// filter() copies before sorting, so the caller's slice keeps its order.
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(snapshot))
}
