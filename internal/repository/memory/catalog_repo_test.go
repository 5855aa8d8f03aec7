package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/shop-backend/internal/domain"
	"github.com/DRSN-tech/shop-backend/pkg/e"
)

func TestCatalogRepo_Replace(t *testing.T) {
	repo := NewCatalogRepo()

	repo.Replace([]domain.Product{
		{ID: 2, Name: "商品 2"},
		{ID: 1, Name: "商品 1"},
	})

	all := repo.GetAll()
	require.Len(t, all, 2)
	// Source order is preserved, not re-sorted by id.
	assert.Equal(t, int64(2), all[0].ID)
	assert.Equal(t, int64(1), all[1].ID)
}

func TestCatalogRepo_Replace_DuplicateIDFirstWins(t *testing.T) {
	repo := NewCatalogRepo()

	repo.Replace([]domain.Product{
		{ID: 1, Name: "first"},
		{ID: 1, Name: "second"},
	})

	all := repo.GetAll()
	require.Len(t, all, 1)
	assert.Equal(t, "first", all[0].Name)
}

func TestCatalogRepo_GetAll_SnapshotIsolation(t *testing.T) {
	repo := NewCatalogRepo()
	repo.Replace([]domain.Product{
		{ID: 1, Name: "商品 1", Colors: []string{"黑色"}, Stock: 5},
	})

	snapshot := repo.GetAll()
	snapshot[0].Stock = 0
	snapshot[0].Colors[0] = "mutated"

	stored, ok := repo.GetByID(1)
	require.True(t, ok)
	assert.Equal(t, int64(5), stored.Stock)
	assert.Equal(t, "黑色", stored.Colors[0])
}

func TestCatalogRepo_GetByID(t *testing.T) {
	repo := NewCatalogRepo()
	repo.Replace([]domain.Product{{ID: 1, Name: "商品 1"}})

	_, ok := repo.GetByID(42)
	assert.False(t, ok)

	p, ok := repo.GetByID(1)
	require.True(t, ok)

	p.Name = "mutated"
	stored, _ := repo.GetByID(1)
	assert.Equal(t, "商品 1", stored.Name)
}

func TestCatalogRepo_DecrementStock(t *testing.T) {
	repo := NewCatalogRepo()
	repo.Replace([]domain.Product{
		{ID: 1, Stock: 10},
		{ID: 2, Stock: 3},
	})

	err := repo.DecrementStock(map[int64]int64{1: 4, 2: 3})
	require.NoError(t, err)

	p1, _ := repo.GetByID(1)
	p2, _ := repo.GetByID(2)
	assert.Equal(t, int64(6), p1.Stock)
	assert.Zero(t, p2.Stock)
}

func TestCatalogRepo_DecrementStock_AllOrNothing(t *testing.T) {
	repo := NewCatalogRepo()
	repo.Replace([]domain.Product{
		{ID: 1, Stock: 10},
		{ID: 2, Stock: 1},
	})

	err := repo.DecrementStock(map[int64]int64{1: 4, 2: 5})
	assert.ErrorIs(t, err, e.ErrInsufficientStock)

	// First product must not have been touched either.
	p1, _ := repo.GetByID(1)
	assert.Equal(t, int64(10), p1.Stock)
}

func TestCatalogRepo_DecrementStock_UnknownProduct(t *testing.T) {
	repo := NewCatalogRepo()
	repo.Replace([]domain.Product{{ID: 1, Stock: 10}})

	err := repo.DecrementStock(map[int64]int64{99: 1})
	assert.ErrorIs(t, err, e.ErrInsufficientStock)
}

func TestCatalogRepo_DecrementStock_NegativeQty(t *testing.T) {
	repo := NewCatalogRepo()
	repo.Replace([]domain.Product{{ID: 1, Stock: 10}})

	err := repo.DecrementStock(map[int64]int64{1: -1})
	assert.Error(t, err)
}

func TestCatalogRepo_DecrementStock_ConcurrentNeverNegative(t *testing.T) {
	repo := NewCatalogRepo()
	repo.Replace([]domain.Product{{ID: 1, Stock: 50}})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Most of these must fail: only 50 units exist.
			_ = repo.DecrementStock(map[int64]int64{1: 1})
		}()
	}
	wg.Wait()

	p, _ := repo.GetByID(1)
	assert.GreaterOrEqual(t, p.Stock, int64(0))
	assert.Equal(t, int64(0), p.Stock, "exactly 50 decrements of 1 must have succeeded")
}
