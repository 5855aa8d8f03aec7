package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/shop-backend/internal/domain"
	"github.com/DRSN-tech/shop-backend/internal/repository/memory"
	"github.com/DRSN-tech/shop-backend/internal/usecase"
	"github.com/DRSN-tech/shop-backend/pkg/logger"
)

func newCartUC() (*usecase.CartUseCase, *memory.CartRepo) {
	catalogRepo := memory.NewCatalogRepo()
	catalogRepo.Replace([]domain.Product{
		{ID: 1, Name: "商品 1", Price: 100, Stock: 10},
		{ID: 2, Name: "商品 2", Price: 250, Stock: 10},
	})

	cartRepo := memory.NewCartRepo()
	return usecase.NewCartUC(cartRepo, catalogRepo, logger.NewSlogLogger()), cartRepo
}

func TestCartUC_GetCart_MissingCartIsEmpty(t *testing.T) {
	uc, _ := newCartUC()

	view, err := uc.GetCart(context.Background(), "nope")
	require.NoError(t, err)

	assert.Equal(t, "nope", view.CartID)
	assert.Empty(t, view.Lines)
	assert.Zero(t, view.Total)
}

func TestCartUC_AddLine(t *testing.T) {
	uc, _ := newCartUC()

	view, err := uc.AddLine(context.Background(), &usecase.AddLineReq{
		CartID: "c1", ProductID: 1, Size: "M", Color: "黑色", Qty: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(200), view.Total)

	// Same key merges, different key appends.
	view, err = uc.AddLine(context.Background(), &usecase.AddLineReq{
		CartID: "c1", ProductID: 1, Size: "M", Color: "黑色", Qty: 1,
	})
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, int64(3), view.Lines[0].Qty)

	view, err = uc.AddLine(context.Background(), &usecase.AddLineReq{
		CartID: "c1", ProductID: 2, Size: "L", Color: "红色", Qty: 1,
	})
	require.NoError(t, err)
	require.Len(t, view.Lines, 2)
	assert.Equal(t, int64(550), view.Total)
}

func TestCartUC_AddLine_UnknownProductStillAdds(t *testing.T) {
	uc, _ := newCartUC()

	// The catalog may lag behind the UI; such lines simply price at 0.
	view, err := uc.AddLine(context.Background(), &usecase.AddLineReq{
		CartID: "c1", ProductID: 99, Size: "M", Color: "黑色", Qty: 2,
	})
	require.NoError(t, err)

	require.Len(t, view.Lines, 1)
	assert.Zero(t, view.Total)
}

func TestCartUC_UpdateQty(t *testing.T) {
	uc, _ := newCartUC()

	_, err := uc.AddLine(context.Background(), &usecase.AddLineReq{
		CartID: "c1", ProductID: 1, Size: "M", Color: "黑色", Qty: 2,
	})
	require.NoError(t, err)

	view, err := uc.UpdateQty(context.Background(), &usecase.UpdateQtyReq{
		CartID: "c1", ProductID: 1, Size: "M", Color: "黑色", Qty: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), view.Lines[0].Qty)
	assert.Equal(t, int64(500), view.Total)
}

func TestCartUC_UpdateQty_AbsentLineIsNoop(t *testing.T) {
	uc, _ := newCartUC()

	_, err := uc.AddLine(context.Background(), &usecase.AddLineReq{
		CartID: "c1", ProductID: 1, Size: "M", Color: "黑色", Qty: 2,
	})
	require.NoError(t, err)

	view, err := uc.UpdateQty(context.Background(), &usecase.UpdateQtyReq{
		CartID: "c1", ProductID: 1, Size: "XL", Color: "黑色", Qty: 5,
	})
	require.NoError(t, err)

	require.Len(t, view.Lines, 1)
	assert.Equal(t, int64(2), view.Lines[0].Qty)
}

func TestCartUC_RemoveLine(t *testing.T) {
	uc, _ := newCartUC()

	_, err := uc.AddLine(context.Background(), &usecase.AddLineReq{
		CartID: "c1", ProductID: 1, Size: "M", Color: "黑色", Qty: 1,
	})
	require.NoError(t, err)
	_, err = uc.AddLine(context.Background(), &usecase.AddLineReq{
		CartID: "c1", ProductID: 2, Size: "L", Color: "红色", Qty: 1,
	})
	require.NoError(t, err)

	view, err := uc.RemoveLine(context.Background(), &usecase.RemoveLineReq{
		CartID: "c1", ProductID: 1, Size: "M", Color: "黑色",
	})
	require.NoError(t, err)

	require.Len(t, view.Lines, 1)
	assert.Equal(t, int64(2), view.Lines[0].ProductID)
	assert.Equal(t, int64(250), view.Total)
}

func TestCartUC_ClearCart(t *testing.T) {
	uc, cartRepo := newCartUC()

	_, err := uc.AddLine(context.Background(), &usecase.AddLineReq{
		CartID: "c1", ProductID: 1, Size: "M", Color: "黑色", Qty: 1,
	})
	require.NoError(t, err)

	require.NoError(t, uc.ClearCart(context.Background(), "c1"))

	cart, err := cartRepo.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.Nil(t, cart)
}
