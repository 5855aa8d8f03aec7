package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_Add_MergesSameKey(t *testing.T) {
	cart := NewCart("c1")

	cart.Add(CartLine{ProductID: 1, Size: "M", Color: "黑色", Qty: 2})
	cart.Add(CartLine{ProductID: 1, Size: "M", Color: "黑色", Qty: 3})

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, int64(5), cart.Lines[0].Qty)
}

func TestCart_Add_DistinctVariantsStaySeparate(t *testing.T) {
	cart := NewCart("c1")

	cart.Add(CartLine{ProductID: 1, Size: "M", Color: "黑色", Qty: 1})
	cart.Add(CartLine{ProductID: 1, Size: "L", Color: "黑色", Qty: 1})
	cart.Add(CartLine{ProductID: 1, Size: "M", Color: "红色", Qty: 1})

	assert.Len(t, cart.Lines, 3)
}

func TestCart_Add_CoercesNonPositiveQty(t *testing.T) {
	cart := NewCart("c1")

	cart.Add(CartLine{ProductID: 1, Size: "S", Color: "蓝色", Qty: 0})
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, int64(1), cart.Lines[0].Qty)

	cart.Add(CartLine{ProductID: 2, Size: "S", Color: "蓝色", Qty: -5})
	require.Len(t, cart.Lines, 2)
	assert.Equal(t, int64(1), cart.Lines[1].Qty)
}

func TestCart_Add_PreservesInsertionOrder(t *testing.T) {
	cart := NewCart("c1")

	cart.Add(CartLine{ProductID: 3, Size: "S", Color: "黑色", Qty: 1})
	cart.Add(CartLine{ProductID: 1, Size: "S", Color: "黑色", Qty: 1})
	cart.Add(CartLine{ProductID: 2, Size: "S", Color: "黑色", Qty: 1})
	// Merging into an existing line must not move it.
	cart.Add(CartLine{ProductID: 3, Size: "S", Color: "黑色", Qty: 1})

	got := make([]int64, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		got = append(got, l.ProductID)
	}
	assert.Equal(t, []int64{3, 1, 2}, got)
}

func TestCart_UpdateQty(t *testing.T) {
	cart := NewCart("c1")
	cart.Add(CartLine{ProductID: 1, Size: "M", Color: "黑色", Qty: 2})

	cart.UpdateQty(1, "M", "黑色", 7)
	assert.Equal(t, int64(7), cart.Lines[0].Qty)

	cart.UpdateQty(1, "M", "黑色", 0)
	assert.Equal(t, int64(1), cart.Lines[0].Qty, "qty below 1 is coerced to 1")
}

func TestCart_UpdateQty_AbsentLineIsNoop(t *testing.T) {
	cart := NewCart("c1")
	cart.Add(CartLine{ProductID: 1, Size: "M", Color: "黑色", Qty: 2})

	cart.UpdateQty(99, "M", "黑色", 5)
	cart.UpdateQty(1, "XL", "黑色", 5)

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, int64(2), cart.Lines[0].Qty)
}

func TestCart_Remove(t *testing.T) {
	cart := NewCart("c1")
	cart.Add(CartLine{ProductID: 1, Size: "M", Color: "黑色", Qty: 1})
	cart.Add(CartLine{ProductID: 2, Size: "M", Color: "黑色", Qty: 1})

	cart.Remove(1, "M", "黑色")

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, int64(2), cart.Lines[0].ProductID)

	// Removing a missing key must not touch the rest.
	cart.Remove(1, "M", "黑色")
	assert.Len(t, cart.Lines, 1)
}

func TestCart_Clear(t *testing.T) {
	cart := NewCart("c1")
	cart.Add(CartLine{ProductID: 1, Size: "M", Color: "黑色", Qty: 1})
	cart.Add(CartLine{ProductID: 2, Size: "M", Color: "黑色", Qty: 1})

	cart.Clear()

	assert.Empty(t, cart.Lines)
}

func TestCart_Total(t *testing.T) {
	prices := map[int64]int64{1: 100, 2: 250}
	lookup := func(id int64) (int64, bool) {
		p, ok := prices[id]
		return p, ok
	}

	cart := NewCart("c1")
	cart.Add(CartLine{ProductID: 1, Size: "M", Color: "黑色", Qty: 2})
	cart.Add(CartLine{ProductID: 2, Size: "M", Color: "黑色", Qty: 1})

	assert.Equal(t, int64(450), cart.Total(lookup))
}

func TestCart_Total_UnresolvableProductContributesZero(t *testing.T) {
	lookup := func(id int64) (int64, bool) {
		if id == 1 {
			return 100, true
		}
		return 0, false
	}

	cart := NewCart("c1")
	cart.Add(CartLine{ProductID: 1, Size: "M", Color: "黑色", Qty: 1})
	cart.Add(CartLine{ProductID: 42, Size: "M", Color: "黑色", Qty: 3})

	assert.Equal(t, int64(100), cart.Total(lookup))
}

func TestCart_Clone_IsIndependent(t *testing.T) {
	cart := NewCart("c1")
	cart.Add(CartLine{ProductID: 1, Size: "M", Color: "黑色", Qty: 1})

	clone := cart.Clone()
	clone.Add(CartLine{ProductID: 2, Size: "M", Color: "黑色", Qty: 1})
	clone.Lines[0].Qty = 99

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, int64(1), cart.Lines[0].Qty)
}
