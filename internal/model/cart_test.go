package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartState_FindProduct(t *testing.T) {
	state := CartState{
		Items: []LineItem{
			{ID: "a", ProductID: "p1", Variant: "M"},
			{ID: "b", ProductID: "p1", Variant: "L"},
			{ID: "c", ProductID: "p2"},
		},
	}

	assert.Equal(t, 0, state.FindProduct("p1", "M"))
	assert.Equal(t, 1, state.FindProduct("p1", "L"))
	assert.Equal(t, 2, state.FindProduct("p2", ""))
	assert.Equal(t, -1, state.FindProduct("p1", "XL"))
	assert.Equal(t, -1, state.FindProduct("p3", ""))
}

func TestCartState_Clone_IsIndependent(t *testing.T) {
	original := CartState{
		Items: []LineItem{
			{ID: "a", ProductID: "p1", Quantity: 1, Price: 10},
		},
		Coupon: &Coupon{Code: "SAVE20", DiscountType: DiscountTypePercentage, DiscountValue: 20},
	}

	clone := original.Clone()
	clone.Items[0].Quantity = 99
	clone.Coupon.Code = "CHANGED"

	assert.Equal(t, 1, original.Items[0].Quantity)
	assert.Equal(t, "SAVE20", original.Coupon.Code)
}

func TestEmptyCartState(t *testing.T) {
	state := EmptyCartState()

	require.NotNil(t, state.Items)
	assert.Empty(t, state.Items)
	assert.Equal(t, 0.0, state.Subtotal)
	assert.Equal(t, 0.0, state.Discount)
	assert.Equal(t, 0.0, state.Total)
	assert.Equal(t, 0, state.TotalItemCount)
	assert.Nil(t, state.Coupon)
}
