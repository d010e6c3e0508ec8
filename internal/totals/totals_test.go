package totals

import (
	"testing"

	"cart-sync/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name             string
		items            []model.LineItem
		discount         float64
		expectedSubtotal float64
		expectedTotal    float64
		expectedCount    int
	}{
		{
			name:             "Empty cart",
			items:            nil,
			discount:         0,
			expectedSubtotal: 0,
			expectedTotal:    0,
			expectedCount:    0,
		},
		{
			name: "Single item",
			items: []model.LineItem{
				{ID: "a", Price: 100, Quantity: 2},
			},
			discount:         0,
			expectedSubtotal: 200,
			expectedTotal:    200,
			expectedCount:    2,
		},
		{
			name: "Multiple items with discount",
			items: []model.LineItem{
				{ID: "a", Price: 100, Quantity: 2},
				{ID: "b", Price: 30, Quantity: 1},
			},
			discount:         40,
			expectedSubtotal: 230,
			expectedTotal:    190,
			expectedCount:    3,
		},
		{
			name: "Discount larger than subtotal floors total at zero",
			items: []model.LineItem{
				{ID: "a", Price: 10, Quantity: 1},
			},
			discount:         500,
			expectedSubtotal: 10,
			expectedTotal:    0,
			expectedCount:    1,
		},
		{
			name:             "Discount on empty cart",
			items:            []model.LineItem{},
			discount:         25,
			expectedSubtotal: 0,
			expectedTotal:    0,
			expectedCount:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Compute(tt.items, tt.discount)

			assert.InDelta(t, tt.expectedSubtotal, result.Subtotal, 1e-9)
			assert.InDelta(t, tt.expectedTotal, result.Total, 1e-9)
			assert.Equal(t, tt.expectedCount, result.TotalItemCount)
		})
	}
}

func TestApply(t *testing.T) {
	state := model.CartState{
		Items: []model.LineItem{
			{ID: "a", Price: 100, Quantity: 2},
		},
	}

	Apply(&state, 40)

	assert.Equal(t, 200.0, state.Subtotal)
	assert.Equal(t, 40.0, state.Discount)
	assert.Equal(t, 160.0, state.Total)
	assert.Equal(t, 2, state.TotalItemCount)
}
