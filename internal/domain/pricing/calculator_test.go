// internal/domain/pricing/calculator_test.go
package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name         string
		items        []LineItem
		wantSubtotal int64
		wantTax      int64
		wantTotal    int64
	}{
		{
			name:         "empty cart",
			items:        nil,
			wantSubtotal: 0,
			wantTax:      0,
			wantTotal:    0,
		},
		{
			name:         "single line",
			items:        []LineItem{{UnitPrice: 5000, Quantity: 2}},
			wantSubtotal: 10000,
			wantTax:      1000,
			wantTotal:    11000,
		},
		{
			name: "multiple lines",
			items: []LineItem{
				{UnitPrice: 129900, Quantity: 1},
				{UnitPrice: 49900, Quantity: 3},
				{UnitPrice: 999, Quantity: 2},
			},
			wantSubtotal: 281598,
			wantTax:      28160,
			wantTotal:    309758,
		},
		{
			name:         "tax rounds half-up",
			items:        []LineItem{{UnitPrice: 5, Quantity: 1}},
			wantSubtotal: 5,
			wantTax:      1, // 0.5 rounds up
			wantTotal:    6,
		},
		{
			name:         "tax rounds down below half",
			items:        []LineItem{{UnitPrice: 4, Quantity: 1}},
			wantSubtotal: 4,
			wantTax:      0,
			wantTotal:    4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := Calculate(tt.items)
			assert.Equal(t, tt.wantSubtotal, totals.Subtotal)
			assert.Equal(t, tt.wantTax, totals.Tax)
			assert.Equal(t, tt.wantTotal, totals.Total)
			assert.Equal(t, totals.Subtotal+totals.Tax, totals.Total)
		})
	}
}

func TestCalculateOrderIndependent(t *testing.T) {
	forward := []LineItem{
		{UnitPrice: 19999, Quantity: 1},
		{UnitPrice: 2500, Quantity: 4},
		{UnitPrice: 75, Quantity: 13},
	}
	reversed := []LineItem{forward[2], forward[1], forward[0]}

	assert.Equal(t, Calculate(forward), Calculate(reversed))
}
