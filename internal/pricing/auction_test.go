package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveAuction(t *testing.T) {
	testCases := []struct {
		name          string
		buyItNow      float64
		shipping      float64
		freeShipping  bool
		expectedStart float64
		expectedBIN   float64
		expectError   bool
	}{
		{
			name:          "Plain 60% derivation",
			buyItNow:      100.00,
			expectedStart: 60.00,
			expectedBIN:   100.00,
		},
		{
			name:          "Shipping folded in before the cut",
			buyItNow:      50.00,
			shipping:      12.99,
			freeShipping:  true,
			expectedStart: 37.79, // 60% of 62.99, not 60% of 50 plus shipping
			expectedBIN:   62.99,
		},
		{
			name:          "Shipping ignored when buyer pays it",
			buyItNow:      50.00,
			shipping:      12.99,
			freeShipping:  false,
			expectedStart: 30.00,
			expectedBIN:   50.00,
		},
		{
			name:          "Starting bid floors at $0.99",
			buyItNow:      1.00,
			expectedStart: 0.99,
			expectedBIN:   1.00,
		},
		{
			name:        "Negative buy-it-now rejected",
			buyItNow:    -10,
			expectError: true,
		},
		{
			name:        "Negative shipping rejected",
			buyItNow:    10,
			shipping:    -5,
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			plan, err := DeriveAuction(tc.buyItNow, tc.shipping, tc.freeShipping)

			if tc.expectError {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
			assert.InDelta(t, tc.expectedStart, plan.StartingPrice, 0.005)
			assert.InDelta(t, tc.expectedBIN, plan.BuyItNow, 0.005)
			assert.Equal(t, 7, plan.DurationDays)
			assert.Equal(t, FormatAuction, plan.Format)
			assert.Equal(t, tc.freeShipping, plan.FreeShipping)
		})
	}
}
