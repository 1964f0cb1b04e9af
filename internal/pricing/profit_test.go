package pricing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfitLedger(t *testing.T) {
	testCases := []struct {
		name        string
		cost        float64
		salePrice   float64
		expected    Ledger
		expectError bool
	}{
		{
			name:      "Typical clothing flip",
			cost:      7.99,
			salePrice: 39.95,
			expected: Ledger{
				SalePrice: 39.95,
				Fees: FeeBreakdown{
					PlatformFee:  4.00,
					ProcessorFee: 1.46,
					TotalFees:    5.46,
					NetProceeds:  34.49,
				},
				NetProceeds: 34.49,
				NetProfit:   26.50,
				ROI:         331.66,
				ROIDefined:  true,
			},
		},
		{
			name:      "Selling at a loss",
			cost:      20.00,
			salePrice: 10.00,
			expected: Ledger{
				SalePrice: 10.00,
				Fees: FeeBreakdown{
					PlatformFee:  1.00,
					ProcessorFee: 0.59,
					TotalFees:    1.59,
					NetProceeds:  8.41,
				},
				NetProceeds: 8.41,
				NetProfit:   -11.59,
				ROI:         -57.95,
				ROIDefined:  true,
			},
		},
		{
			name:      "Zero-cost item has undefined ROI",
			cost:      0,
			salePrice: 10.00,
			expected: Ledger{
				SalePrice: 10.00,
				Fees: FeeBreakdown{
					PlatformFee:  1.00,
					ProcessorFee: 0.59,
					TotalFees:    1.59,
					NetProceeds:  8.41,
				},
				NetProceeds: 8.41,
				NetProfit:   8.41,
				ROI:         0,
				ROIDefined:  false,
			},
		},
		{
			name:        "Negative cost rejected",
			cost:        -1,
			salePrice:   10,
			expectError: true,
		},
		{
			name:        "Negative sale price rejected",
			cost:        5,
			salePrice:   -10,
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ledger, err := ProfitLedger(tc.cost, tc.salePrice, DefaultFeeSchedule())

			if tc.expectError {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, ledger)
			}
		})
	}
}

func TestLedgerJSONRendersUndefinedROIAsNull(t *testing.T) {
	ledger, err := ProfitLedger(0, 10, DefaultFeeSchedule())
	assert.NoError(t, err)
	assert.False(t, ledger.ROIDefined)

	data, err := json.Marshal(ledger)
	assert.NoError(t, err)

	var decoded map[string]any
	assert.NoError(t, json.Unmarshal(data, &decoded))
	roi, present := decoded["roi"]
	assert.True(t, present)
	assert.Nil(t, roi)

	// A defined ROI serializes as a number.
	ledger, err = ProfitLedger(5, 10, DefaultFeeSchedule())
	assert.NoError(t, err)
	data, err = json.Marshal(ledger)
	assert.NoError(t, err)
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.InDelta(t, 68.20, decoded["roi"].(float64), 0.005)
}
