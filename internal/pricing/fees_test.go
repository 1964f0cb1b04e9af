package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeFees(t *testing.T) {
	testCases := []struct {
		name        string
		salePrice   float64
		sched       FeeSchedule
		expected    FeeBreakdown
		expectError bool
	}{
		{
			name:      "Default schedule at $100",
			salePrice: 100.00,
			sched:     DefaultFeeSchedule(),
			expected: FeeBreakdown{
				PlatformFee:  10.00,
				ProcessorFee: 3.20,
				ListingFee:   0.00,
				TotalFees:    13.20,
				NetProceeds:  86.80,
			},
		},
		{
			name:      "Listing fee included",
			salePrice: 50.00,
			sched:     FeeSchedule{PlatformRate: 0.10, ProcessorRate: 0.029, ProcessorFixed: 0.30, ListingFee: 0.35},
			expected: FeeBreakdown{
				PlatformFee:  5.00,
				ProcessorFee: 1.75,
				ListingFee:   0.35,
				TotalFees:    7.10,
				NetProceeds:  42.90,
			},
		},
		{
			name:      "Zero sale price still pays fixed fees",
			salePrice: 0,
			sched:     DefaultFeeSchedule(),
			expected: FeeBreakdown{
				ProcessorFee: 0.30,
				TotalFees:    0.30,
				NetProceeds:  -0.30,
			},
		},
		{
			name:        "Negative sale price rejected",
			salePrice:   -1,
			sched:       DefaultFeeSchedule(),
			expectError: true,
		},
		{
			name:        "Platform rate of 1 rejected",
			salePrice:   10,
			sched:       FeeSchedule{PlatformRate: 1.0},
			expectError: true,
		},
		{
			name:        "Combined rates at 100% rejected",
			salePrice:   10,
			sched:       FeeSchedule{PlatformRate: 0.60, ProcessorRate: 0.40},
			expectError: true,
		},
		{
			name:        "Negative fixed fee rejected",
			salePrice:   10,
			sched:       FeeSchedule{PlatformRate: 0.10, ProcessorFixed: -0.30},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fees, err := ComputeFees(tc.salePrice, tc.sched)

			if tc.expectError {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, fees)
			}
		})
	}
}

func TestNetProceedsProperties(t *testing.T) {
	sched := DefaultFeeSchedule()
	prices := []float64{0, 0.99, 5, 9.52, 25, 49.99, 100, 333.33, 1000}

	prevNet := -1e9
	for _, p := range prices {
		fees, err := ComputeFees(p, sched)
		assert.NoError(t, err)
		assert.LessOrEqual(t, fees.NetProceeds, p, "net proceeds can never exceed the sale price")
		assert.GreaterOrEqual(t, fees.NetProceeds, prevNet, "net proceeds must not decrease as price rises")
		prevNet = fees.NetProceeds
	}
}

func TestBreakEven(t *testing.T) {
	testCases := []struct {
		name        string
		cost        float64
		sched       FeeSchedule
		expected    float64
		expectError bool
	}{
		{
			name:     "Default schedule, $7.99 cost",
			cost:     7.99,
			sched:    DefaultFeeSchedule(),
			expected: 9.52, // (7.99 + 0.30) / (1 - 0.129)
		},
		{
			name:     "Zero cost still covers the fixed fee",
			cost:     0,
			sched:    DefaultFeeSchedule(),
			expected: 0.34,
		},
		{
			name:        "Negative cost rejected",
			cost:        -5,
			sched:       DefaultFeeSchedule(),
			expectError: true,
		},
		{
			name:        "Invalid schedule rejected",
			cost:        10,
			sched:       FeeSchedule{PlatformRate: 0.7, ProcessorRate: 0.3},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			be, err := BreakEven(tc.cost, tc.sched)

			if tc.expectError {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
				assert.InDelta(t, tc.expected, be, 0.005)
			}
		})
	}
}

// Selling exactly at break-even should net out to zero profit, within a cent
// of rounding slack.
func TestBreakEvenZeroProfit(t *testing.T) {
	sched := DefaultFeeSchedule()
	costs := []float64{0.50, 7.99, 19.99, 42.00, 100.00, 1234.56}

	for _, cost := range costs {
		be, err := BreakEven(cost, sched)
		assert.NoError(t, err)

		ledger, err := ProfitLedger(cost, be, sched)
		assert.NoError(t, err)
		assert.InDelta(t, 0, ledger.NetProfit, 0.01, "cost %.2f", cost)
	}
}
