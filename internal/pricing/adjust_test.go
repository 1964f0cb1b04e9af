package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestAdjustment(t *testing.T) {
	rec := Recommendation{
		Conservative: 33.96,
		Competitive:  39.95,
		Aggressive:   49.94,
		BreakEven:    9.52,
	}
	cfg := DefaultAdjustConfig()

	testCases := []struct {
		name          string
		currentPrice  float64
		daysListed    int
		expectedPrice float64
		noChange      bool
	}{
		{
			name:         "Fresh listing left alone",
			currentPrice: 60.00,
			daysListed:   10,
			noChange:     true,
		},
		{
			name:         "One day short of the threshold",
			currentPrice: 60.00,
			daysListed:   29,
			noChange:     true,
		},
		{
			name:          "Stale and above competitive steps to competitive",
			currentPrice:  60.00,
			daysListed:    31,
			expectedPrice: 39.95,
		},
		{
			name:          "Stale at competitive steps to conservative",
			currentPrice:  39.95,
			daysListed:    31,
			expectedPrice: 33.96,
		},
		{
			name:          "Deep stale jumps straight to conservative",
			currentPrice:  60.00,
			daysListed:    65,
			expectedPrice: 33.96,
		},
		{
			name:         "Already at conservative left alone",
			currentPrice: 33.96,
			daysListed:   45,
			noChange:     true,
		},
		{
			name:         "Below conservative left alone",
			currentPrice: 20.00,
			daysListed:   90,
			noChange:     true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			adj := SuggestAdjustment(tc.currentPrice, tc.daysListed, rec, cfg)

			if tc.noChange {
				assert.Nil(t, adj)
				return
			}
			assert.NotNil(t, adj)
			assert.InDelta(t, tc.expectedPrice, adj.NewPrice, 0.005)
			assert.False(t, adj.FlooredAtBreakEven)
			assert.Less(t, adj.NewPrice, tc.currentPrice)
		})
	}
}

func TestSuggestAdjustmentBreakEvenFloor(t *testing.T) {
	// A recovered or hand-edited recommendation can carry tiers below
	// break-even; the advisor clamps the step back up to the floor.
	rec := Recommendation{
		Conservative: 5.00,
		Competitive:  8.00,
		Aggressive:   12.00,
		BreakEven:    9.00,
	}
	cfg := DefaultAdjustConfig()

	adj := SuggestAdjustment(12.00, 31, rec, cfg)
	assert.NotNil(t, adj)
	assert.Equal(t, 9.00, adj.NewPrice)
	assert.True(t, adj.FlooredAtBreakEven)

	// Clamping to the floor would raise the price: no change instead.
	assert.Nil(t, SuggestAdjustment(8.50, 31, rec, cfg))
}

func TestSuggestAdjustmentSuccessiveCalls(t *testing.T) {
	rec := Recommendation{
		Conservative: 30.00,
		Competitive:  40.00,
		Aggressive:   50.00,
		BreakEven:    10.00,
	}
	cfg := DefaultAdjustConfig()

	// First pass steps 50 down to competitive.
	first := SuggestAdjustment(50.00, 35, rec, cfg)
	assert.NotNil(t, first)
	assert.Equal(t, 40.00, first.NewPrice)

	// Next pass from the adjusted price steps to conservative.
	second := SuggestAdjustment(first.NewPrice, 45, rec, cfg)
	assert.NotNil(t, second)
	assert.Equal(t, 30.00, second.NewPrice)

	// After that the listing sits at conservative and is left alone.
	assert.Nil(t, SuggestAdjustment(second.NewPrice, 55, rec, cfg))
}
