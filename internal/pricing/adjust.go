package pricing

// AdjustConfig tunes the stale-listing advisor.
type AdjustConfig struct {
	// StaleAfterDays is how long a listing sits before any adjustment is
	// recommended.
	StaleAfterDays int `mapstructure:"stale_after_days"`
	// DeepStaleAfterDays is the age at which the advisor skips the
	// competitive step and goes straight to the conservative tier.
	DeepStaleAfterDays int `mapstructure:"deep_stale_after_days"`
}

// DefaultAdjustConfig returns the 30/60 day thresholds.
func DefaultAdjustConfig() AdjustConfig {
	return AdjustConfig{StaleAfterDays: 30, DeepStaleAfterDays: 60}
}

// Adjustment is a recommended price change for a stale listing.
type Adjustment struct {
	NewPrice float64 `json:"new_price"`
	// FlooredAtBreakEven is set when the stepped-down target had to be
	// raised back up to the break-even floor.
	FlooredAtBreakEven bool `json:"floored_at_break_even"`
}

// SuggestAdjustment recommends a revised price for an unsold listing, or nil
// when no change is warranted.
//
// A listing younger than the stale threshold, or already priced at or below
// the conservative tier, is left alone. A stale listing above the competitive
// tier steps down to competitive; one at or below it steps down to
// conservative, as does anything past the deep-stale threshold. The result
// never goes below the recommendation's break-even price.
func SuggestAdjustment(currentPrice float64, daysListed int, rec Recommendation, cfg AdjustConfig) *Adjustment {
	if cfg.StaleAfterDays <= 0 {
		cfg.StaleAfterDays = 30
	}
	if cfg.DeepStaleAfterDays <= cfg.StaleAfterDays {
		cfg.DeepStaleAfterDays = cfg.StaleAfterDays * 2
	}

	if daysListed < cfg.StaleAfterDays || currentPrice <= rec.Conservative {
		return nil
	}

	target := rec.Competitive
	if daysListed >= cfg.DeepStaleAfterDays || currentPrice <= rec.Competitive {
		target = rec.Conservative
	}

	floored := false
	if target < rec.BreakEven {
		target = rec.BreakEven
		floored = true
	}
	if target >= currentPrice {
		return nil
	}

	return &Adjustment{
		NewPrice:           RoundCents(target),
		FlooredAtBreakEven: floored,
	}
}
