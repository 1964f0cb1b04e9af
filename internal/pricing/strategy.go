package pricing

import (
	"fmt"
	"strings"
)

// Condition is the categorical quality grade of a secondhand item.
type Condition string

const (
	ConditionNew     Condition = "New"
	ConditionLikeNew Condition = "Like-New"
	ConditionGood    Condition = "Good"
	ConditionFair    Condition = "Fair"
	ConditionPoor    Condition = "Poor"
)

// Item carries the attributes the engine needs to price an inventory item.
// It is a value copied out of whatever record the caller stores.
type Item struct {
	SKU       string
	Category  string
	Condition Condition
	Cost      float64
}

// MultiplierRange is the cost-multiplier band applied to a category when no
// market signal is available.
type MultiplierRange struct {
	Low  float64 `json:"low" mapstructure:"low"`
	High float64 `json:"high" mapstructure:"high"`
}

// Mid returns the center of the band, used as the anchor multiplier.
func (r MultiplierRange) Mid() float64 {
	return (r.Low + r.High) / 2
}

// MultiplierTable maps lower-cased category names to multiplier bands. It is
// configuration data, not logic: new categories are added as rows, not as
// branches in the engine.
type MultiplierTable map[string]MultiplierRange

// DefaultFallbackRange applies to categories absent from the table.
var DefaultFallbackRange = MultiplierRange{Low: 2, High: 3}

// DefaultMultiplierTable returns the standard category bands. Clothing-type
// categories carry an elevated 4x-6x band; thrifted clothing resells well
// above cost, and underpricing it is the most common beginner mistake.
func DefaultMultiplierTable() MultiplierTable {
	return MultiplierTable{
		"clothing":          {Low: 4, High: 6},
		"electronics":       {Low: 2, High: 4},
		"home & garden":     {Low: 3, High: 5},
		"sports & outdoors": {Low: 3.5, High: 6},
		"collectibles":      {Low: 4, High: 8},
	}
}

// Lookup resolves a category to its band, falling back to a substring match
// in either direction ("mens clothing" hits "clothing") and finally to
// DefaultFallbackRange.
func (t MultiplierTable) Lookup(category string) MultiplierRange {
	key := strings.ToLower(strings.TrimSpace(category))
	if key == "" {
		return DefaultFallbackRange
	}
	if r, ok := t[key]; ok {
		return r
	}
	for name, r := range t {
		if strings.Contains(key, name) || strings.Contains(name, key) {
			return r
		}
	}
	return DefaultFallbackRange
}

// TierFactors scale the blended base value into the three candidate prices.
type TierFactors struct {
	Conservative float64 `mapstructure:"conservative"`
	Competitive  float64 `mapstructure:"competitive"`
	Aggressive   float64 `mapstructure:"aggressive"`
}

// StrategyConfig collects the tunable knobs of the pricing strategy.
type StrategyConfig struct {
	Tiers              TierFactors
	ConditionDiscounts map[Condition]float64
	// FullTrustObservations is the comparable count at which the blend
	// weight on the market median reaches 1.
	FullTrustObservations int
}

// DefaultStrategyConfig returns the documented defaults: 0.85/1.00/1.25 tier
// factors, a 10% discount for Fair and 20% for Poor condition, and full trust
// in comparables at 5 observations.
func DefaultStrategyConfig() StrategyConfig {
	return StrategyConfig{
		Tiers: TierFactors{
			Conservative: 0.85,
			Competitive:  1.00,
			Aggressive:   1.25,
		},
		ConditionDiscounts: map[Condition]float64{
			ConditionFair: 0.90,
			ConditionPoor: 0.80,
		},
		FullTrustObservations: 5,
	}
}

// Recommendation is the engine's answer for one item: three candidate
// listing prices plus the loss floor. All amounts are rounded to cents.
type Recommendation struct {
	Conservative float64 `json:"conservative"`
	Competitive  float64 `json:"competitive"`
	Aggressive   float64 `json:"aggressive"`
	BreakEven    float64 `json:"break_even"`
	// FloorApplied is set when the conservative tier had to be raised to
	// break-even and the other tiers were rescaled with it.
	FloorApplied bool `json:"floor_applied"`
}

// blendWeight is the trust placed on the comparable median: a linear ramp
// from 0 at no observations to 1 at fullTrust observations. Monotonic by
// construction; the exact curve is a local policy choice.
func blendWeight(count, fullTrust int) float64 {
	if fullTrust <= 0 {
		fullTrust = 5
	}
	if count >= fullTrust {
		return 1
	}
	if count <= 0 {
		return 0
	}
	return float64(count) / float64(fullTrust)
}

// SuggestPrices produces the tiered price recommendation for an item.
//
// The base value is cost times the category band midpoint. When comparables
// exist their median is blended in, weighted by blendWeight. Tier factors and
// any condition discount then fan the base into conservative, competitive and
// aggressive candidates. If the conservative tier would undercut break-even,
// all three tiers are rescaled so conservative sits exactly at break-even and
// FloorApplied is set; the recommendation never proposes a loss-making
// conservative price.
func SuggestPrices(item Item, stats Stats, sched FeeSchedule, table MultiplierTable, cfg StrategyConfig) (Recommendation, error) {
	if item.Cost < 0 {
		return Recommendation{}, fmt.Errorf("%w: negative cost %.2f for %s", ErrInvalidInput, item.Cost, item.SKU)
	}
	if cfg.Tiers.Conservative <= 0 || cfg.Tiers.Competitive < cfg.Tiers.Conservative || cfg.Tiers.Aggressive < cfg.Tiers.Competitive {
		return Recommendation{}, fmt.Errorf("%w: tier factors must be positive and ordered", ErrInvalidInput)
	}
	breakEven, err := BreakEven(item.Cost, sched)
	if err != nil {
		return Recommendation{}, err
	}

	base := item.Cost * table.Lookup(item.Category).Mid()
	if !stats.Empty() {
		w := blendWeight(stats.Count, cfg.FullTrustObservations)
		base = w*stats.Median + (1-w)*base
	}

	discount := 1.0
	if d, ok := cfg.ConditionDiscounts[item.Condition]; ok && d > 0 {
		discount = d
	}

	conservative := base * discount * cfg.Tiers.Conservative
	competitive := base * discount * cfg.Tiers.Competitive
	aggressive := base * discount * cfg.Tiers.Aggressive

	floored := false
	if conservative < breakEven {
		// All tiers share the factor structure, so rescaling to put the
		// conservative tier at break-even preserves the tier ratios.
		conservative = breakEven
		competitive = breakEven * cfg.Tiers.Competitive / cfg.Tiers.Conservative
		aggressive = breakEven * cfg.Tiers.Aggressive / cfg.Tiers.Conservative
		floored = true
	}

	return Recommendation{
		Conservative: RoundCents(conservative),
		Competitive:  RoundCents(competitive),
		Aggressive:   RoundCents(aggressive),
		BreakEven:    breakEven,
		FloorApplied: floored,
	}, nil
}
