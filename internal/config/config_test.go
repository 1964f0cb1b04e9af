package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thriftbot-go/internal/pricing"
)

func TestLoadConfigDefaults(t *testing.T) {
	// No config file in an empty directory: defaults carry the run.
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	sched := cfg.Pricing.FeeSchedule()
	assert.Equal(t, pricing.DefaultFeeSchedule(), sched)
	assert.NoError(t, sched.Validate())

	assert.Equal(t, "thriftbot.db", cfg.Database.DSN)
	assert.Equal(t, 30, cfg.Pricing.Adjust.StaleAfterDays)
	assert.Equal(t, 60, cfg.Pricing.Adjust.DeepStaleAfterDays)
	assert.Equal(t, 5, cfg.Pricing.FullTrustObservations)
}

func TestPricingConversions(t *testing.T) {
	p := Pricing{
		Fees: Fees{PlatformRate: 0.12, ProcessorRate: 0.03, ProcessorFixed: 0.25},
		Multipliers: map[string]pricing.MultiplierRange{
			"Vinyl Records": {Low: 3, High: 7},
		},
		Tiers:              pricing.TierFactors{Conservative: 0.9, Competitive: 1.0, Aggressive: 1.3},
		ConditionDiscounts: map[string]float64{"fair": 0.85, "poor": 0.75},
	}

	assert.Equal(t, 0.12, p.FeeSchedule().PlatformRate)

	// Table keys are folded to lower case for lookup.
	table := p.MultiplierTable()
	assert.Equal(t, pricing.MultiplierRange{Low: 3, High: 7}, table.Lookup("vinyl records"))

	// viper's lowercased map keys map back to canonical condition grades.
	cfg := p.StrategyConfig()
	assert.Equal(t, 0.85, cfg.ConditionDiscounts[pricing.ConditionFair])
	assert.Equal(t, 0.75, cfg.ConditionDiscounts[pricing.ConditionPoor])
	assert.Equal(t, 1.3, cfg.Tiers.Aggressive)
}

func TestPricingConversionFallbacks(t *testing.T) {
	var p Pricing

	// An empty multiplier section falls back to the engine defaults.
	table := p.MultiplierTable()
	assert.Equal(t, pricing.MultiplierRange{Low: 4, High: 6}, table.Lookup("clothing"))

	// Zero tiers fall back to the documented factors.
	cfg := p.StrategyConfig()
	assert.Equal(t, 0.85, cfg.Tiers.Conservative)
	assert.Equal(t, 1.25, cfg.Tiers.Aggressive)
	assert.Equal(t, 5, cfg.FullTrustObservations)
}
