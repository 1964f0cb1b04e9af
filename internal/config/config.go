package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"

	"thriftbot-go/internal/pricing"
)

// Config holds all configuration for the application.
type Config struct {
	Database Database `mapstructure:"database"`
	Logger   Logger   `mapstructure:"logger"`
	Server   Server   `mapstructure:"server"`
	Pricing  Pricing  `mapstructure:"pricing"`
	Content  Content  `mapstructure:"content"`
	Research Research `mapstructure:"research"`
	Sweep    Sweep    `mapstructure:"sweep"`
}

// Database holds the configuration for the database.
type Database struct {
	DSN string `mapstructure:"dsn"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Server holds the configuration for the dashboard web server.
type Server struct {
	Port int `mapstructure:"port"`
}

// Fees mirrors pricing.FeeSchedule as configuration.
type Fees struct {
	PlatformRate   float64 `mapstructure:"platform_rate"`
	ProcessorRate  float64 `mapstructure:"processor_rate"`
	ProcessorFixed float64 `mapstructure:"processor_fixed"`
	ListingFee     float64 `mapstructure:"listing_fee"`
}

// Auction holds the shipping policy applied when deriving auction listings.
type Auction struct {
	FreeShipping bool    `mapstructure:"free_shipping"`
	ShippingCost float64 `mapstructure:"shipping_cost"`
}

// Pricing holds every business constant the pricing engine consumes. All of
// it is data: fee rates, category bands, tier factors, condition discounts.
type Pricing struct {
	Fees                  Fees                               `mapstructure:"fees"`
	Multipliers           map[string]pricing.MultiplierRange `mapstructure:"multipliers"`
	Tiers                 pricing.TierFactors                `mapstructure:"tiers"`
	ConditionDiscounts    map[string]float64                 `mapstructure:"condition_discounts"`
	FullTrustObservations int                                `mapstructure:"full_trust_observations"`
	OutlierMultiplier     float64                            `mapstructure:"outlier_multiplier"`
	Adjust                pricing.AdjustConfig               `mapstructure:"adjust"`
	Auction               Auction                            `mapstructure:"auction"`
}

// Content holds the configuration for the generative-content client.
type Content struct {
	BaseURL        string  `mapstructure:"base_url"`
	APIKey         string  `mapstructure:"api_key"`
	Model          string  `mapstructure:"model"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// Research holds the configuration for the market-research fetcher.
type Research struct {
	BaseURL        string  `mapstructure:"base_url"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
	MaxResults     int     `mapstructure:"max_results"`
}

// Sweep holds the stale-listing sweep schedule.
type Sweep struct {
	CronSpec string `mapstructure:"cron_spec"`
}

// FeeSchedule converts the configured fees into the engine's value object.
func (p Pricing) FeeSchedule() pricing.FeeSchedule {
	return pricing.FeeSchedule{
		PlatformRate:   p.Fees.PlatformRate,
		ProcessorRate:  p.Fees.ProcessorRate,
		ProcessorFixed: p.Fees.ProcessorFixed,
		ListingFee:     p.Fees.ListingFee,
	}
}

// MultiplierTable converts the configured category bands, falling back to the
// engine defaults when the section is absent.
func (p Pricing) MultiplierTable() pricing.MultiplierTable {
	if len(p.Multipliers) == 0 {
		return pricing.DefaultMultiplierTable()
	}
	table := make(pricing.MultiplierTable, len(p.Multipliers))
	for category, r := range p.Multipliers {
		table[strings.ToLower(category)] = r
	}
	return table
}

// StrategyConfig converts the configured strategy knobs.
func (p Pricing) StrategyConfig() pricing.StrategyConfig {
	cfg := pricing.DefaultStrategyConfig()
	if p.Tiers.Conservative > 0 {
		cfg.Tiers = p.Tiers
	}
	if len(p.ConditionDiscounts) > 0 {
		// viper folds map keys to lower case, so condition names have to
		// be mapped back to their canonical grades.
		canonical := map[string]pricing.Condition{
			"new":      pricing.ConditionNew,
			"like-new": pricing.ConditionLikeNew,
			"good":     pricing.ConditionGood,
			"fair":     pricing.ConditionFair,
			"poor":     pricing.ConditionPoor,
		}
		discounts := make(map[pricing.Condition]float64, len(p.ConditionDiscounts))
		for cond, d := range p.ConditionDiscounts {
			grade, ok := canonical[strings.ToLower(cond)]
			if !ok {
				grade = pricing.Condition(cond)
			}
			discounts[grade] = d
		}
		cfg.ConditionDiscounts = discounts
	}
	if p.FullTrustObservations > 0 {
		cfg.FullTrustObservations = p.FullTrustObservations
	}
	return cfg
}

// LoadConfig reads configuration from file or environment variables. A
// missing config file is fine; defaults and the environment carry the run.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	// Allow environment variables to override config file
	viper.SetEnvPrefix("thriftbot")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err = viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}

// setDefaults pins the documented business constants so a bare install
// prices the same way the docs describe.
func setDefaults() {
	viper.SetDefault("database.dsn", "thriftbot.db")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("server.port", 8080)

	viper.SetDefault("pricing.fees.platform_rate", 0.10)
	viper.SetDefault("pricing.fees.processor_rate", 0.029)
	viper.SetDefault("pricing.fees.processor_fixed", 0.30)
	viper.SetDefault("pricing.fees.listing_fee", 0.00)

	viper.SetDefault("pricing.tiers.conservative", 0.85)
	viper.SetDefault("pricing.tiers.competitive", 1.00)
	viper.SetDefault("pricing.tiers.aggressive", 1.25)

	viper.SetDefault("pricing.condition_discounts", map[string]float64{
		"Fair": 0.90,
		"Poor": 0.80,
	})

	viper.SetDefault("pricing.full_trust_observations", 5)
	viper.SetDefault("pricing.outlier_multiplier", pricing.DefaultOutlierMultiplier)

	viper.SetDefault("pricing.adjust.stale_after_days", 30)
	viper.SetDefault("pricing.adjust.deep_stale_after_days", 60)

	viper.SetDefault("pricing.auction.free_shipping", true)
	viper.SetDefault("pricing.auction.shipping_cost", 0.00)

	viper.SetDefault("content.base_url", "https://api.openai.com/v1")
	viper.SetDefault("content.model", "gpt-4o-mini")
	viper.SetDefault("content.rate_limit", 2)
	viper.SetDefault("content.rate_limit_burst", 1)

	viper.SetDefault("research.rate_limit", 1)
	viper.SetDefault("research.rate_limit_burst", 1)
	viper.SetDefault("research.max_results", 20)

	viper.SetDefault("sweep.cron_spec", "0 6 * * *")
}
