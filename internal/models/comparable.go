package models

import (
	"time"

	"gorm.io/gorm"

	"thriftbot-go/internal/pricing"
)

// MarketComparable is a scraped or imported market observation used as a
// pricing signal. Rows accumulate per search term; the engine never reads
// them directly, only the observations extracted by ToObservation.
type MarketComparable struct {
	gorm.Model
	SearchTerm string `gorm:"index" json:"search_term"`
	Category   string `json:"category"`
	Brand      string `json:"brand,omitempty"`
	Condition  string `json:"condition,omitempty"`

	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	ShippingCost float64 `json:"shipping_cost,omitempty"`
	TotalPrice   float64 `json:"total_price"`

	Platform      string `gorm:"default:ebay" json:"platform"`
	ListingURL    string `json:"listing_url,omitempty"`
	ListingStatus string `gorm:"default:active" json:"listing_status"`

	ScrapedAt time.Time `json:"scraped_at"`
}

// ToObservation converts the stored row into the engine's input value.
func (c MarketComparable) ToObservation() pricing.Observation {
	return pricing.Observation{
		Platform:   c.Platform,
		Price:      c.TotalPrice,
		ObservedAt: c.ScrapedAt,
		Condition:  c.Condition,
	}
}
