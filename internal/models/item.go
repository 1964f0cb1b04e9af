package models

import (
	"time"

	"gorm.io/gorm"
)

// Item lifecycle statuses. Items are never deleted, only moved along
// inventory -> listed -> sold (or returned).
const (
	StatusInventory = "inventory"
	StatusListed    = "listed"
	StatusSold      = "sold"
	StatusReturned  = "returned"
)

// InventoryItem is a purchased secondhand item being tracked for resale.
// Pricing and fee columns are filled in by the inventory service as the item
// moves through its lifecycle.
type InventoryItem struct {
	gorm.Model
	SKU string `gorm:"uniqueIndex" json:"sku"`

	Category  string `json:"category"`
	Brand     string `json:"brand"`
	Name      string `json:"name"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	Condition string `gorm:"default:Good" json:"condition"`

	Cost float64 `gorm:"not null" json:"cost"`

	SuggestedPrice float64 `json:"suggested_price,omitempty"`
	ListedPrice    float64 `json:"listed_price,omitempty"`
	SoldPrice      float64 `json:"sold_price,omitempty"`

	// Fee and profit columns, written back from the pricing engine.
	ListingFee    float64 `json:"listing_fee,omitempty"`
	PlatformFee   float64 `json:"platform_fee,omitempty"`
	ProcessorFee  float64 `json:"processor_fee,omitempty"`
	TotalFees     float64 `json:"total_fees,omitempty"`
	NetProfit     float64 `json:"net_profit,omitempty"`
	ROIPercentage float64 `json:"roi_percentage,omitempty"`
	ROIDefined    bool    `json:"roi_defined"`

	Status string `gorm:"default:inventory;index" json:"status"`

	ListedAt *time.Time `json:"listed_at,omitempty"`
	SoldAt   *time.Time `json:"sold_at,omitempty"`
}

// DaysListed returns how long the item has been on the market, zero when it
// was never listed.
func (i InventoryItem) DaysListed(now time.Time) int {
	if i.ListedAt == nil {
		return 0
	}
	return int(now.Sub(*i.ListedAt).Hours() / 24)
}
