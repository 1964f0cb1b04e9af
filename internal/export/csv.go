package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"thriftbot-go/internal/content"
	"thriftbot-go/internal/models"
	"thriftbot-go/internal/pricing"
)

// Listing bundles everything one marketplace row needs: the inventory
// record, its listing copy, and an optional auction plan. A nil Auction
// exports as a fixed-price row.
type Listing struct {
	Item    models.InventoryItem
	Copy    content.Result
	Auction *pricing.AuctionPlan
}

// ebayHeaders is the standard bulk-upload column set.
var ebayHeaders = []string{
	"Action(SiteID=US|Country=US|Currency=USD|Version=1193)",
	"Category",
	"Title",
	"Description",
	"Quantity",
	"Format",
	"Duration",
	"StartPrice",
	"BuyItNowPrice",
	"ImmediatePayRequired",
	"ShippingType",
	"ShippingService-1:Option",
	"ShippingService-1:Cost",
	"DispatchTimeMax",
	"Location",
	"ConditionID",
	"ConditionDescription",
	"Brand",
	"Size",
	"Color",
	"ReturnPolicy.ReturnsAcceptedOption",
	"ReturnPolicy.ReturnsWithinOption",
	"ReturnPolicy.ShippingCostPaidByOption",
}

// conditionIDs maps condition grades to eBay numeric condition codes.
var conditionIDs = map[string]string{
	string(pricing.ConditionNew):     "1000",
	string(pricing.ConditionLikeNew): "1500",
	string(pricing.ConditionGood):    "3000",
	string(pricing.ConditionFair):    "5000",
	string(pricing.ConditionPoor):    "7000",
}

// WriteEbayCSV renders listings as an eBay bulk-upload file. All currency
// cells are the engine's two-decimal amounts, formatted without modification.
func WriteEbayCSV(w io.Writer, listings []Listing) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ebayHeaders); err != nil {
		return fmt.Errorf("could not write CSV header: %w", err)
	}

	for _, l := range listings {
		if err := cw.Write(escapeRow(buildRow(l))); err != nil {
			return fmt.Errorf("could not write row for %s: %w", l.Item.SKU, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func buildRow(l Listing) []string {
	item := l.Item

	format := "FixedPrice"
	duration := "GTC"
	startPrice := ""
	binPrice := money(listingPrice(item))
	shippingCost := "12.99"

	if l.Auction != nil {
		format = "Auction"
		duration = fmt.Sprintf("Days_%d", l.Auction.DurationDays)
		startPrice = money(l.Auction.StartingPrice)
		binPrice = money(l.Auction.BuyItNow)
		if l.Auction.FreeShipping {
			shippingCost = "0.00"
		}
	}

	conditionID, ok := conditionIDs[item.Condition]
	if !ok {
		conditionID = "3000"
	}

	return []string{
		"Add",
		item.Category,
		sanitizeText(l.Copy.Title),
		sanitizeText(l.Copy.Description),
		"1",
		format,
		duration,
		startPrice,
		binPrice,
		"1",
		"Flat",
		"USPSPriority",
		shippingCost,
		"1",
		"United States",
		conditionID,
		item.Condition,
		item.Brand,
		item.Size,
		item.Color,
		"ReturnsAccepted",
		"Days_30",
		"Buyer",
	}
}

// listingPrice prefers the live listed price, then the engine's suggestion.
func listingPrice(item models.InventoryItem) float64 {
	if item.ListedPrice > 0 {
		return item.ListedPrice
	}
	return item.SuggestedPrice
}

func money(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
