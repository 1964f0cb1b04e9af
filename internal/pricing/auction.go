package pricing

import "fmt"

const (
	// auctionStartRatio sets the opening bid at 60% of the Buy-It-Now price.
	auctionStartRatio = 0.60
	// minimumStartingBid is the lowest opening bid the marketplace accepts.
	minimumStartingBid = 0.99
	// auctionDurationDays is the fixed 7-day auction format.
	auctionDurationDays = 7

	FormatAuction    = "auction"
	FormatFixedPrice = "fixed_price"
)

// AuctionPlan describes a derived auction-format listing.
type AuctionPlan struct {
	StartingPrice float64 `json:"starting_price"`
	// BuyItNow is the fixed-price equivalent, with shipping already folded
	// in when the free-shipping policy is on.
	BuyItNow     float64 `json:"buy_it_now"`
	DurationDays int     `json:"duration_days"`
	Format       string  `json:"format"`
	FreeShipping bool    `json:"free_shipping"`
}

// DeriveAuction turns a Buy-It-Now price into a 7-day auction plan.
//
// When freeShipping is on, the shipping cost is folded into the Buy-It-Now
// price before the 60% starting bid is taken, so the "free shipping" price
// already recovers shipping. The fold-in must happen first; deriving the bid
// from the unfolded price would under-recover shipping on low-bid outcomes.
func DeriveAuction(buyItNow, shippingCost float64, freeShipping bool) (AuctionPlan, error) {
	if buyItNow < 0 {
		return AuctionPlan{}, fmt.Errorf("%w: negative buy-it-now price %.2f", ErrInvalidInput, buyItNow)
	}
	if shippingCost < 0 {
		return AuctionPlan{}, fmt.Errorf("%w: negative shipping cost %.2f", ErrInvalidInput, shippingCost)
	}

	if freeShipping {
		buyItNow += shippingCost
	}
	start := RoundCents(buyItNow * auctionStartRatio)
	if start < minimumStartingBid {
		start = minimumStartingBid
	}

	return AuctionPlan{
		StartingPrice: start,
		BuyItNow:      RoundCents(buyItNow),
		DurationDays:  auctionDurationDays,
		Format:        FormatAuction,
		FreeShipping:  freeShipping,
	}, nil
}
