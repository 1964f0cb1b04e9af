package pricing

import "fmt"

// FeeSchedule describes the fee structure of a marketplace plus its payment
// processor. Values are immutable per pricing run and come from configuration.
type FeeSchedule struct {
	PlatformRate   float64 `json:"platform_rate"`
	ProcessorRate  float64 `json:"processor_rate"`
	ProcessorFixed float64 `json:"processor_fixed"`
	ListingFee     float64 `json:"listing_fee"`
}

// DefaultFeeSchedule returns the standard eBay + payment processor schedule:
// 10% final value fee, 2.9% + $0.30 processing, free basic listings.
func DefaultFeeSchedule() FeeSchedule {
	return FeeSchedule{
		PlatformRate:   0.10,
		ProcessorRate:  0.029,
		ProcessorFixed: 0.30,
		ListingFee:     0.00,
	}
}

// Validate rejects malformed schedules before any pricing math runs. The
// combined rate check keeps the break-even denominator strictly positive, so
// no pricing call can divide by zero later.
func (s FeeSchedule) Validate() error {
	if s.PlatformRate < 0 || s.PlatformRate >= 1 {
		return fmt.Errorf("%w: platform rate %.4f outside [0,1)", ErrInvalidInput, s.PlatformRate)
	}
	if s.ProcessorRate < 0 || s.ProcessorRate >= 1 {
		return fmt.Errorf("%w: processor rate %.4f outside [0,1)", ErrInvalidInput, s.ProcessorRate)
	}
	if s.PlatformRate+s.ProcessorRate >= 1 {
		return fmt.Errorf("%w: combined rate %.4f leaves no proceeds", ErrInvalidInput, s.PlatformRate+s.ProcessorRate)
	}
	if s.ProcessorFixed < 0 {
		return fmt.Errorf("%w: negative processor fixed fee %.2f", ErrInvalidInput, s.ProcessorFixed)
	}
	if s.ListingFee < 0 {
		return fmt.Errorf("%w: negative listing fee %.2f", ErrInvalidInput, s.ListingFee)
	}
	return nil
}

// FeeBreakdown itemizes the cost of selling at a given price.
type FeeBreakdown struct {
	PlatformFee  float64 `json:"platform_fee"`
	ProcessorFee float64 `json:"processor_fee"`
	ListingFee   float64 `json:"listing_fee"`
	TotalFees    float64 `json:"total_fees"`
	NetProceeds  float64 `json:"net_proceeds"`
}

// ComputeFees calculates all fees and the net proceeds for selling at
// salePrice under the given schedule. Amounts are rounded to cents.
func ComputeFees(salePrice float64, sched FeeSchedule) (FeeBreakdown, error) {
	if err := sched.Validate(); err != nil {
		return FeeBreakdown{}, err
	}
	if salePrice < 0 {
		return FeeBreakdown{}, fmt.Errorf("%w: negative sale price %.2f", ErrInvalidInput, salePrice)
	}

	platform := RoundCents(salePrice * sched.PlatformRate)
	processor := RoundCents(salePrice*sched.ProcessorRate + sched.ProcessorFixed)
	listing := RoundCents(sched.ListingFee)
	total := RoundCents(platform + processor + listing)

	return FeeBreakdown{
		PlatformFee:  platform,
		ProcessorFee: processor,
		ListingFee:   listing,
		TotalFees:    total,
		NetProceeds:  RoundCents(salePrice - total),
	}, nil
}

// BreakEven returns the sale price at which net proceeds equal the
// acquisition cost. Fees are linear in price, so the floor is algebraic:
//
//	breakEven = (cost + listingFee + processorFixed) / (1 - platformRate - processorRate)
func BreakEven(cost float64, sched FeeSchedule) (float64, error) {
	if err := sched.Validate(); err != nil {
		return 0, err
	}
	if cost < 0 {
		return 0, fmt.Errorf("%w: negative cost %.2f", ErrInvalidInput, cost)
	}
	denom := 1 - sched.PlatformRate - sched.ProcessorRate
	return RoundCents((cost + sched.ListingFee + sched.ProcessorFixed) / denom), nil
}
