package pricing

import (
	"encoding/json"
	"fmt"
)

// Ledger is the full profit picture for selling one item at one price.
type Ledger struct {
	SalePrice   float64      `json:"sale_price"`
	Fees        FeeBreakdown `json:"fees"`
	NetProceeds float64      `json:"net_proceeds"`
	NetProfit   float64      `json:"net_profit"`
	// ROI is net profit over acquisition cost, as a percentage. It is only
	// meaningful when ROIDefined is true; a zero-cost item has no ROI and
	// must be displayed as "N/A", never as 0% or infinity.
	ROI        float64 `json:"-"`
	ROIDefined bool    `json:"-"`
}

// MarshalJSON renders an undefined ROI as null so exports show N/A instead
// of a misleading number.
func (l Ledger) MarshalJSON() ([]byte, error) {
	type alias Ledger
	out := struct {
		alias
		ROI *float64 `json:"roi"`
	}{alias: alias(l)}
	if l.ROIDefined {
		out.ROI = &l.ROI
	}
	return json.Marshal(out)
}

// ProfitLedger computes fees, net profit and ROI for selling an item bought
// at cost for salePrice under the given fee schedule.
func ProfitLedger(cost, salePrice float64, sched FeeSchedule) (Ledger, error) {
	if cost < 0 {
		return Ledger{}, fmt.Errorf("%w: negative cost %.2f", ErrInvalidInput, cost)
	}
	fees, err := ComputeFees(salePrice, sched)
	if err != nil {
		return Ledger{}, err
	}

	ledger := Ledger{
		SalePrice:   RoundCents(salePrice),
		Fees:        fees,
		NetProceeds: fees.NetProceeds,
		NetProfit:   RoundCents(fees.NetProceeds - cost),
	}
	if cost > 0 {
		ledger.ROI = RoundCents(ledger.NetProfit / cost * 100)
		ledger.ROIDefined = true
	}
	return ledger, nil
}
