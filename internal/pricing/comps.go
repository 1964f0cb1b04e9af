package pricing

import (
	"sort"
	"time"
)

// DefaultOutlierMultiplier is the cutoff for discarding comparable
// observations: anything above this multiple of the raw median is dropped.
const DefaultOutlierMultiplier = 5.0

// Observation is a single comparable sale or listing seen on a marketplace.
type Observation struct {
	Platform   string    `json:"platform"`
	Price      float64   `json:"price"`
	ObservedAt time.Time `json:"observed_at"`
	Condition  string    `json:"condition,omitempty"`
}

// Stats summarizes a set of comparable observations. The zero value is the
// Empty sentinel meaning "no market signal"; callers branch on Empty rather
// than treating it as an error.
type Stats struct {
	Median float64 `json:"median"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Count  int     `json:"count"`
}

// Empty reports whether no valid observations survived aggregation.
func (s Stats) Empty() bool {
	return s.Count == 0
}

// Aggregate reduces comparable observations to summary statistics.
//
// Filtering is a single pass: non-positive prices are dropped, the median of
// what remains is computed, and any price above outlierMultiplier times that
// median is discarded before the final median and mean are taken. A
// non-positive outlierMultiplier selects the default.
func Aggregate(obs []Observation, outlierMultiplier float64) Stats {
	if outlierMultiplier <= 0 {
		outlierMultiplier = DefaultOutlierMultiplier
	}

	prices := make([]float64, 0, len(obs))
	for _, o := range obs {
		if o.Price > 0 {
			prices = append(prices, o.Price)
		}
	}
	if len(prices) == 0 {
		return Stats{}
	}

	cutoff := median(prices) * outlierMultiplier
	kept := prices[:0]
	for _, p := range prices {
		if p <= cutoff {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return Stats{}
	}

	sort.Float64s(kept)
	var sum float64
	for _, p := range kept {
		sum += p
	}

	return Stats{
		Median: RoundCents(median(kept)),
		Mean:   RoundCents(sum / float64(len(kept))),
		Min:    RoundCents(kept[0]),
		Max:    RoundCents(kept[len(kept)-1]),
		Count:  len(kept),
	}
}

// median works on a copy so callers' slices keep their order.
func median(vals []float64) float64 {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
