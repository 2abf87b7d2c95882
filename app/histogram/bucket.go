package histogram

import (
	"fmt"
	"sort"
)

// DefaultMaxBuckets caps auto-sized histograms
const DefaultMaxBuckets = 40

// PayBreakpoints are the monthly gross pay band limits in CLP
var PayBreakpoints = []float64{500_000, 1_000_000, 2_000_000, 3_000_000}

// allowedBucketSizes are the money widths an auto-sized histogram may use
var allowedBucketSizes = []float64{
	1_000,
	5_000,
	10_000,
	25_000,
	50_000,
	100_000,
	250_000,
	500_000,
	1_000_000,
	2_500_000,
	5_000_000,
	10_000_000,
	25_000_000,
	50_000_000,
	100_000_000,
}

// ChooseBucketSizeForSpan selects the smallest allowed width that covers
// span in at most maxBuckets buckets
func ChooseBucketSizeForSpan(span float64, maxBuckets int) float64 {
	if maxBuckets <= 0 {
		maxBuckets = DefaultMaxBuckets
	}
	if span < 1 {
		span = 1
	}
	for _, size := range allowedBucketSizes {
		if buckets := int(span/size) + 1; buckets <= maxBuckets {
			return size
		}
	}
	return allowedBucketSizes[len(allowedBucketSizes)-1]
}

// Classify returns the band index of v for ascending breakpoints: 0 below
// the first breakpoint, len(breaks) at or above the last
func Classify(v float64, breaks []float64) int {
	return sort.Search(len(breaks), func(i int) bool { return v < breaks[i] })
}

// NewBands returns empty bands labelled from the breakpoints
// ("0-500k", "500k-1M", ..., "3M+")
func NewBands(breaks []float64) []Band {
	bands := make([]Band, len(breaks)+1)
	lower := 0.0
	for i, b := range breaks {
		bands[i] = Band{Label: shortAmount(lower) + "-" + shortAmount(b), Lower: lower, Upper: b}
		lower = b
	}
	bands[len(breaks)] = Band{Label: shortAmount(lower) + "+", Lower: lower}
	return bands
}

// shortAmount renders 0, 500k, 1M, 2.5M
func shortAmount(v float64) string {
	switch {
	case v == 0:
		return "0"
	case v >= 1_000_000:
		return trimFloat(v/1_000_000) + "M"
	case v >= 1_000:
		return trimFloat(v/1_000) + "k"
	}
	return trimFloat(v)
}

func trimFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}
