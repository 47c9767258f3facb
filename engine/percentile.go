package engine

import (
	"math"
	"sort"
)

// Percentile returns the p-th percentile (0 < p <= 1) of values using the
// nearest-rank method: the ascending value at index ceil(p*n)-1. The input
// slice is not modified. Empty input returns 0.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	idx := int(math.Ceil(p*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
