package stats

import (
	"math"
	"sort"
)

// Percentile computes the p-th percentile of samples using linear
// interpolation between the two closest ranks. Small batches (tens of
// images) are the normal case here, so the estimator matters: nearest-rank
// would diverge noticeably.
func Percentile(samples []float64, p float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	xs := make([]float64, len(samples))
	copy(xs, samples)
	sort.Float64s(xs)

	k := float64(len(xs)-1) * p / 100
	f := math.Floor(k)
	c := math.Ceil(k)
	if f == c {
		return xs[int(k)]
	}
	return xs[int(f)] + (xs[int(c)]-xs[int(f)])*(k-f)
}

// Metric summarizes one series of samples with tail percentiles.
type Metric struct {
	Count int
	P95   float64
	P99   float64
	Max   float64
}

// Summarize computes the tail summary for a non-empty series. It returns
// the zero Metric for an empty one; callers gate on Count.
func Summarize(samples []float64) Metric {
	if len(samples) == 0 {
		return Metric{}
	}

	max := samples[0]
	for _, v := range samples[1:] {
		if v > max {
			max = v
		}
	}

	return Metric{
		Count: len(samples),
		P95:   Percentile(samples, 95),
		P99:   Percentile(samples, 99),
		Max:   max,
	}
}
