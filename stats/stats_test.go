package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		p       float64
		want    float64
	}{
		{"even length midpoint", []float64{1, 2, 3, 4}, 50, 2.5},
		{"p0 is minimum", []float64{5, 1, 3}, 0, 1},
		{"p100 is maximum", []float64{5, 1, 3}, 100, 5},
		{"single element p50", []float64{7}, 50, 7},
		{"single element p99", []float64{7}, 99, 7},
		{"unsorted input", []float64{4, 1, 3, 2}, 50, 2.5},
		{"interpolated p95", []float64{1, 2, 3, 4}, 95, 3.85},
		{"empty", nil, 95, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Percentile(tt.samples, tt.p), 1e-9)
		})
	}
}

func TestPercentileDoesNotMutateInput(t *testing.T) {
	samples := []float64{3, 1, 2}
	Percentile(samples, 50)
	assert.Equal(t, []float64{3, 1, 2}, samples)
}

func TestSummarize(t *testing.T) {
	m := Summarize([]float64{1, 2, 3, 4})
	assert.Equal(t, 4, m.Count)
	assert.InDelta(t, 3.85, m.P95, 1e-9)
	assert.InDelta(t, 3.97, m.P99, 1e-9)
	assert.Equal(t, 4.0, m.Max)
}

func TestSummarizeNegativeValues(t *testing.T) {
	// RAM deltas can be negative after a GC cycle.
	m := Summarize([]float64{-12.5, -3.25, 8})
	assert.Equal(t, 3, m.Count)
	assert.Equal(t, 8.0, m.Max)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, Metric{}, Summarize(nil))
}
