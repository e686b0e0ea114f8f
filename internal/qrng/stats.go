package qrng

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Stats summarizes a sample of float64 observations.
type Stats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
}

// summarize computes mean/stddev/percentiles for a sample.
func summarize(xs []float64) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}

	mean := stat.Mean(xs, nil)
	sd := 0.0
	if n > 1 {
		sd = stat.StdDev(xs, nil)
	}

	cp := append([]float64(nil), xs...)
	sort.Float64s(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return cp[0]
		}
		if p >= 1 {
			return cp[n-1]
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return cp[i]
		}
		return cp[i]*(1-f) + cp[i+1]*f
	}

	return Stats{
		Mean:   mean,
		StdDev: sd,
		P50:    percentile(0.50),
		P90:    percentile(0.90),
		P99:    percentile(0.99),
	}
}
