package qrng

import (
	"math"

	"github.com/xtding233/qrng-backend/internal/qerr"
)

// DefaultThreshold is the significance threshold for the frequency
// test verdict when the caller passes none.
const DefaultThreshold = 0.01

// MinSampleSize is the bit count below which the frequency test has
// little statistical power; smaller inputs get a caution flag.
const MinSampleSize = 100

// FrequencyResult is the outcome of one monobit frequency test.
type FrequencyResult struct {
	SampleSize int     `json:"sample_size"`
	Statistic  float64 `json:"test_statistic"` // s_obs = |S| / sqrt(n)
	PValue     float64 `json:"p_value"`
	Threshold  float64 `json:"threshold"`
	Pass       bool    `json:"pass"`
	// LowSample cautions that SampleSize < MinSampleSize. Not an error;
	// the verdict is still computed.
	LowSample bool `json:"low_sample,omitempty"`
}

// Frequency runs the monobit frequency test: each bit contributes +1
// or -1 to a signed sum S, s_obs = |S|/sqrt(n), and the p-value is
// erfc(s_obs/sqrt(2)). The bitstring passes when the p-value reaches
// the threshold (DefaultThreshold if threshold <= 0).
func Frequency(bits BitString, threshold float64) (FrequencyResult, error) {
	n := bits.Len()
	if n == 0 {
		return FrequencyResult{}, qerr.InvalidParam("frequency test", "bits", "")
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	s := 0
	for i := 0; i < n; i++ {
		if bits.At(i) == 1 {
			s++
		} else {
			s--
		}
	}
	sObs := math.Abs(float64(s)) / math.Sqrt(float64(n))
	p := math.Erfc(sObs / math.Sqrt2)

	return FrequencyResult{
		SampleSize: n,
		Statistic:  sObs,
		PValue:     p,
		Threshold:  threshold,
		Pass:       p >= threshold,
		LowSample:  n < MinSampleSize,
	}, nil
}
