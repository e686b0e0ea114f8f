package qrng

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/xtding233/qrng-backend/internal/qerr"
)

// DefaultLevel is the significance level for the chi-squared pattern
// test when the caller passes none.
const DefaultLevel = 0.05

// maxPatternLength keeps the 2^L pattern table and the degrees of
// freedom manageable.
const maxPatternLength = 16

// PatternResult is the outcome of one chi-squared pattern test.
type PatternResult struct {
	Length    int     `json:"length"`
	Blocks    int     `json:"blocks"`
	ChiSquare float64 `json:"chi2_stat"`
	PValue    float64 `json:"p_value"`
	Level     float64 `json:"level"`
	// NonRandom flags a pattern distribution that deviates from
	// uniform at the configured significance level.
	NonRandom bool `json:"non_random"`
}

// Pattern runs a chi-squared uniformity test over non-overlapping
// length-bit blocks: block values are counted against the uniform
// expectation across all 2^length patterns and the statistic is
// compared to a chi-squared distribution with 2^length - 1 degrees of
// freedom. Trailing bits that do not fill a block are ignored.
func Pattern(bits BitString, length int, level float64) (PatternResult, error) {
	const op = "pattern test"
	if length < 1 || length > maxPatternLength {
		return PatternResult{}, qerr.InvalidParam(op, "length", length)
	}
	blocks := bits.Len() / length
	if blocks < 1 {
		return PatternResult{}, qerr.InvalidParam(op, "bits", bits.Len())
	}
	if level <= 0 {
		level = DefaultLevel
	}

	buckets := 1 << length
	counts := make([]int, buckets)
	for b := 0; b < blocks; b++ {
		v := 0
		for i := 0; i < length; i++ {
			v = v<<1 | int(bits.At(b*length+i))
		}
		counts[v]++
	}

	expected := float64(blocks) / float64(buckets)
	chi2 := 0.0
	for _, obs := range counts {
		d := float64(obs) - expected
		chi2 += d * d / expected
	}

	dist := distuv.ChiSquared{K: float64(buckets - 1)}
	p := dist.Survival(chi2)

	return PatternResult{
		Length:    length,
		Blocks:    blocks,
		ChiSquare: chi2,
		PValue:    p,
		Level:     level,
		NonRandom: p < level,
	}, nil
}
