package qrng

import (
	"context"

	"github.com/xtding233/qrng-backend/internal/qerr"
	"github.com/xtding233/qrng-backend/internal/rng"
)

// TestConfig bundles the statistical test parameters for a report.
type TestConfig struct {
	// Threshold for the frequency test verdict; 0 means DefaultThreshold.
	Threshold float64
	// Level for the pattern test verdicts; 0 means DefaultLevel.
	Level float64
	// MinPattern..MaxPattern is the inclusive range of pattern lengths
	// to test. Both 0 means the 2..6 default.
	MinPattern int
	MaxPattern int
}

func (c TestConfig) patternRange() (int, int) {
	if c.MinPattern == 0 && c.MaxPattern == 0 {
		return 2, 6
	}
	return c.MinPattern, c.MaxPattern
}

// SourceReport summarizes the statistical properties of one bitstring.
type SourceReport struct {
	Source    Source          `json:"source"`
	Bits      int             `json:"bits"`
	Ones      int             `json:"ones"`
	Zeros     int             `json:"zeros"`
	Frequency FrequencyResult `json:"frequency"`
	Patterns  []PatternResult `json:"patterns,omitempty"`
}

// Comparison holds same-length quantum and classical reports.
type Comparison struct {
	Quantum   SourceReport `json:"quantum"`
	Classical SourceReport `json:"classical"`
}

// Analyze runs the frequency test plus the configured pattern tests
// over a bitstring.
func Analyze(bits BitString, cfg TestConfig) (SourceReport, error) {
	freq, err := Frequency(bits, cfg.Threshold)
	if err != nil {
		return SourceReport{}, err
	}
	report := SourceReport{
		Source:    bits.Source(),
		Bits:      bits.Len(),
		Ones:      bits.Ones(),
		Zeros:     bits.Len() - bits.Ones(),
		Frequency: freq,
	}
	lo, hi := cfg.patternRange()
	for l := lo; l <= hi; l++ {
		pr, err := Pattern(bits, l, cfg.Level)
		if err != nil {
			return SourceReport{}, err
		}
		report.Patterns = append(report.Patterns, pr)
	}
	return report, nil
}

// Compare generates a quantum and a classical bitstring of the same
// length and analyzes both, so the two sources can be judged side by
// side. src seeds the classical generator; nil uses the crypto
// default.
func Compare(ctx context.Context, ex Extractor, src rng.RandomSource, numBits int, cfg TestConfig) (Comparison, error) {
	const op = "compare sources"
	if numBits < 1 {
		return Comparison{}, qerr.InvalidParam(op, "numBits", numBits)
	}

	quantum, err := ex.Bits(ctx, numBits)
	if err != nil {
		return Comparison{}, err
	}
	classical, err := Classical(numBits, src)
	if err != nil {
		return Comparison{}, err
	}

	q, err := Analyze(quantum, cfg)
	if err != nil {
		return Comparison{}, err
	}
	c, err := Analyze(classical, cfg)
	if err != nil {
		return Comparison{}, err
	}
	return Comparison{Quantum: q, Classical: c}, nil
}
