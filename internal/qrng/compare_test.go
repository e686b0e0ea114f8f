package qrng

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/qrng-backend/internal/qerr"
	"github.com/xtding233/qrng-backend/internal/rng"
	"github.com/xtding233/qrng-backend/internal/sim"
)

func TestAnalyzeReportShape(t *testing.T) {
	bits, err := Classical(240, rng.NewSeeded(8))
	require.NoError(t, err)

	report, err := Analyze(bits, TestConfig{})
	require.NoError(t, err)

	assert.Equal(t, SourceClassical, report.Source)
	assert.Equal(t, 240, report.Bits)
	assert.Equal(t, 240, report.Ones+report.Zeros)
	assert.Equal(t, 240, report.Frequency.SampleSize)
	// default pattern lengths 2..6
	require.Len(t, report.Patterns, 5)
	for i, p := range report.Patterns {
		assert.Equal(t, i+2, p.Length)
	}
}

func TestAnalyzeCustomPatternRange(t *testing.T) {
	bits, err := Classical(64, rng.NewSeeded(8))
	require.NoError(t, err)

	report, err := Analyze(bits, TestConfig{MinPattern: 2, MaxPattern: 3})
	require.NoError(t, err)
	require.Len(t, report.Patterns, 2)
}

func TestCompareProducesBothReports(t *testing.T) {
	ex := Extractor{Backend: sim.NewStatevector(rng.NewSeeded(21)), Qubits: 4}
	cmp, err := Compare(context.Background(), ex, rng.NewSeeded(22), 240, TestConfig{})
	require.NoError(t, err)

	assert.Equal(t, SourceQuantum, cmp.Quantum.Source)
	assert.Equal(t, SourceClassical, cmp.Classical.Source)
	assert.Equal(t, 240, cmp.Quantum.Bits)
	assert.Equal(t, 240, cmp.Classical.Bits)
}

func TestCompareInvalidNumBits(t *testing.T) {
	ex := Extractor{Backend: sim.NewScripted(), Qubits: 4}
	_, err := Compare(context.Background(), ex, nil, 0, TestConfig{})
	assert.ErrorIs(t, err, qerr.ErrInvalidParameter)
}

func TestCompareBackendFailure(t *testing.T) {
	ex := Extractor{Backend: sim.NewScripted(), Qubits: 4}
	_, err := Compare(context.Background(), ex, nil, 16, TestConfig{})
	assert.ErrorIs(t, err, qerr.ErrBackendUnavailable)
}
