package qrng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/qrng-backend/internal/qerr"
	"github.com/xtding233/qrng-backend/internal/rng"
)

func mustBits(t *testing.T, s string) BitString {
	t.Helper()
	bits, err := ParseBits(s, SourceQuantum)
	require.NoError(t, err)
	return bits
}

func TestMapToRangeModulo(t *testing.T) {
	// 1010 = 10, span 7 => 10 mod 7 = 3
	v, err := MapToRange(mustBits(t, "1010"), 0, 6)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)

	// offset range
	v, err = MapToRange(mustBits(t, "1010"), 5, 11)
	require.NoError(t, err)
	assert.Equal(t, int64(8), v)
}

func TestMapToRangeIsPure(t *testing.T) {
	bits := mustBits(t, "110101")
	a, err := MapToRange(bits, -20, 17)
	require.NoError(t, err)
	b, err := MapToRange(bits, -20, 17)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestMapToRangeAlwaysInBounds(t *testing.T) {
	src := rng.NewSeeded(11)
	for i := 0; i < 200; i++ {
		bits, err := Classical(8, src)
		require.NoError(t, err)
		v, err := MapToRange(bits, -5, 5)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, int64(-5))
		assert.LessOrEqual(t, v, int64(5))
	}
}

func TestMapToRangeSingleBit(t *testing.T) {
	v, err := MapToRange(mustBits(t, "0"), 0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	v, err = MapToRange(mustBits(t, "1"), 0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestMapToRangeInvalidArguments(t *testing.T) {
	_, err := MapToRange(mustBits(t, "01"), 5, 4)
	assert.ErrorIs(t, err, qerr.ErrInvalidParameter)

	// 2 bits cannot represent a span of 8
	_, err = MapToRange(mustBits(t, "01"), 0, 7)
	assert.ErrorIs(t, err, qerr.ErrInvalidParameter)
}

func TestMapToRangeUnbiasedRejectsAndRedraws(t *testing.T) {
	// span 6 over 3 bits: limit = floor(8/6)*6 = 6, so 111 (7) and
	// 110 (6) are rejected
	draws := []string{"111", "110", "010"}
	i := 0
	draw := func() (BitString, error) {
		s := draws[i]
		i++
		return ParseBits(s, SourceQuantum)
	}

	v, err := MapToRangeUnbiased(0, 5, draw)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
	assert.Equal(t, 3, i)
}

func TestMapToRangeUnbiasedAcceptsFirstDraw(t *testing.T) {
	draw := func() (BitString, error) {
		return ParseBits("101", SourceQuantum)
	}
	v, err := MapToRangeUnbiased(0, 5, draw)
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)
}

func TestMapToRangeUnbiasedPropagatesDrawError(t *testing.T) {
	draw := func() (BitString, error) {
		return BitString{}, qerr.Unavailable("draw", assert.AnError)
	}
	_, err := MapToRangeUnbiased(0, 5, draw)
	assert.ErrorIs(t, err, qerr.ErrBackendUnavailable)
}

func TestMapToRangeUnbiasedInvalidBounds(t *testing.T) {
	draw := func() (BitString, error) {
		return ParseBits("10", SourceQuantum)
	}
	_, err := MapToRangeUnbiased(9, 3, draw)
	assert.ErrorIs(t, err, qerr.ErrInvalidParameter)
}

func TestMapToRangeUnbiasedCoversRangeUniformly(t *testing.T) {
	src := rng.NewSeeded(77)
	counts := make(map[int64]int)
	for i := 0; i < 6000; i++ {
		v, err := MapToRangeUnbiased(0, 5, func() (BitString, error) {
			return Classical(3, src)
		})
		require.NoError(t, err)
		counts[v]++
	}
	for v := int64(0); v <= 5; v++ {
		// 1000 expected per value; rejection sampling keeps it flat
		assert.InDelta(t, 1000, counts[v], 150, "value %d", v)
	}
}
