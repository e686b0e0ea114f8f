package qrng

import (
	"math/big"

	"github.com/xtding233/qrng-backend/internal/qerr"
)

// MapToRange maps a bitstring onto the inclusive integer range
// [low, high]. The bits are read as an unsigned big-endian integer v
// and the result is low + (v mod span). This is the documented-bias
// policy: when span does not divide 2^len evenly, the low end of the
// range is marginally more probable. Use MapToRangeUnbiased when that
// bias matters. Pure function: same bits and bounds, same result.
func MapToRange(bits BitString, low, high int64) (int64, error) {
	const op = "map to range"
	span, err := checkRange(op, bits.Len(), low, high)
	if err != nil {
		return 0, err
	}
	mod := new(big.Int).Mod(bits.Int(), span)
	return low + mod.Int64(), nil
}

// MapToRangeUnbiased maps onto [low, high] by rejection sampling: the
// draw function supplies candidate bitstrings, and values at or above
// floor(2^n/span)*span are discarded and re-drawn so every range value
// is exactly equally likely. All draws must have the same length.
func MapToRangeUnbiased(low, high int64, draw func() (BitString, error)) (int64, error) {
	const op = "map to range unbiased"
	bits, err := draw()
	if err != nil {
		return 0, err
	}
	span, err := checkRange(op, bits.Len(), low, high)
	if err != nil {
		return 0, err
	}

	// largest multiple of span representable in n bits
	max := new(big.Int).Lsh(big.NewInt(1), uint(bits.Len()))
	limit := new(big.Int).Mul(new(big.Int).Div(max, span), span)

	for {
		v := bits.Int()
		if v.Cmp(limit) < 0 {
			return low + new(big.Int).Mod(v, span).Int64(), nil
		}
		bits, err = draw()
		if err != nil {
			return 0, err
		}
	}
}

// checkRange validates bounds and representability, returning the span
// as a big integer.
func checkRange(op string, numBits int, low, high int64) (*big.Int, error) {
	if numBits < 1 {
		return nil, qerr.InvalidParam(op, "numBits", numBits)
	}
	if low > high {
		return nil, qerr.InvalidParam(op, "low", low)
	}
	span := new(big.Int).Sub(big.NewInt(high), big.NewInt(low))
	span.Add(span, big.NewInt(1))
	max := new(big.Int).Lsh(big.NewInt(1), uint(numBits))
	if max.Cmp(span) < 0 {
		return nil, qerr.InvalidParam(op, "numBits", numBits)
	}
	return span, nil
}
