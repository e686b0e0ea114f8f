package qrng

import (
	"github.com/xtding233/qrng-backend/internal/qerr"
	"github.com/xtding233/qrng-backend/internal/rng"
)

// Classical produces numBits independent uniform bits from a
// non-quantum pseudo-random source, for comparison against quantum
// output. A nil src uses the crypto-backed default; a seeded source
// (rng.NewSeeded) makes the output fully reproducible.
func Classical(numBits int, src rng.RandomSource) (BitString, error) {
	if numBits < 1 {
		return BitString{}, qerr.InvalidParam("generate classical bits", "numBits", numBits)
	}
	if src == nil {
		src = rng.Default()
	}
	bits := make([]byte, numBits)
	for i := range bits {
		bits[i] = rng.Bit(src)
	}
	return newBitString(SourceClassical, bits), nil
}
