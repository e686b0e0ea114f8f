package rng

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource abstracts the entropy feeding classical bit generation
// and simulator measurement sampling. Implementations must return
// values in [0, 1).
type RandomSource interface {
	Float64() float64
}

// crypto random : default generation method
type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	// Read 53 random bits => [0, 1)
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		// fall back to math/rand/v2
		return rand.Float64()
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return float64(u) / (1 << 53)
}

func Default() RandomSource { return cryptoRNG{} }

// Replicable RNG for tests, calibration runs and seeded classical output.
type seededRNG struct{ r *rand.Rand }

func NewSeeded(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }

// Bit draws a single uniform bit from src.
func Bit(src RandomSource) byte {
	if src.Float64() < 0.5 {
		return 0
	}
	return 1
}
