// Package qrng assembles random bitstrings from circuit executions,
// generates classical comparison bitstrings, maps bitstrings to
// integer ranges and certifies output quality with statistical tests.
package qrng

import (
	"math/big"

	"github.com/xtding233/qrng-backend/internal/qerr"
)

// Source tags where a bitstring came from.
type Source string

const (
	SourceQuantum   Source = "quantum"
	SourceClassical Source = "classical"
)

// BitString is an immutable ordered sequence of bits tagged with its
// source. The zero value is an empty, untagged bitstring.
type BitString struct {
	source Source
	bits   []byte // one element per bit, values 0 or 1
}

// newBitString takes ownership of bits; callers must not retain them.
func newBitString(source Source, bits []byte) BitString {
	return BitString{source: source, bits: bits}
}

// ParseBits builds a BitString from a string of '0' and '1' runes.
func ParseBits(s string, source Source) (BitString, error) {
	const op = "parse bits"
	if len(s) == 0 {
		return BitString{}, qerr.InvalidParam(op, "bits", s)
	}
	bits := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			bits[i] = 0
		case '1':
			bits[i] = 1
		default:
			return BitString{}, qerr.InvalidParam(op, "bits", s)
		}
	}
	return newBitString(source, bits), nil
}

// Len reports the number of bits.
func (b BitString) Len() int { return len(b.bits) }

// Source reports the generation source tag.
func (b BitString) Source() Source { return b.source }

// At returns bit i as 0 or 1.
func (b BitString) At(i int) byte { return b.bits[i] }

// Ones counts the set bits.
func (b BitString) Ones() int {
	n := 0
	for _, bit := range b.bits {
		n += int(bit)
	}
	return n
}

// String renders the bits as a '0'/'1' string, first bit leftmost.
func (b BitString) String() string {
	out := make([]byte, len(b.bits))
	for i, bit := range b.bits {
		out[i] = '0' + bit
	}
	return string(out)
}

// Int interprets the bits as an unsigned big-endian integer, first bit
// most significant.
func (b BitString) Int() *big.Int {
	v := new(big.Int)
	for _, bit := range b.bits {
		v.Lsh(v, 1)
		if bit == 1 {
			v.Or(v, big.NewInt(1))
		}
	}
	return v
}
