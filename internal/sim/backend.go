// Package sim provides the circuit execution service: the Backend
// capability interface, a local statevector simulator, and a scripted
// backend for deterministic tests.
package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/xtding233/qrng-backend/internal/circuit"
)

// Backend executes a circuit for a given shot count and returns the
// measurement outcome counts. Implementations must tolerate concurrent
// independent calls. Stochastic in value, deterministic in format:
// every outcome string has one character per measured qubit, qubit 0
// leftmost (most significant).
type Backend interface {
	Execute(ctx context.Context, spec *circuit.Spec, shots int) (Outcome, error)
}

// Outcome maps fixed-width outcome strings to occurrence counts for
// one execution. Counts always sum to the requested shot count.
type Outcome struct {
	Counts map[string]int
	Shots  int
}

// Shot builds a single-shot outcome, mostly for scripted backends.
func Shot(s string) Outcome {
	return Outcome{Counts: map[string]int{s: 1}, Shots: 1}
}

// Single returns the sole outcome string of a single-shot execution.
func (o Outcome) Single() (string, error) {
	if o.Shots != 1 || len(o.Counts) != 1 {
		return "", fmt.Errorf("expected one outcome from one shot, got %d over %d shots", len(o.Counts), o.Shots)
	}
	for s, n := range o.Counts {
		if n != 1 {
			return "", fmt.Errorf("single-shot outcome %q has count %d", s, n)
		}
		return s, nil
	}
	return "", errors.New("empty outcome")
}

// Top returns the most frequent outcome string, breaking ties by the
// lexicographically smallest string so the result is stable.
func (o Outcome) Top() string {
	var best string
	bestN := -1
	for s, n := range o.Counts {
		if n > bestN || (n == bestN && s < best) {
			best, bestN = s, n
		}
	}
	return best
}
