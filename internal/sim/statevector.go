package sim

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
	"strings"
	"sync"

	"github.com/xtding233/qrng-backend/internal/circuit"
	"github.com/xtding233/qrng-backend/internal/rng"
)

// MaxQubits bounds the statevector size (2^n amplitudes).
const MaxQubits = 20

// Statevector is an in-process simulator. It evolves a complex
// amplitude vector through the circuit's gates and samples one basis
// state per shot from the squared amplitudes. Amplitudes live on the
// stack of each Execute call; only the random source draw is guarded,
// so concurrent executions are safe.
type Statevector struct {
	mu  sync.Mutex
	src rng.RandomSource
}

// NewStatevector creates a simulator sampling from src. A nil src
// falls back to the crypto-backed default source.
func NewStatevector(src rng.RandomSource) *Statevector {
	if src == nil {
		src = rng.Default()
	}
	return &Statevector{src: src}
}

// Execute runs the circuit for the requested number of shots.
func (b *Statevector) Execute(ctx context.Context, spec *circuit.Spec, shots int) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	if spec == nil {
		return Outcome{}, fmt.Errorf("execute: nil circuit spec")
	}
	if shots < 1 {
		return Outcome{}, fmt.Errorf("execute: shots=%d", shots)
	}
	n := spec.Qubits()
	if n < 1 || n > MaxQubits {
		return Outcome{}, fmt.Errorf("execute: qubits=%d outside 1..%d", n, MaxQubits)
	}

	amps := make([]complex128, 1<<n)
	amps[0] = 1
	for _, g := range spec.Gates() {
		if err := apply(amps, n, g); err != nil {
			return Outcome{}, err
		}
	}

	probs := make([]float64, len(amps))
	for i, a := range amps {
		probs[i] = real(a)*real(a) + imag(a)*imag(a)
	}

	measured := spec.Measured()
	counts := make(map[string]int)
	for s := 0; s < shots; s++ {
		idx := b.sample(probs)
		counts[outcomeString(idx, n, measured)]++
	}
	return Outcome{Counts: counts, Shots: shots}, nil
}

// qubit q occupies bit n-1-q of the basis index, so qubit 0 is the
// most significant bit of every outcome.
func qubitMask(n, q int) int { return 1 << (n - 1 - q) }

func apply(amps []complex128, n int, g circuit.Gate) error {
	switch g.Kind {
	case circuit.GateH:
		q, err := singleTarget(n, g)
		if err != nil {
			return err
		}
		mask := qubitMask(n, q)
		inv := complex(1/math.Sqrt2, 0)
		for i := range amps {
			if i&mask == 0 {
				a0, a1 := amps[i], amps[i|mask]
				amps[i] = (a0 + a1) * inv
				amps[i|mask] = (a0 - a1) * inv
			}
		}
	case circuit.GateX:
		q, err := singleTarget(n, g)
		if err != nil {
			return err
		}
		mask := qubitMask(n, q)
		for i := range amps {
			if i&mask == 0 {
				amps[i], amps[i|mask] = amps[i|mask], amps[i]
			}
		}
	case circuit.GateS:
		q, err := singleTarget(n, g)
		if err != nil {
			return err
		}
		mask := qubitMask(n, q)
		for i := range amps {
			if i&mask != 0 {
				amps[i] *= complex(0, 1)
			}
		}
	case circuit.GateT:
		q, err := singleTarget(n, g)
		if err != nil {
			return err
		}
		mask := qubitMask(n, q)
		phase := cmplx.Exp(complex(0, math.Pi/4))
		for i := range amps {
			if i&mask != 0 {
				amps[i] *= phase
			}
		}
	case circuit.GateCX:
		if len(g.Targets) != 2 {
			return fmt.Errorf("execute: cx gate needs control and target, got %v", g.Targets)
		}
		c, t := g.Targets[0], g.Targets[1]
		if c < 0 || c >= n || t < 0 || t >= n || c == t {
			return fmt.Errorf("execute: cx targets %v invalid for %d qubits", g.Targets, n)
		}
		cm, tm := qubitMask(n, c), qubitMask(n, t)
		for i := range amps {
			if i&cm != 0 && i&tm == 0 {
				amps[i], amps[i|tm] = amps[i|tm], amps[i]
			}
		}
	default:
		return fmt.Errorf("execute: unsupported gate %q", g.Kind)
	}
	return nil
}

func singleTarget(n int, g circuit.Gate) (int, error) {
	if len(g.Targets) != 1 {
		return 0, fmt.Errorf("execute: %s gate needs one target, got %v", g.Kind, g.Targets)
	}
	q := g.Targets[0]
	if q < 0 || q >= n {
		return 0, fmt.Errorf("execute: %s target %d outside %d qubits", g.Kind, q, n)
	}
	return q, nil
}

// sample draws one basis index from the probability distribution.
func (b *Statevector) sample(probs []float64) int {
	b.mu.Lock()
	u := b.src.Float64()
	b.mu.Unlock()

	acc := 0.0
	for i, p := range probs {
		acc += p
		if u < acc {
			return i
		}
	}
	// float rounding can leave acc marginally below 1
	return len(probs) - 1
}

func outcomeString(idx, n int, measured []int) string {
	var sb strings.Builder
	sb.Grow(len(measured))
	for _, q := range measured {
		if idx&qubitMask(n, q) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
