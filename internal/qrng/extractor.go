package qrng

import (
	"context"
	"fmt"
	"sync"

	"github.com/xtding233/qrng-backend/internal/circuit"
	"github.com/xtding233/qrng-backend/internal/qerr"
	"github.com/xtding233/qrng-backend/internal/sim"
)

// Extractor drives backend executions to assemble quantum bitstrings
// of arbitrary length from a k-qubit circuit.
type Extractor struct {
	Backend sim.Backend
	// Qubits is the circuit width k. Each execution contributes one
	// k-bit chunk, qubit 0 as the chunk's most significant bit.
	Qubits int
	// Workers > 1 runs chunk executions concurrently. Chunks stay
	// index-addressed, so concatenation order is execution order no
	// matter which finishes first.
	Workers int
	// NewCircuit overrides the circuit builder. Nil means the plain
	// Hadamard circuit from circuit.NewRandomCircuit.
	NewCircuit func(qubits int) (*circuit.Spec, error)
}

// Bits produces exactly numBits random bits. It executes the circuit
// ceil(numBits/k) times at one shot each, concatenates the chunk
// strings in execution order and truncates the trailing excess. Any
// execution failure fails the whole request; no partial bitstrings.
func (e Extractor) Bits(ctx context.Context, numBits int) (BitString, error) {
	const op = "generate quantum bits"
	if numBits < 1 {
		return BitString{}, qerr.InvalidParam(op, "numBits", numBits)
	}
	build := e.NewCircuit
	if build == nil {
		build = circuit.NewRandomCircuit
	}
	spec, err := build(e.Qubits)
	if err != nil {
		return BitString{}, err
	}
	k := spec.Qubits()
	runs := (numBits + k - 1) / k

	chunks := make([]string, runs)
	if e.Workers > 1 && runs > 1 {
		err = e.runConcurrent(ctx, spec, chunks)
	} else {
		err = e.runSequential(ctx, spec, chunks)
	}
	if err != nil {
		return BitString{}, qerr.Unavailable(op, err)
	}

	bits := make([]byte, 0, runs*k)
	for _, chunk := range chunks {
		for i := 0; i < len(chunk); i++ {
			bits = append(bits, chunk[i]-'0')
		}
	}
	return newBitString(SourceQuantum, bits[:numBits]), nil
}

func (e Extractor) runSequential(ctx context.Context, spec *circuit.Spec, chunks []string) error {
	for i := range chunks {
		s, err := e.oneShot(ctx, spec)
		if err != nil {
			return err
		}
		chunks[i] = s
	}
	return nil
}

func (e Extractor) runConcurrent(ctx context.Context, spec *circuit.Spec, chunks []string) error {
	workers := e.Workers
	if workers > len(chunks) {
		workers = len(chunks)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	errCh := make(chan error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				s, err := e.oneShot(ctx, spec)
				if err != nil {
					errCh <- err
					cancel()
					return
				}
				chunks[i] = s
			}
		}()
	}

	for i := range chunks {
		select {
		case jobs <- i:
		case <-ctx.Done():
		}
	}
	close(jobs)
	wg.Wait()

	select {
	case err := <-errCh:
		return err
	default:
		return ctx.Err()
	}
}

// oneShot executes a single shot and returns its k-bit outcome string.
func (e Extractor) oneShot(ctx context.Context, spec *circuit.Spec) (string, error) {
	out, err := e.Backend.Execute(ctx, spec, 1)
	if err != nil {
		return "", err
	}
	s, err := out.Single()
	if err != nil {
		return "", err
	}
	if len(s) != spec.Qubits() {
		return "", fmt.Errorf("outcome %q is not %d bits wide", s, spec.Qubits())
	}
	return s, nil
}
