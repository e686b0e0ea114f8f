package qrng

import (
	"context"
	"fmt"

	"github.com/xtding233/qrng-backend/internal/circuit"
	"github.com/xtding233/qrng-backend/internal/qerr"
	"github.com/xtding233/qrng-backend/internal/sim"
)

// TrialReport summarizes the ones-ratio observed across repeated
// bit-generation trials.
type TrialReport struct {
	Trials       int   `json:"trials"`
	BitsPerTrial int   `json:"bits_per_trial"`
	OnesRatio    Stats `json:"ones_ratio"`
}

// RunTrials repeats quantum bit generation and records the fraction of
// set bits per trial. An unbiased backend should keep the mean close
// to 0.5.
func RunTrials(ctx context.Context, ex Extractor, trials, numBits int) (TrialReport, error) {
	const op = "run trials"
	if trials < 1 {
		return TrialReport{}, qerr.InvalidParam(op, "trials", trials)
	}
	if numBits < 1 {
		return TrialReport{}, qerr.InvalidParam(op, "numBits", numBits)
	}

	ratios := make([]float64, trials)
	for t := 0; t < trials; t++ {
		bits, err := ex.Bits(ctx, numBits)
		if err != nil {
			return TrialReport{}, err
		}
		ratios[t] = float64(bits.Ones()) / float64(numBits)
	}
	return TrialReport{
		Trials:       trials,
		BitsPerTrial: numBits,
		OnesRatio:    summarize(ratios),
	}, nil
}

// VerifyCalibration prepares a fixed basis state with no superposition
// gate, executes it for the given shot count and checks that every
// measurement reports the prepared state verbatim. A mismatch means
// the measurement path itself is broken.
func VerifyCalibration(ctx context.Context, b sim.Backend, qubits int, prepared string, shots int) error {
	const op = "verify calibration"
	if shots < 1 {
		return qerr.InvalidParam(op, "shots", shots)
	}
	spec, err := circuit.NewCalibrationCircuit(qubits, prepared)
	if err != nil {
		return err
	}
	out, err := b.Execute(ctx, spec, shots)
	if err != nil {
		return qerr.Unavailable(op, err)
	}

	total := 0
	for s, n := range out.Counts {
		if s != prepared {
			return fmt.Errorf("%s: prepared %q but measured %q %d times", op, prepared, s, n)
		}
		total += n
	}
	if total != shots {
		return fmt.Errorf("%s: outcome counts sum to %d, want %d", op, total, shots)
	}
	return nil
}
