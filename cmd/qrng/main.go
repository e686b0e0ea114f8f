// Command qrng is the CLI front end for the QRNG core: generate
// bitstrings, map them to integer ranges, run statistical tests and
// compare the quantum source against a classical one, all against the
// local statevector simulator.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xtding233/qrng-backend/internal/circuit"
	"github.com/xtding233/qrng-backend/internal/qrng"
	"github.com/xtding233/qrng-backend/internal/rng"
	"github.com/xtding233/qrng-backend/internal/sim"
)

var (
	flagQubits  int
	flagWorkers int
	flagSeed    uint64
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "qrng",
		Short:         "Quantum random number generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().IntVar(&flagQubits, "qubits", 4, "circuit width in qubits")
	root.PersistentFlags().IntVar(&flagWorkers, "workers", 1, "concurrent chunk executions")
	root.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "seed the simulator for reproducible runs (0 = crypto entropy)")

	root.AddCommand(generateCmd())
	root.AddCommand(intCmd())
	root.AddCommand(testCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(calibrateCmd())
	root.AddCommand(trialsCmd())
	return root
}

// backend builds the simulator honoring the --seed flag.
func backend() sim.Backend {
	var src rng.RandomSource
	if flagSeed != 0 {
		src = rng.NewSeeded(flagSeed)
	}
	return sim.NewStatevector(src)
}

func extractor(entangled bool) qrng.Extractor {
	ex := qrng.Extractor{
		Backend: backend(),
		Qubits:  flagQubits,
		Workers: flagWorkers,
	}
	if entangled {
		ex.NewCircuit = circuit.NewEntangledCircuit
	}
	return ex
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
