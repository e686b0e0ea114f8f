package main

import (
	"github.com/spf13/cobra"

	"github.com/xtding233/qrng-backend/internal/qrng"
	"github.com/xtding233/qrng-backend/internal/rng"
)

func compareCmd() *cobra.Command {
	var (
		numBits    int
		seed       uint64
		minPattern int
		maxPattern int
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare quantum output against a classical source",
		RunE: func(cmd *cobra.Command, args []string) error {
			var src rng.RandomSource
			if seed != 0 {
				src = rng.NewSeeded(seed)
			}
			cfg := qrng.TestConfig{MinPattern: minPattern, MaxPattern: maxPattern}
			cmp, err := qrng.Compare(cmd.Context(), extractor(false), src, numBits, cfg)
			if err != nil {
				return err
			}
			return printJSON(cmp)
		},
	}
	cmd.Flags().IntVarP(&numBits, "bits", "n", 1024, "bits to generate per source")
	cmd.Flags().Uint64Var(&seed, "classical-seed", 0, "seed for the classical source (0 = crypto entropy)")
	cmd.Flags().IntVar(&minPattern, "min", 2, "smallest pattern length to test")
	cmd.Flags().IntVar(&maxPattern, "max", 6, "largest pattern length to test")
	return cmd
}
