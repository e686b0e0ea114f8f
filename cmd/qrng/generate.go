package main

import (
	"github.com/spf13/cobra"

	"github.com/xtding233/qrng-backend/internal/qrng"
	"github.com/xtding233/qrng-backend/internal/rng"
)

func generateCmd() *cobra.Command {
	var (
		numBits   int
		classical bool
		entangled bool
		seed      uint64
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random bitstring and test its balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				bits qrng.BitString
				err  error
			)
			if classical {
				var src rng.RandomSource
				if seed != 0 {
					src = rng.NewSeeded(seed)
				}
				bits, err = qrng.Classical(numBits, src)
			} else {
				bits, err = extractor(entangled).Bits(cmd.Context(), numBits)
			}
			if err != nil {
				return err
			}
			freq, err := qrng.Frequency(bits, 0)
			if err != nil {
				return err
			}
			return printJSON(map[string]any{
				"source":    bits.Source(),
				"bits":      bits.String(),
				"length":    bits.Len(),
				"frequency": freq,
			})
		},
	}
	cmd.Flags().IntVarP(&numBits, "bits", "n", 128, "number of bits to generate")
	cmd.Flags().BoolVar(&classical, "classical", false, "use the classical pseudo-random source")
	cmd.Flags().BoolVar(&entangled, "entangled", false, "use the entangling circuit variant")
	cmd.Flags().Uint64Var(&seed, "classical-seed", 0, "seed for the classical source (0 = crypto entropy)")
	return cmd
}
