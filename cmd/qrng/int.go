package main

import (
	"math/big"

	"github.com/spf13/cobra"

	"github.com/xtding233/qrng-backend/internal/qrng"
)

func intCmd() *cobra.Command {
	var (
		low      int64
		high     int64
		numBits  int
		unbiased bool
	)
	cmd := &cobra.Command{
		Use:   "int",
		Short: "Draw a random integer from an inclusive range",
		RunE: func(cmd *cobra.Command, args []string) error {
			n := numBits
			if n == 0 {
				n = minBits(low, high)
			}
			ex := extractor(false)

			var (
				value int64
				err   error
			)
			if unbiased {
				value, err = qrng.MapToRangeUnbiased(low, high, func() (qrng.BitString, error) {
					return ex.Bits(cmd.Context(), n)
				})
			} else {
				bits, berr := ex.Bits(cmd.Context(), n)
				if berr != nil {
					return berr
				}
				value, err = qrng.MapToRange(bits, low, high)
			}
			if err != nil {
				return err
			}
			return printJSON(map[string]any{
				"value":    value,
				"low":      low,
				"high":     high,
				"unbiased": unbiased,
			})
		},
	}
	cmd.Flags().Int64Var(&low, "low", 1, "inclusive lower bound")
	cmd.Flags().Int64Var(&high, "high", 6, "inclusive upper bound")
	cmd.Flags().IntVarP(&numBits, "bits", "n", 0, "bits to draw (0 = minimum for the range)")
	cmd.Flags().BoolVar(&unbiased, "unbiased", false, "use rejection sampling instead of modulo mapping")
	return cmd
}

func minBits(low, high int64) int {
	if low > high {
		return 1
	}
	span := new(big.Int).Sub(big.NewInt(high), big.NewInt(low))
	if span.Sign() == 0 {
		return 1
	}
	return span.BitLen()
}
