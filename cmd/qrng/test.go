package main

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xtding233/qrng-backend/internal/qrng"
)

func testCmd() *cobra.Command {
	var (
		bitsArg   string
		file      string
		threshold float64
		length    int
		level     float64
	)
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Run the frequency (and optionally pattern) test on a bitstring",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := bitsArg
			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				raw = strings.TrimSpace(string(data))
			}
			if raw == "" {
				return errors.New("provide --bits or --file")
			}
			bits, err := qrng.ParseBits(raw, "")
			if err != nil {
				return err
			}

			freq, err := qrng.Frequency(bits, threshold)
			if err != nil {
				return err
			}
			out := map[string]any{"frequency": freq}
			if length > 0 {
				pat, err := qrng.Pattern(bits, length, level)
				if err != nil {
					return err
				}
				out["pattern"] = pat
			}
			return printJSON(out)
		},
	}
	cmd.Flags().StringVar(&bitsArg, "bits", "", "bitstring of '0' and '1' characters")
	cmd.Flags().StringVar(&file, "file", "", "file containing the bitstring")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "frequency test threshold (0 = default)")
	cmd.Flags().IntVar(&length, "length", 0, "pattern length to test (0 = skip pattern test)")
	cmd.Flags().Float64Var(&level, "level", 0, "pattern test significance level (0 = default)")
	return cmd
}
