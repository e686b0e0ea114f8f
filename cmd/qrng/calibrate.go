package main

import (
	"github.com/spf13/cobra"

	"github.com/xtding233/qrng-backend/internal/qrng"
)

func calibrateCmd() *cobra.Command {
	var (
		state string
		shots int
	)
	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Verify measurement against a prepared basis state",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := qrng.VerifyCalibration(cmd.Context(), backend(), flagQubits, state, shots); err != nil {
				return err
			}
			return printJSON(map[string]any{
				"status": "ok",
				"state":  state,
				"shots":  shots,
			})
		},
	}
	cmd.Flags().StringVar(&state, "state", "0000", "basis state to prepare, one character per qubit")
	cmd.Flags().IntVar(&shots, "shots", 256, "measurement repetitions")
	return cmd
}

func trialsCmd() *cobra.Command {
	var (
		trials  int
		numBits int
	)
	cmd := &cobra.Command{
		Use:   "trials",
		Short: "Measure ones-ratio statistics over repeated generations",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := qrng.RunTrials(cmd.Context(), extractor(false), trials, numBits)
			if err != nil {
				return err
			}
			return printJSON(report)
		},
	}
	cmd.Flags().IntVar(&trials, "trials", 1000, "number of generation trials")
	cmd.Flags().IntVarP(&numBits, "bits", "n", 16, "bits per trial")
	return cmd
}
