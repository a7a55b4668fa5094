package main

import (
	"fmt"

	"github.com/andresmejia3/hide/pkg/stego"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var analyzeHeatmap string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <cover-image> <stego-image>",
	Short: "Compare a cover image against its stego counterpart (MSE/PSNR + heatmap)",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		result, err := stego.Analyze(args[0], args[1], analyzeHeatmap)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to analyze images")
		}
		fmt.Printf("MSE:  %.4f\n", result.MSE)
		fmt.Printf("PSNR: %.2f dB\n", result.PSNR)
		fmt.Printf("Heatmap written to %s\n", analyzeHeatmap)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeHeatmap, "heatmap", "o", "heatmap.png", "Output path for the difference heatmap")
}
