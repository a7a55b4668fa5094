package main

import (
	"fmt"

	"github.com/andresmejia3/hide/pkg/stego"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <image-path>",
	Short: "Inspect an image's dimensions, format, and any detected stego header",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		info, err := stego.Info(args[0])
		if err != nil {
			log.Fatal().Err(err).Msg("failed to read image info")
		}

		fmt.Println("Image Information:")
		fmt.Println("-------------------")
		fmt.Printf("Width:              %d\n", info.Width)
		fmt.Printf("Height:             %d\n", info.Height)
		fmt.Printf("Format:             %s\n", info.Format)
		if info.DetectedCarrier == "" {
			fmt.Println("Detected Carrier:   (none)")
			return
		}
		fmt.Printf("Detected Carrier:   %s\n", info.DetectedCarrier)
		fmt.Printf("Declared Payload:   %d bytes\n", info.DeclaredPayloadBytes)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
