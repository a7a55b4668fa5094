package main

import (
	"fmt"

	"github.com/andresmejia3/hide/pkg/stego"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <carrier|auto> <stego-image>",
	Short: "Recover a message from an image, optionally auto-detecting the carrier",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		carrierName, path := args[0], args[1]

		if carrierName == "auto" {
			carrier, message, err := stego.DecodeAny(path)
			if err != nil {
				log.Fatal().Err(err).Msg("no carrier recognised this image")
			}
			log.Info().Str("carrier", carrier).Msg("auto-detected carrier")
			fmt.Println(message)
			return
		}

		c, err := stego.Lookup(carrierName)
		if err != nil {
			log.Fatal().Err(err).Msg("unknown carrier")
		}
		message, err := c.Decode(path)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to decode message")
		}
		fmt.Println(message)
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}
