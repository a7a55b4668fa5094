package main

import (
	"os"

	"github.com/andresmejia3/hide/pkg/stego"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var encodeFromFile string

var encodeCmd = &cobra.Command{
	Use:   "encode <carrier> <cover> <out> [message]",
	Short: "Hide a message in an image using the given carrier",
	Args:  cobra.RangeArgs(3, 4),
	Run: func(cmd *cobra.Command, args []string) {
		carrierName, cover, out := args[0], args[1], args[2]

		var message []byte
		switch {
		case encodeFromFile != "":
			b, err := os.ReadFile(encodeFromFile)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to read message file")
			}
			message = b
		case len(args) == 4:
			message = []byte(args[3])
		default:
			log.Fatal().Msg("either a message argument or --file must be provided")
		}

		c, err := stego.Lookup(carrierName)
		if err != nil {
			log.Fatal().Err(err).Msg("unknown carrier")
		}

		log.Info().Str("carrier", carrierName).Str("cover", cover).Msg("encoding message")
		if err := c.Encode(cover, message, out); err != nil {
			log.Fatal().Err(err).Msg("failed to encode message")
		}
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().StringVarP(&encodeFromFile, "file", "f", "", "Path to a file to hide instead of a literal message argument")
}
