package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/andresmejia3/hide/pkg/stego"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var capacityCmd = &cobra.Command{
	Use:   "capacity [carrier] <cover-image>",
	Short: "Report carrier capacity for a cover image",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		var carrierNames []string
		var cover string
		if len(args) == 2 {
			carrierNames = []string{args[0]}
			cover = args[1]
		} else {
			carrierNames = []string{"lsb", "dct", "dwt"}
			cover = args[0]
		}

		wtr := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(wtr, "Carrier\tCapacity (Bytes)")
		fmt.Fprintln(wtr, "-------\t----------------")
		for _, name := range carrierNames {
			c, err := stego.Lookup(name)
			if err != nil {
				log.Fatal().Err(err).Msg("unknown carrier")
			}
			bytes, err := c.Capacity(cover)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to compute capacity")
			}
			fmt.Fprintf(wtr, "%s\t%d\n", name, bytes)
		}
		wtr.Flush()
	},
}

func init() {
	rootCmd.AddCommand(capacityCmd)
}
