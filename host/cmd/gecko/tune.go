package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"gecko/cmu"
	"gecko/device/efm32gg"
)

var (
	tuneSCBTP bool

	tuneCmd = &cobra.Command{
		Use:   "tune FREQ...",
		Short: "Show the flash wait states and HFXO boost for core frequencies",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "FREQUENCY\tTIER\tFLASH\tBOOST\tHFLE")
			for _, arg := range args {
				hz, err := parseHz(arg)
				if err != nil {
					return err
				}
				t := cmu.TierFor(hz)
				mode := t.Mode
				if tuneSCBTP {
					mode = t.ModeSCBTP
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%v\n", formatHz(hz), t.Level, cmu.ModeName(mode),
					boostName(t.Boost>>efm32gg.CMU_CTRL_HFXOBUFCUR_Pos), t.HFLE)
			}
			return tw.Flush()
		},
	}
)

func init() {
	tuneCmd.Flags().BoolVar(&tuneSCBTP, "scbtp", false, "use the SCBTP flash read modes")
}
