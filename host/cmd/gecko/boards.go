package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"gecko/board"
)

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "List board profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tHFXO\tCLOCK\tDESCRIPTION")
		for _, name := range board.Names() {
			p, err := board.Lookup(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%s\t%s\t%s /%d /%d\t%s\n", p.Name, formatHz(p.HFXOFrequency),
				p.Clock.Source, p.Clock.HClkDiv, p.Clock.CoreDiv, p.Description)
		}
		return tw.Flush()
	},
}
