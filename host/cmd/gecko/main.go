// Command gecko plans and inspects EFM32GG clock configurations on the host
// and talks to the board console.
//
//	gecko boards                       list board profiles
//	gecko plan -b stk3700 -s hfrco7    apply a configuration to the simulator
//	gecko tune 24M                     show flash/oscillator tuning for a frequency
//	gecko shell                        interactive clock tree session
//	gecko term -d /dev/ttyACM0         serial console
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	boardName string

	rootCmd = &cobra.Command{
		Use:          "gecko",
		Short:        "EFM32GG clock tree planner and board console",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&boardName, "board", "b", "stk3700", "board profile (see 'gecko boards')")
	rootCmd.AddCommand(boardsCmd, planCmd, tuneCmd, shellCmd, termCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
