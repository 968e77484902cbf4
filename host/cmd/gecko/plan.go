package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"gecko/cmu"
)

var (
	planOpts = struct {
		source  string
		hclkDiv uint32
		coreDiv uint32
		rev     uint8
		writes  bool
		trace   bool
	}{}

	planCmd = &cobra.Command{
		Use:   "plan",
		Short: "Apply a clock configuration to the simulated board",
		Long: "Run SetClock against the register simulator of a board and print the resulting clock tree.\n" +
			"Source and divisors default to the board profile.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newMachine(boardName, planOpts.rev)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("source") {
				planOpts.source = m.profile.Clock.Source
			}
			if !cmd.Flags().Changed("hclk") {
				planOpts.hclkDiv = m.profile.Clock.HClkDiv
			}
			if !cmd.Flags().Changed("core") {
				planOpts.coreDiv = m.profile.Clock.CoreDiv
			}
			return runPlan(cmd.OutOrStdout(), m, planOpts.source, planOpts.hclkDiv, planOpts.coreDiv, planOpts.writes, planOpts.trace)
		},
	}
)

func init() {
	planCmd.Flags().StringVarP(&planOpts.source, "source", "s", "", "clock source (hfrco1..hfrco28, lfrco, lfxo, hfxo)")
	planCmd.Flags().Uint32Var(&planOpts.hclkDiv, "hclk", 1, "HFCLK divisor 1..8")
	planCmd.Flags().Uint32Var(&planOpts.coreDiv, "core", 1, "core/peripheral divisor, rounded to a power of two")
	planCmd.Flags().Uint8Var(&planOpts.rev, "rev", 0, "production revision to simulate (default from board)")
	planCmd.Flags().BoolVarP(&planOpts.writes, "writes", "w", false, "print the register write sequence")
	planCmd.Flags().BoolVarP(&planOpts.trace, "trace", "t", false, "print clock transition events")
}

func runPlan(w io.Writer, m *machine, source string, hclkDiv, coreDiv uint32, writes, trace bool) error {
	src, ok := cmu.ParseSource(source)
	if !ok {
		return fmt.Errorf("%w: %q", cmu.ErrUnknownSource, source)
	}

	if trace {
		cmu.SetDebugWriter(func(s string) { fmt.Fprintln(w, s) })
		cmu.SetDebugEnabled(true)
		defer func() {
			cmu.SetDebugEnabled(false)
			cmu.SetDebugWriter(nil)
		}()
	}

	m.dev.ClearWrites()
	freq, err := m.ctrl.SetClock(src, hclkDiv, coreDiv)
	if err != nil {
		return err
	}

	if writes {
		m.printWrites(w)
		fmt.Fprintln(w)
	}
	m.printConfiguration(w)
	fmt.Fprintf(w, "SetClock returned %s\n", formatHz(freq))
	return nil
}
