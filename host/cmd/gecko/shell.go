package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/cobra"

	"gecko/cmu"
	"gecko/device/efm32gg"
	"gecko/mmio"
	"gecko/sim"
)

var (
	shellRev uint8

	shellCmd = &cobra.Command{
		Use:   "shell",
		Short: "Interactive clock tree session on the simulated board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newMachine(boardName, shellRev)
			if err != nil {
				return err
			}
			sh := &shell{m: m, out: cmd.OutOrStdout()}
			return sh.run(cmd.InOrStdin(), true)
		},
	}
)

func init() {
	shellCmd.Flags().Uint8Var(&shellRev, "rev", 0, "production revision to simulate (default from board)")
}

var errQuit = errors.New("quit")

// shell executes clock commands against a simulated board.
type shell struct {
	m   *machine
	out io.Writer
}

func (s *shell) run(in io.Reader, prompt bool) error {
	fmt.Fprintf(s.out, "gecko shell on %s, 'help' for commands\n", s.m.profile.Name)
	scanner := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprint(s.out, "> ")
		}
		if !scanner.Scan() {
			break
		}
		err := s.exec(scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		return err
	}
	return nil
}

func (s *shell) exec(line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "quit", "exit", "q":
		return errQuit

	case "help", "?":
		s.help()

	case "show":
		s.m.printConfiguration(s.out)

	case "set":
		if len(args) < 1 || len(args) > 3 {
			return fmt.Errorf("usage: set SOURCE [HCLKDIV [COREDIV]]")
		}
		src, ok := cmu.ParseSource(args[0])
		if !ok {
			return fmt.Errorf("%w: %q", cmu.ErrUnknownSource, args[0])
		}
		divs, err := parseDivisors(args[1:], 2)
		if err != nil {
			return err
		}
		freq, err := s.m.ctrl.SetClock(src, divs[0], divs[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "HFPERCLK %s\n", formatHz(freq))

	case "div":
		if len(args) != 2 {
			return fmt.Errorf("usage: div COREDIV PERDIV")
		}
		divs, err := parseDivisors(args, 2)
		if err != nil {
			return err
		}
		s.m.ctrl.ApplyDivisors(divs[0], divs[1])
		fmt.Fprintf(s.out, "HFCORECLK %s\n", formatHz(s.m.ctrl.CoreClock()))

	case "hdiv":
		if len(args) != 1 {
			return fmt.Errorf("usage: hdiv DIV")
		}
		divs, err := parseDivisors(args, 1)
		if err != nil {
			return err
		}
		s.m.ctrl.SetHFClockDivisor(divs[0])
		fmt.Fprintf(s.out, "HFCORECLK %s\n", formatHz(s.m.ctrl.CoreClock()))

	case "tune":
		if len(args) != 1 {
			return fmt.Errorf("usage: tune FREQ")
		}
		hz, err := parseHz(args[0])
		if err != nil {
			return err
		}
		s.m.ctrl.Tune(hz)
		t := s.m.ctrl.Tuning()
		fmt.Fprintf(s.out, "flash %s, boost %s, HFLE %v\n", cmu.ModeName(t.Mode), boostName(t.Boost), t.HFLE)

	case "regs":
		s.m.printRegisters(s.out)

	case "writes":
		s.m.printWrites(s.out)
		s.m.dev.ClearWrites()

	case "trace":
		cmu.SetDebugWriter(func(line string) { fmt.Fprintln(s.out, line) })
		cmu.DumpTrace()
		cmu.SetDebugWriter(nil)

	case "stuck":
		// make the next enable of an oscillator fail
		if len(args) != 1 {
			return fmt.Errorf("usage: stuck SOURCE")
		}
		bit, err := readyBit(args[0])
		if err != nil {
			return err
		}
		rev := s.m.ctrl.ProdRev()
		s.m.dev = sim.New(sim.WithProdRev(rev), sim.WithStuckOscillator(bit))
		s.m.ctrl = cmu.New(s.m.dev, append(s.m.profile.Options(), cmu.WithWaiter(mmio.Waiter{Attempts: 1000}))...)
		fmt.Fprintf(s.out, "board reset, %s will never report ready\n", strings.ToLower(args[0]))

	case "reset":
		s.m.dev.Reset()
		s.m.ctrl.UpdateCoreClock()
		cmu.ClearTrace()
		fmt.Fprintln(s.out, "board reset")

	default:
		return fmt.Errorf("unknown command: %s (type 'help' for available commands)", cmd)
	}
	return nil
}

func (s *shell) help() {
	fmt.Fprintln(s.out, "\nAvailable commands:")
	fmt.Fprintln(s.out, "  set SOURCE [HCLK [CORE]]  - Select clock source and divisors")
	fmt.Fprintln(s.out, "  div CORE PER              - Set core and peripheral prescalers")
	fmt.Fprintln(s.out, "  hdiv DIV                  - Set the HFCLK divisor")
	fmt.Fprintln(s.out, "  tune FREQ                 - Tune flash and HFXO boost for a frequency")
	fmt.Fprintln(s.out, "  show                      - Print the clock tree")
	fmt.Fprintln(s.out, "  regs                      - Print clock registers")
	fmt.Fprintln(s.out, "  writes                    - Print and clear the register write log")
	fmt.Fprintln(s.out, "  trace                     - Dump recorded clock events")
	fmt.Fprintln(s.out, "  stuck SOURCE              - Reset with an oscillator that never starts")
	fmt.Fprintln(s.out, "  reset                     - Reset the simulated board")
	fmt.Fprintln(s.out, "  quit/exit/q               - Exit the shell")
	fmt.Fprintln(s.out)
}

// parseDivisors parses up to n divisor arguments. Missing ones are 1.
func parseDivisors(args []string, n int) ([]uint32, error) {
	divs := make([]uint32, n)
	for i := range divs {
		divs[i] = 1
		if i < len(args) {
			v, err := parseUint32(args[i])
			if err != nil {
				return nil, err
			}
			divs[i] = v
		}
	}
	return divs, nil
}

func readyBit(name string) (uint32, error) {
	src, ok := cmu.ParseSource(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", cmu.ErrUnknownSource, name)
	}
	switch {
	case src.IsHFRCO():
		return efm32gg.CMU_STATUS_HFRCORDY, nil
	case src == cmu.LFRCO:
		return efm32gg.CMU_STATUS_LFRCORDY, nil
	case src == cmu.LFXO:
		return efm32gg.CMU_STATUS_LFXORDY, nil
	}
	return efm32gg.CMU_STATUS_HFXORDY, nil
}
