package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"gecko/board"
	"gecko/cmu"
	"gecko/device/efm32gg"
	"gecko/sim"
)

// machine is a simulated board: register model plus clock controller.
type machine struct {
	profile board.Profile
	dev     *sim.Device
	ctrl    *cmu.Controller
}

func newMachine(name string, rev uint8) (*machine, error) {
	p, err := board.Lookup(name)
	if err != nil {
		return nil, err
	}
	if rev == 0 {
		rev = p.ProdRev
	}
	dev := sim.New(sim.WithProdRev(rev))
	return &machine{
		profile: p,
		dev:     dev,
		ctrl:    cmu.New(dev, p.Options()...),
	}, nil
}

// printConfiguration writes the clock tree and tuning state.
func (m *machine) printConfiguration(w io.Writer) {
	cfg := m.ctrl.Configuration()
	tuning := m.ctrl.Tuning()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "board\t%s (%s, rev %d)\n", m.profile.Name, m.profile.Chip, m.ctrl.ProdRev())
	fmt.Fprintf(tw, "source\t%s\t%s\n", cfg.Source, formatHz(cfg.BaseFreq))
	fmt.Fprintf(tw, "HFCLK\t/%d\t%s\n", cfg.HFClockDiv, formatHz(cfg.HFClockFreq))
	fmt.Fprintf(tw, "HFCORECLK\t/%d\t%s\n", cfg.CoreDiv, formatHz(cfg.CoreFreq))
	fmt.Fprintf(tw, "HFPERCLK\t/%d\t%s\n", cfg.PerDiv, formatHz(cfg.PerFreq))
	fmt.Fprintf(tw, "flash\t%s\n", cmu.ModeName(tuning.Mode))
	fmt.Fprintf(tw, "HFXO boost\t%s\n", boostName(tuning.Boost))
	fmt.Fprintf(tw, "HFLE\t%v\n", tuning.HFLE)
	tw.Flush()
}

// printWrites writes the register store log.
func (m *machine) printWrites(w io.Writer) {
	for _, wr := range m.dev.Writes() {
		fmt.Fprintf(w, "%-16s <- %08X\n", registerName(wr.Addr), wr.Value)
	}
}

// printRegisters writes the clock related registers.
func (m *machine) printRegisters(w io.Writer) {
	for _, addr := range clockRegisters {
		fmt.Fprintf(w, "%-16s %08X\n", registerName(addr), m.dev.Peek(addr))
	}
}

var clockRegisters = []uintptr{
	efm32gg.CMU_CTRL,
	efm32gg.CMU_HFCORECLKDIV,
	efm32gg.CMU_HFPERCLKDIV,
	efm32gg.CMU_HFRCOCTRL,
	efm32gg.CMU_STATUS,
	efm32gg.CMU_HFPERCLKEN0,
	efm32gg.MSC_READCTRL,
}

var registerNames = map[uintptr]string{
	efm32gg.CMU_CTRL:         "CMU_CTRL",
	efm32gg.CMU_HFCORECLKDIV: "CMU_HFCORECLKDIV",
	efm32gg.CMU_HFPERCLKDIV:  "CMU_HFPERCLKDIV",
	efm32gg.CMU_HFRCOCTRL:    "CMU_HFRCOCTRL",
	efm32gg.CMU_OSCENCMD:     "CMU_OSCENCMD",
	efm32gg.CMU_CMD:          "CMU_CMD",
	efm32gg.CMU_STATUS:       "CMU_STATUS",
	efm32gg.CMU_HFPERCLKEN0:  "CMU_HFPERCLKEN0",
	efm32gg.MSC_READCTRL:     "MSC_READCTRL",
}

func registerName(addr uintptr) string {
	if name, ok := registerNames[addr]; ok {
		return name
	}
	return fmt.Sprintf("%08X", addr)
}

func boostName(boost uint32) string {
	switch boost {
	case efm32gg.CMU_CTRL_HFXOBUFCUR_BOOSTUPTO32MHZ >> efm32gg.CMU_CTRL_HFXOBUFCUR_Pos:
		return "up to 32 MHz"
	case efm32gg.CMU_CTRL_HFXOBUFCUR_BOOSTABOVE32MHZ >> efm32gg.CMU_CTRL_HFXOBUFCUR_Pos:
		return "above 32 MHz"
	}
	return fmt.Sprintf("reserved (%d)", boost)
}

// formatHz prints a frequency with the largest unit that keeps it exact
// to three decimals.
func formatHz(hz uint32) string {
	switch {
	case hz >= 1000000 && hz%1000 == 0:
		return strconv.FormatFloat(float64(hz)/1e6, 'f', -1, 64) + " MHz"
	case hz >= 1000:
		return strconv.FormatFloat(float64(hz)/1e3, 'f', -1, 64) + " kHz"
	}
	return strconv.FormatUint(uint64(hz), 10) + " Hz"
}

// parseHz parses "48M", "825k", "32.768kHz" or a plain number of Hz.
func parseHz(s string) (uint32, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	t = strings.TrimSuffix(t, "hz")
	mult := 1.0
	switch {
	case strings.HasSuffix(t, "m"):
		mult, t = 1e6, strings.TrimSuffix(t, "m")
	case strings.HasSuffix(t, "k"):
		mult, t = 1e3, strings.TrimSuffix(t, "k")
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil || v < 0 || v*mult > 0xFFFFFFFF {
		return 0, fmt.Errorf("invalid frequency %q", s)
	}
	return uint32(v*mult + 0.5), nil
}

// parseUint32 parses a divisor argument.
func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return uint32(v), nil
}
