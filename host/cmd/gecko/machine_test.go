package main

import (
	"bytes"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestFormatHz(t *testing.T) {
	testCases := map[uint32]string{
		48000000: "48 MHz",
		6600000:  "6.6 MHz",
		3500000:  "3.5 MHz",
		825000:   "825 kHz",
		32768:    "32.768 kHz",
		4666666:  "4666.666 kHz",
		116:      "116 Hz",
	}
	for hz, expected := range testCases {
		qt.Check(t, formatHz(hz), qt.Equals, expected)
	}
}

func TestParseHz(t *testing.T) {
	c := qt.New(t)
	testCases := map[string]uint32{
		"48M":       48000000,
		"48MHz":     48000000,
		"825k":      825000,
		"32.768kHz": 32768,
		" 14000000": 14000000,
		"6.6m":      6600000,
	}
	for s, expected := range testCases {
		hz, err := parseHz(s)
		c.Assert(err, qt.IsNil, qt.Commentf("%q", s))
		c.Assert(hz, qt.Equals, expected, qt.Commentf("%q", s))
	}

	for _, s := range []string{"", "fast", "-1M", "5000M"} {
		_, err := parseHz(s)
		c.Assert(err, qt.IsNotNil, qt.Commentf("%q", s))
	}
}

func TestPrintConfiguration(t *testing.T) {
	c := qt.New(t)
	m, err := newMachine("stk3700", 0)
	c.Assert(err, qt.IsNil)

	var buf bytes.Buffer
	m.printConfiguration(&buf)
	out := buf.String()
	c.Assert(out, qt.Contains, "hfrco14")
	c.Assert(out, qt.Contains, "14 MHz")
	c.Assert(out, qt.Contains, "rev 19")
}

func TestRunPlan(t *testing.T) {
	c := qt.New(t)
	m, err := newMachine("stk3700", 0)
	c.Assert(err, qt.IsNil)

	var buf bytes.Buffer
	err = runPlan(&buf, m, "hfxo", 2, 2, true, true)
	c.Assert(err, qt.IsNil)
	out := buf.String()
	c.Assert(out, qt.Contains, "SetClock returned 12 MHz")
	c.Assert(out, qt.Contains, "[CMU] SET_CLOCK src=hfxo")
	c.Assert(out, qt.Contains, "CMU_OSCENCMD")
	c.Assert(strings.Index(out, "MSC_READCTRL"), qt.Not(qt.Equals), -1)

	err = runPlan(&buf, m, "pll", 1, 1, false, false)
	c.Assert(err, qt.ErrorMatches, `cmu: unknown clock source: "pll"`)
}

func TestRunPlanRevision(t *testing.T) {
	c := qt.New(t)
	m, err := newMachine("stk3700", 18)
	c.Assert(err, qt.IsNil)

	var buf bytes.Buffer
	c.Assert(runPlan(&buf, m, "hfrco1", 1, 1, false, false), qt.IsNil)
	c.Assert(buf.String(), qt.Contains, "SetClock returned 1 MHz")
}

func TestUnknownBoard(t *testing.T) {
	_, err := newMachine("nucleo", 0)
	qt.Assert(t, err, qt.ErrorMatches, "unknown board: nucleo")
}
