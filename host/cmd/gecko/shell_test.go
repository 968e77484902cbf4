package main

import (
	"bytes"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"gecko/cmu"
)

func newTestShell(t *testing.T) (*shell, *bytes.Buffer) {
	m, err := newMachine("stk3700", 0)
	qt.Assert(t, err, qt.IsNil)
	buf := &bytes.Buffer{}
	return &shell{m: m, out: buf}, buf
}

func TestShellSet(t *testing.T) {
	testCases := []struct {
		line     string
		expected string
	}{
		{"set hfxo", "HFPERCLK 48 MHz"},
		{"set hfrco7 2 4", "HFPERCLK 825 kHz"},
		{"set 'HFRCO28' 8", "HFPERCLK 3.5 MHz"},
		{"set lfrco 1 1", "HFPERCLK 32.768 kHz"},
		{"set hfrco21 0 3", "HFPERCLK 5.25 MHz"},
	}

	for _, tc := range testCases {
		t.Run(tc.line, func(t *testing.T) {
			sh, buf := newTestShell(t)
			qt.Assert(t, sh.exec(tc.line), qt.IsNil)
			qt.Assert(t, strings.TrimSpace(buf.String()), qt.Equals, tc.expected)
		})
	}
}

func TestShellErrors(t *testing.T) {
	testCases := []struct {
		line    string
		pattern string
	}{
		{"set", "usage: set .*"},
		{"set pll", `cmu: unknown clock source: "pll"`},
		{"set hfxo x", `invalid number "x"`},
		{"div 1", "usage: div .*"},
		{"tune fast", `invalid frequency "fast"`},
		{"set 'hfxo", "EOF found when expecting closing quote"},
		{"blink", "unknown command: blink .*"},
	}

	for _, tc := range testCases {
		t.Run(tc.line, func(t *testing.T) {
			sh, _ := newTestShell(t)
			qt.Assert(t, sh.exec(tc.line), qt.ErrorMatches, tc.pattern)
		})
	}
}

func TestShellDivisors(t *testing.T) {
	c := qt.New(t)
	sh, buf := newTestShell(t)

	c.Assert(sh.exec("div 4 2"), qt.IsNil)
	c.Assert(buf.String(), qt.Equals, "HFCORECLK 3.5 MHz\n")
	c.Assert(sh.m.ctrl.Configuration().PerFreq, qt.Equals, uint32(7000000))

	buf.Reset()
	c.Assert(sh.exec("hdiv 2"), qt.IsNil)
	c.Assert(buf.String(), qt.Equals, "HFCORECLK 1.75 MHz\n")
}

func TestShellTune(t *testing.T) {
	c := qt.New(t)
	sh, buf := newTestShell(t)

	c.Assert(sh.exec("tune 48M"), qt.IsNil)
	c.Assert(buf.String(), qt.Equals, "flash WS2, boost above 32 MHz, HFLE true\n")
}

func TestShellStuckOscillator(t *testing.T) {
	c := qt.New(t)
	sh, buf := newTestShell(t)

	c.Assert(sh.exec("stuck hfxo"), qt.IsNil)
	c.Assert(buf.String(), qt.Contains, "hfxo will never report ready")

	err := sh.exec("set hfxo")
	c.Assert(err, qt.ErrorIs, cmu.ErrNotReady)

	// other sources still work
	c.Assert(sh.exec("set hfrco28"), qt.IsNil)
}

func TestShellRegsAndWrites(t *testing.T) {
	c := qt.New(t)
	sh, buf := newTestShell(t)

	c.Assert(sh.exec("regs"), qt.IsNil)
	c.Assert(buf.String(), qt.Contains, "CMU_STATUS       00000403")

	buf.Reset()
	c.Assert(sh.exec("set hfxo"), qt.IsNil)
	buf.Reset()
	c.Assert(sh.exec("writes"), qt.IsNil)
	c.Assert(buf.String(), qt.Contains, "CMU_CMD          <- 00000002")
	c.Assert(sh.m.dev.Writes(), qt.HasLen, 0)
}

func TestShellRun(t *testing.T) {
	c := qt.New(t)
	sh, buf := newTestShell(t)

	script := "help\n\nset hfxo 1 1\nshow\nreset\nshow\nquit\nset lfxo\n"
	c.Assert(sh.run(strings.NewReader(script), false), qt.IsNil)

	out := buf.String()
	c.Assert(out, qt.Contains, "Available commands:")
	c.Assert(out, qt.Contains, "HFPERCLK 48 MHz")
	c.Assert(out, qt.Contains, "board reset")
	c.Assert(strings.Count(out, "hfrco14"), qt.Equals, 1)
	c.Assert(out, qt.Not(qt.Contains), "32.768")
	c.Assert(sh.m.ctrl.Configuration().Source, qt.Equals, cmu.HFRCO14MHz)
}
