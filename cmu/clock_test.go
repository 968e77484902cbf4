package cmu_test

import (
	"errors"
	"testing"

	"gecko/cmu"
	"gecko/device/efm32gg"
	"gecko/mmio"
	"gecko/sim"
)

func TestSetClockHFRCOFrequencies(t *testing.T) {
	for _, rev := range []uint8{18, 19} {
		for _, src := range cmu.Sources() {
			if !src.IsHFRCO() {
				continue
			}
			nominal := cmu.NominalFrequency(src, rev)
			for hclkDiv := uint32(1); hclkDiv <= 8; hclkDiv++ {
				for coreDiv := uint32(1); coreDiv <= 16; coreDiv++ {
					ctrl := cmu.New(sim.New(sim.WithProdRev(rev)))

					freq, err := ctrl.SetClock(src, hclkDiv, coreDiv)
					if err != nil {
						t.Fatalf("SetClock(%s, %d, %d) failed: %v", src, hclkDiv, coreDiv, err)
					}

					expected := nominal / hclkDiv / (1 << cmu.NearestPow2Exp(coreDiv))
					if freq != expected {
						t.Errorf("rev %d SetClock(%s, %d, %d) = %d, expected %d", rev, src, hclkDiv, coreDiv, freq, expected)
					}

					cfg := ctrl.Configuration()
					if cfg.Source != src || cfg.HFClockDiv != hclkDiv || cfg.PerFreq != freq || cfg.CoreFreq != freq {
						t.Errorf("rev %d SetClock(%s, %d, %d): readback %+v", rev, src, hclkDiv, coreDiv, cfg)
					}
					if ctrl.CoreClock() != cfg.BaseFreq/(cfg.HFClockDiv*cfg.CoreDiv) {
						t.Errorf("core clock %d does not match %d/(%d*%d)", ctrl.CoreClock(), cfg.BaseFreq, cfg.HFClockDiv, cfg.CoreDiv)
					}
				}
			}
		}
	}
}

func TestRevisionDependentBands(t *testing.T) {
	testCases := []struct {
		src      cmu.Source
		rev      uint8
		expected uint32
	}{
		{cmu.HFRCO1MHz, 18, 1000000},
		{cmu.HFRCO1MHz, 19, 1200000},
		{cmu.HFRCO7MHz, 18, 7000000},
		{cmu.HFRCO7MHz, 19, 6600000},
		{cmu.HFRCO11MHz, 18, 11000000},
		{cmu.HFRCO11MHz, 19, 11000000},
		{cmu.HFRCO28MHz, 25, 28000000},
	}

	for _, tc := range testCases {
		ctrl := cmu.New(sim.New(sim.WithProdRev(tc.rev)))
		if _, err := ctrl.SetClock(tc.src, 1, 1); err != nil {
			t.Fatalf("SetClock(%s) failed: %v", tc.src, err)
		}
		if base := ctrl.ReadConfiguration(nil); base != tc.expected {
			t.Errorf("rev %d %s: base frequency %d, expected %d", tc.rev, tc.src, base, tc.expected)
		}
	}
}

func TestSetClockWritesCalibration(t *testing.T) {
	dev := sim.New(sim.WithCalibration(0x44332211, 0x00006655))
	ctrl := cmu.New(dev)

	expected := map[cmu.Source]uint32{
		cmu.HFRCO1MHz:  0x011,
		cmu.HFRCO7MHz:  0x122,
		cmu.HFRCO11MHz: 0x233,
		cmu.HFRCO14MHz: 0x344,
		cmu.HFRCO21MHz: 0x455,
		cmu.HFRCO28MHz: 0x566,
	}
	for src, value := range expected {
		if _, err := ctrl.SetClock(src, 1, 1); err != nil {
			t.Fatalf("SetClock(%s) failed: %v", src, err)
		}
		if got := dev.Peek(efm32gg.CMU_HFRCOCTRL); got != value {
			t.Errorf("%s: HFRCOCTRL = %03X, expected %03X", src, got, value)
		}
	}
}

func TestSetClockClampsHFClockDiv(t *testing.T) {
	testCases := []struct {
		hclkDiv, expected uint32
	}{
		{0, 1},
		{9, 8},
		{0xFFFFFFFF, 8},
	}

	for _, tc := range testCases {
		ctrl := cmu.New(sim.New())
		freq, err := ctrl.SetClock(cmu.HFRCO28MHz, tc.hclkDiv, 1)
		if err != nil {
			t.Fatalf("SetClock failed: %v", err)
		}
		if cfg := ctrl.Configuration(); cfg.HFClockDiv != tc.expected {
			t.Errorf("hclkDiv %d: applied %d, expected %d", tc.hclkDiv, cfg.HFClockDiv, tc.expected)
		}
		if freq != 28000000/tc.expected {
			t.Errorf("hclkDiv %d: frequency %d", tc.hclkDiv, freq)
		}
	}
}

func TestSetClockHFRCO14Readback(t *testing.T) {
	ctrl := cmu.New(sim.New())

	freq, err := ctrl.SetClock(cmu.HFRCO14MHz, 1, 1)
	if err != nil {
		t.Fatalf("SetClock failed: %v", err)
	}

	var cfg cmu.Configuration
	base := ctrl.ReadConfiguration(&cfg)
	expected := cmu.Configuration{
		Source:      cmu.HFRCO14MHz,
		BaseFreq:    14000000,
		HFClockDiv:  1,
		HFClockFreq: 14000000,
		CoreDivCode: 0,
		CoreDiv:     1,
		CoreFreq:    14000000,
		PerDivCode:  0,
		PerDiv:      1,
		PerFreq:     14000000,
	}
	if cfg != expected {
		t.Errorf("readback %+v, expected %+v", cfg, expected)
	}
	if base != 14000000 || freq != 14000000 {
		t.Errorf("base %d freq %d, expected 14000000", base, freq)
	}
}

func TestSetClockInvalidSource(t *testing.T) {
	for _, src := range []cmu.Source{cmu.None, cmu.HFXO + 1, 200} {
		dev := sim.New()
		ctrl := cmu.New(dev)
		dev.ClearWrites()

		cmuBefore := dev.Snapshot(efm32gg.CMU_BASE, efm32gg.CMU_BASE+0x400)
		mscBefore := dev.Snapshot(efm32gg.MSC_BASE, efm32gg.MSC_BASE+0x400)

		freq, err := ctrl.SetClock(src, 1, 1)
		if freq != 0 || !errors.Is(err, cmu.ErrUnknownSource) {
			t.Errorf("SetClock(%s) = %d, %v; expected 0, ErrUnknownSource", src, freq, err)
		}
		if writes := dev.Writes(); len(writes) != 0 {
			t.Errorf("SetClock(%s) wrote %d registers", src, len(writes))
		}
		cmuAfter := dev.Snapshot(efm32gg.CMU_BASE, efm32gg.CMU_BASE+0x400)
		mscAfter := dev.Snapshot(efm32gg.MSC_BASE, efm32gg.MSC_BASE+0x400)
		for addr, v := range cmuBefore {
			if cmuAfter[addr] != v {
				t.Errorf("register %08X changed: %08X -> %08X", addr, v, cmuAfter[addr])
			}
		}
		for addr, v := range mscBefore {
			if mscAfter[addr] != v {
				t.Errorf("register %08X changed: %08X -> %08X", addr, v, mscAfter[addr])
			}
		}
	}
}

func TestSetClockCrystals(t *testing.T) {
	testCases := []struct {
		src      cmu.Source
		enable   uint32
		sel      uint32
		expected uint32
	}{
		{cmu.HFXO, efm32gg.CMU_OSCENCMD_HFXOEN, efm32gg.CMU_STATUS_HFXOSEL, 48000000},
		{cmu.LFXO, efm32gg.CMU_OSCENCMD_LFXOEN, efm32gg.CMU_STATUS_LFXOSEL, 32768},
		{cmu.LFRCO, efm32gg.CMU_OSCENCMD_LFRCOEN, efm32gg.CMU_STATUS_LFRCOSEL, 32768},
	}

	for _, tc := range testCases {
		dev := sim.New()
		ctrl := cmu.New(dev)

		freq, err := ctrl.SetClock(tc.src, 1, 1)
		if err != nil {
			t.Fatalf("SetClock(%s) failed: %v", tc.src, err)
		}
		if freq != tc.expected {
			t.Errorf("SetClock(%s) = %d, expected %d", tc.src, freq, tc.expected)
		}
		if dev.Peek(efm32gg.CMU_STATUS)&tc.sel == 0 {
			t.Errorf("SetClock(%s) did not switch the HFCLK mux", tc.src)
		}

		enables := 0
		for _, w := range dev.Writes() {
			if w.Addr == efm32gg.CMU_OSCENCMD && w.Value&tc.enable != 0 {
				enables++
			}
		}
		if enables != 1 {
			t.Errorf("SetClock(%s) issued %d enable commands, expected 1", tc.src, enables)
		}

		// Already running: no second enable command
		dev.ClearWrites()
		if _, err := ctrl.SetClock(tc.src, 2, 1); err != nil {
			t.Fatalf("second SetClock(%s) failed: %v", tc.src, err)
		}
		for _, w := range dev.Writes() {
			if w.Addr == efm32gg.CMU_OSCENCMD {
				t.Errorf("second SetClock(%s) re-enabled the oscillator", tc.src)
			}
		}
	}
}

func TestSetClockHFXOTuning(t *testing.T) {
	ctrl := cmu.New(sim.New())

	if _, err := ctrl.SetClock(cmu.HFXO, 1, 1); err != nil {
		t.Fatalf("SetClock failed: %v", err)
	}
	tuning := ctrl.Tuning()
	if tuning.Mode != efm32gg.MSC_READCTRL_MODE_WS2 || !tuning.HFLE || tuning.Boost != 3 {
		t.Errorf("48 MHz tuning %+v", tuning)
	}

	// Dropping to 12 MHz relaxes the wait states
	if _, err := ctrl.SetClock(cmu.HFXO, 4, 1); err != nil {
		t.Fatalf("SetClock failed: %v", err)
	}
	tuning = ctrl.Tuning()
	if tuning.Mode != efm32gg.MSC_READCTRL_MODE_WS0 || tuning.HFLE || tuning.Boost != 1 {
		t.Errorf("12 MHz tuning %+v", tuning)
	}
}

func TestSetClockOrdering(t *testing.T) {
	dev := sim.New()
	ctrl := cmu.New(dev)
	dev.ClearWrites()

	if _, err := ctrl.SetClock(cmu.HFRCO7MHz, 2, 1); err != nil {
		t.Fatalf("SetClock failed: %v", err)
	}

	var mode uint32 = 0xFF
	var hfclkDiv uint32 = 0xFF
	switched := false
	for _, w := range dev.Writes() {
		switch w.Addr {
		case efm32gg.MSC_READCTRL:
			mode = w.Value & efm32gg.MSC_READCTRL_MODE_Msk
		case efm32gg.CMU_CTRL:
			if !switched {
				hfclkDiv = (w.Value & efm32gg.CMU_CTRL_HFCLKDIV_Msk) >> efm32gg.CMU_CTRL_HFCLKDIV_Pos
			}
		case efm32gg.CMU_CMD:
			switched = true
			if mode != efm32gg.MSC_READCTRL_MODE_WS2 {
				t.Errorf("mux switched with flash mode %s, expected WS2", cmu.ModeName(mode))
			}
			if hfclkDiv != 0 {
				t.Errorf("mux switched with HFCLKDIV field %d, expected 0", hfclkDiv)
			}
		}
	}
	if !switched {
		t.Fatal("no HFCLKSEL command written")
	}
	if mode != efm32gg.MSC_READCTRL_MODE_WS0 {
		t.Errorf("final flash mode %s, expected WS0", cmu.ModeName(mode))
	}
}

// modeAtSwitch returns the flash mode in effect at each write selected by
// match, in write order.
func modeAtSwitch(writes []sim.Write, initial uint32, match func(sim.Write) bool) []uint32 {
	mode := initial
	var modes []uint32
	for _, w := range writes {
		if w.Addr == efm32gg.MSC_READCTRL {
			mode = w.Value & efm32gg.MSC_READCTRL_MODE_Msk
		}
		if match(w) {
			modes = append(modes, mode)
		}
	}
	return modes
}

func TestSetClockSlowCrystalOrdering(t *testing.T) {
	testCases := []struct {
		hfxo uint32
		src  cmu.Source
	}{
		{8000000, cmu.HFRCO28MHz},
		{8000000, cmu.HFRCO21MHz},
		{4000000, cmu.HFRCO28MHz},
		{25000000, cmu.HFRCO28MHz},
	}

	for _, tc := range testCases {
		dev := sim.New()
		ctrl := cmu.New(dev, cmu.WithHFXOFrequency(tc.hfxo))
		dev.ClearWrites()

		if _, err := ctrl.SetClock(tc.src, 1, 1); err != nil {
			t.Fatalf("SetClock(%s) failed: %v", tc.src, err)
		}

		modes := modeAtSwitch(dev.Writes(), efm32gg.MSC_READCTRL_RESETVALUE&efm32gg.MSC_READCTRL_MODE_Msk,
			func(w sim.Write) bool { return w.Addr == efm32gg.CMU_CMD })
		if len(modes) != 1 {
			t.Fatalf("hfxo %d: %d HFCLKSEL commands, expected 1", tc.hfxo, len(modes))
		}
		if modes[0] != efm32gg.MSC_READCTRL_MODE_WS2 {
			t.Errorf("hfxo %d: mux switched to %s with flash mode %s, expected WS2",
				tc.hfxo, tc.src, cmu.ModeName(modes[0]))
		}
		if got := ctrl.Tuning().Mode; got != efm32gg.MSC_READCTRL_MODE_WS1 {
			t.Errorf("hfxo %d: final flash mode %s, expected WS1", tc.hfxo, cmu.ModeName(got))
		}
	}
}

func TestSetHFClockDivisorSlowCrystalOrdering(t *testing.T) {
	dev := sim.New()
	ctrl := cmu.New(dev, cmu.WithHFXOFrequency(8000000))

	// 28 MHz / 4 = 7 MHz runs at WS0
	if _, err := ctrl.SetClock(cmu.HFRCO28MHz, 4, 1); err != nil {
		t.Fatalf("SetClock failed: %v", err)
	}
	if got := ctrl.Tuning().Mode; got != efm32gg.MSC_READCTRL_MODE_WS0 {
		t.Fatalf("flash mode %s at 7 MHz, expected WS0", cmu.ModeName(got))
	}
	dev.ClearWrites()

	ctrl.SetHFClockDivisor(1)

	modes := modeAtSwitch(dev.Writes(), efm32gg.MSC_READCTRL_MODE_WS0, func(w sim.Write) bool {
		return w.Addr == efm32gg.CMU_CTRL && w.Value&efm32gg.CMU_CTRL_HFCLKDIV_Msk == 0
	})
	if len(modes) == 0 {
		t.Fatal("HFCLKDIV never cleared")
	}
	if modes[0] != efm32gg.MSC_READCTRL_MODE_WS2 {
		t.Errorf("HFCLK divisor dropped to 1 with flash mode %s, expected WS2", cmu.ModeName(modes[0]))
	}
	if ctrl.CoreClock() != 28000000 {
		t.Errorf("core clock %d, expected 28000000", ctrl.CoreClock())
	}
}

func TestSetClockNotReady(t *testing.T) {
	dev := sim.New(sim.WithStuckOscillator(efm32gg.CMU_STATUS_HFXORDY))
	ctrl := cmu.New(dev, cmu.WithWaiter(mmio.Waiter{Attempts: 10}))

	freq, err := ctrl.SetClock(cmu.HFXO, 1, 1)
	if freq != 0 {
		t.Errorf("frequency %d, expected 0", freq)
	}
	if !errors.Is(err, cmu.ErrNotReady) || !errors.Is(err, mmio.ErrTimeout) {
		t.Fatalf("error %v, expected ErrNotReady wrapping ErrTimeout", err)
	}
	var nre *cmu.NotReadyError
	if !errors.As(err, &nre) || nre.Source != cmu.HFXO {
		t.Errorf("error %v does not name HFXO", err)
	}
	if cfg := ctrl.Configuration(); cfg.Source != cmu.HFRCO14MHz {
		t.Errorf("source changed to %s after failed switch", cfg.Source)
	}
}

func TestSetClockReadyLatency(t *testing.T) {
	testCases := []struct {
		latency  int
		attempts uint32
		ok       bool
	}{
		{5, 10, true},
		{5, 5, true},
		{5, 4, false},
		{50, mmio.Forever, true},
	}

	for _, tc := range testCases {
		dev := sim.New(sim.WithReadyLatency(tc.latency))
		ctrl := cmu.New(dev, cmu.WithWaiter(mmio.Waiter{Attempts: tc.attempts}))

		_, err := ctrl.SetClock(cmu.HFRCO21MHz, 1, 1)
		if (err == nil) != tc.ok {
			t.Errorf("latency %d attempts %d: err=%v, expected ok=%v", tc.latency, tc.attempts, err, tc.ok)
		}
	}
}

func TestSystemCoreClock(t *testing.T) {
	defer cmu.SetController(nil)

	cmu.SetController(nil)
	if cmu.SystemCoreClock() != 0 {
		t.Errorf("SystemCoreClock without controller = %d", cmu.SystemCoreClock())
	}

	ctrl := cmu.New(sim.New())
	cmu.SetController(ctrl)
	if cmu.SystemCoreClock() != 14000000 {
		t.Errorf("reset core clock %d, expected 14000000", cmu.SystemCoreClock())
	}

	if _, err := ctrl.SetClock(cmu.HFXO, 2, 2); err != nil {
		t.Fatalf("SetClock failed: %v", err)
	}
	if cmu.SystemCoreClock() != 12000000 {
		t.Errorf("core clock %d, expected 12000000", cmu.SystemCoreClock())
	}
	if cmu.MustController() != ctrl {
		t.Error("MustController returned a different controller")
	}
}

func TestMustControllerPanics(t *testing.T) {
	defer cmu.SetController(nil)
	cmu.SetController(nil)

	defer func() { _ = recover() }()
	cmu.MustController()
	t.Errorf("did not panic")
}

func TestEnableClock(t *testing.T) {
	dev := sim.New()
	ctrl := cmu.New(dev)
	dev.Poke(efm32gg.CMU_HFPERCLKDIV, 0)

	ctrl.EnableClock(cmu.GateGPIO | cmu.GateUART0)
	if !ctrl.ClockEnabled(cmu.GateGPIO) || !ctrl.ClockEnabled(cmu.GateUART0) {
		t.Error("clocks not enabled")
	}
	if dev.Peek(efm32gg.CMU_HFPERCLKDIV)&efm32gg.CMU_HFPERCLKDIV_HFPERCLKEN == 0 {
		t.Error("HFPERCLK not enabled")
	}

	ctrl.DisableClock(cmu.GateUART0)
	if ctrl.ClockEnabled(cmu.GateUART0) || !ctrl.ClockEnabled(cmu.GateGPIO) {
		t.Error("DisableClock touched the wrong gate")
	}
}

func TestHFXOFrequencyOption(t *testing.T) {
	ctrl := cmu.New(sim.New(), cmu.WithHFXOFrequency(32000000), cmu.WithLFXOFrequency(32000))

	freq, err := ctrl.SetClock(cmu.HFXO, 1, 1)
	if err != nil || freq != 32000000 {
		t.Errorf("SetClock(HFXO) = %d, %v", freq, err)
	}
	freq, err = ctrl.SetClock(cmu.LFXO, 1, 1)
	if err != nil || freq != 32000 {
		t.Errorf("SetClock(LFXO) = %d, %v", freq, err)
	}
}

func TestReadConfigurationSelectPriority(t *testing.T) {
	const (
		hfrco = efm32gg.CMU_STATUS_HFRCOSEL
		lfrco = efm32gg.CMU_STATUS_LFRCOSEL
		lfxo  = efm32gg.CMU_STATUS_LFXOSEL
		hfxo  = efm32gg.CMU_STATUS_HFXOSEL
	)

	testCases := []struct {
		name   string
		status uint32
		src    cmu.Source
		base   uint32
	}{
		{"all", hfrco | lfrco | lfxo | hfxo, cmu.HFRCO14MHz, 14000000},
		{"hfrco and hfxo", hfrco | hfxo, cmu.HFRCO14MHz, 14000000},
		{"lfrco over crystals", lfrco | lfxo | hfxo, cmu.LFRCO, cmu.LFRCOFrequency},
		{"lfxo over hfxo", lfxo | hfxo, cmu.LFXO, 32000},
		{"hfxo", hfxo, cmu.HFXO, 24000000},
		{"none", 0, cmu.None, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dev := sim.New()
			ctrl := cmu.New(dev, cmu.WithHFXOFrequency(24000000), cmu.WithLFXOFrequency(32000))
			dev.Poke(efm32gg.CMU_STATUS, tc.status)
			dev.ClearWrites()

			var cfg cmu.Configuration
			base := ctrl.ReadConfiguration(&cfg)
			if cfg.Source != tc.src || base != tc.base || cfg.BaseFreq != tc.base {
				t.Errorf("STATUS %08X: source %s base %d, expected %s %d", tc.status, cfg.Source, base, tc.src, tc.base)
			}
			if n := len(dev.Writes()); n != 0 {
				t.Errorf("readback wrote %d registers", n)
			}
		})
	}
}
