package cmu

import (
	"gecko/device/efm32gg"
	"gecko/mmio"
)

// Tier is one row of the operating frequency table (reference manual
// section 11.3.4): the flash read mode and HFXO buffer current needed up to
// a core frequency.
type Tier struct {
	Level     uint8
	Ceiling   uint32 // highest frequency of the tier in Hz
	Mode      uint32 // MSC_READCTRL.MODE
	ModeSCBTP uint32 // MSC_READCTRL.MODE with SCBTP
	Boost     uint32 // CMU_CTRL.HFXOBUFCUR, shifted
	HFLE      bool   // CMU_CTRL.HFLE, needed while HFCORECLK/2 exceeds 16 MHz
}

var tiers = [...]Tier{
	{1, 16000000, efm32gg.MSC_READCTRL_MODE_WS0, efm32gg.MSC_READCTRL_MODE_WS0SCBTP, efm32gg.CMU_CTRL_HFXOBUFCUR_BOOSTUPTO32MHZ, false},
	{2, 32000000, efm32gg.MSC_READCTRL_MODE_WS1, efm32gg.MSC_READCTRL_MODE_WS1SCBTP, efm32gg.CMU_CTRL_HFXOBUFCUR_BOOSTUPTO32MHZ, false},
	{3, 48000000, efm32gg.MSC_READCTRL_MODE_WS2, efm32gg.MSC_READCTRL_MODE_WS2SCBTP, efm32gg.CMU_CTRL_HFXOBUFCUR_BOOSTABOVE32MHZ, true},
}

// TierFor returns the tier covering freq. Frequencies above the top ceiling
// use the top tier.
func TierFor(freq uint32) Tier {
	for _, t := range tiers {
		if freq <= t.Ceiling {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

// Tune sets flash wait states, HFXO buffer boost and HFLE for a core
// frequency. Only those fields are changed. It is idempotent.
func (c *Controller) Tune(freq uint32) {
	t := TierFor(freq)
	mode := t.Mode
	if c.scbtp {
		mode = t.ModeSCBTP
	}

	readctrl := readModeField.Insert(c.bus.Get(efm32gg.MSC_READCTRL), mode)
	ctrl := c.bus.Get(efm32gg.CMU_CTRL) &^ (efm32gg.CMU_CTRL_HFXOBUFCUR_Msk | efm32gg.CMU_CTRL_HFLE)
	ctrl |= t.Boost
	if t.HFLE {
		ctrl |= efm32gg.CMU_CTRL_HFLE
	}

	c.bus.Set(efm32gg.MSC_READCTRL, readctrl)
	c.bus.Set(efm32gg.CMU_CTRL, ctrl)
	record(EvtTune, None, uint32(t.Level), mode, freq)
}

// Tuning is the flash and oscillator state read back from the registers.
type Tuning struct {
	Mode  uint32 // MSC_READCTRL.MODE
	Boost uint32 // CMU_CTRL.HFXOBUFCUR, unshifted
	HFLE  bool
}

// Tuning reads the current wait state mode, buffer boost and HFLE bit.
func (c *Controller) Tuning() Tuning {
	ctrl := c.bus.Get(efm32gg.CMU_CTRL)
	return Tuning{
		Mode:  mmio.GetField(c.bus, efm32gg.MSC_READCTRL, readModeField),
		Boost: hfxoBufCurField.Extract(ctrl),
		HFLE:  ctrl&efm32gg.CMU_CTRL_HFLE != 0,
	}
}

// ModeName returns the vendor name of a MSC_READCTRL.MODE value.
func ModeName(mode uint32) string {
	switch mode {
	case efm32gg.MSC_READCTRL_MODE_WS0:
		return "WS0"
	case efm32gg.MSC_READCTRL_MODE_WS1:
		return "WS1"
	case efm32gg.MSC_READCTRL_MODE_WS0SCBTP:
		return "WS0SCBTP"
	case efm32gg.MSC_READCTRL_MODE_WS1SCBTP:
		return "WS1SCBTP"
	case efm32gg.MSC_READCTRL_MODE_WS2:
		return "WS2"
	case efm32gg.MSC_READCTRL_MODE_WS2SCBTP:
		return "WS2SCBTP"
	}
	return "mode(" + utoa(mode) + ")"
}
