package cmu

import (
	"gecko/device/efm32gg"
	"gecko/mmio"
)

// Configuration is a snapshot of the clock tree read from the registers.
type Configuration struct {
	Source   Source
	BaseFreq uint32 // source frequency in Hz

	HFClockDiv  uint32 // 1..8
	HFClockFreq uint32

	CoreDivCode uint32 // HFCORECLKDIV exponent, 0..9
	CoreDiv     uint32 // 1 << CoreDivCode
	CoreFreq    uint32

	PerDivCode uint32 // HFPERCLKDIV exponent, 0..9
	PerDiv     uint32 // 1 << PerDivCode
	PerFreq    uint32
}

// ReadConfiguration fills p from the live registers and returns the source
// frequency. A nil p only returns the frequency. No register is written.
func (c *Controller) ReadConfiguration(p *Configuration) uint32 {
	var cfg Configuration

	status := c.bus.Get(efm32gg.CMU_STATUS)
	switch {
	case status&efm32gg.CMU_STATUS_HFRCOSEL != 0:
		field := mmio.GetField(c.bus, efm32gg.CMU_HFRCOCTRL, bandField)
		if b, ok := bandByField(field); ok {
			cfg.Source = b.source
			cfg.BaseFreq = b.frequency(c.ProdRev())
		}
	case status&efm32gg.CMU_STATUS_LFRCOSEL != 0:
		cfg.Source = LFRCO
		cfg.BaseFreq = LFRCOFrequency
	case status&efm32gg.CMU_STATUS_LFXOSEL != 0:
		cfg.Source = LFXO
		cfg.BaseFreq = c.lfxo
	case status&efm32gg.CMU_STATUS_HFXOSEL != 0:
		cfg.Source = HFXO
		cfg.BaseFreq = c.hfxo
	default:
		cfg.Source = None
	}

	cfg.HFClockDiv = mmio.GetField(c.bus, efm32gg.CMU_CTRL, hfclkDivField) + 1
	cfg.HFClockFreq = cfg.BaseFreq / cfg.HFClockDiv

	cfg.CoreDivCode = mmio.GetField(c.bus, efm32gg.CMU_HFCORECLKDIV, coreDivField)
	cfg.CoreDiv = 1 << cfg.CoreDivCode
	cfg.CoreFreq = cfg.HFClockFreq >> cfg.CoreDivCode

	cfg.PerDivCode = mmio.GetField(c.bus, efm32gg.CMU_HFPERCLKDIV, perDivField)
	cfg.PerDiv = 1 << cfg.PerDivCode
	cfg.PerFreq = cfg.HFClockFreq >> cfg.PerDivCode

	if p != nil {
		*p = cfg
	}
	return cfg.BaseFreq
}

// Configuration returns the live clock configuration.
func (c *Controller) Configuration() Configuration {
	var cfg Configuration
	c.ReadConfiguration(&cfg)
	return cfg
}

// UpdateCoreClock recomputes the core clock from the registers, stores it
// and returns it.
func (c *Controller) UpdateCoreClock() uint32 {
	cfg := c.Configuration()
	c.coreClock = cfg.CoreFreq
	return c.coreClock
}

// PeripheralClock returns the live HFPERCLK frequency.
func (c *Controller) PeripheralClock() uint32 {
	return c.Configuration().PerFreq
}
