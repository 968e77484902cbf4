// Package cmu configures the EFM32GG clock tree: HFCLK source selection, the
// HFCLK divisor, the core and peripheral prescalers, and the flash wait
// states and HFXO buffer boost that must track the core frequency.
//
// Every operation keeps the flash timing safe across the transition: wait
// states are raised for the worst case before a clock change and lowered to
// match the new core clock only after the change has taken effect.
//
// The Controller is not reentrant. Do not reconfigure clocks from an
// interrupt handler while another configuration call is running.
package cmu

import (
	"gecko/device/efm32gg"
	"gecko/mmio"
)

var (
	hfclkDivField   = mmio.Field{Pos: efm32gg.CMU_CTRL_HFCLKDIV_Pos, Mask: efm32gg.CMU_CTRL_HFCLKDIV_Msk}
	coreDivField    = mmio.Field{Pos: efm32gg.CMU_HFCORECLKDIV_HFCORECLKDIV_Pos, Mask: efm32gg.CMU_HFCORECLKDIV_HFCORECLKDIV_Msk}
	perDivField     = mmio.Field{Pos: efm32gg.CMU_HFPERCLKDIV_HFPERCLKDIV_Pos, Mask: efm32gg.CMU_HFPERCLKDIV_HFPERCLKDIV_Msk}
	bandField       = mmio.Field{Pos: efm32gg.CMU_HFRCOCTRL_BAND_Pos, Mask: efm32gg.CMU_HFRCOCTRL_BAND_Msk}
	readModeField   = mmio.Field{Pos: efm32gg.MSC_READCTRL_MODE_Pos, Mask: efm32gg.MSC_READCTRL_MODE_Msk}
	prodRevField    = mmio.Field{Pos: efm32gg.DEVINFO_PART_PROD_REV_Pos, Mask: efm32gg.DEVINFO_PART_PROD_REV_Msk}
	hfxoBufCurField = mmio.Field{Pos: efm32gg.CMU_CTRL_HFXOBUFCUR_Pos, Mask: efm32gg.CMU_CTRL_HFXOBUFCUR_Msk}
)

// Controller drives the clock management unit through a register bus.
type Controller struct {
	bus   mmio.Bus
	wait  mmio.Waiter
	hfxo  uint32
	lfxo  uint32
	scbtp bool

	// coreClock is the last computed HFCORECLK frequency in Hz
	coreClock uint32
}

// Option configures a Controller.
type Option func(*Controller)

// WithWaiter sets the poll budget used while waiting for oscillators.
// The default waits forever.
func WithWaiter(w mmio.Waiter) Option {
	return func(c *Controller) {
		c.wait = w
	}
}

// WithHFXOFrequency sets the frequency of the high frequency crystal.
func WithHFXOFrequency(hz uint32) Option {
	return func(c *Controller) {
		if hz != 0 {
			c.hfxo = hz
		}
	}
}

// WithLFXOFrequency sets the frequency of the low frequency crystal.
func WithLFXOFrequency(hz uint32) Option {
	return func(c *Controller) {
		if hz != 0 {
			c.lfxo = hz
		}
	}
}

// WithSCBTP selects the flash read modes with suppressed conditional branch
// target prefetch (WSnSCBTP) instead of the plain WSn modes.
func WithSCBTP(enable bool) Option {
	return func(c *Controller) {
		c.scbtp = enable
	}
}

// New returns a controller for the CMU reachable through bus. The core
// clock is computed from the current register state.
func New(bus mmio.Bus, opts ...Option) *Controller {
	c := &Controller{
		bus:  bus,
		wait: mmio.Waiter{Attempts: mmio.Forever},
		hfxo: DefaultHFXOFrequency,
		lfxo: DefaultLFXOFrequency,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.UpdateCoreClock()
	return c
}

// CoreClock returns the HFCORECLK frequency computed by the last
// configuration call or UpdateCoreClock.
func (c *Controller) CoreClock() uint32 {
	return c.coreClock
}

// HFXOFrequency returns the configured crystal frequency.
func (c *Controller) HFXOFrequency() uint32 {
	return c.hfxo
}

// worstCase is the frequency flash timing is prepared for before any clock
// change: the fastest the core can run from any source.
func (c *Controller) worstCase() uint32 {
	if c.hfxo > MaxCoreFrequency {
		return c.hfxo
	}
	return MaxCoreFrequency
}

// SetClock selects the HFCLK source, the HFCLK divisor and the core and
// peripheral prescaler, and returns the resulting peripheral clock
// frequency.
//
// hclkDiv is clamped to [1, 8]. coreDiv is rounded to the nearest power of
// two (see NearestPow2Exp) and applied to both HFCORECLK and HFPERCLK.
// An invalid source returns 0 and ErrUnknownSource without touching any
// register. If an oscillator does not become ready within the wait budget
// the error matches ErrNotReady and the registers are left as the last
// completed write put them.
func (c *Controller) SetClock(src Source, hclkDiv, coreDiv uint32) (uint32, error) {
	if !src.Valid() {
		record(EvtRejected, src, hclkDiv, coreDiv, 0)
		return 0, ErrUnknownSource
	}
	hclkDiv = clampHFClockDiv(hclkDiv)

	c.Tune(c.worstCase())

	// divide by one while switching
	mmio.Modify(c.bus, efm32gg.CMU_CTRL, efm32gg.CMU_CTRL_HFCLKDIV_Msk, 0)

	base, err := c.selectSource(src)
	if err != nil {
		record(EvtNotReady, src, hclkDiv, coreDiv, 0)
		return 0, err
	}

	// stored pre-decremented: 0 divides by 1
	mmio.SetField(c.bus, efm32gg.CMU_CTRL, hfclkDivField, hclkDiv-1)

	code := NearestPow2Exp(coreDiv)
	if code > maxDivCode {
		code = maxDivCode
	}
	mmio.SetField(c.bus, efm32gg.CMU_HFCORECLKDIV, coreDivField, code)
	mmio.SetField(c.bus, efm32gg.CMU_HFPERCLKDIV, perDivField, code)

	c.UpdateCoreClock()
	c.Tune(c.coreClock)

	freq := (base / hclkDiv) >> code
	record(EvtSetClock, src, hclkDiv, coreDiv, freq)
	return freq, nil
}

// selectSource enables src, waits for it and switches the HFCLK mux to it.
// It returns the source frequency.
func (c *Controller) selectSource(src Source) (uint32, error) {
	if b, ok := bandOf(src); ok {
		tuning := uint32(c.tuning(b))
		c.bus.Set(efm32gg.CMU_HFRCOCTRL, b.field<<efm32gg.CMU_HFRCOCTRL_BAND_Pos|tuning)
		if err := c.wait.UntilSet(c.bus, efm32gg.CMU_STATUS, efm32gg.CMU_STATUS_HFRCORDY); err != nil {
			return 0, &NotReadyError{Source: src, Err: err}
		}
		c.bus.Set(efm32gg.CMU_CMD, efm32gg.CMU_CMD_HFCLKSEL_HFRCO)
		return b.frequency(c.ProdRev()), nil
	}

	x := crystals[src]
	if !mmio.HasBits(c.bus, efm32gg.CMU_STATUS, x.enabled) {
		c.bus.Set(efm32gg.CMU_OSCENCMD, x.enable)
	}
	if err := c.wait.UntilSet(c.bus, efm32gg.CMU_STATUS, x.ready); err != nil {
		return 0, &NotReadyError{Source: src, Err: err}
	}
	c.bus.Set(efm32gg.CMU_CMD, x.sel)
	return c.sourceFrequency(src), nil
}

// sourceFrequency returns the frequency of a non-HFRCO source.
func (c *Controller) sourceFrequency(src Source) uint32 {
	switch src {
	case LFRCO:
		return LFRCOFrequency
	case LFXO:
		return c.lfxo
	case HFXO:
		return c.hfxo
	}
	return 0
}

// tuning returns the factory calibration byte for an HFRCO band.
func (c *Controller) tuning(b band) uint8 {
	return uint8(c.bus.Get(b.cal) >> (8 * uint32(b.calByte)))
}

// ProdRev returns the production revision of the part from DEVINFO.
func (c *Controller) ProdRev() uint8 {
	return uint8(mmio.GetField(c.bus, efm32gg.DEVINFO_PART, prodRevField))
}

func clampHFClockDiv(div uint32) uint32 {
	if div > maxHFClockDiv {
		return maxHFClockDiv
	}
	if div < 1 {
		return 1
	}
	return div
}
