package sim

import "gecko/device/efm32gg"

type oscillator struct {
	enable, disable uint32 // OSCENCMD bits
	ens, rdy        uint32 // STATUS bits
	sel             uint32 // STATUS select bit
	cmd             uint32 // CMD.HFCLKSEL value
}

var oscillators = []oscillator{
	{efm32gg.CMU_OSCENCMD_HFRCOEN, efm32gg.CMU_OSCENCMD_HFRCODIS, efm32gg.CMU_STATUS_HFRCOENS, efm32gg.CMU_STATUS_HFRCORDY, efm32gg.CMU_STATUS_HFRCOSEL, efm32gg.CMU_CMD_HFCLKSEL_HFRCO},
	{efm32gg.CMU_OSCENCMD_HFXOEN, efm32gg.CMU_OSCENCMD_HFXODIS, efm32gg.CMU_STATUS_HFXOENS, efm32gg.CMU_STATUS_HFXORDY, efm32gg.CMU_STATUS_HFXOSEL, efm32gg.CMU_CMD_HFCLKSEL_HFXO},
	{efm32gg.CMU_OSCENCMD_LFRCOEN, efm32gg.CMU_OSCENCMD_LFRCODIS, efm32gg.CMU_STATUS_LFRCOENS, efm32gg.CMU_STATUS_LFRCORDY, efm32gg.CMU_STATUS_LFRCOSEL, efm32gg.CMU_CMD_HFCLKSEL_LFRCO},
	{efm32gg.CMU_OSCENCMD_LFXOEN, efm32gg.CMU_OSCENCMD_LFXODIS, efm32gg.CMU_STATUS_LFXOENS, efm32gg.CMU_STATUS_LFXORDY, efm32gg.CMU_STATUS_LFXOSEL, efm32gg.CMU_CMD_HFCLKSEL_LFXO},
}

const selMask = efm32gg.CMU_STATUS_HFRCOSEL | efm32gg.CMU_STATUS_HFXOSEL |
	efm32gg.CMU_STATUS_LFRCOSEL | efm32gg.CMU_STATUS_LFXOSEL

func (d *Device) oscEnable(cmd uint32) {
	status := d.regs[efm32gg.CMU_STATUS]
	for _, osc := range oscillators {
		switch {
		case cmd&osc.disable != 0:
			// the selected HFCLK source cannot be disabled
			if status&osc.sel != 0 {
				continue
			}
			status &^= osc.ens | osc.rdy
			delete(d.pending, osc.rdy)
		case cmd&osc.enable != 0 && status&osc.ens == 0:
			status |= osc.ens
			d.regs[efm32gg.CMU_STATUS] = status
			d.arm(osc.rdy)
			status = d.regs[efm32gg.CMU_STATUS]
		}
	}
	d.regs[efm32gg.CMU_STATUS] = status
}

// arm starts the ready countdown for a STATUS ready bit.
func (d *Device) arm(rdy uint32) {
	if d.stuck&rdy != 0 {
		return
	}
	if d.latency <= 0 {
		d.regs[efm32gg.CMU_STATUS] |= rdy
		return
	}
	d.pending[rdy] = d.latency
}

// tick advances the ready countdowns by one STATUS read.
func (d *Device) tick() {
	for rdy, left := range d.pending {
		left--
		if left <= 0 {
			d.regs[efm32gg.CMU_STATUS] |= rdy
			delete(d.pending, rdy)
			continue
		}
		d.pending[rdy] = left
	}
}

// selectClock switches the HFCLK mux. Selecting an oscillator that is not
// enabled and ready leaves the mux unchanged.
func (d *Device) selectClock(sel uint32) {
	status := d.regs[efm32gg.CMU_STATUS]
	for _, osc := range oscillators {
		if osc.cmd != sel {
			continue
		}
		if status&(osc.ens|osc.rdy) != osc.ens|osc.rdy {
			return
		}
		d.regs[efm32gg.CMU_STATUS] = (status &^ selMask) | osc.sel
		return
	}
}
