package cmu

import (
	"gecko/device/efm32gg"
	"gecko/mmio"
)

// NearestPow2Exp returns the exponent of the power of two closest to n.
//
// The search starts at weight 1 and keeps doubling while the distance to n
// does not grow, so ties move to the larger power: 3 maps to 2 (divide by
// four), 6 maps to 3. It stops when the weight overflows. 0 and 1 map to 0.
func NearestPow2Exp(n uint32) uint32 {
	var (
		w    uint32 = 1
		e    uint32
		err1        = n
		err2 uint32
	)
	for {
		err2 = err1
		if w > n {
			err1 = w - n
		} else {
			err1 = n - w
		}
		if err2 < err1 {
			break
		}
		w <<= 1
		e++
		if w == 0 {
			break
		}
	}
	if e > 0 {
		return e - 1
	}
	return 0
}

// ApplyDivisors sets the core (HFCORECLK) and peripheral (HFPERCLK)
// prescalers from linear divisor requests. Each request is rounded with
// NearestPow2Exp and the resulting exponent is clamped to [1, 9], so this
// setter never leaves a prescaler at divide by one. Zero requests count as 1.
func (c *Controller) ApplyDivisors(coreDiv, perDiv uint32) {
	c.Tune(c.worstCase())

	if coreDiv == 0 {
		coreDiv = 1
	}
	if perDiv == 0 {
		perDiv = 1
	}
	coreCode := clampDivCode(NearestPow2Exp(coreDiv))
	perCode := clampDivCode(NearestPow2Exp(perDiv))

	mmio.SetField(c.bus, efm32gg.CMU_HFCORECLKDIV, coreDivField, coreCode)
	mmio.SetField(c.bus, efm32gg.CMU_HFPERCLKDIV, perDivField, perCode)

	c.UpdateCoreClock()
	c.Tune(c.coreClock)
	record(EvtPrescalers, None, coreCode, perCode, c.coreClock)
}

// SetHFClockDivisor sets the HFCLK divisor, clamped to [1, 8], and retunes
// flash timing for the new core clock.
func (c *Controller) SetHFClockDivisor(div uint32) {
	div = clampHFClockDiv(div)

	c.Tune(c.worstCase())
	mmio.SetField(c.bus, efm32gg.CMU_CTRL, hfclkDivField, div-1)

	c.UpdateCoreClock()
	c.Tune(c.coreClock)
	record(EvtHFClockDiv, None, div, 0, c.coreClock)
}

func clampDivCode(code uint32) uint32 {
	if code < 1 {
		return 1
	}
	if code > maxDivCode {
		return maxDivCode
	}
	return code
}
