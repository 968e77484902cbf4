package cmu

import (
	"gecko/device/efm32gg"
	"gecko/mmio"
)

// Gate is a set of HFPERCLKEN0 peripheral clock enable bits.
type Gate uint32

const (
	GateUSART0 Gate = efm32gg.CMU_HFPERCLKEN0_USART0
	GateUSART1 Gate = efm32gg.CMU_HFPERCLKEN0_USART1
	GateUART0  Gate = efm32gg.CMU_HFPERCLKEN0_UART0
	GateUART1  Gate = efm32gg.CMU_HFPERCLKEN0_UART1
	GateTIMER0 Gate = efm32gg.CMU_HFPERCLKEN0_TIMER0
	GateI2C0   Gate = efm32gg.CMU_HFPERCLKEN0_I2C0
	GateGPIO   Gate = efm32gg.CMU_HFPERCLKEN0_GPIO
	GateADC0   Gate = efm32gg.CMU_HFPERCLKEN0_ADC0
)

// EnableClock turns on the HFPERCLK branch and the clocks of the given
// peripherals. It must run before the peripherals' registers are used.
func (c *Controller) EnableClock(g Gate) {
	mmio.Modify(c.bus, efm32gg.CMU_HFPERCLKDIV, 0, efm32gg.CMU_HFPERCLKDIV_HFPERCLKEN)
	mmio.Modify(c.bus, efm32gg.CMU_HFPERCLKEN0, 0, uint32(g))
}

// DisableClock turns off the clocks of the given peripherals.
func (c *Controller) DisableClock(g Gate) {
	mmio.Modify(c.bus, efm32gg.CMU_HFPERCLKEN0, uint32(g), 0)
}

// ClockEnabled reports whether all peripherals in g are clocked.
func (c *Controller) ClockEnabled(g Gate) bool {
	return mmio.HasBits(c.bus, efm32gg.CMU_HFPERCLKEN0, uint32(g))
}
