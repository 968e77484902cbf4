// Package cortexm configures the Cortex-M3 SysTick timer and NVIC interrupt
// enables through a register bus.
package cortexm

import (
	"errors"

	"gecko/device/efm32gg"
	"gecko/mmio"
)

// ErrTickRate is returned when the requested tick rate cannot be produced
// by the 24-bit SysTick reload counter.
var ErrTickRate = errors.New("cortexm: tick rate out of range")

// SysTickReload returns the reload value for rate ticks per second at a
// core clock of coreClock Hz.
func SysTickReload(coreClock, rate uint32) (uint32, error) {
	if rate == 0 || coreClock < rate {
		return 0, ErrTickRate
	}
	reload := coreClock/rate - 1
	if reload > efm32gg.SYSTICK_LOAD_Msk {
		return 0, ErrTickRate
	}
	return reload, nil
}

// ConfigureSysTick starts SysTick from the core clock with its interrupt
// enabled, firing rate times per second. It must be called again after
// every core clock change.
func ConfigureSysTick(b mmio.Bus, coreClock, rate uint32) error {
	reload, err := SysTickReload(coreClock, rate)
	if err != nil {
		return err
	}
	b.Set(efm32gg.SYSTICK_CTRL, 0)
	b.Set(efm32gg.SYSTICK_LOAD, reload)
	b.Set(efm32gg.SYSTICK_VAL, 0)
	b.Set(efm32gg.SYSTICK_CTRL, efm32gg.SYSTICK_CTRL_CLKSOURCE|efm32gg.SYSTICK_CTRL_TICKINT|efm32gg.SYSTICK_CTRL_ENABLE)
	return nil
}

// StopSysTick disables the SysTick counter and interrupt.
func StopSysTick(b mmio.Bus) {
	b.Set(efm32gg.SYSTICK_CTRL, 0)
}

// EnableIRQ clears any pending state of external interrupt irq (0..31) and
// enables it.
func EnableIRQ(b mmio.Bus, irq uint8) {
	b.Set(efm32gg.NVIC_ICPR0, 1<<irq)
	b.Set(efm32gg.NVIC_ISER0, 1<<irq)
}

// DisableIRQ disables external interrupt irq (0..31).
func DisableIRQ(b mmio.Bus, irq uint8) {
	b.Set(efm32gg.NVIC_ICER0, 1<<irq)
}
