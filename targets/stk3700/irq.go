//go:build tinygo && efm32gg

package main

import (
	"sync/atomic"

	"gecko/led"
)

// ticks counts SysTick interrupts since boot
var ticks uint32

//export SysTick_Handler
func sysTickHandler() {
	n := atomic.AddUint32(&ticks, 1)
	buttons.Tick()
	if n%tickRate == 0 {
		// Process every second
		leds.Toggle(led.Mask0)
	}
}

//export UART0_RX_IRQHandler
func uart0RXHandler() {
	console.HandleInterrupt()
}

// Default_Handler catches every exception and interrupt without a handler
// of its own. The vector table in efm32gg990f1024.ld points at it.
//
//export Default_Handler
func defaultHandler() {
	for {
	}
}

// uptime returns milliseconds since SysTick was started
func uptime() uint32 {
	return atomic.LoadUint32(&ticks) * (1000 / tickRate)
}

