//go:build tinygo && efm32gg

package main

import (
	"fmt"

	"gecko/button"
	"gecko/cmu"
	"gecko/cortexm"
	"gecko/device/efm32gg"
	"gecko/gpio"
	"gecko/led"
	"gecko/mmio"
	"gecko/uart"
)

const (
	hfxoFrequency = 48000000
	tickRate      = 1000 // SysTick interrupts per second
	lineMax       = 100
)

var (
	bus     mmio.Memory
	clocks  *cmu.Controller
	leds    *led.Set
	buttons *button.Buttons
	console *uart.UART
)

func main() {
	clocks = cmu.New(bus, cmu.WithHFXOFrequency(hfxoFrequency))
	cmu.SetController(clocks)
	clocks.EnableClock(cmu.GateGPIO | cmu.GateUART0)

	g := gpio.New(bus)
	leds = led.New(g)
	leds.Init(led.All)

	// Switch to the 48 MHz crystal. On failure stay on the reset HFRCO.
	if _, err := clocks.SetClock(cmu.HFXO, 1, 1); err != nil {
		leds.On(led.Mask1)
	}

	buttons = button.New(g)
	buttons.SetDebouncer(button.NewDebouncer(button.DefaultDebounceSamples))
	buttons.Init(button.All)
	buttons.SetCallback(onButtons)

	console = uart.New(bus)
	if err := console.Init(clocks.PeripheralClock(), uart.DefaultBaud); err != nil {
		halt()
	}
	console.EnableInterrupts()
	cortexm.EnableIRQ(bus, efm32gg.UART0_RX_IRQn)

	cmu.SetDebugWriter(func(s string) {
		console.WriteString(s)
		console.WriteString("\r\n")
	})

	if err := cortexm.ConfigureSysTick(bus, cmu.SystemCoreClock(), tickRate); err != nil {
		halt()
	}

	leds.Write(0, led.All)

	fmt.Fprint(console, "\r\n\n\n\rHello\n\r")
	for {
		fmt.Fprint(console, "\r\n\n\n\rWhat is your name?\n")
		name, err := console.ReadLine(lineMax)
		if err != nil {
			continue
		}
		if name == "clocks" {
			printClocks()
			continue
		}
		fmt.Fprintf(console, "Hello %s\n", name)
	}
}

// onButtons runs from the SysTick handler with the debounced changes.
func onButtons(changed uint32) {
	if buttons.ReadReleased() != 0 {
		leds.Toggle(led.Mask1)
	}
}

func printClocks() {
	cfg := clocks.Configuration()
	fmt.Fprintf(console, "\r\nsource %s %d Hz, core %d Hz, peripheral %d Hz, uptime %d ms\r\n",
		cfg.Source, cfg.BaseFreq, cfg.CoreFreq, cfg.PerFreq, uptime())
	cmu.DumpTrace()
}

// halt blinks both LEDs forever.
func halt() {
	for {
		leds.Toggle(led.All)
		for i := 0; i < 1000000; i++ {
		}
	}
}
