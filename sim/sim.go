// Package sim is a host-side model of the EFM32GG registers used by this
// module. It implements mmio.Bus and reproduces the behaviour the drivers
// depend on: oscillator enable and ready latency, HFCLK mux selection, flash
// read control, GPIO set/clear/toggle and edge interrupts, and UART transmit
// and receive.
//
// A Device is not safe for concurrent use.
package sim

import (
	"golang.org/x/exp/slices"

	"gecko/device/efm32gg"
)

// Default DEVINFO contents: an EFM32GG990F1024 (the STK3700 part).
const (
	DefaultProdRev   = 19
	DefaultFamily    = 72
	DefaultDevice    = 990
	DefaultHFRCOCAL0 = 0x7F7A7673 // tuning bytes for bands 1, 7, 11, 14 MHz
	DefaultHFRCOCAL1 = 0x00008A85 // tuning bytes for bands 21, 28 MHz
)

// Write is one register store observed by the device.
type Write struct {
	Addr  uintptr
	Value uint32
}

// Device simulates the register file.
type Device struct {
	regs    map[uintptr]uint32
	writes  []Write
	pending map[uint32]int // ready bit -> STATUS reads left before it asserts
	stuck   uint32         // ready bits that never assert
	latency int

	tx []byte
	rx []byte
}

// Option configures a Device.
type Option func(*Device)

// WithProdRev sets the production revision reported in DEVINFO_PART.
func WithProdRev(rev uint8) Option {
	return func(d *Device) {
		part := d.regs[efm32gg.DEVINFO_PART]
		part &^= efm32gg.DEVINFO_PART_PROD_REV_Msk
		part |= uint32(rev) << efm32gg.DEVINFO_PART_PROD_REV_Pos
		d.regs[efm32gg.DEVINFO_PART] = part
	}
}

// WithCalibration sets the HFRCO calibration words.
func WithCalibration(cal0, cal1 uint32) Option {
	return func(d *Device) {
		d.regs[efm32gg.DEVINFO_HFRCOCAL0] = cal0
		d.regs[efm32gg.DEVINFO_HFRCOCAL1] = cal1
	}
}

// WithReadyLatency makes every oscillator ready bit assert only after n
// reads of CMU_STATUS following its enable.
func WithReadyLatency(n int) Option {
	return func(d *Device) {
		d.latency = n
	}
}

// WithStuckOscillator makes the given CMU_STATUS ready bit(s) never assert.
func WithStuckOscillator(readyBits uint32) Option {
	return func(d *Device) {
		d.stuck |= readyBits
	}
}

// New returns a device in its reset state: HFRCO at 14 MHz selected,
// flash in WS1 mode, all prescalers at divide by one.
func New(opts ...Option) *Device {
	d := &Device{
		regs:    make(map[uintptr]uint32),
		pending: make(map[uint32]int),
	}
	d.Reset()
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Reset restores the reset values of the simulated registers and clears
// the write log, the UART buffers and any pending ready countdowns.
// DEVINFO and fault settings survive.
func (d *Device) Reset() {
	part, okPart := d.regs[efm32gg.DEVINFO_PART]
	cal0, okCal0 := d.regs[efm32gg.DEVINFO_HFRCOCAL0]
	cal1 := d.regs[efm32gg.DEVINFO_HFRCOCAL1]

	d.regs = map[uintptr]uint32{
		efm32gg.CMU_CTRL:         efm32gg.CMU_CTRL_RESETVALUE,
		efm32gg.CMU_HFCORECLKDIV: efm32gg.CMU_HFCORECLKDIV_RESETVALUE,
		efm32gg.CMU_HFPERCLKDIV:  efm32gg.CMU_HFPERCLKDIV_RESETVALUE,
		efm32gg.CMU_HFRCOCTRL:    efm32gg.CMU_HFRCOCTRL_RESETVALUE,
		efm32gg.CMU_STATUS:       efm32gg.CMU_STATUS_RESETVALUE,
		efm32gg.CMU_HFPERCLKEN0:  0,
		efm32gg.MSC_READCTRL:     efm32gg.MSC_READCTRL_RESETVALUE,
	}
	if !okPart {
		part = DefaultProdRev<<efm32gg.DEVINFO_PART_PROD_REV_Pos |
			DefaultFamily<<efm32gg.DEVINFO_PART_DEVICE_FAMILY_Pos |
			DefaultDevice
	}
	if !okCal0 {
		cal0, cal1 = DefaultHFRCOCAL0, DefaultHFRCOCAL1
	}
	d.regs[efm32gg.DEVINFO_PART] = part
	d.regs[efm32gg.DEVINFO_HFRCOCAL0] = cal0
	d.regs[efm32gg.DEVINFO_HFRCOCAL1] = cal1

	d.writes = nil
	d.pending = make(map[uint32]int)
	d.tx = nil
	d.rx = nil
}

// Get implements mmio.Bus.
func (d *Device) Get(addr uintptr) uint32 {
	switch addr {
	case efm32gg.CMU_STATUS:
		d.tick()
	case efm32gg.UART0_STATUS:
		return d.uartStatus()
	case efm32gg.UART0_RXDATA:
		return d.uartPop()
	}
	return d.regs[addr]
}

// Set implements mmio.Bus.
func (d *Device) Set(addr uintptr, value uint32) {
	d.writes = append(d.writes, Write{Addr: addr, Value: value})

	switch addr {
	case efm32gg.CMU_OSCENCMD:
		d.oscEnable(value)
		return
	case efm32gg.CMU_CMD:
		d.selectClock(value & efm32gg.CMU_CMD_HFCLKSEL_Msk)
		return
	case efm32gg.CMU_HFRCOCTRL:
		d.regs[addr] = value
		d.regs[efm32gg.CMU_STATUS] &^= efm32gg.CMU_STATUS_HFRCORDY
		d.arm(efm32gg.CMU_STATUS_HFRCORDY)
		return
	case efm32gg.CMU_STATUS, efm32gg.DEVINFO_PART, efm32gg.DEVINFO_HFRCOCAL0, efm32gg.DEVINFO_HFRCOCAL1:
		// read only
		return
	}
	if d.setGPIO(addr, value) || d.setUART(addr, value) {
		return
	}
	d.regs[addr] = value
}

// Peek returns a register value without read side effects.
func (d *Device) Peek(addr uintptr) uint32 {
	return d.regs[addr]
}

// Poke stores a register value directly, bypassing write semantics and the
// write log. It is meant for setting up test scenarios.
func (d *Device) Poke(addr uintptr, value uint32) {
	d.regs[addr] = value
}

// Writes returns the register stores observed since the last reset.
func (d *Device) Writes() []Write {
	return append([]Write(nil), d.writes...)
}

// ClearWrites empties the write log.
func (d *Device) ClearWrites() {
	d.writes = nil
}

// Snapshot copies every register in [from, to).
func (d *Device) Snapshot(from, to uintptr) map[uintptr]uint32 {
	snap := make(map[uintptr]uint32)
	for addr, v := range d.regs {
		if addr >= from && addr < to {
			snap[addr] = v
		}
	}
	return snap
}

// Addresses returns the addresses of all registers that hold a value, in
// ascending order.
func (d *Device) Addresses() []uintptr {
	addrs := make([]uintptr, 0, len(d.regs))
	for addr := range d.regs {
		addrs = append(addrs, addr)
	}
	slices.Sort(addrs)
	return addrs
}
