// Package gpio drives the EFM32GG general purpose I/O ports: pin modes,
// output set/clear/toggle, input reads and external interrupt routing.
//
// The GPIO peripheral clock must be enabled (cmu.GateGPIO) before use.
package gpio

import (
	"gecko/device/efm32gg"
	"gecko/mmio"
)

// Port identifies a GPIO port.
type Port uint8

const (
	PortA Port = iota
	PortB
	PortC
	PortD
	PortE
	PortF
)

func (p Port) String() string {
	if p > PortF {
		return "P?"
	}
	return "P" + string(rune('A'+p))
}

// Pin is a single pin of a port.
type Pin struct {
	Port Port
	Num  uint8 // 0..15
}

func (p Pin) String() string {
	s := p.Port.String()
	if p.Num >= 10 {
		s += string(rune('0' + p.Num/10))
	}
	return s + string(rune('0'+p.Num%10))
}

func (p Pin) mask() uint32 {
	return 1 << p.Num
}

// Mode is a pin mode (GPIO_P_MODEL/MODEH nibble).
type Mode uint32

const (
	Disabled        Mode = efm32gg.GPIO_P_MODE_DISABLED
	Input           Mode = efm32gg.GPIO_P_MODE_INPUT
	InputPull       Mode = efm32gg.GPIO_P_MODE_INPUTPULL
	InputPullFilter Mode = efm32gg.GPIO_P_MODE_INPUTPULLFILTER
	PushPull        Mode = efm32gg.GPIO_P_MODE_PUSHPULL
)

// Edge selects the input transitions that raise an external interrupt.
type Edge uint8

const (
	Rising Edge = 1 << iota
	Falling
	Both = Rising | Falling
)

// Controller accesses the GPIO registers through a bus.
type Controller struct {
	bus mmio.Bus
}

// New returns a GPIO controller using bus.
func New(bus mmio.Bus) *Controller {
	return &Controller{bus: bus}
}

// Configure sets the mode of p. For output modes dout is the initial level;
// for pulled inputs it selects pull-up (true) or pull-down.
func (c *Controller) Configure(p Pin, mode Mode, dout bool) {
	if dout {
		c.SetMask(p.Port, p.mask())
	} else {
		c.ClearMask(p.Port, p.mask())
	}

	reg, shift := efm32gg.GPIO_P_MODEL, uint32(p.Num)*4
	if p.Num >= 8 {
		reg, shift = efm32gg.GPIO_P_MODEH, uint32(p.Num-8)*4
	}
	mmio.Modify(c.bus, efm32gg.GPIOPort(uint8(p.Port), reg), 0xF<<shift, uint32(mode)<<shift)
}

// Mode returns the configured mode of p.
func (c *Controller) Mode(p Pin) Mode {
	reg, shift := efm32gg.GPIO_P_MODEL, uint32(p.Num)*4
	if p.Num >= 8 {
		reg, shift = efm32gg.GPIO_P_MODEH, uint32(p.Num-8)*4
	}
	return Mode((c.bus.Get(efm32gg.GPIOPort(uint8(p.Port), reg)) >> shift) & 0xF)
}

// Set drives p high.
func (c *Controller) Set(p Pin) { c.SetMask(p.Port, p.mask()) }

// Clear drives p low.
func (c *Controller) Clear(p Pin) { c.ClearMask(p.Port, p.mask()) }

// Toggle inverts the output level of p.
func (c *Controller) Toggle(p Pin) { c.ToggleMask(p.Port, p.mask()) }

// Write drives p to level.
func (c *Controller) Write(p Pin, level bool) {
	if level {
		c.Set(p)
	} else {
		c.Clear(p)
	}
}

// SetMask drives the pins in mask high.
func (c *Controller) SetMask(port Port, mask uint32) {
	c.bus.Set(efm32gg.GPIOPort(uint8(port), efm32gg.GPIO_P_DOUTSET), mask)
}

// ClearMask drives the pins in mask low.
func (c *Controller) ClearMask(port Port, mask uint32) {
	c.bus.Set(efm32gg.GPIOPort(uint8(port), efm32gg.GPIO_P_DOUTCLR), mask)
}

// ToggleMask inverts the pins in mask.
func (c *Controller) ToggleMask(port Port, mask uint32) {
	c.bus.Set(efm32gg.GPIOPort(uint8(port), efm32gg.GPIO_P_DOUTTGL), mask)
}

// Output returns the output (DOUT) level of p.
func (c *Controller) Output(p Pin) bool {
	return c.bus.Get(efm32gg.GPIOPort(uint8(p.Port), efm32gg.GPIO_P_DOUT))&p.mask() != 0
}

// Get returns the input (DIN) level of p.
func (c *Controller) Get(p Pin) bool {
	return c.In(p.Port)&p.mask() != 0
}

// In returns the DIN register of port.
func (c *Controller) In(port Port) uint32 {
	return c.bus.Get(efm32gg.GPIOPort(uint8(port), efm32gg.GPIO_P_DIN))
}

// ConfigureInterrupt routes external interrupt line p.Num to p's port and
// enables it for edge. Only one port can own a line number.
func (c *Controller) ConfigureInterrupt(p Pin, edge Edge) {
	reg, shift := efm32gg.GPIO_EXTIPSELL, uint32(p.Num)*4
	if p.Num >= 8 {
		reg, shift = efm32gg.GPIO_EXTIPSELH, uint32(p.Num-8)*4
	}
	mmio.Modify(c.bus, reg, 0xF<<shift, uint32(p.Port)<<shift)

	bit := p.mask()
	if edge&Rising != 0 {
		mmio.Modify(c.bus, efm32gg.GPIO_EXTIRISE, 0, bit)
	} else {
		mmio.Modify(c.bus, efm32gg.GPIO_EXTIRISE, bit, 0)
	}
	if edge&Falling != 0 {
		mmio.Modify(c.bus, efm32gg.GPIO_EXTIFALL, 0, bit)
	} else {
		mmio.Modify(c.bus, efm32gg.GPIO_EXTIFALL, bit, 0)
	}

	c.ClearInterrupts(bit)
	mmio.Modify(c.bus, efm32gg.GPIO_IEN, 0, bit)
}

// DisableInterrupt disables external interrupt line p.Num.
func (c *Controller) DisableInterrupt(p Pin) {
	mmio.Modify(c.bus, efm32gg.GPIO_IEN, p.mask(), 0)
}

// InterruptFlags returns the pending external interrupt flags (GPIO_IF).
func (c *Controller) InterruptFlags() uint32 {
	return c.bus.Get(efm32gg.GPIO_IF)
}

// ClearInterrupts clears the external interrupt flags in mask.
func (c *Controller) ClearInterrupts(mask uint32) {
	c.bus.Set(efm32gg.GPIO_IFC, mask)
}

// EvenLines and OddLines split the external interrupt lines between the
// GPIO_EVEN and GPIO_ODD NVIC vectors.
const (
	EvenLines uint32 = 0x5555
	OddLines  uint32 = 0xAAAA
)
