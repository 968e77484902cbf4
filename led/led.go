// Package led drives the user LEDs of the EFM32GG STK3700 starter kit.
package led

import "gecko/gpio"

// STK3700 LED pins
var (
	LED0 = gpio.Pin{Port: gpio.PortE, Num: 2}
	LED1 = gpio.Pin{Port: gpio.PortE, Num: 3}
)

// Mask bits select LEDs in Init, On, Off, Toggle and Write. All LEDs of a
// set must live on the same port.
const (
	Mask0 uint32 = 1 << 2
	Mask1 uint32 = 1 << 3
	All          = Mask0 | Mask1
)

// Set is a group of LEDs on one port.
type Set struct {
	gpio *gpio.Controller
	port gpio.Port
	mask uint32
}

// New returns the STK3700 LED set.
func New(g *gpio.Controller) *Set {
	return NewSet(g, gpio.PortE, All)
}

// NewSet returns a set of LEDs on port at the pins in mask.
func NewSet(g *gpio.Controller, port gpio.Port, mask uint32) *Set {
	return &Set{gpio: g, port: port, mask: mask}
}

// Init configures the LEDs in mask as push-pull outputs, initially off.
// Bits outside the set are ignored.
func (s *Set) Init(mask uint32) {
	mask &= s.mask
	for n := uint8(0); n < 16; n++ {
		if mask&(1<<n) != 0 {
			s.gpio.Configure(gpio.Pin{Port: s.port, Num: n}, gpio.PushPull, false)
		}
	}
}

// On lights the LEDs in mask.
func (s *Set) On(mask uint32) {
	s.gpio.SetMask(s.port, mask&s.mask)
}

// Off turns off the LEDs in mask.
func (s *Set) Off(mask uint32) {
	s.gpio.ClearMask(s.port, mask&s.mask)
}

// Toggle inverts the LEDs in mask.
func (s *Set) Toggle(mask uint32) {
	s.gpio.ToggleMask(s.port, mask&s.mask)
}

// Write turns off the LEDs in off, then lights the LEDs in on.
func (s *Set) Write(off, on uint32) {
	s.Off(off)
	s.On(on)
}

// State returns the mask of lit LEDs.
func (s *Set) State() uint32 {
	var state uint32
	for n := uint8(0); n < 16; n++ {
		pin := gpio.Pin{Port: s.port, Num: n}
		if s.mask&(1<<n) != 0 && s.gpio.Output(pin) {
			state |= 1 << n
		}
	}
	return state
}
