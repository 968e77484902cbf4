// Package button reads the user push buttons of the EFM32GG STK3700 starter
// kit. Buttons are active low with the internal pull-up and glitch filter
// enabled.
//
// Edges are latched either from the GPIO external interrupt
// (HandleInterrupt) or, when a Debouncer is attached, from a periodic
// Tick. ReadPressed and ReadReleased return the latched edges and clear them.
package button

import "gecko/gpio"

// STK3700 button pins
var (
	Button0 = gpio.Pin{Port: gpio.PortB, Num: 9}
	Button1 = gpio.Pin{Port: gpio.PortB, Num: 10}
)

// Mask bits select buttons. All buttons of a set must live on the same port.
const (
	Mask0 uint32 = 1 << 9
	Mask1 uint32 = 1 << 10
	All          = Mask0 | Mask1
)

// Callback is called with the mask of buttons whose state changed.
// It runs in interrupt context when edges come from HandleInterrupt.
type Callback func(changed uint32)

// Buttons is a group of buttons on one port.
type Buttons struct {
	gpio *gpio.Controller
	port gpio.Port
	mask uint32

	enabled  uint32
	last     uint32 // last pressed state seen
	pressed  uint32 // latched press edges
	released uint32 // latched release edges
	callback Callback
	debounce *Debouncer
}

// New returns the STK3700 buttons.
func New(g *gpio.Controller) *Buttons {
	return NewSet(g, gpio.PortB, All)
}

// NewSet returns a set of buttons on port at the pins in mask.
func NewSet(g *gpio.Controller, port gpio.Port, mask uint32) *Buttons {
	return &Buttons{gpio: g, port: port, mask: mask}
}

// Init configures the buttons in mask as filtered pulled-up inputs and
// routes their external interrupts for both edges. Latched edges are
// cleared.
func (b *Buttons) Init(mask uint32) {
	mask &= b.mask
	for n := uint8(0); n < 16; n++ {
		if mask&(1<<n) == 0 {
			continue
		}
		pin := gpio.Pin{Port: b.port, Num: n}
		b.gpio.Configure(pin, gpio.InputPullFilter, true)
		if b.debounce == nil {
			b.gpio.ConfigureInterrupt(pin, gpio.Both)
		}
	}
	b.enabled |= mask

	st := disableInterrupts()
	b.last = b.Read()
	b.pressed = 0
	b.released = 0
	if b.debounce != nil {
		// a button held at startup is not an edge
		b.debounce.Reset(b.last)
	}
	restoreInterrupts(st)
}

// SetDebouncer makes Tick the source of edges. Call before Init so the
// external interrupts are left unconfigured.
func (b *Buttons) SetDebouncer(d *Debouncer) {
	if d != nil {
		d.Reset(b.last)
	}
	b.debounce = d
}

// SetCallback registers f to be called on every state change. A nil f
// removes the callback.
func (b *Buttons) SetCallback(f Callback) {
	b.callback = f
}

// Read returns the mask of buttons currently pressed.
func (b *Buttons) Read() uint32 {
	return ^b.gpio.In(b.port) & b.enabled
}

// ReadPressed returns the buttons pressed since the last call.
func (b *Buttons) ReadPressed() uint32 {
	st := disableInterrupts()
	defer restoreInterrupts(st)
	if b.debounce == nil {
		b.latch(b.Read())
	}
	v := b.pressed
	b.pressed = 0
	return v
}

// ReadReleased returns the buttons released since the last call.
func (b *Buttons) ReadReleased() uint32 {
	st := disableInterrupts()
	defer restoreInterrupts(st)
	if b.debounce == nil {
		b.latch(b.Read())
	}
	v := b.released
	b.released = 0
	return v
}

// HandleInterrupt services the GPIO external interrupt for the buttons.
// It clears their interrupt flags, latches edges and runs the callback.
// Flags of other lines are left pending.
func (b *Buttons) HandleInterrupt() {
	flags := b.gpio.InterruptFlags() & b.enabled
	if flags == 0 {
		return
	}
	b.gpio.ClearInterrupts(flags)
	if b.debounce != nil {
		return
	}
	if changed := b.latch(b.Read()); changed != 0 && b.callback != nil {
		b.callback(changed)
	}
}

// Tick samples the buttons through the debouncer. Call it from a periodic
// timer, typically every millisecond.
func (b *Buttons) Tick() {
	if b.debounce == nil {
		return
	}
	stable := b.debounce.Sample(b.Read())
	if changed := b.latch(stable); changed != 0 && b.callback != nil {
		b.callback(changed)
	}
}

// latch records the edges between the last pressed mask and now.
func (b *Buttons) latch(now uint32) uint32 {
	changed := now ^ b.last
	b.pressed |= changed & now
	b.released |= changed &^ now
	b.last = now
	return changed
}
