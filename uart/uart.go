// Package uart drives UART0 of the EFM32GG on location 1 (TX PE0, RX PE1),
// the port wired to the STK3700 board controller's virtual COM port.
//
// Received bytes go through a software FIFO. With the receive interrupt
// enabled the FIFO is filled by HandleInterrupt; otherwise reads poll the
// receiver directly.
package uart

import (
	"errors"

	"gecko/device/efm32gg"
	"gecko/gpio"
	"gecko/mmio"
)

// Defaults
const (
	DefaultBaud     = 115200
	DefaultFifoSize = 64
	Location        = 1
)

// Pins of location 1
var (
	TX = gpio.Pin{Port: gpio.PortE, Num: 0}
	RX = gpio.Pin{Port: gpio.PortE, Num: 1}
)

var (
	// ErrBaud is returned by Init when the baud rate cannot be generated
	// from the peripheral clock.
	ErrBaud = errors.New("uart: baud rate out of range")

	// ErrNotEnabled is returned by reads and writes before Init.
	ErrNotEnabled = errors.New("uart: not initialized")
)

// UART is the UART0 driver.
type UART struct {
	bus  mmio.Bus
	wait mmio.Waiter
	rx   *Fifo
	echo bool

	enabled bool
	irq     bool
	dropped uint32
}

// Option configures a UART.
type Option func(*UART)

// WithWaiter bounds the polls spent waiting for the transmitter or for
// received data. The default waits forever.
func WithWaiter(w mmio.Waiter) Option {
	return func(u *UART) {
		u.wait = w
	}
}

// WithFifoSize sets the receive FIFO capacity.
func WithFifoSize(n int) Option {
	return func(u *UART) {
		u.rx = NewFifo(n)
	}
}

// WithEcho makes ReadLine echo the characters it accepts.
func WithEcho(echo bool) Option {
	return func(u *UART) {
		u.echo = echo
	}
}

// New returns a UART0 driver using bus.
func New(bus mmio.Bus, opts ...Option) *UART {
	u := &UART{
		bus:  bus,
		wait: mmio.Waiter{Attempts: mmio.Forever},
		rx:   NewFifo(DefaultFifoSize),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// ClockDivider returns the CLKDIV register value for baud at a peripheral
// clock of perClk Hz with 16x oversampling:
// CLKDIV = 256 * (perClk / (16 * baud) - 1), truncated to the DIV field.
func ClockDivider(perClk, baud uint32) (uint32, error) {
	if baud == 0 || uint64(perClk) < 16*uint64(baud) {
		return 0, ErrBaud
	}
	div := 16*uint64(perClk)/uint64(baud) - 256
	if div > uint64(efm32gg.UART_CLKDIV_DIV_Msk) {
		return 0, ErrBaud
	}
	return uint32(div) & efm32gg.UART_CLKDIV_DIV_Msk, nil
}

// BaudRate returns the baud rate produced by a CLKDIV value.
func BaudRate(perClk, clkdiv uint32) uint32 {
	return uint32(16 * uint64(perClk) / (256 + uint64(clkdiv&efm32gg.UART_CLKDIV_DIV_Msk)))
}

// Init configures the pins, frame format (8N1) and baud rate and enables
// the transmitter and receiver. perClk is the HFPERCLK frequency; the UART0
// and GPIO clocks must already be enabled.
func (u *UART) Init(perClk, baud uint32) error {
	clkdiv, err := ClockDivider(perClk, baud)
	if err != nil {
		return err
	}

	g := gpio.New(u.bus)
	g.Configure(TX, gpio.PushPull, true)
	g.Configure(RX, gpio.Input, false)

	u.bus.Set(efm32gg.UART0_CMD, efm32gg.UART_CMD_TXDIS|efm32gg.UART_CMD_RXDIS|
		efm32gg.UART_CMD_CLEARTX|efm32gg.UART_CMD_CLEARRX)
	u.bus.Set(efm32gg.UART0_CTRL, 0)
	u.bus.Set(efm32gg.UART0_FRAME, efm32gg.UART_FRAME_8N1)
	u.bus.Set(efm32gg.UART0_CLKDIV, clkdiv)
	u.bus.Set(efm32gg.UART0_ROUTE, Location<<efm32gg.UART_ROUTE_LOC_Pos|
		efm32gg.UART_ROUTE_TXPEN|efm32gg.UART_ROUTE_RXPEN)
	u.bus.Set(efm32gg.UART0_IFC, 0xFFFFFFFF)
	u.bus.Set(efm32gg.UART0_CMD, efm32gg.UART_CMD_TXEN|efm32gg.UART_CMD_RXEN)

	u.rx.Reset()
	u.dropped = 0
	u.enabled = true
	return nil
}

// Baud returns the baud rate currently programmed, given the HFPERCLK
// frequency.
func (u *UART) Baud(perClk uint32) uint32 {
	return BaudRate(perClk, u.bus.Get(efm32gg.UART0_CLKDIV))
}

// EnableInterrupts turns on the receive data valid interrupt. From then on
// only HandleInterrupt moves bytes into the FIFO.
func (u *UART) EnableInterrupts() {
	u.irq = true
	mmio.Modify(u.bus, efm32gg.UART0_IEN, 0, efm32gg.UART_IF_RXDATAV)
}

// HandleInterrupt drains the receiver into the FIFO. Bytes that do not fit
// are dropped and counted.
func (u *UART) HandleInterrupt() {
	u.drain()
	u.bus.Set(efm32gg.UART0_IFC, efm32gg.UART_IF_RXDATAV)
}

func (u *UART) drain() {
	for mmio.HasBits(u.bus, efm32gg.UART0_STATUS, efm32gg.UART_STATUS_RXDATAV) {
		b := byte(u.bus.Get(efm32gg.UART0_RXDATA))
		if !u.rx.Put(b) {
			u.dropped++
		}
	}
}

// Dropped returns the number of received bytes lost to a full FIFO.
func (u *UART) Dropped() uint32 {
	return u.dropped
}

// Buffered returns the number of received bytes waiting in the FIFO.
func (u *UART) Buffered() int {
	if !u.irq {
		u.drain()
	}
	return u.rx.Available()
}

// WriteByte transmits c once the transmit buffer has room.
func (u *UART) WriteByte(c byte) error {
	if !u.enabled {
		return ErrNotEnabled
	}
	if err := u.wait.UntilSet(u.bus, efm32gg.UART0_STATUS, efm32gg.UART_STATUS_TXBL); err != nil {
		return err
	}
	u.bus.Set(efm32gg.UART0_TXDATA, uint32(c))
	return nil
}

// Write implements io.Writer.
func (u *UART) Write(p []byte) (int, error) {
	for i, c := range p {
		if err := u.WriteByte(c); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// WriteString transmits s.
func (u *UART) WriteString(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		if err := u.WriteByte(s[i]); err != nil {
			return i, err
		}
	}
	return len(s), nil
}

// ReadByte waits for a received byte.
func (u *UART) ReadByte() (byte, error) {
	if !u.enabled {
		return 0, ErrNotEnabled
	}
	var b byte
	err := u.wait.Until(func() bool {
		if !u.irq {
			u.drain()
		}
		var ok bool
		b, ok = u.rx.Get()
		return ok
	})
	return b, err
}

// Read implements io.Reader. It waits for the first byte and then returns
// whatever else is already buffered.
func (u *UART) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	b, err := u.ReadByte()
	if err != nil {
		return 0, err
	}
	p[0] = b
	if !u.irq {
		u.drain()
	}
	return 1 + u.rx.Read(p[1:]), nil
}

// ReadLine reads characters until a carriage return or line feed, or
// until max-1 characters have been read, and returns them without the
// terminator. Backspace and delete remove the previous character.
func (u *UART) ReadLine(max int) (string, error) {
	if max < 1 {
		return "", nil
	}
	line := make([]byte, 0, max)
	for len(line) < max-1 {
		c, err := u.ReadByte()
		if err != nil {
			return string(line), err
		}
		switch c {
		case '\r', '\n':
			if u.echo {
				u.WriteString("\r\n")
			}
			return string(line), nil
		case '\b', 0x7F:
			if len(line) > 0 {
				line = line[:len(line)-1]
				if u.echo {
					u.WriteString("\b \b")
				}
			}
			continue
		}
		line = append(line, c)
		if u.echo {
			u.WriteByte(c)
		}
	}
	return string(line), nil
}
