//go:build !wasm

package serial

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// ErrNoDevice is returned by Open when no device path is configured
var ErrNoDevice = errors.New("no serial device given")

// NativePort is a console Port on an OS serial device
type NativePort struct {
	port *serial.Port
	cfg  *Config
}

// Open opens the console device in cfg at 8N1. A zero baud rate selects
// DefaultBaud and is written back into cfg.
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, errors.New("serial: nil config")
	}
	if cfg.Device == "" {
		return nil, ErrNoDevice
	}
	if cfg.Baud <= 0 {
		cfg.Baud = DefaultBaud
	}

	serialConfig := &serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
		ReadTimeout: time.Duration(cfg.ReadTimeout) * time.Millisecond,
	}

	port, err := serial.OpenPort(serialConfig)
	if err != nil {
		return nil, fmt.Errorf("open console %s: %w", cfg.Device, err)
	}

	return &NativePort{
		port: port,
		cfg:  cfg,
	}, nil
}

// Config returns the configuration the port was opened with
func (p *NativePort) Config() Config {
	return *p.cfg
}

// Read returns console output from the board. An idle read timeout is
// reported as 0, nil; the OS file layer turns it into io.EOF.
func (p *NativePort) Read(b []byte) (int, error) {
	n, err := p.port.Read(b)
	if n == 0 && err == io.EOF && p.cfg.ReadTimeout > 0 {
		return 0, nil
	}
	return n, err
}

// Write sends bytes to the board UART
func (p *NativePort) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

// Close releases the device
func (p *NativePort) Close() error {
	if p.port != nil {
		return p.port.Close()
	}
	return nil
}

// Flush discards data received but not yet read
func (p *NativePort) Flush() error {
	return p.port.Flush()
}
