package serial

import (
	"io"
)

// Port is the host end of the board console. Open returns one backed by the
// OS serial device; tests substitute an in-memory pipe.
type Port interface {
	io.ReadWriteCloser

	// Flush discards bytes received from the board but not yet read,
	// so a new session does not start with stale console output
	Flush() error
}

// DefaultBaud is the rate of the STK3700 virtual COM port console
const DefaultBaud = 115200

// Config selects the console device and line settings
type Config struct {
	// Device path of the STK3700 virtual COM port, e.g. /dev/ttyACM0 or COM3
	Device string

	// Baud rate, must match the firmware UART setting
	Baud int

	// Read timeout in milliseconds, 0 blocks. The terminal relay needs a
	// timeout so its reader notices a detach.
	ReadTimeout int
}

// DefaultConfig returns the console configuration for a board UART
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: 100, // 100ms read timeout
	}
}
