// Package term relays a terminal to a board console over a serial port.
package term

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
)

// DefaultEscape ends a session: Ctrl-]
const DefaultEscape = 0x1D

// ErrPortClosed is returned when the board side of the relay ends.
var ErrPortClosed = errors.New("serial port closed")

// Relay copies bytes in both directions between a port and a terminal.
type Relay struct {
	Port io.ReadWriter
	In   io.Reader
	Out  io.Writer

	// Escape is the input byte that ends the session. Zero selects
	// DefaultEscape.
	Escape byte

	// NewlineCR sends a carriage return for every line feed typed, for
	// firmware that only terminates lines on CR.
	NewlineCR bool
}

// Run relays until the escape byte is typed (returning nil), ctx is done
// (returning ctx.Err()) or either side fails. Goroutines blocked in Read
// end when the caller closes the port and input.
func (r *Relay) Run(ctx context.Context) error {
	escape := r.Escape
	if escape == 0 {
		escape = DefaultEscape
	}

	errc := make(chan error, 2)
	go func() {
		_, err := io.Copy(r.Out, r.Port)
		if err == nil {
			err = io.EOF
		}
		errc <- fmt.Errorf("%w: %v", ErrPortClosed, err)
	}()
	go func() {
		errc <- r.forward(escape)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errc:
		if errors.Is(err, errDetach) {
			return nil
		}
		return err
	}
}

var errDetach = errors.New("detach")

// forward copies terminal input to the port until the escape byte.
func (r *Relay) forward(escape byte) error {
	buf := make([]byte, 256)
	for {
		n, err := r.In.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			i := bytes.IndexByte(chunk, escape)
			if i >= 0 {
				chunk = chunk[:i]
			}
			if r.NewlineCR {
				chunk = bytes.ReplaceAll(chunk, []byte{'\n'}, []byte{'\r'})
			}
			if _, werr := r.Port.Write(chunk); werr != nil {
				return fmt.Errorf("write port: %w", werr)
			}
			if i >= 0 {
				return errDetach
			}
		}
		if err != nil {
			if err == io.EOF {
				return errDetach
			}
			return fmt.Errorf("read input: %w", err)
		}
	}
}
