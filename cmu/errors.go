package cmu

import "errors"

var (
	// ErrUnknownSource is returned by SetClock for a source it cannot select.
	// No register is written in that case.
	ErrUnknownSource = errors.New("cmu: unknown clock source")

	// ErrNotReady is matched by errors returned when an oscillator did not
	// report ready within the controller's wait budget.
	ErrNotReady = errors.New("cmu: oscillator not ready")
)

// NotReadyError reports the oscillator that failed to become ready.
type NotReadyError struct {
	Source Source
	Err    error // the waiter's error, normally mmio.ErrTimeout
}

func (e *NotReadyError) Error() string {
	return "cmu: " + e.Source.String() + " not ready: " + e.Err.Error()
}

func (e *NotReadyError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrNotReady) hold for every NotReadyError.
func (e *NotReadyError) Is(target error) bool {
	return target == ErrNotReady
}
