package mmio

import "errors"

// ErrTimeout is returned by a bounded Waiter whose attempt budget ran out.
var ErrTimeout = errors.New("mmio: wait timed out")

// Forever is the attempt budget of a Waiter that never gives up.
const Forever = 0

// Waiter polls a hardware condition. Attempts bounds the number of polls;
// Forever (the zero value) spins until the condition holds, which is the
// firmware behaviour: a peripheral that never reports ready hangs the caller.
type Waiter struct {
	Attempts uint32
}

// Until polls cond until it returns true. It returns ErrTimeout when a
// bounded budget is exhausted.
func (w Waiter) Until(cond func() bool) error {
	if w.Attempts == Forever {
		for !cond() {
		}
		return nil
	}
	for i := uint32(0); i < w.Attempts; i++ {
		if cond() {
			return nil
		}
	}
	return ErrTimeout
}

// UntilSet waits for all bits of mask to be set in the register at addr.
func (w Waiter) UntilSet(b Bus, addr uintptr, mask uint32) error {
	return w.Until(func() bool { return HasBits(b, addr, mask) })
}
