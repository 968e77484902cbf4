package button

// DefaultDebounceSamples is the number of consecutive equal samples needed
// to accept a new state: 20 ms at a 1 ms tick.
const DefaultDebounceSamples = 20

// Debouncer filters contact bounce with one counter per input bit. A bit
// changes its stable state after it has read the new level for Samples
// consecutive calls to Sample.
type Debouncer struct {
	Samples uint8

	stable uint32
	counts [32]uint8
}

// NewDebouncer returns a debouncer that needs samples equal readings.
// Zero selects DefaultDebounceSamples.
func NewDebouncer(samples uint8) *Debouncer {
	if samples == 0 {
		samples = DefaultDebounceSamples
	}
	return &Debouncer{Samples: samples}
}

// Sample feeds one raw reading and returns the debounced state.
func (d *Debouncer) Sample(raw uint32) uint32 {
	diff := raw ^ d.stable
	for i := range d.counts {
		bit := uint32(1) << i
		if diff&bit == 0 {
			d.counts[i] = 0
			continue
		}
		d.counts[i]++
		if d.counts[i] >= d.Samples {
			d.stable ^= bit
			d.counts[i] = 0
		}
	}
	return d.stable
}

// Reset sets the stable state to state and drops any pending changes.
func (d *Debouncer) Reset(state uint32) {
	d.stable = state
	d.counts = [32]uint8{}
}

// State returns the debounced state without sampling.
func (d *Debouncer) State() uint32 {
	return d.stable
}
