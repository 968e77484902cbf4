package uart

// Fifo is a circular byte buffer between the receive interrupt and the
// reader. One slot stays free to tell full from empty. With a single
// producer and a single consumer no locking is needed.
type Fifo struct {
	buf   []byte
	read  int
	write int
	size  int
}

// NewFifo creates a Fifo holding up to capacity-1 bytes.
func NewFifo(capacity int) *Fifo {
	if capacity < 2 {
		capacity = 2
	}
	return &Fifo{
		buf:  make([]byte, capacity),
		size: capacity,
	}
}

// Put appends b and reports whether there was room.
func (f *Fifo) Put(b byte) bool {
	nextWrite := (f.write + 1) % f.size
	if nextWrite == f.read {
		// Buffer full
		return false
	}
	f.buf[f.write] = b
	f.write = nextWrite
	return true
}

// Get removes the oldest byte. ok is false when the buffer is empty.
func (f *Fifo) Get() (b byte, ok bool) {
	if f.read == f.write {
		return 0, false
	}
	b = f.buf[f.read]
	f.read = (f.read + 1) % f.size
	return b, true
}

// Write appends data until the buffer is full and returns the count stored.
func (f *Fifo) Write(data []byte) int {
	written := 0
	for _, b := range data {
		if !f.Put(b) {
			break
		}
		written++
	}
	return written
}

// Read reads up to len(data) bytes from the buffer
func (f *Fifo) Read(data []byte) int {
	read := 0
	for i := range data {
		b, ok := f.Get()
		if !ok {
			break
		}
		data[i] = b
		read++
	}
	return read
}

// Available returns the number of bytes available for reading
func (f *Fifo) Available() int {
	if f.write >= f.read {
		return f.write - f.read
	}
	return f.size - f.read + f.write
}

// Free returns the number of bytes available for writing
func (f *Fifo) Free() int {
	return f.size - f.Available() - 1
}

// IsEmpty returns true if the buffer is empty
func (f *Fifo) IsEmpty() bool {
	return f.read == f.write
}

// Reset clears the buffer
func (f *Fifo) Reset() {
	f.read = 0
	f.write = 0
}
