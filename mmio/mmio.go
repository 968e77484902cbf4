// Package mmio is the register access layer shared by the peripheral packages.
//
// Every driver in this module talks to hardware through a Bus so the same
// code runs against the real memory map under TinyGo and against an
// in-memory simulation on the host.
package mmio

// Bus reads and writes 32-bit registers by absolute address.
type Bus interface {
	Get(addr uintptr) uint32
	Set(addr uintptr, value uint32)
}

// Field describes a bit field inside a register as a shift and an
// unshifted mask, the vendor _Pos/_Msk pair.
type Field struct {
	Pos  uint8
	Mask uint32 // shifted mask
}

// Extract returns the value of the field in reg.
func (f Field) Extract(reg uint32) uint32 {
	return (reg & f.Mask) >> f.Pos
}

// Insert returns reg with the field replaced by value. Bits of value that do
// not fit in the field are dropped.
func (f Field) Insert(reg, value uint32) uint32 {
	return (reg &^ f.Mask) | ((value << f.Pos) & f.Mask)
}

// Modify performs a read-modify-write: bits in clear are cleared, then bits
// in set are set. All other bits are written back unchanged.
func Modify(b Bus, addr uintptr, clear, set uint32) {
	b.Set(addr, (b.Get(addr)&^clear)|set)
}

// GetField reads a field from a register.
func GetField(b Bus, addr uintptr, f Field) uint32 {
	return f.Extract(b.Get(addr))
}

// SetField writes a field of a register, leaving the other bits untouched.
func SetField(b Bus, addr uintptr, f Field, value uint32) {
	b.Set(addr, f.Insert(b.Get(addr), value))
}

// HasBits reports whether all bits in mask are set in the register.
func HasBits(b Bus, addr uintptr, mask uint32) bool {
	return b.Get(addr)&mask == mask
}
