//go:build tinygo

package mmio

import (
	"runtime/volatile"
	"unsafe"
)

// Memory is the Bus backed by the real memory map.
type Memory struct{}

// Get reads the register at addr with a volatile load
func (Memory) Get(addr uintptr) uint32 {
	return (*volatile.Register32)(unsafe.Pointer(addr)).Get()
}

// Set writes the register at addr with a volatile store
func (Memory) Set(addr uintptr, value uint32) {
	(*volatile.Register32)(unsafe.Pointer(addr)).Set(value)
}
