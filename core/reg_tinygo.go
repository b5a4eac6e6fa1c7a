//go:build tinygo

package core

import (
	"runtime/volatile"
	"unsafe"
)

type reg32 = volatile.Register32

// mapRegisterBlock overlays the register layout on the peripheral address.
// The address comes from a Peripheral implementation and is a fixed MMIO
// block for the lifetime of the program.
func mapRegisterBlock(addr uintptr) *Registers {
	return (*Registers)(unsafe.Pointer(addr))
}
