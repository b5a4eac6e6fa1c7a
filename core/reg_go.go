//go:build !tinygo

package core

import (
	"sync"
	"sync/atomic"
)

// reg32 emulates a volatile 32-bit register on regular Go
type reg32 struct {
	Reg uint32
}

func (r *reg32) Get() uint32 {
	return atomic.LoadUint32(&r.Reg)
}

func (r *reg32) Set(value uint32) {
	atomic.StoreUint32(&r.Reg, value)
}

// Simulated register blocks, one per peripheral address
var (
	simMu     sync.Mutex
	simBlocks = make(map[uintptr]*Registers)
)

// mapRegisterBlock returns the simulated block backing addr (regular Go has
// no MMIO, so host builds and tests run against memory).
func mapRegisterBlock(addr uintptr) *Registers {
	simMu.Lock()
	defer simMu.Unlock()
	r, ok := simBlocks[addr]
	if !ok {
		r = new(Registers)
		simBlocks[addr] = r
	}
	return r
}

// resetSimulatedRegisters drops all simulated register state
func resetSimulatedRegisters() {
	simMu.Lock()
	defer simMu.Unlock()
	simBlocks = make(map[uintptr]*Registers)
}
