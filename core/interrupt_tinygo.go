//go:build tinygo

package core

import "runtime/interrupt"

type interruptState = interrupt.State

// disableInterrupts masks interrupts on the running core and returns the
// previous mask
func disableInterrupts() interruptState {
	return interrupt.Disable()
}

// restoreInterrupts restores a mask saved by disableInterrupts
func restoreInterrupts(state interruptState) {
	interrupt.Restore(state)
}
