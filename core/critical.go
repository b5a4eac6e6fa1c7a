package core

// Critical runs fn with interrupts masked. Target code uses it for
// read-modify-write of registers shared with other peripherals, like the
// system clock-gate registers.
func Critical(fn func()) {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	fn()
}
