//go:build tinygo && (esp32 || esp32s3)

package main

import "mcpwm/core"

// systemClockControl gates peripherals through the chip's clock-enable and
// reset registers
type systemClockControl struct{}

// Enable turns the peripheral clock on, then releases its reset
func (systemClockControl) Enable(p core.PeripheralID) {
	bit := peripheralBit(p)
	core.Critical(func() {
		peripClkEn.SetBits(bit)
		peripRstEn.ClearBits(bit)
	})
}
