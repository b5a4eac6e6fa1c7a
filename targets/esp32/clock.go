//go:build tinygo && esp32 && !esp32s3

package main

import (
	"runtime/volatile"
	"unsafe"

	"mcpwm/core"
)

// ESP32 DPORT peripheral clock gating
const (
	dportPeripClkEn = 0x3FF000C0
	dportPeripRstEn = 0x3FF000C4

	dportPwm0Bit = 1 << 17
	dportPwm1Bit = 1 << 20
)

var (
	peripClkEn = (*volatile.Register32)(unsafe.Pointer(uintptr(dportPeripClkEn)))
	peripRstEn = (*volatile.Register32)(unsafe.Pointer(uintptr(dportPeripRstEn)))
)

// chipClocks is the clock tree set up by the ROM bootloader: 240MHz CPU
// from the PLL, APB at 80MHz.
var chipClocks = core.Clocks{
	CPUClock:       240000000,
	APBClock:       80000000,
	CryptoPWMClock: 160000000,
}

const chipName = "esp32"

func peripheralBit(p core.PeripheralID) uint32 {
	switch p {
	case core.PeripheralMcpwm0:
		return dportPwm0Bit
	case core.PeripheralMcpwm1:
		return dportPwm1Bit
	}
	panic("unknown peripheral " + p.String())
}
