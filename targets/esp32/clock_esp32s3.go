//go:build tinygo && esp32s3

package main

import (
	"runtime/volatile"
	"unsafe"

	"mcpwm/core"
)

// ESP32-S3 SYSTEM peripheral clock gating
const (
	systemPeripClkEn0 = 0x600C0018
	systemPeripRstEn0 = 0x600C0020

	systemPwm0Bit = 1 << 17
	systemPwm1Bit = 1 << 20
)

var (
	peripClkEn = (*volatile.Register32)(unsafe.Pointer(uintptr(systemPeripClkEn0)))
	peripRstEn = (*volatile.Register32)(unsafe.Pointer(uintptr(systemPeripRstEn0)))
)

// chipClocks is the clock tree after the second stage bootloader; the
// MCPWM runs from the 160MHz crypto/PWM clock.
var chipClocks = core.Clocks{
	CPUClock:       240000000,
	APBClock:       80000000,
	CryptoPWMClock: 160000000,
}

const chipName = "esp32s3"

func peripheralBit(p core.PeripheralID) uint32 {
	switch p {
	case core.PeripheralMcpwm0:
		return systemPwm0Bit
	case core.PeripheralMcpwm1:
		return systemPwm1Bit
	}
	panic("unknown peripheral " + p.String())
}
