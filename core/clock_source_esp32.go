//go:build !esp32s3

package core

// PwmClockSourceName names the clock feeding the MCPWM prescaler
const PwmClockSourceName = "apb"

// PwmSourceClock returns the clock feeding the MCPWM prescaler.
// On the ESP32 this is taken to be the APB clock; the TRM is not explicit
// about it, so verify against a scope when changing clock setup.
func PwmSourceClock(c *Clocks) Hertz {
	return c.APBClock
}
