//go:build esp32s3

package core

// PwmClockSourceName names the clock feeding the MCPWM prescaler
const PwmClockSourceName = "crypto_pwm"

// PwmSourceClock returns the clock feeding the MCPWM prescaler.
// The ESP32-S3 feeds MCPWM from the 160MHz crypto/PWM clock.
func PwmSourceClock(c *Clocks) Hertz {
	return c.CryptoPWMClock
}
