//go:build tinygo && (esp32 || esp32s3)

package main

// FirmwareConfig selects what the firmware brings up
type FirmwareConfig struct {
	// Instance is the MCPWM instance to own: 0 for PWM0, 1 for PWM1
	Instance uint8

	// Prescaler divides the MCPWM source clock by Prescaler+1
	Prescaler uint8

	// BaudRate of the command UART
	BaudRate uint32

	// Debug prints the bring-up trace on the command UART before the
	// command loop starts. The host flushes the port on connect.
	Debug bool
}

// GetConfig returns the firmware configuration
// This can be modified at compile time
func GetConfig() FirmwareConfig {
	return FirmwareConfig{
		Instance:  0,
		Prescaler: 0,
		BaudRate:  115200,
		Debug:     false,
	}
}
