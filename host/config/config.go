package config

import (
	"encoding/json"
	"fmt"
	"os"

	"mcpwm/core"
	"mcpwm/host/serial"
)

// HostConfig holds the mcpwm-host settings
type HostConfig struct {
	Device      string `json:"device"`
	Baud        int    `json:"baud"`
	ReadTimeout int    `json:"read_timeout_ms"`
	Verbose     bool   `json:"verbose"`

	// Clock tree used by the offline calculator
	APBClock       uint32 `json:"apb_clock"`
	CryptoPWMClock uint32 `json:"crypto_pwm_clock"`
	Prescaler      uint8  `json:"prescaler"`
}

// LoadConfig parses a JSON configuration and applies defaults
func LoadConfig(jsonData []byte) (*HostConfig, error) {
	var config HostConfig

	err := json.Unmarshal(jsonData, &config)
	if err != nil {
		return nil, err
	}

	// Apply defaults
	applyDefaults(&config)

	return &config, nil
}

// LoadFile reads and parses a configuration file
func LoadFile(path string) (*HostConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	config, err := LoadConfig(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return config, nil
}

// applyDefaults fills in missing configuration values with sensible defaults
func applyDefaults(config *HostConfig) {
	if config.Device == "" {
		config.Device = "/dev/ttyUSB0"
	}
	if config.Baud == 0 {
		config.Baud = serial.DefaultBaud
	}
	if config.ReadTimeout == 0 {
		config.ReadTimeout = 100 // 100ms
	}

	// ESP32 clock tree defaults
	if config.APBClock == 0 {
		config.APBClock = 80000000
	}
	if config.CryptoPWMClock == 0 {
		config.CryptoPWMClock = 160000000
	}
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() *HostConfig {
	config := &HostConfig{}
	applyDefaults(config)
	return config
}

// Serial returns the serial port settings
func (c *HostConfig) Serial() *serial.Config {
	return &serial.Config{
		Device:      c.Device,
		Baud:        c.Baud,
		ReadTimeout: c.ReadTimeout,
	}
}

// Clocks returns the clock tree for offline frequency calculations
func (c *HostConfig) Clocks() *core.Clocks {
	return &core.Clocks{
		APBClock:       core.Hertz(c.APBClock),
		CryptoPWMClock: core.Hertz(c.CryptoPWMClock),
	}
}

// PwmClock derives the prescaled MCPWM clock for this build's chip family
func (c *HostConfig) PwmClock() core.PwmClock {
	return core.DerivePwmClock(core.PwmSourceClock(c.Clocks()), c.Prescaler)
}
