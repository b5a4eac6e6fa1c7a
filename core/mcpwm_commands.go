package core

import (
	"mcpwm/protocol"
)

// MessageFormat describes one protocol message
type MessageFormat struct {
	Name   string
	Format string
}

// MCPWMMessages lists the MCPWM messages in ID order. Firmware and host both
// build their registries from it, so IDs agree without a dictionary
// exchange. Append only.
var MCPWMMessages = []MessageFormat{
	{"mcpwm_info", "instance=%u source_freq=%u prescaler=%c pwm_freq=%u"},
	{"get_mcpwm_info", ""},
	{"mcpwm_freq", "timer=%c freq=%u"},
	{"query_mcpwm_freq", "timer=%c mode=%c prescaler=%c period=%hu"},
	{"mcpwm_signals", "operator=%c a=%hu b=%hu"},
	{"query_mcpwm_signals", "operator=%c"},
}

// NewMessageRegistry returns a registry holding every MCPWM message without
// handlers, for host-side ID lookup and response decoding.
func NewMessageRegistry() *CommandRegistry {
	r := NewCommandRegistry()
	for _, msg := range MCPWMMessages {
		r.RegisterResponse(msg.Name, msg.Format)
	}
	return r
}

// InitMCPWMCommands registers the MCPWM messages with handlers bound to m
func InitMCPWMCommands[P Peripheral](r *CommandRegistry, m *MCPWM[P]) {
	handlers := map[string]CommandHandler{
		"get_mcpwm_info": func(data *[]byte) error {
			return handleGetMCPWMInfo(r, m)
		},
		"query_mcpwm_freq": func(data *[]byte) error {
			return handleQueryMCPWMFreq(r, m, data)
		},
		"query_mcpwm_signals": func(data *[]byte) error {
			return handleQueryMCPWMSignals(r, m, data)
		},
	}

	for _, msg := range MCPWMMessages {
		r.Register(msg.Name, msg.Format, handlers[msg.Name])
	}
}

// handleGetMCPWMInfo reports the instance and its clocks
// Format: get_mcpwm_info
func handleGetMCPWMInfo[P Peripheral](r *CommandRegistry, m *MCPWM[P]) error {
	var p P
	return r.SendResponse("mcpwm_info", func(output protocol.OutputBuffer) {
		protocol.EncodeVLQUint(output, uint32(p.BlockAddress()))
		protocol.EncodeVLQUint(output, uint32(m.SourceClock()))
		protocol.EncodeVLQUint(output, uint32(m.Prescaler()))
		protocol.EncodeVLQUint(output, uint32(m.Clock().Frequency()))
	})
}

// handleQueryMCPWMFreq computes a timer output frequency
// Format: query_mcpwm_freq timer=%c mode=%c prescaler=%c period=%hu
func handleQueryMCPWMFreq[P Peripheral](r *CommandRegistry, m *MCPWM[P], data *[]byte) error {
	timer, err := protocol.DecodeVLQUint(data)
	if err != nil {
		return err
	}

	mode, err := protocol.DecodeVLQUint(data)
	if err != nil {
		return err
	}

	prescaler, err := protocol.DecodeVLQUint(data)
	if err != nil {
		return err
	}

	period, err := protocol.DecodeVLQUint(data)
	if err != nil {
		return err
	}

	if timer >= NumUnits {
		return ErrInvalidUnit
	}
	if mode > uint32(UpDown) {
		return ErrInvalidMode
	}
	if period > 0xFFFF {
		return ErrInvalidPeriod
	}
	freq, err := m.TimerFrequency(uint8(timer), PwmWorkingMode(mode), uint8(prescaler), uint16(period))
	if err != nil {
		return err
	}

	return r.SendResponse("mcpwm_freq", func(output protocol.OutputBuffer) {
		protocol.EncodeVLQUint(output, timer)
		protocol.EncodeVLQUint(output, uint32(freq))
	})
}

// handleQueryMCPWMSignals reports the output signals of an operator
// Format: query_mcpwm_signals operator=%c
func handleQueryMCPWMSignals[P Peripheral](r *CommandRegistry, m *MCPWM[P], data *[]byte) error {
	operator, err := protocol.DecodeVLQUint(data)
	if err != nil {
		return err
	}

	if operator >= NumUnits {
		return ErrInvalidUnit
	}
	a, b, err := m.OperatorSignals(uint8(operator))
	if err != nil {
		return err
	}

	return r.SendResponse("mcpwm_signals", func(output protocol.OutputBuffer) {
		protocol.EncodeVLQUint(output, operator)
		protocol.EncodeVLQUint(output, uint32(a))
		protocol.EncodeVLQUint(output, uint32(b))
	})
}
