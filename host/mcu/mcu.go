// Package mcu talks to MCPWM firmware over the framed serial protocol.
package mcu

import (
	"errors"
	"fmt"
	"io"
	"time"

	"mcpwm/core"
	"mcpwm/host/serial"
	"mcpwm/protocol"
)

// ErrNotConnected is returned by queries on a closed client
var ErrNotConnected = errors.New("not connected to MCU")

// Info describes the MCPWM instance the firmware drives
type Info struct {
	Block       uint32 // register block address, identifies the instance
	SourceClock core.Hertz
	Prescaler   uint8
	PwmClock    core.Hertz
}

// Instance names the MCPWM instance owning Block, or "unknown"
func (i *Info) Instance() string {
	switch uintptr(i.Block) {
	case (core.PWM0{}).BlockAddress():
		return "PWM0"
	case (core.PWM1{}).BlockAddress():
		return "PWM1"
	}
	return "unknown"
}

// Client is a connection to MCPWM firmware
type Client struct {
	conn     *protocol.Conn
	closer   io.Closer
	messages *core.CommandRegistry

	// ResponseRetries bounds unrelated payloads skipped while waiting
	ResponseRetries int
}

// NewClient wraps an open port. rw must return from Read when no data
// arrives (see serial.Config.ReadTimeout).
func NewClient(rw io.ReadWriter) *Client {
	c := &Client{
		conn:            protocol.NewConn(rw),
		messages:        core.NewMessageRegistry(),
		ResponseRetries: 8,
	}
	if closer, ok := rw.(io.Closer); ok {
		c.closer = closer
	}
	return c
}

// Dial opens the serial port in cfg and connects to the firmware
func Dial(cfg *serial.Config) (*Client, error) {
	port, err := serial.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port: %w", err)
	}
	if err := port.Flush(); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to flush serial port: %w", err)
	}

	// Give the firmware time to finish bring-up if the port open reset it
	time.Sleep(100 * time.Millisecond)

	return NewClient(port), nil
}

// SetMaxIdleReads sets how many empty port reads end a query with a timeout
func (c *Client) SetMaxIdleReads(n int) {
	if c.conn != nil {
		c.conn.MaxIdleReads = n
	}
}

// Close closes the underlying port
func (c *Client) Close() error {
	conn, closer := c.conn, c.closer
	c.conn, c.closer = nil, nil
	if conn == nil || closer == nil {
		return nil
	}
	return closer.Close()
}

// Info queries the instance and clock configuration
func (c *Client) Info() (*Info, error) {
	values, err := c.query("get_mcpwm_info", nil, "mcpwm_info", 4)
	if err != nil {
		return nil, err
	}
	return &Info{
		Block:       values[0],
		SourceClock: core.Hertz(values[1]),
		Prescaler:   uint8(values[2]),
		PwmClock:    core.Hertz(values[3]),
	}, nil
}

// TimerFreq asks the firmware for the output frequency of timer
func (c *Client) TimerFreq(timer uint8, mode core.PwmWorkingMode, prescaler uint8, period uint16) (core.Hertz, error) {
	if timer >= core.NumUnits {
		return 0, fmt.Errorf("timer %d: %w", timer, core.ErrInvalidUnit)
	}
	if !mode.Valid() {
		return 0, fmt.Errorf("mode %d: %w", mode, core.ErrInvalidMode)
	}

	values, err := c.query("query_mcpwm_freq", func(output protocol.OutputBuffer) {
		protocol.EncodeVLQUint(output, uint32(timer))
		protocol.EncodeVLQUint(output, uint32(mode))
		protocol.EncodeVLQUint(output, uint32(prescaler))
		protocol.EncodeVLQUint(output, uint32(period))
	}, "mcpwm_freq", 2)
	if err != nil {
		return 0, err
	}
	if values[0] != uint32(timer) {
		return 0, fmt.Errorf("mcpwm_freq: expected timer %d, got %d", timer, values[0])
	}
	return core.Hertz(values[1]), nil
}

// Signals asks the firmware for the GPIO matrix signals of an operator
func (c *Client) Signals(operator uint8) (a, b core.OutputSignal, err error) {
	if operator >= core.NumUnits {
		return 0, 0, fmt.Errorf("operator %d: %w", operator, core.ErrInvalidUnit)
	}

	values, err := c.query("query_mcpwm_signals", func(output protocol.OutputBuffer) {
		protocol.EncodeVLQUint(output, uint32(operator))
	}, "mcpwm_signals", 3)
	if err != nil {
		return 0, 0, err
	}
	if values[0] != uint32(operator) {
		return 0, 0, fmt.Errorf("mcpwm_signals: expected operator %d, got %d", operator, values[0])
	}
	return core.OutputSignal(values[1]), core.OutputSignal(values[2]), nil
}

// query sends command and waits for a response named response with at
// least fields arguments
func (c *Client) query(command string, args func(protocol.OutputBuffer), response string, fields int) ([]uint32, error) {
	if c.conn == nil {
		return nil, ErrNotConnected
	}

	cmd, ok := c.messages.GetCommandByName(command)
	if !ok {
		return nil, fmt.Errorf("unknown command: %s", command)
	}
	resp, ok := c.messages.GetCommandByName(response)
	if !ok {
		return nil, fmt.Errorf("unknown response: %s", response)
	}

	if err := c.conn.SendCommand(cmd.ID, args); err != nil {
		return nil, fmt.Errorf("%s: %w", command, err)
	}

	for i := 0; i <= c.ResponseRetries; i++ {
		payload, err := c.conn.ReadPayload()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", command, err)
		}

		id, err := protocol.DecodeVLQUint(&payload)
		if err != nil {
			return nil, fmt.Errorf("%s: decode response ID: %w", command, err)
		}
		if uint16(id) != resp.ID {
			continue
		}

		values, err := decodeFields(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", response, err)
		}
		if len(values) < fields {
			return nil, fmt.Errorf("%s: expected %d fields, got %d", response, fields, len(values))
		}
		return values, nil
	}
	return nil, fmt.Errorf("%s: no %s response", command, response)
}

func decodeFields(payload []byte) ([]uint32, error) {
	var values []uint32
	for len(payload) > 0 {
		v, err := protocol.DecodeVLQUint(&payload)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}
