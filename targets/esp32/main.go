//go:build tinygo && (esp32 || esp32s3)

package main

import (
	"machine"
	"time"

	"mcpwm/core"
	"mcpwm/protocol"
)

var (
	uart      = machine.Serial
	rxBuffer  *protocol.RxBuffer
	transport *protocol.Transport
	registry  *core.CommandRegistry

	// Debug counters
	bytesReceived uint32
	msgerrors     uint32
)

func main() {
	cfg := GetConfig()

	uart.Configure(machine.UARTConfig{BaudRate: cfg.BaudRate})

	core.SetDebugWriter(func(s string) {
		println(s)
	})
	core.SetDebugEnabled(cfg.Debug)

	registry = core.NewCommandRegistry()
	switch cfg.Instance {
	case 1:
		m := core.New(core.MustTake[core.PWM1](), &chipClocks, cfg.Prescaler, systemClockControl{})
		core.InitMCPWMCommands(registry, m)
	default:
		m := core.New(core.MustTake[core.PWM0](), &chipClocks, cfg.Prescaler, systemClockControl{})
		core.InitMCPWMCommands(registry, m)
	}

	if cfg.Debug {
		// Trace lines drain from a goroutine so the command loop starts now
		core.InitAsyncDebug()
		core.DebugAsync("[BOOT] chip=" + chipName)
		core.DumpTrace()
	}

	rxBuffer = protocol.NewRxBuffer(protocol.MessageMax)
	transport = protocol.NewTransport(writeUART, registry.Dispatch)
	registry.SetResponder(transport.SendPayload)

	// Main loop
	for {
		func() {
			defer func() {
				if r := recover(); r != nil {
					msgerrors++
					rxBuffer.Reset()
				}
			}()

			if readUART() > 0 {
				transport.Receive(rxBuffer)
			}
		}()

		// Yield to other goroutines
		time.Sleep(100 * time.Microsecond)
	}
}

// readUART moves pending UART bytes into the receive buffer
func readUART() int {
	var chunk [64]byte
	n := 0
	for n < len(chunk) && uart.Buffered() > 0 {
		b, err := uart.ReadByte()
		if err != nil {
			msgerrors++
			break
		}
		chunk[n] = b
		n++
	}
	if n > 0 {
		rxBuffer.Write(chunk[:n])
		bytesReceived += uint32(n)
	}
	return n
}

// writeUART sends one complete frame
func writeUART(frame []byte) {
	if _, err := uart.Write(frame); err != nil {
		msgerrors++
	}
}
