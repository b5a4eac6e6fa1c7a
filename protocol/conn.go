package protocol

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrTimeout is returned when the port stops delivering data mid-exchange
var ErrTimeout = errors.New("timed out waiting for frame")

// Conn is the host side of the protocol. It frames outgoing commands with a
// rolling sequence and returns the payloads of incoming frames, skipping
// ACK/NAK frames.
type Conn struct {
	port io.ReadWriter

	writeMu sync.Mutex
	seq     uint8

	readMu  sync.Mutex
	rx      []byte
	scratch [MessageMax]byte

	// MaxIdleReads bounds consecutive empty reads before ErrTimeout
	MaxIdleReads int
}

// NewConn wraps a port; reads are expected to time out rather than block
// forever (see host/serial Config.ReadTimeout).
func NewConn(port io.ReadWriter) *Conn {
	return &Conn{
		port:         port,
		seq:          MessageDest,
		MaxIdleReads: 20,
	}
}

// Send frames a payload (one or more encoded commands) and writes it
func (c *Conn) Send(payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	frame, err := AppendFrame(nil, c.seq, payload)
	if err != nil {
		return err
	}
	if _, err := c.port.Write(frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	c.seq = ((c.seq + 1) & MessageSeqMask) | MessageDest
	return nil
}

// SendCommand encodes cmdID followed by the arguments written by args
func (c *Conn) SendCommand(cmdID uint16, args func(output OutputBuffer)) error {
	out := NewScratchOutput()
	EncodeVLQUint(out, uint32(cmdID))
	if args != nil {
		args(out)
	}
	return c.Send(out.Result())
}

// ReadPayload returns the payload of the next non-empty frame
func (c *Conn) ReadPayload() ([]byte, error) {
	c.readMu.Lock()
	defer c.readMu.Unlock()

	idle := 0
	for {
		for len(c.rx) > 0 {
			if c.rx[0] == MessageValueSync {
				c.rx = c.rx[1:]
				continue
			}
			frame, n, err := ParseFrame(c.rx)
			if err == ErrFrameIncomplete {
				break
			}
			if err != nil {
				skip, _ := nextSync(c.rx)
				c.rx = c.rx[skip:]
				continue
			}
			payload := append([]byte(nil), frame.Payload...)
			c.rx = c.rx[n:]
			if len(payload) == 0 {
				continue // ACK/NAK
			}
			return payload, nil
		}

		n, err := c.port.Read(c.scratch[:])
		if n > 0 {
			idle = 0
			c.rx = append(c.rx, c.scratch[:n]...)
			continue
		}
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read frame: %w", err)
		}
		idle++
		if idle >= c.MaxIdleReads {
			return nil, ErrTimeout
		}
	}
}
