package protocol

// CommandHandler handles one command. It decodes its own arguments from
// data and leaves data positioned at the next command.
type CommandHandler func(cmdID uint16, data *[]byte) error

// Transport is the firmware side of the protocol: it parses host frames,
// acknowledges them and dispatches the commands they carry.
type Transport struct {
	synchronized bool
	nextSeq      uint8 // expected host sequence, also used for replies
	handler      CommandHandler
	send         func(frame []byte)
	frameBuf     []byte

	FramesReceived uint32
	FrameErrors    uint32
	CommandErrors  uint32
}

// NewTransport creates a transport that writes complete frames with send
func NewTransport(send func(frame []byte), handler CommandHandler) *Transport {
	return &Transport{
		synchronized: true,
		nextSeq:      MessageDest,
		handler:      handler,
		send:         send,
		frameBuf:     make([]byte, 0, MessageLengthMax),
	}
}

// Receive consumes every complete frame in input
func (t *Transport) Receive(input InputBuffer) {
	data := input.Data()
	total := len(data)

	for len(data) > 0 {
		if !t.synchronized {
			// Drop everything up to and including the next sync byte
			skip, found := nextSync(data)
			data = data[skip:]
			if !found {
				break
			}
			t.synchronized = true
			t.sendAck()
			continue
		}

		if data[0] == MessageValueSync {
			data = data[1:]
			continue
		}

		frame, n, err := ParseFrame(data)
		if err == ErrFrameIncomplete {
			break
		}
		if err != nil {
			t.FrameErrors++
			t.synchronized = false
			continue
		}
		data = data[n:]
		t.FramesReceived++

		// Host restarted its sequence
		if frame.Sequence == MessageDest && t.nextSeq != MessageDest {
			t.nextSeq = MessageDest
		}

		if frame.Sequence == t.nextSeq {
			t.nextSeq = ((frame.Sequence + 1) & MessageSeqMask) | MessageDest
			t.sendAck()
			t.dispatch(frame.Payload)
		} else {
			// Out of order: acts as a NAK carrying the expected sequence
			t.sendAck()
		}
	}

	input.Pop(total - len(data))
}

// SendPayload frames a response payload and hands it to the writer. The
// frame slice is reused, so send must not retain it.
func (t *Transport) SendPayload(payload []byte) error {
	frame, err := AppendFrame(t.frameBuf[:0], t.nextSeq, payload)
	if err != nil {
		return err
	}
	t.send(frame)
	return nil
}

func (t *Transport) sendAck() {
	_ = t.SendPayload(nil)
}

// dispatch runs every command in a frame payload
func (t *Transport) dispatch(payload []byte) {
	defer func() {
		if r := recover(); r != nil {
			// A panicking handler must not take the firmware down
			t.CommandErrors++
			t.synchronized = false
		}
	}()

	for len(payload) > 0 {
		cmdID, err := DecodeVLQUint(&payload)
		if err != nil {
			t.CommandErrors++
			t.synchronized = false
			return
		}
		if t.handler == nil {
			return
		}
		if err := t.handler(uint16(cmdID), &payload); err != nil {
			t.CommandErrors++
			return
		}
	}
}
