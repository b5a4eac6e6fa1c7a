package protocol

// CRC16 calculates the CRC16 checksum for protocol frames
// (CRC-16/MCRF4XX as used by Klipper).
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		b = b ^ uint8(crc&0xFF)
		b = b ^ (b << 4)
		b16 := uint16(b)
		crc = (b16<<8 | crc>>8) ^ (b16 >> 4) ^ (b16 << 3)
	}
	return crc
}

// Frame is a decoded protocol frame
type Frame struct {
	Sequence uint8  // Sequence byte including MessageDest
	Payload  []byte // Data between header and trailer, aliases the input
}

// AppendFrame appends a frame carrying payload with sequence seq to dst
func AppendFrame(dst []byte, seq uint8, payload []byte) ([]byte, error) {
	if len(payload) > MessagePayloadMax {
		return dst, ErrPayloadTooLarge
	}
	start := len(dst)
	msgLen := len(payload) + MessageLengthMin
	dst = append(dst, byte(msgLen), (seq&MessageSeqMask)|MessageDest)
	dst = append(dst, payload...)
	crc := CRC16(dst[start:])
	return append(dst, byte(crc>>8), byte(crc), MessageValueSync), nil
}

// ParseFrame decodes the frame at the start of data and returns it with the
// number of bytes it occupies. ErrFrameIncomplete means more input is needed;
// any other error means data does not start with a valid frame.
func ParseFrame(data []byte) (Frame, int, error) {
	if len(data) < MessageLengthMin {
		return Frame{}, 0, ErrFrameIncomplete
	}

	msgLen := int(data[MessagePositionLen])
	if msgLen < MessageLengthMin || msgLen > MessageLengthMax {
		return Frame{}, 0, ErrFrameLength
	}

	seq := data[MessagePositionSeq]
	if seq&^MessageSeqMask != MessageDest {
		return Frame{}, 0, ErrFrameSeq
	}

	if len(data) < msgLen {
		return Frame{}, 0, ErrFrameIncomplete
	}

	if data[msgLen-MessageTrailerSync] != MessageValueSync {
		return Frame{}, 0, ErrFrameSync
	}

	frameCRC := uint16(data[msgLen-MessageTrailerCRC])<<8 |
		uint16(data[msgLen-MessageTrailerCRC+1])
	if frameCRC != CRC16(data[:msgLen-MessageTrailerSize]) {
		return Frame{}, 0, ErrFrameCRC
	}

	return Frame{
		Sequence: seq,
		Payload:  data[MessageHeaderSize : msgLen-MessageTrailerSize],
	}, msgLen, nil
}

// nextSync returns the index just past the next sync byte in data
func nextSync(data []byte) (int, bool) {
	for i, b := range data {
		if b == MessageValueSync {
			return i + 1, true
		}
	}
	return len(data), false
}
