// Package protocol implements the framed command protocol spoken between the
// MCPWM firmware and the host tool. Framing and integer encoding follow the
// Klipper serial protocol.
package protocol

import "errors"

// Version is the protocol implementation version
const Version = "0.1.0"

// Frame layout: [len][seq][payload...][crc hi][crc lo][sync]
const (
	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 64
	MessagePayloadMax  = MessageLengthMax - MessageLengthMin
	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageTrailerCRC  = 3
	MessageTrailerSync = 1
	MessageValueSync   = 0x7E
	MessageDest        = 0x10

	MessageSeqMask = 0x0F

	// MessageMax is the scratch buffer size for encoding payloads
	MessageMax = 512
)

var (
	ErrFrameIncomplete = errors.New("frame incomplete")
	ErrFrameLength     = errors.New("frame length out of range")
	ErrFrameSeq        = errors.New("frame sequence byte invalid")
	ErrFrameSync       = errors.New("frame missing sync byte")
	ErrFrameCRC        = errors.New("frame CRC mismatch")
	ErrPayloadTooLarge = errors.New("payload too large for frame")
)
