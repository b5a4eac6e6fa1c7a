package protocol

// InputBuffer provides an abstraction for reading incoming protocol data
type InputBuffer interface {
	// Data returns the buffered bytes
	Data() []byte

	// Pop removes n bytes from the front of the buffer
	Pop(n int)
}

// OutputBuffer provides an abstraction for writing outgoing protocol data
type OutputBuffer interface {
	Output(data []byte)
}

// ScratchOutput implements OutputBuffer using a fixed-size scratch buffer
type ScratchOutput struct {
	buf [MessageMax]byte
	pos int
}

// NewScratchOutput creates a new ScratchOutput
func NewScratchOutput() *ScratchOutput {
	return &ScratchOutput{}
}

// Output appends data, silently truncating at MessageMax
func (s *ScratchOutput) Output(data []byte) {
	n := copy(s.buf[s.pos:], data)
	s.pos += n
}

// Len returns the number of bytes written
func (s *ScratchOutput) Len() int {
	return s.pos
}

// Result returns the accumulated output data. It aliases the scratch buffer
// and is only valid until the next Output or Reset.
func (s *ScratchOutput) Result() []byte {
	return s.buf[:s.pos]
}

// Reset clears the buffer
func (s *ScratchOutput) Reset() {
	s.pos = 0
}

// RxBuffer accumulates received bytes until complete frames can be parsed.
// It never holds more than its capacity; excess input is dropped and
// counted.
type RxBuffer struct {
	buf     []byte
	dropped uint32
}

// NewRxBuffer creates a receive buffer holding up to capacity bytes
func NewRxBuffer(capacity int) *RxBuffer {
	return &RxBuffer{buf: make([]byte, 0, capacity)}
}

// Write appends data and returns how many bytes fit
func (r *RxBuffer) Write(data []byte) int {
	free := cap(r.buf) - len(r.buf)
	n := len(data)
	if n > free {
		r.dropped += uint32(n - free)
		n = free
	}
	r.buf = append(r.buf, data[:n]...)
	return n
}

// Data returns the buffered bytes
func (r *RxBuffer) Data() []byte {
	return r.buf
}

// Pop removes n bytes from the front, keeping the storage
func (r *RxBuffer) Pop(n int) {
	if n >= len(r.buf) {
		r.buf = r.buf[:0]
		return
	}
	rest := copy(r.buf, r.buf[n:])
	r.buf = r.buf[:rest]
}

// Dropped returns the number of bytes discarded because the buffer was full
func (r *RxBuffer) Dropped() uint32 {
	return r.dropped
}

// Reset clears the buffer
func (r *RxBuffer) Reset() {
	r.buf = r.buf[:0]
}
