package protocol

import "testing"

func TestScratchOutput(t *testing.T) {
	scratch := NewScratchOutput()

	scratch.Output([]byte{1, 2, 3})
	if scratch.Len() != 3 {
		t.Errorf("Expected length 3, got %d", scratch.Len())
	}

	scratch.Output([]byte{4, 5})
	result := scratch.Result()
	if len(result) != 5 || result[3] != 4 || result[4] != 5 {
		t.Errorf("Unexpected result %v", result)
	}

	scratch.Reset()
	if scratch.Len() != 0 {
		t.Errorf("Expected empty buffer after reset, got %d bytes", scratch.Len())
	}
}

func TestScratchOutputTruncates(t *testing.T) {
	scratch := NewScratchOutput()
	scratch.Output(make([]byte, MessageMax+10))
	if scratch.Len() != MessageMax {
		t.Errorf("Expected output capped at %d, got %d", MessageMax, scratch.Len())
	}
}

func TestRxBuffer(t *testing.T) {
	rx := NewRxBuffer(8)

	if n := rx.Write([]byte{1, 2, 3, 4, 5}); n != 5 {
		t.Errorf("Expected 5 bytes written, got %d", n)
	}

	rx.Pop(2)
	data := rx.Data()
	if len(data) != 3 || data[0] != 3 {
		t.Errorf("After popping 2, expected [3 4 5], got %v", data)
	}

	// 5 free bytes left, 7 offered
	if n := rx.Write([]byte{6, 7, 8, 9, 10, 11, 12}); n != 5 {
		t.Errorf("Expected 5 bytes written into full buffer, got %d", n)
	}
	if rx.Dropped() != 2 {
		t.Errorf("Expected 2 dropped bytes, got %d", rx.Dropped())
	}

	rx.Pop(100)
	if len(rx.Data()) != 0 {
		t.Errorf("Expected empty buffer after over-pop, got %v", rx.Data())
	}

	rx.Write([]byte{1})
	rx.Reset()
	if len(rx.Data()) != 0 {
		t.Errorf("Expected empty buffer after reset")
	}
}
