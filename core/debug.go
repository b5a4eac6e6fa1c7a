package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// TraceEvent captures one MCPWM bring-up step for post-mortem analysis
type TraceEvent struct {
	EventType uint8  // Event type code
	Block     uint32 // Register block address of the instance
	Value     uint32 // Context-dependent value
}

// Event type codes, in bring-up order
const (
	EvtClockGate   = 1 // clock gate requested, value unused
	EvtPrescaler   = 2 // CLK_CFG written, value = prescaler
	EvtClockEnable = 3 // CLK written, value = CLK.EN
	EvtSyncMethod  = 4 // comparator update method written, value = bits
	EvtReady       = 5 // units constructed, value = pwm clock in Hz
)

const (
	TraceRingSize  = 16 // Enough for both instances' bring-up
	DebugQueueSize = 32 // Holds a full DumpTrace
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	// Bring-up trace ring buffer
	traceRing     [TraceRingSize]TraceEvent
	traceRingHead uint8
	traceCount    uint32

	// Async debug output channel
	debugChan    chan string
	debugDone    chan struct{}
	debugDropped uint32
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// InitAsyncDebug starts the async debug output goroutine
// Call this from main() after SetDebugWriter. Once started, DumpTrace and
// DebugAsync queue their lines instead of writing them inline.
func InitAsyncDebug() {
	if debugChan != nil {
		return
	}
	debugChan = make(chan string, DebugQueueSize)
	debugDone = make(chan struct{})
	go debugOutputWorker(debugChan, debugDone, debugPrintln)
}

// StopAsyncDebug drains the queue and stops the output goroutine
func StopAsyncDebug() {
	if debugChan == nil {
		return
	}
	close(debugChan)
	<-debugDone
	debugChan = nil
	debugDone = nil
}

// debugOutputWorker runs in background, drains debug channel
func debugOutputWorker(msgs <-chan string, done chan<- struct{}, writer DebugWriter) {
	defer close(done)
	for msg := range msgs {
		if writer != nil {
			writer(msg)
		}
	}
}

// DebugPrintln writes a debug message using the platform-specific writer
// Blocks if debug is enabled (use DebugAsync for non-blocking)
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// DebugAsync queues a debug message for async output (non-blocking)
// Returns immediately even if channel is full (drops message)
func DebugAsync(msg string) {
	if debugEnabled {
		queueDebug(msg)
	}
}

// queueDebug does a non-blocking send, counting the line as dropped when
// the queue is full
func queueDebug(msg string) bool {
	if debugChan == nil {
		return false
	}
	select {
	case debugChan <- msg:
		return true
	default:
		debugDropped++
		return false
	}
}

// DebugDropped returns the number of queued lines lost to a full queue
func DebugDropped() uint32 {
	return debugDropped
}

// RecordEvent appends a bring-up step to the trace ring
func RecordEvent(eventType uint8, block uintptr, value uint32) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	idx := traceRingHead
	traceRing[idx] = TraceEvent{
		EventType: eventType,
		Block:     uint32(block),
		Value:     value,
	}
	traceRingHead = (idx + 1) % TraceRingSize
	traceCount++
}

// TraceEvents returns the recorded events, oldest first
func TraceEvents() []TraceEvent {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	events := make([]TraceEvent, 0, TraceRingSize)
	start := traceRingHead
	for i := uint8(0); i < TraceRingSize; i++ {
		evt := traceRing[(start+i)%TraceRingSize]
		if evt.EventType == 0 {
			continue // Empty slot
		}
		events = append(events, evt)
	}
	return events
}

func eventName(eventType uint8) string {
	switch eventType {
	case EvtClockGate:
		return "CLOCK_GATE"
	case EvtPrescaler:
		return "PRESCALER"
	case EvtClockEnable:
		return "CLOCK_EN"
	case EvtSyncMethod:
		return "SYNC_METHOD"
	case EvtReady:
		return "READY"
	}
	return "UNKNOWN"
}

// DumpTrace outputs the trace ring through the debug writer, or through the
// async queue once InitAsyncDebug has run
func DumpTrace() {
	emit := func(line string) { debugPrintln(line) }
	if debugChan != nil {
		emit = func(line string) { queueDebug(line) }
	} else if debugPrintln == nil {
		return
	}

	state := disableInterrupts()
	count := traceCount
	restoreInterrupts(state)

	emit("[TRACE] === MCPWM Bring-up Trace ===")
	emit("[TRACE] Total events recorded: " + utoa(count))
	for _, evt := range TraceEvents() {
		emit("[TRACE] " + eventName(evt.EventType) +
			" block=0x" + utoh(evt.Block) +
			" value=" + utoa(evt.Value))
	}
	emit("[TRACE] === End Dump ===")
}

// ClearTrace clears the trace buffer
func ClearTrace() {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	for i := range traceRing {
		traceRing[i] = TraceEvent{}
	}
	traceRingHead = 0
	traceCount = 0
}
