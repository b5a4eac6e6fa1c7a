package core

import (
	"testing"

	"mcpwm/protocol"
)

// commandHarness runs MCPWM commands against a simulated PWM0 and collects
// the decoded responses.
type commandHarness struct {
	registry  *CommandRegistry
	mcpwm     *MCPWM[PWM0]
	responses [][]byte
}

func newCommandHarness(t *testing.T, prescaler uint8) *commandHarness {
	t.Helper()
	resetPeripherals(t)

	h := &commandHarness{registry: NewCommandRegistry()}
	h.mcpwm = New(MustTake[PWM0](), &testClocks, prescaler, &recordingClockControl{})
	InitMCPWMCommands(h.registry, h.mcpwm)
	h.registry.SetResponder(func(payload []byte) error {
		h.responses = append(h.responses, append([]byte(nil), payload...))
		return nil
	})
	return h
}

func (h *commandHarness) run(t *testing.T, name string, args ...uint32) error {
	t.Helper()
	cmd, ok := h.registry.GetCommandByName(name)
	if !ok {
		t.Fatalf("command %s not registered", name)
	}
	out := protocol.NewScratchOutput()
	for _, arg := range args {
		protocol.EncodeVLQUint(out, arg)
	}
	data := append([]byte(nil), out.Result()...)
	return h.registry.Dispatch(cmd.ID, &data)
}

// last decodes the most recent response and checks its message name
func (h *commandHarness) last(t *testing.T, name string) []uint32 {
	t.Helper()
	if len(h.responses) == 0 {
		t.Fatalf("no response, expected %s", name)
	}
	payload := h.responses[len(h.responses)-1]

	id, err := protocol.DecodeVLQUint(&payload)
	if err != nil {
		t.Fatalf("decode response ID: %v", err)
	}
	cmd, ok := h.registry.GetCommand(uint16(id))
	if !ok || cmd.Name != name {
		t.Fatalf("response ID %d is not %s", id, name)
	}

	var values []uint32
	for len(payload) > 0 {
		v, err := protocol.DecodeVLQUint(&payload)
		if err != nil {
			t.Fatalf("decode %s: %v", name, err)
		}
		values = append(values, v)
	}
	return values
}

func TestMessageTableIDs(t *testing.T) {
	host := NewMessageRegistry()
	fw := NewCommandRegistry()
	resetPeripherals(t)
	InitMCPWMCommands(fw, New(MustTake[PWM0](), &testClocks, 0, &recordingClockControl{}))

	if host.GetDictionary() != fw.GetDictionary() {
		t.Errorf("host and firmware dictionaries differ:\n%s\n%s", host.GetDictionary(), fw.GetDictionary())
	}

	for i, msg := range MCPWMMessages {
		cmd, ok := host.GetCommandByName(msg.Name)
		if !ok || cmd.ID != uint16(i) {
			t.Errorf("%s: expected ID %d", msg.Name, i)
		}
		if cmd.Handler != nil {
			t.Errorf("%s: host registry must not carry handlers", msg.Name)
		}
	}

	for _, name := range []string{"get_mcpwm_info", "query_mcpwm_freq", "query_mcpwm_signals"} {
		cmd, _ := fw.GetCommandByName(name)
		if cmd == nil || cmd.Handler == nil {
			t.Errorf("%s: firmware registry has no handler", name)
		}
	}
}

func TestGetMCPWMInfo(t *testing.T) {
	h := newCommandHarness(t, 1)

	if err := h.run(t, "get_mcpwm_info"); err != nil {
		t.Fatalf("get_mcpwm_info: %v", err)
	}
	values := h.last(t, "mcpwm_info")
	if len(values) != 4 {
		t.Fatalf("expected 4 fields, got %v", values)
	}

	source := uint32(PwmSourceClock(&testClocks))
	if values[0] != uint32((PWM0{}).BlockAddress()) {
		t.Errorf("instance 0x%X", values[0])
	}
	if values[1] != source || values[2] != 1 || values[3] != source/2 {
		t.Errorf("clocks %v, source %d", values[1:], source)
	}
}

func TestQueryMCPWMFreq(t *testing.T) {
	h := newCommandHarness(t, 0)
	clk := uint32(h.mcpwm.Clock().Frequency())

	testCases := []struct {
		timer, mode, prescaler, period uint32
		expected                       uint32
	}{
		{0, uint32(Increase), 0, 999, clk / 1000},
		{1, uint32(Decrease), 3, 999, clk / 4 / 1000},
		{2, uint32(UpDown), 0, 500, clk / 1000},
		{2, uint32(UpDown), 0, 0, 0},
	}

	for _, tc := range testCases {
		if err := h.run(t, "query_mcpwm_freq", tc.timer, tc.mode, tc.prescaler, tc.period); err != nil {
			t.Fatalf("query_mcpwm_freq %+v: %v", tc, err)
		}
		values := h.last(t, "mcpwm_freq")
		if len(values) != 2 || values[0] != tc.timer || values[1] != tc.expected {
			t.Errorf("%+v: got %v", tc, values)
		}
	}
}

func TestQueryMCPWMFreqInvalid(t *testing.T) {
	h := newCommandHarness(t, 0)

	if err := h.run(t, "query_mcpwm_freq", 3, uint32(Increase), 0, 1); err != ErrInvalidUnit {
		t.Errorf("timer 3: expected ErrInvalidUnit, got %v", err)
	}
	if err := h.run(t, "query_mcpwm_freq", 0, 0, 0, 1); err != ErrInvalidMode {
		t.Errorf("mode 0: expected ErrInvalidMode, got %v", err)
	}
	// Wire values wider than the field must not wrap into a valid one
	if err := h.run(t, "query_mcpwm_freq", 0, 257, 0, 999); err != ErrInvalidMode {
		t.Errorf("mode 257: expected ErrInvalidMode, got %v", err)
	}
	if err := h.run(t, "query_mcpwm_freq", 0, 4, 0, 999); err != ErrInvalidMode {
		t.Errorf("mode 4: expected ErrInvalidMode, got %v", err)
	}
	if err := h.run(t, "query_mcpwm_freq", 0, uint32(Increase), 0, 0x10000+999); err != ErrInvalidPeriod {
		t.Errorf("period 0x%X: expected ErrInvalidPeriod, got %v", 0x10000+999, err)
	}
	if err := h.run(t, "query_mcpwm_freq", 0, uint32(Increase)); err == nil {
		t.Error("expected error for truncated arguments")
	}
	if len(h.responses) != 0 {
		t.Errorf("rejected queries must not respond, got %d responses", len(h.responses))
	}
}

func TestQueryMCPWMSignals(t *testing.T) {
	h := newCommandHarness(t, 0)

	for op := uint32(0); op < NumUnits; op++ {
		if err := h.run(t, "query_mcpwm_signals", op); err != nil {
			t.Fatalf("operator %d: %v", op, err)
		}
		values := h.last(t, "mcpwm_signals")
		a := uint32((PWM0{}).OutputSignal(uint8(op), true))
		b := uint32((PWM0{}).OutputSignal(uint8(op), false))
		if len(values) != 3 || values[0] != op || values[1] != a || values[2] != b {
			t.Errorf("operator %d: got %v, expected [%d %d %d]", op, values, op, a, b)
		}
	}

	if err := h.run(t, "query_mcpwm_signals", 9); err != ErrInvalidUnit {
		t.Errorf("operator 9: expected ErrInvalidUnit, got %v", err)
	}
}
