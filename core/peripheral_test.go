package core

import "testing"

// recordingClockControl records the peripherals it was asked to enable
type recordingClockControl struct {
	log     *[]string
	enabled []PeripheralID
}

func (c *recordingClockControl) Enable(p PeripheralID) {
	c.enabled = append(c.enabled, p)
	if c.log != nil {
		*c.log = append(*c.log, "enable:"+p.String())
	}
}

func collectSignals(p Peripheral) []OutputSignal {
	var signals []OutputSignal
	for unit := uint8(0); unit < NumUnits; unit++ {
		signals = append(signals, p.OutputSignal(unit, true), p.OutputSignal(unit, false))
	}
	return signals
}

func TestOutputSignalsDistinct(t *testing.T) {
	testCases := []struct {
		name string
		p    Peripheral
	}{
		{"PWM0", PWM0{}},
		{"PWM1", PWM1{}},
	}

	seen := make(map[OutputSignal]string)
	for _, tc := range testCases {
		signals := collectSignals(tc.p)
		if len(signals) != 6 {
			t.Fatalf("%s: expected 6 signals, got %d", tc.name, len(signals))
		}
		for i, s := range signals {
			if owner, dup := seen[s]; dup {
				t.Errorf("%s signal %d (%d) already used by %s", tc.name, i, s, owner)
			}
			seen[s] = tc.name
		}
		t.Logf("%s signals: %v", tc.name, signals)
	}
}

func TestOutputSignalDeterministic(t *testing.T) {
	for unit := uint8(0); unit < NumUnits; unit++ {
		for _, isA := range []bool{true, false} {
			first := PWM0{}.OutputSignal(unit, isA)
			if again := (PWM0{}).OutputSignal(unit, isA); again != first {
				t.Errorf("unit %d isA=%v: %d then %d", unit, isA, first, again)
			}
		}
	}
}

func TestOutputSignalOrder(t *testing.T) {
	// The GPIO matrix numbers an instance's outputs 0A, 0B, 1A, 1B, 2A, 2B
	for _, p := range []Peripheral{PWM0{}, PWM1{}} {
		signals := collectSignals(p)
		for i := 1; i < len(signals); i++ {
			if signals[i] != signals[0]+OutputSignal(i) {
				t.Errorf("%T: signal %d is %d, expected %d", p, i, signals[i], signals[0]+OutputSignal(i))
			}
		}
	}
}

func TestOutputSignalOutOfRangePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for operator index 3")
		}
	}()
	PWM1{}.OutputSignal(3, true)
}

func TestPeripheralEnable(t *testing.T) {
	cc := &recordingClockControl{}
	PWM0{}.Enable(cc)
	PWM1{}.Enable(cc)

	if len(cc.enabled) != 2 || cc.enabled[0] != PeripheralMcpwm0 || cc.enabled[1] != PeripheralMcpwm1 {
		t.Errorf("unexpected enable calls %v", cc.enabled)
	}
}

func TestBlockAddresses(t *testing.T) {
	a0 := PWM0{}.BlockAddress()
	a1 := PWM1{}.BlockAddress()
	if a0 == 0 || a1 == 0 || a0 == a1 {
		t.Errorf("block addresses must be distinct and non-zero: 0x%X 0x%X", a0, a1)
	}
	if a0 != (PWM0{}).BlockAddress() {
		t.Errorf("block address not stable")
	}
}

func TestPeripheralIDString(t *testing.T) {
	if PeripheralMcpwm0.String() != "mcpwm0" || PeripheralMcpwm1.String() != "mcpwm1" {
		t.Errorf("unexpected names %q %q", PeripheralMcpwm0, PeripheralMcpwm1)
	}
	if PeripheralID(9).String() != "unknown" {
		t.Errorf("expected unknown for out of range ID")
	}
}

func TestUnitIndices(t *testing.T) {
	if (Unit0{}).Index() != 0 || (Unit1{}).Index() != 1 || (Unit2{}).Index() != 2 {
		t.Error("unit indices must be 0, 1, 2")
	}
}
