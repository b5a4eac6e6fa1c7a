package core

// PeripheralID identifies a peripheral clock-gate line in the system
// clock-control unit.
type PeripheralID uint8

const (
	PeripheralMcpwm0 PeripheralID = iota
	PeripheralMcpwm1
)

func (p PeripheralID) String() string {
	switch p {
	case PeripheralMcpwm0:
		return "mcpwm0"
	case PeripheralMcpwm1:
		return "mcpwm1"
	}
	return "unknown"
}

// ClockControl is the slice of the system clock-control unit the MCPWM core
// needs. Target code implements it on top of the DPORT/SYSTEM registers.
type ClockControl interface {
	// Enable ungates the clock and releases reset for a peripheral
	Enable(p PeripheralID)
}

// OutputSignal is a GPIO matrix output signal index. Routing it to a pin is
// done by the GPIO layer.
type OutputSignal uint16

// Peripheral is implemented once per physical MCPWM instance. It hides every
// instance-specific fact so the driver code is the same for all of them.
//
// Implementations are zero-size types; the driver never holds a value, it
// instantiates the zero value of its type parameter.
type Peripheral interface {
	// Enable requests the clock gate for this instance
	Enable(system ClockControl)

	// BlockAddress returns the address of this instance's register block
	BlockAddress() uintptr

	// OutputSignal returns the GPIO matrix signal of operator unit's
	// generator A (isA) or B output. unit must be 0, 1 or 2.
	OutputSignal(unit uint8, isA bool) OutputSignal
}

// Unit fixes a timer or operator slot at compile time
type Unit interface {
	Index() uint8
}

type (
	Unit0 struct{}
	Unit1 struct{}
	Unit2 struct{}
)

func (Unit0) Index() uint8 { return 0 }
func (Unit1) Index() uint8 { return 1 }
func (Unit2) Index() uint8 { return 2 }

// NumUnits is the number of timers and of operators in one MCPWM instance
const NumUnits = 3

// signalTable holds [unit][0=A, 1=B] output signals of one instance
type signalTable [NumUnits][2]OutputSignal

func (t *signalTable) lookup(unit uint8, isA bool) OutputSignal {
	if unit >= NumUnits {
		panic("mcpwm: operator index out of range: " + utoa(uint32(unit)))
	}
	if isA {
		return t[unit][0]
	}
	return t[unit][1]
}

// PWM0 is the first MCPWM instance
type PWM0 struct{}

func (PWM0) Enable(system ClockControl) {
	system.Enable(PeripheralMcpwm0)
}

func (PWM0) BlockAddress() uintptr {
	return mcpwm0Base
}

func (PWM0) OutputSignal(unit uint8, isA bool) OutputSignal {
	return mcpwm0Signals.lookup(unit, isA)
}

// PWM1 is the second MCPWM instance
type PWM1 struct{}

func (PWM1) Enable(system ClockControl) {
	system.Enable(PeripheralMcpwm1)
}

func (PWM1) BlockAddress() uintptr {
	return mcpwm1Base
}

func (PWM1) OutputSignal(unit uint8, isA bool) OutputSignal {
	return mcpwm1Signals.lookup(unit, isA)
}
