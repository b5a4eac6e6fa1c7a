// Motor-control PWM (MCPWM) peripheral support
// One MCPWM instance has three timers and three operators sharing a
// prescaled peripheral clock.
package core

import "errors"

var (
	ErrInvalidUnit   = errors.New("mcpwm: unit index out of range")
	ErrInvalidMode   = errors.New("mcpwm: invalid working mode")
	ErrInvalidPeriod = errors.New("mcpwm: timer period out of range")
)

// MCPWM is an initialized MCPWM instance P. It owns the three timers, the
// three operators and the clock they share. There is at most one per
// instance, see Take.
type MCPWM[P Peripheral] struct {
	Timer0 Timer[P, Unit0]
	Timer1 Timer[P, Unit1]
	Timer2 Timer[P, Unit2]

	Operator0 Operator[P, Unit0]
	Operator1 Operator[P, Unit1]
	Operator2 Operator[P, Unit2]

	pwmClock    PwmClock
	sourceClock Hertz
	prescaler   uint8
}

// New brings up MCPWM instance P and consumes its token.
//
//	pwm_clk = source / (prescaler + 1)
//
// The source is the APB clock on ESP32 and the crypto/PWM clock (normally
// 160MHz) on ESP32-S3. Bring-up order: clock gate, prescaler, clock enable,
// comparator update method. None of these steps can fail.
func New[P Peripheral](token *Token[P], clocks *Clocks, prescaler uint8, system ClockControl) *MCPWM[P] {
	token.consume()

	var p P
	addr := p.BlockAddress()

	p.Enable(system)
	RecordEvent(EvtClockGate, addr, 0)

	block := registerBlockAt(addr)
	block.SetPrescaler(prescaler)
	RecordEvent(EvtPrescaler, addr, uint32(prescaler))
	block.EnableClock()
	RecordEvent(EvtClockEnable, addr, clkEn)

	// sync comparator updates when timer counter is equal to zero
	block.SetComparatorUpdateMethod(UpdateOnTimerZero)
	RecordEvent(EvtSyncMethod, addr, uint32(UpdateOnTimerZero))

	source := PwmSourceClock(clocks)
	m := &MCPWM[P]{
		pwmClock:    DerivePwmClock(source, prescaler),
		sourceClock: source,
		prescaler:   prescaler,
	}
	m.Timer0 = newTimer[P, Unit0](&m.pwmClock)
	m.Timer1 = newTimer[P, Unit1](&m.pwmClock)
	m.Timer2 = newTimer[P, Unit2](&m.pwmClock)
	m.Operator0 = newOperator[P, Unit0](&m.pwmClock)
	m.Operator1 = newOperator[P, Unit1](&m.pwmClock)
	m.Operator2 = newOperator[P, Unit2](&m.pwmClock)

	RecordEvent(EvtReady, addr, uint32(m.pwmClock.Frequency()))
	DebugPrintln("[MCPWM] block=0x" + utoh(uint32(addr)) +
		" " + PwmClockSourceName + "=" + utoa(uint32(source)) +
		" prescaler=" + utoa(uint32(prescaler)) +
		" pwm_clk=" + utoa(uint32(m.pwmClock.Frequency())))
	return m
}

// Clock returns the prescaled peripheral clock
func (m *MCPWM[P]) Clock() PwmClock {
	return m.pwmClock
}

// SourceClock returns the clock that feeds the prescaler
func (m *MCPWM[P]) SourceClock() Hertz {
	return m.sourceClock
}

// Prescaler returns the peripheral prescaler written at construction
func (m *MCPWM[P]) Prescaler() uint8 {
	return m.prescaler
}

// TimerFreq returns the output frequency of a timer in mode with the given
// timer prescaler and period.
func (m *MCPWM[P]) TimerFreq(mode PwmWorkingMode, prescaler uint8, period uint16) Hertz {
	return m.pwmClock.TimerFrequency(mode, prescaler, period)
}

// TimerFrequency is TimerFreq addressed by a runtime timer index, for
// callers (like the command layer) that receive the index as data.
func (m *MCPWM[P]) TimerFrequency(timer uint8, mode PwmWorkingMode, prescaler uint8, period uint16) (Hertz, error) {
	if !mode.Valid() {
		return 0, ErrInvalidMode
	}
	switch timer {
	case 0:
		return m.Timer0.Frequency(mode, prescaler, period), nil
	case 1:
		return m.Timer1.Frequency(mode, prescaler, period), nil
	case 2:
		return m.Timer2.Frequency(mode, prescaler, period), nil
	}
	return 0, ErrInvalidUnit
}

// OperatorSignals returns the A and B output signals of an operator
// addressed by a runtime index.
func (m *MCPWM[P]) OperatorSignals(operator uint8) (a, b OutputSignal, err error) {
	switch operator {
	case 0:
		return m.Operator0.OutputSignalA(), m.Operator0.OutputSignalB(), nil
	case 1:
		return m.Operator1.OutputSignalA(), m.Operator1.OutputSignalB(), nil
	case 2:
		return m.Operator2.OutputSignalA(), m.Operator2.OutputSignalB(), nil
	}
	return 0, 0, ErrInvalidUnit
}
