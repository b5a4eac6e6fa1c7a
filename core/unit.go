package core

// Timer is MCPWM timer U of instance P. Its waveform configuration is done by
// the timer driver; here it only carries its slot and the shared clock.
type Timer[P Peripheral, U Unit] struct {
	clock *PwmClock
}

func newTimer[P Peripheral, U Unit](clock *PwmClock) Timer[P, U] {
	return Timer[P, U]{clock: clock}
}

// Index returns the timer slot (0, 1 or 2)
func (t *Timer[P, U]) Index() uint8 {
	var u U
	return u.Index()
}

// Clock returns the clock shared with the owning MCPWM
func (t *Timer[P, U]) Clock() PwmClock {
	return *t.clock
}

// Frequency returns the output frequency this timer would produce
func (t *Timer[P, U]) Frequency(mode PwmWorkingMode, prescaler uint8, period uint16) Hertz {
	return t.clock.TimerFrequency(mode, prescaler, period)
}

// Operator is MCPWM operator U of instance P, a comparator pair driving
// generators A and B.
type Operator[P Peripheral, U Unit] struct {
	clock *PwmClock
}

func newOperator[P Peripheral, U Unit](clock *PwmClock) Operator[P, U] {
	return Operator[P, U]{clock: clock}
}

// Index returns the operator slot (0, 1 or 2)
func (o *Operator[P, U]) Index() uint8 {
	var u U
	return u.Index()
}

// Clock returns the clock shared with the owning MCPWM
func (o *Operator[P, U]) Clock() PwmClock {
	return *o.clock
}

// OutputSignalA returns the GPIO matrix signal of generator A
func (o *Operator[P, U]) OutputSignalA() OutputSignal {
	var p P
	return p.OutputSignal(o.Index(), true)
}

// OutputSignalB returns the GPIO matrix signal of generator B
func (o *Operator[P, U]) OutputSignalB() OutputSignal {
	var p P
	return p.OutputSignal(o.Index(), false)
}
