package core

// Hertz is a frequency in cycles per second
type Hertz uint32

// Clocks holds the frozen clock tree frequencies reported by the system
// clock-control unit. Only the source selected by PwmSourceClock is read here.
type Clocks struct {
	CPUClock       Hertz
	APBClock       Hertz
	CryptoPWMClock Hertz
}

// PwmWorkingMode is the counting mode of an MCPWM timer.
// Values match the timer mode field (0 freezes the timer and is not a mode).
type PwmWorkingMode uint8

const (
	Increase PwmWorkingMode = 1 // count up, wrap to 0
	Decrease PwmWorkingMode = 2 // count down, wrap to period
	UpDown   PwmWorkingMode = 3 // count up then down
)

func (m PwmWorkingMode) String() string {
	switch m {
	case Increase:
		return "increase"
	case Decrease:
		return "decrease"
	case UpDown:
		return "up-down"
	}
	return "unknown"
}

// Valid reports whether m is one of the three counting modes
func (m PwmWorkingMode) Valid() bool {
	return m >= Increase && m <= UpDown
}

// PwmClock is the MCPWM internal tick rate after the peripheral prescaler.
// It is derived once at construction and never changes.
type PwmClock struct {
	freq Hertz
}

// DerivePwmClock computes source / (prescaler + 1), truncating like the
// hardware divider does.
func DerivePwmClock(source Hertz, prescaler uint8) PwmClock {
	return PwmClock{freq: source / Hertz(uint32(prescaler)+1)}
}

// Frequency returns the internal tick rate
func (c PwmClock) Frequency() Hertz {
	return c.freq
}

// TimerFrequency returns the PWM output frequency of a timer running in mode
// with its own prescaler and period:
//
//	Increase, Decrease: clk / (prescaler+1) / (period+1)
//	UpDown:             clk / (prescaler+1) / (period*2)
//
// An up-down timer with period 0 never advances and reports 0.
func (c PwmClock) TimerFrequency(mode PwmWorkingMode, prescaler uint8, period uint16) Hertz {
	var cycle uint32
	switch mode {
	case UpDown:
		cycle = uint32(period) * 2
	default:
		cycle = uint32(period) + 1
	}
	if cycle == 0 {
		return 0
	}
	return c.freq / Hertz(uint32(prescaler)+1) / Hertz(cycle)
}
