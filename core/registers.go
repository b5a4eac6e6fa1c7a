package core

// UpdateOnTimerZero is the comparator update method that latches a new
// compare value when the timer counter equals zero.
const UpdateOnTimerZero uint8 = 0b0001

// Register bit fields
const (
	clkCfgPrescaleMsk = 0xFF   // CLK_CFG.CLK_PRESCALE
	clkEn             = 1 << 0 // CLK.EN
	upMethodMsk       = 0xF
	upMethodAPos      = 0 // A_UPMETHOD[3:0]
	upMethodBPos      = 4 // B_UPMETHOD[7:4]
)

// RegisterBlock is the set of register writes MCPWM construction performs.
// *Registers implements it; tests substitute a recorder.
type RegisterBlock interface {
	SetPrescaler(prescaler uint8)
	EnableClock()
	SetComparatorUpdateMethod(bits uint8)
}

type timerRegs struct {
	CFG0   reg32 // period, period update method, prescaler
	CFG1   reg32 // start/stop, working mode
	SYNC   reg32
	STATUS reg32
}

// Registers mirrors the MCPWM register block. Operator register names vary
// by chip family and are declared in the chip files.
type Registers struct {
	CLK_CFG           reg32                  // 0x000
	TIMER             [NumUnits]timerRegs    // 0x004
	TIMER_SYNCI_CFG   reg32                  // 0x034
	OPERATOR_TIMERSEL reg32                  // 0x038
	OPERATOR          [NumUnits]operatorRegs // 0x03C, stride 0x38
	_                 [15]reg32              // fault, capture, interrupts
	CLK               reg32                  // 0x120
	VERSION           reg32                  // 0x124
}

// registerBlockAt is the only place an address becomes a register block
var registerBlockAt = func(addr uintptr) RegisterBlock {
	return mapRegisterBlock(addr)
}

// SetPrescaler writes CLK_CFG.CLK_PRESCALE
func (r *Registers) SetPrescaler(prescaler uint8) {
	r.CLK_CFG.Set(uint32(prescaler) & clkCfgPrescaleMsk)
}

// EnableClock sets CLK.EN
func (r *Registers) EnableClock() {
	r.CLK.Set(clkEn)
}

// SetComparatorUpdateMethod writes the A and B update method of all three
// operators to bits.
func (r *Registers) SetComparatorUpdateMethod(bits uint8) {
	v := uint32(bits) & upMethodMsk
	for i := range r.OPERATOR {
		r.OPERATOR[i].updateMethodReg().Set(v<<upMethodAPos | v<<upMethodBPos)
	}
}

// Prescaler reads back CLK_CFG.CLK_PRESCALE
func (r *Registers) Prescaler() uint8 {
	return uint8(r.CLK_CFG.Get() & clkCfgPrescaleMsk)
}

// ClockEnabled reads back CLK.EN
func (r *Registers) ClockEnabled() bool {
	return r.CLK.Get()&clkEn != 0
}

// ComparatorUpdateMethod reads back the A and B update method of an operator
func (r *Registers) ComparatorUpdateMethod(operator int) (a, b uint8) {
	v := r.OPERATOR[operator].updateMethodReg().Get()
	return uint8(v >> upMethodAPos & upMethodMsk), uint8(v >> upMethodBPos & upMethodMsk)
}
