//go:build !esp32s3

package core

// ESP32 MCPWM register blocks
const (
	mcpwm0Base uintptr = 0x3FF5E000
	mcpwm1Base uintptr = 0x3FF6C000
)

// GPIO matrix output signals (PWMn_OUTuA/B_IDX)
var (
	mcpwm0Signals = signalTable{{32, 33}, {34, 35}, {36, 37}}
	mcpwm1Signals = signalTable{{108, 109}, {110, 111}, {112, 113}}
)

// operatorRegs is one operator (generator) block, ESP32 naming
type operatorRegs struct {
	GEN_STMP_CFG reg32 // A/B update method, shadow full flags
	GEN_TSTMP_A  reg32
	GEN_TSTMP_B  reg32
	GEN_CFG0     reg32
	GEN_FORCE    reg32
	GEN_A        reg32
	GEN_B        reg32
	DT_CFG       reg32
	DT_FED_CFG   reg32
	DT_RED_CFG   reg32
	CARRIER_CFG  reg32
	FH_CFG0      reg32
	FH_CFG1      reg32
	FH_STATUS    reg32
}

func (o *operatorRegs) updateMethodReg() *reg32 {
	return &o.GEN_STMP_CFG
}
