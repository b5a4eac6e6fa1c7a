//go:build esp32s3

package core

// ESP32-S3 MCPWM register blocks
const (
	mcpwm0Base uintptr = 0x6001E000
	mcpwm1Base uintptr = 0x6002C000
)

// GPIO matrix output signals (PWMn_OUTuA/B_IDX)
var (
	mcpwm0Signals = signalTable{{154, 155}, {156, 157}, {158, 159}}
	mcpwm1Signals = signalTable{{160, 161}, {162, 163}, {164, 165}}
)

// operatorRegs is one operator block, ESP32-S3 naming
type operatorRegs struct {
	CMPR_CFG    reg32 // A/B update method, shadow full flags
	CMPR_VALUE0 reg32
	CMPR_VALUE1 reg32
	GEN_CFG0    reg32
	GEN_FORCE   reg32
	GEN_A       reg32
	GEN_B       reg32
	DT_CFG      reg32
	DT_FED_CFG  reg32
	DT_RED_CFG  reg32
	CARRIER_CFG reg32
	FH_CFG0     reg32
	FH_CFG1     reg32
	FH_STATUS   reg32
}

func (o *operatorRegs) updateMethodReg() *reg32 {
	return &o.CMPR_CFG
}
