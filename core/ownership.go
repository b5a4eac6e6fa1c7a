package core

import (
	"errors"
	"sync"
)

// ErrPeripheralTaken is returned by Take when the instance already has an owner
var ErrPeripheralTaken = errors.New("mcpwm: peripheral already taken")

// Token proves exclusive ownership of one MCPWM instance. It is handed out
// once by Take and consumed by New.
type Token[P Peripheral] struct {
	consumed bool
}

// Instances that have been handed out, keyed by register block address
var (
	ownerMu sync.Mutex
	owned   = make(map[uintptr]bool)
)

// Take claims the MCPWM instance P. Only the first call for an instance
// succeeds for the lifetime of the program.
func Take[P Peripheral]() (*Token[P], error) {
	var p P
	addr := p.BlockAddress()

	ownerMu.Lock()
	defer ownerMu.Unlock()
	if owned[addr] {
		return nil, ErrPeripheralTaken
	}
	owned[addr] = true
	return &Token[P]{}, nil
}

// MustTake is Take for firmware init code, panicking if P is already owned
func MustTake[P Peripheral]() *Token[P] {
	tok, err := Take[P]()
	if err != nil {
		panic(err.Error())
	}
	return tok
}

// consume marks the token used; a token builds exactly one MCPWM
func (t *Token[P]) consume() {
	ownerMu.Lock()
	defer ownerMu.Unlock()
	if t == nil || t.consumed {
		panic("mcpwm: peripheral token already consumed")
	}
	t.consumed = true
}
