// Package addr implements the operand addressing layer of the code generator.
//
// Every symbol table entry and every generated temporary owns one Address.
// An Address binds a slot, a storage kind and a Mode, and is the only place
// through which emitters obtain operands.
package addr

import (
	"github.com/hexaflex/mjcg/arch"
)

// Address is an immutable storage location.
//
// The zero value is a Direct local at slot 0.
type Address struct {
	slot int
	kind arch.Kind
	mode Mode
}

// New creates a Direct address for the given slot.
func New(slot int, kind arch.Kind) (Address, error) {
	return NewMode(slot, kind, Direct{Slot: slot})
}

// NewMode creates an address with an explicit mode.
// Mode and kind mismatches are rejected here rather than at render time.
func NewMode(slot int, kind arch.Kind, mode Mode) (Address, error) {
	if slot < 0 {
		return Address{}, &InvalidSlotError{Slot: slot, Kind: kind}
	}

	if mode == nil {
		return Address{}, newModeError(kind, 0, "missing mode for %s address", kind)
	}

	if !arch.Legal(kind, mode.Tag()) {
		return Address{}, newModeError(kind, mode.Tag(), "%s mode is not valid for %s address", mode.Tag(), kind)
	}

	if n, ok := slotOf(mode); ok && n < 0 {
		return Address{}, &InvalidSlotError{Slot: n, Kind: kind}
	}

	if d, ok := mode.(Direct); ok && d.Slot != slot {
		return Address{}, newModeError(kind, arch.Direct, "direct slot %d does not match %s address slot %d", d.Slot, kind, slot)
	}

	return Address{slot: slot, kind: kind, mode: mode}, nil
}

// MustNew is like New but panics on error.
func MustNew(slot int, kind arch.Kind) Address {
	a, err := New(slot, kind)
	if err != nil {
		panic(err)
	}
	return a
}

// MustNewMode is like NewMode but panics on error.
func MustNewMode(slot int, kind arch.Kind, mode Mode) Address {
	a, err := NewMode(slot, kind, mode)
	if err != nil {
		panic(err)
	}
	return a
}

// Slot returns the raw slot number.
func (a Address) Slot() int { return a.slot }

// Kind returns the storage kind.
func (a Address) Kind() arch.Kind { return a.kind }

// Mode returns the bound addressing mode.
func (a Address) Mode() Mode {
	if a.mode == nil {
		return Direct{Slot: a.slot}
	}
	return a.mode
}

// Operand renders the address through its bound mode.
func (a Address) Operand() Operand {
	return a.Mode().Render()
}

// String returns the operand text, as written by the MiniJava printer.
func (a Address) String() string {
	return a.Operand().String()
}
