package addr

import (
	"github.com/hexaflex/mjcg/arch"
)

// Mode is the rendering strategy bound to an Address.
//
// The set of implementations is closed: Direct, Indirect and Immediate.
type Mode interface {
	// Tag returns the addressing mode tag.
	Tag() arch.Mode

	// Render turns the mode's fields into a structured operand.
	Render() Operand

	mode()
}

// Direct addresses a single, immediately addressable slot.
type Direct struct {
	Slot int
}

// Indirect addresses a location reached through the base location held in
// slot Base, offset by Disp.
type Indirect struct {
	Base int
	Disp int
}

// Immediate is a compile-time constant which needs no storage.
type Immediate struct {
	Value int
}

func (Direct) mode()    {}
func (Indirect) mode()  {}
func (Immediate) mode() {}

func (Direct) Tag() arch.Mode    { return arch.Direct }
func (Indirect) Tag() arch.Mode  { return arch.Indirect }
func (Immediate) Tag() arch.Mode { return arch.Immediate }

func (m Direct) Render() Operand {
	return Operand{Mode: arch.Direct, Slot: m.Slot}
}

func (m Indirect) Render() Operand {
	return Operand{Mode: arch.Indirect, Slot: m.Base, Disp: m.Disp}
}

func (m Immediate) Render() Operand {
	return Operand{Mode: arch.Immediate, Value: m.Value}
}

// slotOf returns the slot referenced by m, if any.
func slotOf(m Mode) (int, bool) {
	switch tm := m.(type) {
	case Direct:
		return tm.Slot, true
	case Indirect:
		return tm.Base, true
	case Immediate:
		return 0, false
	}
	panic("addr: unknown mode")
}
