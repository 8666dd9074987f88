package ar

import (
	"io"
)

// DebugFlags defines debug bitflags.
type DebugFlags byte

// Known debug bit flags.
const (
	// The instruction transfers control; its last operand is a code index.
	Jump DebugFlags = 1 << iota

	// The instruction was back-patched after it was emitted.
	Patched
)

// Debug defines any debug data stored in an archive.
type Debug struct {
	Symbols []DebugSymbol // Symbol table of the unit, in name order.
	Offsets []DebugData   // Per-instruction encoding context.
}

// Clear empties all data.
func (d *Debug) Clear() {
	d.Symbols = nil
	d.Offsets = nil
}

// Find returns the debug data associated with the given byte address.
// Returns nil if there is none.
func (d *Debug) Find(addr int) *DebugData {
	for i := range d.Offsets {
		if d.Offsets[i].Address == addr {
			return &d.Offsets[i]
		}
	}
	return nil
}

// Symbol returns the symbol with the given name.
// Returns nil if there is none.
func (d *Debug) Symbol(name string) *DebugSymbol {
	for i := range d.Symbols {
		if d.Symbols[i].Name == name {
			return &d.Symbols[i]
		}
	}
	return nil
}

func (d *Debug) read(r io.Reader) {
	d.Clear()

	for n := readLen(r, maxLen); n > 0; n-- {
		var s DebugSymbol
		s.read(r)
		d.Symbols = append(d.Symbols, s)
	}

	for n := readLen(r, maxLen); n > 0; n-- {
		var o DebugData
		o.read(r)
		d.Offsets = append(d.Offsets, o)
	}
}

func (d *Debug) write(w io.Writer) {
	writeU32(w, uint32(len(d.Symbols)))
	for i := range d.Symbols {
		d.Symbols[i].write(w)
	}

	writeU32(w, uint32(len(d.Offsets)))
	for i := range d.Offsets {
		d.Offsets[i].write(w)
	}
}

// DebugSymbol records where a symbol lives.
type DebugSymbol struct {
	Name    string // Symbol name.
	Kind    string // Storage kind name.
	Operand string // Canonical operand text.
}

func (s *DebugSymbol) read(r io.Reader) {
	s.Name = readString(r)
	s.Kind = readString(r)
	s.Operand = readString(r)
}

func (s *DebugSymbol) write(w io.Writer) {
	writeString(w, s.Name)
	writeString(w, s.Kind)
	writeString(w, s.Operand)
}

// DebugData defines the encoding context of one instruction.
type DebugData struct {
	Address int        // Byte offset of the encoded instruction.
	Index   int        // Instruction index in the unit.
	Flags   DebugFlags // Any debug flags defined for this entry.
}

func (d *DebugData) read(r io.Reader) {
	d.Address = int(readU32(r))
	d.Index = int(readI32(r))
	d.Flags = DebugFlags(readU8(r))
}

func (d *DebugData) write(w io.Writer) {
	writeU32(w, uint32(d.Address))
	writeI32(w, int32(d.Index))
	writeU8(w, uint8(d.Flags))
}
