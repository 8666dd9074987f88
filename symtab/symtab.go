// Package symtab implements the per-unit symbol table used during code
// generation. Each entry owns exactly one address; rebinding a symbol
// replaces its address rather than changing it.
package symtab

import (
	"sort"

	"github.com/hexaflex/mjcg/addr"
	"github.com/hexaflex/mjcg/arch"
	"github.com/hexaflex/mjcg/frame"
	"github.com/pkg/errors"
)

// Table maps symbol names to addresses for a single compilation unit.
type Table struct {
	unit    string                  // Compilation unit name, used in errors.
	frame   *frame.Frame            // Slot allocator for this unit.
	symbols map[string]addr.Address // Bound addresses by name.
	temps   []addr.Address          // Temporaries in allocation order.
}

// New creates an empty table for the given unit, allocating from f.
func New(unit string, f *frame.Frame) *Table {
	return &Table{
		unit:    unit,
		frame:   f,
		symbols: make(map[string]addr.Address),
	}
}

// Unit returns the name of the compilation unit.
func (t *Table) Unit() string {
	return t.unit
}

// Frame returns the slot allocator backing this table.
func (t *Table) Frame() *frame.Frame {
	return t.frame
}

// Declare allocates a slot for name and binds a direct address to it.
func (t *Table) Declare(name string, kind arch.Kind) (addr.Address, error) {
	if err := t.checkNew(name); err != nil {
		return addr.Address{}, err
	}

	slot, err := t.frame.Alloc(name, kind)
	if err != nil {
		return addr.Address{}, errors.Wrapf(err, "%s: symbol %q", t.unit, name)
	}

	a, err := addr.New(slot, kind)
	if err != nil {
		return addr.Address{}, errors.Wrapf(err, "%s: symbol %q", t.unit, name)
	}

	t.symbols[name] = a
	return a, nil
}

// DeclareIndirect binds name to a location reached through the direct
// address of symbol base, offset by disp.
func (t *Table) DeclareIndirect(name string, kind arch.Kind, base string, disp int) (addr.Address, error) {
	if err := t.checkNew(name); err != nil {
		return addr.Address{}, err
	}

	b, ok := t.symbols[base]
	if !ok {
		return addr.Address{}, errors.Errorf("%s: symbol %q: unknown base %q", t.unit, name, base)
	}

	bop := b.Operand()
	if bop.Mode != arch.Direct {
		return addr.Address{}, errors.Errorf("%s: symbol %q: base %q is not a direct address", t.unit, name, base)
	}

	a, err := addr.NewMode(bop.Slot, kind, addr.Indirect{Base: bop.Slot, Disp: disp})
	if err != nil {
		return addr.Address{}, errors.Wrapf(err, "%s: symbol %q", t.unit, name)
	}

	t.symbols[name] = a
	return a, nil
}

// Constant returns an immediate address for the given literal.
// Constants are not entered into the table.
func (t *Table) Constant(value int) addr.Address {
	return addr.MustNewMode(0, arch.Constant, addr.Immediate{Value: value})
}

// Temp allocates a new temporary.
func (t *Table) Temp() (addr.Address, error) {
	slot, err := t.frame.AllocTemp()
	if err != nil {
		return addr.Address{}, errors.Wrapf(err, "%s: temporary", t.unit)
	}

	a, err := addr.New(slot, arch.Temporary)
	if err != nil {
		return addr.Address{}, errors.Wrapf(err, "%s: temporary", t.unit)
	}

	t.temps = append(t.temps, a)
	return a, nil
}

// Temps returns all temporaries allocated so far.
func (t *Table) Temps() []addr.Address {
	out := make([]addr.Address, len(t.temps))
	copy(out, t.temps)
	return out
}

// Lookup returns the address bound to name.
func (t *Table) Lookup(name string) (addr.Address, bool) {
	a, ok := t.symbols[name]
	return a, ok
}

// Resolve returns the address bound to name, or an error naming the symbol.
func (t *Table) Resolve(name string) (addr.Address, error) {
	a, ok := t.symbols[name]
	if !ok {
		return addr.Address{}, errors.Errorf("undefined symbol %q", name)
	}
	return a, nil
}

// Rebind replaces the address bound to an existing symbol.
func (t *Table) Rebind(name string, a addr.Address) error {
	if _, ok := t.symbols[name]; !ok {
		return errors.Errorf("%s: cannot rebind undefined symbol %q", t.unit, name)
	}
	t.symbols[name] = a
	return nil
}

// Names returns all symbol names in sorted order.
func (t *Table) Names() []string {
	out := make([]string, 0, len(t.symbols))
	for name := range t.symbols {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of bound symbols.
func (t *Table) Len() int {
	return len(t.symbols)
}

func (t *Table) checkNew(name string) error {
	if len(name) == 0 {
		return errors.Errorf("%s: empty symbol name", t.unit)
	}

	if _, ok := t.symbols[name]; ok {
		return errors.Errorf("%s: duplicate symbol %q", t.unit, name)
	}

	return nil
}
