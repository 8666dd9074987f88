// Package codegen drives code generation for compilation units described
// by a config.Unit. Each unit owns its own frame, symbol table and program;
// nothing is shared between units, so they can be generated in parallel.
package codegen

import (
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/hexaflex/mjcg/addr"
	"github.com/hexaflex/mjcg/arch"
	"github.com/hexaflex/mjcg/config"
	"github.com/hexaflex/mjcg/emit"
	"github.com/hexaflex/mjcg/emit/ar"
	"github.com/hexaflex/mjcg/frame"
	"github.com/hexaflex/mjcg/symtab"
	"github.com/pkg/errors"
)

// Unit holds the code generation context of one compilation unit.
type Unit struct {
	Name    string
	Symbols *symtab.Table
	Code    *emit.Program
	Printer emit.Printer

	temps  map[string]addr.Address // Named temporaries ($x) by name.
	labels map[string]int          // Code index by label.
	fixups []fixup                 // Forward jumps awaiting their label.
	jumps  []fixup                 // Numeric jump targets, checked once the code is complete.
}

// fixup records a jump operand to patch once its label is known.
type fixup struct {
	index int
	arg   int
	label string
}

// New creates an empty unit for the given target.
func New(name string, target config.Target) (*Unit, error) {
	pr, ok := emit.Lookup(target.Syntax)
	if !ok {
		return nil, errors.Errorf("%s: unknown target syntax %q", name, target.Syntax)
	}

	f, err := frame.New(target.Layout)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", name)
	}

	return &Unit{
		Name:    name,
		Symbols: symtab.New(name, f),
		Code:    emit.NewProgram(),
		Printer: pr,
		temps:   make(map[string]addr.Address),
		labels:  make(map[string]int),
	}, nil
}

// Build generates code for the given unit description.
// The first failure aborts the unit.
func Build(desc config.Unit, target config.Target) (*Unit, error) {
	u, err := New(desc.Name, target)
	if err != nil {
		return nil, err
	}

	for _, s := range desc.Symbols {
		if err := u.declare(s); err != nil {
			return nil, err
		}
	}

	for i, l := range desc.Code {
		if err := u.emitLine(l); err != nil {
			return nil, errors.Wrapf(err, "%s: line %d", u.Name, i)
		}
	}

	if err := u.resolveFixups(); err != nil {
		return nil, err
	}

	return u, nil
}

// BuildAll generates all units in c concurrently. Failures are collected
// into an emit.ErrorSet, in unit order.
func BuildAll(c *config.Config) ([]*Unit, error) {
	units := make([]*Unit, len(c.Units))
	errs := make([]error, len(c.Units))

	var wg sync.WaitGroup
	for i := range c.Units {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			units[i], errs[i] = Build(c.Units[i], c.Target)
		}(i)
	}
	wg.Wait()

	var set emit.ErrorSet
	for _, err := range errs {
		if err != nil {
			set.Append(err)
		}
	}

	if set.Len() > 0 {
		return nil, set
	}

	return units, nil
}

// declare enters a symbol into the unit's table.
func (u *Unit) declare(s config.Symbol) error {
	kind, ok := arch.ParseKind(s.Kind)
	if !ok {
		return errors.Errorf("%s: symbol %q: unknown kind %q", u.Name, s.Name, s.Kind)
	}

	var err error
	if len(s.Base) > 0 {
		_, err = u.Symbols.DeclareIndirect(s.Name, kind, s.Base, s.Disp)
	} else {
		_, err = u.Symbols.Declare(s.Name, kind)
	}
	return err
}

// emitLine appends the instruction for a single line.
func (u *Unit) emitLine(l config.Line) error {
	op, ok := arch.Opcode(l.Op)
	if !ok {
		return errors.Errorf("unknown instruction %q", l.Op)
	}

	if len(l.Label) > 0 {
		if _, ok := u.labels[l.Label]; ok {
			return errors.Errorf("duplicate label %q", l.Label)
		}
		u.labels[l.Label] = u.Code.Len()
	}

	args := make([]addr.Operand, len(l.Args))
	for i, name := range l.Args {
		if arch.IsJump(op) && i == len(l.Args)-1 {
			args[i] = u.label(name, u.Code.Len(), i)
			continue
		}

		a, err := u.operand(name)
		if err != nil {
			return err
		}
		args[i] = a.Operand()
	}

	_, err := u.Code.Emit(op, args...)
	return err
}

// label returns the code operand for a jump target. Unknown labels yield
// a placeholder and a fixup.
func (u *Unit) label(name string, index, arg int) addr.Operand {
	if n, ok := u.labels[name]; ok {
		return addr.Label(n)
	}

	if n, err := strconv.Atoi(name); err == nil {
		u.jumps = append(u.jumps, fixup{index: index, arg: arg, label: name})
		return addr.Label(n)
	}

	u.fixups = append(u.fixups, fixup{index: index, arg: arg, label: name})
	return addr.Label(0)
}

// resolveFixups patches forward jumps and ensures every jump target lies
// within the unit's code. A target equal to the code length jumps past the
// last instruction.
func (u *Unit) resolveFixups() error {
	for _, f := range u.jumps {
		n, _ := strconv.Atoi(f.label)
		if n < 0 || n > u.Code.Len() {
			return errors.Errorf("%s: line %d: jump target %d out of range [0, %d]", u.Name, f.index, n, u.Code.Len())
		}
	}

	for _, f := range u.fixups {
		n, ok := u.labels[f.label]
		if !ok {
			return errors.Errorf("%s: line %d: undefined label %q", u.Name, f.index, f.label)
		}

		if err := u.Code.Patch(f.index, f.arg, addr.Label(n)); err != nil {
			return errors.Wrapf(err, "%s", u.Name)
		}
	}

	u.fixups = nil
	u.jumps = nil
	return nil
}

// operand resolves an operand reference: #literal, $temporary or symbol.
func (u *Unit) operand(name string) (addr.Address, error) {
	switch {
	case strings.HasPrefix(name, "#"):
		v, err := strconv.Atoi(name[1:])
		if err != nil {
			return addr.Address{}, errors.Errorf("invalid literal %q", name)
		}
		return u.Symbols.Constant(v), nil

	case strings.HasPrefix(name, "$"):
		if a, ok := u.temps[name]; ok {
			return a, nil
		}

		a, err := u.Symbols.Temp()
		if err != nil {
			return addr.Address{}, err
		}
		u.temps[name] = a
		return a, nil
	}

	return u.Symbols.Resolve(name)
}

// Print writes the unit's code in its target syntax.
func (u *Unit) Print(w io.Writer) error {
	return u.Code.Print(w, u.Printer)
}

// Archive encodes the unit, including its symbol table as debug data.
func (u *Unit) Archive() (*ar.Archive, error) {
	a, err := u.Code.Encode(u.Name, u.Printer.Name())
	if err != nil {
		return nil, errors.Wrapf(err, "%s", u.Name)
	}

	for _, name := range u.Symbols.Names() {
		sym, _ := u.Symbols.Lookup(name)
		a.Debug.Symbols = append(a.Debug.Symbols, ar.DebugSymbol{
			Name:    name,
			Kind:    sym.Kind().String(),
			Operand: sym.String(),
		})
	}

	return a, nil
}
