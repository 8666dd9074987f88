// Package emit implements the instruction stream produced by the code
// generator. Instructions carry structured operands only; target syntax is
// supplied by a Printer, and Encode turns the stream into a binary archive.
package emit

import (
	"fmt"
	"io"

	"github.com/hexaflex/mjcg/addr"
	"github.com/hexaflex/mjcg/arch"
	"github.com/hexaflex/mjcg/emit/ar"
)

// Reserved is the opcode of an instruction slot that was reserved but not
// yet filled in.
const Reserved = -1

// Instruction defines one three-address instruction.
type Instruction struct {
	Op      int            // Opcode.
	Args    []addr.Operand // Operands; a jump's last operand is a code index.
	Patched bool           // Set when an operand was back-patched.
}

// Program holds the instruction stream of one compilation unit.
type Program struct {
	code []Instruction
}

// NewProgram creates a new, empty program.
func NewProgram() *Program {
	return &Program{}
}

// Len returns the number of instructions, including reserved ones.
func (p *Program) Len() int {
	return len(p.code)
}

// At returns the instruction at index i.
func (p *Program) At(i int) Instruction {
	return p.code[i]
}

// Emit appends an instruction and returns its index.
func (p *Program) Emit(op int, args ...addr.Operand) (int, error) {
	if err := checkArgs(len(p.code), op, args); err != nil {
		return -1, err
	}

	p.code = append(p.code, Instruction{Op: op, Args: args})
	return len(p.code) - 1, nil
}

// EmitAddr appends an instruction whose operands are taken from the given
// addresses.
func (p *Program) EmitAddr(op int, args ...addr.Address) (int, error) {
	ops := make([]addr.Operand, len(args))
	for i, a := range args {
		ops[i] = a.Operand()
	}
	return p.Emit(op, ops...)
}

// Reserve appends an empty instruction slot, to be filled with Set once
// its operands are known. Returns the slot index.
func (p *Program) Reserve() int {
	p.code = append(p.code, Instruction{Op: Reserved})
	return len(p.code) - 1
}

// Set fills a reserved instruction slot.
func (p *Program) Set(index, op int, args ...addr.Operand) error {
	if index < 0 || index >= len(p.code) {
		return newError(index, "instruction index out of range")
	}

	if p.code[index].Op != Reserved {
		return newError(index, "instruction slot is not reserved")
	}

	if err := checkArgs(index, op, args); err != nil {
		return err
	}

	p.code[index] = Instruction{Op: op, Args: args, Patched: true}
	return nil
}

// Patch replaces operand arg of the instruction at index.
// It is used to fill in jump targets once they are known.
func (p *Program) Patch(index, arg int, op addr.Operand) error {
	if index < 0 || index >= len(p.code) {
		return newError(index, "instruction index out of range")
	}

	instr := &p.code[index]
	if arg < 0 || arg >= len(instr.Args) {
		return newError(index, "operand index %d out of range", arg)
	}

	args := make([]addr.Operand, len(instr.Args))
	copy(args, instr.Args)
	args[arg] = op

	instr.Args = args
	instr.Patched = true
	return nil
}

// checkArgs ensures the opcode is known and receives the right operand count.
func checkArgs(index, op int, args []addr.Operand) error {
	argc := arch.Argc(op)
	if argc < 0 {
		return newError(index, "unknown opcode %d", op)
	}

	if len(args) != argc {
		name, _ := arch.Name(op)
		return newError(index, "invalid number of operands for %s; expected %d, have %d", name, argc, len(args))
	}

	return nil
}

// Format returns the text of instruction i in the given target syntax.
func (p *Program) Format(i int, pr Printer) (string, error) {
	instr := p.code[i]
	if instr.Op == Reserved {
		return "", newError(i, "unfilled reserved instruction")
	}

	name, _ := arch.Name(instr.Op)
	args := make([]string, len(instr.Args))

	for j, op := range instr.Args {
		if arch.IsJump(instr.Op) && j == len(instr.Args)-1 {
			args[j] = pr.Label(op.Slot)
		} else {
			args[j] = pr.Operand(op)
		}
	}

	return pr.Instruction(name, args), nil
}

// Print writes one line per instruction to w: its index and its text in
// the given target syntax.
func (p *Program) Print(w io.Writer, pr Printer) error {
	for i := range p.code {
		line, err := p.Format(i, pr)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, "%d\t%s\n", i, line); err != nil {
			return err
		}
	}
	return nil
}

// Encode encodes the program into an archive for the given unit.
// Debug offsets are always emitted; symbols are added by the caller.
func (p *Program) Encode(unit, target string) (*ar.Archive, error) {
	a := ar.New(unit)
	a.Target = target

	for i, instr := range p.code {
		if instr.Op == Reserved {
			return nil, newError(i, "unfilled reserved instruction")
		}

		var flags ar.DebugFlags
		if arch.IsJump(instr.Op) {
			flags |= ar.Jump
		}
		if instr.Patched {
			flags |= ar.Patched
		}

		a.Debug.Offsets = append(a.Debug.Offsets, ar.DebugData{
			Address: len(a.Instructions),
			Index:   i,
			Flags:   flags,
		})

		a.Instructions = append(a.Instructions, byte(instr.Op))

		var err error
		for _, op := range instr.Args {
			a.Instructions, err = EncodeOperand(a.Instructions, op)
			if err != nil {
				return nil, newError(i, "%v", err)
			}
		}
	}

	return a, nil
}

// Decode rebuilds a program from the encoded instructions in a.
func Decode(a *ar.Archive) (*Program, error) {
	p := NewProgram()
	code := a.Instructions

	for pc := 0; pc < len(code); {
		index := p.Len()
		op := int(code[pc])
		argc := arch.Argc(op)
		if argc < 0 {
			return nil, newError(index, "unknown opcode %02x at offset %d", op, pc)
		}
		pc++

		var patched bool
		if d := a.Debug.Find(pc - 1); d != nil {
			patched = d.Flags&ar.Patched != 0
		}

		args := make([]addr.Operand, argc)
		for j := range args {
			operand, n, err := DecodeOperand(code[pc:])
			if err != nil {
				return nil, newError(index, "%v", err)
			}
			args[j] = operand
			pc += n
		}

		p.code = append(p.code, Instruction{Op: op, Args: args, Patched: patched})
	}

	return p, nil
}
