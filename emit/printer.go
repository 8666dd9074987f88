package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hexaflex/mjcg/addr"
	"github.com/hexaflex/mjcg/arch"
)

// Printer turns structured operands into target instruction text.
// Retargeting the code generator means supplying a different Printer.
type Printer interface {
	// Name returns the target syntax name.
	Name() string

	// Operand formats a data operand.
	Operand(op addr.Operand) string

	// Label formats a code address used as a jump target.
	Label(index int) string

	// Instruction formats a complete instruction from its name and
	// formatted operands.
	Instruction(name string, args []string) string
}

// Lookup returns the printer for the given syntax name.
// Returns false if the name is not recognized.
func Lookup(name string) (Printer, bool) {
	switch strings.ToLower(name) {
	case "", "minijava":
		return MiniJava{}, true
	case "dis":
		return Dis{}, true
	}
	return nil, false
}

// MiniJava prints the three-address tuple syntax: (ADD, 100, #1, 500).
// Operands use the canonical forms n, @n+d and #v.
type MiniJava struct{}

func (MiniJava) Name() string { return "minijava" }

func (MiniJava) Operand(op addr.Operand) string {
	return op.String()
}

func (MiniJava) Label(index int) string {
	return strconv.Itoa(index)
}

func (MiniJava) Instruction(name string, args []string) string {
	var sb strings.Builder
	sb.WriteString("(" + name)
	for i := 0; i < 3; i++ {
		sb.WriteString(", ")
		if i < len(args) {
			sb.WriteString(args[i])
		}
	}
	sb.WriteString(")")
	return sb.String()
}

// Dis prints frame pointer relative operands: n(fp), d(n(fp)) and $v.
type Dis struct{}

func (Dis) Name() string { return "dis" }

func (Dis) Operand(op addr.Operand) string {
	switch op.Mode {
	case arch.Direct:
		return fmt.Sprintf("%d(fp)", op.Slot)
	case arch.Indirect:
		return fmt.Sprintf("%d(%d(fp))", op.Disp, op.Slot)
	case arch.Immediate:
		return fmt.Sprintf("$%d", op.Value)
	}
	panic("emit: unknown mode " + op.Mode.String())
}

func (Dis) Label(index int) string {
	return fmt.Sprintf("$%d", index)
}

func (Dis) Instruction(name string, args []string) string {
	if len(args) == 0 {
		return strings.ToLower(name)
	}
	return strings.ToLower(name) + " " + strings.Join(args, ", ")
}
