package addr

import (
	"strconv"

	"github.com/hexaflex/mjcg/arch"
)

// Operand is the structured form of a rendered address. Target printers
// turn it into final instruction text.
type Operand struct {
	Mode  arch.Mode // Addressing mode tag.
	Slot  int       // Slot for Direct, base slot for Indirect.
	Disp  int       // Displacement for Indirect.
	Value int       // Literal value for Immediate.
}

// Label returns a Direct operand referring to the given code address.
// It is used for jump targets.
func Label(index int) Operand {
	return Operand{Mode: arch.Direct, Slot: index}
}

// Equal returns true if both operands carry the same tag and fields.
func (o Operand) Equal(p Operand) bool {
	return o == p
}

// String returns the canonical operand text: n, @n, @n+d or #v.
func (o Operand) String() string {
	switch o.Mode {
	case arch.Direct:
		return strconv.Itoa(o.Slot)
	case arch.Indirect:
		return "@" + strconv.Itoa(o.Slot) + disp(o.Disp)
	case arch.Immediate:
		return "#" + strconv.Itoa(o.Value)
	}
	panic("addr: unknown mode " + o.Mode.String())
}

// disp formats a displacement as a signed suffix. Zero yields "".
func disp(d int) string {
	switch {
	case d > 0:
		return "+" + strconv.Itoa(d)
	case d < 0:
		return strconv.Itoa(d)
	}
	return ""
}
