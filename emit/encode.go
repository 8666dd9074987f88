package emit

import (
	"fmt"

	"github.com/hexaflex/mjcg/addr"
	"github.com/hexaflex/mjcg/arch"
)

// Encoded operand layout. The top two bits of the lead byte hold the mode:
//
//   direct:    [mode<<6] [slot:16]
//   indirect:  [mode<<6] [base:16] [disp:16, signed]
//   immediate: [mode<<6] [value:32, signed]
const (
	maxSlot = 1<<16 - 1
	minDisp = -1 << 15
	maxDisp = 1<<15 - 1
	minImm  = -1 << 31
	maxImm  = 1<<31 - 1
)

// EncodedLen returns the byte size occupied by the encoded operand.
func EncodedLen(op addr.Operand) int {
	switch op.Mode {
	case arch.Direct:
		return 3
	case arch.Indirect:
		return 5
	case arch.Immediate:
		return 5
	}
	return 0
}

// EncodeOperand appends the binary form of op to out.
func EncodeOperand(out []byte, op addr.Operand) ([]byte, error) {
	out = append(out, byte(op.Mode)<<6)

	switch op.Mode {
	case arch.Direct:
		if op.Slot < 0 || op.Slot > maxSlot {
			return nil, fmt.Errorf("slot %d out of range", op.Slot)
		}
		return append(out, byte(op.Slot>>8), byte(op.Slot)), nil

	case arch.Indirect:
		if op.Slot < 0 || op.Slot > maxSlot {
			return nil, fmt.Errorf("base slot %d out of range", op.Slot)
		}
		if op.Disp < minDisp || op.Disp > maxDisp {
			return nil, fmt.Errorf("displacement %d out of range", op.Disp)
		}
		return append(out, byte(op.Slot>>8), byte(op.Slot), byte(op.Disp>>8), byte(op.Disp)), nil

	case arch.Immediate:
		if op.Value < minImm || op.Value > maxImm {
			return nil, fmt.Errorf("immediate %d out of range", op.Value)
		}
		v := op.Value
		return append(out, byte(v>>24), byte(v>>16), byte(v>>8), byte(v)), nil
	}

	return nil, fmt.Errorf("unknown operand mode %v", op.Mode)
}

// DecodeOperand decodes the operand at the start of p.
// Returns the operand and the number of bytes consumed.
func DecodeOperand(p []byte) (addr.Operand, int, error) {
	if len(p) == 0 {
		return addr.Operand{}, 0, fmt.Errorf("unexpected end of operand data")
	}

	op := addr.Operand{Mode: arch.Mode(p[0] >> 6)}
	n := EncodedLen(op)
	if n == 0 {
		return addr.Operand{}, 0, fmt.Errorf("unknown operand mode %v", op.Mode)
	}

	if len(p) < n {
		return addr.Operand{}, 0, fmt.Errorf("unexpected end of operand data")
	}

	switch op.Mode {
	case arch.Direct:
		op.Slot = int(uint16(p[1])<<8 | uint16(p[2]))
	case arch.Indirect:
		op.Slot = int(uint16(p[1])<<8 | uint16(p[2]))
		op.Disp = int(int16(uint16(p[3])<<8 | uint16(p[4])))
	case arch.Immediate:
		op.Value = int(int32(uint32(p[1])<<24 | uint32(p[2])<<16 | uint32(p[3])<<8 | uint32(p[4])))
	}

	return op, n, nil
}
