// Package arch defines the three-address instruction set targeted by the
// code generator, along with the operand mode and storage kind tables
// shared by the rest of the back end.
package arch

import "strings"

// Known opcodes.
const (
	ADD = iota
	AND
	ASSIGN
	EQ
	JPF
	JP
	LT
	MULT
	NOT
	PRINT
	SUB
)

// Opcode returns the opcode for the given instruction name.
// Returns false if the name is not recognized.
func Opcode(name string) (int, bool) {
	switch strings.ToUpper(name) {
	case "ADD":
		return ADD, true
	case "AND":
		return AND, true
	case "ASSIGN":
		return ASSIGN, true
	case "EQ":
		return EQ, true
	case "JPF":
		return JPF, true
	case "JP":
		return JP, true
	case "LT":
		return LT, true
	case "MULT":
		return MULT, true
	case "NOT":
		return NOT, true
	case "PRINT":
		return PRINT, true
	case "SUB":
		return SUB, true
	}

	return 0, false
}

// Name returns the name for the given opcode.
// Returns false if the opcode is not recognized.
func Name(opcode int) (string, bool) {
	switch opcode {
	case ADD:
		return "ADD", true
	case AND:
		return "AND", true
	case ASSIGN:
		return "ASSIGN", true
	case EQ:
		return "EQ", true
	case JPF:
		return "JPF", true
	case JP:
		return "JP", true
	case LT:
		return "LT", true
	case MULT:
		return "MULT", true
	case NOT:
		return "NOT", true
	case PRINT:
		return "PRINT", true
	case SUB:
		return "SUB", true
	}

	return "", false
}

// Argc returns the number of arguments the given instruction requires.
// Returns -1 if the opcode is not recognized.
func Argc(opcode int) int {
	switch opcode {
	case ADD, AND, EQ, LT, MULT, SUB:
		return 3
	case ASSIGN, JPF, NOT:
		return 2
	case JP, PRINT:
		return 1
	}
	return -1
}

// IsJump returns true if the last operand of the given instruction is a
// code address rather than a data location.
func IsJump(opcode int) bool {
	return opcode == JP || opcode == JPF
}
