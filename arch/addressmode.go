package arch

import "strings"

// Mode defines operand addressing mode tags.
type Mode byte

// Known addressing modes.
const (
	Direct    Mode = 0 // x = slot
	Indirect  Mode = 1 // x = mem[slot] + disp
	Immediate Mode = 2 // x = 123
)

// ParseMode returns the mode with the given name.
// Returns false if the name is not recognized.
func ParseMode(name string) (Mode, bool) {
	switch strings.ToLower(name) {
	case "direct":
		return Direct, true
	case "indirect":
		return Indirect, true
	case "immediate":
		return Immediate, true
	}
	return 0, false
}

func (m Mode) String() string {
	switch m {
	case Direct:
		return "direct"
	case Indirect:
		return "indirect"
	case Immediate:
		return "immediate"
	}
	return "mode(" + itoa(int(m)) + ")"
}
