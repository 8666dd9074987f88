package addr

import (
	"errors"
	"fmt"

	"github.com/hexaflex/mjcg/arch"
)

// Sentinels for use with errors.Is.
var (
	ErrInvalidSlot = errors.New("invalid slot")
	ErrInvalidMode = errors.New("invalid mode")
)

// InvalidSlotError is returned when an address is constructed with a
// negative slot.
type InvalidSlotError struct {
	Slot int
	Kind arch.Kind
}

func (e *InvalidSlotError) Error() string {
	return fmt.Sprintf("invalid slot %d for %s address", e.Slot, e.Kind)
}

func (e *InvalidSlotError) Is(target error) bool {
	return target == ErrInvalidSlot
}

// InvalidModeError is returned when an address is constructed with a mode
// its storage kind does not admit.
type InvalidModeError struct {
	Kind arch.Kind
	Mode arch.Mode
	Msg  string
}

// newModeError creates a new mode error for the given kind and mode.
func newModeError(kind arch.Kind, mode arch.Mode, f string, argv ...interface{}) *InvalidModeError {
	return &InvalidModeError{
		Kind: kind,
		Mode: mode,
		Msg:  fmt.Sprintf(f, argv...),
	}
}

func (e *InvalidModeError) Error() string {
	return e.Msg
}

func (e *InvalidModeError) Is(target error) bool {
	return target == ErrInvalidMode
}
