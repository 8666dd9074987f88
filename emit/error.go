package emit

import (
	"fmt"
	"strings"
)

// ErrorSet defines a list of one or more errors and is itself an error.
type ErrorSet []error

func (e ErrorSet) Len() int {
	return len(e)
}

func (e *ErrorSet) Append(args ...error) {
	*e = append(*e, args...)
}

func (e ErrorSet) Error() string {
	var sb strings.Builder
	for _, err := range e {
		sb.WriteString(err.Error() + "\n")
	}
	return sb.String()
}

// Error defines an emission error for a single instruction.
type Error struct {
	Index int // Instruction index.
	Msg   string
}

// newError creates a new, formatted error message for the given instruction index.
func newError(index int, f string, argv ...interface{}) *Error {
	return &Error{
		Index: index,
		Msg:   fmt.Sprintf(f, argv...),
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%04d: %s", e.Index, e.Msg)
}
