package arch

import (
	"strconv"
	"strings"
)

// Kind classifies the storage category of a symbol or temporary.
type Kind byte

// Known storage kinds.
const (
	Local Kind = iota
	Parameter
	Temporary
	Field
	ArrayElement
	Static
	Constant
)

// ParseKind returns the storage kind matching the given name.
// Returns false if no match was found.
func ParseKind(name string) (Kind, bool) {
	switch strings.ToLower(name) {
	case "local":
		return Local, true
	case "parameter", "param":
		return Parameter, true
	case "temporary", "temp":
		return Temporary, true
	case "field":
		return Field, true
	case "arrayelement", "element":
		return ArrayElement, true
	case "static":
		return Static, true
	case "constant", "const":
		return Constant, true
	}
	return 0, false
}

func (k Kind) String() string {
	switch k {
	case Local:
		return "local"
	case Parameter:
		return "parameter"
	case Temporary:
		return "temporary"
	case Field:
		return "field"
	case ArrayElement:
		return "arrayelement"
	case Static:
		return "static"
	case Constant:
		return "constant"
	}
	return "kind(" + itoa(int(k)) + ")"
}

// DirectOnly returns true if the kind only admits direct addressing.
func (k Kind) DirectOnly() bool {
	switch k {
	case Local, Parameter, Temporary:
		return true
	}
	return false
}

// Legal returns true if an address of kind k may be rendered with mode m.
//
//   Local, Parameter, Temporary: Direct
//   Field, ArrayElement, Static: Direct, Indirect, Immediate
//   Constant:                    Direct, Immediate
func Legal(k Kind, m Mode) bool {
	if k > Constant {
		return false
	}

	switch m {
	case Direct:
		return true
	case Indirect:
		return k == Field || k == ArrayElement || k == Static
	case Immediate:
		return !k.DirectOnly()
	}
	return false
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
