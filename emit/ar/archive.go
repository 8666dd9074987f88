// Package ar defines the archive holding an encoded compilation unit, as
// well as an encoder and decoder for its file format.
package ar

import (
	"compress/gzip"
	"encoding/hex"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// magic identifies the archive format and version.
const magic = "mjcg1"

// Archive defines a complete, encoded compilation unit.
type Archive struct {
	Unit         string // Name of the compilation unit.
	Target       string // Name of the printer the unit was generated for.
	Debug        Debug  // Optional debug symbols.
	Instructions []byte // Encoded code.
}

// New creates a new, empty archive for the given unit.
func New(unit string) *Archive {
	return &Archive{Unit: unit}
}

// Load reads archive data from the given stream.
func (a *Archive) Load(r io.Reader) (err error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return errors.Wrapf(err, "ar: invalid archive format")
	}

	defer gz.Close()
	defer recoverOnPanic(&err)

	if n := readU32(gz); n != uint32(len(magic)) {
		return errors.New("ar: invalid archive header")
	}

	var m [len(magic)]byte
	if _, err := io.ReadFull(gz, m[:]); err != nil || string(m[:]) != magic {
		return fmt.Errorf("ar: invalid archive header %q", m[:])
	}

	a.Unit = readString(gz)
	a.Target = readString(gz)
	a.Debug.read(gz)
	a.Instructions = readBytes(gz)
	return
}

// Save writes archive data to the given stream.
func (a *Archive) Save(w io.Writer) (err error) {
	defer recoverOnPanic(&err)

	gz := gzip.NewWriter(w)
	defer gz.Close()

	writeString(gz, magic)
	writeString(gz, a.Unit)
	writeString(gz, a.Target)
	a.Debug.write(gz)
	writeBytes(gz, a.Instructions)
	return
}

func recoverOnPanic(err *error) {
	x := recover()
	if x == nil {
		return
	}

	switch tx := x.(type) {
	case runtime.Error:
		panic(tx)
	case error:
		*err = errors.Wrapf(tx, "ar")
	default:
		*err = fmt.Errorf("ar: %v", tx)
	}
}

// String returns a human-readable dump of the archive's contents.
func (a *Archive) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Unit: %s (%s)\n", a.Unit, a.Target)

	if len(a.Debug.Symbols) > 0 {
		fmt.Fprintf(&sb, "Symbols (%d):\n", len(a.Debug.Symbols))
		for _, v := range a.Debug.Symbols {
			fmt.Fprintf(&sb, " %-12s %-12s %s\n", v.Name, v.Kind, v.Operand)
		}

		fmt.Fprintf(&sb, "Instruction offsets (%d):\n", len(a.Debug.Offsets))
		for _, v := range a.Debug.Offsets {
			fmt.Fprintf(&sb, " %04x: Index: %d, Flags: %02x\n", v.Address, v.Index, v.Flags)
		}
	}

	if len(a.Instructions) > 0 {
		fmt.Fprintf(&sb, "Instructions:\n")
		fmt.Fprintf(&sb, "%s\n", hex.Dump(a.Instructions))
	}

	return sb.String()
}
