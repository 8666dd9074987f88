// Package frame implements slot allocation for a single compilation unit.
//
// A Frame holds all counters for the unit it serves. There is no package
// level state, so independent units can be generated in parallel.
package frame

import (
	"errors"
	"fmt"

	"github.com/hexaflex/mjcg/arch"
)

// ErrAreaFull is matched by errors.Is for any AreaFullError.
var ErrAreaFull = errors.New("storage area is full")

// AreaFullError is returned when an allocation would reach the base of
// the next storage area.
type AreaFullError struct {
	Area  string    // Name of the exhausted area.
	Kind  arch.Kind // Kind the slot was requested for.
	Limit int       // First slot past the end of the area.
}

func (e *AreaFullError) Error() string {
	return fmt.Sprintf("%s area is full; no %s slot below %d", e.Area, e.Kind, e.Limit)
}

func (e *AreaFullError) Is(target error) bool {
	return target == ErrAreaFull
}

// Layout defines where each storage area starts and how large a slot is.
type Layout struct {
	DataBase   int `toml:"data-base"`   // First slot for locals and parameters.
	TempBase   int `toml:"temp-base"`   // First slot for temporaries.
	StaticBase int `toml:"static-base"` // First slot for statics.
	Word       int `toml:"word"`        // Slot size.
}

// DefaultLayout returns the layout used when none is configured.
func DefaultLayout() Layout {
	return Layout{
		DataBase:   100,
		TempBase:   500,
		StaticBase: 0,
		Word:       4,
	}
}

// Validate returns an error if the layout would produce negative slots or
// areas sharing a base. Each area ends where the next higher base starts;
// the highest area is unbounded.
func (l Layout) Validate() error {
	if l.Word <= 0 {
		return fmt.Errorf("invalid word size %d", l.Word)
	}

	if l.DataBase < 0 || l.TempBase < 0 || l.StaticBase < 0 {
		return fmt.Errorf("negative area base in layout %+v", l)
	}

	if l.DataBase == l.TempBase || l.DataBase == l.StaticBase || l.TempBase == l.StaticBase {
		return fmt.Errorf("overlapping area bases in layout %+v", l)
	}

	return nil
}

// Slot describes one allocated slot.
type Slot struct {
	Name   string    // Symbol name. Empty for temporaries.
	Offset int       // Allocated slot number.
	Kind   arch.Kind // Storage kind the slot was allocated for.
}

// area is a bump allocator for one storage area.
type area struct {
	name  string
	base  int
	limit int // -1 when unbounded.
	next  int
	peak  int
}

// newArea creates the area starting at base. It ends at the lowest base
// in l above its own.
func newArea(name string, base int, l Layout) area {
	limit := -1
	for _, b := range []int{l.DataBase, l.TempBase, l.StaticBase} {
		if b > base && (limit < 0 || b < limit) {
			limit = b
		}
	}
	return area{name: name, base: base, limit: limit}
}

func (a *area) alloc(word int) (int, bool) {
	offset := a.base + a.next
	if a.limit >= 0 && offset+word > a.limit {
		return 0, false
	}

	a.next += word
	if a.next > a.peak {
		a.peak = a.next
	}
	return offset, true
}

// Frame tracks slot allocation for one compilation unit.
type Frame struct {
	layout Layout
	data   area
	temp   area
	static area
	slots  []Slot
}

// New creates a new frame with the given layout.
func New(layout Layout) (*Frame, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	f := &Frame{layout: layout}
	f.Reset()
	return f, nil
}

// Layout returns the frame layout.
func (f *Frame) Layout() Layout {
	return f.layout
}

// AllocLocal allocates a slot for a local variable.
func (f *Frame) AllocLocal(name string) (int, error) {
	return f.alloc(&f.data, name, arch.Local)
}

// AllocParam allocates a slot for a method parameter.
// Parameters share the data area with locals.
func (f *Frame) AllocParam(name string) (int, error) {
	return f.alloc(&f.data, name, arch.Parameter)
}

// AllocTemp allocates an unnamed temporary slot.
func (f *Frame) AllocTemp() (int, error) {
	return f.alloc(&f.temp, "", arch.Temporary)
}

// AllocStatic allocates a slot in the static area.
func (f *Frame) AllocStatic(name string) (int, error) {
	return f.alloc(&f.static, name, arch.Static)
}

// Alloc allocates a slot in the area appropriate for the given kind.
// Constants have no storage and yield an error.
func (f *Frame) Alloc(name string, kind arch.Kind) (int, error) {
	switch kind {
	case arch.Local:
		return f.AllocLocal(name)
	case arch.Parameter:
		return f.AllocParam(name)
	case arch.Temporary:
		return f.AllocTemp()
	case arch.Static, arch.Field, arch.ArrayElement:
		return f.alloc(&f.static, name, kind)
	}
	return 0, fmt.Errorf("%s symbols have no storage", kind)
}

func (f *Frame) alloc(a *area, name string, kind arch.Kind) (int, error) {
	offset, ok := a.alloc(f.layout.Word)
	if !ok {
		return 0, &AreaFullError{Area: a.name, Kind: kind, Limit: a.limit}
	}

	f.slots = append(f.slots, Slot{
		Name:   name,
		Offset: offset,
		Kind:   kind,
	})
	return offset, nil
}

// Slots returns all slots allocated so far, in allocation order.
func (f *Frame) Slots() []Slot {
	out := make([]Slot, len(f.slots))
	copy(out, f.slots)
	return out
}

// DataSize returns the high water mark of the data area.
func (f *Frame) DataSize() int { return f.data.peak }

// TempSize returns the high water mark of the temporary area.
func (f *Frame) TempSize() int { return f.temp.peak }

// StaticSize returns the high water mark of the static area.
func (f *Frame) StaticSize() int { return f.static.peak }

// Reset clears all allocations. The layout is kept.
func (f *Frame) Reset() {
	f.data = newArea("data", f.layout.DataBase, f.layout)
	f.temp = newArea("temporary", f.layout.TempBase, f.layout)
	f.static = newArea("static", f.layout.StaticBase, f.layout)
	f.slots = nil
}
