package frame

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hexaflex/mjcg/arch"
)

func TestAlloc(t *testing.T) {
	f, err := New(DefaultLayout())
	if err != nil {
		t.Fatal(err)
	}

	calls := []func() (int, error){
		func() (int, error) { return f.AllocParam("a") },
		func() (int, error) { return f.AllocLocal("x") },
		f.AllocTemp,
		f.AllocTemp,
		func() (int, error) { return f.AllocStatic("count") },
		func() (int, error) { return f.AllocLocal("y") },
	}

	have := make([]int, len(calls))
	for i, call := range calls {
		if have[i], err = call(); err != nil {
			t.Fatal(err)
		}
	}
	want := []int{100, 104, 500, 504, 0, 108}

	if !reflect.DeepEqual(have, want) {
		t.Fatalf("slot mismatch:\nhave: %v\nwant: %v", have, want)
	}

	if f.DataSize() != 12 || f.TempSize() != 8 || f.StaticSize() != 4 {
		t.Fatalf("size mismatch: data %d, temp %d, static %d", f.DataSize(), f.TempSize(), f.StaticSize())
	}

	slots := f.Slots()
	if len(slots) != 6 || slots[0] != (Slot{"a", 100, arch.Parameter}) || slots[2].Name != "" {
		t.Fatalf("unexpected slot list: %v", slots)
	}
}

func TestAllocByKind(t *testing.T) {
	f, _ := New(DefaultLayout())

	if _, err := f.Alloc("k", arch.Constant); err == nil {
		t.Fatalf("expected constants to not be allocated")
	}

	if n, err := f.Alloc("t", arch.Temporary); err != nil || n != 500 {
		t.Fatalf("temporary slot mismatch:\nhave: %d\nwant: %d", n, 500)
	}
}

func TestReset(t *testing.T) {
	f, _ := New(DefaultLayout())
	f.AllocLocal("x")
	f.AllocTemp()
	f.Reset()

	if n, _ := f.AllocLocal("y"); n != 100 {
		t.Fatalf("slot mismatch after reset:\nhave: %d\nwant: %d", n, 100)
	}

	if len(f.Slots()) != 1 {
		t.Fatalf("expected one slot after reset; have %d", len(f.Slots()))
	}
}

func TestIndependentFrames(t *testing.T) {
	a, _ := New(DefaultLayout())
	b, _ := New(DefaultLayout())

	a.AllocLocal("x")
	a.AllocLocal("y")

	if n, _ := b.AllocLocal("x"); n != 100 {
		t.Fatalf("frames share state: have %d, want %d", n, 100)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		layout Layout
		ok     bool
	}{
		{DefaultLayout(), true},
		{Layout{DataBase: 0, TempBase: 100, StaticBase: 200, Word: 1}, true},
		{Layout{DataBase: 100, TempBase: 500, StaticBase: 0, Word: 0}, false},
		{Layout{DataBase: -4, TempBase: 500, StaticBase: 0, Word: 4}, false},
		{Layout{DataBase: 100, TempBase: 100, StaticBase: 0, Word: 4}, false},
	}

	for i, tt := range tests {
		_, err := New(tt.layout)
		if (err == nil) != tt.ok {
			t.Fatalf("test %d: unexpected result: %v", i, err)
		}
	}
}

func TestAreaFull(t *testing.T) {
	f, _ := New(DefaultLayout())

	// 100..499 holds 100 words.
	for i := 0; i < 100; i++ {
		if _, err := f.AllocLocal("x"); err != nil {
			t.Fatalf("local %d: %v", i, err)
		}
	}

	_, err := f.AllocLocal("overflow")

	var fe *AreaFullError
	if !errors.As(err, &fe) {
		t.Fatalf("expected AreaFullError; have %v", err)
	}

	if fe.Area != "data" || fe.Limit != 500 || !errors.Is(err, ErrAreaFull) {
		t.Fatalf("error fields mismatch: %+v", fe)
	}

	if n, err := f.AllocTemp(); err != nil || n != 500 {
		t.Fatalf("temporary slot mismatch:\nhave: %d, %v\nwant: %d", n, err, 500)
	}

	if f.DataSize() != 400 || len(f.Slots()) != 101 {
		t.Fatalf("failed allocation was recorded: data %d, slots %d", f.DataSize(), len(f.Slots()))
	}
}

func TestAreaLimits(t *testing.T) {
	tests := []struct {
		kind arch.Kind
		max  int
	}{
		{arch.Static, 25},
		{arch.Field, 25},
		{arch.Parameter, 100},
	}

	for _, tt := range tests {
		f, _ := New(DefaultLayout())

		for i := 0; i < tt.max; i++ {
			if _, err := f.Alloc("s", tt.kind); err != nil {
				t.Fatalf("%v %d: %v", tt.kind, i, err)
			}
		}

		if _, err := f.Alloc("s", tt.kind); !errors.Is(err, ErrAreaFull) {
			t.Fatalf("%v: expected ErrAreaFull; have %v", tt.kind, err)
		}
	}
}

func TestUnboundedArea(t *testing.T) {
	f, _ := New(DefaultLayout())

	for i := 0; i < 1000; i++ {
		n, err := f.AllocTemp()
		if err != nil {
			t.Fatal(err)
		}

		if want := 500 + i*4; n != want {
			t.Fatalf("slot mismatch:\nhave: %d\nwant: %d", n, want)
		}
	}
}
