package ar

import (
	"bytes"
	"compress/gzip"
	"reflect"
	"strings"
	"testing"
)

func TestAR(t *testing.T) {
	ar := New("Main.main")
	ar.Target = "minijava"
	ar.Debug.Symbols = append(ar.Debug.Symbols,
		DebugSymbol{"i", "local", "100"},
		DebugSymbol{"arr[2]", "arrayelement", "@0+8"})
	ar.Debug.Offsets = append(ar.Debug.Offsets,
		DebugData{0, 0, 0},
		DebugData{10, 1, Jump | Patched})
	ar.Instructions = append(ar.Instructions,
		0, 1, 2, 3, 4, 5, 6, 7, 8, 9)

	var buf bytes.Buffer
	if err := ar.Save(&buf); err != nil {
		t.Fatal(err)
	}

	br := New("")
	if err := br.Load(&buf); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(ar, br) {
		t.Fatalf("archive mismatch:\nhave: %v\nwant: %v", br, ar)
	}

	if d := br.Debug.Find(10); d == nil || d.Index != 1 {
		t.Fatalf("expected debug data at address 10; have %v", d)
	}

	if s := br.Debug.Symbol("i"); s == nil || s.Operand != "100" {
		t.Fatalf("expected symbol i; have %v", s)
	}
}

func TestARInvalid(t *testing.T) {
	br := New("")
	if err := br.Load(strings.NewReader("not an archive")); err == nil {
		t.Fatalf("expected error for invalid archive")
	}
}

func TestARTruncated(t *testing.T) {
	ar := New("Main.main")
	ar.Instructions = []byte{1, 2, 3}

	var buf bytes.Buffer
	if err := ar.Save(&buf); err != nil {
		t.Fatal(err)
	}

	p := buf.Bytes()
	br := New("")
	if err := br.Load(bytes.NewReader(p[:len(p)/2])); err == nil {
		t.Fatalf("expected error for truncated archive")
	}
}

func TestARLengthLimits(t *testing.T) {
	tests := []func(w *bytes.Buffer){
		// Not an archive: huge first prefix.
		func(w *bytes.Buffer) {
			writeU32(w, 0xffffffff)
		},

		// Huge unit name.
		func(w *bytes.Buffer) {
			writeString(w, magic)
			writeU32(w, 0xfffffff0)
		},

		// Huge symbol count.
		func(w *bytes.Buffer) {
			writeString(w, magic)
			writeString(w, "Main.main")
			writeString(w, "dis")
			writeU32(w, maxLen+1)
		},

		// Instruction length within the limit, but no data follows.
		func(w *bytes.Buffer) {
			writeString(w, magic)
			writeString(w, "Main.main")
			writeString(w, "dis")
			writeU32(w, 0)
			writeU32(w, 0)
			writeU32(w, maxLen)
		},
	}

	for i, fill := range tests {
		var raw bytes.Buffer
		fill(&raw)

		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		gz.Write(raw.Bytes())
		gz.Close()

		br := New("")
		if err := br.Load(&buf); err == nil {
			t.Fatalf("test %d: expected error for oversized length", i)
		}
	}
}
