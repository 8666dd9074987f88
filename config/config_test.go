package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/hexaflex/mjcg/frame"
)

const sample = `
[target]
syntax = "dis"

[[unit]]
name = "Main.main"

  [[unit.symbols]]
  name = "i"
  kind = "local"

  [[unit.symbols]]
  name = "arr"
  kind = "static"

  [[unit.symbols]]
  name = "arr[1]"
  kind = "arrayelement"
  base = "arr"
  disp = 4

  [[unit.code]]
  label = "loop"
  op = "LT"
  args = ["i", "#10", "$c"]

  [[unit.code]]
  op = "JPF"
  args = ["$c", "done"]

  [[unit.code]]
  op = "ADD"
  args = ["i", "#1", "i"]

  [[unit.code]]
  op = "JP"
  args = ["loop"]

  [[unit.code]]
  label = "done"
  op = "PRINT"
  args = ["arr[1]"]
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}

	if c.Target.Syntax != "dis" {
		t.Fatalf("syntax mismatch:\nhave: %q\nwant: %q", c.Target.Syntax, "dis")
	}

	if c.Target.Layout != frame.DefaultLayout() {
		t.Fatalf("expected default layout; have %+v", c.Target.Layout)
	}

	if len(c.Units) != 1 {
		t.Fatalf("unit count mismatch:\nhave: %d\nwant: %d", len(c.Units), 1)
	}

	u := c.Units[0]
	if len(u.Symbols) != 3 || len(u.Code) != 5 {
		t.Fatalf("unit contents mismatch: %d symbols, %d lines", len(u.Symbols), len(u.Code))
	}

	if s := u.Symbols[2]; s.Base != "arr" || s.Disp != 4 {
		t.Fatalf("indirect symbol mismatch: %+v", s)
	}

	if l := u.Code[0]; l.Label != "loop" || l.Args[2] != "$c" {
		t.Fatalf("line mismatch: %+v", l)
	}
}

func TestParseLayout(t *testing.T) {
	data := `
[target]
syntax = "minijava"

  [target.layout]
  data-base = 1000
  temp-base = 2000
  static-base = 3000
  word = 8

[[unit]]
name = "A"
`

	c, err := Parse([]byte(data))
	if err != nil {
		t.Fatal(err)
	}

	want := frame.Layout{DataBase: 1000, TempBase: 2000, StaticBase: 3000, Word: 8}
	if c.Target.Layout != want {
		t.Fatalf("layout mismatch:\nhave: %+v\nwant: %+v", c.Target.Layout, want)
	}
}

func TestParsePartialLayout(t *testing.T) {
	tests := []struct {
		table string
		want  frame.Layout
	}{
		{"word = 2", frame.Layout{DataBase: 100, TempBase: 500, StaticBase: 0, Word: 2}},
		{"temp-base = 900", frame.Layout{DataBase: 100, TempBase: 900, StaticBase: 0, Word: 4}},
		{"data-base = 0\nstatic-base = 50", frame.Layout{DataBase: 0, TempBase: 500, StaticBase: 50, Word: 4}},
	}

	for i, tt := range tests {
		data := "[target]\nsyntax = \"minijava\"\n[target.layout]\n" + tt.table + "\n[[unit]]\nname = \"A\"\n"

		c, err := Parse([]byte(data))
		if err != nil {
			t.Fatalf("test %d: %v", i, err)
		}

		if c.Target.Layout != tt.want {
			t.Fatalf("test %d: layout mismatch:\nhave: %+v\nwant: %+v", i, c.Target.Layout, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		`[target]
syntax = "x86"
[[unit]]
name = "A"`,
		`[target]
syntax = "dis"`,
		`[[unit]]
name = "A"
[[unit]]
name = "A"`,
		`[[unit]]
name = "A"
  [[unit.symbols]]
  name = "x"
  kind = "register"`,
		`[[unit]]
name = "A"
  [[unit.code]]
  op = "ADD"
  args = ["a"]`,
		`[[unit]]
name = "A"
  [[unit.code]]
  op = "HALT"
  args = []`,
		`[target.layout]
word = 0
[[unit]]
name = "A"`,
		`this is not toml`,
	}

	for i, data := range tests {
		if _, err := Parse([]byte(data)); err == nil {
			t.Fatalf("test %d: expected error", i)
		}
	}
}

func TestLoad(t *testing.T) {
	dir, err := ioutil.TempDir("", "mjcg")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "unit.toml")
	if err := ioutil.WriteFile(path, []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
