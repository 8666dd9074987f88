// Package config loads code generation targets and compilation unit
// descriptions from TOML.
package config

import (
	"io/ioutil"

	"github.com/hexaflex/mjcg/arch"
	"github.com/hexaflex/mjcg/emit"
	"github.com/hexaflex/mjcg/frame"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// Config defines a complete code generation request.
type Config struct {
	Target Target `toml:"target"`
	Units  []Unit `toml:"unit"`
}

// Target selects the output syntax and slot layout.
type Target struct {
	Syntax string       `toml:"syntax"`
	Layout frame.Layout `toml:"layout"`
}

// Unit describes one compilation unit: its symbols and its code.
type Unit struct {
	Name    string   `toml:"name"`
	Symbols []Symbol `toml:"symbols"`
	Code    []Line   `toml:"code"`
}

// Symbol declares a variable. Base and Disp are set for locations reached
// through another symbol.
type Symbol struct {
	Name string `toml:"name"`
	Kind string `toml:"kind"`
	Base string `toml:"base,omitempty"`
	Disp int    `toml:"disp,omitempty"`
}

// Line is one instruction. Operands are symbol names, #literals, or
// $temporaries; a jump's last operand names a label.
type Line struct {
	Label string   `toml:"label,omitempty"`
	Op    string   `toml:"op"`
	Args  []string `toml:"args"`
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}

	return c, nil
}

// Parse decodes and validates configuration data.
func Parse(data []byte) (*Config, error) {
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid configuration")
	}

	var c Config
	if err := tree.Unmarshal(&c); err != nil {
		return nil, errors.Wrapf(err, "invalid configuration")
	}

	c.Target.Layout = mergeLayout(tree, c.Target.Layout)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// mergeLayout fills every layout key missing from tree with its default.
func mergeLayout(tree *toml.Tree, l frame.Layout) frame.Layout {
	def := frame.DefaultLayout()
	fields := []struct {
		key  string
		have *int
		want int
	}{
		{"data-base", &l.DataBase, def.DataBase},
		{"temp-base", &l.TempBase, def.TempBase},
		{"static-base", &l.StaticBase, def.StaticBase},
		{"word", &l.Word, def.Word},
	}

	for _, f := range fields {
		if !tree.HasPath([]string{"target", "layout", f.key}) {
			*f.have = f.want
		}
	}

	return l
}

// Validate checks the configuration for unknown names and duplicates.
func (c *Config) Validate() error {
	if _, ok := emit.Lookup(c.Target.Syntax); !ok {
		return errors.Errorf("unknown target syntax %q", c.Target.Syntax)
	}

	if err := c.Target.Layout.Validate(); err != nil {
		return errors.Wrapf(err, "target")
	}

	if len(c.Units) == 0 {
		return errors.New("no compilation units defined")
	}

	seen := make(map[string]bool)
	for i := range c.Units {
		u := &c.Units[i]
		if len(u.Name) == 0 {
			return errors.New("compilation unit without a name")
		}

		if seen[u.Name] {
			return errors.Errorf("duplicate compilation unit %q", u.Name)
		}
		seen[u.Name] = true

		if err := u.validate(); err != nil {
			return errors.Wrapf(err, "%s", u.Name)
		}
	}

	return nil
}

func (u *Unit) validate() error {
	for _, s := range u.Symbols {
		if _, ok := arch.ParseKind(s.Kind); !ok {
			return errors.Errorf("symbol %q: unknown kind %q", s.Name, s.Kind)
		}
	}

	for i, l := range u.Code {
		op, ok := arch.Opcode(l.Op)
		if !ok {
			return errors.Errorf("line %d: unknown instruction %q", i, l.Op)
		}

		if argc := arch.Argc(op); argc != len(l.Args) {
			return errors.Errorf("line %d: %s expects %d operands, have %d", i, l.Op, argc, len(l.Args))
		}
	}

	return nil
}
