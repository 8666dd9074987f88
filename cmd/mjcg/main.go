package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/hexaflex/mjcg/codegen"
	"github.com/hexaflex/mjcg/config"
	"github.com/hexaflex/mjcg/logging"
)

var errMissingCommand = errors.New("expected a subcommand: build or version")

func main() {
	c := parseArgs()

	switch c.Command {
	case "version":
		logging.PrintInfoMessage("mjcg Version", Version())
	case "build":
		if err := build(c); err != nil {
			logging.PrintErrorMessage("Code Generation Error", err)
			os.Exit(1)
		}
	}
}

// build loads the unit file, generates every unit and writes the requested output.
func build(c *Config) error {
	cfg, err := config.Load(c.Input)
	if err != nil {
		return err
	}

	if len(c.Target) > 0 {
		cfg.Target.Syntax = c.Target
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	units, err := codegen.BuildAll(cfg)
	if err != nil {
		return err
	}

	switch {
	case c.Dump:
		err = dumpUnits(c, units)
	case c.Encode:
		err = encodeUnits(c, units)
	default:
		err = printUnits(c, units)
	}

	if err != nil {
		return err
	}

	logging.PrintSuccessMessage("Done", fmt.Sprintf("generated %d unit(s) for target %s", len(units), units[0].Printer.Name()))
	return nil
}

// printUnits writes the text form of each unit to the requested output.
func printUnits(c *Config, units []*codegen.Unit) error {
	w, close, err := makeWriter(c.Output)
	if err != nil {
		return err
	}
	defer close()

	for _, u := range units {
		fmt.Fprintf(w, "# %s\n", u.Name)
		if err := u.Print(w); err != nil {
			return err
		}
	}
	return nil
}

// dumpUnits writes a human readable dump of the structured instruction
// stream and symbol table of each unit.
func dumpUnits(c *Config, units []*codegen.Unit) error {
	w, close, err := makeWriter(c.Output)
	if err != nil {
		return err
	}
	defer close()

	cs := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
	for _, u := range units {
		fmt.Fprintf(w, "# %s\n", u.Name)
		for _, name := range u.Symbols.Names() {
			a, _ := u.Symbols.Lookup(name)
			fmt.Fprintf(w, "%s: %s %s\n", name, a.Kind(), a)
		}
		for i := 0; i < u.Code.Len(); i++ {
			cs.Fdump(w, u.Code.At(i))
		}
	}
	return nil
}

// encodeUnits writes one archive per unit into the output directory.
func encodeUnits(c *Config, units []*codegen.Unit) error {
	dir := c.Output
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0744); err != nil {
		return err
	}

	for _, u := range units {
		a, err := u.Archive()
		if err != nil {
			return err
		}

		w, close, err := makeWriter(filepath.Join(dir, u.Name+".mja"))
		if err != nil {
			return err
		}

		err = a.Save(w)
		close()
		if err != nil {
			return err
		}
	}
	return nil
}

// makeWriter creates an output writer and a cleanup function for it.
func makeWriter(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	dir, _ := filepath.Split(path)
	if len(dir) > 0 {
		if err := os.MkdirAll(dir, 0744); err != nil {
			return nil, nil, err
		}
	}

	fd, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}

	return fd, func() { fd.Close() }, nil
}
