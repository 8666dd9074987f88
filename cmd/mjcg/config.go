package main

import (
	"os"

	"github.com/ComedicChimera/olive"
	"github.com/hexaflex/mjcg/logging"
)

// Config defines program configuration.
type Config struct {
	Command string // Selected subcommand.
	Input   string // Unit description file to build.
	Output  string // Path to store output in. Empty means stdout.
	Target  string // Target syntax override. Empty keeps the file's setting.
	Encode  bool   // Write encoded archives instead of text.
	Dump    bool   // Dump the structured instruction stream.
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
func parseArgs() *Config {
	cli := olive.NewCLI("mjcg", "mjcg generates three-address code for MiniJava compilation units", true)

	buildCmd := cli.AddSubcommand("build", "generate code for a unit description file", true)
	buildCmd.AddPrimaryArg("unit-file", "the TOML file describing the compilation units", true)
	buildCmd.AddSelectorArg("target", "t", "the target syntax", false, []string{"minijava", "dis"})
	buildCmd.AddStringArg("out", "o", "the output file, or directory when encoding", false)
	buildCmd.AddFlag("encode", "e", "write encoded archives instead of text")
	buildCmd.AddFlag("dump", "d", "dump the structured instruction stream")

	cli.AddSubcommand("version", "print the mjcg version", false)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		logging.PrintErrorMessage("CLI Usage Error", err)
		os.Exit(1)
	}

	var c Config

	name, sub, ok := result.Subcommand()
	if !ok {
		logging.PrintErrorMessage("CLI Usage Error", errMissingCommand)
		os.Exit(1)
	}
	c.Command = name

	if name != "build" {
		return &c
	}

	c.Input, _ = sub.PrimaryArg()

	if v, ok := sub.Arguments["target"]; ok {
		c.Target = v.(string)
	}

	if v, ok := sub.Arguments["out"]; ok {
		c.Output = v.(string)
	}

	c.Encode = sub.HasFlag("encode")
	c.Dump = sub.HasFlag("dump")
	return &c
}
