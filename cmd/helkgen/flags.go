package main

import (
	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
)

// generateOptions is populated by parseGenerateFlags, one CreateGroup
// per concern.
type generateOptions struct {
	LexSpec   string
	Grammar   string
	Out       string
	EmitTable bool
	Debug     bool
}

// parseGenerateFlags builds the default subcommand's flag set:
// -lexspec and -grammar are required, -out defaults to the current
// directory, -emit-table and -debug are boolean switches.
func parseGenerateFlags() *generateOptions {
	opts := &generateOptions{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`helkgen generates a standalone C tokenizer and LL(1) parser from a lexer spec and a grammar DSL file.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.LexSpec, "lexspec", "l", "", "path to the YAML lexer spec file"),
		flagSet.StringVarP(&opts.Grammar, "grammar", "g", "", "path to the grammar DSL file"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&opts.Out, "out", "o", ".", "output directory for generated C sources"),
		flagSet.BoolVarP(&opts.EmitTable, "emit-table", "et", false, "print the LL(1) parsing table to stdout and exit, instead of emitting C sources"),
		flagSet.BoolVar(&opts.Debug, "debug", false, "raise log verbosity to debug level"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("could not parse flags: %s", err)
	}

	if opts.LexSpec == "" {
		gologger.Fatal().Msgf("-lexspec is required")
	}
	if opts.Grammar == "" {
		gologger.Fatal().Msgf("-grammar is required")
	}

	return opts
}
