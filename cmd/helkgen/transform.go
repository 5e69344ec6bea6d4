package main

import (
	"fmt"
	"os"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"

	"github.com/helkgen/helkgen/internal/dsl"
	"github.com/helkgen/helkgen/internal/transform"
)

// transformOptions configures the optional grammar-rewriting
// subcommand. The two transforms are never invoked by
// internal/generator.Generate, only here and from tests.
type transformOptions struct {
	Grammar       string
	Out           string
	LeftRecursion bool
	LeftFactor    bool
}

func parseTransformFlags() *transformOptions {
	opts := &transformOptions{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`helkgen transform applies left-recursion elimination and/or left-factoring to a grammar DSL file and prints the rewritten grammar.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.Grammar, "grammar", "g", "", "path to the grammar DSL file to rewrite"),
	)
	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&opts.Out, "out", "o", "", "output path for the rewritten grammar (default: stdout)"),
	)
	flagSet.CreateGroup("transforms", "Transforms",
		flagSet.BoolVarP(&opts.LeftRecursion, "left-recursion", "lr", false, "eliminate left recursion"),
		flagSet.BoolVarP(&opts.LeftFactor, "left-factor", "lf", false, "left-factor common prefixes"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("could not parse flags: %s", err)
	}
	if opts.Grammar == "" {
		gologger.Fatal().Msgf("-grammar is required")
	}
	if !opts.LeftRecursion && !opts.LeftFactor {
		gologger.Fatal().Msgf("at least one of -left-recursion or -left-factor must be set")
	}
	return opts
}

func runTransform() {
	opts := parseTransformFlags()

	data, err := os.ReadFile(opts.Grammar)
	if err != nil {
		gologger.Error().Msgf("reading grammar: %v", err)
		os.Exit(1)
	}

	g, err := dsl.ParseGrammar(string(data))
	if err != nil {
		gologger.Error().Msgf("parsing grammar: %v", err)
		os.Exit(1)
	}

	if opts.LeftRecursion {
		g = transform.EliminateLeftRecursion(g)
		gologger.Info().Msgf("eliminated left recursion: %d non-terminal(s)", len(g.NonTerminals))
	}
	if opts.LeftFactor {
		g = transform.LeftFactor(g)
		gologger.Info().Msgf("left-factored: %d non-terminal(s)", len(g.NonTerminals))
	}

	out := dsl.FormatGrammar(g)
	if opts.Out == "" {
		fmt.Print(out)
		return
	}
	if err := os.WriteFile(opts.Out, []byte(out), 0o644); err != nil {
		gologger.Error().Msgf("writing output: %v", err)
		os.Exit(1)
	}
}
