// Command helkgen reads a lexer spec and a grammar spec from
// caller-supplied paths and emits the generated C sources into an
// output directory.
package main

import (
	"os"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"

	"github.com/helkgen/helkgen/internal/generator"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "transform" {
		// goflags parses the global os.Args, so the subcommand word
		// has to come out before the flag set sees it.
		os.Args = append(os.Args[:1], os.Args[2:]...)
		runTransform()
		return
	}
	runGenerate()
}

func runGenerate() {
	opts := parseGenerateFlags()

	if opts.Debug {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelDebug)
	}

	cfg := generator.Config{
		LexSpecPath:  opts.LexSpec,
		GrammarPath:  opts.Grammar,
		OutDir:       opts.Out,
		ProgramName:  "helkgen",
		PrintLL1Only: opts.EmitTable,
	}

	if err := generator.Generate(cfg); err != nil {
		gologger.Error().Msgf("generation failed: %v", err)
		os.Exit(1)
	}

	if !opts.EmitTable {
		gologger.Info().Msgf("wrote generated sources to %s", opts.Out)
	}
}
