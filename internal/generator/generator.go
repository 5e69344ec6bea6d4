// Package generator wires the whole toolchain into one single-pass
// batch pipeline: load specs, build the LL(1) table half, build the
// DFA half, emit all six C files.
package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/projectdiscovery/gologger"
	fileutil "github.com/projectdiscovery/utils/file"

	"github.com/helkgen/helkgen/internal/automata"
	"github.com/helkgen/helkgen/internal/codegen"
	"github.com/helkgen/helkgen/internal/dsl"
	"github.com/helkgen/helkgen/internal/grammar"
	"github.com/helkgen/helkgen/internal/ll1"
	"github.com/helkgen/helkgen/internal/regexparse"
	"github.com/helkgen/helkgen/internal/template"
)

// Config names the generator's inputs and output directory.
type Config struct {
	LexSpecPath  string
	GrammarPath  string
	OutDir       string
	ProgramName  string // used in the emitted syntax_error() diagnostic prefix
	PrintLL1Only bool   // -emit-table debugging mode: print the table, write nothing
}

// Generate runs the full pipeline: load specs, build the LL(1) table,
// build the DFA, then emit the DFA half and the LL(1) parser half.
// Returns a typed error on the first failure - there is no
// partial-success outcome.
func Generate(cfg Config) error {
	lexSpec, err := loadLexSpec(cfg.LexSpecPath)
	if err != nil {
		return err
	}
	gologger.Info().Msgf("lexspec: loaded %d rule(s), skip_whitespace=%v", len(lexSpec.Rules), lexSpec.SkipWhitespace)

	gram, err := loadGrammar(cfg.GrammarPath)
	if err != nil {
		return err
	}
	gologger.Info().Msgf("grammar: loaded %d non-terminal(s), start=%s", len(gram.NonTerminals), gram.StartSymbol)

	table, err := ll1.BuildTable(gram)
	if err != nil {
		return fmt.Errorf("building LL(1) table: %w", err)
	}
	gologger.Info().Msgf("ll1: table has %d entries", len(table.Entries))

	if cfg.PrintLL1Only {
		printTable(gram, table)
		return nil
	}

	dfa, err := buildCombinedDFA(lexSpec)
	if err != nil {
		return err
	}
	if err := validateDFA(dfa); err != nil {
		return err
	}
	gologger.Info().Msgf("dfa: %d reachable state(s) after pruning", len(dfa.States))

	if err := fileutil.CreateFolder(cfg.OutDir); err != nil {
		return &IOFailure{Path: cfg.OutDir, Op: "create output directory", Err: err}
	}

	files := []struct {
		name     string
		contents string
	}{
		{"regex_dfa.h", codegen.EmitDFAHeader(lexSpec)},
		{"regex_dfa.c", codegen.EmitDFASource(lexSpec, dfa)},
		{"lexer.h", template.LexerHeader()},
		{"lexer.c", template.LexerSource(lexSpec.SkipWhitespace)},
		{"parser.h", codegen.EmitParserHeader()},
		{"parser.c", codegen.EmitParserSource(gram, table, cfg.ProgramName)},
	}
	for _, f := range files {
		if err := writeExclusive(filepath.Join(cfg.OutDir, f.name), f.contents); err != nil {
			return err
		}
		gologger.Verbose().Msgf("emit: wrote %s", f.name)
	}

	return nil
}

func loadLexSpec(path string) (*grammar.LexSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOFailure{Path: path, Op: "read lexer spec", Err: err}
	}
	spec, err := dsl.LoadLexSpec(data)
	if err != nil {
		return nil, &IOFailure{Path: path, Op: "parse lexer spec", Err: err}
	}
	return spec, nil
}

func loadGrammar(path string) (*grammar.Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOFailure{Path: path, Op: "read grammar spec", Err: err}
	}
	g, err := dsl.ParseGrammar(string(data))
	if err != nil {
		return nil, err
	}
	return g, nil
}

// buildCombinedDFA parses every rule's pattern, tags each rule's
// accepting state with its priority, unions the results under one
// start, and subset-constructs the DFA.
func buildCombinedDFA(spec *grammar.LexSpec) (*automata.DFA, error) {
	var ruleNFAs []*automata.NFA
	for _, rule := range spec.Rules {
		n, err := regexparse.Parse(rule.Pattern)
		if err != nil {
			return nil, err
		}
		end := n.State(n.End)
		end.Accept = automata.AcceptInfo{TokenType: rule.Name, Priority: rule.Priority}
		ruleNFAs = append(ruleNFAs, n)
	}
	combined := automata.Combine(ruleNFAs)
	return automata.Convert(combined), nil
}

// validateDFA checks the guarantees conversion is supposed to leave
// behind before any code is emitted from the result: every accepting
// state carries a token tag, and no retained transition targets a
// pruned state.
func validateDFA(dfa *automata.DFA) error {
	retained := make(map[automata.DFAStateID]bool, len(dfa.States))
	for _, s := range dfa.States {
		retained[s.ID] = true
	}
	for _, s := range dfa.States {
		if s.Accepting && s.TokenType == "" {
			return &InternalInvariant{Msg: fmt.Sprintf("accepting DFA state %d has no token tag", s.ID)}
		}
		for b, target := range s.Transitions {
			if !retained[target] {
				return &InternalInvariant{Msg: fmt.Sprintf("DFA state %d transitions on %q to pruned state %d", s.ID, b, target)}
			}
		}
	}
	return nil
}

// writeExclusive opens path under an exclusive, truncating create,
// writes contents, and closes it before returning, so one output file
// is fully closed before the next one opens.
func writeExclusive(path, contents string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return &IOFailure{Path: path, Op: "open output file", Err: err}
	}
	defer f.Close()
	if _, err := f.WriteString(contents); err != nil {
		return &IOFailure{Path: path, Op: "write output file", Err: err}
	}
	return nil
}

func printTable(g *grammar.Grammar, table *ll1.Table) {
	for _, nt := range g.NonTerminals {
		for _, t := range table.Follow[nt].Sorted() {
			gologger.Silent().Msgf("FOLLOW(%s) includes %s", nt, t)
		}
	}
	for key, prod := range table.Entries {
		gologger.Silent().Msgf("table[%s, %s] = %v", key.NonTerminal, key.Terminal, []string(prod))
	}
}
