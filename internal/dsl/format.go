package dsl

import (
	"strings"

	"github.com/helkgen/helkgen/internal/grammar"
)

// FormatGrammar renders g back into the textual grammar DSL ParseGrammar
// accepts, one rule per non-terminal in declaration order. Used by the
// transform CLI subcommand so the output of EliminateLeftRecursion/
// LeftFactor round-trips through the same surface syntax the user
// wrote the grammar in.
func FormatGrammar(g *grammar.Grammar) string {
	var b strings.Builder
	for _, nt := range g.NonTerminals {
		b.WriteString(nt)
		b.WriteString(" : ")
		alts := make([]string, len(g.Productions[nt]))
		for i, prod := range g.Productions[nt] {
			alt := strings.Join(prod, " ")
			if lines := g.Action(nt, prod); len(lines) > 0 {
				alt += " $ " + strings.Join(lines, "\n")
			}
			alts[i] = alt
		}
		b.WriteString(strings.Join(alts, " | "))
		b.WriteString(" @\n")
	}
	return b.String()
}
