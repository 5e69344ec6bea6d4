package dsl

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/helkgen/helkgen/internal/grammar"
)

func TestParseGrammarStartSymbolIsFirstLHS(t *testing.T) {
	g, err := ParseGrammar(`
E : T Eprime @
Eprime : + T Eprime | epsilon @
T : number @
`)
	require.NoError(t, err)
	require.Equal(t, "E", g.StartSymbol)
	require.Equal(t, []string{"E", "Eprime", "T"}, g.NonTerminals)
	require.Equal(t, []grammar.Production{{grammar.Epsilon}}, g.Productions["Eprime"][1:])
}

func TestParseGrammarAlternativesAndTerminals(t *testing.T) {
	g, err := ParseGrammar(`A : a B | b @
B : c @`)
	require.NoError(t, err)
	require.Len(t, g.Productions["A"], 2)
	require.ElementsMatch(t, []string{"a", "b", "c"}, g.Terminals())
}

func TestParseGrammarBindsActionText(t *testing.T) {
	g, err := ParseGrammar(`
A : b $
      result = make_node("b");
      return result;
@
`)
	require.NoError(t, err)
	prod := g.Productions["A"][0]
	lines := g.Action("A", prod)
	require.Equal(t, []string{`result = make_node("b");`, "return result;"}, lines)
}

func TestParseGrammarEpsilonSentinel(t *testing.T) {
	g, err := ParseGrammar(`A : ε | a @`)
	require.NoError(t, err)
	require.Equal(t, grammar.Production{grammar.Epsilon}, g.Productions["A"][0])
}

func TestParseGrammarIgnoresComments(t *testing.T) {
	g, err := ParseGrammar(`
# this is a comment
A : a @ # trailing comment
`)
	require.NoError(t, err)
	require.Equal(t, grammar.Production{"a"}, g.Productions["A"][0])
}

func TestParseGrammarMissingColonIsSyntaxError(t *testing.T) {
	_, err := ParseGrammar(`A a @`)
	require.Error(t, err)
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
}

func TestParseGrammarEmptyAlternativeIsSyntaxError(t *testing.T) {
	_, err := ParseGrammar(`A : a | @`)
	require.Error(t, err)
}

func TestFormatGrammarRoundTrips(t *testing.T) {
	g, err := ParseGrammar(`A : a B | epsilon @
B : b @`)
	require.NoError(t, err)

	reparsed, err := ParseGrammar(FormatGrammar(g))
	require.NoError(t, err)
	require.Equal(t, g.StartSymbol, reparsed.StartSymbol)
	require.Equal(t, g.NonTerminals, reparsed.NonTerminals)
	require.Equal(t, g.Productions, reparsed.Productions)
}
