package transform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/helkgen/helkgen/internal/dsl"
	"github.com/helkgen/helkgen/internal/grammar"
	"github.com/helkgen/helkgen/internal/ll1"
)

func TestEliminateLeftRecursionClassicCase(t *testing.T) {
	// A -> A a | b  becomes  A -> b ATail ; ATail -> a ATail | ε
	g, err := dsl.ParseGrammar(`A : A a | b @`)
	require.NoError(t, err)

	out := transform(t, g)
	require.Len(t, out.Productions["A"], 1)
	require.Equal(t, grammar.Production{"b", "ATail"}, out.Productions["A"][0])
	require.ElementsMatch(t, out.Productions["ATail"], []grammar.Production{
		{"a", "ATail"},
		{grammar.Epsilon},
	})
}

func transform(t *testing.T, g *grammar.Grammar) *grammar.Grammar {
	t.Helper()
	return EliminateLeftRecursion(g)
}

func TestEliminateLeftRecursionProducesLL1Table(t *testing.T) {
	g, err := dsl.ParseGrammar(`A : A a | b @`)
	require.NoError(t, err)
	out := EliminateLeftRecursion(g)
	_, err = ll1.BuildTable(out)
	require.NoError(t, err)
}

func TestEliminateLeftRecursionNoOpWhenAlreadyNonLeftRecursive(t *testing.T) {
	g, err := dsl.ParseGrammar(`A : b a @`)
	require.NoError(t, err)
	out := EliminateLeftRecursion(g)
	require.Equal(t, g.Productions["A"], out.Productions["A"])
	require.Equal(t, g.NonTerminals, out.NonTerminals)
}

func TestLeftFactorExtractsCommonPrefix(t *testing.T) {
	g, err := dsl.ParseGrammar(`A : a B | a C @
B : b @
C : c @`)
	require.NoError(t, err)

	out := LeftFactor(g)
	require.Len(t, out.Productions["A"], 1)
	prefix := out.Productions["A"][0]
	require.Equal(t, "a", prefix[0])
	tail := prefix[1]

	require.ElementsMatch(t, out.Productions[tail], []grammar.Production{
		{"B"}, {"C"},
	})
}

func TestLeftFactorIsIdempotent(t *testing.T) {
	g, err := dsl.ParseGrammar(`A : a B | a C @
B : b @
C : c @`)
	require.NoError(t, err)

	once := LeftFactor(g)
	twice := LeftFactor(once)
	require.Equal(t, once.Productions, twice.Productions)
	require.Equal(t, once.NonTerminals, twice.NonTerminals)
}

func TestLeftFactorEmptySuffixBecomesEpsilon(t *testing.T) {
	g, err := dsl.ParseGrammar(`A : a b | a @`)
	require.NoError(t, err)

	out := LeftFactor(g)
	tail := out.Productions["A"][0][1]
	require.ElementsMatch(t, out.Productions[tail], []grammar.Production{
		{"b"}, {grammar.Epsilon},
	})
}
