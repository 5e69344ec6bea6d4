package ll1

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/helkgen/helkgen/internal/dsl"
	"github.com/helkgen/helkgen/internal/grammar"
)

// arithmeticGrammar is the classic LL(1) expression grammar:
//
//	E  -> T E'
//	E' -> + T E' | ε
//	T  -> F T'
//	T' -> * F T' | ε
//	F  -> ( E ) | number
func arithmeticGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	g, err := dsl.ParseGrammar(`
E : T Eprime @
Eprime : + T Eprime | epsilon @
T : F Tprime @
Tprime : * F Tprime | epsilon @
F : ( E ) | number @
`)
	require.NoError(t, err)
	return g
}

func TestComputeFirstArithmeticGrammar(t *testing.T) {
	g := arithmeticGrammar(t)
	first := ComputeFirst(g)
	require.ElementsMatch(t, []string{"(", "number"}, first["E"].Sorted())
	require.ElementsMatch(t, []string{"+", grammar.Epsilon}, first["Eprime"].Sorted())
}

func TestComputeFollowArithmeticGrammar(t *testing.T) {
	g := arithmeticGrammar(t)
	first := ComputeFirst(g)
	follow := ComputeFollow(g, first)
	require.ElementsMatch(t, []string{")", EndMarker}, follow["E"].Sorted())
	require.ElementsMatch(t, []string{")", EndMarker}, follow["Eprime"].Sorted())
}

func TestBuildTableArithmeticGrammarSucceeds(t *testing.T) {
	g := arithmeticGrammar(t)
	table, err := BuildTable(g)
	require.NoError(t, err)
	require.NotEmpty(t, table.Entries)

	prod, ok := table.Entries[TableKey{NonTerminal: "F", Terminal: "number"}]
	require.True(t, ok)
	require.Equal(t, grammar.Production{"number"}, prod)
}

func TestBuildTableDetectsConflict(t *testing.T) {
	// A -> a B | a C, unfactored: both alternatives start with the
	// same terminal, so table[A, a] would be written twice.
	g, err := dsl.ParseGrammar(`
A : a B | a C @
B : b @
C : c @
`)
	require.NoError(t, err)

	_, err = BuildTable(g)
	require.Error(t, err)
	var conflict *Conflict
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "A", conflict.NonTerminal)
	require.Equal(t, "a", conflict.Terminal)
}

func TestSyncSetIncludesEndMarker(t *testing.T) {
	g := arithmeticGrammar(t)
	table, err := BuildTable(g)
	require.NoError(t, err)
	require.Contains(t, table.SyncSet("E"), EndMarker)
}
