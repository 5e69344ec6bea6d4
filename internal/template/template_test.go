package template

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLexerSourceSplicesWhitespaceSkipBlock(t *testing.T) {
	withSkip := LexerSource(true)
	require.Contains(t, withSkip, "advance_pos(cursor, 1);")

	withoutSkip := LexerSource(false)
	require.NotContains(t, withoutSkip, "advance_pos(cursor, 1);")
}

func TestParserRuntimeSourceFragmentNamesProgram(t *testing.T) {
	source := ParserRuntimeSourceFragment("mygen")
	require.Contains(t, source, "mygen")
}

func TestLexerHeaderIsStable(t *testing.T) {
	require.Contains(t, LexerHeader(), "next_token")
}
