package dsl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadLexSpecOrderedRules(t *testing.T) {
	data := []byte(`
skip_whitespace: true
rules:
  - name: IF
    pattern: "if"
  - name: ID
    pattern: "[a-zA-Z_][a-zA-Z0-9_]*"
`)
	spec, err := LoadLexSpec(data)
	require.NoError(t, err)
	require.True(t, spec.SkipWhitespace)
	require.Len(t, spec.Rules, 2)
	require.Equal(t, "IF", spec.Rules[0].Name)
	require.Equal(t, 0, spec.Rules[0].Priority)
	require.Equal(t, "ID", spec.Rules[1].Name)
	require.Equal(t, 1, spec.Rules[1].Priority)
}

func TestLoadLexSpecKeepsDuplicateNamedRules(t *testing.T) {
	data := []byte(`
skip_whitespace: false
rules:
  - name: FLOAT
    pattern: "\\d+\\.\\d+"
  - name: INT
    pattern: "\\d+"
  - name: FLOAT
    pattern: "\\d+f"
`)
	spec, err := LoadLexSpec(data)
	require.NoError(t, err)
	require.Len(t, spec.Rules, 3)
	require.Equal(t, "FLOAT", spec.Rules[0].Name)
	require.Equal(t, 0, spec.Rules[0].Priority)
	require.Equal(t, "INT", spec.Rules[1].Name)
	require.Equal(t, 1, spec.Rules[1].Priority)
	require.Equal(t, "FLOAT", spec.Rules[2].Name)
	require.Equal(t, `\d+f`, spec.Rules[2].Pattern)
	require.Equal(t, 2, spec.Rules[2].Priority)
}

func TestLoadLexSpecRejectsNoRules(t *testing.T) {
	_, err := LoadLexSpec([]byte("skip_whitespace: false\nrules: []\n"))
	require.Error(t, err)
}
