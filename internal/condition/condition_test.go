package condition

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLiteralExpand(t *testing.T) {
	require.Equal(t, []byte{'a'}, Literal{Byte: 'a'}.Expand())
}

func TestSetExpand(t *testing.T) {
	s := Set{Bytes: []byte("ace")}
	require.Equal(t, []byte("ace"), s.Expand())
}

func TestSetExpandNegated(t *testing.T) {
	s := Set{Bytes: []byte{'a'}, Negated: true}
	got := s.Expand()
	require.Len(t, got, MaxByte) // every byte 0..127 except 'a'
	for _, b := range got {
		require.NotEqual(t, byte('a'), b)
	}
}

func TestWildcardExcludesNewline(t *testing.T) {
	got := Wildcard{}.Expand()
	for _, b := range got {
		require.NotEqual(t, byte('\n'), b)
	}
	require.Len(t, got, MaxByte) // 128 bytes minus '\n'
}

func TestClassDigit(t *testing.T) {
	got := Class{Kind: ClassDigit}.Expand()
	require.Equal(t, []byte("0123456789"), got)
}

func TestClassSpaceIncludesFormFeedAndVTab(t *testing.T) {
	got := Class{Kind: ClassSpace}.Expand()
	require.Contains(t, got, byte('\f'))
	require.Contains(t, got, byte('\v'))
}

func TestClassWordIncludesUnderscore(t *testing.T) {
	got := Class{Kind: ClassWord}.Expand()
	require.Contains(t, got, byte('_'))
}
