package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/helkgen/helkgen/internal/dsl"
	"github.com/helkgen/helkgen/internal/ll1"
)

func TestEmitParserSourceOneFunctionPerNonTerminal(t *testing.T) {
	g, err := dsl.ParseGrammar(`
E : T Eprime @
Eprime : + T Eprime | epsilon @
T : number @
`)
	require.NoError(t, err)
	table, err := ll1.BuildTable(g)
	require.NoError(t, err)

	source := EmitParserSource(g, table, "testgen")
	require.Contains(t, source, "ASTNode* E(void) {")
	require.Contains(t, source, "ASTNode* Eprime(void) {")
	require.Contains(t, source, "ASTNode* T(void) {")
	require.Contains(t, source, "ASTNode* parse(void) {")
	require.Contains(t, source, "syntax_error(\"unexpected token\");")
	require.Contains(t, source, "recover_from_error(sync_set, sync_size);")
	require.Contains(t, source, "Token match_token(TokenType expected) {")
	require.Contains(t, source, "testgen")
}

func TestEmitParserSourceInjectsActionsVerbatim(t *testing.T) {
	g, err := dsl.ParseGrammar(`
A : b $
      node = make_leaf("b");
@
`)
	require.NoError(t, err)
	table, err := ll1.BuildTable(g)
	require.NoError(t, err)

	source := EmitParserSource(g, table, "testgen")
	require.Contains(t, source, `node = make_leaf("b");`)
}

func TestEmitParserHeaderDeclaresASTNode(t *testing.T) {
	header := EmitParserHeader()
	require.Contains(t, header, "typedef struct ASTNode {")
	require.Contains(t, header, "ASTNode* parse(void);")
	require.Contains(t, header, "Token match_token(TokenType expected);")
}
