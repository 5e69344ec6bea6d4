// Package template emits the static, grammar-independent C
// scaffolding that sits outside the generator's algorithmic core but
// is still part of a buildable output: the stream-level lexer driver
// and the parser's runtime helper fragment (match_token, syntax_error,
// recover_from_error), merged by internal/codegen into parser.h/
// parser.c rather than shipped as standalone files.
package template

import (
	_ "embed"

	"github.com/valyala/fasttemplate"
)

//go:embed assets/lexer_h.tmpl
var lexerHeaderTmpl string

//go:embed assets/lexer_c.tmpl
var lexerSourceTmpl string

//go:embed assets/parser_runtime_h_fragment.tmpl
var parserRuntimeHeaderFragmentTmpl string

//go:embed assets/parser_runtime_c_fragment.tmpl
var parserRuntimeSourceFragmentTmpl string

// skipWhitespaceBlock is spliced into lexer_c.tmpl's
// {{skip_whitespace_block}} placeholder when the lexer spec requests
// whitespace skipping; otherwise the placeholder is removed entirely.
const skipWhitespaceBlock = `    while (*cursor == ' ' || *cursor == '\t' || *cursor == '\n' || *cursor == '\r') {
        advance_pos(cursor, 1);
        cursor++;
    }
`

func expand(tmpl string, tags map[string]interface{}) string {
	return fasttemplate.ExecuteString(tmpl, "{{", "}}", tags)
}

// LexerHeader renders lexer.h. It takes no grammar-dependent
// parameters - included for symmetry with LexerSource and future
// placeholders.
func LexerHeader() string {
	return lexerHeaderTmpl
}

// LexerSource renders lexer.c, splicing in the whitespace-skip loop
// only when the lexer spec's SkipWhitespace flag is set.
func LexerSource(skipWhitespace bool) string {
	block := ""
	if skipWhitespace {
		block = skipWhitespaceBlock
	}
	return expand(lexerSourceTmpl, map[string]interface{}{
		"skip_whitespace_block": block,
	})
}

// ParserRuntimeHeaderFragment renders the match_token/syntax_error/
// recover_from_error declarations merged into parser.h.
func ParserRuntimeHeaderFragment() string {
	return parserRuntimeHeaderFragmentTmpl
}

// ParserRuntimeSourceFragment renders the match_token/syntax_error/
// recover_from_error bodies merged into parser.c, naming programName
// in the syntax-error diagnostic.
func ParserRuntimeSourceFragment(programName string) string {
	return expand(parserRuntimeSourceFragmentTmpl, map[string]interface{}{
		"program_name": programName,
	})
}
