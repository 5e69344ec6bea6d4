package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/helkgen/helkgen/internal/grammar"
	"github.com/helkgen/helkgen/internal/ll1"
	"github.com/helkgen/helkgen/internal/template"
)

// astName is the emitted AST node type name.
const astName = "ASTNode"

// funcName maps a non-terminal name to a valid C identifier.
func funcName(nt string) string {
	r := strings.NewReplacer("-", "_", "+", "plus")
	return r.Replace(nt)
}

// EmitParserHeader renders parser.h: the ASTNode type, the parse()
// entry point declaration, and the match_token/syntax_error/
// recover_from_error runtime-helper declarations, all in one file.
func EmitParserHeader() string {
	var b strings.Builder
	b.WriteString("#ifndef PARSER_H\n#define PARSER_H\n\n")
	b.WriteString("#include \"lexer.h\"\n")
	b.WriteString("#include \"regex_dfa.h\"\n\n")
	fmt.Fprintf(&b, "typedef struct %s {\n", astName)
	b.WriteString("    int line;\n")
	b.WriteString("    int column;\n")
	b.WriteString("    const char* label;\n")
	fmt.Fprintf(&b, "    struct %s* children[8];\n", astName)
	b.WriteString("    int child_count;\n")
	fmt.Fprintf(&b, "} %s;\n\n", astName)
	fmt.Fprintf(&b, "%s* parse(void);\n\n", astName)
	b.WriteString(template.ParserRuntimeHeaderFragment())
	b.WriteString("\n#endif\n")
	return b.String()
}

// EmitParserSource renders parser.c: one function per non-terminal,
// each with a declared sync set, a switch dispatching on the lookahead
// token grouped by selected production, production-order action
// injection, and panic-mode recovery on the default case, followed by
// the match_token/syntax_error/recover_from_error runtime-helper
// bodies merged into this single file.
func EmitParserSource(g *grammar.Grammar, table *ll1.Table, programName string) string {
	var b strings.Builder
	b.WriteString("#include <stdio.h>\n")
	b.WriteString("#include <stdlib.h>\n")
	b.WriteString("#include \"parser.h\"\n\n")

	for _, nt := range g.NonTerminals {
		fmt.Fprintf(&b, "%s* %s(void);\n", astName, funcName(nt))
	}
	b.WriteString("\n")

	for _, nt := range g.NonTerminals {
		emitNonTerminalFunction(&b, g, table, nt)
	}

	emitMainParser(&b, g)
	b.WriteString("\n")
	b.WriteString(template.ParserRuntimeSourceFragment(programName))
	return b.String()
}

func emitNonTerminalFunction(b *strings.Builder, g *grammar.Grammar, table *ll1.Table, nt string) {
	fn := funcName(nt)
	fmt.Fprintf(b, "%s* %s(void) {\n", astName, fn)

	sync := table.SyncSet(nt)
	tokenEnums := make([]string, 0, len(sync))
	seen := make(map[string]bool)
	for _, t := range sync {
		var enum string
		if t == ll1.EndMarker {
			enum = "TOKEN_EOF"
		} else {
			enum = "TOKEN_" + strings.ToUpper(t)
		}
		if !seen[enum] {
			seen[enum] = true
			tokenEnums = append(tokenEnums, enum)
		}
	}
	fmt.Fprintf(b, "    TokenType sync_set[] = {%s};\n", strings.Join(tokenEnums, ", "))
	b.WriteString("    int sync_size = sizeof(sync_set) / sizeof(sync_set[0]);\n\n")
	fmt.Fprintf(b, "    %s* node = NULL;\n\n", astName)

	defined := make(map[string]bool)
	var declOrder []string
	for _, prod := range g.Productions[nt] {
		for _, sym := range prod {
			if sym == grammar.Epsilon || defined[sym] {
				continue
			}
			defined[sym] = true
			declOrder = append(declOrder, sym)
		}
	}
	for _, sym := range declOrder {
		if g.IsNonTerminal(sym) {
			fmt.Fprintf(b, "    %s* _%s;\n", astName, sym)
		} else {
			fmt.Fprintf(b, "    Token _%s;\n", sym)
		}
	}
	b.WriteString("\n")

	b.WriteString("    switch (current_token().type) {\n")

	type caseGroup struct {
		prod   grammar.Production
		tokens []string
	}
	groups := make(map[string]*caseGroup)
	var order []string
	for key, prod := range table.Entries {
		if key.NonTerminal != nt {
			continue
		}
		prodKey := prod.Key()
		cg, ok := groups[prodKey]
		if !ok {
			cg = &caseGroup{prod: prod}
			groups[prodKey] = cg
			order = append(order, prodKey)
		}
		enum := "TOKEN_EOF"
		if key.Terminal != ll1.EndMarker {
			enum = "TOKEN_" + strings.ToUpper(key.Terminal)
		}
		cg.tokens = append(cg.tokens, enum)
	}
	sort.Strings(order)

	for _, key := range order {
		cg := groups[key]
		sort.Strings(cg.tokens)
		seenTok := make(map[string]bool)
		for _, tok := range cg.tokens {
			if seenTok[tok] {
				continue
			}
			seenTok[tok] = true
			fmt.Fprintf(b, "        case %s:\n", tok)
		}
		fmt.Fprintf(b, "            /* production: %s */\n", strings.Join(cg.prod, " "))

		if len(cg.prod) == 1 && cg.prod[0] == grammar.Epsilon {
			for _, line := range g.Action(nt, cg.prod) {
				fmt.Fprintf(b, "            %s\n", line)
			}
			b.WriteString("            break;\n\n")
			continue
		}

		for _, sym := range cg.prod {
			if g.IsNonTerminal(sym) {
				fmt.Fprintf(b, "            _%s = %s();\n", sym, funcName(sym))
			} else {
				fmt.Fprintf(b, "            _%s = match_token(TOKEN_%s);\n", sym, strings.ToUpper(sym))
			}
		}
		for _, line := range g.Action(nt, cg.prod) {
			fmt.Fprintf(b, "            %s\n", line)
		}
		b.WriteString("            break;\n\n")
	}

	b.WriteString("        default:\n")
	b.WriteString("            syntax_error(\"unexpected token\");\n")
	b.WriteString("            recover_from_error(sync_set, sync_size);\n")
	b.WriteString("            break;\n")
	b.WriteString("    }\n")
	b.WriteString("    if (node != NULL && current_token().type != TOKEN_EOF) {\n")
	b.WriteString("        Token tok = current_token();\n")
	b.WriteString("        node->line = tok.line;\n")
	b.WriteString("        node->column = tok.column;\n")
	b.WriteString("    }\n")
	b.WriteString("    return node;\n")
	b.WriteString("}\n\n")
}

func emitMainParser(b *strings.Builder, g *grammar.Grammar) {
	start := funcName(g.StartSymbol)
	fmt.Fprintf(b, "%s* parse(void) {\n", astName)
	b.WriteString("    next_token();\n")
	fmt.Fprintf(b, "    %s* root = %s();\n", astName, start)
	b.WriteString("    if (current_token().type != TOKEN_EOF) {\n")
	b.WriteString("        syntax_error(\"expected end of input\");\n")
	b.WriteString("    }\n")
	b.WriteString("    return root;\n")
	b.WriteString("}\n")
}
