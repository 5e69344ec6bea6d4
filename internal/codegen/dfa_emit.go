package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/helkgen/helkgen/internal/automata"
	"github.com/helkgen/helkgen/internal/grammar"
)

// EmitDFAHeader renders regex_dfa.h: the token-type enumeration (one
// entry per distinct rule name, upper-cased and TOKEN_ prefixed, plus
// TOKEN_EOF and TOKEN_ERROR) and the match_pattern entry point
// declaration. Rules sharing a name render one enumerator - repeating
// it would not compile as C.
func EmitDFAHeader(spec *grammar.LexSpec) string {
	var b strings.Builder
	b.WriteString("#ifndef REGEX_DFA_H\n#define REGEX_DFA_H\n\n")
	b.WriteString("typedef enum {\n")
	seen := make(map[string]bool, len(spec.Rules))
	for _, rule := range spec.Rules {
		name := strings.ToUpper(rule.Name)
		if seen[name] {
			continue
		}
		seen[name] = true
		fmt.Fprintf(&b, "    TOKEN_%s,\n", name)
	}
	b.WriteString("    TOKEN_EOF,\n")
	b.WriteString("    TOKEN_ERROR\n")
	b.WriteString("} TokenType;\n\n")
	b.WriteString("const char* match_pattern(const char* input, TokenType* out);\n\n")
	b.WriteString("#endif\n")
	return b.String()
}

// transitionGroup is one outgoing edge from a DFA state, after
// grouping bytes that share a destination.
type transitionGroup struct {
	target automata.DFAStateID
	bytes  []byte
}

func groupTransitions(s *automata.DFAState) []transitionGroup {
	byTarget := make(map[automata.DFAStateID][]byte)
	for b, target := range s.Transitions {
		byTarget[target] = append(byTarget[target], b)
	}
	var groups []transitionGroup
	for target, bytes := range byTarget {
		groups = append(groups, transitionGroup{target: target, bytes: bytes})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].target < groups[j].target })
	return groups
}

// EmitDFASource renders regex_dfa.c: a goto-threaded dispatch with one
// label per DFA state (states are visited in the deterministic order
// automata.Convert already sorted them into), range-compressed
// character tests, and the last_accept/last_token longest-match cache.
func EmitDFASource(spec *grammar.LexSpec, dfa *automata.DFA) string {
	var b strings.Builder
	b.WriteString("#include <stddef.h>\n#include \"regex_dfa.h\"\n\n")
	b.WriteString("const char* match_pattern(const char* input, TokenType* out) {\n")
	b.WriteString("    const char* current = input;\n")
	b.WriteString("    const char* last_accept = NULL;\n")
	b.WriteString("    TokenType last_token = TOKEN_ERROR;\n")
	b.WriteString("    char c;\n\n")
	fmt.Fprintf(&b, "    goto STATE_%d;\n\n", dfa.Start)

	for _, s := range dfa.States {
		fmt.Fprintf(&b, "STATE_%d:\n", s.ID)
		if s.Accepting {
			b.WriteString("    last_accept = current;\n")
			fmt.Fprintf(&b, "    last_token = TOKEN_%s;\n", strings.ToUpper(s.TokenType))
		}
		b.WriteString("    if (*current == '\\0') {\n")
		b.WriteString("        if (last_accept != NULL) { *out = last_token; return current; }\n")
		b.WriteString("        *out = TOKEN_ERROR; return current;\n")
		b.WriteString("    }\n")
		b.WriteString("    c = *current++;\n")

		groups := groupTransitions(s)
		if len(groups) == 0 {
			b.WriteString("    goto DEAD;\n\n")
			continue
		}
		for i, g := range groups {
			ranges := compressRanges(g.bytes)
			keyword := "if"
			if i > 0 {
				keyword = "else if"
			}
			fmt.Fprintf(&b, "    %s (%s) goto STATE_%d;\n", keyword, predicateForRanges("c", ranges), g.target)
		}
		b.WriteString("    else goto DEAD;\n\n")
	}

	b.WriteString("DEAD:\n")
	b.WriteString("    if (last_accept != NULL) { *out = last_token; return last_accept; }\n")
	b.WriteString("    *out = TOKEN_ERROR;\n")
	b.WriteString("    return NULL;\n")
	b.WriteString("}\n")
	return b.String()
}
