package dsl

import (
	"fmt"
	"strings"

	"github.com/helkgen/helkgen/internal/grammar"
)

// SyntaxError reports grammar DSL text that could not be parsed.
// Carries the offending rule text.
type SyntaxError struct {
	Rule string
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("grammar syntax error in rule %q: %s", e.Rule, e.Msg)
}

// ParseGrammar parses the textual grammar DSL: strip '#' line
// comments, split on '@' (rule terminator), split each rule on the
// first ':' into LHS/RHS, split RHS on '|' into alternatives, split
// each alternative on the first '$' into symbols/action-text. 'ε' or
// 'epsilon' denotes the empty production.
func ParseGrammar(text string) (*grammar.Grammar, error) {
	text = stripComments(text)

	g := &grammar.Grammar{
		Productions: make(map[string][]grammar.Production),
		Actions:     make(grammar.ActionMap),
	}

	for _, rule := range strings.Split(text, "@") {
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}

		colon := strings.Index(rule, ":")
		if colon < 0 {
			return nil, &SyntaxError{Rule: rule, Msg: "missing ':' separating LHS from productions"}
		}
		lhs := strings.TrimSpace(rule[:colon])
		rhs := strings.TrimSpace(rule[colon+1:])
		if lhs == "" {
			return nil, &SyntaxError{Rule: rule, Msg: "empty non-terminal name"}
		}

		if _, ok := g.Productions[lhs]; !ok {
			g.Productions[lhs] = nil
			g.NonTerminals = append(g.NonTerminals, lhs)
			if g.StartSymbol == "" {
				g.StartSymbol = lhs
			}
		}

		for _, alt := range strings.Split(rhs, "|") {
			alt = strings.TrimSpace(alt)
			if alt == "" {
				return nil, &SyntaxError{Rule: rule, Msg: "empty alternative"}
			}

			var symbolsText, actionText string
			if dollar := strings.Index(alt, "$"); dollar >= 0 {
				symbolsText = strings.TrimSpace(alt[:dollar])
				actionText = alt[dollar+1:]
			} else {
				symbolsText = alt
			}

			var prod grammar.Production
			if symbolsText == "ε" || symbolsText == "epsilon" {
				prod = grammar.Production{grammar.Epsilon}
			} else {
				prod = grammar.Production(strings.Fields(symbolsText))
			}

			g.Productions[lhs] = append(g.Productions[lhs], prod)
			if lines := dedentLines(actionText); len(lines) > 0 {
				g.Actions[grammar.ActionKey{NonTerminal: lhs, ProdKey: prod.Key()}] = lines
			}
		}
	}

	if g.StartSymbol == "" {
		return nil, &SyntaxError{Rule: text, Msg: "grammar defines no rules"}
	}
	return g, nil
}

// stripComments removes '#'-to-end-of-line comments before the '@'
// split runs, so a comment can appear on its own line anywhere in the
// DSL text.
func stripComments(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if idx := strings.Index(line, "#"); idx >= 0 {
			lines[i] = line[:idx]
		}
	}
	return strings.Join(lines, "\n")
}

// dedentLines strips a common leading-whitespace prefix from action
// text and splits it into non-empty lines.
func dedentLines(text string) []string {
	rawLines := strings.Split(text, "\n")

	minIndent := -1
	for _, l := range rawLines {
		trimmed := strings.TrimLeft(l, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(l) - len(trimmed)
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}

	var out []string
	for _, l := range rawLines {
		if minIndent > 0 && len(l) >= minIndent {
			l = l[minIndent:]
		}
		l = strings.TrimRight(l, " \t\r")
		if l == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}
