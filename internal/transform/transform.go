// Package transform implements two standard grammar rewrites offered
// as opt-in tools: left-recursion elimination and left factoring.
// Neither is invoked by internal/generator's main pipeline - rewriting
// productions would orphan user action bindings keyed by the original
// production tuples, so a caller must ask for these explicitly.
package transform

import (
	"github.com/helkgen/helkgen/internal/grammar"
)

// EliminateLeftRecursion applies the standard Dragon-book algorithm
// (§4.3.3): for non-terminals in their declared order A1..An, inline
// earlier non-terminals appearing as leftmost symbols, then remove any
// remaining immediate left recursion on Ai by introducing AiTail.
func EliminateLeftRecursion(g *grammar.Grammar) *grammar.Grammar {
	out := cloneGrammar(g)
	order := append([]string(nil), g.NonTerminals...)

	for i, a := range order {
		var substituted []grammar.Production
		for _, prod := range out.Productions[a] {
			if len(prod) > 0 && indexOf(order[:i], prod[0]) >= 0 {
				b := prod[0]
				for _, bProd := range out.Productions[b] {
					if isEpsilon(bProd) {
						substituted = append(substituted, append(grammar.Production{}, prod[1:]...))
					} else {
						merged := append(append(grammar.Production{}, bProd...), prod[1:]...)
						substituted = append(substituted, merged)
					}
				}
			} else {
				substituted = append(substituted, prod)
			}
		}
		out.Productions[a] = substituted

		var alpha, beta []grammar.Production
		for _, prod := range out.Productions[a] {
			if len(prod) > 0 && prod[0] == a {
				alpha = append(alpha, append(grammar.Production{}, prod[1:]...))
			} else {
				beta = append(beta, prod)
			}
		}

		if len(alpha) > 0 {
			tail := freshName(out, a)
			out.NonTerminals = append(out.NonTerminals, tail)

			newA := make([]grammar.Production, len(beta))
			for i, prod := range beta {
				newA[i] = append(append(grammar.Production{}, prod...), tail)
			}
			out.Productions[a] = newA

			newTail := make([]grammar.Production, 0, len(alpha)+1)
			for _, prod := range alpha {
				newTail = append(newTail, append(append(grammar.Production{}, prod...), tail))
			}
			newTail = append(newTail, grammar.Production{grammar.Epsilon})
			out.Productions[tail] = newTail
		}
	}

	return out
}

// LeftFactor groups each non-terminal's productions by leading symbol
// and, for any group of size >=2, keeps the group's longest common
// prefix followed by a fresh ATail non-terminal whose productions are
// the remaining suffixes, iterating until no group can be further
// factored. Idempotent: a
// second call on already-factored output is a no-op.
func LeftFactor(g *grammar.Grammar) *grammar.Grammar {
	out := cloneGrammar(g)

	changed := true
	for changed {
		changed = false
		for _, a := range append([]string(nil), out.NonTerminals...) {
			groups := make(map[string][]grammar.Production)
			var order []string
			for _, prod := range out.Productions[a] {
				key := ""
				if len(prod) > 0 {
					key = prod[0]
				}
				if _, ok := groups[key]; !ok {
					order = append(order, key)
				}
				groups[key] = append(groups[key], prod)
			}

			var newProds []grammar.Production
			for _, key := range order {
				prods := groups[key]
				if key != "" && len(prods) > 1 {
					changed = true
					tail := freshName(out, a)
					out.NonTerminals = append(out.NonTerminals, tail)

					prefixLen := len(prods[0])
					for _, prod := range prods[1:] {
						m := 0
						for m < prefixLen && m < len(prod) && prod[m] == prods[0][m] {
							m++
						}
						prefixLen = m
					}

					suffixes := make([]grammar.Production, len(prods))
					for i, prod := range prods {
						suffix := append(grammar.Production{}, prod[prefixLen:]...)
						if len(suffix) == 0 {
							suffix = grammar.Production{grammar.Epsilon}
						}
						suffixes[i] = suffix
					}
					out.Productions[tail] = suffixes
					prefix := append(grammar.Production{}, prods[0][:prefixLen]...)
					newProds = append(newProds, append(prefix, tail))
				} else {
					newProds = append(newProds, prods...)
				}
			}
			out.Productions[a] = newProds
		}
	}

	return out
}

func cloneGrammar(g *grammar.Grammar) *grammar.Grammar {
	out := &grammar.Grammar{
		StartSymbol:  g.StartSymbol,
		NonTerminals: append([]string(nil), g.NonTerminals...),
		Productions:  make(map[string][]grammar.Production, len(g.Productions)),
		Actions:      g.Actions,
	}
	for nt, prods := range g.Productions {
		out.Productions[nt] = append([]grammar.Production(nil), prods...)
	}
	return out
}

func isEpsilon(p grammar.Production) bool {
	return len(p) == 1 && p[0] == grammar.Epsilon
}

func indexOf(haystack []string, needle string) int {
	for i, s := range haystack {
		if s == needle {
			return i
		}
	}
	return -1
}

// freshName returns base+"Tail", repeating "Tail" until the result
// names no existing non-terminal.
func freshName(g *grammar.Grammar, base string) string {
	name := base + "Tail"
	for g.IsNonTerminal(name) {
		name = name + "Tail"
	}
	return name
}
