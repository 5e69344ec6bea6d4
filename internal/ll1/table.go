// Package ll1 computes FIRST/FOLLOW sets and builds the LL(1) parsing
// table, rejecting grammars that are not LL(1).
package ll1

import (
	"fmt"
	"sort"

	"github.com/helkgen/helkgen/internal/grammar"
)

// EndMarker is the end-of-input terminal, "$" in the Dragon-book
// tradition.
const EndMarker = "$"

// SymbolSet is a small unordered set of terminal symbols; Sorted gives
// a deterministic order.
type SymbolSet map[string]struct{}

func newSet(syms ...string) SymbolSet {
	s := make(SymbolSet, len(syms))
	for _, sym := range syms {
		s[sym] = struct{}{}
	}
	return s
}

func (s SymbolSet) has(sym string) bool { _, ok := s[sym]; return ok }

func (s SymbolSet) addAll(other SymbolSet) (changed bool) {
	for sym := range other {
		if !s.has(sym) {
			s[sym] = struct{}{}
			changed = true
		}
	}
	return changed
}

// Sorted returns the set's members in ascending order, for
// deterministic emission.
func (s SymbolSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for sym := range s {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// ComputeFirst computes FIRST(X) for every terminal, Epsilon, and
// non-terminal of g by monotone fixpoint over set union.
func ComputeFirst(g *grammar.Grammar) map[string]SymbolSet {
	first := make(map[string]SymbolSet)
	for _, t := range g.Terminals() {
		first[t] = newSet(t)
	}
	first[grammar.Epsilon] = newSet(grammar.Epsilon)
	for _, nt := range g.NonTerminals {
		first[nt] = newSet()
	}

	changed := true
	for changed {
		changed = false
		for _, nt := range g.NonTerminals {
			for _, prod := range g.Productions[nt] {
				temp, allEpsilon := firstOfSequence(prod, first)
				if allEpsilon {
					temp.addAll(newSet(grammar.Epsilon))
				}
				if first[nt].addAll(temp) {
					changed = true
				}
			}
		}
	}
	return first
}

// firstOfSequence computes FIRST of a symbol sequence against an
// in-progress FIRST table, returning the non-epsilon members found and
// whether every symbol in the sequence can derive epsilon.
func firstOfSequence(seq grammar.Production, first map[string]SymbolSet) (SymbolSet, bool) {
	result := newSet()
	if len(seq) == 0 {
		return result, true
	}
	for _, sym := range seq {
		sFirst := first[sym]
		for t := range sFirst {
			if t != grammar.Epsilon {
				result[t] = struct{}{}
			}
		}
		if !sFirst.has(grammar.Epsilon) {
			return result, false
		}
	}
	return result, true
}

// ComputeFollow computes FOLLOW(A) for every non-terminal of g, given
// an already-computed FIRST table.
func ComputeFollow(g *grammar.Grammar, first map[string]SymbolSet) map[string]SymbolSet {
	follow := make(map[string]SymbolSet, len(g.NonTerminals))
	for _, nt := range g.NonTerminals {
		follow[nt] = newSet()
	}
	follow[g.StartSymbol].addAll(newSet(EndMarker))

	changed := true
	for changed {
		changed = false
		for _, nt := range g.NonTerminals {
			for _, prod := range g.Productions[nt] {
				for i, sym := range prod {
					if !g.IsNonTerminal(sym) {
						continue
					}
					suffix := prod[i+1:]
					suffixFirst, allEpsilon := firstOfSequence(suffix, first)
					toAdd := newSet()
					for t := range suffixFirst {
						toAdd[t] = struct{}{}
					}
					if allEpsilon {
						toAdd.addAll(follow[nt])
					}
					if follow[sym].addAll(toAdd) {
						changed = true
					}
				}
			}
		}
	}
	return follow
}

// Conflict reports a parsing-table cell that would be written twice:
// the grammar is not LL(1).
type Conflict struct {
	NonTerminal string
	Terminal    string
	Existing    grammar.Production
	New         grammar.Production
}

func (c *Conflict) Error() string {
	return fmt.Sprintf("LL(1) conflict at (%s, %s): existing production %v, new production %v",
		c.NonTerminal, c.Terminal, []string(c.Existing), []string(c.New))
}

// TableKey addresses one cell of the parsing table.
type TableKey struct {
	NonTerminal string
	Terminal    string
}

// Table is the parsing table, plus the FIRST/FOLLOW sets it was built
// from (kept around since the parser emitter needs FOLLOW for sync
// sets).
type Table struct {
	Entries map[TableKey]grammar.Production
	First   map[string]SymbolSet
	Follow  map[string]SymbolSet
}

// BuildTable computes FIRST, FOLLOW, and the LL(1) parsing table for
// g, returning a *Conflict if any cell would be written twice.
func BuildTable(g *grammar.Grammar) (*Table, error) {
	first := ComputeFirst(g)
	follow := ComputeFollow(g, first)

	entries := make(map[TableKey]grammar.Production)
	for _, nt := range g.NonTerminals {
		for _, prod := range g.Productions[nt] {
			firstProd, allEpsilon := firstOfSequence(prod, first)
			for t := range firstProd {
				if t == grammar.Epsilon {
					continue
				}
				key := TableKey{NonTerminal: nt, Terminal: t}
				if existing, ok := entries[key]; ok {
					return nil, &Conflict{NonTerminal: nt, Terminal: t, Existing: existing, New: prod}
				}
				entries[key] = prod
			}
			if allEpsilon {
				for t := range follow[nt] {
					key := TableKey{NonTerminal: nt, Terminal: t}
					if existing, ok := entries[key]; ok {
						return nil, &Conflict{NonTerminal: nt, Terminal: t, Existing: existing, New: prod}
					}
					entries[key] = prod
				}
			}
		}
	}

	return &Table{Entries: entries, First: first, Follow: follow}, nil
}

// SyncSet returns FOLLOW(nt) union {end-marker}, sorted, for the
// emitted parser's panic-mode recovery sets.
func (t *Table) SyncSet(nt string) []string {
	s := newSet(EndMarker)
	s.addAll(t.Follow[nt])
	return s.Sorted()
}
