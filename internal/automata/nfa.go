// Package automata builds Thompson-construction NFAs from character
// conditions and converts them to DFAs via subset construction.
//
// State identity is never structural: two states with identical
// transition shapes are still distinct. Every state gets a stable
// integer id at allocation time and is addressed by that id, which is
// what makes the Kleene-star back-edges (cyclic graphs) safe to walk
// without reference cycles.
package automata

import "github.com/helkgen/helkgen/internal/condition"

// StateID addresses an NFAState within an NFA's arena. IDs are unique
// within a single combined NFA, never reused.
type StateID int

// AcceptInfo is attached to an NFA state that terminates a rule's
// pattern. Priority is the rule's declaration index - smaller wins
// ties during DFA construction.
type AcceptInfo struct {
	TokenType string
	Priority  int
}

// NFAState is identity-valued: two *NFAState values are never equal
// except by pointer/ID, regardless of their transition contents.
type NFAState struct {
	ID          StateID
	Accepting   bool
	Accept      AcceptInfo
	Transitions map[byte][]StateID
	Epsilon     []StateID
}

// NFA is an arena of states plus a distinguished start and end. Every
// state reachable from Start belongs to States. A freshly constructed
// NFA has exactly one accepting state, namely End.
type NFA struct {
	Start  StateID
	End    StateID
	States map[StateID]*NFAState
	nextID StateID
}

// New returns an empty NFA arena. Callers build up states through the
// constructor functions below, never by touching the arena directly.
func New() *NFA {
	return &NFA{States: make(map[StateID]*NFAState)}
}

func (n *NFA) addState() *NFAState {
	s := &NFAState{ID: n.nextID, Transitions: make(map[byte][]StateID)}
	n.States[s.ID] = s
	n.nextID++
	return s
}

func (n *NFA) State(id StateID) *NFAState { return n.States[id] }

func (n *NFA) addEpsilon(from, to StateID) {
	s := n.State(from)
	s.Epsilon = append(s.Epsilon, to)
}

func (n *NFA) addTransition(from StateID, c byte, to StateID) {
	s := n.State(from)
	s.Transitions[c] = append(s.Transitions[c], to)
}

// merge copies every state of other into n, renumbering IDs to avoid
// collision, and returns the renumbered (start, end) pair.
func (n *NFA) merge(other *NFA) (StateID, StateID) {
	offset := n.nextID
	for id, st := range other.States {
		ns := &NFAState{
			ID:          id + offset,
			Accepting:   st.Accepting,
			Accept:      st.Accept,
			Transitions: make(map[byte][]StateID, len(st.Transitions)),
		}
		for c, targets := range st.Transitions {
			shifted := make([]StateID, len(targets))
			for i, t := range targets {
				shifted[i] = t + offset
			}
			ns.Transitions[c] = shifted
		}
		for _, e := range st.Epsilon {
			ns.Epsilon = append(ns.Epsilon, e+offset)
		}
		n.States[ns.ID] = ns
	}
	n.nextID += other.nextID
	return other.Start + offset, other.End + offset
}

// FromCondition builds the single-edge NFA start --cond--> end for
// every byte the condition expands to.
func FromCondition(c condition.Condition) *NFA {
	n := New()
	start := n.addState()
	end := n.addState()
	end.Accepting = true
	for _, b := range c.Expand() {
		n.addTransition(start.ID, b, end.ID)
	}
	n.Start, n.End = start.ID, end.ID
	return n
}

// Concat builds a --a--> --b--> chain: a's end is wired to b's start
// by an epsilon edge and loses its accepting flag, b's end becomes the
// sole accepting state.
func Concat(a, b *NFA) *NFA {
	n := New()
	aStart, aEnd := n.merge(a)
	bStart, bEnd := n.merge(b)
	n.State(aEnd).Accepting = false
	n.addEpsilon(aEnd, bStart)
	n.Start, n.End = aStart, bEnd
	return n
}

// Union builds a fresh start epsilon-branching into both a and b, and
// a fresh end both branches epsilon-join into.
func Union(a, b *NFA) *NFA {
	n := New()
	start := n.addState()
	end := n.addState()
	end.Accepting = true

	aStart, aEnd := n.merge(a)
	bStart, bEnd := n.merge(b)
	n.State(aEnd).Accepting = false
	n.State(bEnd).Accepting = false

	n.addEpsilon(start.ID, aStart)
	n.addEpsilon(start.ID, bStart)
	n.addEpsilon(aEnd, end.ID)
	n.addEpsilon(bEnd, end.ID)

	n.Start, n.End = start.ID, end.ID
	return n
}

// Star builds the classical 4-state Kleene star: a fresh start/end
// pair wraps the inner NFA, with epsilon edges for "skip entirely",
// "enter once", "loop back", and "exit".
func Star(a *NFA) *NFA {
	n := New()
	start := n.addState()
	end := n.addState()
	end.Accepting = true

	aStart, aEnd := n.merge(a)
	n.State(aEnd).Accepting = false

	n.addEpsilon(start.ID, aStart)
	n.addEpsilon(start.ID, end.ID)
	n.addEpsilon(aEnd, aStart)
	n.addEpsilon(aEnd, end.ID)

	n.Start, n.End = start.ID, end.ID
	return n
}

// Plus builds a --> a+ as Concat(a, Star(copyOf(a))) would, but shares
// no state between the mandatory copy and the optional-repeat copy:
// each is merged independently so the arena stays a clean DAG-plus-
// back-edges rather than aliasing one NFA's states into two roles.
func Plus(a *NFA) *NFA {
	return Concat(a, Star(a))
}

// Optional builds a | ε.
func Optional(a *NFA) *NFA {
	n := New()
	start := n.addState()
	end := n.addState()
	end.Accepting = true

	aStart, aEnd := n.merge(a)
	n.State(aEnd).Accepting = false

	n.addEpsilon(start.ID, aStart)
	n.addEpsilon(start.ID, end.ID)
	n.addEpsilon(aEnd, end.ID)

	n.Start, n.End = start.ID, end.ID
	return n
}

// Combine unions a set of already-accept-tagged rule NFAs under one
// fresh start, preserving each rule's own accepting end (no shared
// end state).
func Combine(rules []*NFA) *NFA {
	n := New()
	start := n.addState()
	n.Start = start.ID
	n.End = start.ID // combined NFA has no single meaningful end
	for _, r := range rules {
		rStart, _ := n.merge(r)
		n.addEpsilon(start.ID, rStart)
	}
	return n
}
