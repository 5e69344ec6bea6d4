package automata

import (
	"sort"
	"strconv"
	"strings"
)

// DFAStateID addresses a state within a DFA's reachable-state table.
type DFAStateID int

// DFAState is a frozen set of NFA states, identified by that set's
// canonical string key. Accepting iff it contains at least one
// accepting NFA state; the winning token tag is fixed at construction
// time and never overwritten.
type DFAState struct {
	ID          DFAStateID
	NFAStates   []StateID // sorted ascending, the set's canonical form
	Accepting   bool
	TokenType   string
	Transitions map[byte]DFAStateID
}

// DFA is the result of subset-constructing an NFA: a set of reachable
// states, a start, and byte-indexed transitions between them.
type DFA struct {
	Start  DFAStateID
	States []*DFAState // sorted by minimum constituent NFA-state id - see Convert
}

// stateSetKey canonicalizes a set of NFA state IDs into a stable
// string: sort, then join. Used only for deduplication during
// construction.
func stateSetKey(ids []StateID) string {
	sorted := append([]StateID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.Itoa(int(id))
	}
	return strings.Join(parts, ",")
}

// epsilonClosure returns the least set containing seed and closed
// under epsilon transitions, via an explicit-stack DFS (never
// recursion, so arbitrarily long Kleene-star chains don't blow the Go
// call stack).
func epsilonClosure(n *NFA, seed []StateID) []StateID {
	seen := make(map[StateID]bool)
	stack := append([]StateID(nil), seed...)
	for _, id := range seed {
		seen[id] = true
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range n.State(id).Epsilon {
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	out := make([]StateID, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// move returns the union of byte-b transitions out of every state in
// the set.
func move(n *NFA, set []StateID, b byte) []StateID {
	seen := make(map[StateID]bool)
	var out []StateID
	for _, id := range set {
		for _, t := range n.State(id).Transitions[b] {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}

// winningAccept picks, among the accepting NFA states in set, the one
// with the minimum priority index - the earliest-declared rule wins
// ties.
func winningAccept(n *NFA, set []StateID) (accepting bool, tokenType string) {
	best := -1
	for _, id := range set {
		st := n.State(id)
		if !st.Accepting {
			continue
		}
		if best == -1 || st.Accept.Priority < best {
			best = st.Accept.Priority
			tokenType = st.Accept.TokenType
		}
	}
	return best != -1, tokenType
}

// Convert runs subset construction over n, starting from its Start
// state, then prunes unreachable states, then sorts the retained
// states by minimum constituent NFA-state id so emission order is
// stable run-to-run.
func Convert(n *NFA) *DFA {
	type pending struct {
		key DFAStateID
		set []StateID
	}

	keyToID := make(map[string]DFAStateID)
	statesByID := make(map[DFAStateID]*DFAState)
	var nextID DFAStateID

	startSet := epsilonClosure(n, []StateID{n.Start})
	startKey := stateSetKey(startSet)
	keyToID[startKey] = nextID
	startAccepting, startToken := winningAccept(n, startSet)
	statesByID[nextID] = &DFAState{
		ID:          nextID,
		NFAStates:   startSet,
		Accepting:   startAccepting,
		TokenType:   startToken,
		Transitions: make(map[byte]DFAStateID),
	}
	nextID++

	worklist := []pending{{key: 0, set: startSet}}
	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]
		curState := statesByID[cur.key]

		for b := 0; b <= 127; b++ {
			targetSet := epsilonClosure(n, move(n, cur.set, byte(b)))
			if len(targetSet) == 0 {
				continue
			}
			targetKey := stateSetKey(targetSet)
			id, ok := keyToID[targetKey]
			if !ok {
				id = nextID
				nextID++
				keyToID[targetKey] = id
				accepting, tokenType := winningAccept(n, targetSet)
				statesByID[id] = &DFAState{
					ID:          id,
					NFAStates:   targetSet,
					Accepting:   accepting,
					TokenType:   tokenType,
					Transitions: make(map[byte]DFAStateID),
				}
				worklist = append(worklist, pending{key: id, set: targetSet})
			}
			curState.Transitions[byte(b)] = id
		}
	}

	reachable := pruneUnreachable(statesByID, 0)

	sort.Slice(reachable, func(i, j int) bool {
		return minOf(reachable[i].NFAStates) < minOf(reachable[j].NFAStates)
	})

	return &DFA{Start: 0, States: reachable}
}

// pruneUnreachable runs a second BFS from start and discards any state
// (and its transitions/accept info) not reached.
func pruneUnreachable(all map[DFAStateID]*DFAState, start DFAStateID) []*DFAState {
	seen := map[DFAStateID]bool{start: true}
	queue := []DFAStateID{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, target := range all[id].Transitions {
			if !seen[target] {
				seen[target] = true
				queue = append(queue, target)
			}
		}
	}
	out := make([]*DFAState, 0, len(seen))
	for id := range seen {
		out = append(out, all[id])
	}
	return out
}

func minOf(ids []StateID) StateID {
	m := ids[0]
	for _, id := range ids[1:] {
		if id < m {
			m = id
		}
	}
	return m
}
