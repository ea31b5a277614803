package automaton

import (
	"github.com/bits-and-blooms/bitset"
)

// ReachableStates
// Returns the states reachable from the initial state in breadth-first order, starting with the
// initial state.
func ReachableStates(ts Deterministic) []int {
	if ts.NumStates() == 0 {
		return nil
	}
	return reachableFrom(ts, ts.Initial())
}

func reachableFrom(ts Deterministic, state int) []int {
	seen := bitset.New(uint(ts.NumStates()))
	workList := []int{state}
	seen.Set(uint(state))

	for i := 0; i < len(workList); i++ {
		s := workList[i]
		for a := 0; a < ts.Alphabet().Size(); a++ {
			dest, _, ok := ts.Edge(s, a)
			if ok && !seen.Test(uint(dest)) {
				seen.Set(uint(dest))
				workList = append(workList, dest)
			}
		}
	}
	return workList
}

// Trim
// Returns a copy of ts restricted to the states reachable from the initial state, renumbered in
// breadth-first order so that the initial state is 0, together with the old index of every new state.
func Trim(ts Deterministic) (*Automaton, []int) {
	reachable := ReachableStates(ts)
	mp := make(map[int]int, len(reachable))

	result := NewAutomaton(ts.Alphabet(), WithCapacity(len(reachable)))
	for _, q := range reachable {
		mp[q] = result.CreateState(ts.StateColor(q))
	}

	for _, q := range reachable {
		for a := 0; a < ts.Alphabet().Size(); a++ {
			if dest, color, ok := ts.Edge(q, a); ok {
				_ = result.AddTransition(mp[q], a, color, mp[dest])
			}
		}
	}
	return result, reachable
}

// IsEmptyLanguage
// Returns true if the given DFA accepts no word.
func IsEmptyLanguage(d *DFA) bool {
	if d.NumStates() == 0 {
		// Common case: no states
		return true
	}
	for _, q := range ReachableStates(d) {
		if d.IsAccepting(q) {
			return false
		}
	}
	return true
}

// IsUniversalAfterOneStep
// Returns true if every transition of the DFA leads to an accepting state, i.e. it accepts every
// non-empty word from every state.
func IsUniversalAfterOneStep(d *DFA) bool {
	for q := 0; q < d.NumStates(); q++ {
		for a := 0; a < d.Alphabet().Size(); a++ {
			dest, ok := d.Successor(q, a)
			if !ok || !d.IsAccepting(dest) {
				return false
			}
		}
	}
	return true
}
