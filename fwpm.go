package automaton

import "fmt"

// DecomposeDFA splits a Moore machine with non-negative colors into threshold DFAs: the i-th DFA has the
// transition structure of m and accepts exactly the states whose color is at most i. There is one DFA
// per priority from 0 to the largest color, so the last DFA accepts in every state.
func (m *MooreMachine) DecomposeDFA() []*DFA {
	maxColor := -1
	for q := 0; q < m.NumStates(); q++ {
		maxColor = max(maxColor, m.StateColor(q))
	}

	dfas := make([]*DFA, 0, maxColor+1)
	for i := 0; i <= maxColor; i++ {
		threshold := i
		a := m.eraseEdgeColors().mapStateColors(func(_, color int) int {
			if color <= threshold {
				return 1
			}
			return 0
		})
		dfas = append(dfas, NewDFA(a))
	}
	return dfas
}

// FWPM is a family of weak priority mappings: a leading right congruence together with one Moore
// machine per class, mapping finite words to priorities. It is the input of the precise DPA
// construction.
type FWPM struct {
	leading  *RightCongruence
	mappings []*MooreMachine
}

// NewFWPM pairs the leading congruence with one priority mapping per class, mappings[c] belonging to
// class c.
func NewFWPM(leading *RightCongruence, mappings []*MooreMachine) (*FWPM, error) {
	if len(mappings) != leading.NumStates() {
		return nil, fmt.Errorf("%w: %d priority mappings for %d classes",
			ErrIncompleteCollaborator, len(mappings), leading.NumStates())
	}
	for c, pm := range mappings {
		if pm == nil {
			return nil, fmt.Errorf("%w: class %d has no priority mapping", ErrIncompleteCollaborator, c)
		}
		if !pm.Alphabet().Equal(leading.Alphabet()) {
			return nil, fmt.Errorf("%w: priority mapping of class %d reads %s, congruence reads %s",
				ErrAlphabetMismatch, c, pm.Alphabet(), leading.Alphabet())
		}
	}
	return &FWPM{leading: leading, mappings: mappings}, nil
}

func (f *FWPM) Leading() *RightCongruence {
	return f.leading
}

// Mapping returns the priority mapping of class c.
func (f *FWPM) Mapping(c int) *MooreMachine {
	return f.mappings[c]
}

// Complexity is the largest number of threshold DFAs any priority mapping decomposes into.
func (f *FWPM) Complexity() int {
	n := 0
	for _, pm := range f.mappings {
		maxColor := -1
		for q := 0; q < pm.NumStates(); q++ {
			maxColor = max(maxColor, pm.StateColor(q))
		}
		n = max(n, maxColor+1)
	}
	return n
}

// Families decomposes every priority mapping, yielding the progress DFA family of each class.
func (f *FWPM) Families() [][]ProgressDFA {
	families := make([][]ProgressDFA, len(f.mappings))
	for c, pm := range f.mappings {
		for _, dfa := range pm.DecomposeDFA() {
			families[c] = append(families[c], dfa)
		}
	}
	return families
}
