package automaton

import "fmt"

// Semantics selects what two states must agree on to be merged by minimization.
type Semantics int

const (
	// MealySemantics compares the transition colors produced by non-empty words.
	MealySemantics Semantics = iota
	// MooreSemantics compares the state colors reached by all words.
	MooreSemantics
)

func (s Semantics) String() string {
	switch s {
	case MealySemantics:
		return "mealy"
	case MooreSemantics:
		return "moore"
	}
	return fmt.Sprintf("Semantics(%d)", int(s))
}

// GreatestBisimulation dispatches to MealyGreatestBisimulation or MooreGreatestBisimulation.
func GreatestBisimulation(ts Deterministic, semantics Semantics, opts ...Option) (*Partition, error) {
	switch semantics {
	case MealySemantics:
		return MealyGreatestBisimulation(ts, opts...), nil
	case MooreSemantics:
		return MooreGreatestBisimulation(ts, opts...), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownSemantics, semantics)
}

// Minimize
// Removes the states unreachable from the initial state and merges bisimilar states using partition
// refinement. The result is the unique minimal automaton equivalent to ts under semantics; its initial
// state is 0.
func Minimize(ts Deterministic, semantics Semantics, opts ...Option) (*Automaton, error) {
	if ts.NumStates() == 0 {
		// Fastmatch for common case
		return NewAutomaton(ts.Alphabet()), nil
	}

	trimmed, _ := Trim(ts)
	p, err := GreatestBisimulation(trimmed, semantics, opts...)
	if err != nil {
		return nil, err
	}
	return Quotient(trimmed, p, semantics, opts...)
}

// MinimizeMealy returns the minimal Mealy machine equivalent to m.
func MinimizeMealy(m *MealyMachine, opts ...Option) *MealyMachine {
	return NewMealyMachine(mustMinimize(m, MealySemantics, opts...))
}

// MinimizeMoore returns the minimal Moore machine equivalent to m.
func MinimizeMoore(m *MooreMachine, opts ...Option) *MooreMachine {
	return NewMooreMachine(mustMinimize(m, MooreSemantics, opts...))
}

// MinimizeDPA merges states of d that produce the same priority sequences.
func MinimizeDPA(d *DPA, opts ...Option) *DPA {
	return NewDPA(mustMinimize(d, MealySemantics, opts...))
}

// MinimizeDFA returns the minimal DFA accepting the same language as d.
func MinimizeDFA(d *DFA, opts ...Option) *DFA {
	return NewDFA(mustMinimize(d, MooreSemantics, opts...))
}

// mustMinimize minimizes with a known semantics over a partition computed from the same automaton, so
// Minimize cannot fail.
func mustMinimize(ts Deterministic, semantics Semantics, opts ...Option) *Automaton {
	out, err := Minimize(ts, semantics, opts...)
	if err != nil {
		panic(err)
	}
	return out
}
