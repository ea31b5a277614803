package automaton

import (
	"fmt"
	"iter"
)

// Automaton Represents a deterministic, colored transition system over an Alphabet. States are integers
// and must be created using CreateState. Every state carries an integer color and every transition carries
// an integer color; which of the two is meaningful depends on the view (DFA, MooreMachine, MealyMachine,
// DPA, RightCongruence) wrapping the automaton. A state has at most one transition per symbol. Unless
// SetInitial is called, state 0 is the initial state.
type Automaton struct {
	alphabet *Alphabet

	initial int

	// Color of every state, indexed by state.
	stateColors []int

	// Packed transition table: the transition of state q on symbol a lives at q*k+a, where k is the
	// alphabet size. A missing transition has dest -1.
	dests  []int
	colors []int

	numTransitions int
}

// Transition is a single edge of an Automaton, with the symbol given as index into the alphabet.
type Transition struct {
	Source int
	Symbol int
	Color  int
	Dest   int
}

// Edge describes a transition by its character, used to build automata from literals.
type Edge struct {
	Source int
	Symbol rune
	Color  int
	Dest   int
}

func NewAutomaton(alphabet *Alphabet, opts ...Option) *Automaton {
	cfg := newConfig(opts...)
	return &Automaton{
		alphabet:    alphabet,
		stateColors: make([]int, 0, cfg.capacity),
		dests:       make([]int, 0, cfg.capacity*alphabet.Size()),
		colors:      make([]int, 0, cfg.capacity*alphabet.Size()),
	}
}

// FromTransitions builds an automaton with the given initial state, state colors and edges. The number
// of states is the larger of len(stateColors) and the highest state mentioned by an edge plus one;
// states without an entry in stateColors get color 0.
func FromTransitions(alphabet *Alphabet, initial int, stateColors []int, edges ...Edge) (*Automaton, error) {
	numStates := len(stateColors)
	for _, e := range edges {
		numStates = max(numStates, e.Source+1, e.Dest+1)
	}

	a := NewAutomaton(alphabet, WithCapacity(numStates))
	for q := 0; q < numStates; q++ {
		color := 0
		if q < len(stateColors) {
			color = stateColors[q]
		}
		a.CreateState(color)
	}

	for _, e := range edges {
		symbol, ok := alphabet.IndexOf(e.Symbol)
		if !ok {
			return nil, fmt.Errorf("%w: %q on edge from state %d", ErrUnknownSymbol, e.Symbol, e.Source)
		}
		if err := a.AddTransition(e.Source, symbol, e.Color, e.Dest); err != nil {
			return nil, err
		}
	}

	if err := a.SetInitial(initial); err != nil {
		return nil, err
	}
	return a, nil
}

// CreateState Create a new state with the given color.
func (a *Automaton) CreateState(color int) int {
	state := len(a.stateColors)
	a.stateColors = append(a.stateColors, color)
	size := len(a.stateColors) * a.alphabet.Size()
	a.dests = grow(a.dests, size, -1)
	a.colors = grow(a.colors, size, 0)
	return state
}

// SetStateColor Set the color of this state.
func (a *Automaton) SetStateColor(state, color int) {
	a.stateColors[state] = color
}

// SetInitial Set the initial state.
func (a *Automaton) SetInitial(state int) error {
	if !a.hasState(state) {
		return fmt.Errorf("%w: initial state %d", ErrUnknownState, state)
	}
	a.initial = state
	return nil
}

// AddTransition Add a new transition with the specified source, symbol, color and dest. A state may only
// have one transition per symbol.
func (a *Automaton) AddTransition(source, symbol, color, dest int) error {
	if !a.hasState(source) {
		return fmt.Errorf("%w: source %d", ErrUnknownState, source)
	}
	if !a.hasState(dest) {
		return fmt.Errorf("%w: dest %d", ErrUnknownState, dest)
	}
	if symbol < 0 || symbol >= a.alphabet.Size() {
		return fmt.Errorf("%w: index %d", ErrUnknownSymbol, symbol)
	}

	i := a.slot(source, symbol)
	if a.dests[i] != -1 {
		return fmt.Errorf("%w: state %d already has a transition on %q", ErrDuplicateTransition,
			source, a.alphabet.Symbol(symbol))
	}
	a.dests[i] = dest
	a.colors[i] = color
	a.numTransitions++
	return nil
}

func (a *Automaton) hasState(state int) bool {
	return state >= 0 && state < len(a.stateColors)
}

func (a *Automaton) slot(state, symbol int) int {
	return state*a.alphabet.Size() + symbol
}

// Alphabet Returns the alphabet the automaton reads.
func (a *Automaton) Alphabet() *Alphabet {
	return a.alphabet
}

func (a *Automaton) Initial() int {
	return a.initial
}

// NumStates How many states this automaton has.
func (a *Automaton) NumStates() int {
	return len(a.stateColors)
}

// NumTransitions How many transitions this automaton has.
func (a *Automaton) NumTransitions() int {
	return a.numTransitions
}

// StateColor Returns the color of this state.
func (a *Automaton) StateColor(state int) int {
	return a.stateColors[state]
}

// Successor Returns the target of the transition of state on symbol, false if there is none.
func (a *Automaton) Successor(state, symbol int) (int, bool) {
	dest, _, ok := a.Edge(state, symbol)
	return dest, ok
}

// EdgeColor Returns the color of the transition of state on symbol, false if there is none.
func (a *Automaton) EdgeColor(state, symbol int) (int, bool) {
	_, color, ok := a.Edge(state, symbol)
	return color, ok
}

// Edge Performs lookup in transitions. Returns destination and color of the transition, ok is false if
// state has no transition on symbol or either is out of range.
func (a *Automaton) Edge(state, symbol int) (dest, color int, ok bool) {
	if !a.hasState(state) || symbol < 0 || symbol >= a.alphabet.Size() {
		return -1, 0, false
	}
	i := a.slot(state, symbol)
	if a.dests[i] == -1 {
		return -1, 0, false
	}
	return a.dests[i], a.colors[i], true
}

// Transitions Iterates over the transitions leaving state, in symbol order.
func (a *Automaton) Transitions(state int) iter.Seq[Transition] {
	return func(yield func(Transition) bool) {
		for symbol := 0; symbol < a.alphabet.Size(); symbol++ {
			dest, color, ok := a.Edge(state, symbol)
			if !ok {
				continue
			}
			if !yield(Transition{Source: state, Symbol: symbol, Color: color, Dest: dest}) {
				return
			}
		}
	}
}

// IsComplete Returns true if every state has a transition for every symbol.
func (a *Automaton) IsComplete() bool {
	_, _, missing := a.MissingTransition()
	return !missing
}

// MissingTransition Returns the first state and symbol without a transition; ok is false if the automaton
// is complete.
func (a *Automaton) MissingTransition() (state, symbol int, ok bool) {
	for i, dest := range a.dests {
		if dest == -1 {
			return i / a.alphabet.Size(), i % a.alphabet.Size(), true
		}
	}
	return -1, -1, false
}

// Clone Returns a deep copy of the automaton.
func (a *Automaton) Clone() *Automaton {
	return &Automaton{
		alphabet:       a.alphabet,
		initial:        a.initial,
		stateColors:    append([]int(nil), a.stateColors...),
		dests:          append([]int(nil), a.dests...),
		colors:         append([]int(nil), a.colors...),
		numTransitions: a.numTransitions,
	}
}

// mapStateColors returns a copy of the automaton whose state colors are f applied to the old ones.
func (a *Automaton) mapStateColors(f func(state, color int) int) *Automaton {
	b := a.Clone()
	for q, c := range b.stateColors {
		b.stateColors[q] = f(q, c)
	}
	return b
}

// eraseEdgeColors returns a copy of the automaton with all transition colors set to 0.
func (a *Automaton) eraseEdgeColors() *Automaton {
	b := a.Clone()
	clear(b.colors)
	return b
}

func (a *Automaton) String() string {
	return fmt.Sprintf("automaton{alphabet: %s, states: %d, transitions: %d, initial: %d}",
		a.alphabet, a.NumStates(), a.numTransitions, a.initial)
}
