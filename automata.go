package automaton

import (
	"github.com/bits-and-blooms/bitset"
)

// Deterministic is the read-only view of a deterministic transition system consumed by the
// minimization algorithms. *Automaton and all machine views implement it.
type Deterministic interface {
	Alphabet() *Alphabet
	NumStates() int
	Initial() int
	StateColor(state int) int
	Edge(state, symbol int) (dest, color int, ok bool)
}

var _ Deterministic = &Automaton{}

// DFA is a deterministic finite automaton. A state is accepting if its color is non-zero; the accepting
// set is captured when the view is created.
type DFA struct {
	*Automaton
	isAccept *bitset.BitSet
}

func NewDFA(a *Automaton) *DFA {
	isAccept := bitset.New(uint(a.NumStates()))
	for q := 0; q < a.NumStates(); q++ {
		if a.StateColor(q) != 0 {
			isAccept.Set(uint(q))
		}
	}
	return &DFA{Automaton: a, isAccept: isAccept}
}

// IsAccepting Returns true if this state is an accept state.
func (d *DFA) IsAccepting(state int) bool {
	return d.isAccept.Test(uint(state))
}

// AcceptingStates Returns the accept states; if a bit is set then that state is an accept state.
func (d *DFA) AcceptingStates() *bitset.BitSet {
	return d.isAccept.Clone()
}

// MooreMachine is a deterministic transition system whose outputs are the state colors.
type MooreMachine struct {
	*Automaton
}

func NewMooreMachine(a *Automaton) *MooreMachine {
	return &MooreMachine{Automaton: a}
}

// MealyMachine is a deterministic transition system whose outputs are the transition colors.
type MealyMachine struct {
	*Automaton
}

func NewMealyMachine(a *Automaton) *MealyMachine {
	return &MealyMachine{Automaton: a}
}

// DPA is a deterministic parity automaton with priorities on its transitions. An infinite run is
// accepting if the least priority occurring infinitely often is even.
type DPA struct {
	*Automaton
}

func NewDPA(a *Automaton) *DPA {
	return &DPA{Automaton: a}
}

// RightCongruence is a deterministic, pointed transition system whose states are the classes of a right
// congruence. Colors are ignored.
type RightCongruence struct {
	*Automaton
}

func NewRightCongruence(a *Automaton) *RightCongruence {
	return &RightCongruence{Automaton: a}
}

type Automata struct {
}

var defaultAutomata = &Automata{}

// MakeUniversalDFA
// Returns a new complete DFA with two states: a rejecting initial state and an accepting sink that
// every transition leads to. It accepts every non-empty word.
func (*Automata) MakeUniversalDFA(alphabet *Alphabet) *DFA {
	a := NewAutomaton(alphabet, WithCapacity(2))
	initial := a.CreateState(0)
	sink := a.CreateState(1)
	for symbol := 0; symbol < alphabet.Size(); symbol++ {
		_ = a.AddTransition(initial, symbol, 0, sink)
		_ = a.AddTransition(sink, symbol, 0, sink)
	}
	return NewDFA(a)
}

// MakeTrivialCongruence
// Returns the right congruence with a single class that loops on every symbol.
func (*Automata) MakeTrivialCongruence(alphabet *Alphabet) *RightCongruence {
	a := NewAutomaton(alphabet)
	q := a.CreateState(0)
	for symbol := 0; symbol < alphabet.Size(); symbol++ {
		_ = a.AddTransition(q, symbol, 0, q)
	}
	return NewRightCongruence(a)
}

// MakeConstantMoore
// Returns the one-state Moore machine that outputs color on every word.
func (*Automata) MakeConstantMoore(alphabet *Alphabet, color int) *MooreMachine {
	a := NewAutomaton(alphabet)
	q := a.CreateState(color)
	for symbol := 0; symbol < alphabet.Size(); symbol++ {
		_ = a.AddTransition(q, symbol, 0, q)
	}
	return NewMooreMachine(a)
}

// MakeUniversalDFA is a shorthand for the default factory.
func MakeUniversalDFA(alphabet *Alphabet) *DFA {
	return defaultAutomata.MakeUniversalDFA(alphabet)
}

// MakeTrivialCongruence is a shorthand for the default factory.
func MakeTrivialCongruence(alphabet *Alphabet) *RightCongruence {
	return defaultAutomata.MakeTrivialCongruence(alphabet)
}

// MakeConstantMoore is a shorthand for the default factory.
func MakeConstantMoore(alphabet *Alphabet, color int) *MooreMachine {
	return defaultAutomata.MakeConstantMoore(alphabet, color)
}
