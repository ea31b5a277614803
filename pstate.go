package automaton

import (
	"fmt"
	"strings"
)

// MaxPriorities bounds the number of progress levels a precise DPA tracks.
const MaxPriorities = 8

// PState is a state of a precise DPA: the class of the leading congruence and, for every priority level,
// the class whose progress DFA is active at that level together with the current state of that DFA.
//
// PState is a comparable value; slots beyond its width are always zero, so two PStates are the same
// automaton state iff they are ==.
type PState struct {
	class   uint32
	width   uint8
	classes [MaxPriorities]uint32
	states  [MaxPriorities]uint32
}

var _ Hashable = PState{}

// NewPState builds a composite state. classes and states must have the same length, at most
// MaxPriorities.
func NewPState(class int, classes, states []int) PState {
	if len(classes) != len(states) || len(classes) > MaxPriorities {
		panic(fmt.Sprintf("automaton: malformed PState with %d classes and %d states", len(classes), len(states)))
	}
	p := PState{class: uint32(class), width: uint8(len(classes))}
	for i := range classes {
		p.classes[i] = uint32(classes[i])
		p.states[i] = uint32(states[i])
	}
	return p
}

// Class returns the class of the leading congruence.
func (p PState) Class() int {
	return int(p.class)
}

// Width returns the number of priority levels.
func (p PState) Width() int {
	return int(p.width)
}

// ProgressClass returns the class whose progress DFA is active at level i.
func (p PState) ProgressClass(i int) int {
	return int(p.classes[i])
}

// ProgressState returns the state of the progress DFA active at level i.
func (p PState) ProgressState(i int) int {
	return int(p.states[i])
}

func (p PState) ProgressClasses() []int {
	out := make([]int, p.width)
	for i := range out {
		out[i] = int(p.classes[i])
	}
	return out
}

func (p PState) ProgressStates() []int {
	out := make([]int, p.width)
	for i := range out {
		out[i] = int(p.states[i])
	}
	return out
}

func (p PState) Hash() uint64 {
	h := uint64(mix(int(p.class))) ^ uint64(p.width)
	for i := 0; i < int(p.width); i++ {
		h = mixInto(h, int(p.classes[i]))
		h = mixInto(h, int(p.states[i]))
	}
	return h
}

func (p PState) Equals(other Hashable) bool {
	o, ok := other.(PState)
	return ok && o == p
}

// String renders the state as [class | (c0 - q0), (c1 - q1), ...].
func (p PState) String() string {
	parts := make([]string, p.width)
	for i := range parts {
		parts[i] = fmt.Sprintf("(%d - %d)", p.classes[i], p.states[i])
	}
	return fmt.Sprintf("[%d | %s]", p.class, strings.Join(parts, ", "))
}
