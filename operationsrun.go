package automaton

import (
	"fmt"
	"math"

	"github.com/bits-and-blooms/bitset"
)

// Run reads word from the initial state of ts and returns the transition colors produced along the way
// together with the state reached. If a symbol has no transition, the colors read so far are returned
// with an error wrapping ErrUnknownSymbol.
func Run(ts Deterministic, word []int) ([]int, int, error) {
	if ts.NumStates() == 0 {
		return nil, -1, fmt.Errorf("%w: automaton has no states", ErrUnknownState)
	}
	state := ts.Initial()
	colors := make([]int, 0, len(word))
	for i, symbol := range word {
		dest, color, ok := ts.Edge(state, symbol)
		if !ok {
			return colors, state, fmt.Errorf("%w: no transition from state %d at position %d",
				ErrUnknownSymbol, state, i)
		}
		colors = append(colors, color)
		state = dest
	}
	return colors, state, nil
}

// RunString is Run over a word given as a string of alphabet characters.
func RunString(ts Deterministic, s string) ([]int, int, error) {
	word, err := ts.Alphabet().Word(s)
	if err != nil {
		return nil, -1, err
	}
	return Run(ts, word)
}

// Accepts Returns true if the DFA accepts the given word.
func (d *DFA) Accepts(word []int) bool {
	_, state, err := Run(d, word)
	if err != nil {
		return false
	}
	return d.IsAccepting(state)
}

// AcceptsString Returns true if the DFA accepts the given string.
func (d *DFA) AcceptsString(s string) bool {
	word, err := d.Alphabet().Word(s)
	if err != nil {
		return false
	}
	return d.Accepts(word)
}

// AcceptsLasso reports whether the DPA accepts the ultimately periodic word prefix·period^ω, i.e.
// whether the least priority seen infinitely often is even.
func (d *DPA) AcceptsLasso(prefix, period []int) (bool, error) {
	if len(period) == 0 {
		return false, ErrEmptyPeriod
	}
	_, state, err := Run(d, prefix)
	if err != nil {
		return false, err
	}

	// Iterate the period until the state at its start repeats; the priorities of the cycle between
	// the two visits are the ones seen infinitely often.
	seen := bitset.New(uint(d.NumStates()))
	var starts []int
	for !seen.Test(uint(state)) {
		seen.Set(uint(state))
		starts = append(starts, state)
		for _, symbol := range period {
			next, _, ok := d.Edge(state, symbol)
			if !ok {
				return false, fmt.Errorf("%w: no transition from state %d", ErrUnknownSymbol, state)
			}
			state = next
		}
	}

	least := math.MaxInt
	cycle := false
	for _, q := range starts {
		if q == state {
			cycle = true
		}
		if !cycle {
			continue
		}
		s := q
		for _, symbol := range period {
			next, color, _ := d.Edge(s, symbol)
			least = min(least, color)
			s = next
		}
	}
	return least%2 == 0, nil
}

// AcceptsLassoString is AcceptsLasso over words given as strings of alphabet characters.
func (d *DPA) AcceptsLassoString(prefix, period string) (bool, error) {
	u, err := d.Alphabet().Word(prefix)
	if err != nil {
		return false, err
	}
	v, err := d.Alphabet().Word(period)
	if err != nil {
		return false, err
	}
	return d.AcceptsLasso(u, v)
}
