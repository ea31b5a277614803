package automaton

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// Bisimilar reports whether the initial states of a and b are bisimilar under semantics: under
// MealySemantics every non-empty word yields the same color sequence in both, under MooreSemantics
// every word leads to states of equal color. A word that is defined in one automaton only
// distinguishes them.
func Bisimilar(a, b Deterministic, semantics Semantics) bool {
	if !a.Alphabet().Equal(b.Alphabet()) {
		return false
	}
	if a.NumStates() == 0 || b.NumStates() == 0 {
		return a.NumStates() == b.NumStates()
	}
	_, found := distinguish(a, b, a.Initial(), b.Initial(), semantics)
	return !found
}

// Separate returns a shortest word telling states p and q of ts apart under semantics, or false if they
// are bisimilar. Under MealySemantics the last symbol of the word produces different colors (or is
// defined from one state only); under MooreSemantics the word leads to states of different color.
func Separate(ts Deterministic, p, q int, semantics Semantics) ([]int, bool) {
	return distinguish(ts, ts, p, q, semantics)
}

type pairStep struct {
	parent int
	symbol int
}

// distinguish runs a breadth-first search over pairs of states of a and b.
func distinguish(a, b Deterministic, p, q int, semantics Semantics) ([]int, bool) {
	k := a.Alphabet().Size()
	nb := b.NumStates()
	pair := func(x, y int) int { return x*nb + y }

	word := func(from map[int]pairStep, last int) []int {
		var w []int
		for cur := last; cur != pair(p, q); cur = from[cur].parent {
			w = append(w, from[cur].symbol)
		}
		slices.Reverse(w)
		return w
	}

	if semantics == MooreSemantics && a.StateColor(p) != b.StateColor(q) {
		return []int{}, true
	}

	seen := bitset.New(uint(a.NumStates() * nb))
	from := make(map[int]pairStep)
	start := pair(p, q)
	seen.Set(uint(start))
	workList := []int{start}

	for i := 0; i < len(workList); i++ {
		cur := workList[i]
		x, y := cur/nb, cur%nb
		for symbol := 0; symbol < k; symbol++ {
			dx, cx, okx := a.Edge(x, symbol)
			dy, cy, oky := b.Edge(y, symbol)
			if okx != oky {
				return append(word(from, cur), symbol), true
			}
			if !okx {
				continue
			}
			if semantics == MealySemantics && cx != cy {
				return append(word(from, cur), symbol), true
			}
			if semantics == MooreSemantics && a.StateColor(dx) != b.StateColor(dy) {
				return append(word(from, cur), symbol), true
			}

			next := pair(dx, dy)
			if seen.Test(uint(next)) {
				continue
			}
			seen.Set(uint(next))
			from[next] = pairStep{parent: cur, symbol: symbol}
			workList = append(workList, next)
		}
	}
	return nil, false
}
