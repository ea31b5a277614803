package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBisimilar(t *testing.T) {
	alphabet := mustAlphabet(t, "ab")

	// Alternates between the colors 0 and 1 on every letter.
	two := mustAutomaton(t, alphabet, []int{0, 1},
		Edge{0, 'a', 0, 1},
		Edge{0, 'b', 0, 1},
		Edge{1, 'a', 1, 0},
		Edge{1, 'b', 1, 0},
	)
	four := mustAutomaton(t, alphabet, []int{0, 1, 0, 1},
		Edge{0, 'a', 0, 1},
		Edge{0, 'b', 0, 3},
		Edge{1, 'a', 1, 2},
		Edge{1, 'b', 1, 0},
		Edge{2, 'a', 0, 3},
		Edge{2, 'b', 0, 1},
		Edge{3, 'a', 1, 0},
		Edge{3, 'b', 1, 2},
	)
	assert.True(t, Bisimilar(two, four, MealySemantics))
	assert.True(t, Bisimilar(two, four, MooreSemantics))

	shifted := four.Clone()
	assert.Nil(t, shifted.SetInitial(1))
	assert.False(t, Bisimilar(two, shifted, MealySemantics))
	assert.False(t, Bisimilar(two, shifted, MooreSemantics))

	other := mustAlphabet(t, "abc")
	assert.False(t, Bisimilar(two, NewAutomaton(other), MealySemantics))
	assert.True(t, Bisimilar(NewAutomaton(alphabet), NewAutomaton(alphabet), MooreSemantics))
	assert.False(t, Bisimilar(two, NewAutomaton(alphabet), MooreSemantics))
}

func TestSeparate(t *testing.T) {
	alphabet := mustAlphabet(t, "ab")
	// 0 and 1 only differ in the color of the transition after reading b.
	a := mustAutomaton(t, alphabet, []int{0, 0, 0, 0},
		Edge{0, 'a', 0, 0},
		Edge{0, 'b', 0, 2},
		Edge{1, 'a', 0, 1},
		Edge{1, 'b', 0, 3},
		Edge{2, 'a', 1, 2},
		Edge{2, 'b', 0, 2},
		Edge{3, 'a', 2, 3},
		Edge{3, 'b', 0, 3},
	)

	word, found := Separate(a, 0, 1, MealySemantics)
	assert.True(t, found)
	assert.Equal(t, "ba", alphabet.Show(word))

	// The state colors are all equal.
	_, found = Separate(a, 0, 1, MooreSemantics)
	assert.False(t, found)

	_, found = Separate(a, 2, 2, MealySemantics)
	assert.False(t, found)

	colored := a.Clone()
	colored.SetStateColor(3, 1)
	word, found = Separate(colored, 0, 1, MooreSemantics)
	assert.True(t, found)
	assert.Equal(t, "b", alphabet.Show(word))

	word, found = Separate(colored, 2, 3, MooreSemantics)
	assert.True(t, found)
	assert.Empty(t, word)
}
