package automaton

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotient(t *testing.T) {
	alphabet := mustAlphabet(t, "ab")
	// The initial state 2 is in the second block by order of least member.
	a, err := FromTransitions(alphabet, 2, []int{1, 1, 0, 0},
		Edge{0, 'a', 5, 2},
		Edge{1, 'a', 5, 3},
		Edge{2, 'a', 4, 0},
		Edge{3, 'a', 4, 1},
		Edge{2, 'b', 4, 3},
		Edge{3, 'b', 4, 2},
	)
	require.NoError(t, err)

	p, err := NewPartition(4, [][]int{{0, 1}, {2, 3}})
	require.NoError(t, err)

	t.Run("mealy", func(t *testing.T) {
		q, err := Quotient(a, p, MealySemantics)
		require.NoError(t, err)
		assert.Equal(t, 2, q.NumStates())
		assert.Equal(t, 0, q.Initial())
		assert.Equal(t, 3, q.NumTransitions())

		dest, color, ok := q.Edge(0, 0)
		assert.True(t, ok)
		assert.Equal(t, 1, dest)
		assert.Equal(t, 4, color)

		dest, color, ok = q.Edge(1, 0)
		assert.True(t, ok)
		assert.Equal(t, 0, dest)
		assert.Equal(t, 5, color)

		_, ok = q.Successor(1, 1)
		assert.False(t, ok)
		assert.Equal(t, 0, q.StateColor(0))
		assert.Equal(t, 1, q.StateColor(1))
	})

	t.Run("moore drops edge colors", func(t *testing.T) {
		q, err := Quotient(a, p, MooreSemantics)
		require.NoError(t, err)
		for s := 0; s < q.NumStates(); s++ {
			for tr := range q.Transitions(s) {
				assert.Equal(t, 0, tr.Color)
			}
		}
	})

	t.Run("discrete partition", func(t *testing.T) {
		discrete, err := NewPartition(4, [][]int{{0}, {1}, {2}, {3}})
		require.NoError(t, err)
		q, err := Quotient(a, discrete, MealySemantics)
		require.NoError(t, err)
		assert.Equal(t, 4, q.NumStates())
		assert.True(t, Bisimilar(a, q, MealySemantics))
	})
}

func TestQuotient_Errors(t *testing.T) {
	alphabet := mustAlphabet(t, "ab")
	a := mustAutomaton(t, alphabet, []int{0, 1},
		Edge{0, 'a', 0, 1},
		Edge{1, 'a', 1, 0},
	)

	small, err := NewPartition(1, [][]int{{0}})
	require.NoError(t, err)
	_, err = Quotient(a, small, MealySemantics)
	assert.ErrorIs(t, err, ErrPartitionMismatch)

	whole, err := NewPartition(2, [][]int{{0, 1}})
	require.NoError(t, err)
	_, err = Quotient(a, whole, Semantics(3))
	assert.ErrorIs(t, err, ErrUnknownSemantics)

	empty, err := NewPartition(0, nil)
	require.NoError(t, err)
	q, err := Quotient(NewAutomaton(alphabet), empty, MooreSemantics)
	require.NoError(t, err)
	assert.Equal(t, 0, q.NumStates())
}

func TestQuotient_Conflicts(t *testing.T) {
	alphabet := mustAlphabet(t, "ab")
	a := mustAutomaton(t, alphabet, []int{0, 1, 0},
		Edge{0, 'a', 0, 1},
		Edge{1, 'a', 1, 0},
		Edge{2, 'a', 0, 2},
		Edge{2, 'b', 0, 2},
	)

	conflict := func(f func()) {
		t.Helper()
		defer func() {
			r := recover()
			require.NotNil(t, r)
			err, ok := r.(error)
			require.True(t, ok)
			assert.True(t, errors.Is(err, ErrQuotientColorConflict), err.Error())
		}()
		f()
	}

	whole, err := NewPartition(3, [][]int{{0, 1, 2}})
	require.NoError(t, err)

	// Edge colors disagree under Mealy semantics, state colors under Moore semantics.
	conflict(func() { _, _ = Quotient(a, whole, MealySemantics) })
	conflict(func() { _, _ = Quotient(a, whole, MooreSemantics) })

	// 0 and 2 share their colors but reach different blocks on a.
	split, err := NewPartition(3, [][]int{{0, 2}, {1}})
	require.NoError(t, err)
	conflict(func() { _, _ = Quotient(a, split, MealySemantics) })
}
