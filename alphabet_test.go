package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCharAlphabet(t *testing.T) {
	alphabet, err := NewCharAlphabet('c', 'a', 'b', 'a')
	require.NoError(t, err)
	assert.Equal(t, 3, alphabet.Size())
	assert.Equal(t, []rune{'a', 'b', 'c'}, alphabet.Symbols())
	assert.Equal(t, 'b', alphabet.Symbol(1))

	i, ok := alphabet.IndexOf('c')
	assert.True(t, ok)
	assert.Equal(t, 2, i)
	_, ok = alphabet.IndexOf('d')
	assert.False(t, ok)

	_, err = NewCharAlphabet()
	assert.ErrorIs(t, err, ErrEmptyAlphabet)
}

func TestCharAlphabetOfSize(t *testing.T) {
	alphabet, err := CharAlphabetOfSize(4)
	require.NoError(t, err)
	assert.Equal(t, "{a, b, c, d}", alphabet.String())

	other, err := NewCharAlphabet('d', 'c', 'b', 'a')
	require.NoError(t, err)
	assert.True(t, alphabet.Equal(other))

	smaller, err := CharAlphabetOfSize(3)
	require.NoError(t, err)
	assert.False(t, alphabet.Equal(smaller))
	assert.False(t, alphabet.Equal(nil))

	_, err = CharAlphabetOfSize(0)
	assert.ErrorIs(t, err, ErrEmptyAlphabet)
}

func TestAlphabet_Word(t *testing.T) {
	alphabet := mustAlphabet(t, "ab")

	word, err := alphabet.Word("abba")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 1, 0}, word)
	assert.Equal(t, "abba", alphabet.Show(word))

	word, err = alphabet.Word("")
	require.NoError(t, err)
	assert.Empty(t, word)

	_, err = alphabet.Word("abc")
	assert.ErrorIs(t, err, ErrUnknownSymbol)
}
