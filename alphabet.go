package automaton

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/go-set/v3"
)

// Alphabet is a finite, ordered set of characters. Automata address symbols by
// their dense index: symbol i is the i-th character in ascending order.
type Alphabet struct {
	symbols []rune
	index   map[rune]int
}

// NewCharAlphabet returns the alphabet consisting of the given characters.
// Duplicates are ignored.
func NewCharAlphabet(symbols ...rune) (*Alphabet, error) {
	if len(symbols) == 0 {
		return nil, ErrEmptyAlphabet
	}

	ordered := set.NewTreeSet[rune](cmp.Compare[rune])
	for _, s := range symbols {
		ordered.Insert(s)
	}

	a := &Alphabet{
		symbols: ordered.Slice(),
		index:   make(map[rune]int, ordered.Size()),
	}
	for i, s := range a.symbols {
		a.index[s] = i
	}
	return a, nil
}

// CharAlphabetOfSize returns the alphabet of the first n lower case letters
// starting at 'a'.
func CharAlphabetOfSize(n int) (*Alphabet, error) {
	if n <= 0 {
		return nil, ErrEmptyAlphabet
	}
	symbols := make([]rune, n)
	for i := range symbols {
		symbols[i] = 'a' + rune(i)
	}
	return NewCharAlphabet(symbols...)
}

func (a *Alphabet) Size() int {
	return len(a.symbols)
}

// Symbol returns the character with index i.
func (a *Alphabet) Symbol(i int) rune {
	return a.symbols[i]
}

// IndexOf returns the index of the character r.
func (a *Alphabet) IndexOf(r rune) (int, bool) {
	i, ok := a.index[r]
	return i, ok
}

// Symbols returns a copy of the characters in index order.
func (a *Alphabet) Symbols() []rune {
	return slices.Clone(a.symbols)
}

// Word translates s into symbol indices.
func (a *Alphabet) Word(s string) ([]int, error) {
	word := make([]int, 0, len(s))
	for _, r := range s {
		i, ok := a.index[r]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSymbol, r)
		}
		word = append(word, i)
	}
	return word, nil
}

// Show renders a word of symbol indices as a string.
func (a *Alphabet) Show(word []int) string {
	var sb strings.Builder
	for _, i := range word {
		sb.WriteRune(a.symbols[i])
	}
	return sb.String()
}

// Equal reports whether both alphabets contain the same characters.
func (a *Alphabet) Equal(other *Alphabet) bool {
	if a == other {
		return true
	}
	if a == nil || other == nil {
		return false
	}
	return slices.Equal(a.symbols, other.symbols)
}

func (a *Alphabet) String() string {
	parts := make([]string, len(a.symbols))
	for i, s := range a.symbols {
		parts[i] = string(s)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
