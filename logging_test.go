package automaton

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	alphabet := mustAlphabet(t, "ab")
	MooreGreatestBisimulation(MakeUniversalDFA(alphabet))
	assert.Contains(t, buf.String(), "semantics=moore")
	assert.Contains(t, buf.String(), "blocks=2")

	SetLogger(nil)
	buf.Reset()
	MealyGreatestBisimulation(MakeUniversalDFA(alphabet))
	assert.Empty(t, buf.String())
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	alphabet := mustAlphabet(t, "ab")
	_, err := Minimize(MakeUniversalDFA(alphabet), MealySemantics, WithLogger(logger))
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "computed greatest bisimulation")
	assert.Contains(t, buf.String(), "collected quotient")
}
