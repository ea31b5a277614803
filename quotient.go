package automaton

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/go-set/v3"
)

// Quotient collapses every block of p into one state. The block of the initial state becomes state 0,
// the remaining blocks follow in partition order. A block has a transition on a symbol if its members
// do; the target is the block they reach.
//
// Members of a block must agree on every target block and, under MealySemantics, on every transition
// color; under MooreSemantics they must agree on the state color and transition colors are dropped.
// A disagreement means p is not a bisimulation and Quotient panics with an error wrapping
// ErrQuotientColorConflict. A partition over a different number of states is returned as
// ErrPartitionMismatch.
func Quotient(ts Deterministic, p *Partition, semantics Semantics, opts ...Option) (*Automaton, error) {
	if semantics != MealySemantics && semantics != MooreSemantics {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSemantics, semantics)
	}
	if p.NumStates() != ts.NumStates() {
		return nil, fmt.Errorf("%w: partition covers %d states, automaton has %d",
			ErrPartitionMismatch, p.NumStates(), ts.NumStates())
	}
	if ts.NumStates() == 0 {
		return NewAutomaton(ts.Alphabet()), nil
	}

	cfg := newConfig(opts...)
	start := time.Now()
	alphabet := ts.Alphabet()

	// Renumber blocks with the initial block first.
	initialBlock := p.BlockOf(ts.Initial())
	newID := make([]int, p.Size())
	newID[initialBlock] = 0
	next := 1
	for b := 0; b < p.Size(); b++ {
		if b != initialBlock {
			newID[b] = next
			next++
		}
	}
	order := make([]int, p.Size())
	for b, id := range newID {
		order[id] = b
	}

	out := NewAutomaton(alphabet, WithCapacity(p.Size()))
	for _, b := range order {
		members := p.blocks[b]
		color := ts.StateColor(members[0])
		if semantics == MooreSemantics {
			colors := set.New[int](1)
			for _, q := range members {
				colors.Insert(ts.StateColor(q))
			}
			if colors.Size() > 1 {
				panic(fmt.Errorf("%w: block %v has state colors %v", ErrQuotientColorConflict,
					members, colors.Slice()))
			}
		}
		out.CreateState(color)
	}

	for _, b := range order {
		members := p.blocks[b]
		for a := 0; a < alphabet.Size(); a++ {
			targets := set.New[int](1)
			colors := set.New[int](1)
			defined := 0
			for _, q := range members {
				dest, color, ok := ts.Edge(q, a)
				if !ok {
					continue
				}
				defined++
				targets.Insert(p.BlockOf(dest))
				colors.Insert(color)
			}

			if defined == 0 {
				continue
			}
			if defined != len(members) || targets.Size() > 1 {
				panic(fmt.Errorf("%w: block %v disagrees on the transition on %q (targets %v)",
					ErrQuotientColorConflict, members, alphabet.Symbol(a), targets.Slice()))
			}
			color := 0
			if semantics == MealySemantics {
				if colors.Size() > 1 {
					panic(fmt.Errorf("%w: block %v has colors %v on %q", ErrQuotientColorConflict,
						members, colors.Slice(), alphabet.Symbol(a)))
				}
				color = colors.Slice()[0]
			}
			if err := out.AddTransition(newID[b], a, color, newID[targets.Slice()[0]]); err != nil {
				return nil, err
			}
		}
	}

	cfg.logger.Debug("collected quotient",
		slog.String("semantics", semantics.String()),
		slog.Int("states", ts.NumStates()),
		slog.Int("blocks", p.Size()),
		slog.Duration("duration", time.Since(start)))
	return out, nil
}
