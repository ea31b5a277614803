package automaton

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/bits-and-blooms/bitset"
)

// Partition is a set of disjoint, non-empty blocks covering the states 0..n-1 of an automaton. Blocks
// are kept in normal form: members ascending, blocks ordered by their least member. Two partitions of
// the same states are equal iff their blocks are.
type Partition struct {
	blocks  [][]int
	blockOf []int
}

// NewPartition validates blocks against numStates and returns them in normal form.
func NewPartition(numStates int, blocks [][]int) (*Partition, error) {
	blockOf := make([]int, numStates)
	for q := range blockOf {
		blockOf[q] = -1
	}
	for b, block := range blocks {
		if len(block) == 0 {
			return nil, fmt.Errorf("%w: block %d is empty", ErrPartitionMismatch, b)
		}
		for _, q := range block {
			if q < 0 || q >= numStates {
				return nil, fmt.Errorf("%w: state %d out of range", ErrPartitionMismatch, q)
			}
			if blockOf[q] != -1 {
				return nil, fmt.Errorf("%w: state %d in two blocks", ErrPartitionMismatch, q)
			}
			blockOf[q] = b
		}
	}
	for q, b := range blockOf {
		if b == -1 {
			return nil, fmt.Errorf("%w: state %d not covered", ErrPartitionMismatch, q)
		}
	}
	return normalizePartition(numStates, blocks), nil
}

func normalizePartition(numStates int, blocks [][]int) *Partition {
	out := make([][]int, 0, len(blocks))
	for _, block := range blocks {
		sorted := slices.Clone(block)
		slices.Sort(sorted)
		out = append(out, sorted)
	}
	slices.SortFunc(out, func(x, y []int) int {
		return x[0] - y[0]
	})

	blockOf := make([]int, numStates)
	for b, block := range out {
		for _, q := range block {
			blockOf[q] = b
		}
	}
	return &Partition{blocks: out, blockOf: blockOf}
}

// Size returns the number of blocks.
func (p *Partition) Size() int {
	return len(p.blocks)
}

// NumStates returns the number of states the partition covers.
func (p *Partition) NumStates() int {
	return len(p.blockOf)
}

// Block returns the members of block b.
func (p *Partition) Block(b int) []int {
	return slices.Clone(p.blocks[b])
}

// Blocks returns all blocks in normal form.
func (p *Partition) Blocks() [][]int {
	out := make([][]int, len(p.blocks))
	for b, block := range p.blocks {
		out[b] = slices.Clone(block)
	}
	return out
}

// BlockOf returns the block containing state q.
func (p *Partition) BlockOf(q int) int {
	return p.blockOf[q]
}

// Equal reports whether both partitions consist of the same blocks.
func (p *Partition) Equal(other *Partition) bool {
	return slices.EqualFunc(p.blocks, other.blocks, func(x, y []int) bool {
		return slices.Equal(x, y)
	})
}

func (p *Partition) String() string {
	parts := make([]string, len(p.blocks))
	for b, block := range p.blocks {
		members := make([]string, len(block))
		for i, q := range block {
			members[i] = fmt.Sprint(q)
		}
		parts[b] = "{" + strings.Join(members, ", ") + "}"
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// signature distinguishes the predecessors of a splitter: states reaching the splitter on the same
// symbol are only kept together if their signatures agree.
type signature func(state, symbol int) int

// refiner is a Hopcroft style partition refinement. Blocks occupy contiguous ranges of elems; while a
// splitter is applied the members of a block that reach it are moved to the front of the block's range.
type refiner struct {
	ts Deterministic
	n  int
	k  int

	// Predecessors in CSR form: the predecessors of q on symbol a are
	// preds[predStart[a*n+q]:predStart[a*n+q+1]].
	preds     []int
	predStart []int

	elems   []int
	loc     []int
	blockOf []int
	first   []int
	end     []int
	marked  []int

	worklist   []int
	inWorklist *bitset.BitSet
	order      WorklistOrder

	splitters int
}

func newRefiner(ts Deterministic, initial [][]int, order WorklistOrder) *refiner {
	n, k := ts.NumStates(), ts.Alphabet().Size()
	r := &refiner{
		ts:         ts,
		n:          n,
		k:          k,
		elems:      make([]int, 0, n),
		loc:        make([]int, n),
		blockOf:    make([]int, n),
		inWorklist: bitset.New(uint(n)),
		order:      order,
	}

	r.predStart = make([]int, k*n+1)
	for q := 0; q < n; q++ {
		for a := 0; a < k; a++ {
			if dest, _, ok := ts.Edge(q, a); ok {
				r.predStart[a*n+dest+1]++
			}
		}
	}
	for i := 1; i < len(r.predStart); i++ {
		r.predStart[i] += r.predStart[i-1]
	}
	r.preds = make([]int, r.predStart[k*n])
	fill := slices.Clone(r.predStart[:k*n])
	for q := 0; q < n; q++ {
		for a := 0; a < k; a++ {
			if dest, _, ok := ts.Edge(q, a); ok {
				r.preds[fill[a*n+dest]] = q
				fill[a*n+dest]++
			}
		}
	}

	for _, block := range initial {
		b := len(r.first)
		r.first = append(r.first, len(r.elems))
		for _, q := range block {
			r.loc[q] = len(r.elems)
			r.blockOf[q] = b
			r.elems = append(r.elems, q)
		}
		r.end = append(r.end, len(r.elems))
		r.marked = append(r.marked, 0)
		r.push(b)
	}
	return r
}

func (r *refiner) push(b int) {
	r.worklist = append(r.worklist, b)
	r.inWorklist.Set(uint(b))
}

func (r *refiner) pop() int {
	var b int
	if r.order == FIFO {
		b, r.worklist = r.worklist[0], r.worklist[1:]
	} else {
		b, r.worklist = r.worklist[len(r.worklist)-1], r.worklist[:len(r.worklist)-1]
	}
	r.inWorklist.Clear(uint(b))
	return b
}

func (r *refiner) size(b int) int {
	return r.end[b] - r.first[b]
}

// run refines until the worklist is empty.
func (r *refiner) run(sig signature) {
	groups := make(map[int][]int)
	for len(r.worklist) > 0 {
		b := r.pop()
		r.splitters++

		// The splitter may itself be split below, so work on a snapshot.
		splitter := slices.Clone(r.elems[r.first[b]:r.end[b]])
		for a := 0; a < r.k; a++ {
			clear(groups)
			for _, q := range splitter {
				for _, p := range r.preds[r.predStart[a*r.n+q]:r.predStart[a*r.n+q+1]] {
					key := sig(p, a)
					groups[key] = append(groups[key], p)
				}
			}
			for _, key := range slices.Sorted(maps.Keys(groups)) {
				r.split(groups[key])
			}
		}
	}
}

// split separates, in every block, the members in x from the others.
func (r *refiner) split(x []int) {
	var touched []int
	for _, q := range x {
		b := r.blockOf[q]
		if r.marked[b] == 0 {
			touched = append(touched, b)
		}
		// Swap q to the end of the marked prefix of its block.
		pos := r.first[b] + r.marked[b]
		other := r.elems[pos]
		r.elems[pos], r.elems[r.loc[q]] = q, other
		r.loc[other], r.loc[q] = r.loc[q], pos
		r.marked[b]++
	}

	for _, b := range touched {
		m := r.marked[b]
		r.marked[b] = 0
		if m == r.size(b) {
			continue
		}

		// The marked prefix becomes a new block.
		nb := len(r.first)
		r.first = append(r.first, r.first[b])
		r.end = append(r.end, r.first[b]+m)
		r.marked = append(r.marked, 0)
		r.first[b] += m
		for _, q := range r.elems[r.first[nb]:r.end[nb]] {
			r.blockOf[q] = nb
		}

		if r.inWorklist.Test(uint(b)) {
			r.push(nb)
		} else if r.size(nb) <= r.size(b) {
			r.push(nb)
		} else {
			r.push(b)
		}
	}
}

func (r *refiner) partition() *Partition {
	blocks := make([][]int, len(r.first))
	for b := range blocks {
		blocks[b] = slices.Clone(r.elems[r.first[b]:r.end[b]])
	}
	return normalizePartition(r.n, blocks)
}

// MealyGreatestBisimulation computes the coarsest bisimulation of ts with respect to its transition
// colors: two states share a block iff every non-empty word produces the same color sequence from both.
func MealyGreatestBisimulation(ts Deterministic, opts ...Option) *Partition {
	cfg := newConfig(opts...)
	start := time.Now()

	var initial [][]int
	if n := ts.NumStates(); n > 0 {
		all := make([]int, n)
		for q := range all {
			all[q] = q
		}
		initial = append(initial, all)
	}

	r := newRefiner(ts, initial, cfg.order)
	r.run(func(q, a int) int {
		_, color, _ := ts.Edge(q, a)
		return color
	})
	p := r.partition()

	cfg.logger.Debug("computed greatest bisimulation",
		slog.String("semantics", MealySemantics.String()),
		slog.Int("states", ts.NumStates()),
		slog.Int("blocks", p.Size()),
		slog.Int("splitters", r.splitters),
		slog.Duration("duration", time.Since(start)))
	return p
}

// MooreGreatestBisimulation computes the coarsest bisimulation of ts with respect to its state colors:
// two states share a block iff every word, including the empty one, leads both to states of equal color.
func MooreGreatestBisimulation(ts Deterministic, opts ...Option) *Partition {
	cfg := newConfig(opts...)
	start := time.Now()

	byColor := make(map[int][]int)
	for q := 0; q < ts.NumStates(); q++ {
		c := ts.StateColor(q)
		byColor[c] = append(byColor[c], q)
	}
	initial := make([][]int, 0, len(byColor))
	for _, c := range slices.Sorted(maps.Keys(byColor)) {
		initial = append(initial, byColor[c])
	}

	r := newRefiner(ts, initial, cfg.order)
	r.run(func(int, int) int {
		return 0
	})
	p := r.partition()

	cfg.logger.Debug("computed greatest bisimulation",
		slog.String("semantics", MooreSemantics.String()),
		slog.Int("states", ts.NumStates()),
		slog.Int("blocks", p.Size()),
		slog.Int("splitters", r.splitters),
		slog.Duration("duration", time.Since(start)))
	return p
}
