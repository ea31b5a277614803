package automaton

import (
	"fmt"
	"iter"
	"log/slog"
	"time"
)

// Congruence is the leading right congruence of a precise DPA: a complete, deterministic, pointed
// transition system. Successor must be defined for every class and symbol.
type Congruence interface {
	Alphabet() *Alphabet
	Initial() int
	NumStates() int
	Successor(class, symbol int) (int, bool)
}

// ProgressDFA is a complete DFA tracking one priority level of one class.
type ProgressDFA interface {
	Initial() int
	NumStates() int
	Successor(state, symbol int) (int, bool)
	IsAccepting(state int) bool
}

var (
	_ Congruence  = &RightCongruence{}
	_ ProgressDFA = &DFA{}
)

// PreciseDPA is the precise DPA of a leading congruence and its progress DFA families. Its states are
// PStates and are never enumerated up front: transitions are computed by Step on demand and Explore
// collects the reachable part. The color of a transition is the least level whose progress DFA accepts
// after reading the symbol.
type PreciseDPA struct {
	leading  Congruence
	alphabet *Alphabet
	width    int

	// Progress DFAs indexed by class, then level. Every family is padded to width.
	dfas [][]ProgressDFA

	initial PState

	memo     *HashMap[transitionKey, preciseStep]
	capacity int
	logger   *slog.Logger
}

// PreciseEdge is a transition of a precise DPA.
type PreciseEdge struct {
	Source PState
	Symbol int
	Color  int
	Target PState
}

type transitionKey struct {
	state  PState
	symbol int
}

func (k transitionKey) Hash() uint64 {
	return mixInto(k.state.Hash(), k.symbol)
}

func (k transitionKey) Equals(other Hashable) bool {
	o, ok := other.(transitionKey)
	return ok && o == k
}

type preciseStep struct {
	color  int
	target PState
}

// NewPreciseDPA validates the leading congruence and the progress DFA families (families[c] belongs to
// class c) and returns the precise DPA over them.
//
// The number of priorities N is the length of the longest family unless WithComplexity is given; it
// must lie in 1..MaxPriorities. Shorter families are padded with the universal DFA. Every DFA must be
// complete and the DFA on the last level of each family must accept after every transition, which makes
// the least accepting level of every step well defined.
func NewPreciseDPA(leading Congruence, families [][]ProgressDFA, opts ...Option) (*PreciseDPA, error) {
	start := time.Now()
	cfg := newConfig(opts...)

	if leading == nil || leading.NumStates() == 0 {
		return nil, fmt.Errorf("%w: leading congruence has no classes", ErrIncompleteCollaborator)
	}
	alphabet := leading.Alphabet()

	width := cfg.complexity
	if width < 0 {
		width = 0
		for _, family := range families {
			width = max(width, len(family))
		}
	}
	if width < 1 || width > MaxPriorities {
		return nil, fmt.Errorf("%w: %d, want 1 to %d", ErrInvalidPriorityCount, width, MaxPriorities)
	}

	if len(families) != leading.NumStates() {
		return nil, fmt.Errorf("%w: %d progress families for %d classes",
			ErrIncompleteCollaborator, len(families), leading.NumStates())
	}
	if err := checkCongruence(leading); err != nil {
		return nil, err
	}

	padding := MakeUniversalDFA(alphabet)
	dfas := make([][]ProgressDFA, len(families))
	for c, family := range families {
		if len(family) > width {
			return nil, fmt.Errorf("%w: class %d has %d progress DFAs, complexity is %d",
				ErrFamilyWidthMismatch, c, len(family), width)
		}

		padded := make([]ProgressDFA, width)
		copy(padded, family)
		for i := len(family); i < width; i++ {
			padded[i] = padding
		}

		for i, dfa := range padded {
			if err := checkProgressDFA(dfa, alphabet, i == width-1); err != nil {
				return nil, fmt.Errorf("class %d, level %d: %w", c, i, err)
			}
		}
		dfas[c] = padded
	}

	e := leading.Initial()
	classes := make([]int, width)
	states := make([]int, width)
	for i := range width {
		classes[i] = e
		states[i] = dfas[e][i].Initial()
	}

	p := &PreciseDPA{
		leading:  leading,
		alphabet: alphabet,
		width:    width,
		dfas:     dfas,
		initial:  NewPState(e, classes, states),
		capacity: cfg.capacity,
		logger:   cfg.logger,
	}
	if cfg.memoize {
		p.memo = NewHashMap[transitionKey, preciseStep](WithCapacity(cfg.capacity * alphabet.Size()))
	}

	p.logger.Debug("built precise DPA",
		slog.Int("priorities", width),
		slog.Int("classes", leading.NumStates()),
		slog.Bool("memoized", cfg.memoize),
		slog.Duration("duration", time.Since(start)))
	return p, nil
}

func checkCongruence(leading Congruence) error {
	n := leading.NumStates()
	alphabet := leading.Alphabet()
	if alphabet == nil || alphabet.Size() == 0 {
		return ErrEmptyAlphabet
	}
	if e := leading.Initial(); e < 0 || e >= n {
		return fmt.Errorf("%w: initial class %d of leading congruence", ErrIncompleteCollaborator, e)
	}
	for c := 0; c < n; c++ {
		for a := 0; a < alphabet.Size(); a++ {
			if d, ok := leading.Successor(c, a); !ok || d < 0 || d >= n {
				return fmt.Errorf("%w: leading congruence has no transition from class %d on %q",
					ErrIncompleteCollaborator, c, alphabet.Symbol(a))
			}
		}
	}
	return nil
}

// checkProgressDFA verifies that dfa is complete; if top is set, every transition must also lead to an
// accepting state.
func checkProgressDFA(dfa ProgressDFA, alphabet *Alphabet, top bool) error {
	if dfa == nil {
		return fmt.Errorf("%w: missing progress DFA", ErrIncompleteCollaborator)
	}
	n := dfa.NumStates()
	if n == 0 {
		return fmt.Errorf("%w: progress DFA has no states", ErrIncompleteCollaborator)
	}
	if init := dfa.Initial(); init < 0 || init >= n {
		return fmt.Errorf("%w: initial state %d of progress DFA", ErrIncompleteCollaborator, init)
	}

	for q := 0; q < n; q++ {
		for a := 0; a < alphabet.Size(); a++ {
			p, ok := dfa.Successor(q, a)
			if !ok || p < 0 || p >= n {
				return fmt.Errorf("%w: progress DFA has no transition from state %d on %q",
					ErrIncompleteCollaborator, q, alphabet.Symbol(a))
			}
			if top && !dfa.IsAccepting(p) {
				return fmt.Errorf("%w: top level progress DFA rejects state %d reached from %d on %q",
					ErrIncompleteCollaborator, p, q, alphabet.Symbol(a))
			}
		}
	}
	return nil
}

func (p *PreciseDPA) Alphabet() *Alphabet {
	return p.alphabet
}

// Complexity returns the number of priorities N.
func (p *PreciseDPA) Complexity() int {
	return p.width
}

func (p *PreciseDPA) Initial() PState {
	return p.initial
}

// Leading returns the leading congruence.
func (p *PreciseDPA) Leading() Congruence {
	return p.leading
}

// ProgressDFA returns the progress DFA of class c on the given level.
func (p *PreciseDPA) ProgressDFA(c, level int) ProgressDFA {
	return p.dfas[c][level]
}

// Step takes the transition of q on symbol. It returns the color, which is the least level whose active
// progress DFA accepts after reading symbol, and the successor: levels below the color carry on with
// their DFA, the others restart with the DFA of the new leading class.
func (p *PreciseDPA) Step(q PState, symbol int) (int, PState) {
	if p.memo == nil {
		return p.step(q, symbol)
	}

	key := transitionKey{state: q, symbol: symbol}
	if s, ok := p.memo.Get(key); ok {
		return s.color, s.target
	}
	color, next := p.step(q, symbol)
	p.memo.Set(key, preciseStep{color: color, target: next})
	return color, next
}

func (p *PreciseDPA) step(q PState, symbol int) (int, PState) {
	if symbol < 0 || symbol >= p.alphabet.Size() {
		panic(fmt.Errorf("%w: index %d", ErrUnknownSymbol, symbol))
	}

	// Validation guarantees every lookup below succeeds.
	d, _ := p.leading.Successor(q.Class(), symbol)

	var reached [MaxPriorities]int
	least := -1
	for i := 0; i < p.width; i++ {
		dfa := p.dfas[q.classes[i]][i]
		s, _ := dfa.Successor(int(q.states[i]), symbol)
		reached[i] = s
		if dfa.IsAccepting(s) {
			least = i
			break
		}
	}
	if least < 0 {
		panic(fmt.Errorf("automaton: no progress level accepts on %q from %s", p.alphabet.Symbol(symbol), q))
	}

	next := PState{class: uint32(d), width: uint8(p.width)}
	for i := 0; i < p.width; i++ {
		if i < least {
			next.classes[i] = q.classes[i]
			next.states[i] = uint32(reached[i])
		} else {
			next.classes[i] = uint32(d)
			next.states[i] = uint32(p.dfas[d][i].Initial())
		}
	}
	return least, next
}

// EdgesFrom iterates over the transitions of q, one per symbol.
func (p *PreciseDPA) EdgesFrom(q PState) iter.Seq[PreciseEdge] {
	return func(yield func(PreciseEdge) bool) {
		for a := 0; a < p.alphabet.Size(); a++ {
			color, target := p.Step(q, a)
			if !yield(PreciseEdge{Source: q, Symbol: a, Color: color, Target: target}) {
				return
			}
		}
	}
}

// Run reads word from the initial state and returns the colors of the transitions taken and the
// reached state.
func (p *PreciseDPA) Run(word []int) ([]int, PState) {
	colors := make([]int, 0, len(word))
	q := p.initial
	for _, a := range word {
		var c int
		c, q = p.Step(q, a)
		colors = append(colors, c)
	}
	return colors, q
}

// Exploration is the reachable part of a precise DPA. States are numbered densely in the order a
// breadth-first search from the initial state discovers them; the initial state is 0.
type Exploration struct {
	alphabet *Alphabet
	states   []PState
	index    *HashMap[PState, int]

	// Packed transitions, see Automaton.
	dests  []int
	colors []int
}

// Explore computes the reachable states and their transitions.
func (p *PreciseDPA) Explore() *Exploration {
	start := time.Now()
	k := p.alphabet.Size()

	x := &Exploration{
		alphabet: p.alphabet,
		index:    NewHashMap[PState, int](WithCapacity(p.capacity)),
	}
	x.add(p.initial)

	// x.states doubles as the BFS queue.
	for next := 0; next < len(x.states); next++ {
		q := x.states[next]
		for a := 0; a < k; a++ {
			color, target := p.Step(q, a)
			x.dests = append(x.dests, x.add(target))
			x.colors = append(x.colors, color)
		}
	}

	p.logger.Debug("explored precise DPA",
		slog.Int("states", len(x.states)),
		slog.Int("priorities", p.width),
		slog.Duration("duration", time.Since(start)))
	return x
}

func (x *Exploration) add(q PState) int {
	id, loaded := x.index.GetOrSet(q, len(x.states))
	if !loaded {
		x.states = append(x.states, q)
	}
	return id
}

// Len returns the number of reachable states.
func (x *Exploration) Len() int {
	return len(x.states)
}

// State returns the composite state with id i.
func (x *Exploration) State(i int) PState {
	return x.states[i]
}

// States returns the reachable states in id order.
func (x *Exploration) States() []PState {
	return append([]PState(nil), x.states...)
}

// Index returns the id of q, false if q is not reachable.
func (x *Exploration) Index(q PState) (int, bool) {
	return x.index.Get(q)
}

// Automaton returns the explored states as a concrete automaton with edge colors. State ids are kept.
func (x *Exploration) Automaton() *Automaton {
	k := x.alphabet.Size()
	a := NewAutomaton(x.alphabet, WithCapacity(len(x.states)))
	for range x.states {
		a.CreateState(0)
	}
	for i, dest := range x.dests {
		_ = a.AddTransition(i/k, i%k, x.colors[i], dest)
	}
	return a
}

// Size returns the number of reachable states.
func (p *PreciseDPA) Size() int {
	return p.Explore().Len()
}

// CollectMealy collects the reachable part into a Mealy machine whose outputs are the priorities.
func (p *PreciseDPA) CollectMealy() *MealyMachine {
	return NewMealyMachine(p.Explore().Automaton())
}

// BuildPreciseDPA builds the precise DPA of fwpm, collects it and minimizes it with respect to its
// priorities.
func BuildPreciseDPA(fwpm *FWPM, opts ...Option) (*DPA, error) {
	p, err := NewPreciseDPA(fwpm.Leading(), fwpm.Families(), opts...)
	if err != nil {
		return nil, err
	}
	return NewDPA(MinimizeMealy(p.CollectMealy(), opts...).Automaton), nil
}
