package automaton

import "log/slog"

// WorklistOrder selects which splitter the partition refiner processes next.
// The computed partition does not depend on it.
type WorklistOrder int

const (
	// LIFO pops the most recently added splitter first.
	LIFO WorklistOrder = iota
	// FIFO pops the oldest splitter first.
	FIFO
)

type config struct {
	capacity   int     // size hint for state tables and automata
	loadFactor float64 // HashMap load factor, default 0.75
	complexity int     // priorities of a precise DPA, -1 derives it from the families
	memoize    bool
	order      WorklistOrder
	logger     *slog.Logger
}

// Option configures constructors and algorithms of this package. Options that
// do not apply to a call are ignored.
type Option func(*config)

func newConfig(opts ...Option) *config {
	c := &config{
		capacity:   1,
		loadFactor: 0.75,
		complexity: -1,
		order:      LIFO,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = Logger()
	}
	return c
}

// WithCapacity sets the expected number of states.
func WithCapacity(capacity int) Option {
	return func(c *config) {
		c.capacity = capacity
	}
}

// WithLoadFactor sets the load factor after which a HashMap doubles its buckets.
// Values outside (0, 1) are ignored.
func WithLoadFactor(loadFactor float64) Option {
	return func(c *config) {
		if loadFactor > 0 && loadFactor < 1 {
			c.loadFactor = loadFactor
		}
	}
}

// WithComplexity fixes the number of priorities N of a precise DPA instead of
// deriving it from the longest progress family.
func WithComplexity(n int) Option {
	return func(c *config) {
		c.complexity = n
	}
}

// WithMemoizedTransitions caches the result of every precise DPA step.
func WithMemoizedTransitions() Option {
	return func(c *config) {
		c.memoize = true
	}
}

// WithWorklistOrder sets the splitter processing order of the partition refiner.
func WithWorklistOrder(order WorklistOrder) Option {
	return func(c *config) {
		c.order = order
	}
}

// WithLogger overrides the package logger for one call.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
