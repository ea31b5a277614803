package automaton

import "errors"

// Construction errors of the precise DPA. All of them are detected eagerly by
// NewPreciseDPA; callers branch on them with errors.Is.
var (
	// ErrInvalidPriorityCount is returned when the number of progress DFAs per
	// class is zero or exceeds MaxPriorities.
	ErrInvalidPriorityCount = errors.New("automaton: invalid number of priorities")

	// ErrIncompleteCollaborator is returned when the leading congruence or a
	// progress DFA lacks a transition, or when the top level of a progress
	// family is not accepting after every transition.
	ErrIncompleteCollaborator = errors.New("automaton: incomplete collaborator")

	// ErrFamilyWidthMismatch is returned when a progress family has more DFAs
	// than the configured complexity.
	ErrFamilyWidthMismatch = errors.New("automaton: progress family wider than complexity")
)

// ErrQuotientColorConflict is the panic value (wrapped) raised by Quotient when
// states of one block disagree on an outgoing color or target block. It
// signals a broken partition, never caller misuse.
var ErrQuotientColorConflict = errors.New("automaton: quotient block disagrees on colors")

var (
	ErrEmptyAlphabet       = errors.New("automaton: empty alphabet")
	ErrUnknownSymbol       = errors.New("automaton: unknown symbol")
	ErrUnknownState        = errors.New("automaton: unknown state")
	ErrDuplicateTransition = errors.New("automaton: duplicate transition")
	ErrAlphabetMismatch    = errors.New("automaton: alphabets differ")
	ErrPartitionMismatch   = errors.New("automaton: partition does not match automaton")
	ErrUnknownSemantics    = errors.New("automaton: unknown semantics")
	ErrEmptyPeriod         = errors.New("automaton: empty period")
)
