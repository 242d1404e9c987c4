// Package symbols holds the primitive semantic types shared by the
// transducer decoder and the search engine.
package symbols

import "math"

// SymbolNumber identifies a symbol in an alphabet.
type SymbolNumber uint16

// TransitionTableIndex addresses either the index table or, once biased by
// TargetTable, the transition table.
type TransitionTableIndex uint32

// Weight is the tropical-semiring weight used throughout the automata:
// lower is better.
type Weight float32

const (
	// NoSymbol marks the absence of a symbol.
	NoSymbol SymbolNumber = 0xFFFF
	// NoTableIndex marks the absence of a table index.
	NoTableIndex TransitionTableIndex = 0xFFFFFFFF
	// TargetTable separates index-table references from transition-table
	// references within a single TransitionTableIndex value.
	TargetTable TransitionTableIndex = 1 << 31
)

// InfiniteWeight is the sentinel weight returned for out-of-range reads.
var InfiniteWeight = Weight(math.Inf(1))

// Epsilon is symbol number zero, the empty string.
const Epsilon SymbolNumber = 0
