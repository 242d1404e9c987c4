package speller

import (
	"encoding/binary"
	"math"

	"hfstspell/internal/symbols"
)

// byteBuilder assembles a raw OL transducer image for tests, mirroring the
// wire layout internal/transducer decodes. Kept local to this package
// (rather than shared with internal/transducer's own test helper of the
// same shape) since the two packages' test binaries don't share code.
type byteBuilder struct {
	buf []byte
}

func (b *byteBuilder) u16(v uint16) *byteBuilder {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
	return b
}

func (b *byteBuilder) u32(v uint32) *byteBuilder {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
	return b
}

func (b *byteBuilder) f32(v float32) *byteBuilder {
	return b.u32(math.Float32bits(v))
}

func (b *byteBuilder) bool32(v bool) *byteBuilder {
	if v {
		return b.u32(1)
	}
	return b.u32(0)
}

func (b *byteBuilder) cstr(s string) *byteBuilder {
	b.buf = append(b.buf, s...)
	b.buf = append(b.buf, 0)
	return b
}

func (b *byteBuilder) bytes() []byte { return b.buf }

func (b *byteBuilder) header(numberOfInputSymbols, numberOfSymbols uint16, indexSize, targetSize, numStates, numTransitions uint32, weighted bool) *byteBuilder {
	b.u16(numberOfInputSymbols).u16(numberOfSymbols)
	b.u32(indexSize).u32(targetSize).u32(numStates).u32(numTransitions)
	b.bool32(weighted)
	b.bool32(true)  // deterministic
	b.bool32(true)  // input_deterministic
	b.bool32(true)  // minimized
	b.bool32(false) // cyclic
	b.bool32(false) // has_epsilon_epsilon_transitions
	b.bool32(false) // has_input_epsilon_transitions
	b.bool32(false) // has_input_epsilon_cycles
	b.bool32(false) // has_unweighted_input_epsilon_cycles
	return b
}

func (b *byteBuilder) indexEntry(inputSymbol uint16, target uint32) *byteBuilder {
	return b.u16(inputSymbol).u32(target)
}

func (b *byteBuilder) transitionEntry(input, output uint16, target uint32, weight float32) *byteBuilder {
	return b.u16(input).u16(output).u32(target).f32(weight)
}

const noSym = uint16(symbols.NoSymbol)
const noIdx = uint32(symbols.NoTableIndex)

// buildABLexicon builds the smallest OL image whose language is exactly
// {"ab"}: root --a--> mid (non-final) --b--> end (final).
func buildABLexicon() []byte {
	b := &byteBuilder{}
	b.header(3, 3, 4, 4, 3, 2, false)
	b.cstr("")
	b.cstr("a")
	b.cstr("b")

	// index table: root's own 4 cells (final-check, epsilon, 'a', 'b').
	b.indexEntry(noSym, noIdx)                          // root: not final
	b.indexEntry(noSym, noIdx)                          // root: no epsilon arc
	b.indexEntry(1, uint32(symbols.TargetTable))        // root --a--> transition 0
	b.indexEntry(noSym, noIdx)                          // root: no 'b' arc

	// transition table.
	b.transitionEntry(1, 1, uint32(symbols.TargetTable)+1, 0) // idx0: a -> state TT+1 (mid)
	b.transitionEntry(noSym, noSym, noIdx, 0)                 // idx1: mid's final-check: not final
	b.transitionEntry(2, 2, uint32(symbols.TargetTable)+3, 0) // idx2: mid --b--> state TT+3 (end)
	b.transitionEntry(noSym, noSym, 1, 0)                     // idx3: end's final-check: final, weight 0

	return b.bytes()
}

// buildIdentityMutator builds a single-state OL image accepting any string
// over {a,b}, transducing every symbol to itself at zero cost: a trivial
// "no error" mutator used to exercise the Correct pipeline end to end
// without needing to encode real edit operations.
func buildIdentityMutator() []byte {
	b := &byteBuilder{}
	b.header(3, 3, 4, 2, 1, 2, false)
	b.cstr("")
	b.cstr("a")
	b.cstr("b")

	b.indexEntry(noSym, 0)                        // state 0: final, weight bits 0.0
	b.indexEntry(noSym, noIdx)                    // state 0: no epsilon arc
	b.indexEntry(1, uint32(symbols.TargetTable))  // state 0 --a--> transition 0
	b.indexEntry(2, uint32(symbols.TargetTable)+1) // state 0 --b--> transition 1

	b.transitionEntry(1, 1, 0, 0) // idx0: a:a loops back to state 0
	b.transitionEntry(2, 2, 0, 0) // idx1: b:b loops back to state 0

	return b.bytes()
}

// buildCatDogLexicon builds an OL image whose language is exactly
// {"cat", "dog"}: root is the only branching state (an index-table
// state with a 'c' and a 'd' arc); everything past it is a straight
// transition-table chain, since neither word branches again once its
// first letter is fixed.
//
// A transition-table-space state X (X = symbols.TargetTable+k) occupies
// two consecutive transition-table slots: k is its own final-check
// (input/output NoSymbol; target 1 with a real weight if final,
// target 0 otherwise), and k+1 is its single outgoing arc. A state with
// no further arcs (a word's last letter) needs only its k slot, plus a
// NoSymbol slot at k+1 when another chain follows, so that chain's first
// arc is not read as one of its own.
func buildCatDogLexicon() []byte {
	// symbols: 0=eps, 1=c, 2=a, 3=t, 4=d, 5=o, 6=g
	b := &byteBuilder{}
	const rootCells = 2 + 6 // final-check, epsilon, one slot per letter

	b.header(7, 7, rootCells, 13, 9, 8, false)
	b.cstr("")
	b.cstr("c")
	b.cstr("a")
	b.cstr("t")
	b.cstr("d")
	b.cstr("o")
	b.cstr("g")

	tt := func(k uint32) uint32 { return uint32(symbols.TargetTable) + k }

	// index table: root only. Cells: final-check, epsilon, c, a, t, d, o, g.
	b.indexEntry(noSym, noIdx)   // root: not final
	b.indexEntry(noSym, noIdx)   // root: no epsilon arc
	b.indexEntry(1, tt(0))       // c -> transition slot 0 (root's own c-arc)
	b.indexEntry(noSym, noIdx)   // a
	b.indexEntry(noSym, noIdx)   // t
	b.indexEntry(4, tt(7))       // d -> transition slot 7 (root's own d-arc)
	b.indexEntry(noSym, noIdx)   // o
	b.indexEntry(noSym, noIdx)   // g

	// transition table: "c-a-t" chain (slots 0-5), a separator (6), then
	// "d-o-g" (7-12).
	b.transitionEntry(1, 1, tt(1), 0) // 0: root --c--> after-c (state TT+1)
	b.transitionEntry(noSym, noSym, 0, 0) // 1: after-c final-check: not final
	b.transitionEntry(2, 2, tt(3), 0) // 2: after-c --a--> after-ca (state TT+3)
	b.transitionEntry(noSym, noSym, 0, 0) // 3: after-ca final-check: not final
	b.transitionEntry(3, 3, tt(5), 0) // 4: after-ca --t--> "cat" (state TT+5)
	b.transitionEntry(noSym, noSym, 1, 0) // 5: "cat" final-check: final, weight 0

	b.transitionEntry(noSym, noSym, 0, 0) // 6: ends "cat"'s (empty) arc list

	b.transitionEntry(4, 4, tt(8), 0) // 7: root --d--> after-d (state TT+8)
	b.transitionEntry(noSym, noSym, 0, 0) // 8: after-d final-check: not final
	b.transitionEntry(5, 5, tt(10), 0) // 9: after-d --o--> after-do (state TT+10)
	b.transitionEntry(noSym, noSym, 0, 0) // 10: after-do final-check: not final
	b.transitionEntry(6, 6, tt(12), 0) // 11: after-do --g--> "dog" (state TT+12)
	b.transitionEntry(noSym, noSym, 1, 0) // 12: "dog" final-check: final, weight 0

	return b.bytes()
}

// boundedEditLetters is the alphabet the bounded edit-distance mutator
// spans; it covers every letter used by buildCatDogLexicon and by every
// misspelled test input exercised against it.
var boundedEditLetters = []string{"c", "a", "t", "d", "o", "g", "i"}

// maxEditBudget caps how many single-symbol edits (substitution,
// deletion, insertion) buildBoundedEditMutator can spend on a
// correction. Edits are encoded as edit-budget-used states (0 through
// maxEditBudget), not as a single state looping on itself: a self-loop
// combined with epsilon-input insertion arcs would make buildCache's
// own epsilon-closure pass diverge, since buildCache always resets
// s.limit to the float32 sentinel max before it runs (cache.go) and
// expands epsilons unconditionally regardless of what limit the caller
// eventually passes to Correct. Chaining budget states instead keeps
// every epsilon-input arc strictly forward (state e can only reach
// e+1), so the closure is acyclic and bounded by maxEditBudget however
// generous a weight limit it runs under.
const maxEditBudget = 3

// buildBoundedEditMutator builds an OL image implementing a bounded
// Levenshtein error model over boundedEditLetters: from edit-budget
// state e, every letter matches itself for free (identity, stays at
// e); every letter may be substituted for a different letter or
// deleted at a cost of 1.0, landing in state e+1; every letter may also
// be inserted (epsilon input) for 1.0, also landing in e+1. Every state
// is final at weight 0, so a correction may stop spending its budget at
// any point. State maxEditBudget offers only identity: its budget is
// spent.
func buildBoundedEditMutator() []byte {
	letters := boundedEditLetters
	n := uint32(len(letters))
	numStates := uint32(maxEditBudget + 1)
	cellSize := 2 + n            // final-check, epsilon, one slot per letter
	fullGroupSize := n*(n+1) + n // insertion block, then per-letter identity+subs+deletion
	lastGroupSize := n           // identity only: budget exhausted

	// base is the transition-table offset where state e's own outgoing
	// arcs begin; every state before maxEditBudget has the same size, so
	// this holds for every e without needing a running total.
	base := func(e uint32) uint32 { return e * fullGroupSize }
	totalTransitions := maxEditBudget*fullGroupSize + lastGroupSize

	b := &byteBuilder{}
	b.header(uint16(n+1), uint16(n+1), cellSize*numStates, totalTransitions, numStates, totalTransitions, true)
	b.cstr("")
	for _, l := range letters {
		b.cstr(l)
	}

	// index table: one cellSize block per edit-budget state.
	for e := uint32(0); e < numStates; e++ {
		atBudget := e == maxEditBudget
		b.indexEntry(noSym, 0) // every state may stop here, weight 0
		if atBudget {
			b.indexEntry(noSym, noIdx) // budget spent: no more insertions
		} else {
			b.indexEntry(0, uint32(symbols.TargetTable)+base(e)) // epsilon -> insertion block
		}
		for j := uint32(0); j < n; j++ {
			var letterStart uint32
			if atBudget {
				letterStart = base(e) + j
			} else {
				letterStart = base(e) + n + j*(n+1)
			}
			b.indexEntry(uint16(j+1), uint32(symbols.TargetTable)+letterStart)
		}
	}

	// transition table: one block per edit-budget state, addressed by
	// index-table state (raw index-table address, not TargetTable-biased,
	// since these arcs land on other index-table states).
	for e := uint32(0); e < numStates; e++ {
		atBudget := e == maxEditBudget
		thisState := e * cellSize
		nextState := thisState + cellSize

		if !atBudget {
			for k := uint32(0); k < n; k++ {
				b.transitionEntry(0, uint16(k+1), nextState, 1.0) // insertion
			}
		}
		for j := uint32(0); j < n; j++ {
			sym := uint16(j + 1)
			b.transitionEntry(sym, sym, thisState, 0) // identity: stays at e
			if atBudget {
				continue
			}
			for k := uint32(0); k < n; k++ {
				if k == j {
					continue
				}
				b.transitionEntry(sym, uint16(k+1), nextState, 1.0) // substitution
			}
			b.transitionEntry(sym, 0, nextState, 1.0) // deletion: output epsilon
		}
	}

	return b.bytes()
}
