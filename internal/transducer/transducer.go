// Package transducer decodes HFST optimized-lookup (OL) binary transducer
// images and provides the low-level navigation primitives the search
// engine in internal/speller walks: index/transition table lookups, flag
// diacritic classification, and byte-level tokenisation of input strings.
package transducer

import "hfstspell/internal/symbols"

// STransition is a single resolved outgoing transition: where it leads,
// what it emits, and at what cost.
type STransition struct {
	Target symbols.TransitionTableIndex
	Symbol symbols.SymbolNumber
	Weight symbols.Weight
}

var noTransition = STransition{Target: symbols.NoTableIndex, Symbol: symbols.NoSymbol, Weight: symbols.InfiniteWeight}

// Transducer is a fully decoded OL automaton: header, alphabet, index and
// transition tables, and the byte encoder built from its input alphabet.
// The tables and header are never modified after Load. The alphabet and
// encoder are: a Speller adds symbols to them (Alphabet.AddSymbol,
// Encoder.ReadInputSymbol) when it builds its alphabet translator and
// whenever a search meets input that the alphabet cannot tokenise, so a
// Transducer shared by Spellers in several goroutines is not protected
// against concurrent symbol additions.
type Transducer struct {
	Header      Header
	Alphabet    *Alphabet
	Indices     *IndexTable
	Transitions *TransitionTable
	Encoder     *Encoder
}

// Load decodes a transducer from an in-memory image, such as one produced
// by a memory-mapped file (see LoadFile) or read fully into a byte slice.
func Load(data []byte) (*Transducer, error) {
	c := newCursor(data)

	if err := skipHFST3Wrapper(c); err != nil {
		return nil, err
	}

	header, err := readHeader(c)
	if err != nil {
		return nil, err
	}

	alphabet, err := readAlphabet(c, header.NumberOfSymbols)
	if err != nil {
		return nil, err
	}

	indices, err := readIndexTable(c, header.IndexTableSize)
	if err != nil {
		return nil, err
	}

	transitions, err := readTransitionTable(c, header.TargetTableSize)
	if err != nil {
		return nil, err
	}

	encoder := newEncoder(alphabet.KeyTable, header.NumberOfInputSymbols)

	return &Transducer{
		Header:      header,
		Alphabet:    alphabet,
		Indices:     indices,
		Transitions: transitions,
		Encoder:     encoder,
	}, nil
}

// Next resolves the transition-table-space index reached from i on sym,
// biasing index-table references by symbols.TargetTable so the result
// space is uniform regardless of which table i currently addresses.
func (t *Transducer) Next(i symbols.TransitionTableIndex, sym symbols.SymbolNumber) symbols.TransitionTableIndex {
	if i >= symbols.TargetTable {
		return i - symbols.TargetTable + 1
	}
	return t.Indices.Target(i+1+symbols.TransitionTableIndex(sym)) - symbols.TargetTable
}

// HasTransitions reports whether i has an outgoing arc on sym.
func (t *Transducer) HasTransitions(i symbols.TransitionTableIndex, sym symbols.SymbolNumber) bool {
	if sym == symbols.NoSymbol {
		return false
	}
	if i >= symbols.TargetTable {
		return t.Transitions.InputSymbol(i-symbols.TargetTable) == sym
	}
	return t.Indices.InputSymbol(i+symbols.TransitionTableIndex(sym)) == sym
}

// HasEpsilonsOrFlags reports whether i's first outgoing arc is epsilon or a
// flag diacritic (the index/transition tables sort epsilon and flag arcs
// first among a state's outgoing arcs, so checking the first arc suffices).
func (t *Transducer) HasEpsilonsOrFlags(i symbols.TransitionTableIndex) bool {
	if i >= symbols.TargetTable {
		sym := t.Transitions.InputSymbol(i - symbols.TargetTable)
		return sym == symbols.Epsilon || t.Alphabet.IsFlag(sym)
	}
	return t.Indices.InputSymbol(i) == symbols.Epsilon
}

// HasNonEpsilonsOrFlags reports whether i has an outgoing arc on a symbol
// other than epsilon. For a transition-table state flag diacritics are
// excluded too; for an index-table state every symbol cell from 1 upward
// is scanned, flags included.
func (t *Transducer) HasNonEpsilonsOrFlags(i symbols.TransitionTableIndex) bool {
	if i >= symbols.TargetTable {
		sym := t.Transitions.InputSymbol(i - symbols.TargetTable)
		return sym != symbols.NoSymbol && sym != symbols.Epsilon && !t.Alphabet.IsFlag(sym)
	}
	maxSymbol := symbols.SymbolNumber(len(t.Alphabet.KeyTable))
	for sym := symbols.SymbolNumber(1); sym < maxSymbol; sym++ {
		if t.Indices.InputSymbol(i+symbols.TransitionTableIndex(sym)) == sym {
			return true
		}
	}
	return false
}

// TakeEpsilons returns the epsilon transition at i, or noTransition if the
// arc there isn't an epsilon. i is a raw transition-table offset already
// stripped of the symbols.TargetTable bias — the return value of Next, not
// a lexicon/mutator state field.
func (t *Transducer) TakeEpsilons(i symbols.TransitionTableIndex) STransition {
	if t.Transitions.InputSymbol(i) != symbols.Epsilon {
		return noTransition
	}
	return STransition{
		Target: t.Transitions.Target(i),
		Symbol: t.Transitions.OutputSymbol(i),
		Weight: t.Transitions.Weight(i),
	}
}

// TakeEpsilonsAndFlags returns the transition at i if it's epsilon or a
// flag diacritic input, or noTransition otherwise. See TakeEpsilons for
// what i addresses.
func (t *Transducer) TakeEpsilonsAndFlags(i symbols.TransitionTableIndex) STransition {
	in := t.Transitions.InputSymbol(i)
	if in != symbols.Epsilon && !t.Alphabet.IsFlag(in) {
		return noTransition
	}
	return STransition{
		Target: t.Transitions.Target(i),
		Symbol: t.Transitions.OutputSymbol(i),
		Weight: t.Transitions.Weight(i),
	}
}

// TakeNonEpsilons returns the transition at i if its input matches sym
// exactly, or noTransition otherwise. See TakeEpsilons for what i
// addresses.
func (t *Transducer) TakeNonEpsilons(i symbols.TransitionTableIndex, sym symbols.SymbolNumber) STransition {
	if t.Transitions.InputSymbol(i) != sym {
		return noTransition
	}
	return STransition{
		Target: t.Transitions.Target(i),
		Symbol: t.Transitions.OutputSymbol(i),
		Weight: t.Transitions.Weight(i),
	}
}

// IsFinal reports whether i is a final state or transition.
func (t *Transducer) IsFinal(i symbols.TransitionTableIndex) bool {
	if i >= symbols.TargetTable {
		return t.Transitions.Final(i - symbols.TargetTable)
	}
	return t.Indices.Final(i)
}

// FinalWeight returns the weight of finishing at i; only meaningful when
// IsFinal(i) is true.
func (t *Transducer) FinalWeight(i symbols.TransitionTableIndex) symbols.Weight {
	if i >= symbols.TargetTable {
		return t.Transitions.Weight(i - symbols.TargetTable)
	}
	return t.Indices.FinalWeight(i)
}

// IsFlag reports whether sym is a flag diacritic.
func (t *Transducer) IsFlag(sym symbols.SymbolNumber) bool {
	return t.Alphabet.IsFlag(sym)
}

// IsWeighted reports whether the transducer carries meaningful weights.
func (t *Transducer) IsWeighted() bool {
	return t.Header.Weighted
}

// GetUnknown and GetIdentity return the two special symbols, or
// symbols.NoSymbol if the alphabet doesn't define them.
func (t *Transducer) GetUnknown() symbols.SymbolNumber  { return t.Alphabet.Unknown }
func (t *Transducer) GetIdentity() symbols.SymbolNumber { return t.Alphabet.Identity }

// GetStateSize returns the length a FlagDiacriticState vector must have to
// track every feature this transducer's flag diacritics reference.
func (t *Transducer) GetStateSize() int16 { return t.Alphabet.FlagStateSize }

// NByteUTF8 classifies a UTF-8 lead byte, returning how many bytes the
// codepoint it starts occupies, or 0 if b can't lead a valid UTF-8
// sequence at all.
func NByteUTF8(b byte) int {
	switch {
	case b&0x80 == 0x00:
		return 1
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	default:
		return 0
	}
}
