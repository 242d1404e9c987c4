package transducer

import (
	"encoding/binary"
	"math"

	"hfstspell/internal/symbols"
)

const (
	indexEntrySize      = 6  // uint16 input_symbol + uint32 first_transition_index
	transitionEntrySize = 12 // uint16 input + uint16 output + uint32 target + float32 weight
)

// IndexTable is the packed index table: input_symbol/first_transition_index
// pairs addressed by TransitionTableIndex. The first_transition_index field
// doubles as a final-state weight for cells that terminate a state; callers
// choose which interpretation applies via Final/FinalWeight vs Target.
type IndexTable struct {
	data []byte
}

func readIndexTable(c *cursor, size symbols.TransitionTableIndex) (*IndexTable, error) {
	n := int(size) * indexEntrySize
	b, err := c.readBytes(n)
	if err != nil {
		return nil, &TableReadError{Table: "index", Want: n, Got: c.remaining()}
	}
	return &IndexTable{data: b}, nil
}

func (t *IndexTable) size() symbols.TransitionTableIndex {
	return symbols.TransitionTableIndex(len(t.data) / indexEntrySize)
}

func (t *IndexTable) InputSymbol(i symbols.TransitionTableIndex) symbols.SymbolNumber {
	if i >= t.size() {
		return symbols.NoSymbol
	}
	off := int(i) * indexEntrySize
	return symbols.SymbolNumber(binary.LittleEndian.Uint16(t.data[off:]))
}

// Target returns the raw first_transition_index field, biased into
// transition-table space by symbols.TargetTable at the call site (see
// Transducer.Next).
func (t *IndexTable) Target(i symbols.TransitionTableIndex) symbols.TransitionTableIndex {
	if i >= t.size() {
		return symbols.NoTableIndex
	}
	off := int(i)*indexEntrySize + 2
	return symbols.TransitionTableIndex(binary.LittleEndian.Uint32(t.data[off:]))
}

func (t *IndexTable) Final(i symbols.TransitionTableIndex) bool {
	if i >= t.size() {
		return false
	}
	return t.InputSymbol(i) == symbols.NoSymbol && t.Target(i) != symbols.NoTableIndex
}

// FinalWeight reinterprets the first_transition_index field's four bytes as
// an IEEE-754 float, exactly as the original union-typed C struct does.
func (t *IndexTable) FinalWeight(i symbols.TransitionTableIndex) symbols.Weight {
	if i >= t.size() {
		return symbols.InfiniteWeight
	}
	off := int(i)*indexEntrySize + 2
	return symbols.Weight(math.Float32frombits(binary.LittleEndian.Uint32(t.data[off:])))
}

// TransitionTable is the packed transition table: input/output symbol
// pairs, a target index, and a weight per entry.
type TransitionTable struct {
	data []byte
}

func readTransitionTable(c *cursor, size symbols.TransitionTableIndex) (*TransitionTable, error) {
	n := int(size) * transitionEntrySize
	b, err := c.readBytes(n)
	if err != nil {
		return nil, &TableReadError{Table: "transition", Want: n, Got: c.remaining()}
	}
	return &TransitionTable{data: b}, nil
}

func (t *TransitionTable) size() symbols.TransitionTableIndex {
	return symbols.TransitionTableIndex(len(t.data) / transitionEntrySize)
}

func (t *TransitionTable) InputSymbol(i symbols.TransitionTableIndex) symbols.SymbolNumber {
	if i >= t.size() {
		return symbols.NoSymbol
	}
	off := int(i) * transitionEntrySize
	return symbols.SymbolNumber(binary.LittleEndian.Uint16(t.data[off:]))
}

func (t *TransitionTable) OutputSymbol(i symbols.TransitionTableIndex) symbols.SymbolNumber {
	if i >= t.size() {
		return symbols.NoSymbol
	}
	off := int(i)*transitionEntrySize + 2
	return symbols.SymbolNumber(binary.LittleEndian.Uint16(t.data[off:]))
}

func (t *TransitionTable) Target(i symbols.TransitionTableIndex) symbols.TransitionTableIndex {
	if i >= t.size() {
		return symbols.NoTableIndex
	}
	off := int(i)*transitionEntrySize + 4
	return symbols.TransitionTableIndex(binary.LittleEndian.Uint32(t.data[off:]))
}

func (t *TransitionTable) Weight(i symbols.TransitionTableIndex) symbols.Weight {
	if i >= t.size() {
		return symbols.InfiniteWeight
	}
	off := int(i)*transitionEntrySize + 8
	return symbols.Weight(math.Float32frombits(binary.LittleEndian.Uint32(t.data[off:])))
}

func (t *TransitionTable) Final(i symbols.TransitionTableIndex) bool {
	if i >= t.size() {
		return false
	}
	return t.InputSymbol(i) == symbols.NoSymbol &&
		t.OutputSymbol(i) == symbols.NoSymbol &&
		t.Target(i) == 1
}
