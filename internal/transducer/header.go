package transducer

import (
	"bytes"
	"strings"

	"hfstspell/internal/symbols"
)

const (
	typeOL  = "HFST_OL"
	typeOLW = "HFST_OLW"
)

var hfst3Signature = []byte{'H', 'F', 'S', 'T', 0}

// Header is the fixed-size preamble of an OL transducer image: six table
// size counts followed by nine boolean properties, in the exact order the
// format defines them.
type Header struct {
	NumberOfInputSymbols symbols.SymbolNumber
	NumberOfSymbols      symbols.SymbolNumber
	IndexTableSize       symbols.TransitionTableIndex
	TargetTableSize      symbols.TransitionTableIndex
	NumberOfStates       symbols.TransitionTableIndex
	NumberOfTransitions  symbols.TransitionTableIndex

	Weighted                        bool
	Deterministic                   bool
	InputDeterministic               bool
	Minimized                       bool
	Cyclic                          bool
	HasEpsilonEpsilonTransitions     bool
	HasInputEpsilonTransitions       bool
	HasInputEpsilonCycles            bool
	HasUnweightedInputEpsilonCycles  bool
}

// skipHFST3Wrapper consumes an optional HFST3 header block. HFST3 wraps a
// plain OL image with the byte sequence "HFST\0", a little-endian uint16
// length, a NUL byte, and then that many bytes of packed NUL-separated
// key/value metadata. When present, the metadata's "type" key must equal
// HFST_OL or HFST_OLW; anything else is rejected outright rather than
// silently accepted. When the signature bytes don't match, the cursor is
// left untouched and the caller proceeds straight to the plain header.
func skipHFST3Wrapper(c *cursor) error {
	sig, ok := c.peek(len(hfst3Signature))
	if !ok || !bytes.Equal(sig, hfst3Signature) {
		return nil
	}
	c.skip(len(hfst3Signature))

	length, err := c.readUint16()
	if err != nil {
		return &HeaderParsingError{Reason: "truncated HFST3 header length"}
	}
	nul, err := c.readByte()
	if err != nil || nul != 0 {
		return &HeaderParsingError{Reason: "missing HFST3 header separator byte"}
	}
	payload, err := c.readBytes(int(length))
	if err != nil {
		return &HeaderParsingError{Reason: "truncated HFST3 header payload"}
	}
	if length == 0 || payload[length-1] != 0 {
		return &HeaderParsingError{Reason: "HFST3 header payload not NUL-terminated"}
	}

	meta := string(payload)
	idx := strings.Index(meta, "type")
	if idx < 0 {
		return &HeaderParsingError{Reason: "HFST3 header missing type field"}
	}
	valueStart := idx + len("type") + 1 // skip the field name and its own NUL
	if valueStart > len(meta) {
		return &HeaderParsingError{Reason: "HFST3 header type field truncated"}
	}
	value := meta[valueStart:]
	if !strings.HasPrefix(value, typeOL) && !strings.HasPrefix(value, typeOLW) {
		end := strings.IndexByte(value, 0)
		if end < 0 {
			end = len(value)
		}
		return &TransducerTypeError{Found: value[:end]}
	}
	return nil
}

// readHeader parses the fixed preamble, after any HFST3 wrapper has been
// consumed by skipHFST3Wrapper.
func readHeader(c *cursor) (Header, error) {
	var h Header

	numberOfInputSymbols, err := c.readUint16()
	if err != nil {
		return h, &HeaderParsingError{Reason: "truncated number_of_input_symbols"}
	}
	numberOfSymbols, err := c.readUint16()
	if err != nil {
		return h, &HeaderParsingError{Reason: "truncated number_of_symbols"}
	}

	var counts [4]uint32
	names := [4]string{"index_table_size", "target_table_size", "number_of_states", "number_of_transitions"}
	for i := range counts {
		v, err := c.readUint32()
		if err != nil {
			return h, &HeaderParsingError{Reason: "truncated " + names[i]}
		}
		counts[i] = v
	}

	h.NumberOfInputSymbols = symbols.SymbolNumber(numberOfInputSymbols)
	h.NumberOfSymbols = symbols.SymbolNumber(numberOfSymbols)
	h.IndexTableSize = symbols.TransitionTableIndex(counts[0])
	h.TargetTableSize = symbols.TransitionTableIndex(counts[1])
	h.NumberOfStates = symbols.TransitionTableIndex(counts[2])
	h.NumberOfTransitions = symbols.TransitionTableIndex(counts[3])

	props := []*bool{
		&h.Weighted,
		&h.Deterministic,
		&h.InputDeterministic,
		&h.Minimized,
		&h.Cyclic,
		&h.HasEpsilonEpsilonTransitions,
		&h.HasInputEpsilonTransitions,
		&h.HasInputEpsilonCycles,
		&h.HasUnweightedInputEpsilonCycles,
	}
	for _, p := range props {
		v, err := c.readBool32()
		if err != nil {
			return h, &HeaderParsingError{Reason: "truncated property flags"}
		}
		*p = v
	}

	return h, nil
}
