package transducer

import (
	"encoding/binary"
	"math"
)

// byteBuilder assembles a raw transducer image byte-by-byte for tests,
// mirroring the exact wire layout documented in header.go/alphabet.go/
// tables.go, so the tests exercise the real decode path rather than a
// simplified stand-in.
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

func (b *byteBuilder) raw(bs ...byte) *byteBuilder {
	b.buf = append(b.buf, bs...)
	return b
}

func (b *byteBuilder) bytes() []byte { return b.buf }

// header appends a plain (non-HFST3-wrapped) header block.
func (b *byteBuilder) header(numberOfInputSymbols, numberOfSymbols uint16, indexSize, targetSize, numStates, numTransitions uint32, weighted bool) *byteBuilder {
	b.u16(numberOfInputSymbols).u16(numberOfSymbols)
	b.u32(indexSize).u32(targetSize).u32(numStates).u32(numTransitions)
	b.bool32(weighted) // weighted
	b.bool32(true)     // deterministic
	b.bool32(true)     // input_deterministic
	b.bool32(true)     // minimized
	b.bool32(false)    // cyclic
	b.bool32(false)    // has_epsilon_epsilon_transitions
	b.bool32(false)    // has_input_epsilon_transitions
	b.bool32(false)    // has_input_epsilon_cycles
	b.bool32(false)    // has_unweighted_input_epsilon_cycles
	return b
}

// hfst3Wrapper returns a wrapper block declaring the given type string.
func hfst3Wrapper(typ string) []byte {
	meta := "type\x00" + typ + "\x00"
	b := &byteBuilder{}
	b.raw('H', 'F', 'S', 'T', 0)
	b.u16(uint16(len(meta)))
	b.raw(0)
	b.buf = append(b.buf, meta...)
	return b.bytes()
}

// indexEntry appends one 6-byte index table entry.
func (b *byteBuilder) indexEntry(inputSymbol uint16, firstTransitionOrWeightBits uint32) *byteBuilder {
	return b.u16(inputSymbol).u32(firstTransitionOrWeightBits)
}

// transitionEntry appends one 12-byte transition table entry.
func (b *byteBuilder) transitionEntry(input, output uint16, target uint32, weight float32) *byteBuilder {
	return b.u16(input).u16(output).u32(target).f32(weight)
}
