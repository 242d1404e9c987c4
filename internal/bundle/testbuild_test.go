package bundle

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"math"

	"hfstspell/internal/symbols"
)

// byteBuilder assembles a raw OL transducer image for tests. Duplicated
// locally rather than shared with internal/speller's or internal/
// transducer's identical helper, since Go test binaries don't share code
// across packages.
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
	b.bool32(true)
	b.bool32(true)
	b.bool32(true)
	b.bool32(false)
	b.bool32(false)
	b.bool32(false)
	b.bool32(false)
	b.bool32(false)
	return b
}

func (b *byteBuilder) indexEntry(inputSymbol uint16, target uint32) *byteBuilder {
	return b.u16(inputSymbol).u32(target)
}

func (b *byteBuilder) transitionEntry(input, output uint16, target uint32, weight float32) *byteBuilder {
	return b.u16(input).u16(output).u32(target).f32(weight)
}

var noSym = uint16(symbols.NoSymbol)
var noIdx = uint32(symbols.NoTableIndex)

// buildABLexicon builds the smallest OL image whose language is {"ab"}.
func buildABLexicon() []byte {
	b := &byteBuilder{}
	b.header(3, 3, 4, 4, 3, 2, false)
	b.cstr("")
	b.cstr("a")
	b.cstr("b")

	b.indexEntry(noSym, noIdx)
	b.indexEntry(noSym, noIdx)
	b.indexEntry(1, uint32(symbols.TargetTable))
	b.indexEntry(noSym, noIdx)

	b.transitionEntry(1, 1, uint32(symbols.TargetTable)+1, 0)
	b.transitionEntry(noSym, noSym, noIdx, 0)
	b.transitionEntry(2, 2, uint32(symbols.TargetTable)+3, 0)
	b.transitionEntry(noSym, noSym, 1, 0)

	return b.bytes()
}

// buildIdentityMutator builds a single-state OL image accepting any string
// over {a,b} at zero cost.
func buildIdentityMutator() []byte {
	b := &byteBuilder{}
	b.header(3, 3, 4, 2, 1, 2, false)
	b.cstr("")
	b.cstr("a")
	b.cstr("b")

	b.indexEntry(noSym, 0)
	b.indexEntry(noSym, noIdx)
	b.indexEntry(1, uint32(symbols.TargetTable))
	b.indexEntry(2, uint32(symbols.TargetTable)+1)

	b.transitionEntry(1, 1, 0, 0)
	b.transitionEntry(2, 2, 0, 0)

	return b.bytes()
}

// buildTestZhfst assembles an in-memory zhfst archive: one acceptor, one
// errmodel, both named "default", plus a minimal index.xml.
func buildTestZhfst() []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	acceptor, _ := w.Create("acceptor.default.hfst.ol")
	acceptor.Write(buildABLexicon())

	errmodel, _ := w.Create("errmodel.default.hfst.ol")
	errmodel.Write(buildIdentityMutator())

	index, _ := w.Create("index.xml")
	index.Write([]byte(`<?xml version="1.0"?>
<hfstspeller>
  <info>
    <locale>en</locale>
    <title lang="en">test speller</title>
  </info>
</hfstspeller>`))

	w.Close()
	return buf.Bytes()
}
