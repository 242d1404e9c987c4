package transducer

import "hfstspell/internal/symbols"

// letterTrie maps multi-byte UTF-8 symbol strings to symbol numbers,
// one trie level per input byte.
type letterTrie struct {
	symbols [256]symbols.SymbolNumber
	letters [256]*letterTrie
}

func newLetterTrie() *letterTrie {
	t := &letterTrie{}
	for i := range t.symbols {
		t.symbols[i] = symbols.NoSymbol
	}
	return t
}

func (t *letterTrie) addString(s string, sym symbols.SymbolNumber) {
	if len(s) == 1 {
		t.symbols[s[0]] = sym
		return
	}
	b := s[0]
	if t.letters[b] == nil {
		t.letters[b] = newLetterTrie()
	}
	t.letters[b].addString(s[1:], sym)
}

func (t *letterTrie) hasKeyStartingWith(b byte) bool {
	return t.letters[b] != nil
}

// findKey walks the trie from pos, preferring the longest matching symbol,
// and backtracking one byte at a time when a deeper branch fails to
// resolve to a real symbol. When nothing matches at all it returns
// symbols.NoSymbol together with pos+1.
func (t *letterTrie) findKey(data []byte, pos int) (symbols.SymbolNumber, int) {
	b := data[pos]
	next := pos + 1
	child := t.letters[b]
	if child == nil || next >= len(data) {
		return t.symbols[b], next
	}
	if sym, newPos := child.findKey(data, next); sym != symbols.NoSymbol {
		return sym, newPos
	}
	return t.symbols[b], next
}

// Encoder tokenises raw input bytes into SymbolNumbers using the
// alphabet's key table: single ASCII-byte symbols are looked up directly
// via a 256-entry fast path, everything else falls through to the trie.
type Encoder struct {
	ascii  [256]symbols.SymbolNumber
	letters *letterTrie
}

func newEncoder(keyTable []string, numberOfInputSymbols symbols.SymbolNumber) *Encoder {
	e := &Encoder{letters: newLetterTrie()}
	for i := range e.ascii {
		e.ascii[i] = symbols.NoSymbol
	}
	limit := int(numberOfInputSymbols)
	if limit > len(keyTable) {
		limit = len(keyTable)
	}
	for k := 0; k < limit; k++ {
		e.readInputSymbol(keyTable[k], symbols.SymbolNumber(k))
	}
	return e
}

func (e *Encoder) readInputSymbol(s string, num symbols.SymbolNumber) {
	if len(s) == 0 {
		return
	}
	b := s[0]
	if len(s) == 1 && b <= 127 {
		if !e.letters.hasKeyStartingWith(b) {
			e.ascii[b] = num
		}
	} else if b <= 127 && e.ascii[b] != symbols.NoSymbol {
		// A longer symbol shares this leading byte; the ASCII fast path
		// can no longer answer for it alone.
		e.ascii[b] = symbols.NoSymbol
	}
	e.letters.addString(s, num)
}

// ReadInputSymbol registers a newly-added alphabet string with the encoder
// so later tokenisation calls can find it, mirroring what newEncoder does
// for every symbol present at load time.
func (e *Encoder) ReadInputSymbol(s string, num symbols.SymbolNumber) {
	e.readInputSymbol(s, num)
}

// FindKey resolves the symbol starting at data[pos], returning the symbol
// and the position immediately after it. It never reads past len(data).
func (e *Encoder) FindKey(data []byte, pos int) (symbols.SymbolNumber, int) {
	if pos >= len(data) {
		return symbols.NoSymbol, pos
	}
	b := data[pos]
	if e.ascii[b] != symbols.NoSymbol {
		return e.ascii[b], pos + 1
	}
	return e.letters.findKey(data, pos)
}
