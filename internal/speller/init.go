package speller

import (
	"hfstspell/internal/symbols"
	"hfstspell/internal/transducer"
)

// buildAlphabetTranslator maps each mutator symbol number onto the
// corresponding lexicon symbol number, matching them up by their printable
// string. A mutator symbol with no lexicon counterpart gets a fresh symbol
// registered on the lexicon's alphabet on the spot: the current policy is
// to auto-extend the lexicon's alphabet rather than reject a mutator whose
// symbol set doesn't fully overlap with the lexicon's.
func (s *Speller) buildAlphabetTranslator() {
	fromKeys := s.mutator.Alphabet.KeyTable
	toSymbols := s.lexicon.Alphabet.StringToSymbol

	s.alphabetTranslator = make([]symbols.SymbolNumber, 0, len(fromKeys))
	s.alphabetTranslator = append(s.alphabetTranslator, symbols.Epsilon)

	for i := 1; i < len(fromKeys); i++ {
		str := fromKeys[i]
		if toSym, ok := toSymbols[str]; ok {
			s.alphabetTranslator = append(s.alphabetTranslator, toSym)
			continue
		}
		lexKey := symbols.SymbolNumber(len(s.lexicon.Alphabet.KeyTable))
		s.lexicon.Encoder.ReadInputSymbol(str, lexKey)
		s.lexicon.Alphabet.AddSymbol(str)
		s.alphabetTranslator = append(s.alphabetTranslator, lexKey)
	}
}

// addSymbolToAlphabetTranslator records that a freshly minted mutator
// symbol (always the next one in sequence, since it was just added by
// initInput) maps onto toSym in the lexicon.
func (s *Speller) addSymbolToAlphabetTranslator(toSym symbols.SymbolNumber) {
	s.alphabetTranslator = append(s.alphabetTranslator, toSym)
}

// initInput tokenizes word into s.input. When a mutator is present and
// the mode isn't Check, tokenization runs against the mutator's alphabet
// (the error model owns the raw input side of the search); otherwise it
// runs against the lexicon's. A byte sequence that doesn't match any known
// symbol is peeled off one UTF-8 codepoint at a time and registered as a
// fresh symbol in the lexicon (and, when a mutator exists, in the mutator
// too, extending the alphabet translator to match) — even when mode is
// Check and a mutator exists, since that decision is made once at input
// time and doesn't depend on which transducer resolves the rest of the
// search. Fails outright only when a byte can't lead a valid UTF-8
// sequence at all.
func (s *Speller) initInput(word string) bool {
	s.input = s.input[:0]
	data := []byte(word)
	pos := 0
	useMutatorEncoder := s.mutator != nil && s.mode != ModeCheck

	for pos < len(data) {
		var sym symbols.SymbolNumber
		var next int
		if useMutatorEncoder {
			sym, next = s.mutator.Encoder.FindKey(data, pos)
		} else {
			sym, next = s.lexicon.Encoder.FindKey(data, pos)
		}
		if sym != symbols.NoSymbol {
			s.input = append(s.input, sym)
			pos = next
			continue
		}

		n := transducer.NByteUTF8(data[pos])
		if n == 0 || pos+n > len(data) {
			return false
		}
		str := string(data[pos : pos+n])
		pos += n
		s.cache = append(s.cache, CacheContainer{})

		if !s.lexicon.Alphabet.HasString(str) {
			s.lexicon.Alphabet.AddSymbol(str)
		}
		lexSym := s.lexicon.Alphabet.StringToSymbol[str]
		s.lexicon.Encoder.ReadInputSymbol(str, lexSym)

		k := symbols.NoSymbol
		if s.mutator != nil {
			if !s.mutator.Alphabet.HasString(str) {
				s.mutator.Alphabet.AddSymbol(str)
			}
			k = s.mutator.Alphabet.StringToSymbol[str]
			s.mutator.Encoder.ReadInputSymbol(str, k)
			if int(k) >= len(s.alphabetTranslator) {
				s.addSymbolToAlphabetTranslator(lexSym)
			}
		}
		s.input = append(s.input, k)
	}
	return true
}
