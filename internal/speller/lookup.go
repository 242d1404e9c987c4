package speller

import (
	"hfstspell/internal/symbols"
	"hfstspell/internal/transducer"
)

// Lookup runs a single-tape search directly against t, with no error
// model and no weight limiting: every accepted analysis is returned,
// deduped by output string. Unlike Analyse it fails outright the moment a
// byte sequence can't be tokenised against t's own alphabet — there is no
// mutator to fall back on unknown/identity symbols through, so callers
// wanting graceful handling of out-of-alphabet input should use a Speller
// built with New instead.
func Lookup(t *transducer.Transducer, word string) []Result {
	input, ok := tokenizeAgainstAlphabet(t, word)
	if !ok {
		return nil
	}

	outputs := map[string]symbols.Weight{}
	queue := []TreeNode{newTreeNode(t.GetStateSize())}

	for len(queue) > 0 {
		next := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		if next.InputState == uint(len(input)) && t.IsFinal(next.LexiconState) {
			weight := next.Weight + t.FinalWeight(next.LexiconState)
			output := stringify(t.Alphabet.KeyTable, next.String)
			if w, seen := outputs[output]; !seen || w > weight {
				outputs[output] = weight
			}
		}

		if t.HasEpsilonsOrFlags(next.LexiconState + 1) {
			idx := t.Next(next.LexiconState, symbols.Epsilon)
			arc := t.TakeEpsilonsAndFlags(idx)
			for arc.Symbol != symbols.NoSymbol {
				if t.Transitions.InputSymbol(idx) == symbols.Epsilon {
					queue = append(queue, next.UpdateLexicon(arc.Symbol, arc.Target, arc.Weight))
				} else {
					op := t.Alphabet.Operations[t.Transitions.InputSymbol(idx)]
					if updated, ok := next.TryCompatibleWith(op); ok {
						queue = append(queue, updated.UpdateLexicon(arc.Symbol, arc.Target, arc.Weight))
					}
				}
				idx++
				arc = t.TakeEpsilonsAndFlags(idx)
			}
		}

		inputState := next.InputState
		if inputState < uint(len(input)) && t.HasTransitions(next.LexiconState+1, input[inputState]) {
			idx := t.Next(next.LexiconState, input[inputState])
			arc := t.TakeNonEpsilons(idx, input[inputState])
			for arc.Symbol != symbols.NoSymbol {
				queue = append(queue, next.Update(arc.Symbol, inputState+1, next.MutatorState, arc.Target, arc.Weight))
				idx++
				arc = t.TakeNonEpsilons(idx, input[inputState])
			}
		}
	}

	q := NewResultQueue()
	for text, weight := range outputs {
		q.Push(Result{Text: text, Weight: weight})
	}
	return q.ToSlice()
}

// tokenizeAgainstAlphabet mirrors Transducer::initialize_input_vector:
// tokenization against t's own alphabet only, with no unknown-symbol
// fallback and no on-the-fly alphabet extension.
func tokenizeAgainstAlphabet(t *transducer.Transducer, word string) ([]symbols.SymbolNumber, bool) {
	data := []byte(word)
	var input []symbols.SymbolNumber
	pos := 0
	for pos < len(data) {
		sym, next := t.Encoder.FindKey(data, pos)
		if sym == symbols.NoSymbol {
			return nil, false
		}
		input = append(input, sym)
		pos = next
	}
	return input, true
}
