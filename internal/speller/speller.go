package speller

import (
	"strings"
	"time"

	"hfstspell/internal/symbols"
	"hfstspell/internal/transducer"
)

// Mode selects which of the three search behaviours a query runs:
// Check only verifies lexicon membership, Correct runs the full
// mutator × lexicon product search, Lookup runs the lexicon alone
// (analysis, no error model).
type Mode int

const (
	ModeCheck Mode = iota
	ModeCorrect
	ModeLookup
)

// timeCheckInterval mirrors the original's call_counter % 1000000 wall
// clock sampling: checking the clock on every iteration would dominate
// runtime, so it's sampled only this often.
const timeCheckInterval = 1000000

// Speller runs the composed search over a lexicon and, optionally, a
// mutator error-model transducer. A Speller
// is not safe for concurrent use: Check/Correct/Analyse/AnalyseSymbols all
// mutate the receiver's search state (queue, current node, weight limits)
// exactly as the upstream C++ implementation does with its member
// variables.
type Speller struct {
	mutator *transducer.Transducer
	lexicon *transducer.Transducer

	input []symbols.SymbolNumber

	queue    []TreeNode
	nextNode TreeNode

	limit          symbols.Weight
	bestSuggestion symbols.Weight
	limiting       LimitingBehaviour
	nbestQueue     weightQueue

	alphabetTranslator []symbols.SymbolNumber
	operations         map[symbols.SymbolNumber]transducer.FlagDiacriticOperation

	mode Mode

	maxTime      float64
	startClock   time.Time
	callCounter  uint64
	limitReached bool

	cache []CacheContainer
}

// New builds a Speller over lexicon alone (Check/Lookup only; Correct
// returns ErrNoMutator) or over lexicon with a mutator error model
// (adds Correct).
func New(mutator, lexicon *transducer.Transducer) *Speller {
	s := &Speller{
		mutator:    mutator,
		lexicon:    lexicon,
		operations: lexicon.Alphabet.Operations,
	}
	if mutator != nil {
		s.buildAlphabetTranslator()
		s.cache = make([]CacheContainer, len(mutator.Alphabet.KeyTable))
	}
	return s
}

func (s *Speller) getStateSize() int16 {
	return s.lexicon.GetStateSize()
}

// isUnderWeightLimit, setLimitingBehaviour, and adjustWeightLimits live in
// limits.go.

// lexiconEpsilons expands every epsilon and flag-diacritic transition out
// of the current node's lexicon state, pushing one successor per
// admissible arc onto the search stack.
func (s *Speller) lexiconEpsilons() {
	if !s.lexicon.HasEpsilonsOrFlags(s.nextNode.LexiconState + 1) {
		return
	}
	next := s.lexicon.Next(s.nextNode.LexiconState, symbols.Epsilon)
	arc := s.lexicon.TakeEpsilonsAndFlags(next)

	for arc.Symbol != symbols.NoSymbol {
		if s.isUnderWeightLimit(s.nextNode.Weight + arc.Weight) {
			if s.lexicon.Transitions.InputSymbol(next) == symbols.Epsilon {
				emit := symbols.Epsilon
				if s.mode != ModeCorrect {
					emit = arc.Symbol
				}
				s.queue = append(s.queue, s.nextNode.UpdateLexicon(emit, arc.Target, arc.Weight))
			} else {
				op := s.operations[s.lexicon.Transitions.InputSymbol(next)]
				if updated, ok := s.nextNode.TryCompatibleWith(op); ok {
					pushed := updated.UpdateLexicon(symbols.Epsilon, arc.Target, arc.Weight)
					s.queue = append(s.queue, pushed)
				}
			}
		}
		next++
		arc = s.lexicon.TakeEpsilonsAndFlags(next)
	}
}

// lexiconConsume expands the lexicon-only consumption of the next input
// symbol: used by Check and Lookup modes, where there is no mutator to
// mediate between raw input and the lexicon's alphabet.
func (s *Speller) lexiconConsume() {
	inputState := s.nextNode.InputState
	if inputState >= uint(len(s.input)) {
		return
	}
	var thisInput symbols.SymbolNumber
	if s.mutator != nil && s.mode != ModeCheck {
		thisInput = s.alphabetTranslator[s.input[inputState]]
	} else {
		thisInput = s.input[inputState]
	}

	if !s.lexicon.HasTransitions(s.nextNode.LexiconState+1, thisInput) {
		if thisInput >= s.lexicon.Alphabet.OrigSymbolCount {
			if unk := s.lexicon.GetUnknown(); unk != symbols.NoSymbol &&
				s.lexicon.HasTransitions(s.nextNode.LexiconState+1, unk) {
				s.queueLexiconArcs(unk, s.nextNode.MutatorState, 0, 1)
			}
			if id := s.lexicon.GetIdentity(); id != symbols.NoSymbol &&
				s.lexicon.HasTransitions(s.nextNode.LexiconState+1, id) {
				s.queueLexiconArcs(id, s.nextNode.MutatorState, 0, 1)
			}
		}
		return
	}
	s.queueLexiconArcs(thisInput, s.nextNode.MutatorState, 0, 1)
}

// queueLexiconArcs walks every lexicon transition on inputSym out of the
// current node's lexicon state, pushing one successor per arc. When the
// arc's output is the lexicon's identity symbol, the emitted symbol is
// substituted with the actual input symbol consumed. In Correct mode the
// emitted symbol is always inputSym itself, so that substitution does not
// reach the output there.
func (s *Speller) queueLexiconArcs(inputSym symbols.SymbolNumber, mutatorState symbols.TransitionTableIndex, mutatorWeight symbols.Weight, inputIncrement uint) {
	next := s.lexicon.Next(s.nextNode.LexiconState, inputSym)
	arc := s.lexicon.TakeNonEpsilons(next, inputSym)

	for arc.Symbol != symbols.NoSymbol {
		emit := arc.Symbol
		if arc.Symbol == s.lexicon.GetIdentity() {
			emit = s.input[s.nextNode.InputState]
		}
		if s.isUnderWeightLimit(s.nextNode.Weight + arc.Weight + mutatorWeight) {
			emitSymbol := emit
			if s.mode == ModeCorrect {
				emitSymbol = inputSym
			}
			s.queue = append(s.queue, s.nextNode.Update(
				emitSymbol,
				s.nextNode.InputState+inputIncrement,
				mutatorState,
				arc.Target,
				arc.Weight+mutatorWeight,
			))
		}
		next++
		arc = s.lexicon.TakeNonEpsilons(next, inputSym)
	}
}

// mutatorEpsilons expands every epsilon transition out of the current
// node's mutator state: the error model inserting or substituting
// characters with no corresponding input consumption.
func (s *Speller) mutatorEpsilons() {
	if !s.mutator.HasTransitions(s.nextNode.MutatorState+1, symbols.Epsilon) {
		return
	}
	next := s.mutator.Next(s.nextNode.MutatorState, symbols.Epsilon)
	arc := s.mutator.TakeEpsilons(next)

	for arc.Symbol != symbols.NoSymbol {
		if arc.Symbol == symbols.Epsilon {
			if s.isUnderWeightLimit(s.nextNode.Weight + arc.Weight) {
				s.queue = append(s.queue, s.nextNode.UpdateMutator(arc.Target, arc.Weight))
			}
			next++
			arc = s.mutator.TakeEpsilons(next)
			continue
		}
		translated := s.alphabetTranslator[arc.Symbol]
		if !s.lexicon.HasTransitions(s.nextNode.LexiconState+1, translated) {
			if translated >= s.lexicon.Alphabet.OrigSymbolCount {
				if unk := s.lexicon.GetUnknown(); unk != symbols.NoSymbol &&
					s.lexicon.HasTransitions(s.nextNode.LexiconState+1, unk) {
					s.queueLexiconArcs(unk, arc.Target, arc.Weight, 0)
				}
				if id := s.lexicon.GetIdentity(); id != symbols.NoSymbol &&
					s.lexicon.HasTransitions(s.nextNode.LexiconState+1, id) {
					s.queueLexiconArcs(id, arc.Target, arc.Weight, 0)
				}
			}
			next++
			arc = s.mutator.TakeEpsilons(next)
			continue
		}
		s.queueLexiconArcs(translated, arc.Target, arc.Weight, 0)
		next++
		arc = s.mutator.TakeEpsilons(next)
	}
}

// consumeInput expands the mutator's transitions on the next raw input
// symbol, the driver of both regular matches and substitutions in
// Correct mode.
func (s *Speller) consumeInput() {
	if s.nextNode.InputState >= uint(len(s.input)) {
		return
	}
	inputSym := s.input[s.nextNode.InputState]
	if !s.mutator.HasTransitions(s.nextNode.MutatorState+1, inputSym) {
		if inputSym >= s.mutator.Alphabet.OrigSymbolCount {
			if id := s.mutator.GetIdentity(); id != symbols.NoSymbol &&
				s.mutator.HasTransitions(s.nextNode.MutatorState+1, id) {
				s.queueMutatorArcs(id)
			}
			if unk := s.mutator.GetUnknown(); unk != symbols.NoSymbol &&
				s.mutator.HasTransitions(s.nextNode.MutatorState+1, unk) {
				s.queueMutatorArcs(unk)
			}
		}
		return
	}
	s.queueMutatorArcs(inputSym)
}

// queueMutatorArcs walks every mutator transition on inputSym, feeding
// each resulting output symbol (translated into the lexicon's alphabet)
// onward into the lexicon.
func (s *Speller) queueMutatorArcs(inputSym symbols.SymbolNumber) {
	next := s.mutator.Next(s.nextNode.MutatorState, inputSym)
	arc := s.mutator.TakeNonEpsilons(next, inputSym)

	for arc.Symbol != symbols.NoSymbol {
		if arc.Symbol == symbols.Epsilon {
			if s.isUnderWeightLimit(s.nextNode.Weight + arc.Weight) {
				s.queue = append(s.queue, s.nextNode.Update(
					symbols.Epsilon,
					s.nextNode.InputState+1,
					arc.Target,
					s.nextNode.LexiconState,
					arc.Weight,
				))
			}
			next++
			arc = s.mutator.TakeNonEpsilons(next, inputSym)
			continue
		}
		translated := s.alphabetTranslator[arc.Symbol]
		if !s.lexicon.HasTransitions(s.nextNode.LexiconState+1, translated) {
			if translated >= s.lexicon.Alphabet.OrigSymbolCount {
				if unk := s.lexicon.GetUnknown(); unk != symbols.NoSymbol &&
					s.lexicon.HasTransitions(s.nextNode.LexiconState+1, unk) {
					s.queueLexiconArcs(unk, arc.Target, arc.Weight, 1)
				}
				if id := s.lexicon.GetIdentity(); id != symbols.NoSymbol &&
					s.lexicon.HasTransitions(s.nextNode.LexiconState+1, id) {
					s.queueLexiconArcs(id, arc.Target, arc.Weight, 1)
				}
			}
			next++
			arc = s.mutator.TakeNonEpsilons(next, inputSym)
			continue
		}
		s.queueLexiconArcs(translated, arc.Target, arc.Weight, 1)
		next++
		arc = s.mutator.TakeNonEpsilons(next, inputSym)
	}
}

// Check reports whether word is accepted by the lexicon alone.
func (s *Speller) Check(word string) bool {
	s.mode = ModeCheck
	if !s.initInput(word) {
		return false
	}
	s.queue = []TreeNode{newTreeNode(s.getStateSize())}
	s.limit = maxWeightValue()

	for len(s.queue) > 0 {
		s.nextNode = s.queue[len(s.queue)-1]
		s.queue = s.queue[:len(s.queue)-1]

		if s.nextNode.InputState == uint(len(s.input)) && s.lexicon.IsFinal(s.nextNode.LexiconState) {
			return true
		}
		s.lexiconEpsilons()
		s.lexiconConsume()
	}
	return false
}

// Analyse returns every accepted morphological reading of word, deduped
// by output string and scored to the lowest weight seen for it.
func (s *Speller) Analyse(word string) []Result {
	s.mode = ModeLookup
	if !s.initInput(word) {
		return nil
	}
	outputs := map[string]symbols.Weight{}
	s.queue = []TreeNode{newTreeNode(s.getStateSize())}

	for len(s.queue) > 0 {
		s.nextNode = s.queue[len(s.queue)-1]
		s.queue = s.queue[:len(s.queue)-1]

		if s.nextNode.InputState == uint(len(s.input)) && s.lexicon.IsFinal(s.nextNode.LexiconState) {
			weight := s.nextNode.Weight + s.lexicon.FinalWeight(s.nextNode.LexiconState)
			output := stringify(s.lexicon.Alphabet.KeyTable, s.nextNode.String)
			if w, ok := outputs[output]; !ok || w > weight {
				outputs[output] = weight
			}
		}
		s.lexiconEpsilons()
		s.lexiconConsume()
	}

	q := NewResultQueue()
	for text, weight := range outputs {
		q.Push(Result{Text: text, Weight: weight})
	}
	return q.ToSlice()
}

// AnalyseSymbols is Analyse but keeps each output as its own list of
// symbol strings rather than a concatenated word.
func (s *Speller) AnalyseSymbols(word string) []SymbolResult {
	s.mode = ModeLookup
	if !s.initInput(word) {
		return nil
	}
	outputs := map[string]symbols.Weight{}
	paths := map[string][]string{}
	s.queue = []TreeNode{newTreeNode(s.getStateSize())}

	for len(s.queue) > 0 {
		s.nextNode = s.queue[len(s.queue)-1]
		s.queue = s.queue[:len(s.queue)-1]

		if s.nextNode.InputState == uint(len(s.input)) && s.lexicon.IsFinal(s.nextNode.LexiconState) {
			weight := s.nextNode.Weight + s.lexicon.FinalWeight(s.nextNode.LexiconState)
			syms := symbolify(s.lexicon.Alphabet.KeyTable, s.nextNode.String)
			key := strings.Join(syms, "\x00")
			if w, ok := outputs[key]; !ok || w > weight {
				outputs[key] = weight
				paths[key] = syms
			}
		}
		s.lexiconEpsilons()
		s.lexiconConsume()
	}

	q := NewSymbolResultQueue()
	for key, weight := range outputs {
		q.Push(SymbolResult{Symbols: paths[key], Weight: weight})
	}
	return q.ToSlice()
}

// Correct runs the full mutator × lexicon search and returns every
// accepted correction within the given limits, ordered from lowest to
// highest weight. nbest <= 0 disables the
// n-best cap, maxweight < 0 disables the absolute weight cap, beam < 0
// disables the beam, and timeCutoff <= 0 disables the wall-clock cutoff.
// Returns ErrNoMutator if the Speller was built without an error model.
func (s *Speller) Correct(word string, nbest int, maxweight, beam symbols.Weight, timeCutoff float64) ([]Result, error) {
	if s.mutator == nil {
		return nil, ErrNoMutator
	}
	if nbest < 0 {
		nbest = noNbest
	}
	s.mode = ModeCorrect
	if !s.initInput(word) {
		return nil, nil
	}

	s.maxTime = 0
	if timeCutoff > 0 {
		s.maxTime = timeCutoff
		s.startClock = time.Now()
		s.callCounter = 0
		s.limitReached = false
	}
	s.setLimitingBehaviour(nbest, maxweight, beam)
	s.nbestQueue = weightQueue{}

	corrections := map[string]symbols.Weight{}

	firstInput := symbols.SymbolNumber(0)
	if len(s.input) > 0 {
		firstInput = s.input[0]
	}
	if !s.cache[firstInput].Built {
		// buildCache searches under its own unbounded limit; restore this
		// call's limit afterwards.
		limit := s.limit
		s.buildCache(firstInput)
		s.limit = limit
	}

	if len(s.input) <= 1 {
		results := s.cache[firstInput].ResultsLen1
		if len(s.input) == 0 {
			results = s.cache[firstInput].ResultsLen0
		}
		for _, r := range results {
			if r.Weight < s.bestSuggestion {
				s.bestSuggestion = r.Weight
			}
			if nbest > 0 {
				s.nbestQueue.push(r.Weight)
				if s.nbestQueue.size() > nbest {
					s.nbestQueue.pop()
				}
			}
		}
		s.adjustWeightLimits(nbest, beam)

		q := NewResultQueue()
		for _, r := range results {
			if r.Weight <= s.limit && (nbest == 0 ||
				(r.Weight <= s.nbestQueue.getHighest() &&
					q.Len() < nbest &&
					s.nbestQueue.size() > 0)) {
				q.Push(r)
				if nbest != 0 {
					s.nbestQueue.pop()
				}
			}
		}
		return q.ToSlice(), nil
	}

	s.queue = append([]TreeNode(nil), s.cache[firstInput].Nodes...)

	for len(s.queue) > 0 {
		if s.maxTime > 0 && s.timeExceeded() {
			break
		}
		s.nextNode = s.queue[len(s.queue)-1]
		s.queue = s.queue[:len(s.queue)-1]

		s.adjustWeightLimits(nbest, beam)

		if s.nextNode.Weight > s.limit {
			continue
		}
		if s.nextNode.InputState > 1 {
			s.lexiconEpsilons()
			s.mutatorEpsilons()
		}
		if s.nextNode.InputState == uint(len(s.input)) {
			if s.mutator.IsFinal(s.nextNode.MutatorState) && s.lexicon.IsFinal(s.nextNode.LexiconState) {
				weight := s.nextNode.Weight + s.lexicon.FinalWeight(s.nextNode.LexiconState) + s.mutator.FinalWeight(s.nextNode.MutatorState)
				if weight > s.limit {
					continue
				}
				text := stringify(s.lexicon.Alphabet.KeyTable, s.nextNode.String)
				if w, ok := corrections[text]; !ok || w > weight {
					corrections[text] = weight
					if weight < s.bestSuggestion {
						s.bestSuggestion = weight
					}
					if nbest > 0 {
						s.nbestQueue.push(weight)
						if s.nbestQueue.size() > nbest {
							s.nbestQueue.pop()
						}
					}
				}
			}
		} else {
			s.consumeInput()
		}
	}
	s.adjustWeightLimits(nbest, beam)

	q := NewResultQueue()
	for text, weight := range corrections {
		if weight <= s.limit && (nbest == 0 ||
			(weight <= s.nbestQueue.getHighest() &&
				q.Len() < nbest &&
				s.nbestQueue.size() > 0)) {
			q.Push(Result{Text: text, Weight: weight})
			if nbest != 0 {
				s.nbestQueue.pop()
			}
		}
	}
	return q.ToSlice(), nil
}

// timeExceeded samples the wall clock every timeCheckInterval iterations,
// mirroring the original's call_counter % 1000000 cadence rather than
// checking on every node (which would dominate runtime).
func (s *Speller) timeExceeded() bool {
	if s.maxTime <= 0 {
		return false
	}
	s.callCounter++
	if s.limitReached {
		return true
	}
	if s.callCounter%timeCheckInterval == 0 && time.Since(s.startClock).Seconds() > s.maxTime {
		s.limitReached = true
		return true
	}
	return false
}
