package speller

import "hfstspell/internal/symbols"

// CacheContainer holds the precomputed expansion of a single first input
// symbol shared by every corrected word starting with it: every TreeNode
// reachable after the epsilon and first-symbol consumption steps, plus
// any complete one- or zero-symbol corrections already found along the
// way. Correct builds this once per distinct first symbol and reuses it
// for every subsequent call sharing that symbol.
type CacheContainer struct {
	Nodes       []TreeNode
	ResultsLen0 []Result
	ResultsLen1 []Result
	Built       bool
}

// buildCache expands the search from its start node using whatever
// s.input and s.mode are already set to (Correct always sets these via
// initInput before calling this), stopping the moment a node has consumed
// one input symbol. It reuses the Speller's live search state (s.queue,
// s.nextNode, s.limit) exactly as the real search does; the caller must
// not depend on that state surviving the call.
func (s *Speller) buildCache(firstSym symbols.SymbolNumber) {
	s.queue = []TreeNode{newTreeNode(s.getStateSize())}
	s.limit = maxWeightValue()

	correctionsLen0 := map[string]symbols.Weight{}
	correctionsLen1 := map[string]symbols.Weight{}
	var nodes []TreeNode

	for len(s.queue) > 0 {
		s.nextNode = s.queue[len(s.queue)-1]
		s.queue = s.queue[:len(s.queue)-1]

		s.lexiconEpsilons()
		s.mutatorEpsilons()

		if s.mutator.IsFinal(s.nextNode.MutatorState) && s.lexicon.IsFinal(s.nextNode.LexiconState) {
			weight := s.nextNode.Weight +
				s.lexicon.FinalWeight(s.nextNode.LexiconState) +
				s.mutator.FinalWeight(s.nextNode.MutatorState)
			text := stringify(s.lexicon.Alphabet.KeyTable, s.nextNode.String)
			if s.nextNode.InputState == 0 {
				if w, ok := correctionsLen0[text]; !ok || w > weight {
					correctionsLen0[text] = weight
				}
			} else {
				if w, ok := correctionsLen1[text]; !ok || w > weight {
					correctionsLen1[text] = weight
				}
			}
		}

		if s.nextNode.InputState == 1 {
			nodes = append(nodes, s.nextNode)
		}
		if firstSym > 0 && s.nextNode.InputState == 0 {
			s.consumeInput()
		}
	}

	entry := CacheContainer{Nodes: nodes, Built: true}
	for text, w := range correctionsLen0 {
		entry.ResultsLen0 = append(entry.ResultsLen0, Result{Text: text, Weight: w})
	}
	for text, w := range correctionsLen1 {
		entry.ResultsLen1 = append(entry.ResultsLen1, Result{Text: text, Weight: w})
	}
	s.cache[firstSym] = entry
}
