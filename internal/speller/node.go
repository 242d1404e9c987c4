// Package speller implements the composed dual-transducer search used to
// check, correct, and analyse words against an HFST optimized-lookup
// lexicon and, optionally, an error-model mutator transducer.
package speller

import (
	"hfstspell/internal/symbols"
	"hfstspell/internal/transducer"
)

// TreeNode is one point in the depth-first search over the mutator ×
// lexicon product automaton: the output produced so far, where each
// transducer currently stands, the flag diacritic state, and the
// accumulated weight. Every update method returns a fresh copy rather
// than mutating the receiver, since a single node fans out into many
// queued successors that must not share state.
type TreeNode struct {
	String       []symbols.SymbolNumber
	InputState   uint
	MutatorState symbols.TransitionTableIndex
	LexiconState symbols.TransitionTableIndex
	FlagState    transducer.FlagDiacriticState
	Weight       symbols.Weight
}

// newTreeNode is the search's start state: empty output, both transducers
// at their root, a zeroed flag state of the given size, zero weight.
func newTreeNode(flagStateSize int16) TreeNode {
	return TreeNode{
		FlagState: make(transducer.FlagDiacriticState, flagStateSize),
	}
}

func appendSymbol(s []symbols.SymbolNumber, sym symbols.SymbolNumber) []symbols.SymbolNumber {
	if sym == symbols.Epsilon {
		return s
	}
	out := make([]symbols.SymbolNumber, len(s), len(s)+1)
	copy(out, s)
	return append(out, sym)
}

// UpdateLexicon advances only the lexicon side: used for lexicon epsilon
// and flag-diacritic transitions.
func (n TreeNode) UpdateLexicon(symbol symbols.SymbolNumber, nextLexicon symbols.TransitionTableIndex, weight symbols.Weight) TreeNode {
	return TreeNode{
		String:       appendSymbol(n.String, symbol),
		InputState:   n.InputState,
		MutatorState: n.MutatorState,
		LexiconState: nextLexicon,
		FlagState:    n.FlagState,
		Weight:       n.Weight + weight,
	}
}

// UpdateMutator advances only the mutator side: used for mutator epsilon
// transitions.
func (n TreeNode) UpdateMutator(nextMutator symbols.TransitionTableIndex, weight symbols.Weight) TreeNode {
	return TreeNode{
		String:       n.String,
		InputState:   n.InputState,
		MutatorState: nextMutator,
		LexiconState: n.LexiconState,
		FlagState:    n.FlagState,
		Weight:       n.Weight + weight,
	}
}

// Update advances input position, mutator state, and lexicon state
// together: the general case used whenever a symbol is fully resolved
// against both transducers (or the lexicon alone, with the mutator state
// passed through unchanged).
func (n TreeNode) Update(symbol symbols.SymbolNumber, nextInput uint, nextMutator, nextLexicon symbols.TransitionTableIndex, weight symbols.Weight) TreeNode {
	return TreeNode{
		String:       appendSymbol(n.String, symbol),
		InputState:   nextInput,
		MutatorState: nextMutator,
		LexiconState: nextLexicon,
		FlagState:    n.FlagState,
		Weight:       n.Weight + weight,
	}
}

// TryCompatibleWith applies a flag diacritic operation to a copy of the
// node's flag state, returning the updated node and whether the operation
// succeeded. On failure the caller must discard the returned node and keep
// searching other branches; the flag state is never mutated in place.
func (n TreeNode) TryCompatibleWith(op transducer.FlagDiacriticOperation) (TreeNode, bool) {
	state := n.FlagState.Clone()
	ok := applyFlag(state, op)
	if !ok {
		return n, false
	}
	n.FlagState = state
	return n, true
}

func applyFlag(state transducer.FlagDiacriticState, op transducer.FlagDiacriticOperation) bool {
	f := op.Feature
	switch op.Op {
	case transducer.FlagPositiveSet:
		state[f] = op.Value
		return true
	case transducer.FlagNegativeSet:
		state[f] = -op.Value
		return true
	case transducer.FlagRequire:
		if op.Value == 0 {
			return state[f] != 0
		}
		return state[f] == op.Value
	case transducer.FlagDisallow:
		if op.Value == 0 {
			return state[f] == 0
		}
		return state[f] != op.Value
	case transducer.FlagClear:
		state[f] = 0
		return true
	case transducer.FlagUnify:
		if state[f] == 0 || state[f] == op.Value || (state[f] < 0 && -state[f] != op.Value) {
			state[f] = op.Value
			return true
		}
		return false
	default:
		return false
	}
}
