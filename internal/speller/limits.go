package speller

import (
	"math"

	"hfstspell/internal/symbols"
)

// LimitingBehaviour selects which combination of the three independent
// pruning knobs (max weight, n-best, beam) is active for a search,
// computed once per Correct call from whichever of nbest/maxweight/beam
// the caller supplied.
type LimitingBehaviour int

const (
	LimitNone LimitingBehaviour = iota
	LimitMaxWeight
	LimitNbest
	LimitBeam
	LimitMaxWeightNbest
	LimitMaxWeightBeam
	LimitNbestBeam
	LimitMaxWeightNbestBeam
)

const noNbest = 0

func maxWeightValue() symbols.Weight { return symbols.Weight(math.MaxFloat32) }

// setLimitingBehaviour classifies which knobs are active and sets the
// initial limit. maxweight < 0 and beam < 0 mean "unset"; nbest == 0 means
// "unset" (nbest counts requested results, so 0 is a legitimate off
// value).
func (s *Speller) setLimitingBehaviour(nbest int, maxweight, beam symbols.Weight) {
	s.limiting = LimitNone
	s.limit = maxWeightValue()
	s.bestSuggestion = maxWeightValue()

	switch {
	case maxweight >= 0 && nbest > 0 && beam >= 0:
		s.limiting = LimitMaxWeightNbestBeam
		s.limit = maxweight
	case maxweight >= 0 && nbest > 0 && beam < 0:
		s.limiting = LimitMaxWeightNbest
		s.limit = maxweight
	case maxweight >= 0 && beam >= 0 && nbest == noNbest:
		s.limiting = LimitMaxWeightBeam
		s.limit = maxweight
	case maxweight < 0 && nbest > 0 && beam >= 0:
		s.limiting = LimitNbestBeam
	case maxweight >= 0 && nbest == noNbest && beam < 0:
		s.limiting = LimitMaxWeight
		s.limit = maxweight
	case maxweight < 0 && nbest > 0 && beam < 0:
		s.limiting = LimitNbest
	case maxweight < 0 && nbest == noNbest && beam >= 0:
		s.limiting = LimitBeam
	}
}

// adjustWeightLimits recomputes the current limit from what's been found
// so far; called after every node popped off the search queue.
func (s *Speller) adjustWeightLimits(nbest int, beam symbols.Weight) {
	switch s.limiting {
	case LimitMaxWeight:
		return
	case LimitNbest:
		if s.nbestQueue.size() >= nbest {
			s.limit = s.nbestQueue.getHighest()
		}
	case LimitMaxWeightNbest:
		if s.nbestQueue.size() >= nbest {
			s.limit = min32(s.limit, s.nbestQueue.getLowest())
		}
	case LimitBeam:
		if s.bestSuggestion < maxWeightValue() {
			s.limit = s.bestSuggestion + beam
		}
	case LimitNbestBeam:
		if s.bestSuggestion < maxWeightValue() {
			if s.nbestQueue.size() >= nbest {
				s.limit = min32(s.bestSuggestion+beam, s.nbestQueue.getLowest())
			} else {
				s.limit = s.bestSuggestion + beam
			}
		}
	case LimitMaxWeightBeam:
		if s.bestSuggestion < maxWeightValue() {
			s.limit = min32(s.bestSuggestion+beam, s.limit)
		}
	case LimitMaxWeightNbestBeam:
		if s.bestSuggestion < maxWeightValue() {
			s.limit = min32(s.limit, s.bestSuggestion+beam)
		}
		if s.nbestQueue.size() >= nbest {
			s.limit = min32(s.limit, s.nbestQueue.getLowest())
		}
	}
}

// isUnderWeightLimit reports whether w still qualifies given the current
// limit. Pure Nbest pruning uses a strict "<" (an exact tie with the
// current worst-of-n doesn't bump it), every other mode uses "<=".
func (s *Speller) isUnderWeightLimit(w symbols.Weight) bool {
	if s.limiting == LimitNbest {
		return w < s.limit
	}
	return w <= s.limit
}

func min32(a, b symbols.Weight) symbols.Weight {
	if a < b {
		return a
	}
	return b
}
