package speller

import "errors"

// ErrNoMutator is returned by Correct when the Speller was built with a
// lexicon only: without an error model there is nothing to run the
// search's error-tolerant half against.
var ErrNoMutator = errors.New("speller: no mutator loaded, cannot correct")

// ErrHyphenationNotSupported is returned by Hyphenate: no example repo in
// the reference corpus exercises the compound hyphenation half of the
// original weighted lookup interface, and no format for hyphenation
// points is specified for this search engine's outputs.
var ErrHyphenationNotSupported = errors.New("speller: hyphenation is not supported")

// Hyphenate is a placeholder for the original implementation's compound
// boundary marking, which this port does not implement.
func (s *Speller) Hyphenate(word string) ([]Result, error) {
	return nil, ErrHyphenationNotSupported
}
