package transducer

import "fmt"

// HeaderParsingError is returned when the transducer header is truncated
// or its HFST3 wrapper is malformed.
type HeaderParsingError struct {
	Reason string
}

func (e *HeaderParsingError) Error() string {
	return fmt.Sprintf("hfstspell: header parsing failed: %s", e.Reason)
}

// TransducerTypeError is returned when an HFST3 wrapper declares a type
// other than HFST_OL/HFST_OLW.
type TransducerTypeError struct {
	Found string
}

func (e *TransducerTypeError) Error() string {
	return fmt.Sprintf("hfstspell: transducer has incorrect type %q, want HFST_OL or HFST_OLW", e.Found)
}

// AlphabetParsingError is returned when the alphabet section ends before
// the declared symbol count is consumed, or a symbol string is malformed.
type AlphabetParsingError struct {
	Reason string
}

func (e *AlphabetParsingError) Error() string {
	return fmt.Sprintf("hfstspell: alphabet parsing failed: %s", e.Reason)
}

// TableReadError is returned when the index or transition table cannot be
// read in full.
type TableReadError struct {
	Table string // "index" or "transition"
	Want  int
	Got   int
}

func (e *TableReadError) Error() string {
	return fmt.Sprintf("hfstspell: %s table truncated: wanted %d bytes, got %d", e.Table, e.Want, e.Got)
}
