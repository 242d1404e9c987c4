package options

import "hfstspell/internal/symbols"

// DefaultOptions mirrors the upstream error-model default: no absolute
// weight cap, no beam, no n-best cap, no wall-clock cutoff — every
// accepted correction within the mutator's own encoded costs is returned.
var DefaultOptions = SpellerOptions{
	Nbest:      0,
	MaxWeight:  -1,
	Beam:       -1,
	TimeCutoff: 0,
}

// SpellerOptions bounds a single Correct call: Nbest caps the number of
// results (0 disables the cap), MaxWeight and Beam are absolute and
// relative weight ceilings (negative disables each), TimeCutoff is a
// wall-clock budget in seconds (0 or negative disables it).
type SpellerOptions struct {
	Nbest      int
	MaxWeight  symbols.Weight
	Beam       symbols.Weight
	TimeCutoff float64
}

type Options interface {
	Apply(options *SpellerOptions)
}

type FuncConfig struct {
	ops func(options *SpellerOptions)
}

func (w FuncConfig) Apply(conf *SpellerOptions) {
	w.ops(conf)
}

func NewFuncOption(f func(options *SpellerOptions)) *FuncConfig {
	return &FuncConfig{ops: f}
}

// WithQueueLimit caps the number of results Correct returns.
func WithQueueLimit(nbest int) Options {
	return NewFuncOption(func(options *SpellerOptions) {
		options.Nbest = nbest
	})
}

// WithWeightLimit sets an absolute weight ceiling: no result heavier than
// maxweight is ever returned.
func WithWeightLimit(maxweight symbols.Weight) Options {
	return NewFuncOption(func(options *SpellerOptions) {
		options.MaxWeight = maxweight
	})
}

// WithBeam sets a relative weight ceiling tracked against the best
// suggestion found so far during the search.
func WithBeam(beam symbols.Weight) Options {
	return NewFuncOption(func(options *SpellerOptions) {
		options.Beam = beam
	})
}

// WithTimeCutoff bounds how long Correct is allowed to search, in seconds.
func WithTimeCutoff(seconds float64) Options {
	return NewFuncOption(func(options *SpellerOptions) {
		options.TimeCutoff = seconds
	})
}

// Build applies opts on top of DefaultOptions and returns the result.
func Build(opts ...Options) SpellerOptions {
	o := DefaultOptions
	for _, opt := range opts {
		opt.Apply(&o)
	}
	return o
}
