// Package bundle loads a zhfst archive — a zip file packaging one or more
// acceptor (lexicon) and errmodel (mutator) transducers plus an XML
// metadata document — and exposes the speller built from the pair it
// selects.
package bundle

import (
	"archive/zip"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"hfstspell/internal/speller"
	"hfstspell/internal/symbols"
	"hfstspell/internal/transducer"
	"hfstspell/pkg/options"
)

// Bundle is one loaded zhfst archive: a speller built from its selected
// acceptor/errmodel pair (or acceptor alone), plus whatever opaque
// metadata the archive carried.
type Bundle struct {
	speller *speller.Speller

	canSpell   bool
	canCorrect bool
	canAnalyse bool

	Metadata Metadata

	queueLimit  int
	weightLimit symbols.Weight
	beam        symbols.Weight
	timeCutoff  float64
}

// Load reads a zhfst archive from path, selects an acceptor/errmodel pair
// by name ("default" wins, otherwise the first of each; acceptor-only
// archives fall back to a lexicon-only speller), and builds the Bundle's
// speller.
func Load(path string, opts ...options.Options) (*Bundle, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrap(err, "bundle: open archive")
	}
	defer r.Close()

	acceptors := map[string]*transducer.Transducer{}
	errmodels := map[string]*transducer.Transducer{}
	var metadata Metadata

	for _, f := range r.File {
		switch {
		case strings.HasPrefix(f.Name, "acceptor."):
			t, err := loadEntry(f)
			if err != nil {
				return nil, errors.Wrapf(err, "bundle: load acceptor %s", f.Name)
			}
			acceptors[descriptorOf(f.Name, "acceptor.")] = t
		case strings.HasPrefix(f.Name, "errmodel."):
			t, err := loadEntry(f)
			if err != nil {
				return nil, errors.Wrapf(err, "bundle: load errmodel %s", f.Name)
			}
			errmodels[descriptorOf(f.Name, "errmodel.")] = t
		case f.Name == "index.xml":
			m, err := loadMetadata(f)
			if err != nil {
				return nil, errors.Wrap(err, "bundle: parse index.xml")
			}
			metadata = m
		}
	}

	b := &Bundle{
		Metadata:    metadata,
		queueLimit:  0,
		weightLimit: -1,
		beam:        -1,
		timeCutoff:  0,
	}
	o := options.Build(opts...)
	b.queueLimit = o.Nbest
	b.weightLimit = o.MaxWeight
	b.beam = o.Beam
	b.timeCutoff = o.TimeCutoff

	acceptor, mutator, err := selectPair(acceptors, errmodels)
	if err != nil {
		return nil, err
	}

	b.speller = speller.New(mutator, acceptor)
	b.canSpell = true
	b.canCorrect = mutator != nil
	b.canAnalyse = b.canSpell || b.canCorrect

	return b, nil
}

func descriptorOf(name, prefix string) string {
	rest := strings.TrimPrefix(name, prefix)
	if i := strings.IndexByte(rest, '.'); i >= 0 {
		return rest[:i]
	}
	return rest
}

func loadEntry(f *zip.File) (*transducer.Transducer, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	return transducer.Load(data)
}

// selectPair mirrors ZHfstOspeller::read_zhfst's fallback ladder: a
// "default"-named acceptor/errmodel pair wins; otherwise any pair (first
// of each, alphabetically, since Go map iteration order isn't stable);
// otherwise a "default"-named acceptor alone; otherwise any acceptor
// alone. An archive with no acceptor at all can't build a speller.
func selectPair(acceptors, errmodels map[string]*transducer.Transducer) (acceptor, mutator *transducer.Transducer, err error) {
	if a, ok := acceptors["default"]; ok {
		if e, ok := errmodels["default"]; ok {
			return a, e, nil
		}
	}
	if len(acceptors) > 0 && len(errmodels) > 0 {
		return firstByName(acceptors), firstByName(errmodels), nil
	}
	if a, ok := acceptors["default"]; ok {
		return a, nil, nil
	}
	if len(acceptors) > 0 {
		return firstByName(acceptors), nil, nil
	}
	return nil, nil, fmt.Errorf("bundle: no automata found in archive")
}

func firstByName(m map[string]*transducer.Transducer) *transducer.Transducer {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return m[names[0]]
}

// Spell reports whether wordform is accepted by the lexicon alone.
func (b *Bundle) Spell(wordform string) bool {
	if !b.canSpell {
		return false
	}
	return b.speller.Check(wordform)
}

// Suggest returns scored corrections for wordform, or nil if the bundle
// has no error model loaded.
func (b *Bundle) Suggest(wordform string) []speller.Result {
	if !b.canCorrect {
		return nil
	}
	results, err := b.speller.Correct(wordform, b.queueLimit, b.weightLimit, b.beam, b.timeCutoff)
	if err != nil {
		return nil
	}
	return results
}

// Analyse returns morphological readings of wordform. askSugger runs the
// analysis through the same speller Suggest uses (a distinction that only
// matters when the archive carries a plain lexicon-only reference speller
// alongside a full mutator+lexicon one; this port always builds a single
// speller shared by both roles, mirroring the common case in the original
// where current_speller_ and current_sugger_ are the same object).
func (b *Bundle) Analyse(wordform string, askSugger bool) []speller.Result {
	_ = askSugger
	if !b.canAnalyse {
		return nil
	}
	return b.speller.Analyse(wordform)
}

// AnalyseSymbols is Analyse with each output kept as a separate symbol
// list instead of a concatenated string.
func (b *Bundle) AnalyseSymbols(wordform string, askSugger bool) []speller.SymbolResult {
	_ = askSugger
	if !b.canAnalyse {
		return nil
	}
	return b.speller.AnalyseSymbols(wordform)
}

// SuggestAnalyses runs Suggest and then Analyse on each suggestion,
// pairing every correction with its own readings. Left non-atomic exactly
// as upstream: nothing holds the Bundle between the Suggest and Analyse
// halves, so concurrent calls on the same Bundle interleave their
// searches on its one shared Speller.
func (b *Bundle) SuggestAnalyses(wordform string) map[string][]speller.Result {
	out := map[string][]speller.Result{}
	for _, correction := range b.Suggest(wordform) {
		out[correction.Text] = b.Analyse(correction.Text, true)
	}
	return out
}

// SetQueueLimit caps the number of corrections Suggest returns.
func (b *Bundle) SetQueueLimit(limit int) { b.queueLimit = limit }

// SetWeightLimit sets an absolute weight ceiling for Suggest.
func (b *Bundle) SetWeightLimit(limit symbols.Weight) { b.weightLimit = limit }

// SetBeam sets a relative weight ceiling for Suggest.
func (b *Bundle) SetBeam(beam symbols.Weight) { b.beam = beam }

// SetTimeCutoff bounds how long Suggest is allowed to search, in seconds.
func (b *Bundle) SetTimeCutoff(seconds float64) { b.timeCutoff = seconds }

// CanCorrect reports whether the bundle loaded an error model.
func (b *Bundle) CanCorrect() bool { return b.canCorrect }
