// Package estimator implements the optional P(tag|word) re-ranking
// pass applied to a word's raw parse list (spec §4.5). Grounded on
// citar's Lexicon.TagProbs normalization (p(w,t)/p(t)) generalized to
// the word-keyed re-ranking spec describes, and on original_source's
// ProbabilityEstimator.apply_to_parses, kept close to its control flow:
// look each (word, tag) pair up in the compiled probability DAWG; if
// every parse scores zero (nothing known about this word), fall back
// to normalizing the unit-assigned scores so they sum to 1 instead of
// discarding them; otherwise replace every score with its looked-up
// probability and re-sort by score, descending.
package estimator

import (
	"sort"

	"github.com/steosofficial/rusmorph/internal/dawg"
	"github.com/steosofficial/rusmorph/internal/units"
)

// Estimator re-ranks a parse list using a dictionary's compiled
// conditional-probability table, when one is present.
type Estimator struct {
	probs *dawg.Automaton // nil means "no probability data; Apply is a no-op"
}

// New wraps a dictionary's optional probability automaton. A nil probs
// argument is legal (Apply then leaves scores untouched, as spec §4.5
// requires when a dictionary was compiled without P(t|w) data).
func New(probs *dawg.Automaton) *Estimator {
	return &Estimator{probs: probs}
}

// key builds the "word\ttag" lookup key the probability DAWG is
// indexed by (spec §6's ConditionalProbDistDAWG entry format).
func key(word string, tag string) string {
	return word + "\t" + tag
}

// Apply re-ranks parses in place order and returns the possibly
// reordered slice; it never changes which parses are present, only
// their Score and ordering.
func (e *Estimator) Apply(word string, parses []units.Parse) []units.Parse {
	if e == nil || e.probs == nil || len(parses) == 0 {
		return parses
	}

	looked := make([]float64, len(parses))
	sum := 0.0
	for i, p := range parses {
		raw := e.probs.GetValues(key(word, p.Tag.String()))
		if len(raw) == 0 {
			continue
		}
		looked[i] = dawg.DecodeProb(raw[0])
		sum += looked[i]
	}

	if sum == 0 {
		// Nothing known about this word under any of its candidate
		// tags: normalize the scores the units already assigned so
		// they still sum to 1, preserving their relative order instead
		// of discarding them.
		unitSum := 0.0
		for _, p := range parses {
			unitSum += p.Score
		}
		if unitSum == 0 {
			return parses
		}
		for i := range parses {
			parses[i].Score = parses[i].Score / unitSum
		}
		return parses
	}

	for i := range parses {
		parses[i].Score = looked[i]
	}
	sort.SliceStable(parses, func(i, j int) bool { return parses[i].Score > parses[j].Score })
	return parses
}
