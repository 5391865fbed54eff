// Package morph is the library entry point (spec §4.6, §6 Library
// API): it assembles a Dictionary, a language's unit pipeline, and the
// probability estimator into one MorphAnalyzer, and implements the
// parse / tag / inflect operations that use all three together.
//
// Grounded on original_source's MorphAnalyzer (_init_units, parse,
// _inflect, iter_known_word_parses, word_is_known), translated into
// idiomatic Go: explicit error returns, and - per spec §9's design note
// - no back-pointer from Parse to the analyzer that produced it;
// inflection methods take the analyzer explicitly instead.
package morph

import (
	"strings"
	"sync"

	"github.com/steosofficial/rusmorph/internal/dawg"
	"github.com/steosofficial/rusmorph/internal/dictionary"
	"github.com/steosofficial/rusmorph/internal/estimator"
	"github.com/steosofficial/rusmorph/internal/tagset"
	"github.com/steosofficial/rusmorph/internal/units"
)

// Parse is one candidate morphological analysis. It carries no
// back-reference to the MorphAnalyzer that produced it (spec §9); pass
// the analyzer explicitly to GetLexeme, Inflect, Normalized and
// MakeAgreeWithNumber.
type Parse = units.Parse

// Frame is one entry of a Parse's methods stack (spec §9's
// MethodsStack). Re-exported so callers inspecting Parse.Methods don't
// need to import internal/units directly - it is still only
// constructible by this module's own units.
type Frame = units.Frame

type pipelineEntry struct {
	unit     units.Unit
	terminal bool
}

// MorphAnalyzer owns an immutable Dictionary, a bound unit pipeline,
// and a probability estimator. It is safe for concurrent read-only use
// after New returns (spec §5): all mutation happens during
// construction, under the process-wide lock tagset.Lock/Unlock
// serializes.
type MorphAnalyzer struct {
	dict        *dictionary.Dictionary
	substitutes *dawg.CompiledReplaces
	pipeline    []pipelineEntry
	dictUnit    *units.DictionaryUnit
	estimator   *estimator.Estimator
	warner      Warner

	closeOnce sync.Once
}

// New loads a dictionary bundle and builds a bound unit pipeline for
// it. Construction is serialized process-wide by tagset.Lock, the
// stand-in for the source analyzer's one-time interning guard (spec
// §5); the returned MorphAnalyzer needs no further synchronization.
func New(opts ...Option) (*MorphAnalyzer, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	path, err := resolveDictPath(o)
	if err != nil {
		return nil, err
	}

	tagset.Lock()
	defer tagset.Unlock()

	dict, err := dictionary.Load(path)
	if err != nil {
		return nil, err
	}

	profile := resolveProfile(o)
	substitutes := dawg.CompileReplaces(profile.CharSubstitutes)

	m := &MorphAnalyzer{
		dict:        dict,
		substitutes: substitutes,
		warner:      o.warner,
		estimator:   estimator.New(dict.ProbDAWG()),
	}
	ctx := &units.Context{Dict: dict, Substitutes: substitutes, Recurse: pipelineRecurser{m}}

	for _, group := range profile.Groups {
		for i, u := range group.Units {
			bound := u.Clone()
			bound.Init(ctx)
			if du, ok := bound.(*units.DictionaryUnit); ok {
				m.dictUnit = du
			}
			m.pipeline = append(m.pipeline, pipelineEntry{unit: bound, terminal: i == len(group.Units)-1})
		}
	}

	return m, nil
}

// Close releases the dictionary's memory mappings. After Close the
// MorphAnalyzer must not be used.
func (m *MorphAnalyzer) Close() error {
	var err error
	m.closeOnce.Do(func() { err = m.dict.Close() })
	return err
}

// TagClass exposes the bound grammeme/tag registry, e.g. for callers
// building a required-grammeme set with tagset.GrammemeSetFromLabels.
func (m *MorphAnalyzer) TagClass() *tagset.Class { return m.dict.TagClass }

// Cyr2Lat / Lat2Cyr proxy the bound registry's grammeme alias lookup.
func (m *MorphAnalyzer) Cyr2Lat(label string) string { return m.dict.TagClass.Cyr2Lat(label) }
func (m *MorphAnalyzer) Lat2Cyr(label string) string { return m.dict.TagClass.Lat2Cyr(label) }

// rawParse runs the unit pipeline to completion (spec §4.6's
// short-circuit-on-terminal-group rule) without probability
// re-ranking. Exported indirectly via pipelineRecurser for units that
// need to reparse a sub-string; Parse wraps this with re-ranking for
// external callers.
func (m *MorphAnalyzer) rawParse(word string) []Parse {
	wordLower := strings.ToLower(word)
	seen := units.NewSeen()
	var out []Parse
	for _, entry := range m.pipeline {
		out = append(out, entry.unit.Parse(word, wordLower, seen)...)
		if entry.terminal && len(out) > 0 {
			break
		}
	}
	return out
}

// Parse returns every candidate analysis of word, re-ranked by the
// dictionary's conditional-probability table when one is present.
func (m *MorphAnalyzer) Parse(word string) []Parse {
	return m.estimator.Apply(strings.ToLower(word), m.rawParse(word))
}

// Tag is like Parse but returns only tags, letting units skip
// reconstructing full Parse values where that would be wasted work.
func (m *MorphAnalyzer) Tag(word string) []tagset.Tag {
	wordLower := strings.ToLower(word)
	seen := units.NewSeen()
	var out []tagset.Tag
	for _, entry := range m.pipeline {
		out = append(out, entry.unit.Tag(word, wordLower, seen)...)
		if entry.terminal && len(out) > 0 {
			break
		}
	}
	return out
}

// NormalForms returns the distinct normal forms among word's parses, in
// the order their owning parses first appear.
func (m *MorphAnalyzer) NormalForms(word string) []string {
	parses := m.Parse(word)
	seen := make(map[string]struct{}, len(parses))
	out := make([]string, 0, len(parses))
	for _, p := range parses {
		if _, dup := seen[p.NormalForm]; dup {
			continue
		}
		seen[p.NormalForm] = struct{}{}
		out = append(out, p.NormalForm)
	}
	return out
}

// WordIsKnown reports whether word is a dictionary key. strict=false
// allows the language's character substitutions (ё/е) when checking;
// strict=true requires an exact byte match.
func (m *MorphAnalyzer) WordIsKnown(word string, strict bool) bool {
	wordLower := strings.ToLower(word)
	if strict {
		return m.dict.WordIsKnown(wordLower, nil)
	}
	return m.dict.WordIsKnown(wordLower, m.substitutes)
}

// IterKnownWordParses enumerates every dictionary parse whose surface
// word starts with prefix, in ascending word order (spec §6).
func (m *MorphAnalyzer) IterKnownWordParses(prefix string) []Parse {
	entries := m.dict.IterKnownWords(strings.ToLower(prefix))
	out := make([]Parse, 0, len(entries))
	for _, e := range entries {
		stem, ok := m.dict.RecoverStem(e.ParadigmID, e.FormIndex, e.Word)
		if !ok {
			continue
		}
		out = append(out, Parse{
			Word: e.Word, Tag: e.Tag, NormalForm: e.NormalForm, Score: 1.0,
			Methods: []Frame{{Unit: m.dictUnit, Word: e.Word, ParadigmID: e.ParadigmID, Stem: stem, HasParadigm: true}},
		})
	}
	return out
}

// GetLexeme enumerates every form of the paradigm behind p, delegating
// to the unit that produced p's terminal methods-stack frame.
func (m *MorphAnalyzer) GetLexeme(p Parse) []Parse {
	if len(p.Methods) == 0 {
		return nil
	}
	return p.Methods[len(p.Methods)-1].Unit.GetLexeme(p)
}

// Normalized returns form 0 (the lemma) of the paradigm behind p.
func (m *MorphAnalyzer) Normalized(p Parse) Parse {
	if len(p.Methods) == 0 {
		return p
	}
	return p.Methods[len(p.Methods)-1].Unit.Normalized(p)
}

func intersectionSize(a, b map[string]struct{}) int {
	n := 0
	for g := range a {
		if _, ok := b[g]; ok {
			n++
		}
	}
	return n
}

func symmetricDifferenceSize(a, b map[string]struct{}) int {
	n := 0
	for g := range a {
		if _, ok := b[g]; !ok {
			n++
		}
	}
	for g := range b {
		if _, ok := a[g]; !ok {
			n++
		}
	}
	return n
}

func filterSuperset(forms []Parse, required map[string]struct{}) []Parse {
	out := make([]Parse, 0, len(forms))
	for _, f := range forms {
		if f.Tag.IsSupersetOf(required) {
			out = append(out, f)
		}
	}
	return out
}

// Inflect returns the lexeme member of p's paradigm that best agrees
// with required, per spec §4.6's `_inflect` algorithm: filter lexeme
// forms whose tag is a superset of required; if none match, retry with
// tagset.FixRareCases(required); rank survivors by
// |G∩required| - 0.1*|G△required| where G is
// TagClass().UpdatedGrammemes(form.Tag, required); return the
// highest-ranked survivor, ties broken by input order.
func (m *MorphAnalyzer) Inflect(p Parse, required map[string]struct{}) (Parse, bool) {
	lexeme := m.GetLexeme(p)
	if len(lexeme) == 0 {
		return Parse{}, false
	}

	survivors := filterSuperset(lexeme, required)
	if len(survivors) == 0 {
		required = tagset.FixRareCases(required)
		survivors = filterSuperset(lexeme, required)
	}
	if len(survivors) == 0 {
		return Parse{}, false
	}

	bestIdx := 0
	bestScore := -1.0
	for i, s := range survivors {
		g := m.dict.TagClass.UpdatedGrammemes(s.Tag, required)
		score := float64(intersectionSize(g, required)) - 0.1*float64(symmetricDifferenceSize(g, required))
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	return survivors[bestIdx], true
}

// MakeAgreeWithNumber inflects p to agree with the Russian numeral n
// (spec §4.2's numeral agreement table), via Inflect.
func (m *MorphAnalyzer) MakeAgreeWithNumber(p Parse, n int) (Parse, bool) {
	return m.Inflect(p, tagset.NumeralAgreementGrammemes(n))
}
