// Package units implements the polymorphic analyzer-unit pipeline
// (spec §4.4): dictionary lookup, prefix/suffix predictors for
// out-of-vocabulary words, hyphen-splitting, and small recognizers for
// numbers, Roman numerals, Latin script, and punctuation.
//
// Every concrete unit is a small, clonable, stateless-until-bound value
// implementing the Unit interface. A MorphAnalyzer owns one bound copy
// of each; Context carries the shared dependencies (the dictionary,
// compiled character substitutions, and a Recurser back into the owning
// pipeline for units that need to reparse a sub-string).
package units

import (
	"github.com/steosofficial/rusmorph/internal/dawg"
	"github.com/steosofficial/rusmorph/internal/dictionary"
	"github.com/steosofficial/rusmorph/internal/tagset"
)

// SeenKey identifies one (word, paradigm_id, form_index) triple already
// emitted during the current query.
type SeenKey struct {
	Word       string
	ParadigmID uint16
	FormIndex  uint16
}

// Seen deduplicates triples across units within one query, so a
// predictor doesn't re-emit a parse a dictionary unit already produced.
type Seen map[SeenKey]struct{}

func NewSeen() Seen { return make(Seen) }

// Check reports whether the triple was already recorded, recording it
// if not - the same "check-and-set" shape callers need for dedup.
func (s Seen) Check(word string, paradigmID, formIndex uint16) bool {
	k := SeenKey{Word: word, ParadigmID: paradigmID, FormIndex: formIndex}
	if _, ok := s[k]; ok {
		return true
	}
	s[k] = struct{}{}
	return false
}

// Frame is one entry of a Parse's methods stack: which unit produced
// the parse, and the data needed to reconstruct its normal form or
// enumerate its lexeme without storing a raw unit reference inside
// every Parse (spec §9). HasParadigm distinguishes paradigm-backed
// frames (dictionary hits, predictions, prefix wraps) from frames
// produced by paradigm-less recognizers (numbers, punctuation, ...).
type Frame struct {
	Unit           Unit
	Word           string
	ParadigmID     uint16
	Stem           string
	ExternalPrefix string
	HasParadigm    bool
	Inner          *Parse // set by HyphenUnit: the wrapped sub-parse of one hyphen part
	InnerIsRight   bool   // true if Inner is the right-hand hyphen part, false if left
	StaticPart     string // the hyphen part that is NOT re-parsed, verbatim
}

// Parse is one candidate morphological analysis (spec §3). The methods
// stack is never empty; its last frame's Unit implements GetLexeme and
// Normalized for this parse.
type Parse struct {
	Word       string
	Tag        tagset.Tag
	NormalForm string
	Score      float64
	Methods    []Frame
}

func (p Parse) lastFrame() Frame { return p.Methods[len(p.Methods)-1] }

// Recurser lets a unit (HyphenUnit) reparse a substring through the
// full owning pipeline, without units importing the orchestrator
// package that assembles them (which would create an import cycle).
type Recurser interface {
	Parse(word string) []Parse
}

// Context carries the dependencies every bound unit needs.
type Context struct {
	Dict        *dictionary.Dictionary
	Substitutes *dawg.CompiledReplaces
	Recurse     Recurser
}

// Unit is the capability set every analyzer unit implements (spec
// §4.4).
type Unit interface {
	// Clone returns a fresh, unbound instance of the same kind.
	Clone() Unit
	// Init binds the unit to its owning context.
	Init(ctx *Context)
	// Parse returns candidate parses for word (word_lower is the
	// precomputed lowercase form; seen dedups across units).
	Parse(word, wordLower string, seen Seen) []Parse
	// Tag is like Parse but returns only tags (spec allows some units
	// to skip reconstructing full Parse values for tag()-only calls;
	// the default implementation in this package just strips Parse).
	Tag(word, wordLower string, seen Seen) []tagset.Tag
	// GetLexeme enumerates every form of the paradigm backing p.
	GetLexeme(p Parse) []Parse
	// Normalized returns form 0 of the same paradigm as p.
	Normalized(p Parse) Parse
}

// TagsFromParses is the default Tag() implementation shared by every
// concrete unit: run Parse and keep only the tags. Units for which
// tag() can be computed more cheaply than parse() may override it, but
// none of the units in this package need to.
func TagsFromParses(u Unit, word, wordLower string, seen Seen) []tagset.Tag {
	parses := u.Parse(word, wordLower, seen)
	tags := make([]tagset.Tag, len(parses))
	for i, p := range parses {
		tags[i] = p.Tag
	}
	return tags
}

// ExpandLexeme enumerates every form of the paradigm referenced by a
// paradigm-backed frame, reattaching any external (out-of-paradigm)
// prefix the producing unit glued on. Every resulting Parse carries its
// own methods stack pointing at the same (paradigm, stem, prefix), so
// the lexeme-closure invariant holds regardless of which member is used
// to ask for it again.
func ExpandLexeme(dict *dictionary.Dictionary, f Frame) []Parse {
	if !f.HasParadigm {
		return nil
	}
	forms := dict.FormsFromStem(f.ParadigmID, f.Stem)
	if len(forms) == 0 {
		return nil
	}
	normalForm := f.ExternalPrefix + forms[0].Word
	out := make([]Parse, len(forms))
	for i, form := range forms {
		word := f.ExternalPrefix + form.Word
		out[i] = Parse{
			Word:       word,
			Tag:        form.Tag,
			NormalForm: normalForm,
			Score:      1.0,
			Methods: []Frame{{
				Unit: f.Unit, Word: word, ParadigmID: f.ParadigmID,
				Stem: f.Stem, ExternalPrefix: f.ExternalPrefix, HasParadigm: true,
			}},
		}
	}
	return out
}

// NormalizedFromFrame returns form 0 of the paradigm a frame refers to.
func NormalizedFromFrame(dict *dictionary.Dictionary, f Frame) Parse {
	forms := dict.FormsFromStem(f.ParadigmID, f.Stem)
	if len(forms) == 0 {
		return Parse{}
	}
	word := f.ExternalPrefix + forms[0].Word
	return Parse{
		Word: word, Tag: forms[0].Tag, NormalForm: word, Score: 1.0,
		Methods: []Frame{{
			Unit: f.Unit, Word: word, ParadigmID: f.ParadigmID,
			Stem: f.Stem, ExternalPrefix: f.ExternalPrefix, HasParadigm: true,
		}},
	}
}
