package units

import (
	"strings"

	"github.com/steosofficial/rusmorph/internal/tagset"
)

// HyphenUnit covers every hyphen-joined construction spec §4.4 and §9
// group together under one parametrized unit: compound nouns
// ("интернет-магазин"), fixed particles glued onto a pronoun/adverb
// ("кто-то", "как-нибудь"), and a plain prefix-like left part. Rather
// than three separate unit types, one HyphenUnit instance per role is
// configured with a Particles list; an empty list means "plain
// compound splitting" (re-parse the right-hand, head-bearing half
// through the owning pipeline and glue the left half on verbatim).
//
// Grounded on original_source's analyzer.py description of the
// adverb/compound/particle hyphen analyzers as one family sharing a
// recursive "reparse one half" strategy; implemented here by recursing
// through Context.Recurse so HyphenUnit never needs direct access to
// the unit pipeline that owns it.
type HyphenUnit struct {
	// Particles, if non-empty, restricts matches to a known closed set
	// of right-hand particles ("-то", "-либо", "-нибудь") or left-hand
	// ones ("кое-"); the non-particle side is the one re-parsed.
	Particles    []string
	ScorePenalty float64
	MinPartLen   int

	ctx *Context
}

func (u *HyphenUnit) Clone() Unit {
	return &HyphenUnit{Particles: u.Particles, ScorePenalty: u.ScorePenalty, MinPartLen: u.MinPartLen}
}

func (u *HyphenUnit) Init(ctx *Context) { u.ctx = ctx }

func (u *HyphenUnit) Parse(word, wordLower string, seen Seen) []Parse {
	i := strings.IndexRune(wordLower, '-')
	if i <= 0 || i >= len(wordLower)-1 {
		return nil
	}
	left, right := wordLower[:i], wordLower[i+1:]

	if len(u.Particles) > 0 {
		return u.parseWithParticles(wordLower, left, right)
	}
	return u.parseCompound(wordLower, left, right)
}

// parseWithParticles handles fixed-particle hyphenation: one side must
// match a listed particle, the other is re-parsed and kept as the
// wrapped half.
func (u *HyphenUnit) parseWithParticles(word, left, right string) []Parse {
	var out []Parse
	for _, particle := range u.Particles {
		switch {
		case strings.HasPrefix(particle, "-") && strings.TrimPrefix(particle, "-") == right:
			out = append(out, u.wrap(word, left, right, false)...)
		case strings.HasSuffix(particle, "-") && strings.TrimSuffix(particle, "-") == left:
			out = append(out, u.wrap(word, left, right, true)...)
		}
	}
	return out
}

// parseCompound re-parses the right half (the head of a Russian
// hyphenated compound) and requires the left half to independently
// resolve to something, to avoid treating arbitrary hyphenated garbage
// as a compound.
func (u *HyphenUnit) parseCompound(word, left, right string) []Parse {
	if len([]rune(left)) < u.MinPartLen || len([]rune(right)) < u.MinPartLen {
		return nil
	}
	if len(u.ctx.Recurse.Parse(left)) == 0 {
		return nil
	}
	return u.wrap(word, left, right, true)
}

// wrap re-parses whichever side wrapRight selects through the owning
// pipeline and produces one whole-word Parse per resulting sub-parse,
// gluing the other (static) side on verbatim.
func (u *HyphenUnit) wrap(word, left, right string, wrapRight bool) []Parse {
	toReparse, staticPart := left, right
	if wrapRight {
		toReparse, staticPart = right, left
	}
	if len([]rune(toReparse)) < u.MinPartLen {
		return nil
	}

	var out []Parse
	for _, inner := range u.ctx.Recurse.Parse(toReparse) {
		innerCopy := inner
		var normalForm string
		if wrapRight {
			normalForm = staticPart + "-" + inner.NormalForm
		} else {
			normalForm = inner.NormalForm + "-" + staticPart
		}
		out = append(out, Parse{
			Word: word, Tag: inner.Tag, NormalForm: normalForm, Score: inner.Score * u.ScorePenalty,
			Methods: []Frame{{
				Unit: u, Word: word, HasParadigm: false,
				Inner: &innerCopy, InnerIsRight: wrapRight, StaticPart: staticPart,
			}},
		})
	}
	return out
}

func (u *HyphenUnit) Tag(word, wordLower string, seen Seen) []tagset.Tag {
	return TagsFromParses(u, word, wordLower, seen)
}

// GetLexeme delegates to the wrapped sub-parse's own unit, then
// reattaches the static hyphen part to every resulting form.
func (u *HyphenUnit) GetLexeme(p Parse) []Parse {
	f := p.lastFrame()
	if f.Inner == nil {
		return []Parse{p}
	}
	inner := *f.Inner
	innerLexeme := inner.lastFrame().Unit.GetLexeme(inner)
	out := make([]Parse, 0, len(innerLexeme))
	for _, m := range innerLexeme {
		out = append(out, u.rebuild(f, m))
	}
	return out
}

func (u *HyphenUnit) Normalized(p Parse) Parse {
	f := p.lastFrame()
	if f.Inner == nil {
		return p
	}
	inner := *f.Inner
	normInner := inner.lastFrame().Unit.Normalized(inner)
	return u.rebuild(f, normInner)
}

// rebuild reconstructs a whole-word parse by substituting an updated
// inner-part parse back into the hyphen position recorded in f.
func (u *HyphenUnit) rebuild(f Frame, innerMember Parse) Parse {
	var word, normalForm string
	if f.InnerIsRight {
		word = f.StaticPart + "-" + innerMember.Word
		normalForm = f.StaticPart + "-" + innerMember.NormalForm
	} else {
		word = innerMember.Word + "-" + f.StaticPart
		normalForm = innerMember.NormalForm + "-" + f.StaticPart
	}
	innerCopy := innerMember
	return Parse{
		Word: word, Tag: innerMember.Tag, NormalForm: normalForm, Score: innerMember.Score,
		Methods: []Frame{{
			Unit: u, Word: word, HasParadigm: false,
			Inner: &innerCopy, InnerIsRight: f.InnerIsRight, StaticPart: f.StaticPart,
		}},
	}
}
