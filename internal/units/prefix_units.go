package units

import (
	"strings"

	"github.com/steosofficial/rusmorph/internal/tagset"
)

// KnownPrefixUnit strips a prefix from a fixed, language-supplied list
// (spec §4.4's KnownPrefixAnalyzer) and re-parses the remainder as a
// dictionary word, gluing the prefix back onto every resulting form.
// Absent from the teacher, grounded on original_source's
// KnownPrefixAnalyzer description; scored by straight multiplication
// against the inner dictionary score, matching the teacher's plain
// float arithmetic style used for scoring elsewhere.
type KnownPrefixUnit struct {
	Prefixes []string
	Penalty  float64
	MinRest  int

	ctx  *Context
	dict *DictionaryUnit
}

func (u *KnownPrefixUnit) Clone() Unit {
	return &KnownPrefixUnit{Prefixes: u.Prefixes, Penalty: u.Penalty, MinRest: u.MinRest}
}

func (u *KnownPrefixUnit) Init(ctx *Context) {
	u.ctx = ctx
	u.dict = &DictionaryUnit{}
	u.dict.Init(ctx)
}

func (u *KnownPrefixUnit) Parse(word, wordLower string, seen Seen) []Parse {
	var out []Parse
	for _, prefix := range u.Prefixes {
		if !strings.HasPrefix(wordLower, prefix) {
			continue
		}
		rest := wordLower[len(prefix):]
		if len(rest) < u.MinRest {
			continue
		}
		for _, inner := range u.dict.Parse(rest, rest, seen) {
			out = append(out, rewrapWithPrefix(u, inner, prefix, u.Penalty))
		}
	}
	return out
}

func (u *KnownPrefixUnit) Tag(word, wordLower string, seen Seen) []tagset.Tag {
	return TagsFromParses(u, word, wordLower, seen)
}

func (u *KnownPrefixUnit) GetLexeme(p Parse) []Parse {
	return ExpandLexeme(u.ctx.Dict, p.lastFrame())
}

func (u *KnownPrefixUnit) Normalized(p Parse) Parse {
	return NormalizedFromFrame(u.ctx.Dict, p.lastFrame())
}

// UnknownPrefixUnit tries every prefix length up to MaxLen against an
// otherwise out-of-vocabulary word, re-parsing the remainder as a
// dictionary word. It differs from KnownPrefixUnit only in having no
// fixed prefix vocabulary and a heavier, length-proportional penalty
// (longer guessed prefixes are less trustworthy).
type UnknownPrefixUnit struct {
	MaxLen            int
	MinRest           int
	PenaltyPerRune    float64

	ctx  *Context
	dict *DictionaryUnit
}

func (u *UnknownPrefixUnit) Clone() Unit {
	return &UnknownPrefixUnit{MaxLen: u.MaxLen, MinRest: u.MinRest, PenaltyPerRune: u.PenaltyPerRune}
}

func (u *UnknownPrefixUnit) Init(ctx *Context) {
	u.ctx = ctx
	u.dict = &DictionaryUnit{}
	u.dict.Init(ctx)
}

func (u *UnknownPrefixUnit) Parse(word, wordLower string, seen Seen) []Parse {
	runes := []rune(wordLower)
	var out []Parse
	for n := 1; n <= u.MaxLen && n < len(runes); n++ {
		prefix := string(runes[:n])
		rest := string(runes[n:])
		if len(rest) < u.MinRest {
			break
		}
		penalty := 1.0 - u.PenaltyPerRune*float64(n)
		if penalty <= 0 {
			continue
		}
		for _, inner := range u.dict.Parse(rest, rest, seen) {
			out = append(out, rewrapWithPrefix(u, inner, prefix, penalty))
		}
	}
	return out
}

func (u *UnknownPrefixUnit) Tag(word, wordLower string, seen Seen) []tagset.Tag {
	return TagsFromParses(u, word, wordLower, seen)
}

func (u *UnknownPrefixUnit) GetLexeme(p Parse) []Parse {
	return ExpandLexeme(u.ctx.Dict, p.lastFrame())
}

func (u *UnknownPrefixUnit) Normalized(p Parse) Parse {
	return NormalizedFromFrame(u.ctx.Dict, p.lastFrame())
}

// rewrapWithPrefix glues prefix onto a dictionary-derived parse's word
// and its last frame, attenuating its score. The returned parse carries
// only that rewritten frame.
func rewrapWithPrefix(owner Unit, inner Parse, prefix string, scoreFactor float64) Parse {
	f := inner.lastFrame()
	f.Unit = owner
	f.ExternalPrefix = prefix + f.ExternalPrefix
	f.Word = prefix + f.Word
	return Parse{
		Word:       prefix + inner.Word,
		Tag:        inner.Tag,
		NormalForm: prefix + inner.NormalForm,
		Score:      inner.Score * scoreFactor,
		Methods:    []Frame{f},
	}
}
