package units

import (
	"github.com/steosofficial/rusmorph/internal/dawg"
	"github.com/steosofficial/rusmorph/internal/tagset"
)

// DictionaryUnit looks a word up directly in the compiled word trie
// (spec §4.4), optionally retrying under the language's character
// substitutions (ё/е and similar) so a dictionary entry stored with the
// "canonical" spelling is still found for a surface form spelled the
// other way. Grounded on the teacher's direct Parse/findChildGeneral
// trie walk.
type DictionaryUnit struct {
	ctx *Context
}

func (u *DictionaryUnit) Clone() Unit { return &DictionaryUnit{} }

func (u *DictionaryUnit) Init(ctx *Context) { u.ctx = ctx }

func (u *DictionaryUnit) Parse(word, wordLower string, seen Seen) []Parse {
	var out []Parse
	out = append(out, u.parseExact(wordLower, 1.0, seen)...)
	if u.ctx.Substitutes != nil {
		for _, variant := range dawg.SimilarItems(u.ctx.Dict.Words(), wordLower, u.ctx.Substitutes) {
			if variant == wordLower {
				continue
			}
			out = append(out, u.parseExact(variant, 1.0, seen)...)
		}
	}
	return out
}

func (u *DictionaryUnit) parseExact(word string, score float64, seen Seen) []Parse {
	entries := u.ctx.Dict.WordEntries(word)
	out := make([]Parse, 0, len(entries))
	for _, e := range entries {
		if seen.Check(word, e.ParadigmID, e.FormIndex) {
			continue
		}
		tag, ok := u.ctx.Dict.BuildTagInfo(e.ParadigmID, e.FormIndex)
		if !ok {
			continue
		}
		stem, ok := u.ctx.Dict.RecoverStem(e.ParadigmID, e.FormIndex, word)
		if !ok {
			continue
		}
		normalForm := u.ctx.Dict.BuildNormalForm(e.ParadigmID, e.FormIndex, word)
		out = append(out, Parse{
			Word: word, Tag: tag, NormalForm: normalForm, Score: score,
			Methods: []Frame{{Unit: u, Word: word, ParadigmID: e.ParadigmID, Stem: stem, HasParadigm: true}},
		})
	}
	return out
}

func (u *DictionaryUnit) Tag(word, wordLower string, seen Seen) []tagset.Tag {
	return TagsFromParses(u, word, wordLower, seen)
}

func (u *DictionaryUnit) GetLexeme(p Parse) []Parse {
	return ExpandLexeme(u.ctx.Dict, p.lastFrame())
}

func (u *DictionaryUnit) Normalized(p Parse) Parse {
	return NormalizedFromFrame(u.ctx.Dict, p.lastFrame())
}
