// Package ru is the Russian language profile: unit pipeline ordering,
// character substitutions, known-prefix list, and the handful of
// scoring constants spec §9 calls language-specific knobs. Kept
// separate from internal/units so a second language profile could be
// added without touching the unit implementations.
package ru

import (
	"github.com/steosofficial/rusmorph/internal/dawg"
	"github.com/steosofficial/rusmorph/internal/tagset"
	"github.com/steosofficial/rusmorph/internal/units"
	"github.com/steosofficial/rusmorph/lang"
)

// Code is the language code this profile answers to (spec §6's
// Environment interface language-code discovery).
const Code = "ru"

// knownPrefixes is a short, plausible list of Russian prefixoids
// productive enough to be worth trying before falling back to the more
// expensive per-length unknown-prefix search. original_source's real
// table was not present in the retrieved slice (only analyzer.py/
// storage.py were kept, not the prefix data file) so this list is a
// documented approximation - see DESIGN.md.
var knownPrefixes = []string{
	"авиа", "авто", "анти", "архи", "гипер", "контр",
	"лже", "мега", "мини", "около", "полу", "пост",
	"псевдо", "сверх", "супер", "ультра", "экс",
}

// abbreviationEntries is a short closed list of common indeclinable Russian
// abbreviations, tagged as indeclinable nouns.
var abbreviationEntries = map[string]tagset.Tag{
	"сша": tagset.ParseTag("Существительное,Несклоняемый,Аббревиатура"),
	"оон": tagset.ParseTag("Существительное,Несклоняемый,Аббревиатура"),
	"мид": tagset.ParseTag("Существительное,Несклоняемый,Аббревиатура"),
	"вуз": tagset.ParseTag("Существительное,Несклоняемый,Аббревиатура"),
	"гибдд": tagset.ParseTag("Существительное,Несклоняемый,Аббревиатура"),
}

// charSubstitutes lists ё/е as mutually substitutable, the single
// character pair Russian dictionaries routinely normalize away (spec
// §4.1's compile_replaces / SimilarItems use case).
var charSubstitutes = dawg.ReplaceMap{
	'е': {'ё'},
	'ё': {'е'},
}

// Profile builds the Russian language profile's unbound unit pipeline.
// Every call returns fresh, unbound unit instances; morph.New clones
// and Init()s its own copy so multiple analyzers never share unit
// state.
func Profile() lang.Profile {
	return lang.Profile{
		Code:            Code,
		CharSubstitutes: charSubstitutes,
		Groups: []lang.Group{
			{Units: []units.Unit{&units.DictionaryUnit{}}},
			{Units: []units.Unit{
				&units.KnownPrefixUnit{Prefixes: knownPrefixes, Penalty: 0.7, MinRest: 3},
			}},
			{Units: []units.Unit{
				&units.HyphenUnit{ // fixed right-hand particle: "кто-то", "как-либо"
					Particles: []string{"-то", "-либо", "-нибудь"}, ScorePenalty: 0.8, MinPartLen: 1,
				},
				&units.HyphenUnit{ // fixed left-hand particle: "кое-что", "по-английски"
					Particles: []string{"кое-", "по-"}, ScorePenalty: 0.8, MinPartLen: 1,
				},
				&units.HyphenUnit{ // plain compound: "интернет-магазин"
					ScorePenalty: 0.5, MinPartLen: 2,
				},
			}},
			{Units: []units.Unit{
				&units.UnknownPrefixUnit{MaxLen: 5, MinRest: 3, PenaltyPerRune: 0.1},
				&units.SuffixUnit{MaxSuffixLen: 5, MinWordLen: 4, ScorePenalty: 0.5},
			}},
			{Units: []units.Unit{&units.NumberUnit{LiteralTag: tagset.ParseTag("NUMB")}}},
			{Units: []units.Unit{&units.RomanNumberUnit{LiteralTag: tagset.ParseTag("ROMN")}}},
			{Units: []units.Unit{&units.PunctuationUnit{LiteralTag: tagset.ParseTag("PNCT")}}},
			{Units: []units.Unit{&units.InitialFormUnit{LiteralTag: tagset.ParseTag("INIT")}}},
			{Units: []units.Unit{&units.AbbreviationUnit{Entries: abbreviationEntries}}},
			{Units: []units.Unit{&units.LatinUnit{LiteralTag: tagset.ParseTag("LATN")}}},
		},
	}
}
