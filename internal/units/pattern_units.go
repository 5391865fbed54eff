package units

import (
	"regexp"
	"strings"

	"github.com/steosofficial/rusmorph/internal/tagset"
)

// Small, terminal recognizers for token classes that never need
// dictionary lookup: digit sequences, Roman numerals, Latin-script
// tokens, bare punctuation, and single capitalized "initial" letters
// (spec §4.4). Grounded on az-lang-nlp's ner/patterns.go and
// datetime/patterns.go style: a package-level compiled regexp per
// pattern family, one recognizer function each, instead of one big
// regular expression.

var (
	digitsPattern = regexp.MustCompile(`^[0-9]+$`)
	romanPattern  = regexp.MustCompile(`(?i)^M{0,4}(CM|CD|D?C{0,3})(XC|XL|L?X{0,3})(IX|IV|V?I{0,3})$`)
	latinPattern  = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9\-]*$`)
	punctPattern  = regexp.MustCompile(`^[\p{P}\p{S}]+$`)
	initialPattern = regexp.MustCompile(`^\p{Lu}\.$`)
)

func newLiteralParse(word string, tag tagset.Tag, u Unit) Parse {
	return Parse{
		Word: word, Tag: tag, NormalForm: word, Score: 1.0,
		Methods: []Frame{{Unit: u, Word: word, HasParadigm: false}},
	}
}

// literalUnit factors the shared behavior of every paradigm-less
// pattern recognizer: GetLexeme/Normalized are both identity, since a
// number or punctuation token has exactly one form.
type literalUnit struct{}

func (literalUnit) GetLexeme(p Parse) []Parse { return []Parse{p} }
func (literalUnit) Normalized(p Parse) Parse  { return p }

// NumberUnit recognizes bare digit sequences (spec §4.4 NumberAnalyzer)
// and tags them as a numeral in the fixed (indeclinable-as-written)
// reading; MakeAgreeWithNumber / Inflect operate on the agreeing noun,
// not on the digit token itself.
type NumberUnit struct {
	literalUnit
	LiteralTag tagset.Tag
	ctx *Context
}

func (u *NumberUnit) Clone() Unit           { return &NumberUnit{LiteralTag: u.LiteralTag} }
func (u *NumberUnit) Init(ctx *Context)     { u.ctx = ctx }
func (u *NumberUnit) Parse(word, wordLower string, seen Seen) []Parse {
	if !digitsPattern.MatchString(wordLower) {
		return nil
	}
	if seen.Check(wordLower, 0, 0) {
		return nil
	}
	return []Parse{newLiteralParse(word, u.LiteralTag, u)}
}
func (u *NumberUnit) Tag(word, wordLower string, seen Seen) []tagset.Tag {
	return TagsFromParses(u, word, wordLower, seen)
}

// RomanNumberUnit recognizes Roman numerals (I, II, IV, MCMXCIX, ...).
type RomanNumberUnit struct {
	literalUnit
	LiteralTag tagset.Tag
	ctx *Context
}

func (u *RomanNumberUnit) Clone() Unit       { return &RomanNumberUnit{LiteralTag: u.LiteralTag} }
func (u *RomanNumberUnit) Init(ctx *Context) { u.ctx = ctx }
func (u *RomanNumberUnit) Parse(word, wordLower string, seen Seen) []Parse {
	upper := strings.ToUpper(word)
	if upper == "" || !romanPattern.MatchString(upper) {
		return nil
	}
	if seen.Check(upper, 0, 1) {
		return nil
	}
	return []Parse{newLiteralParse(word, u.LiteralTag, u)}
}
func (u *RomanNumberUnit) Tag(word, wordLower string, seen Seen) []tagset.Tag {
	return TagsFromParses(u, word, wordLower, seen)
}

// LatinUnit recognizes Latin-script tokens not found in the dictionary
// (foreign words, product names); tagged LATN per spec's grammeme set.
type LatinUnit struct {
	literalUnit
	LiteralTag tagset.Tag
	ctx *Context
}

func (u *LatinUnit) Clone() Unit       { return &LatinUnit{LiteralTag: u.LiteralTag} }
func (u *LatinUnit) Init(ctx *Context) { u.ctx = ctx }
func (u *LatinUnit) Parse(word, wordLower string, seen Seen) []Parse {
	if !latinPattern.MatchString(word) {
		return nil
	}
	if seen.Check(wordLower, 0, 2) {
		return nil
	}
	return []Parse{newLiteralParse(word, u.LiteralTag, u)}
}
func (u *LatinUnit) Tag(word, wordLower string, seen Seen) []tagset.Tag {
	return TagsFromParses(u, word, wordLower, seen)
}

// PunctuationUnit recognizes tokens made entirely of punctuation or
// symbol runes.
type PunctuationUnit struct {
	literalUnit
	LiteralTag tagset.Tag
	ctx *Context
}

func (u *PunctuationUnit) Clone() Unit       { return &PunctuationUnit{LiteralTag: u.LiteralTag} }
func (u *PunctuationUnit) Init(ctx *Context) { u.ctx = ctx }
func (u *PunctuationUnit) Parse(word, wordLower string, seen Seen) []Parse {
	if !punctPattern.MatchString(word) {
		return nil
	}
	if seen.Check(word, 0, 3) {
		return nil
	}
	return []Parse{newLiteralParse(word, u.LiteralTag, u)}
}
func (u *PunctuationUnit) Tag(word, wordLower string, seen Seen) []tagset.Tag {
	return TagsFromParses(u, word, wordLower, seen)
}

// InitialFormUnit recognizes a single capital letter followed by a dot,
// as in a name's initial ("И."), and tags it with its LiteralTag (INIT
// in the Russian profile), since it behaves like an indeclinable
// abbreviation.
type InitialFormUnit struct {
	literalUnit
	LiteralTag tagset.Tag
	ctx *Context
}

func (u *InitialFormUnit) Clone() Unit       { return &InitialFormUnit{LiteralTag: u.LiteralTag} }
func (u *InitialFormUnit) Init(ctx *Context) { u.ctx = ctx }
func (u *InitialFormUnit) Parse(word, wordLower string, seen Seen) []Parse {
	if !initialPattern.MatchString(word) {
		return nil
	}
	if seen.Check(word, 0, 4) {
		return nil
	}
	return []Parse{newLiteralParse(word, u.LiteralTag, u)}
}
func (u *InitialFormUnit) Tag(word, wordLower string, seen Seen) []tagset.Tag {
	return TagsFromParses(u, word, wordLower, seen)
}

// AbbreviationUnit recognizes a closed, language-supplied list of
// indeclinable abbreviations (spec §4.4) that should resolve even
// though they are too short or irregular to be worth compiling into
// the paradigm dictionary (e.g. "США", "ООН").
type AbbreviationUnit struct {
	literalUnit
	Entries map[string]tagset.Tag
	ctx     *Context
}

func (u *AbbreviationUnit) Clone() Unit       { return &AbbreviationUnit{Entries: u.Entries} }
func (u *AbbreviationUnit) Init(ctx *Context) { u.ctx = ctx }
func (u *AbbreviationUnit) Parse(word, wordLower string, seen Seen) []Parse {
	tag, ok := u.Entries[wordLower]
	if !ok {
		return nil
	}
	if seen.Check(wordLower, 0, 5) {
		return nil
	}
	return []Parse{newLiteralParse(word, tag, u)}
}
func (u *AbbreviationUnit) Tag(word, wordLower string, seen Seen) []tagset.Tag {
	return TagsFromParses(u, word, wordLower, seen)
}
