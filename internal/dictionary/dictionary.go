// Package dictionary loads and owns the immutable, on-disk compiled
// lexicon bundle (spec §4.3, §6): metadata, grammar table, paradigms,
// suffix/prefix string tables, the word trie, and the per-prefix
// prediction tries. A Dictionary is read-only after Load and safe for
// concurrent readers.
package dictionary

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/steosofficial/rusmorph/internal/dawg"
	"github.com/steosofficial/rusmorph/internal/tagset"
)

// FormInfo is one (prefix, tag, suffix) entry of a paradigm's shape, as
// returned by BuildParadigmInfo.
type FormInfo struct {
	Prefix string
	Tag    tagset.Tag
	Suffix string
}

// WordEntry is one fully resolved dictionary hit, as returned by
// IterKnownWords.
type WordEntry struct {
	Word        string
	Tag         tagset.Tag
	NormalForm  string
	ParadigmID  uint16
	FormIndex   uint16
}

// Dictionary is the loaded, immutable lexicon bundle.
type Dictionary struct {
	Meta     Meta
	TagClass *tagset.Class

	suffixes []string
	prefixes []string // == Meta.ParadigmPrefixes; also the prefix string pool
	paradigms []Paradigm

	words             *dawg.MappedAutomaton
	predictionSuffixes []*dawg.MappedAutomaton // indexed by paradigm-prefix id
	prob              *dawg.MappedAutomaton    // nil if dictionary has no P(t|w) data

	closers []io.Closer
}

// Load reads a dictionary bundle from dir (spec §6's on-disk layout).
func Load(dir string) (*Dictionary, error) {
	meta, err := loadJSONMeta(dir)
	if err != nil {
		return nil, err
	}

	registry, err := loadGrammemes(dir)
	if err != nil {
		return nil, err
	}

	gramtabStrings, err := loadGramtab(dir, meta)
	if err != nil {
		return nil, err
	}
	if err := validateGramtab(registry, gramtabStrings); err != nil {
		return nil, err
	}
	tagClass := tagset.NewClass(registry, gramtabStrings)

	suffixes, err := loadStringList(filepath.Join(dir, "suffixes.json"))
	if err != nil {
		return nil, err
	}

	paradigmsData, err := os.ReadFile(filepath.Join(dir, "paradigms.array"))
	if err != nil {
		return nil, fmt.Errorf("%w: reading paradigms.array: %v", ErrCorruptDictionary, err)
	}
	paradigms, err := parseParadigms(paradigmsData)
	if err != nil {
		return nil, err
	}

	d := &Dictionary{
		Meta:      meta,
		TagClass:  tagClass,
		suffixes:  suffixes,
		prefixes:  meta.ParadigmPrefixes,
		paradigms: paradigms,
	}

	words, err := dawg.LoadFile(filepath.Join(dir, "words.dawg"), dawg.WordPayloadSize)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("%w: %v", ErrCorruptDictionary, err)
	}
	d.words = words
	d.closers = append(d.closers, words)

	d.predictionSuffixes = make([]*dawg.MappedAutomaton, len(d.prefixes))
	for i := range d.prefixes {
		path := filepath.Join(dir, fmt.Sprintf("prediction-suffixes-%d.dawg", i))
		a, err := dawg.LoadFile(path, dawg.PredictPayloadSize)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				a = &dawg.MappedAutomaton{Automaton: &dawg.Automaton{PayloadSize: dawg.PredictPayloadSize}}
			} else {
				d.Close()
				return nil, fmt.Errorf("%w: %v", ErrCorruptDictionary, err)
			}
		}
		d.predictionSuffixes[i] = a
		d.closers = append(d.closers, a)
	}

	if meta.HasProb {
		prob, err := dawg.LoadFile(filepath.Join(dir, "p_t_given_w.intdawg"), dawg.ProbPayloadSize)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				d.Close()
				return nil, fmt.Errorf("%w: %v", ErrCorruptDictionary, err)
			}
		} else {
			d.prob = prob
			d.closers = append(d.closers, prob)
		}
	}

	return d, nil
}

// Close releases the underlying memory mappings. After Close the
// Dictionary must not be used.
func (d *Dictionary) Close() error {
	var firstErr error
	for _, c := range d.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ProbDAWG exposes the optional conditional-probability automaton
// (nil if the dictionary was compiled without P(t|w) data).
func (d *Dictionary) ProbDAWG() *dawg.Automaton {
	if d.prob == nil {
		return nil
	}
	return d.prob.Automaton
}

// Words exposes the word automaton for units that need direct access
// (dictionary lookup, known-prefix / unknown-prefix heuristics).
func (d *Dictionary) Words() *dawg.Automaton { return d.words.Automaton }

// PredictionSuffixes returns the prediction trie bound to paradigm-prefix
// index i (0 for languages with a single, empty paradigm prefix).
func (d *Dictionary) PredictionSuffixes(i int) *dawg.Automaton {
	if i < 0 || i >= len(d.predictionSuffixes) {
		return nil
	}
	return d.predictionSuffixes[i].Automaton
}

// ParadigmPrefixCount returns how many paradigm-prefix buckets (and
// thus prediction tries) this dictionary has.
func (d *Dictionary) ParadigmPrefixCount() int { return len(d.prefixes) }

func (d *Dictionary) paradigmAt(id uint16) (Paradigm, bool) {
	if int(id) >= len(d.paradigms) {
		return Paradigm{}, false
	}
	return d.paradigms[id], true
}

// BuildTagInfo resolves (paradigm_id, form_index) to its Tag.
func (d *Dictionary) BuildTagInfo(paradigmID, formIndex uint16) (tagset.Tag, bool) {
	p, ok := d.paradigmAt(paradigmID)
	if !ok || int(formIndex) >= p.NumForms() {
		return tagset.Tag{}, false
	}
	return d.TagClass.BuildTag(int(p.TagID(int(formIndex))))
}

func (d *Dictionary) surfaceForm(p Paradigm, formIndex int, stem string) string {
	return d.prefixes[p.PrefixID(formIndex)] + stem + d.suffixes[p.SuffixID(formIndex)]
}

// stemOf recovers the paradigm stem from a known surface word and the
// form it was matched as, by stripping that form's prefix and suffix.
func (d *Dictionary) stemOf(p Paradigm, formIndex int, word string) (string, bool) {
	prefix := d.prefixes[p.PrefixID(formIndex)]
	suffix := d.suffixes[p.SuffixID(formIndex)]
	if !strings.HasPrefix(word, prefix) {
		return "", false
	}
	rest := word[len(prefix):]
	if !strings.HasSuffix(rest, suffix) {
		return "", false
	}
	return rest[:len(rest)-len(suffix)], true
}

// RecoverStem strips form formIndex's known prefix/suffix from word to
// recover the paradigm stem, the inverse of surfaceForm. Units use this
// once per dictionary hit so every later lexeme/normal-form request can
// work from the stem alone instead of re-walking the word.
func (d *Dictionary) RecoverStem(paradigmID, formIndex uint16, word string) (string, bool) {
	p, ok := d.paradigmAt(paradigmID)
	if !ok || int(formIndex) >= p.NumForms() {
		return "", false
	}
	return d.stemOf(p, int(formIndex), word)
}

// BuildNormalForm reconstructs form 0 (the lemma) of the paradigm that
// produced `word` as form `formIndex`. If the paradigm is degenerate
// (absent, or the word doesn't actually decompose under it) the
// original word is returned unchanged.
func (d *Dictionary) BuildNormalForm(paradigmID, formIndex uint16, fallbackWord string) string {
	p, ok := d.paradigmAt(paradigmID)
	if !ok || int(formIndex) >= p.NumForms() {
		return fallbackWord
	}
	stem, ok := d.stemOf(p, int(formIndex), fallbackWord)
	if !ok {
		return fallbackWord
	}
	return d.surfaceForm(p, 0, stem)
}

// BuildParadigmInfo returns the (prefix, tag, suffix) shape of every
// form in a paradigm, independent of any particular stem.
func (d *Dictionary) BuildParadigmInfo(paradigmID uint16) []FormInfo {
	p, ok := d.paradigmAt(paradigmID)
	if !ok {
		return nil
	}
	out := make([]FormInfo, p.NumForms())
	for i := range out {
		tag, _ := d.TagClass.BuildTag(int(p.TagID(i)))
		out[i] = FormInfo{Prefix: d.prefixes[p.PrefixID(i)], Tag: tag, Suffix: d.suffixes[p.SuffixID(i)]}
	}
	return out
}

// FormsFromStem reconstructs every surface form of a paradigm given the
// stem recovered from one known word of that paradigm (used by units to
// expand a lexeme or to apply the prediction analogy to all forms).
func (d *Dictionary) FormsFromStem(paradigmID uint16, stem string) []struct {
	Word string
	Tag  tagset.Tag
} {
	p, ok := d.paradigmAt(paradigmID)
	if !ok {
		return nil
	}
	out := make([]struct {
		Word string
		Tag  tagset.Tag
	}, p.NumForms())
	for i := range out {
		tag, _ := d.TagClass.BuildTag(int(p.TagID(i)))
		out[i].Word = d.surfaceForm(p, i, stem)
		out[i].Tag = tag
	}
	return out
}

// wordEntriesAt decodes, dedups and stable-sorts the (paradigm_id,
// form_index) payload list stored under a known word key (spec §3
// invariant).
func (d *Dictionary) wordEntriesAt(word string) []dawg.WordPayload {
	raw := d.words.GetValues(word)
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[dawg.WordPayload]struct{}, len(raw))
	entries := make([]dawg.WordPayload, 0, len(raw))
	for _, r := range raw {
		e := dawg.DecodeWordPayload(r)
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].ParadigmID != entries[j].ParadigmID {
			return entries[i].ParadigmID < entries[j].ParadigmID
		}
		return entries[i].FormIndex < entries[j].FormIndex
	})
	return entries
}

// WordEntries returns the deduplicated, stable-sorted (paradigm_id,
// form_index) list stored under word, or nil if word is not a key.
func (d *Dictionary) WordEntries(word string) []dawg.WordPayload {
	return d.wordEntriesAt(word)
}

// IterKnownWords enumerates (word, tag, normal_form, paradigm_id,
// form_index) for every dictionary word starting with prefix, in
// ascending word order, one entry per (paradigm_id, form_index) stored
// under that word.
func (d *Dictionary) IterKnownWords(prefix string) []WordEntry {
	words := d.words.Keys(prefix)
	var out []WordEntry
	for _, w := range words {
		for _, e := range d.wordEntriesAt(w) {
			tag, ok := d.BuildTagInfo(e.ParadigmID, e.FormIndex)
			if !ok {
				continue
			}
			out = append(out, WordEntry{
				Word:       w,
				Tag:        tag,
				NormalForm: d.BuildNormalForm(e.ParadigmID, e.FormIndex, w),
				ParadigmID: e.ParadigmID,
				FormIndex:  e.FormIndex,
			})
		}
	}
	return out
}

// WordIsKnown reports whether word (assumed already lowercased by the
// caller) is a dictionary key, optionally allowing character
// substitutions.
func (d *Dictionary) WordIsKnown(word string, substitutesCompiled *dawg.CompiledReplaces) bool {
	return dawg.WordIsKnownUnder(d.words.Automaton, word, substitutesCompiled)
}

func loadJSONMeta(dir string) (Meta, error) {
	data, err := os.ReadFile(filepath.Join(dir, "meta.json"))
	if err != nil {
		return Meta{}, fmt.Errorf("%w: reading meta.json: %v", ErrConfiguration, err)
	}
	return parseMeta(data)
}

func loadGrammemes(dir string) (*tagset.Registry, error) {
	path := filepath.Join(dir, "grammemes.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return tagset.NewRegistry(nil), nil
		}
		return nil, fmt.Errorf("%w: reading grammemes.json: %v", ErrCorruptDictionary, err)
	}

	var rows [][]string
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: malformed grammemes.json: %v", ErrCorruptDictionary, err)
	}

	extra := make(map[string]string, len(rows))
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		extra[row[0]] = row[2]
	}
	return tagset.NewRegistry(extra), nil
}

func loadGramtab(dir string, meta Meta) ([]string, error) {
	if len(meta.GramtabFormats) == 0 {
		return nil, fmt.Errorf("%w: meta.json declares no gramtab_formats", ErrConfiguration)
	}
	filename, ok := meta.GramtabFormats["internal"]
	if !ok {
		// No "internal" entry: fall back to the lexicographically first
		// format name, so two loads of the same bundle always agree
		// (map iteration order is not a valid source of determinism).
		keys := make([]string, 0, len(meta.GramtabFormats))
		for k := range meta.GramtabFormats {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		filename = meta.GramtabFormats[keys[0]]
	}
	return loadStringList(filepath.Join(dir, filename))
}

func loadStringList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrCorruptDictionary, filepath.Base(path), err)
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: malformed %s: %v", ErrCorruptDictionary, filepath.Base(path), err)
	}
	return list, nil
}

func validateGramtab(registry *tagset.Registry, gramtabStrings []string) error {
	for _, s := range gramtabStrings {
		t := tagset.ParseTag(s)
		for _, g := range t.GrammemeList() {
			if !registry.Known(g) {
				return fmt.Errorf("%w: gramtab references unknown grammeme %q", ErrCorruptDictionary, g)
			}
		}
	}
	return nil
}
