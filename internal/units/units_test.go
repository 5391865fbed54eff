package units

import (
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/steosofficial/rusmorph/internal/dawg"
	"github.com/steosofficial/rusmorph/internal/dictionary"
	"github.com/steosofficial/rusmorph/internal/tagset"
)

// buildFixtureDictionary writes a minimal on-disk bundle with one noun
// paradigm ("кот"/"кота") and, if withPrediction, a single-bucket
// prediction trie keyed on the reversed suffix "то" (i.e. words ending
// in "от").
func buildFixtureDictionary(t *testing.T, withPrediction bool) *dictionary.Dictionary {
	t.Helper()
	dir := t.TempDir()

	meta := []any{
		[]any{"format_version", "3.0"},
		[]any{"language_code", "ru"},
		[]any{"gramtab_formats", map[string]string{"internal": "gramtab-internal.json"}},
		[]any{"compile_options", map[string]any{"paradigm_prefixes": []string{""}}},
		[]any{"P(t|w)", false},
	}
	writeJSONFile(t, filepath.Join(dir, "meta.json"), meta)

	gramtab := []string{
		"Существительное,Мужской,Именительный,Единственное число",
		"Существительное,Мужской,Родительный,Единственное число",
	}
	writeJSONFile(t, filepath.Join(dir, "gramtab-internal.json"), gramtab)
	writeJSONFile(t, filepath.Join(dir, "suffixes.json"), []string{"", "а"})

	paradigmsData := encodeParadigms([][]uint16{{0, 1, 0, 1, 0, 0}})
	if err := os.WriteFile(filepath.Join(dir, "paradigms.array"), paradigmsData, 0o600); err != nil {
		t.Fatalf("writing paradigms.array: %v", err)
	}

	b := dawg.NewBuilder(dawg.WordPayloadSize)
	b.Add("кот", dawg.WordPayload{ParadigmID: 0, FormIndex: 0}.Encode())
	b.Add("кота", dawg.WordPayload{ParadigmID: 0, FormIndex: 1}.Encode())
	writeAutomaton(t, filepath.Join(dir, "words.dawg"), b.Build())

	if withPrediction {
		pb := dawg.NewBuilder(dawg.PredictPayloadSize)
		pb.Add("то", dawg.PredictPayload{Count: 5, ParadigmID: 0, FormIndex: 0}.Encode())
		writeAutomaton(t, filepath.Join(dir, "prediction-suffixes-0.dawg"), pb.Build())
	}

	dict, err := dictionary.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	t.Cleanup(func() { dict.Close() })
	return dict
}

func writeJSONFile(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshaling %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func encodeParadigms(paradigms [][]uint16) []byte {
	var buf []byte
	count := make([]byte, 2)
	binary.LittleEndian.PutUint16(count, uint16(len(paradigms)))
	buf = append(buf, count...)
	for _, p := range paradigms {
		length := make([]byte, 2)
		binary.LittleEndian.PutUint16(length, uint16(len(p)))
		buf = append(buf, length...)
		for _, v := range p {
			b := make([]byte, 2)
			binary.LittleEndian.PutUint16(b, v)
			buf = append(buf, b...)
		}
	}
	return buf
}

func writeAutomaton(t *testing.T, path string, a *dawg.Automaton) {
	t.Helper()
	blob, err := a.Marshal()
	if err != nil {
		t.Fatalf("marshaling %s: %v", path, err)
	}
	if err := os.WriteFile(path, blob, 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

type stubRecurser struct{}

func (stubRecurser) Parse(word string) []Parse { return nil }

func TestDictionaryUnitParse(t *testing.T) {
	dict := buildFixtureDictionary(t, false)
	ctx := &Context{Dict: dict, Recurse: stubRecurser{}}
	u := &DictionaryUnit{}
	u.Init(ctx)

	parses := u.Parse("кот", "кот", NewSeen())
	if len(parses) != 1 {
		t.Fatalf("Parse(кот) = %d parses, want 1", len(parses))
	}
	p := parses[0]
	if p.NormalForm != "кот" || !p.Tag.Contains("Именительный") {
		t.Errorf("Parse(кот) = %+v", p)
	}

	lexeme := u.GetLexeme(p)
	if len(lexeme) != 2 {
		t.Fatalf("GetLexeme = %d forms, want 2", len(lexeme))
	}

	norm := u.Normalized(parses[0])
	if norm.Word != "кот" {
		t.Errorf("Normalized = %+v", norm)
	}

	if got := u.Parse("собака", "собака", NewSeen()); got != nil {
		t.Errorf("Parse(собака) = %v, want nil (out of vocabulary)", got)
	}
}

func TestDictionaryUnitDedupesAgainstSeen(t *testing.T) {
	dict := buildFixtureDictionary(t, false)
	ctx := &Context{Dict: dict, Recurse: stubRecurser{}}
	u := &DictionaryUnit{}
	u.Init(ctx)

	seen := NewSeen()
	first := u.Parse("кот", "кот", seen)
	second := u.Parse("кот", "кот", seen)
	if len(first) != 1 || len(second) != 0 {
		t.Errorf("Seen did not dedup repeated parse of the same word: first=%d second=%d", len(first), len(second))
	}
}

func TestKnownPrefixUnit(t *testing.T) {
	dict := buildFixtureDictionary(t, false)
	ctx := &Context{Dict: dict, Recurse: stubRecurser{}}
	u := &KnownPrefixUnit{Prefixes: []string{"за"}, Penalty: 0.5, MinRest: 1}
	u.Init(ctx)

	parses := u.Parse("закот", "закот", NewSeen())
	if len(parses) != 1 {
		t.Fatalf("Parse(закот) = %d parses, want 1", len(parses))
	}
	p := parses[0]
	if p.Word != "закот" || p.NormalForm != "закот" {
		t.Errorf("Parse(закот) = %+v", p)
	}
	if p.Score >= 1.0 {
		t.Errorf("Parse(закот).Score = %v, want attenuated below 1.0", p.Score)
	}

	if got := u.Parse("табурет", "табурет", NewSeen()); got != nil {
		t.Errorf("Parse(табурет) = %v, want nil (no matching prefix)", got)
	}
}

func TestUnknownPrefixUnit(t *testing.T) {
	dict := buildFixtureDictionary(t, false)
	ctx := &Context{Dict: dict, Recurse: stubRecurser{}}
	u := &UnknownPrefixUnit{MaxLen: 3, MinRest: 1, PenaltyPerRune: 0.1}
	u.Init(ctx)

	parses := u.Parse("прекот", "прекот", NewSeen())
	found := false
	for _, p := range parses {
		if p.Word == "прекот" && p.NormalForm == "прекот" {
			found = true
		}
	}
	if !found {
		t.Fatalf("Parse(прекот) = %+v, expected a parse wrapping кот with prefix пре", parses)
	}
}

func TestSuffixUnitPredictsFromReversedSuffix(t *testing.T) {
	dict := buildFixtureDictionary(t, true)
	ctx := &Context{Dict: dict, Recurse: stubRecurser{}}
	u := &SuffixUnit{MaxSuffixLen: 2, MinWordLen: 1, ScorePenalty: 1.0}
	u.Init(ctx)

	parses := u.Parse("бегот", "бегот", NewSeen())
	if len(parses) != 1 {
		t.Fatalf("Parse(бегот) = %d parses, want 1", len(parses))
	}
	p := parses[0]
	if p.Word != "бегот" || !p.Tag.Contains("Именительный") {
		t.Errorf("Parse(бегот) = %+v", p)
	}
}

// buildSuffixDedupFixture writes a bundle with two distinct paradigms
// that share the exact same tag at form index 0, and a prediction trie
// with one entry per paradigm under the same reversed-suffix key - the
// scenario SuffixUnit.Parse must collapse into a single Parse.
func buildSuffixDedupFixture(t *testing.T) *dictionary.Dictionary {
	t.Helper()
	dir := t.TempDir()

	meta := []any{
		[]any{"format_version", "3.0"},
		[]any{"language_code", "ru"},
		[]any{"gramtab_formats", map[string]string{"internal": "gramtab-internal.json"}},
		[]any{"compile_options", map[string]any{"paradigm_prefixes": []string{""}}},
		[]any{"P(t|w)", false},
	}
	writeJSONFile(t, filepath.Join(dir, "meta.json"), meta)

	gramtab := []string{
		"Существительное,Мужской,Именительный,Единственное число",
		"Существительное,Мужской,Родительный,Единственное число",
	}
	writeJSONFile(t, filepath.Join(dir, "gramtab-internal.json"), gramtab)
	writeJSONFile(t, filepath.Join(dir, "suffixes.json"), []string{"", "а"})

	// Two paradigms, identical shape: both have tag 0 ("Именительный")
	// at form index 0, so a predictor that surfaces (paradigm=0,
	// form=0) and (paradigm=1, form=0) produces the same Tag twice.
	paradigmsData := encodeParadigms([][]uint16{
		{0, 1, 0, 1, 0, 0},
		{0, 1, 0, 1, 0, 0},
	})
	if err := os.WriteFile(filepath.Join(dir, "paradigms.array"), paradigmsData, 0o600); err != nil {
		t.Fatalf("writing paradigms.array: %v", err)
	}

	b := dawg.NewBuilder(dawg.WordPayloadSize)
	b.Add("бегот", dawg.WordPayload{ParadigmID: 0, FormIndex: 0}.Encode())
	writeAutomaton(t, filepath.Join(dir, "words.dawg"), b.Build())

	pb := dawg.NewBuilder(dawg.PredictPayloadSize)
	pb.Add("то", dawg.PredictPayload{Count: 5, ParadigmID: 0, FormIndex: 0}.Encode())
	pb.Add("то", dawg.PredictPayload{Count: 3, ParadigmID: 1, FormIndex: 0}.Encode())
	writeAutomaton(t, filepath.Join(dir, "prediction-suffixes-0.dawg"), pb.Build())

	dict, err := dictionary.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	t.Cleanup(func() { dict.Close() })
	return dict
}

func TestSuffixUnitDedupesCandidatesWithSameTag(t *testing.T) {
	dict := buildSuffixDedupFixture(t)
	ctx := &Context{Dict: dict, Recurse: stubRecurser{}}
	u := &SuffixUnit{MaxSuffixLen: 2, MinWordLen: 1, ScorePenalty: 1.0}
	u.Init(ctx)

	parses := u.Parse("бегот", "бегот", NewSeen())
	if len(parses) != 1 {
		t.Fatalf("Parse(бегот) = %d parses, want 1 (two candidates share a tag)", len(parses))
	}
	p := parses[0]
	if !p.Tag.Contains("Именительный") {
		t.Errorf("Parse(бегот) = %+v, want Именительный", p)
	}
	// The higher-count candidate (paradigm 0, count 5) must be the one
	// that survives the dedup, not whichever happened to sort last.
	if p.Methods[0].ParadigmID != 0 {
		t.Errorf("Parse(бегот).Methods[0].ParadigmID = %d, want 0 (highest-count candidate)", p.Methods[0].ParadigmID)
	}
}

func TestSuffixUnitMinWordLen(t *testing.T) {
	dict := buildFixtureDictionary(t, true)
	ctx := &Context{Dict: dict, Recurse: stubRecurser{}}
	u := &SuffixUnit{MaxSuffixLen: 2, MinWordLen: 10, ScorePenalty: 1.0}
	u.Init(ctx)

	if got := u.Parse("бегот", "бегот", NewSeen()); got != nil {
		t.Errorf("Parse with MinWordLen=10 = %v, want nil", got)
	}
}

func TestNumberUnit(t *testing.T) {
	u := &NumberUnit{LiteralTag: tagset.ParseTag("NUMB")}
	u.Init(&Context{})

	parses := u.Parse("2024", "2024", NewSeen())
	if len(parses) != 1 || parses[0].Word != "2024" {
		t.Fatalf("Parse(2024) = %+v", parses)
	}
	if got := u.Parse("abc", "abc", NewSeen()); got != nil {
		t.Errorf("Parse(abc) = %v, want nil", got)
	}
}

func TestPunctuationUnit(t *testing.T) {
	u := &PunctuationUnit{LiteralTag: tagset.ParseTag("PNCT")}
	u.Init(&Context{})

	if parses := u.Parse("...", "...", NewSeen()); len(parses) != 1 {
		t.Fatalf("Parse(...) = %+v", parses)
	}
	if got := u.Parse("кот", "кот", NewSeen()); got != nil {
		t.Errorf("Parse(кот) = %v, want nil", got)
	}
}

func TestAbbreviationUnit(t *testing.T) {
	tag := tagset.ParseTag("Существительное,Аббревиатура")
	u := &AbbreviationUnit{Entries: map[string]tagset.Tag{"сша": tag}}
	u.Init(&Context{})

	parses := u.Parse("США", "сша", NewSeen())
	if len(parses) != 1 || parses[0].Word != "США" {
		t.Fatalf("Parse(США) = %+v", parses)
	}
	if got := u.Parse("ООН", "оон", NewSeen()); got != nil {
		t.Errorf("Parse(ООН) = %v, want nil (not in Entries)", got)
	}
}
