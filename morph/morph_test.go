package morph

import (
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/steosofficial/rusmorph/internal/dawg"
	"github.com/steosofficial/rusmorph/internal/tagset"
	"github.com/steosofficial/rusmorph/lang/ru"
)

// writeFixtureBundle writes a minimal dictionary bundle with one noun
// paradigm: кот (nominative singular, form 0) / кота (genitive
// singular, form 1).
func writeFixtureBundle(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	meta := []any{
		[]any{"format_version", "3.0"},
		[]any{"language_code", "ru"},
		[]any{"gramtab_formats", map[string]string{"internal": "gramtab-internal.json"}},
		[]any{"compile_options", map[string]any{"paradigm_prefixes": []string{""}}},
		[]any{"P(t|w)", false},
	}
	writeJSON(t, filepath.Join(dir, "meta.json"), meta)

	gramtab := []string{
		"Существительное,Мужской,Именительный,Единственное число",
		"Существительное,Мужской,Родительный,Единственное число",
	}
	writeJSON(t, filepath.Join(dir, "gramtab-internal.json"), gramtab)
	writeJSON(t, filepath.Join(dir, "suffixes.json"), []string{"", "а"})

	paradigmsData := encodeParadigms([][]uint16{{0, 1, 0, 1, 0, 0}})
	if err := os.WriteFile(filepath.Join(dir, "paradigms.array"), paradigmsData, 0o600); err != nil {
		t.Fatalf("writing paradigms.array: %v", err)
	}

	b := dawg.NewBuilder(dawg.WordPayloadSize)
	b.Add("кот", dawg.WordPayload{ParadigmID: 0, FormIndex: 0}.Encode())
	b.Add("кота", dawg.WordPayload{ParadigmID: 0, FormIndex: 1}.Encode())
	blob, err := b.Build().Marshal()
	if err != nil {
		t.Fatalf("marshaling words.dawg: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "words.dawg"), blob, 0o600); err != nil {
		t.Fatalf("writing words.dawg: %v", err)
	}

	return dir
}

func writeJSON(t *testing.T, path string, v any) {
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

func newTestAnalyzer(t *testing.T) *MorphAnalyzer {
	t.Helper()
	m, err := New(WithPath(writeFixtureBundle(t)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestNewLoadsDictionaryAndBuildsPipeline(t *testing.T) {
	m := newTestAnalyzer(t)
	if m.dictUnit == nil {
		t.Error("New did not bind a dictionary unit")
	}
	if len(m.pipeline) == 0 {
		t.Error("New built an empty pipeline")
	}
}

func TestParseKnownWord(t *testing.T) {
	m := newTestAnalyzer(t)
	parses := m.Parse("кот")
	if len(parses) == 0 {
		t.Fatal("Parse(кот) returned nothing")
	}
	found := false
	for _, p := range parses {
		if p.NormalForm == "кот" && p.Tag.Contains("Именительный") {
			found = true
		}
	}
	if !found {
		t.Errorf("Parse(кот) = %+v, missing expected nominative reading", parses)
	}
}

func TestParseUppercaseIsCaseInsensitive(t *testing.T) {
	m := newTestAnalyzer(t)
	parses := m.Parse("КОТ")
	if len(parses) == 0 {
		t.Fatal("Parse(КОТ) returned nothing")
	}
}

func TestWordIsKnown(t *testing.T) {
	m := newTestAnalyzer(t)
	if !m.WordIsKnown("кот", true) {
		t.Error("WordIsKnown(кот, strict) = false, want true")
	}
	if m.WordIsKnown("собака", true) {
		t.Error("WordIsKnown(собака, strict) = true, want false")
	}
}

func TestNormalForms(t *testing.T) {
	m := newTestAnalyzer(t)
	forms := m.NormalForms("кота")
	if len(forms) == 0 || forms[0] != "кот" {
		t.Errorf("NormalForms(кота) = %v, want [кот ...]", forms)
	}
}

func TestGetLexemeAndInflect(t *testing.T) {
	m := newTestAnalyzer(t)
	parses := m.Parse("кот")
	if len(parses) == 0 {
		t.Fatal("Parse(кот) returned nothing")
	}

	lexeme := m.GetLexeme(parses[0])
	if len(lexeme) != 2 {
		t.Fatalf("GetLexeme(кот) = %d forms, want 2", len(lexeme))
	}

	required := tagset.GrammemeSetFromLabels("Родительный")
	inflected, ok := m.Inflect(parses[0], required)
	if !ok {
		t.Fatal("Inflect to genitive failed")
	}
	if inflected.Word != "кота" {
		t.Errorf("Inflect(кот, genitive) = %+v, want кота", inflected)
	}
}

func TestIterKnownWordParses(t *testing.T) {
	m := newTestAnalyzer(t)
	entries := m.IterKnownWordParses("кот")
	if len(entries) != 2 {
		t.Fatalf("IterKnownWordParses(кот) = %d entries, want 2", len(entries))
	}
}

func TestWithProfileOverride(t *testing.T) {
	dir := writeFixtureBundle(t)
	custom := ru.Profile()
	m, err := New(WithPath(dir), WithProfile(custom))
	if err != nil {
		t.Fatalf("New with WithProfile: %v", err)
	}
	defer m.Close()

	if len(m.pipeline) == 0 {
		t.Error("New with WithProfile built an empty pipeline")
	}
}

func TestWithLanguageUnknownCodeWarns(t *testing.T) {
	// No WithPath: resolveDictPath falls through to language-code
	// discovery, which is where the unknown-code warning fires, even
	// though the resulting path (no dictionary bundle ships with the
	// module) then fails to load.
	var warned string
	_, err := New(
		WithLanguage("xx"),
		WithWarner(func(msg string, args ...any) { warned = msg }),
	)
	if warned == "" {
		t.Error("WithLanguage(unknown) did not trigger a warning")
	}
	if err == nil {
		t.Error("New with no shipped dictionary bundle should fail to load")
	}
}
