// Package tagset implements grammemes (single morphological features)
// and tags (ordered tuples of grammemes), interned once when a
// dictionary's grammar table is loaded, plus the set algebra and
// agreement rules the inflection engine needs.
//
// Grammeme labels follow the dictionary's own convention: full
// descriptive Russian words ("Именительный", "Единственное число")
// rather than OpenCorpora's terse codes, since that is the vocabulary
// the compiled dictionary format actually ships. Latin aliases are
// derived labels for callers that want ASCII-only tag strings
// (cyr2lat/lat2cyr, spec §4.2).
package tagset

// alias pairs one Cyrillic grammeme label with its Latin code. Listed
// in a fixed slice, not a map, because a handful of codes (gen2, gent)
// are shared by more than one Cyrillic label; lat2cyr must pick one of
// them deterministically, and the declared order is that tie-break -
// the first alias for a given code in source order is its canonical
// Cyrillic form (see NewRegistry).
type alias struct {
	cyr, lat string
}

// category groups grammemes that are mutually exclusive alternatives of
// the same grammatical feature (case, number, gender, ...). It is the
// "parent" concept spec §4.2 uses for UpdatedGrammemes: replacing a
// grammeme in a tag with a required one only makes sense within the
// same category.
type category struct {
	name    string
	cyr2lat []alias
}

var categories = []category{
	{name: "pos", cyr2lat: []alias{
		{"Существительное", "NOUN"},
		{"Прилагательное", "ADJF"},
		{"Глагол", "VERB"},
		{"Наречие", "ADVB"},
		{"Причастие", "PRTF"},
		{"Деепричастие", "GRND"},
		{"Местоимение", "NPRO"},
		{"Числительное", "NUMR"},
		{"Предлог", "PREP"},
		{"Частица", "PRCL"},
		{"Союз", "CONJ"},
		{"Междометие", "INTJ"},
		{"Вводное слово", "PRED"},
	}},
	{name: "animacy", cyr2lat: []alias{
		{"Одушевленное", "anim"},
		{"Неодушевленное", "inan"},
		{"одушевленное и неодушевленное", "anim-inan"},
	}},
	{name: "aspect", cyr2lat: []alias{
		{"Совершенный", "perf"},
		{"Несовершенный", "impf"},
		{"Двувидовой", "Inmulti"},
	}},
	{name: "case", cyr2lat: []alias{
		{"Именительный", "nomn"},
		{"Родительный", "gent"},
		{"Дательный", "datv"},
		{"Винительный", "accs"},
		{"Творительный", "ablt"},
		{"Предложный", "loct"},
		{"Звательный", "voct"},
		{"Местный", "loc2"},
		{"Счетный", "gen2"},
		{"Партитивный", "gen2"},
		{"Несклоняемый", "Fixd"},
		{"Ждательный", "gent"},
	}},
	{name: "gender", cyr2lat: []alias{
		{"Мужской", "masc"},
		{"Женский", "femn"},
		{"Средний", "neut"},
		{"Общий", "Ms-f"},
		{"Парный", "Pltm"},
	}},
	{name: "mood", cyr2lat: []alias{
		{"Повелительное", "impr"},
	}},
	{name: "number", cyr2lat: []alias{
		{"Единственное число", "sing"},
		{"Множественное число", "plur"},
	}},
	{name: "person", cyr2lat: []alias{
		{"1-е лицо", "1per"},
		{"2-е лицо", "2per"},
		{"3-е лицо", "3per"},
		{"нет лица", "0per"},
	}},
	{name: "tense", cyr2lat: []alias{
		{"Прошедшее", "past"},
		{"Настоящее", "pres"},
		{"Будущее", "futr"},
		{"Будущее аналитическое", "Fut1"},
	}},
	{name: "transitivity", cyr2lat: []alias{
		{"Переходный", "tran"},
		{"Непереходный", "intr"},
		{"Лабильный", "Qual"},
	}},
	{name: "voice", cyr2lat: []alias{
		{"Действительный", "actv"},
		{"Страдательный", "pssv"},
	}},
}

// Registry holds the interned grammemes of one loaded dictionary
// (grammemes.json). It is immutable after construction.
type Registry struct {
	categoryOf map[string]string // grammeme -> category name
	members    map[string][]string
	cyr2lat    map[string]string
	lat2cyr    map[string]string
}

// NewRegistry builds a Registry from the builtin category tables. extra
// lists additional (cyr, lat) pairs found in a dictionary's
// grammemes.json that fall outside the builtin categories (e.g.
// language-specific grammemes); they are registered without a category,
// so UpdatedGrammemes treats them as always-distinct singletons.
func NewRegistry(extra map[string]string) *Registry {
	r := &Registry{
		categoryOf: make(map[string]string),
		members:    make(map[string][]string),
		cyr2lat:    make(map[string]string),
		lat2cyr:    make(map[string]string),
	}
	for _, cat := range categories {
		for _, a := range cat.cyr2lat {
			r.categoryOf[a.cyr] = cat.name
			r.members[cat.name] = append(r.members[cat.name], a.cyr)
			r.cyr2lat[a.cyr] = a.lat
			if _, ok := r.lat2cyr[a.lat]; !ok {
				r.lat2cyr[a.lat] = a.cyr
			}
		}
	}
	for cyr, lat := range extra {
		if _, ok := r.cyr2lat[cyr]; ok {
			continue
		}
		r.cyr2lat[cyr] = lat
		if _, ok := r.lat2cyr[lat]; !ok {
			r.lat2cyr[lat] = cyr
		}
	}
	return r
}

// Cyr2Lat returns the Latin alias for a Cyrillic grammeme label, or the
// input unchanged if it is not a known grammeme (e.g. a paradigm prefix
// string like "по").
func (r *Registry) Cyr2Lat(label string) string {
	if lat, ok := r.cyr2lat[label]; ok {
		return lat
	}
	return label
}

// Lat2Cyr is the inverse of Cyr2Lat.
func (r *Registry) Lat2Cyr(label string) string {
	if cyr, ok := r.lat2cyr[label]; ok {
		return cyr
	}
	return label
}

// Known reports whether label was registered, either as a builtin
// category member or via the extra set passed to NewRegistry.
func (r *Registry) Known(label string) bool {
	_, ok := r.cyr2lat[label]
	return ok
}

// membersOfCategory returns every grammeme that belongs to the same
// category as label (including label itself), or nil if label has no
// registered category.
func (r *Registry) membersOfCategory(label string) []string {
	cat, ok := r.categoryOf[label]
	if !ok {
		return nil
	}
	return r.members[cat]
}
