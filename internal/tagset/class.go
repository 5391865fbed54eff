package tagset

import "sync"

// constructionLock serializes MorphAnalyzer construction across the
// process, the same way the source analyzer's threading.RLock protects
// one-time interning of shared grammeme/tag state. Once a Class is
// built it is immutable and needs no further locking (spec §5).
var constructionLock sync.Mutex

// Lock acquires the process-wide construction lock. Callers must defer
// Unlock. Exported so morph.New (which owns the overall construction
// sequence) can hold one lock across loading the dictionary, interning
// grammemes, and building the unit pipeline.
func Lock() { constructionLock.Lock() }

// Unlock releases the process-wide construction lock.
func Unlock() { constructionLock.Unlock() }

// Class is the tag class bound to one loaded dictionary: its grammeme
// registry plus the gramtab (tag-id -> Tag) loaded from
// gramtab-<format>.json.
type Class struct {
	registry *Registry
	gramtab  []Tag
}

// NewClass interns a registry and binds it to a loaded gramtab. Every
// tag string referencing an unknown grammeme is caught here as a
// corrupt-dictionary condition by the caller (dictionary package),
// which validates grammemes before calling NewClass.
func NewClass(registry *Registry, gramtabStrings []string) *Class {
	gramtab := make([]Tag, len(gramtabStrings))
	for i, s := range gramtabStrings {
		gramtab[i] = ParseTag(s)
	}
	return &Class{registry: registry, gramtab: gramtab}
}

// BuildTag returns the Tag stored at gramtab index id.
func (c *Class) BuildTag(id int) (Tag, bool) {
	if id < 0 || id >= len(c.gramtab) {
		return Tag{}, false
	}
	return c.gramtab[id], true
}

// Cyr2Lat / Lat2Cyr proxy to the bound registry.
func (c *Class) Cyr2Lat(label string) string { return c.registry.Cyr2Lat(label) }
func (c *Class) Lat2Cyr(label string) string { return c.registry.Lat2Cyr(label) }

// UpdatedGrammemes replaces, within t's grammeme set, every grammeme
// whose category is also represented in required with required's
// grammeme for that category, leaving grammemes in categories required
// doesn't touch untouched. Grammemes in required that fall outside any
// known category are simply added. This mirrors
// OpencorporaTag.updated_grammemes: a caller asking to inflect to
// {"Множественное число"} against a tag that is currently singular
// should drop the singular grammeme, not carry both.
func (c *Class) UpdatedGrammemes(t Tag, required map[string]struct{}) map[string]struct{} {
	updated := t.Grammemes()
	for g := range required {
		for _, sibling := range c.registry.membersOfCategory(g) {
			delete(updated, sibling)
		}
		updated[g] = struct{}{}
	}
	return updated
}
