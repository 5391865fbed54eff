package morph

import "github.com/steosofficial/rusmorph/internal/units"

// pipelineRecurser adapts MorphAnalyzer's unranked pipeline pass to the
// units.Recurser interface HyphenUnit needs to reparse a hyphen part.
// It deliberately bypasses probability re-ranking: a sub-word's score
// is only ever used relative to its siblings inside one hyphen parse,
// never surfaced to a caller directly.
type pipelineRecurser struct {
	m *MorphAnalyzer
}

func (r pipelineRecurser) Parse(word string) []units.Parse {
	return r.m.rawParse(word)
}
