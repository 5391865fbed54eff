package units

import (
	"sort"

	"github.com/steosofficial/rusmorph/internal/dawg"
	"github.com/steosofficial/rusmorph/internal/tagset"
)

// SuffixUnit predicts a paradigm for an out-of-vocabulary word from its
// trailing runes, trying the longest known suffix first (spec §4.4's
// suffix predictor). Grounded on the teacher's findBestPrediction /
// dfsGenerate pair, generalized to the per-paradigm-prefix prediction
// trie indexing spec §6 requires: every bucket is searched and
// candidates compared uniformly by (suffix length, frequency count),
// the same "longest-suffix-group-wins, ties by frequency" rule the
// teacher already implements for its single trie.
type SuffixUnit struct {
	MaxSuffixLen int
	MinWordLen   int
	ScorePenalty float64

	ctx *Context
}

func (u *SuffixUnit) Clone() Unit {
	return &SuffixUnit{MaxSuffixLen: u.MaxSuffixLen, MinWordLen: u.MinWordLen, ScorePenalty: u.ScorePenalty}
}

func (u *SuffixUnit) Init(ctx *Context) { u.ctx = ctx }

type predictCandidate struct {
	suffixLen int
	payload   dawg.PredictPayload
}

// bestCandidates finds every prediction-trie hit for the longest
// matching suffix length, across every paradigm-prefix bucket, mirroring
// the teacher's descending suffixLen search that stops as soon as a
// length produces any candidates.
func (u *SuffixUnit) bestCandidates(wordLower string) []predictCandidate {
	runes := []rune(wordLower)
	maxLen := u.MaxSuffixLen
	if maxLen > len(runes) {
		maxLen = len(runes)
	}

	for suffixLen := maxLen; suffixLen >= 1; suffixLen-- {
		suffix := runes[len(runes)-suffixLen:]
		reversed := make([]rune, suffixLen)
		for i, r := range suffix {
			reversed[suffixLen-1-i] = r
		}
		key := string(reversed)
		var candidates []predictCandidate
		for i := 0; i < u.ctx.Dict.ParadigmPrefixCount(); i++ {
			trie := u.ctx.Dict.PredictionSuffixes(i)
			if trie == nil {
				continue
			}
			for _, raw := range trie.GetValues(key) {
				candidates = append(candidates, predictCandidate{
					suffixLen: suffixLen,
					payload:   dawg.DecodePredictPayload(raw),
				})
			}
		}
		if len(candidates) > 0 {
			return candidates
		}
	}
	return nil
}

func (u *SuffixUnit) Parse(word, wordLower string, seen Seen) []Parse {
	if len([]rune(wordLower)) < u.MinWordLen {
		return nil
	}
	candidates := u.bestCandidates(wordLower)
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].payload.Count > candidates[j].payload.Count
	})

	totalCount := 0
	for _, c := range candidates {
		totalCount += int(c.payload.Count)
	}
	if totalCount == 0 {
		totalCount = len(candidates)
	}

	// Multiple candidates in the same longest-suffix group often carry
	// the same tag (different paradigms/forms, identical grammemes), so
	// results are deduplicated per tag, keeping only the highest-scoring
	// parse for each one.
	var out []Parse
	byTag := make(map[string]int)
	for _, c := range candidates {
		p := c.payload
		if seen.Check(wordLower, p.ParadigmID, p.FormIndex) {
			continue
		}
		stem, ok := u.ctx.Dict.RecoverStem(p.ParadigmID, p.FormIndex, wordLower)
		if !ok {
			continue
		}
		tag, ok := u.ctx.Dict.BuildTagInfo(p.ParadigmID, p.FormIndex)
		if !ok {
			continue
		}
		weight := 1.0
		if p.Count > 0 {
			weight = float64(p.Count) / float64(totalCount)
		}
		normalForm := u.ctx.Dict.BuildNormalForm(p.ParadigmID, p.FormIndex, wordLower)
		parse := Parse{
			Word: wordLower, Tag: tag, NormalForm: normalForm, Score: weight * u.ScorePenalty,
			Methods: []Frame{{Unit: u, Word: wordLower, ParadigmID: p.ParadigmID, Stem: stem, HasParadigm: true}},
		}

		key := tag.String()
		if idx, ok := byTag[key]; ok {
			if parse.Score > out[idx].Score {
				out[idx] = parse
			}
			continue
		}
		byTag[key] = len(out)
		out = append(out, parse)
	}
	return out
}

func (u *SuffixUnit) Tag(word, wordLower string, seen Seen) []tagset.Tag {
	return TagsFromParses(u, word, wordLower, seen)
}

func (u *SuffixUnit) GetLexeme(p Parse) []Parse {
	return ExpandLexeme(u.ctx.Dict, p.lastFrame())
}

func (u *SuffixUnit) Normalized(p Parse) Parse {
	return NormalizedFromFrame(u.ctx.Dict, p.lastFrame())
}
