package dawg

// ReplaceMap lists, for each rune, the alternative runes it may be
// substituted with (e.g. 'е' -> {'ё'}). It need not be symmetric; callers
// that want bidirectional substitution (as rusmorph's Russian profile
// does for ё/е) list both directions explicitly.
type ReplaceMap map[rune][]rune

// CompiledReplaces is the precompiled form of a ReplaceMap, consumed by
// SimilarItems and WordIsKnownUnder. Compilation today is a cheap copy;
// it exists as a separate step because spec calls for a compile_replaces
// precomputation hook and because a future version may want to prune
// alternatives that can never appear in the loaded alphabet.
type CompiledReplaces struct {
	alts map[rune][]rune
}

// CompileReplaces precomputes a lookup structure for a substitution map.
func CompileReplaces(m ReplaceMap) *CompiledReplaces {
	if len(m) == 0 {
		return nil
	}
	alts := make(map[rune][]rune, len(m))
	for r, opts := range m {
		alts[r] = append([]rune(nil), opts...)
	}
	return &CompiledReplaces{alts: alts}
}

// SimilarItems enumerates every distinct key reachable from `key` by
// applying zero or more substitutions from cr anywhere in the string,
// restricted to keys that are actually present in a. Each matching key
// is returned at most once. A nil cr enumerates just `key` itself (if
// present).
func SimilarItems(a *Automaton, key string, cr *CompiledReplaces) []string {
	runes := []rune(key)
	if cr == nil {
		if a.Contains(key) {
			return []string{key}
		}
		return nil
	}

	seen := make(map[string]struct{})
	var results []string
	var rec func(i int, acc []rune)
	rec = func(i int, acc []rune) {
		if i == len(runes) {
			s := string(acc)
			if _, dup := seen[s]; dup {
				return
			}
			if a.Contains(s) {
				seen[s] = struct{}{}
				results = append(results, s)
			}
			return
		}
		next := append(append([]rune(nil), acc...), runes[i])
		rec(i+1, next)
		for _, alt := range cr.alts[runes[i]] {
			next := append(append([]rune(nil), acc...), alt)
			rec(i+1, next)
		}
	}
	rec(0, make([]rune, 0, len(runes)))
	return results
}

// WordIsKnownUnder reports whether key, or any substitution-equivalent
// rewrite of it, is present in a. With cr == nil this is exact
// membership.
func WordIsKnownUnder(a *Automaton, key string, cr *CompiledReplaces) bool {
	if cr == nil {
		return a.Contains(key)
	}
	return len(SimilarItems(a, key, cr)) > 0
}
