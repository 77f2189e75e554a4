package coalesced

import (
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/m3tools/m3cd/src/internal/utils"
)

// SuggestNames returns up to limit candidates that are close to name by edit
// distance, closest first. Comparison ignores case.
func SuggestNames(name string, candidates []string, limit int) []string {
	type scored struct {
		name     string
		distance int
	}

	folded := utils.FoldKey(name)
	threshold := len(folded) / 4
	if threshold < 2 {
		threshold = 2
	}

	var matches []scored
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(folded, utils.FoldKey(c))
		if d <= threshold {
			matches = append(matches, scored{name: c, distance: d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].distance < matches[j].distance
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}
