package selector

import (
	"sort"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// MaxSuggestions caps the labels returned by Suggest.
const MaxSuggestions = 3

// Suggest ranks labels that look like token, nearest first.
// Fuzzy subsequence matches come before labels that are merely a short edit away.
func Suggest(token string, labels []string) []string {
	if token == "" || len(labels) == 0 {
		return nil
	}

	ranks := fuzzy.RankFindNormalizedFold(token, labels)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return levenshtein.Distance(token, ranks[i].Target) < levenshtein.Distance(token, ranks[j].Target)
	})

	suggestions := lo.Map(ranks, func(r fuzzy.Rank, _ int) string { return r.Target })

	threshold := max(2, len(token)/2)
	var near []string
	for _, label := range labels {
		if lo.Contains(suggestions, label) {
			continue
		}
		if levenshtein.Distance(token, label) <= threshold {
			near = append(near, label)
		}
	}
	sort.SliceStable(near, func(i, j int) bool {
		return levenshtein.Distance(token, near[i]) < levenshtein.Distance(token, near[j])
	})

	suggestions = lo.Uniq(append(suggestions, near...))
	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}
	return suggestions
}
