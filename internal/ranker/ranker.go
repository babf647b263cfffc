package ranker

import (
	"sort"

	"hotcold/pkg/model"
)

// SelectTop picks the top-N boosters and top-N losers from one pass's
// classifications. When a category is short of N, the gap is filled from
// neutrals moving in the right direction; each neutral is consumed at most
// once, boosters filling first. The result is sorted by change percent
// descending for presentation and never exceeds 2N entries.
func SelectTop(results []model.Classification, topN int) []model.Classification {
	if topN < 1 {
		return nil
	}

	var boosters, losers, neutrals []model.Classification
	for _, r := range results {
		switch r.Category {
		case model.CategoryBooster:
			boosters = append(boosters, r)
		case model.CategoryLoser:
			losers = append(losers, r)
		default:
			neutrals = append(neutrals, r)
		}
	}

	sort.Slice(boosters, func(i, j int) bool {
		return boosters[i].ChangePct > boosters[j].ChangePct
	})
	sort.Slice(losers, func(i, j int) bool {
		return losers[i].ChangePct < losers[j].ChangePct
	})

	used := make(map[string]bool)

	selected := take(boosters, topN)
	if len(selected) < topN {
		selected = append(selected, fill(neutrals, used, topN-len(selected), true)...)
	}

	selectedLosers := take(losers, topN)
	if len(selectedLosers) < topN {
		selectedLosers = append(selectedLosers, fill(neutrals, used, topN-len(selectedLosers), false)...)
	}
	selected = append(selected, selectedLosers...)

	sort.Slice(selected, func(i, j int) bool {
		return selected[i].ChangePct > selected[j].ChangePct
	})
	return selected
}

func take(results []model.Classification, n int) []model.Classification {
	if len(results) > n {
		results = results[:n]
	}
	return append([]model.Classification(nil), results...)
}

// fill picks up to n unused neutrals moving in the wanted direction:
// positive change descending for booster slots, negative ascending for
// loser slots.
func fill(neutrals []model.Classification, used map[string]bool, n int, positive bool) []model.Classification {
	candidates := make([]model.Classification, 0, len(neutrals))
	for _, r := range neutrals {
		if used[r.Symbol] {
			continue
		}
		if positive && r.ChangePct > 0 {
			candidates = append(candidates, r)
		}
		if !positive && r.ChangePct < 0 {
			candidates = append(candidates, r)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if positive {
			return candidates[i].ChangePct > candidates[j].ChangePct
		}
		return candidates[i].ChangePct < candidates[j].ChangePct
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	for _, r := range candidates {
		used[r.Symbol] = true
	}
	return candidates
}
