package ranker

import (
	"fmt"
	"testing"

	"hotcold/pkg/model"
)

func cls(symbol string, cat model.Category, change float64) model.Classification {
	return model.Classification{Symbol: symbol, Category: cat, ChangePct: change}
}

func TestSelectTopBothCategories(t *testing.T) {
	results := []model.Classification{
		cls("A", model.CategoryBooster, 12),
		cls("B", model.CategoryBooster, 8),
		cls("C", model.CategoryBooster, 15),
		cls("D", model.CategoryLoser, -9),
		cls("E", model.CategoryLoser, -14),
		cls("F", model.CategoryNeutral, 1),
	}

	selected := SelectTop(results, 2)
	if len(selected) != 4 {
		t.Fatalf("got %d selected, want 4", len(selected))
	}

	// Presentation order: change percent descending.
	wantOrder := []string{"C", "A", "D", "E"}
	for i, want := range wantOrder {
		if selected[i].Symbol != want {
			t.Errorf("selected[%d] = %s, want %s", i, selected[i].Symbol, want)
		}
	}

	// B (third booster) and the neutral F must not appear.
	for _, r := range selected {
		if r.Symbol == "B" || r.Symbol == "F" {
			t.Errorf("unexpected symbol %s in selection", r.Symbol)
		}
	}
}

func TestSelectTopFillsFromNeutrals(t *testing.T) {
	// 2 boosters, top_N=5, 4 positive neutrals [8,6,4,2]: the boosters plus
	// the top 3 neutrals make 5.
	results := []model.Classification{
		cls("B1", model.CategoryBooster, 20),
		cls("B2", model.CategoryBooster, 18),
		cls("N8", model.CategoryNeutral, 8),
		cls("N6", model.CategoryNeutral, 6),
		cls("N4", model.CategoryNeutral, 4),
		cls("N2", model.CategoryNeutral, 2),
		cls("L1", model.CategoryLoser, -5),
		cls("L2", model.CategoryLoser, -3),
		cls("L3", model.CategoryLoser, -9),
		cls("L4", model.CategoryLoser, -2),
		cls("L5", model.CategoryLoser, -1),
	}

	selected := SelectTop(results, 5)

	boosterSide := map[string]bool{}
	for _, r := range selected {
		if r.ChangePct > 0 {
			boosterSide[r.Symbol] = true
		}
	}
	for _, want := range []string{"B1", "B2", "N8", "N6", "N4"} {
		if !boosterSide[want] {
			t.Errorf("booster side missing %s: %v", want, boosterSide)
		}
	}
	if len(boosterSide) != 5 {
		t.Errorf("booster side has %d entries, want 5", len(boosterSide))
	}
	if boosterSide["N2"] {
		t.Error("N2 should not have been needed as filler")
	}
}

func TestSelectTopNeutralConsumedOnce(t *testing.T) {
	// A neutral with negative change is eligible for the loser fill only
	// after the booster fill has passed on it.
	results := []model.Classification{
		cls("B1", model.CategoryBooster, 10),
		cls("N-", model.CategoryNeutral, -2),
	}

	selected := SelectTop(results, 2)

	count := map[string]int{}
	for _, r := range selected {
		count[r.Symbol]++
	}
	if count["N-"] != 1 {
		t.Errorf("neutral appeared %d times, want exactly 1", count["N-"])
	}
}

func TestSelectTopSizeBound(t *testing.T) {
	var results []model.Classification
	for i := 0; i < 40; i++ {
		results = append(results, cls(fmt.Sprintf("B%d", i), model.CategoryBooster, float64(i)))
		results = append(results, cls(fmt.Sprintf("L%d", i), model.CategoryLoser, -float64(i)))
		results = append(results, cls(fmt.Sprintf("N%d", i), model.CategoryNeutral, float64(i-20)))
	}

	for _, topN := range []int{1, 5, 10, 100} {
		selected := SelectTop(results, topN)
		if len(selected) > 2*topN {
			t.Errorf("topN=%d: selection size %d exceeds 2N", topN, len(selected))
		}
	}
}

func TestSelectTopEmptyInput(t *testing.T) {
	if got := SelectTop(nil, 5); len(got) != 0 {
		t.Errorf("SelectTop(nil) = %v, want empty", got)
	}
}
