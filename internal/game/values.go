package game

import "sort"

// ResolveTotals returns every total obtainable by picking exactly one value
// from each card and summing. Every card contributes; this is not a
// subset-sum. An empty input resolves to [0]. All ace low/high resolution
// in the engine goes through here.
func ResolveTotals(cards []Card) []int {
	totals := map[int]bool{0: true}

	for _, card := range cards {
		next := make(map[int]bool)
		for total := range totals {
			for _, v := range card.Values() {
				next[total+v] = true
			}
		}
		totals = next
	}

	out := make([]int, 0, len(totals))
	for total := range totals {
		out = append(out, total)
	}
	sort.Ints(out)
	return out
}

func containsTotal(totals []int, want int) bool {
	i := sort.SearchInts(totals, want)
	return i < len(totals) && totals[i] == want
}
