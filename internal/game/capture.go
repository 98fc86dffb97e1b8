package game

import "math/bits"

// CaptureGroup names a set of layout items a played card can take together:
// loose cards by value (the deck has no duplicates) and builds by ID.
type CaptureGroup struct {
	Cards    []Card `json:"cards,omitempty"`
	BuildIDs []int  `json:"buildIds,omitempty"`
}

// FindCaptures enumerates every capture group the played card can take from
// the layout. Captures are never mandatory; an empty result just means
// building or discarding are the only moves.
//
// The multi-card search walks all 2^k subsets of the k loose cards with an
// iterative bitmask, which is fine at the layout sizes this game produces.
// A build is only ever combined with a single loose card, never with more
// or with another build; that matches the original rules engine and is a
// deliberate choice, not an oversight.
func (l *Layout) FindCaptures(played Card) []CaptureGroup {
	var groups []CaptureGroup
	target := played.NumericValue()
	loose := l.LooseCards()

	// Single loose card matches.
	for _, card := range loose {
		if card.NumericValue() == target {
			groups = append(groups, CaptureGroup{Cards: []Card{card}})
		}
	}

	// Single build matches, regardless of owner.
	for _, b := range l.Builds() {
		if b.TotalValue == target {
			groups = append(groups, CaptureGroup{BuildIDs: []int{b.ID}})
		}
	}

	// Combinations of two or more loose cards.
	for mask := 1; mask < 1<<len(loose); mask++ {
		if bits.OnesCount(uint(mask)) < 2 {
			continue
		}
		subset := looseSubset(loose, mask)
		if containsTotal(ResolveTotals(subset), target) {
			groups = append(groups, CaptureGroup{Cards: subset})
		}
	}

	// A build plus one loose card.
	for _, b := range l.Builds() {
		for _, card := range loose {
			for _, total := range ResolveTotals([]Card{card}) {
				if total+b.TotalValue == target {
					groups = append(groups, CaptureGroup{
						Cards:    []Card{card},
						BuildIDs: []int{b.ID},
					})
					break
				}
			}
		}
	}

	return groups
}

func looseSubset(loose []Card, mask int) []Card {
	subset := make([]Card, 0, bits.OnesCount(uint(mask)))
	for i, card := range loose {
		if mask&(1<<i) != 0 {
			subset = append(subset, card)
		}
	}
	return subset
}
