package game

import "testing"

func TestNewDeckSizes(t *testing.T) {
	if got := len(NewDeck(false).Cards); got != 52 {
		t.Fatalf("full deck size = %d, want 52", got)
	}
	if got := len(NewDeck(true).Cards); got != 40 {
		t.Fatalf("forty-card deck size = %d, want 40", got)
	}
}

func TestNewDeckNoDuplicates(t *testing.T) {
	deck := NewDeck(true)
	seen := make(map[Card]bool)
	for _, c := range deck.Cards {
		if seen[c] {
			t.Fatalf("duplicate card: %v", c)
		}
		seen[c] = true
		if c.Rank == Jack || c.Rank == Queen || c.Rank == King {
			t.Fatalf("forty-card deck contains %v", c)
		}
	}
}

func TestCutLayout(t *testing.T) {
	deck := NewDeck(true)
	before := len(deck.Cards)
	middle := deck.Cards[before/2-2 : before/2+2]
	want := make([]Card, 4)
	copy(want, middle)

	cut := deck.CutLayout()
	if len(cut) != 4 {
		t.Fatalf("cut returned %d cards, want 4", len(cut))
	}
	for i, c := range cut {
		if c != want[i] {
			t.Fatalf("cut[%d] = %v, want middle card %v", i, c, want[i])
		}
	}
	if deck.RemainingCards() != before-4 {
		t.Fatalf("deck has %d cards after cut, want %d", deck.RemainingCards(), before-4)
	}
	for _, c := range deck.Cards {
		for _, cutCard := range cut {
			if c == cutCard {
				t.Fatalf("cut card %v still in deck", c)
			}
		}
	}
}
