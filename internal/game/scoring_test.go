package game

import "testing"

func suitRun(suit Suit, ranks ...Rank) []Card {
	cards := make([]Card, len(ranks))
	for i, r := range ranks {
		cards[i] = Card{Suit: suit, Rank: r}
	}
	return cards
}

func TestScoresTwoPlayerFullDeal(t *testing.T) {
	// Player A captures 22 of the 40 cards: every spade (so the 2S and the
	// ace of spades), hearts 2-10 and three low clubs. Player B gets the
	// remaining 18, among them the 10D and the other three aces.
	g := testGame(t, 2, nil, Rules{})

	pileA := suitRun(Spades, Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten)
	pileA = append(pileA, suitRun(Hearts, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten)...)
	pileA = append(pileA, suitRun(Clubs, Two, Three, Four)...)
	g.Players[0].CapturePile = pileA

	pileB := suitRun(Diamonds, Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten)
	pileB = append(pileB, suitRun(Clubs, Ace, Five, Six, Seven, Eight, Nine, Ten)...)
	pileB = append(pileB, Card{Suit: Hearts, Rank: Ace})
	g.Players[1].CapturePile = pileB

	if got := len(pileA); got != 22 {
		t.Fatalf("pile A has %d cards, want 22", got)
	}
	if got := len(pileB); got != 18 {
		t.Fatalf("pile B has %d cards, want 18", got)
	}

	scores := g.Scores()

	// A: most cards 2, most spades 2, 2 of spades 1, one ace 1 = 6.
	// B: 10 of diamonds 2, three aces 3 = 5.
	if scores[0] != 6 {
		t.Fatalf("player A score = %d, want 6", scores[0])
	}
	if scores[1] != 5 {
		t.Fatalf("player B score = %d, want 5", scores[1])
	}
	if scores[0]+scores[1] != 11 {
		t.Fatalf("two-player scores sum to %d, want 11", scores[0]+scores[1])
	}
}

func TestScoresSevenPointModeSkipsMajorities(t *testing.T) {
	g := testGame(t, 3, nil, Rules{})
	g.Players[0].CapturePile = []Card{
		{Suit: Spades, Rank: Two},
		{Suit: Spades, Rank: Ace},
		{Suit: Hearts, Rank: Three}, // extra cards never earn majority points here
		{Suit: Hearts, Rank: Four},
	}
	g.Players[1].CapturePile = []Card{
		{Suit: Diamonds, Rank: Ten},
		{Suit: Hearts, Rank: Ace},
	}
	g.Players[2].CapturePile = []Card{
		{Suit: Diamonds, Rank: Ace},
		{Suit: Clubs, Rank: Ace},
	}

	scores := g.Scores()
	want := []int{2, 3, 2}
	for i, s := range scores {
		if s != want[i] {
			t.Fatalf("scores = %v, want %v", scores, want)
		}
	}
	if scores[0]+scores[1]+scores[2] != 7 {
		t.Fatalf("solo-mode scores sum to %d, want 7", scores[0]+scores[1]+scores[2])
	}
}

func TestScoresMajorityTieSplits(t *testing.T) {
	g := testGame(t, 2, nil, Rules{})
	g.Players[0].CapturePile = []Card{{Suit: Hearts, Rank: Three}, {Suit: Spades, Rank: Four}}
	g.Players[1].CapturePile = []Card{{Suit: Diamonds, Rank: Three}, {Suit: Spades, Rank: Five}}

	scores := g.Scores()
	// Cards tie 2-2 and spades tie 1-1: one point each per majority.
	if scores[0] != 2 || scores[1] != 2 {
		t.Fatalf("scores = %v, want [2 2]", scores)
	}
}

func TestScoresPartnershipPooling(t *testing.T) {
	g := testGame(t, 4, [][2]int{{0, 2}, {1, 3}}, Rules{})
	g.Players[0].CapturePile = []Card{{Suit: Spades, Rank: Two}, {Suit: Spades, Rank: Three}}
	g.Players[2].CapturePile = []Card{{Suit: Spades, Rank: Four}}
	g.Players[1].CapturePile = []Card{{Suit: Diamonds, Rank: Three}}
	g.Players[3].CapturePile = nil

	scores := g.Scores()

	// Partnership (0,2) pools 3 cards and 3 spades against 1 and 0: both
	// majorities plus the pooled 2 of spades, credited to both partners.
	if scores[0] != 5 || scores[2] != 5 {
		t.Fatalf("winning partnership scores = %d/%d, want 5/5", scores[0], scores[2])
	}
	if scores[1] != 0 || scores[3] != 0 {
		t.Fatalf("losing partnership scores = %d/%d, want 0/0", scores[1], scores[3])
	}
}

func TestScoresSpecialsInHandFlag(t *testing.T) {
	tests := []struct {
		name  string
		rules Rules
		want  int
	}{
		{name: "captured only", rules: Rules{}, want: 0},
		{name: "legacy counts hand cards", rules: Rules{ScoreSpecialsInHand: true}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGame(t, 3, nil, tt.rules)
			g.Players[0].Hand = []Card{{Suit: Diamonds, Rank: Ten}}

			scores := g.Scores()
			if scores[0] != tt.want {
				t.Fatalf("score with 10D in hand = %d, want %d", scores[0], tt.want)
			}
		})
	}
}
