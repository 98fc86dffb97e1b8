package ai

import (
	"fmt"
	"testing"

	"github.com/calvinwijaya/casino-be/internal/game"
)

func newPlayingGame(t *testing.T, seats int) *game.CasinoGame {
	t.Helper()
	g, err := game.NewCasinoGame("table-1", seats, true, nil, game.Rules{})
	if err != nil {
		t.Fatalf("NewCasinoGame: %v", err)
	}
	for i := 0; i < seats; i++ {
		if _, err := g.AddPlayer(fmt.Sprintf("p%d", i), fmt.Sprintf("Player %d", i)); err != nil {
			t.Fatalf("AddPlayer: %v", err)
		}
	}
	g.Phase = game.PhasePlaying
	return g
}

func TestChooseMovePrefersCapture(t *testing.T) {
	g := newPlayingGame(t, 2)
	g.Layout.AddLoose(game.Card{Suit: game.Hearts, Rank: game.Seven})
	g.Players[0].Hand = []game.Card{
		{Suit: game.Diamonds, Rank: game.Two},
		{Suit: game.Clubs, Rank: game.Seven},
	}

	idx, action := ChooseMove(g, 0)
	if action.Kind != game.ActionCapture {
		t.Fatalf("action kind = %q, want capture", action.Kind)
	}
	if idx != 1 {
		t.Fatalf("hand index = %d, want 1 (the seven)", idx)
	}
	if action.Capture == nil || len(action.Capture.Cards) != 1 {
		t.Fatalf("capture group = %+v, want the loose seven", action.Capture)
	}
}

func TestChooseMoveFallsBackToBuild(t *testing.T) {
	g := newPlayingGame(t, 2)
	g.Layout.AddLoose(game.Card{Suit: game.Hearts, Rank: game.Three})
	// The five makes an eight with the loose three, backed by the eight in
	// hand. Nothing captures outright.
	g.Players[0].Hand = []game.Card{
		{Suit: game.Diamonds, Rank: game.Five},
		{Suit: game.Clubs, Rank: game.Eight},
	}

	idx, action := ChooseMove(g, 0)
	if action.Kind != game.ActionBuild {
		t.Fatalf("action kind = %q, want build", action.Kind)
	}
	if idx != 0 {
		t.Fatalf("hand index = %d, want 0 (the five)", idx)
	}
	if action.Build == nil || action.Build.TotalValue != 8 {
		t.Fatalf("build option = %+v, want total 8", action.Build)
	}
}

func TestChooseMoveDiscardsWhenNothingElse(t *testing.T) {
	g := newPlayingGame(t, 2)
	g.Players[0].Hand = []game.Card{{Suit: game.Diamonds, Rank: game.Two}}

	idx, action := ChooseMove(g, 0)
	if action.Kind != game.ActionDiscard {
		t.Fatalf("action kind = %q, want discard", action.Kind)
	}
	if idx != 0 {
		t.Fatalf("hand index = %d, want 0", idx)
	}
}

func TestChooseMoveEmptyHand(t *testing.T) {
	g := newPlayingGame(t, 2)
	g.Players[0].Hand = nil

	if idx, _ := ChooseMove(g, 0); idx != -1 {
		t.Fatalf("hand index = %d, want -1 for empty hand", idx)
	}
	if idx, _ := ChooseMove(g, 5); idx != -1 {
		t.Fatalf("hand index = %d, want -1 for bad seat", idx)
	}
}

// TestGreedySelfPlay drives a full two-player hand from the deal to the
// terminal phase with both seats on the greedy policy, checking that no
// card is duplicated or lost along the way.
func TestGreedySelfPlay(t *testing.T) {
	g, err := game.NewCasinoGame("table-1", 2, true, nil, game.Rules{})
	if err != nil {
		t.Fatalf("NewCasinoGame: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := g.AddPlayer(fmt.Sprintf("p%d", i), fmt.Sprintf("Player %d", i)); err != nil {
			t.Fatalf("AddPlayer: %v", err)
		}
	}
	if err := g.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	want := make(map[game.Card]int)
	for _, c := range game.NewDeck(true).Cards {
		want[c]++
	}

	for turns := 0; g.Phase == game.PhasePlaying; turns++ {
		if turns > 80 {
			t.Fatalf("game did not finish after %d turns", turns)
		}
		seat := g.CurrentPlayerIndex
		idx, action := ChooseMove(g, seat)
		if idx < 0 {
			t.Fatalf("no move for seat %d with %d cards in hand", seat, len(g.Players[seat].Hand))
		}
		if err := g.ApplyAction(g.Players[seat].ID, idx, action); err != nil {
			t.Fatalf("turn %d seat %d action %q: %v", turns, seat, action.Kind, err)
		}
		checkZones(t, g, want)
	}

	if g.Phase != game.PhaseDone {
		t.Fatalf("final phase = %q, want done", g.Phase)
	}
	if len(g.FinalScores) != 2 {
		t.Fatalf("final scores = %v, want two entries", g.FinalScores)
	}
	if len(g.Layout.LooseCards()) != 0 || len(g.Layout.Builds()) != 0 {
		t.Fatalf("layout not empty at game end")
	}
	total := g.Players[0].CountCards() + g.Players[1].CountCards()
	if total != 40 {
		t.Fatalf("capture piles hold %d cards, want all 40", total)
	}
}

func checkZones(t *testing.T, g *game.CasinoGame, want map[game.Card]int) {
	t.Helper()
	got := make(map[game.Card]int)
	for _, p := range g.Players {
		for _, c := range p.Hand {
			got[c]++
		}
		for _, c := range p.CapturePile {
			got[c]++
		}
	}
	for _, c := range g.Layout.AllCards() {
		got[c]++
	}
	for _, c := range g.Deck.Cards {
		got[c]++
	}
	if len(got) != len(want) {
		t.Fatalf("zone census holds %d distinct cards, want %d", len(got), len(want))
	}
	for c, n := range want {
		if got[c] != n {
			t.Fatalf("card %v appears %d times, want %d", c, got[c], n)
		}
	}
}
