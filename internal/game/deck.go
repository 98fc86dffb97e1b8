package game

import (
	"math/rand"
	"time"
)

type Deck struct {
	Cards []Card `json:"cards"`
}

// NewDeck creates a new deck. The 40-card variant drops the Jacks, Queens
// and Kings, which is how the game is usually played in South Africa.
func NewDeck(fortyCard bool) *Deck {
	deck := &Deck{}
	suits := []Suit{Hearts, Diamonds, Clubs, Spades}
	ranks := []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}
	if fortyCard {
		ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten}
	}

	for _, suit := range suits {
		for _, rank := range ranks {
			deck.Cards = append(deck.Cards, Card{Suit: suit, Rank: rank})
		}
	}

	return deck
}

// Shuffle randomizes the order of cards in the deck
func (d *Deck) Shuffle() {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	// Fisher-Yates shuffle algorithm
	for i := len(d.Cards) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// CutLayout removes and returns four cards from the middle of the deck.
// They form the opening layout.
func (d *Deck) CutLayout() []Card {
	if len(d.Cards) < 4 {
		return nil
	}

	start := len(d.Cards)/2 - 2
	cut := make([]Card, 4)
	copy(cut, d.Cards[start:start+4])
	d.Cards = append(d.Cards[:start], d.Cards[start+4:]...)
	return cut
}

// DrawCard removes and returns the top card from the deck
func (d *Deck) DrawCard() (Card, bool) {
	if len(d.Cards) == 0 {
		return Card{}, false
	}

	card := d.Cards[0]
	d.Cards = d.Cards[1:]
	return card, true
}

// RemainingCards returns the number of cards left in the deck
func (d *Deck) RemainingCards() int {
	return len(d.Cards)
}
