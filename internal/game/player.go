package game

// Player holds one seat's cards. The capture pile is face-up and
// append-only during play; only its most recently added card is visible to
// opponents.
type Player struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Hand        []Card `json:"hand"`
	CapturePile []Card `json:"capturePile"`
	LastCapture bool   `json:"lastCapture"`
}

// TopCard returns a copy of the visible top card of the capture pile, or
// nil if the pile is empty.
func (p *Player) TopCard() *Card {
	if len(p.CapturePile) == 0 {
		return nil
	}
	top := p.CapturePile[len(p.CapturePile)-1]
	return &top
}

// Capture appends cards to the player's face-up capture pile.
func (p *Player) Capture(cards []Card) {
	p.CapturePile = append(p.CapturePile, cards...)
}

// CountCards returns the number of captured cards.
func (p *Player) CountCards() int {
	return len(p.CapturePile)
}

// CountSpades returns the number of captured spades.
func (p *Player) CountSpades() int {
	n := 0
	for _, c := range p.CapturePile {
		if c.Suit == Spades {
			n++
		}
	}
	return n
}

// HasInHand reports whether the player still holds the given card.
func (p *Player) HasInHand(card Card) bool {
	for _, c := range p.Hand {
		if c == card {
			return true
		}
	}
	return false
}

// HasCaptured reports whether the given card is in the capture pile.
func (p *Player) HasCaptured(card Card) bool {
	for _, c := range p.CapturePile {
		if c == card {
			return true
		}
	}
	return false
}
