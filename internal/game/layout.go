package game

import "sort"

// Build is a stack of layout cards pinned to one total, owned by a player
// and capturable later by a card matching that total. Builds are mutated in
// place; everything that needs to reference one does so through its ID.
type Build struct {
	ID          int    `json:"id"`
	Cards       []Card `json:"cards"`
	TotalValue  int    `json:"totalValue"`
	Owner       int    `json:"owner"`
	IsAugmented bool   `json:"isAugmented"`
}

// Layout holds the shared face-up cards: loose cards and builds. Loose
// cards and build members are disjoint. Builds live in an id-keyed map so
// option payloads can name them by a handle that stays valid across
// in-place mutation.
type Layout struct {
	Loose       []Card         `json:"loose"`
	BuildsByID  map[int]*Build `json:"builds"`
	NextBuildID int            `json:"nextBuildId"`
}

func NewLayout() *Layout {
	return &Layout{
		BuildsByID: make(map[int]*Build),
	}
}

// LooseCards returns a snapshot of the loose cards.
func (l *Layout) LooseCards() []Card {
	out := make([]Card, len(l.Loose))
	copy(out, l.Loose)
	return out
}

// Builds returns the builds ordered by ID. The builds themselves are
// shared, not copied.
func (l *Layout) Builds() []*Build {
	ids := make([]int, 0, len(l.BuildsByID))
	for id := range l.BuildsByID {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]*Build, 0, len(ids))
	for _, id := range ids {
		out = append(out, l.BuildsByID[id])
	}
	return out
}

// Build returns the build with the given ID, if it is still on the layout.
func (l *Layout) Build(id int) (*Build, bool) {
	b, ok := l.BuildsByID[id]
	return b, ok
}

// AddLoose places a card on the layout as a loose card.
func (l *Layout) AddLoose(card Card) {
	l.Loose = append(l.Loose, card)
}

// RemoveLoose removes a loose card. Returns false if the card is not
// currently loose on the layout.
func (l *Layout) RemoveLoose(card Card) bool {
	for i, c := range l.Loose {
		if c == card {
			l.Loose = append(l.Loose[:i], l.Loose[i+1:]...)
			return true
		}
	}
	return false
}

// HasLoose reports whether the card is currently loose on the layout.
func (l *Layout) HasLoose(card Card) bool {
	for _, c := range l.Loose {
		if c == card {
			return true
		}
	}
	return false
}

// AddBuild creates a new build from the given cards and places it on the
// layout under a fresh ID.
func (l *Layout) AddBuild(cards []Card, totalValue, owner int) *Build {
	b := &Build{
		ID:         l.NextBuildID,
		Cards:      cards,
		TotalValue: totalValue,
		Owner:      owner,
	}
	l.NextBuildID++
	l.BuildsByID[b.ID] = b
	return b
}

// RemoveBuild takes a build off the layout. Returns false if no build with
// that ID is present.
func (l *Layout) RemoveBuild(id int) (*Build, bool) {
	b, ok := l.BuildsByID[id]
	if !ok {
		return nil, false
	}
	delete(l.BuildsByID, id)
	return b, true
}

// AllCards returns every card on the layout, loose cards first, then build
// members in build order.
func (l *Layout) AllCards() []Card {
	out := l.LooseCards()
	for _, b := range l.Builds() {
		out = append(out, b.Cards...)
	}
	return out
}

// Clear empties the layout.
func (l *Layout) Clear() {
	l.Loose = nil
	l.BuildsByID = make(map[int]*Build)
}
