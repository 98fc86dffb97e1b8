package game

// BuildOption describes a legal build creation: the loose cards to stack
// under the played card and the total the new build is pinned to.
type BuildOption struct {
	Cards      []Card `json:"cards"`
	TotalValue int    `json:"totalValue"`
}

type AugmentKind string

const (
	// AugmentSeize adds the played card to an opponent's build, re-pins it
	// to a new total and takes ownership. Nothing is captured.
	AugmentSeize AugmentKind = "seize"
	// AugmentExtend adds the played card plus a card matching the build's
	// total to a build the player (or partner) already owns. The total does
	// not change.
	AugmentExtend AugmentKind = "extend"
)

// AugmentOption describes a legal build augmentation. For extends, With is
// the matching card and FromPile says where it comes from: -1 for a loose
// layout card, otherwise the seat index of the opponent whose visible
// pile-top card it is.
type AugmentOption struct {
	BuildID  int         `json:"buildId"`
	Kind     AugmentKind `json:"kind"`
	NewTotal int         `json:"newTotal,omitempty"`
	With     *Card       `json:"with,omitempty"`
	FromPile int         `json:"fromPile"`
}

// FindBuildOptions enumerates the builds the player could create by playing
// the given card. For every non-empty subset of loose cards, the subset
// plus the played card is resolved; a total is only offered if the player
// holds another hand card worth that total, so the build stays capturable.
// Only the first qualifying total per subset is offered, which keeps the
// option list tractable.
func (g *CasinoGame) FindBuildOptions(played Card, playerIdx int) []BuildOption {
	if playerIdx < 0 || playerIdx >= len(g.Players) {
		return nil
	}

	var options []BuildOption
	loose := g.Layout.LooseCards()
	captureValues := g.handCaptureValues(playerIdx, played)

	for mask := 1; mask < 1<<len(loose); mask++ {
		subset := looseSubset(loose, mask)
		for _, total := range ResolveTotals(append(append([]Card{}, subset...), played)) {
			if captureValues[total] {
				options = append(options, BuildOption{Cards: subset, TotalValue: total})
				break
			}
		}
	}

	return options
}

// FindAugmentOptions enumerates build augmentations for the played card:
// seizing an opponent's build under a new total the player can still
// capture, or extending an own/partner build with a card equal to its
// current total taken from the loose layout or from the visible top of an
// opponent's capture pile.
func (g *CasinoGame) FindAugmentOptions(played Card, playerIdx int) []AugmentOption {
	if playerIdx < 0 || playerIdx >= len(g.Players) {
		return nil
	}

	var options []AugmentOption
	captureValues := g.handCaptureValues(playerIdx, played)

	for _, b := range g.Layout.Builds() {
		mine := b.Owner == playerIdx || g.arePartners(playerIdx, b.Owner)

		if !mine {
			cards := append(append([]Card{}, b.Cards...), played)
			for _, total := range ResolveTotals(cards) {
				if captureValues[total] {
					options = append(options, AugmentOption{
						BuildID:  b.ID,
						Kind:     AugmentSeize,
						NewTotal: total,
						FromPile: -1,
					})
				}
			}
			continue
		}

		for _, card := range g.Layout.LooseCards() {
			card := card
			if matchesValue(card, b.TotalValue) {
				options = append(options, AugmentOption{
					BuildID:  b.ID,
					Kind:     AugmentExtend,
					With:     &card,
					FromPile: -1,
				})
			}
		}
		for idx, opp := range g.Players {
			if idx == playerIdx || g.arePartners(playerIdx, idx) {
				continue
			}
			top := opp.TopCard()
			if top != nil && matchesValue(*top, b.TotalValue) {
				options = append(options, AugmentOption{
					BuildID:  b.ID,
					Kind:     AugmentExtend,
					With:     top,
					FromPile: idx,
				})
			}
		}
	}

	return options
}

// handCaptureValues returns the totals the player could still capture with,
// excluding the card about to be played.
func (g *CasinoGame) handCaptureValues(playerIdx int, played Card) map[int]bool {
	values := make(map[int]bool)
	for _, card := range g.Players[playerIdx].Hand {
		if card == played {
			continue
		}
		values[card.NumericValue()] = true
	}
	return values
}

func matchesValue(card Card, total int) bool {
	for _, v := range card.Values() {
		if v == total {
			return true
		}
	}
	return false
}
