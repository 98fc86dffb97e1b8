package game

import (
	"time"

	"github.com/google/uuid"
)

type Phase string

const (
	PhaseSetup     Phase = "setup"     // Waiting for players to join
	PhasePlaying   Phase = "playing"   // Hand in progress
	PhaseEndOfHand Phase = "endOfHand" // Remainder swept to the last capturer
	PhaseScoring   Phase = "scoring"   // Points being tallied
	PhaseDone      Phase = "done"      // Terminal
)

type ActionKind string

const (
	ActionCapture ActionKind = "capture"
	ActionBuild   ActionKind = "build"
	ActionAugment ActionKind = "augment"
	ActionDiscard ActionKind = "discard"
)

// Action is the decision applied after playing a card: exactly one of the
// payloads matches Kind. Discard needs no payload and is always legal.
type Action struct {
	Kind    ActionKind     `json:"kind"`
	Capture *CaptureGroup  `json:"capture,omitempty"`
	Build   *BuildOption   `json:"build,omitempty"`
	Augment *AugmentOption `json:"augment,omitempty"`
}

// Rules names the two spots where this engine deliberately diverges from,
// or reproduces, quirks of the original table rules. The zero value is the
// strict reading: augmenting from an opponent's pile takes the card, and
// only captured specials score.
type Rules struct {
	// LeavePileTopInPlace reproduces the legacy behavior of copying an
	// opponent's visible pile-top card into a build without removing it
	// from the pile. That duplicates the card across zones; leave it false
	// unless you need bug-for-bug compatibility.
	LeavePileTopInPlace bool `json:"leavePileTopInPlace"`
	// ScoreSpecialsInHand also awards the 2 of Spades and 10 of Diamonds
	// when still held in a hand rather than captured, as the legacy rules
	// engine did.
	ScoreSpecialsInHand bool `json:"scoreSpecialsInHand"`
}

// CasinoGame is the full state of one South African Casino hand: the shared
// layout, the seats, the deck and the phase machine. All mutation goes
// through ApplyAction; queries are side-effect free.
type CasinoGame struct {
	ID                 string    `json:"id"`
	TableID            string    `json:"tableId"`
	Seats              int       `json:"seats"`
	FortyCardDeck      bool      `json:"fortyCardDeck"`
	Partnerships       [][2]int  `json:"partnerships,omitempty"`
	Rules              Rules     `json:"rules"`
	Players            []*Player `json:"players"`
	Layout             *Layout   `json:"layout"`
	Deck               *Deck     `json:"deck,omitempty"`
	Phase              Phase     `json:"phase"`
	CurrentPlayerIndex int       `json:"currentPlayerIndex"`
	DealerIndex        int       `json:"dealerIndex"`
	RoundNumber        int       `json:"roundNumber"`
	FinalScores        []int     `json:"finalScores,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// NewCasinoGame creates a game waiting for players. Partnerships, if given,
// pair seat indices and only make sense for four seats.
func NewCasinoGame(tableID string, seats int, fortyCard bool, partnerships [][2]int, rules Rules) (*CasinoGame, error) {
	if seats < 2 || seats > 4 {
		return nil, ErrInvalidPlayerCount
	}
	for _, pair := range partnerships {
		if pair[0] < 0 || pair[0] >= seats || pair[1] < 0 || pair[1] >= seats || pair[0] == pair[1] {
			return nil, ErrInvalidPlayerCount
		}
	}

	now := time.Now()
	return &CasinoGame{
		ID:            uuid.New().String(),
		TableID:       tableID,
		Seats:         seats,
		FortyCardDeck: fortyCard,
		Partnerships:  partnerships,
		Rules:         rules,
		Layout:        NewLayout(),
		Phase:         PhaseSetup,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// AddPlayer seats a player while the game is still in setup. Joining twice
// returns the existing seat.
func (g *CasinoGame) AddPlayer(playerID, name string) (*Player, error) {
	for _, p := range g.Players {
		if p.ID == playerID {
			return p, nil
		}
	}
	if g.Phase != PhaseSetup {
		return nil, ErrWrongPhase
	}
	if len(g.Players) >= g.Seats {
		return nil, ErrGameFull
	}

	p := &Player{ID: playerID, Name: name}
	g.Players = append(g.Players, p)
	g.UpdatedAt = time.Now()
	return p, nil
}

// RemovePlayer frees a seat. Only possible before the hand starts.
func (g *CasinoGame) RemovePlayer(playerID string) bool {
	if g.Phase != PhaseSetup {
		return false
	}
	for i, p := range g.Players {
		if p.ID == playerID {
			g.Players = append(g.Players[:i], g.Players[i+1:]...)
			g.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// Start shuffles, cuts the four-card opening layout from the middle of the
// deck and deals the rest of the deck round-robin. Every seat must be
// taken.
func (g *CasinoGame) Start() error {
	if g.Phase != PhaseSetup {
		return ErrWrongPhase
	}
	if len(g.Players) != g.Seats {
		return ErrInvalidPlayerCount
	}

	g.Deck = NewDeck(g.FortyCardDeck)
	g.Deck.Shuffle()

	for _, card := range g.Deck.CutLayout() {
		g.Layout.AddLoose(card)
	}

	for g.Deck.RemainingCards() > 0 {
		for _, p := range g.Players {
			card, ok := g.Deck.DrawCard()
			if !ok {
				break
			}
			p.Hand = append(p.Hand, card)
		}
	}

	g.Phase = PhasePlaying
	g.CurrentPlayerIndex = 0
	g.RoundNumber = 1
	g.UpdatedAt = time.Now()
	return nil
}

// PlayerIndex returns the seat of the given player ID, or -1.
func (g *CasinoGame) PlayerIndex(playerID string) int {
	for i, p := range g.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

// FindCaptureOptions enumerates the capture groups the card could take.
// Pure query; repeated calls without an intervening ApplyAction return the
// same options.
func (g *CasinoGame) FindCaptureOptions(played Card) []CaptureGroup {
	return g.Layout.FindCaptures(played)
}

// ApplyAction plays one card from the player's hand and applies exactly one
// chosen action, atomically: every target is validated against the current
// layout before anything moves. Options enumerated earlier in the same
// decision cycle can have gone stale; those come back as ErrStaleOption and
// the caller decides whether to re-prompt or discard. The engine never
// downgrades a rejected move on its own.
func (g *CasinoGame) ApplyAction(playerID string, cardIndex int, action Action) error {
	if g.Phase != PhasePlaying {
		return ErrWrongPhase
	}
	idx := g.PlayerIndex(playerID)
	if idx < 0 {
		return ErrPlayerNotFound
	}
	if idx != g.CurrentPlayerIndex {
		return ErrNotYourTurn
	}
	player := g.Players[idx]
	if cardIndex < 0 || cardIndex >= len(player.Hand) {
		return ErrInvalidHandIndex
	}
	played := player.Hand[cardIndex]

	var err error
	switch action.Kind {
	case ActionCapture:
		err = g.applyCapture(idx, played, action.Capture)
	case ActionBuild:
		err = g.applyBuild(idx, played, action.Build)
	case ActionAugment:
		err = g.applyAugment(idx, played, action.Augment)
	case ActionDiscard:
		g.Layout.AddLoose(played)
	default:
		err = ErrUnknownAction
	}
	if err != nil {
		return err
	}

	player.Hand = append(player.Hand[:cardIndex], player.Hand[cardIndex+1:]...)
	g.UpdatedAt = time.Now()
	g.advanceTurn()
	return nil
}

// applyCapture mutates only after the requested group is found among the
// groups currently enumerable for the played card. Payloads arrive over the
// wire, so the group is never trusted: a group that duplicates a card,
// names the wrong cards or no longer matches the layout is rejected whole.
func (g *CasinoGame) applyCapture(playerIdx int, played Card, group *CaptureGroup) error {
	if group == nil || (len(group.Cards) == 0 && len(group.BuildIDs) == 0) {
		return ErrMissingPayload
	}
	legal := false
	for _, opt := range g.Layout.FindCaptures(played) {
		if equalCardSet(opt.Cards, group.Cards) && equalIDSet(opt.BuildIDs, group.BuildIDs) {
			legal = true
			break
		}
	}
	if !legal {
		return ErrStaleOption
	}

	captured := []Card{played}
	for _, card := range group.Cards {
		g.Layout.RemoveLoose(card)
		captured = append(captured, card)
	}
	for _, id := range group.BuildIDs {
		b, _ := g.Layout.RemoveBuild(id)
		captured = append(captured, b.Cards...)
	}

	g.Players[playerIdx].Capture(captured)
	for i, p := range g.Players {
		p.LastCapture = i == playerIdx
	}
	return nil
}

// applyBuild accepts only options still enumerable for the played card,
// which re-checks the pinned total and the backing hand card rather than
// trusting the payload's TotalValue.
func (g *CasinoGame) applyBuild(playerIdx int, played Card, option *BuildOption) error {
	if option == nil || len(option.Cards) == 0 {
		return ErrMissingPayload
	}
	legal := false
	for _, opt := range g.FindBuildOptions(played, playerIdx) {
		if opt.TotalValue == option.TotalValue && equalCardSet(opt.Cards, option.Cards) {
			legal = true
			break
		}
	}
	if !legal {
		return ErrStaleOption
	}

	cards := make([]Card, 0, len(option.Cards)+1)
	for _, card := range option.Cards {
		g.Layout.RemoveLoose(card)
		cards = append(cards, card)
	}
	cards = append(cards, played)
	g.Layout.AddBuild(cards, option.TotalValue, playerIdx)
	return nil
}

// applyAugment accepts only options still enumerable for the played card.
// That covers everything a crafted payload could forge: an unachievable or
// unbacked NewTotal, seizing an own or partner build, or an extend card
// that is no longer where the option said it was.
func (g *CasinoGame) applyAugment(playerIdx int, played Card, option *AugmentOption) error {
	if option == nil {
		return ErrMissingPayload
	}
	if option.Kind != AugmentSeize && option.Kind != AugmentExtend {
		return ErrUnknownAction
	}
	if option.Kind == AugmentExtend && option.With == nil {
		return ErrMissingPayload
	}

	legal := false
	for _, opt := range g.FindAugmentOptions(played, playerIdx) {
		if opt.BuildID != option.BuildID || opt.Kind != option.Kind {
			continue
		}
		switch option.Kind {
		case AugmentSeize:
			legal = opt.NewTotal == option.NewTotal
		case AugmentExtend:
			legal = opt.FromPile == option.FromPile && *opt.With == *option.With
		}
		if legal {
			break
		}
	}
	if !legal {
		return ErrStaleOption
	}

	b, _ := g.Layout.Build(option.BuildID)

	if option.Kind == AugmentSeize {
		b.Cards = append(b.Cards, played)
		b.TotalValue = option.NewTotal
		b.Owner = playerIdx
		return nil
	}

	with := *option.With
	if option.FromPile < 0 {
		g.Layout.RemoveLoose(with)
	} else if !g.Rules.LeavePileTopInPlace {
		opp := g.Players[option.FromPile]
		opp.CapturePile = opp.CapturePile[:len(opp.CapturePile)-1]
	}
	b.Cards = append(b.Cards, played, with)
	b.IsAugmented = true
	return nil
}

// equalCardSet compares two card lists as multisets.
func equalCardSet(a, b []Card) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[Card]int, len(a))
	for _, c := range a {
		counts[c]++
	}
	for _, c := range b {
		counts[c]--
		if counts[c] < 0 {
			return false
		}
	}
	return true
}

func equalIDSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[int]int, len(a))
	for _, id := range a {
		counts[id]++
	}
	for _, id := range b {
		counts[id]--
		if counts[id] < 0 {
			return false
		}
	}
	return true
}

func (g *CasinoGame) advanceTurn() {
	if g.handsEmpty() {
		g.finishHand()
		return
	}

	next := (g.CurrentPlayerIndex + 1) % len(g.Players)
	for len(g.Players[next].Hand) == 0 {
		next = (next + 1) % len(g.Players)
	}
	if next <= g.CurrentPlayerIndex {
		// Wrapped around the table: new round. The dealer pointer is
		// cosmetic and never affects legality.
		g.RoundNumber++
		g.DealerIndex = (g.DealerIndex + 1) % len(g.Players)
	}
	g.CurrentPlayerIndex = next
}

func (g *CasinoGame) handsEmpty() bool {
	for _, p := range g.Players {
		if len(p.Hand) > 0 {
			return false
		}
	}
	return true
}

// finishHand runs the tail of the phase machine: sweep the remainder to the
// last capturer, score, done.
func (g *CasinoGame) finishHand() {
	g.Phase = PhaseEndOfHand
	g.sweepRemainder()
	g.Phase = PhaseScoring
	g.FinalScores = g.Scores()
	g.Phase = PhaseDone
}

// sweepRemainder gives everything left on the layout, builds exploded into
// their member cards, to whichever player captured last. If no capture ever
// happened nobody gets the remainder and the layout keeps its cards.
func (g *CasinoGame) sweepRemainder() {
	for _, p := range g.Players {
		if p.LastCapture {
			remaining := g.Layout.AllCards()
			if len(remaining) > 0 {
				p.Capture(remaining)
				g.Layout.Clear()
			}
			return
		}
	}
}

func (g *CasinoGame) arePartners(a, b int) bool {
	for _, pair := range g.Partnerships {
		if (pair[0] == a && pair[1] == b) || (pair[0] == b && pair[1] == a) {
			return true
		}
	}
	return false
}

func (g *CasinoGame) partnerOf(seat int) (int, bool) {
	for _, pair := range g.Partnerships {
		if pair[0] == seat {
			return pair[1], true
		}
		if pair[1] == seat {
			return pair[0], true
		}
	}
	return 0, false
}

// GetGameState returns the game as seen by one player: their own hand, and
// for every opponent only the hand count and the visible top of the capture
// pile. The layout and builds are public.
func (g *CasinoGame) GetGameState(playerID string) map[string]interface{} {
	state := map[string]interface{}{
		"id":                 g.ID,
		"tableId":            g.TableID,
		"seats":              g.Seats,
		"phase":              g.Phase,
		"round":              g.RoundNumber,
		"currentPlayerIndex": g.CurrentPlayerIndex,
		"fortyCardDeck":      g.FortyCardDeck,
		"rules":              g.Rules,
		"layout": map[string]interface{}{
			"loose":  g.Layout.LooseCards(),
			"builds": g.Layout.Builds(),
		},
	}
	if len(g.Partnerships) > 0 {
		state["partnerships"] = g.Partnerships
	}
	if g.FinalScores != nil {
		state["scores"] = g.FinalScores
	}

	players := make([]map[string]interface{}, len(g.Players))
	for i, p := range g.Players {
		view := map[string]interface{}{
			"id":           p.ID,
			"name":         p.Name,
			"handCount":    len(p.Hand),
			"captureCount": p.CountCards(),
			"lastCapture":  p.LastCapture,
			"topCard":      p.TopCard(),
		}
		if p.ID == playerID {
			view["hand"] = p.Hand
		}
		players[i] = view
	}
	state["players"] = players

	return state
}
