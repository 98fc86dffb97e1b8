package game

// The two special scoring cards: the "spy two" and the "big ten".
var (
	spyTwo = Card{Suit: Spades, Rank: Two}
	bigTen = Card{Suit: Diamonds, Rank: Ten}
)

// Scores tallies points per seat from the capture piles. Two-player and
// partnership games play for 11 points: most cards 2 (split 1/1 on a tie),
// most spades 2 (split 1/1 on a tie), 2 of Spades 1, 10 of Diamonds 2 and
// each ace 1. Three or four solo players skip the majorities and play for
// the 7 card points only. Partnerships pool their piles for the majorities
// and every member of the winning side is credited.
func (g *CasinoGame) Scores() []int {
	scores := make([]int, len(g.Players))
	groups := g.scoringGroups()

	cardCounts := make([]int, len(groups))
	spadeCounts := make([]int, len(groups))
	specials := make([]int, len(groups))

	for gi, members := range groups {
		for _, seat := range members {
			p := g.Players[seat]
			cardCounts[gi] += p.CountCards()
			spadeCounts[gi] += p.CountSpades()

			if p.HasCaptured(spyTwo) || (g.Rules.ScoreSpecialsInHand && p.HasInHand(spyTwo)) {
				specials[gi]++
			}
			if p.HasCaptured(bigTen) || (g.Rules.ScoreSpecialsInHand && p.HasInHand(bigTen)) {
				specials[gi] += 2
			}
			for _, c := range p.CapturePile {
				if c.Rank == Ace {
					specials[gi]++
				}
			}
		}
	}

	elevenPoint := g.Seats == 2 || len(g.Partnerships) > 0
	if elevenPoint {
		awardMajority(scores, groups, cardCounts)
		awardMajority(scores, groups, spadeCounts)
	}

	for gi, members := range groups {
		for _, seat := range members {
			scores[seat] += specials[gi]
		}
	}

	return scores
}

// scoringGroups returns the scoring units: partnership pairs, or single
// seats when no partnership covers them.
func (g *CasinoGame) scoringGroups() [][]int {
	var groups [][]int
	seen := make([]bool, len(g.Players))
	for seat := range g.Players {
		if seen[seat] {
			continue
		}
		seen[seat] = true
		members := []int{seat}
		if partner, ok := g.partnerOf(seat); ok && partner < len(g.Players) && !seen[partner] {
			seen[partner] = true
			members = append(members, partner)
		}
		groups = append(groups, members)
	}
	return groups
}

// awardMajority gives 2 points per member of the single group with the
// highest count, or 1 point per member of each tied group.
func awardMajority(scores []int, groups [][]int, counts []int) {
	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}

	var winners []int
	for gi, c := range counts {
		if c == max {
			winners = append(winners, gi)
		}
	}

	points := 2
	if len(winners) > 1 {
		points = 1
	}
	for _, gi := range winners {
		for _, seat := range groups[gi] {
			scores[seat] += points
		}
	}
}
