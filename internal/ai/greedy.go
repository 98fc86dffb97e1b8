// Package ai holds the built-in move policy. It sits outside the rules
// engine and only talks to it through the option queries, the same way a
// human client would.
package ai

import "github.com/calvinwijaya/casino-be/internal/game"

// ChooseMove picks a move for the given seat: the first available capture,
// else the first available build, else discard the first card. Stateless.
// Returns the hand index to play and the action to apply with it.
func ChooseMove(g *game.CasinoGame, playerIdx int) (int, game.Action) {
	if playerIdx < 0 || playerIdx >= len(g.Players) {
		return -1, game.Action{}
	}
	hand := g.Players[playerIdx].Hand
	if len(hand) == 0 {
		return -1, game.Action{}
	}

	for i, card := range hand {
		captures := g.FindCaptureOptions(card)
		if len(captures) > 0 {
			return i, game.Action{Kind: game.ActionCapture, Capture: &captures[0]}
		}
	}

	for i, card := range hand {
		builds := g.FindBuildOptions(card, playerIdx)
		if len(builds) > 0 {
			return i, game.Action{Kind: game.ActionBuild, Build: &builds[0]}
		}
	}

	return 0, game.Action{Kind: game.ActionDiscard}
}
