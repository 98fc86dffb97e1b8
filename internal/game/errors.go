package game

import "errors"

var (
	ErrInvalidPlayerCount = errors.New("number of players must be 2, 3 or 4")
	ErrGameFull           = errors.New("all seats are taken")
	ErrWrongPhase         = errors.New("action not allowed in current phase")
	ErrNotYourTurn        = errors.New("not this player's turn")
	ErrPlayerNotFound     = errors.New("player not found in game")
	ErrInvalidHandIndex   = errors.New("played card index out of range")
	ErrStaleOption        = errors.New("chosen option no longer matches the layout")
	ErrUnknownAction      = errors.New("unknown action kind")
	ErrMissingPayload     = errors.New("action payload missing")
)
