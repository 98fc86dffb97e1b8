package store

import "github.com/calvinwijaya/casino-be/internal/game"

// Store defines the interface for live game storage
type Store interface {
	// SaveGame saves a game to the store
	SaveGame(g *game.CasinoGame) error

	// GetGame retrieves a game by ID
	GetGame(id string) (*game.CasinoGame, error)

	// GetTableGames retrieves all games for a table
	GetTableGames(tableID string) ([]*game.CasinoGame, error)

	// GetActiveTableGame retrieves the game at a table that has not
	// finished yet
	GetActiveTableGame(tableID string) (*game.CasinoGame, error)

	// DeleteGame removes a game from the store
	DeleteGame(id string) error

	// GetAllGames returns all games in the store
	GetAllGames() ([]*game.CasinoGame, error)
}
