package store

import (
	"github.com/calvinwijaya/casino-be/internal/db"
	"github.com/calvinwijaya/casino-be/internal/game"
)

// DatabaseStore is a database-backed implementation of game storage. Unlike
// MemoryStore it returns snapshots decoded from JSON, not shared pointers.
type DatabaseStore struct {
	db *db.Database
}

// NewDatabaseStore creates a new database store
func NewDatabaseStore(database *db.Database) *DatabaseStore {
	return &DatabaseStore{db: database}
}

// SaveGame saves a game to the database
func (s *DatabaseStore) SaveGame(g *game.CasinoGame) error {
	return s.db.SaveGame(g)
}

// GetGame retrieves a game by ID
func (s *DatabaseStore) GetGame(id string) (*game.CasinoGame, error) {
	return s.db.GetGame(id)
}

// GetTableGames retrieves all games for a table
func (s *DatabaseStore) GetTableGames(tableID string) ([]*game.CasinoGame, error) {
	return s.db.GetTableGames(tableID)
}

// GetActiveTableGame retrieves the unfinished game for a table
func (s *DatabaseStore) GetActiveTableGame(tableID string) (*game.CasinoGame, error) {
	return s.db.GetActiveTableGame(tableID)
}

// DeleteGame removes a game from the database
func (s *DatabaseStore) DeleteGame(id string) error {
	return s.db.DeleteGame(id)
}

// GetAllGames returns all games in the database
func (s *DatabaseStore) GetAllGames() ([]*game.CasinoGame, error) {
	return s.db.GetAllGames()
}
