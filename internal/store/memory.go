package store

import (
	"errors"
	"sync"

	"github.com/calvinwijaya/casino-be/internal/game"
)

var ErrNotFound = errors.New("game not found")

// MemoryStore is an in-memory implementation of game storage. Games are
// shared pointers: the engine mutates them in place and the store just
// indexes them by game and table.
type MemoryStore struct {
	games  map[string]*game.CasinoGame
	tables map[string][]*game.CasinoGame
	mu     sync.RWMutex
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games:  make(map[string]*game.CasinoGame),
		tables: make(map[string][]*game.CasinoGame),
	}
}

// SaveGame saves a game to the store
func (s *MemoryStore) SaveGame(g *game.CasinoGame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[g.ID]; !exists {
		s.tables[g.TableID] = append(s.tables[g.TableID], g)
	}
	s.games[g.ID] = g
	return nil
}

// GetGame retrieves a game by ID
func (s *MemoryStore) GetGame(id string) (*game.CasinoGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, exists := s.games[id]
	if !exists {
		return nil, ErrNotFound
	}
	return g, nil
}

// GetTableGames retrieves all games for a table
func (s *MemoryStore) GetTableGames(tableID string) ([]*game.CasinoGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	games := s.tables[tableID]
	out := make([]*game.CasinoGame, len(games))
	copy(out, games)
	return out, nil
}

// GetActiveTableGame retrieves the game at a table that has not finished
func (s *MemoryStore) GetActiveTableGame(tableID string) (*game.CasinoGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.tables[tableID] {
		if g.Phase != game.PhaseDone {
			return g, nil
		}
	}
	return nil, ErrNotFound
}

// DeleteGame removes a game from the store
func (s *MemoryStore) DeleteGame(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, exists := s.games[id]
	if !exists {
		return ErrNotFound
	}

	delete(s.games, id)

	tableGames := s.tables[g.TableID]
	for i, tg := range tableGames {
		if tg.ID == id {
			s.tables[g.TableID] = append(tableGames[:i], tableGames[i+1:]...)
			break
		}
	}
	return nil
}

// GetAllGames returns all games in the store
func (s *MemoryStore) GetAllGames() ([]*game.CasinoGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	games := make([]*game.CasinoGame, 0, len(s.games))
	for _, g := range s.games {
		games = append(games, g)
	}
	return games, nil
}
