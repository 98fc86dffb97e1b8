package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/calvinwijaya/casino-be/internal/game"
	_ "github.com/mattn/go-sqlite3"
)

type Database struct {
	db *sql.DB
}

// PlayerRecord is the persisted part of a player, independent of any
// running game.
type PlayerRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	LastLogin time.Time `json:"lastLogin"`
}

type PlayerStats struct {
	PlayerID       string    `json:"playerId"`
	PlayerName     string    `json:"playerName"`
	GamesPlayed    int       `json:"gamesPlayed"`
	GamesWon       int       `json:"gamesWon"`
	CardsCaptured  int       `json:"cardsCaptured"`
	SpadesCaptured int       `json:"spadesCaptured"`
	TotalScore     int       `json:"totalScore"`
	LastPlayed     time.Time `json:"lastPlayed"`
}

// NewDatabase opens (or creates) the sqlite database at the given path and
// makes sure the schema exists.
func NewDatabase(path string) (*Database, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %v", err)
	}

	// sqlite handles one writer at a time
	db.SetMaxOpenConns(1)

	if err := initTables(db); err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

// initTables creates the necessary tables if they don't exist
func initTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS players (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			last_login DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("error creating players table: %v", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			table_id TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME,
			phase TEXT NOT NULL,
			game_state TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("error creating games table: %v", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS game_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			player_id TEXT NOT NULL,
			cards_captured INTEGER NOT NULL,
			spades_captured INTEGER NOT NULL,
			score INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (game_id) REFERENCES games (id)
		)
	`)
	if err != nil {
		return fmt.Errorf("error creating game_results table: %v", err)
	}

	return nil
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.db.Close()
}

// GetPlayerByID retrieves a player record by ID. Returns nil, nil when the
// player does not exist.
func (d *Database) GetPlayerByID(playerID string) (*PlayerRecord, error) {
	var p PlayerRecord
	err := d.db.QueryRow(
		"SELECT id, name, created_at, last_login FROM players WHERE id = ?", playerID,
	).Scan(&p.ID, &p.Name, &p.CreatedAt, &p.LastLogin)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// CreatePlayer creates a new player in the database
func (d *Database) CreatePlayer(playerID, playerName string) error {
	now := time.Now()
	_, err := d.db.Exec(
		"INSERT INTO players (id, name, created_at, last_login) VALUES (?, ?, ?, ?)",
		playerID, playerName, now, now,
	)
	return err
}

// UpdatePlayerLastLogin updates a player's last login timestamp
func (d *Database) UpdatePlayerLastLogin(playerID string) error {
	_, err := d.db.Exec(
		"UPDATE players SET last_login = ? WHERE id = ?",
		time.Now(), playerID,
	)
	return err
}

// SaveGame upserts a game snapshot as JSON
func (d *Database) SaveGame(g *game.CasinoGame) error {
	gameState, err := json.Marshal(g)
	if err != nil {
		return err
	}

	_, err = d.db.Exec(`
		INSERT INTO games (id, table_id, created_at, updated_at, phase, game_state)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET updated_at = excluded.updated_at, phase = excluded.phase, game_state = excluded.game_state
	`, g.ID, g.TableID, g.CreatedAt, time.Now(), string(g.Phase), string(gameState))
	return err
}

// GetGame retrieves a game by ID
func (d *Database) GetGame(id string) (*game.CasinoGame, error) {
	var gameState []byte
	err := d.db.QueryRow("SELECT game_state FROM games WHERE id = ?", id).Scan(&gameState)
	if err != nil {
		return nil, errors.New("game not found")
	}

	var g game.CasinoGame
	if err := json.Unmarshal(gameState, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// GetTableGames retrieves all games for a table
func (d *Database) GetTableGames(tableID string) ([]*game.CasinoGame, error) {
	rows, err := d.db.Query(
		"SELECT game_state FROM games WHERE table_id = ? ORDER BY created_at DESC", tableID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanGames(rows)
}

// GetActiveTableGame retrieves the unfinished game for a table
func (d *Database) GetActiveTableGame(tableID string) (*game.CasinoGame, error) {
	var gameState []byte
	err := d.db.QueryRow(`
		SELECT game_state FROM games
		WHERE table_id = ? AND phase != ?
		ORDER BY created_at DESC LIMIT 1
	`, tableID, string(game.PhaseDone)).Scan(&gameState)
	if err != nil {
		return nil, errors.New("no active game found for table")
	}

	var g game.CasinoGame
	if err := json.Unmarshal(gameState, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// DeleteGame removes a game from the database
func (d *Database) DeleteGame(id string) error {
	_, err := d.db.Exec("DELETE FROM games WHERE id = ?", id)
	return err
}

// GetAllGames returns all games in the database
func (d *Database) GetAllGames() ([]*game.CasinoGame, error) {
	rows, err := d.db.Query("SELECT game_state FROM games ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanGames(rows)
}

func scanGames(rows *sql.Rows) ([]*game.CasinoGame, error) {
	var games []*game.CasinoGame
	for rows.Next() {
		var gameState []byte
		if err := rows.Scan(&gameState); err != nil {
			return nil, err
		}

		var g game.CasinoGame
		if err := json.Unmarshal(gameState, &g); err != nil {
			return nil, err
		}
		games = append(games, &g)
	}
	return games, rows.Err()
}

// UpdateGamePhase updates a game's phase in the database
func (d *Database) UpdateGamePhase(gameID string, phase game.Phase) error {
	_, err := d.db.Exec(
		"UPDATE games SET phase = ?, updated_at = ? WHERE id = ?",
		string(phase), time.Now(), gameID,
	)
	return err
}

// SaveGameResult saves one player's final result for a finished game
func (d *Database) SaveGameResult(gameID, playerID string, cards, spades, score int, won bool) error {
	_, err := d.db.Exec(`
		INSERT INTO game_results (game_id, player_id, cards_captured, spades_captured, score, won, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, gameID, playerID, cards, spades, score, won, time.Now())
	return err
}

// GetPlayerStats retrieves a player's statistics across finished games
func (d *Database) GetPlayerStats(playerID string) (*PlayerStats, error) {
	var stats PlayerStats

	err := d.db.QueryRow("SELECT name FROM players WHERE id = ?", playerID).Scan(&stats.PlayerName)
	if err != nil {
		return nil, err
	}
	stats.PlayerID = playerID

	err = d.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(SUM(cards_captured), 0),
		       COALESCE(SUM(spades_captured), 0), COALESCE(SUM(score), 0)
		FROM game_results WHERE player_id = ?
	`, playerID).Scan(&stats.GamesPlayed, &stats.GamesWon, &stats.CardsCaptured,
		&stats.SpadesCaptured, &stats.TotalScore)
	if err != nil {
		log.Printf("Error aggregating results for %s: %v", playerID, err)
	}

	var lastPlayed sql.NullTime
	err = d.db.QueryRow(
		"SELECT MAX(created_at) FROM game_results WHERE player_id = ?", playerID,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		log.Printf("Error getting last played for %s: %v", playerID, err)
	}
	if lastPlayed.Valid {
		stats.LastPlayed = lastPlayed.Time
	}

	return &stats, nil
}
