package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/calvinwijaya/casino-be/internal/ai"
	"github.com/calvinwijaya/casino-be/internal/db"
	"github.com/calvinwijaya/casino-be/internal/game"
	"github.com/calvinwijaya/casino-be/internal/store"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Handlers contains all the API handlers
type Handlers struct {
	store    store.Store
	database *db.Database
	hub      *Hub
}

// NewHandlers creates a new instance of Handlers
func NewHandlers(store store.Store, database *db.Database, hub *Hub) *Handlers {
	return &Handlers{
		store:    store,
		database: database,
		hub:      hub,
	}
}

// RegisterRoutes registers all API routes
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	// Game endpoints
	r.HandleFunc("/api/game/new", h.NewGame).Methods("POST")
	r.HandleFunc("/api/game/{id}/start", h.StartGame).Methods("POST")
	r.HandleFunc("/api/game/{id}/options", h.GetOptions).Methods("GET")
	r.HandleFunc("/api/game/{id}/play", h.Play).Methods("POST")
	r.HandleFunc("/api/game/{id}/autoplay", h.Autoplay).Methods("POST")
	r.HandleFunc("/api/game/{id}", h.GetGame).Methods("GET")

	// Player endpoints
	r.HandleFunc("/api/player/register", h.RegisterPlayer).Methods("POST")
	r.HandleFunc("/api/player/{id}/stats", h.GetPlayerStats).Methods("GET")
	r.HandleFunc("/api/player/{id}", h.GetPlayer).Methods("GET")

	// Table endpoints
	r.HandleFunc("/api/table/list", h.ListTables).Methods("GET")
	r.HandleFunc("/api/table/{id}/join", h.JoinTable).Methods("POST")
	r.HandleFunc("/api/table/{id}/leave", h.LeaveTable).Methods("POST")

	// WebSocket endpoint
	if h.hub != nil {
		r.HandleFunc("/ws", h.hub.WebSocketHandler)
	}
}

// response helper function to send JSON responses
func response(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// error response helper function
func errorResponse(w http.ResponseWriter, status int, message string) {
	response(w, status, map[string]string{"error": message})
}

// moveErrorStatus maps engine errors to HTTP statuses. Stale options and
// turn conflicts are recoverable; the client decides whether to re-prompt
// or fall back to a discard.
func moveErrorStatus(err error) int {
	switch {
	case errors.Is(err, game.ErrStaleOption), errors.Is(err, game.ErrNotYourTurn):
		return http.StatusConflict
	case errors.Is(err, game.ErrPlayerNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// NewGame creates a new casino game
func (h *Handlers) NewGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TableID       string     `json:"tableId"`
		Seats         int        `json:"seats"`
		FortyCardDeck *bool      `json:"fortyCardDeck"`
		Partnerships  [][2]int   `json:"partnerships"`
		Rules         game.Rules `json:"rules"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.TableID == "" {
		req.TableID = uuid.New().String()
	}
	if req.Seats == 0 {
		req.Seats = 2
	}
	fortyCard := true
	if req.FortyCardDeck != nil {
		fortyCard = *req.FortyCardDeck
	}

	g, err := game.NewCasinoGame(req.TableID, req.Seats, fortyCard, req.Partnerships, req.Rules)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.SaveGame(g); err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to save game")
		return
	}
	if h.database != nil {
		// Best effort; the live game lives in the store.
		if err := h.database.SaveGame(g); err != nil {
			log.Printf("Error persisting game %s: %v", g.ID, err)
		}
	}

	if h.hub != nil {
		h.hub.BroadcastToTable(g.TableID, Message{
			Type:    "gameCreated",
			GameID:  g.ID,
			TableID: g.TableID,
			Data:    g.GetGameState(""),
		})
	}

	response(w, http.StatusCreated, g.GetGameState(""))
}

// StartGame cuts the layout, deals the deck and begins play
func (h *Handlers) StartGame(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	g, err := h.store.GetGame(gameID)
	if err != nil {
		errorResponse(w, http.StatusNotFound, "Game not found")
		return
	}

	if err := g.Start(); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.SaveGame(g); err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to update game")
		return
	}
	if h.hub != nil {
		h.hub.BroadcastGameUpdate(g)
	}

	response(w, http.StatusOK, map[string]interface{}{"success": true, "game": g.GetGameState("")})
}

// GetGame returns the current state of a game as seen by one player
func (h *Handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]
	playerID := r.URL.Query().Get("playerId")

	g, err := h.store.GetGame(gameID)
	if err != nil {
		errorResponse(w, http.StatusNotFound, "Game not found")
		return
	}

	response(w, http.StatusOK, g.GetGameState(playerID))
}

// GetOptions enumerates the legal capture, build and augment options for
// one card in a player's hand. Pure query; nothing changes until /play.
func (h *Handlers) GetOptions(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]
	playerID := r.URL.Query().Get("playerId")

	cardIndex, err := strconv.Atoi(r.URL.Query().Get("card"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid card index")
		return
	}

	g, err := h.store.GetGame(gameID)
	if err != nil {
		errorResponse(w, http.StatusNotFound, "Game not found")
		return
	}

	idx := g.PlayerIndex(playerID)
	if idx < 0 {
		errorResponse(w, http.StatusNotFound, "Player not found in game")
		return
	}
	hand := g.Players[idx].Hand
	if cardIndex < 0 || cardIndex >= len(hand) {
		errorResponse(w, http.StatusBadRequest, "Card index out of range")
		return
	}
	card := hand[cardIndex]

	response(w, http.StatusOK, map[string]interface{}{
		"card":     card,
		"captures": g.FindCaptureOptions(card),
		"builds":   g.FindBuildOptions(card, idx),
		"augments": g.FindAugmentOptions(card, idx),
	})
}

// Play applies one move: the played card plus the chosen action
func (h *Handlers) Play(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	var req struct {
		PlayerID  string      `json:"playerId"`
		CardIndex int         `json:"cardIndex"`
		Action    game.Action `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	g, err := h.store.GetGame(gameID)
	if err != nil {
		errorResponse(w, http.StatusNotFound, "Game not found")
		return
	}

	if err := g.ApplyAction(req.PlayerID, req.CardIndex, req.Action); err != nil {
		errorResponse(w, moveErrorStatus(err), err.Error())
		return
	}

	h.afterMove(g)
	response(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"game":    g.GetGameState(req.PlayerID),
	})
}

// Autoplay plays one move for a seat using the built-in greedy policy
func (h *Handlers) Autoplay(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	var req struct {
		PlayerID string `json:"playerId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	g, err := h.store.GetGame(gameID)
	if err != nil {
		errorResponse(w, http.StatusNotFound, "Game not found")
		return
	}

	idx := g.PlayerIndex(req.PlayerID)
	if idx < 0 {
		errorResponse(w, http.StatusNotFound, "Player not found in game")
		return
	}

	cardIndex, action := ai.ChooseMove(g, idx)
	if cardIndex < 0 {
		errorResponse(w, http.StatusBadRequest, "No cards left to play")
		return
	}

	if err := g.ApplyAction(req.PlayerID, cardIndex, action); err != nil {
		errorResponse(w, moveErrorStatus(err), err.Error())
		return
	}

	h.afterMove(g)
	response(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"cardIndex": cardIndex,
		"action":    action.Kind,
		"game":      g.GetGameState(req.PlayerID),
	})
}

// afterMove saves the game, broadcasts the new state and, once the game is
// done, writes the final results to the database.
func (h *Handlers) afterMove(g *game.CasinoGame) {
	if err := h.store.SaveGame(g); err != nil {
		log.Printf("Error saving game %s: %v", g.ID, err)
	}
	if h.hub != nil {
		h.hub.BroadcastGameUpdate(g)
	}

	if g.Phase != game.PhaseDone {
		return
	}

	if h.hub != nil {
		h.hub.BroadcastToTable(g.TableID, Message{
			Type:    "gameOver",
			GameID:  g.ID,
			TableID: g.TableID,
			Data:    map[string]interface{}{"scores": g.FinalScores},
		})
	}

	if h.database == nil {
		return
	}
	if err := h.database.SaveGame(g); err != nil {
		log.Printf("Error persisting finished game %s: %v", g.ID, err)
	}
	if err := h.database.UpdateGamePhase(g.ID, g.Phase); err != nil {
		log.Printf("Error updating phase for game %s: %v", g.ID, err)
	}

	maxScore := 0
	for _, s := range g.FinalScores {
		if s > maxScore {
			maxScore = s
		}
	}
	for i, p := range g.Players {
		score := g.FinalScores[i]
		if err := h.database.SaveGameResult(g.ID, p.ID, p.CountCards(), p.CountSpades(), score, score == maxScore); err != nil {
			log.Printf("Error saving result for player %s in game %s: %v", p.ID, g.ID, err)
		}
	}
}

// RegisterPlayer registers a new player
func (h *Handlers) RegisterPlayer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		errorResponse(w, http.StatusBadRequest, "Player name is required")
		return
	}

	playerID := uuid.New().String()
	if h.database != nil {
		if err := h.database.CreatePlayer(playerID, req.Name); err != nil {
			errorResponse(w, http.StatusInternalServerError, "Failed to create player")
			return
		}
	}

	response(w, http.StatusCreated, map[string]interface{}{
		"id":   playerID,
		"name": req.Name,
	})
}

// GetPlayer returns player information
func (h *Handlers) GetPlayer(w http.ResponseWriter, r *http.Request) {
	playerID := mux.Vars(r)["id"]

	if h.database == nil {
		errorResponse(w, http.StatusInternalServerError, "Database not available")
		return
	}

	player, err := h.database.GetPlayerByID(playerID)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Error retrieving player")
		return
	}
	if player == nil {
		errorResponse(w, http.StatusNotFound, "Player not found")
		return
	}

	h.database.UpdatePlayerLastLogin(playerID)
	response(w, http.StatusOK, player)
}

// GetPlayerStats returns player statistics
func (h *Handlers) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	playerID := mux.Vars(r)["id"]

	if h.database == nil {
		errorResponse(w, http.StatusInternalServerError, "Database not available")
		return
	}

	stats, err := h.database.GetPlayerStats(playerID)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Error retrieving player statistics")
		return
	}

	response(w, http.StatusOK, stats)
}

// JoinTable seats a player at a table, creating a game if none is open
func (h *Handlers) JoinTable(w http.ResponseWriter, r *http.Request) {
	tableID := mux.Vars(r)["id"]

	var req struct {
		PlayerID   string `json:"playerId"`
		PlayerName string `json:"playerName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	g, err := h.store.GetActiveTableGame(tableID)
	if err != nil {
		// No open game for this table; start a default two-seat one.
		g, err = game.NewCasinoGame(tableID, 2, true, nil, game.Rules{})
		if err != nil {
			errorResponse(w, http.StatusInternalServerError, "Failed to create game")
			return
		}
		h.store.SaveGame(g)
	}

	name := req.PlayerName
	if h.database != nil {
		if record, err := h.database.GetPlayerByID(req.PlayerID); err == nil && record != nil && name == "" {
			name = record.Name
		}
	}

	player, err := g.AddPlayer(req.PlayerID, name)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.SaveGame(g); err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to update game")
		return
	}

	if h.hub != nil {
		h.hub.BroadcastToTable(tableID, Message{
			Type:     "playerJoined",
			GameID:   g.ID,
			TableID:  tableID,
			PlayerID: req.PlayerID,
			Data:     map[string]string{"id": player.ID, "name": player.Name},
		})
	}

	response(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"game":    g.GetGameState(req.PlayerID),
	})
}

// LeaveTable removes a player from a table's open game
func (h *Handlers) LeaveTable(w http.ResponseWriter, r *http.Request) {
	tableID := mux.Vars(r)["id"]

	var req struct {
		PlayerID string `json:"playerId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	g, err := h.store.GetActiveTableGame(tableID)
	if err != nil {
		errorResponse(w, http.StatusNotFound, "No active game found for table")
		return
	}

	if !g.RemovePlayer(req.PlayerID) {
		errorResponse(w, http.StatusBadRequest, "Player cannot leave this game")
		return
	}

	if err := h.store.SaveGame(g); err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to update game")
		return
	}

	if h.hub != nil {
		h.hub.BroadcastToTable(tableID, Message{
			Type:     "playerLeft",
			TableID:  tableID,
			PlayerID: req.PlayerID,
		})
	}

	response(w, http.StatusOK, map[string]string{
		"success": "true",
		"message": "Successfully left table",
	})
}

// ListTables returns a list of tables with their open or latest game
func (h *Handlers) ListTables(w http.ResponseWriter, r *http.Request) {
	allGames, err := h.store.GetAllGames()
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Error retrieving tables")
		return
	}

	tables := make(map[string]map[string]interface{})
	for _, g := range allGames {
		if activeGame, _ := h.store.GetActiveTableGame(g.TableID); activeGame != nil && activeGame.ID != g.ID {
			continue
		}

		tables[g.TableID] = map[string]interface{}{
			"id":          g.TableID,
			"seats":       g.Seats,
			"playerCount": len(g.Players),
			"phase":       g.Phase,
			"currentGame": g.ID,
			"lastUpdated": g.UpdatedAt.Format(time.RFC3339),
		}
	}

	tablesList := make([]map[string]interface{}, 0, len(tables))
	for _, tableInfo := range tables {
		tablesList = append(tablesList, tableInfo)
	}

	response(w, http.StatusOK, tablesList)
}
