package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/calvinwijaya/casino-be/internal/game"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now, customize this in production
	},
}

// Message represents a WebSocket message
type Message struct {
	Type     string      `json:"type"`
	GameID   string      `json:"gameId,omitempty"`
	TableID  string      `json:"tableId,omitempty"`
	PlayerID string      `json:"playerId,omitempty"`
	Data     interface{} `json:"data,omitempty"`
}

// Client represents a connected WebSocket client
type Client struct {
	conn     *websocket.Conn
	send     chan []byte
	tableID  string
	playerID string
	hub      *Hub
}

// Hub maintains the set of active clients, grouped per table
type Hub struct {
	register   chan *Client
	unregister chan *Client
	tables     map[string]map[*Client]bool
	mu         sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		tables:     make(map[string]map[*Client]bool),
	}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if _, exists := h.tables[client.tableID]; !exists {
				h.tables[client.tableID] = make(map[*Client]bool)
			}
			h.tables[client.tableID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.tables[client.tableID]; ok {
				if clients[client] {
					delete(clients, client)
					close(client.send)
				}
				if len(clients) == 0 {
					delete(h.tables, client.tableID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToTable sends a message to every client watching a table
func (h *Hub) BroadcastToTable(tableID string, message Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.tables[tableID] {
		select {
		case client.send <- data:
		default:
			// Slow client; it will be dropped when its write fails.
		}
	}
}

// BroadcastGameUpdate sends each client at the table its own sanitized view
// of the game: a player sees their hand, everyone else's pile top only.
func (h *Hub) BroadcastGameUpdate(g *game.CasinoGame) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.tables[g.TableID] {
		msg := Message{
			Type:    "gameUpdate",
			GameID:  g.ID,
			TableID: g.TableID,
			Data:    g.GetGameState(client.playerID),
		}

		data, err := json.Marshal(msg)
		if err != nil {
			log.Printf("Error marshaling game update: %v", err)
			continue
		}

		select {
		case client.send <- data:
		default:
		}
	}
}

// WebSocketHandler upgrades the connection and attaches it to a table room
func (h *Hub) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	client := &Client{
		conn:     conn,
		send:     make(chan []byte, 256),
		tableID:  r.URL.Query().Get("tableId"),
		playerID: r.URL.Query().Get("playerId"),
		hub:      h,
	}
	h.register <- client

	welcome, _ := json.Marshal(Message{
		Type:     "welcome",
		TableID:  client.tableID,
		PlayerID: client.playerID,
	})
	client.send <- welcome

	go client.readPump()
	go client.writePump()
}

// readPump drains the connection until the client goes away. Moves arrive
// over the REST endpoints; the socket is one-way state push.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pushes queued messages and keeps the connection alive with pings
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
