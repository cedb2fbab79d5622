package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/gridclash/gridclash-server-go/internal/game"
	"github.com/gridclash/gridclash-server-go/internal/game/rules"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // spectator feed, no origin restriction
	},
}

// WSMessage is the envelope for everything sent to spectators.
type WSMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Client is one connected spectator.
type Client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans game events and state snapshots out to connected spectators.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	logger     *zap.Logger
}

// NewHub creates an idle hub. Call Run in a goroutine to start it.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run owns the client set. It loops until the hub's process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Info("spectator connected", zap.Int("clients", len(h.clients)))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Info("spectator disconnected", zap.Int("clients", len(h.clients)))
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// Broadcast queues a message for every connected spectator.
func (h *Hub) Broadcast(msgType string, data any) {
	payload, err := json.Marshal(WSMessage{Type: msgType, Data: data})
	if err != nil {
		h.logger.Error("failed to marshal broadcast", zap.String("type", msgType), zap.Error(err))
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn("broadcast channel full, dropping message", zap.String("type", msgType))
	}
}

// Attach subscribes the hub to a game's events. Every event goes out as
// a "game_event" message and the turn boundaries additionally carry a
// full "game_state" snapshot.
func (h *Hub) Attach(g *game.Game) {
	g.Events().Subscribe(func(e rules.Event) {
		h.Broadcast("game_event", e)
		switch e.Type {
		case rules.EventTurnStarted, rules.EventGameStarted, rules.EventGameEnded:
			h.Broadcast("game_state", g.Snapshot())
		}
	})
}

// ServeWS upgrades an HTTP request into a spectator connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		conn: conn,
		send: make(chan []byte, 256),
	}
	h.register <- client

	go client.writePump()
	go client.readPump(h)
}

// readPump drains incoming frames. Spectators send nothing meaningful,
// reading just detects disconnects.
func (c *Client) readPump(hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			break
		}
	}
}

// ListenAndServe mounts the spectator endpoint and blocks serving it.
func ListenAndServe(addr string, hub *Hub, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)

	logger.Info("websocket spectator feed listening", zap.String("address", addr))
	return http.ListenAndServe(addr, mux)
}
