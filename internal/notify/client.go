// internal/notify/client.go
package notify

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Client is one websocket connection subscribed to one trip's events.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan Event
	userID string
	tripID int64
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The browser client is served from the same origin in deployment; CORS
	// for the API surface is handled upstream.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades requests on /ws?trip=<id> and pumps trip events to the
// connection until it closes.
type Handler struct {
	hub    *Hub
	logger *slog.Logger
	// userFromContext resolves the authenticated user id; wired to the auth
	// middleware accessor so this package stays free of middleware imports.
	userFromContext func(r *http.Request) (string, bool)
}

// NewHandler creates a websocket handler backed by the given hub.
func NewHandler(hub *Hub, logger *slog.Logger, userFromContext func(r *http.Request) (string, bool)) *Handler {
	return &Handler{hub: hub, logger: logger, userFromContext: userFromContext}
}

// ServeWS handles a websocket upgrade request.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userFromContext(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	tripID, err := strconv.ParseInt(r.URL.Query().Get("trip"), 10, 64)
	if err != nil || tripID <= 0 {
		http.Error(w, "trip parameter is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		send:   make(chan Event, 32),
		userID: userID,
		tripID: tripID,
	}
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump drains and discards inbound frames so control messages (pongs,
// closes) are processed; this is a broadcast-only channel.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump forwards hub events to the connection and keeps it alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case event, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
