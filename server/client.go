package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/anhbaysgalan1/balatro/internal/engine/domain/game"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Client is a middleman between the websocket connection and the hub. It
// owns the player's live run; only readPump touches it.
type Client struct {
	hub         *Hub
	conn        *websocket.Conn // Websocket connection
	send        chan []byte     // Buffered channel of outbound bytes
	userID      string
	displayName string
	session     *game.Session // nil until a run is started or loaded
}

func newClient(conn *websocket.Conn, hub *Hub, userID, displayName string) *Client {
	return &Client{
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, 256),
		userID:      userID,
		displayName: displayName,
	}
}

func (c *Client) disconnect() {
	select {
	case c.hub.unregister <- c:
	case <-c.hub.done:
	}
	c.conn.Close()
}

// readPump is the only goroutine that reads from the connection, and so the
// only one that touches c.session.
func (c *Client) readPump() {
	defer c.disconnect()

	c.conn.SetReadLimit(maxMessageSize)
	extend := func() error { return c.conn.SetReadDeadline(time.Now().Add(pongWait)) }
	if err := extend(); err != nil {
		slog.Warn("Failed to set read deadline", "user_id", c.userID, "error", err)
	}
	c.conn.SetPongHandler(func(string) error { return extend() })

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("Websocket closed unexpectedly", "user_id", c.userID, "error", err)
			}
			return
		}
		if err := c.processEvents(message); err != nil {
			slog.Warn("Rejected websocket action", "user_id", c.userID, "error", err)
			c.sendError(err.Error())
		}
	}
}

// writePump is the only goroutine that writes to the connection. It drains
// c.send and keeps the peer alive with pings.
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
				// Hub dropped the client
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				slog.Warn("Failed to write websocket message", "user_id", c.userID, "error", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				slog.Debug("Websocket ping failed", "user_id", c.userID, "error", err)
				return
			}
		}
	}
}

func (c *Client) processEvents(rawMessage []byte) error {
	var baseMessage base
	if err := json.Unmarshal(rawMessage, &baseMessage); err != nil {
		return err
	}

	if baseMessage.Action == "" {
		return errors.New("deserialize message")
	}

	switch baseMessage.Action {

	case actionNewGame:
		var msg newGame
		if err := json.Unmarshal(rawMessage, &msg); err != nil {
			return err
		}
		return handleNewGame(c, msg)

	case actionPlayHand, actionDiscard, actionPreviewHand:
		var msg selectCards
		if err := json.Unmarshal(rawMessage, &msg); err != nil {
			return err
		}
		switch baseMessage.Action {
		case actionPlayHand:
			return handlePlayHand(c, msg.CardIDs)
		case actionDiscard:
			return handleDiscard(c, msg.CardIDs)
		default:
			return handlePreviewHand(c, msg.CardIDs)
		}

	case actionUseTarot:
		var msg useTarot
		if err := json.Unmarshal(rawMessage, &msg); err != nil {
			return err
		}
		return handleUseTarot(c, msg)

	case actionBuyItem, actionSellJoker, actionToggleJoker:
		var msg slotAction
		if err := json.Unmarshal(rawMessage, &msg); err != nil {
			return err
		}
		switch baseMessage.Action {
		case actionBuyItem:
			return handleBuyItem(c, msg.Index)
		case actionSellJoker:
			return handleSellJoker(c, msg.Index)
		default:
			return handleToggleJoker(c, msg.Index)
		}

	case actionRerollShop:
		return handleRerollShop(c)

	case actionLeaveShop:
		return handleLeaveShop(c)

	case actionSaveGame:
		return handleSaveGame(c)

	case actionLoadGame:
		return handleLoadGame(c)

	case actionSubmitHighscore:
		var msg submitHighscore
		if err := json.Unmarshal(rawMessage, &msg); err != nil {
			return err
		}
		return handleSubmitHighscore(c, msg)

	case actionRunHistory:
		return handleRunHistory(c)

	default:
		return errors.New("unexpected message action")
	}
}

// ServeWs upgrades an authenticated request into a game connection
func ServeWs(hub *Hub, upgrader *websocket.Upgrader, w http.ResponseWriter, r *http.Request, userID, displayName string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Default().Warn("Websocket upgrade", "error", err)
		return
	}
	client := newClient(conn, hub, userID, displayName)

	select {
	case client.hub.register <- client:
	case <-client.hub.done:
		conn.Close()
		return
	}

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.writePump()
	go client.readPump()
}

// NewUpgrader accepts websocket origins from the CORS allow list. An empty
// list or "*" accepts any origin.
func NewUpgrader(allowedOrigins []string) *websocket.Upgrader {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || len(allowed) == 0 || allowed["*"] || allowed[origin]
		},
	}
}
