package server

import (
	"context"
	"log/slog"

	"github.com/anhbaysgalan1/balatro/internal/application/dto"
	"github.com/anhbaysgalan1/balatro/internal/application/handlers"
	"github.com/anhbaysgalan1/balatro/internal/models"
	"github.com/go-redis/redis/v8"
)

// leaderboardChannel carries new highscores between server instances
const leaderboardChannel = "balatro:leaderboard"

// GameStore saves and loads a user's run
type GameStore interface {
	Save(ctx context.Context, state dto.GameState) (*dto.SaveGameStateResult, error)
	Load(ctx context.Context, userID string) (*dto.GameState, error)
}

// Scoreboard records finished runs
type Scoreboard interface {
	Submit(ctx context.Context, req dto.CreateHighscoreRequest) (*models.Highscore, error)
}

// Hub maintains the set of active clients and broadcasts leaderboard
// changes to them. Each client owns its own run.
type Hub struct {
	rdb        *redis.Client
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	commands   *handlers.CommandHandler
	queries    *handlers.QueryHandler
	games      GameStore
	scores     Scoreboard
}

// NewHub creates a hub. rdb may be nil, in which case leaderboard updates
// only reach clients of this instance.
func NewHub(commands *handlers.CommandHandler, queries *handlers.QueryHandler, games GameStore, scores Scoreboard, rdb *redis.Client) *Hub {
	return &Hub{
		rdb:        rdb,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		commands:   commands,
		queries:    queries,
		games:      games,
		scores:     scores,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToLeaderboard()
	}
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case message := <-h.broadcast:
			h.broadcastToClients(message)
		case <-h.done:
			for client := range h.clients {
				h.unregisterClient(client)
			}
			return
		}
	}
}

// Stop ends Run and closes every client's send channel
func (h *Hub) Stop() {
	close(h.done)
}

func (h *Hub) registerClient(client *Client) {
	h.clients[client] = true
}

func (h *Hub) unregisterClient(client *Client) {
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
}

func (h *Hub) broadcastToClients(message []byte) {
	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			close(client.send)
			delete(h.clients, client)
		}
	}
}

// publishLeaderboard announces a new highscore to every connected client
func (h *Hub) publishLeaderboard(message []byte) {
	if h.rdb != nil {
		err := h.rdb.Publish(context.Background(), leaderboardChannel, message).Err()
		if err == nil {
			return
		}
		slog.Warn("Publish leaderboard update", "error", err)
	}
	select {
	case h.broadcast <- message:
	case <-h.done:
	}
}

func (h *Hub) subscribeToLeaderboard() {
	pubsub := h.rdb.Subscribe(context.Background(), leaderboardChannel)
	defer pubsub.Close()
	ch := pubsub.Channel()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			select {
			case h.broadcast <- []byte(msg.Payload):
			case <-h.done:
				return
			}
		case <-h.done:
			return
		}
	}
}
