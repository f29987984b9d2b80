package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/anhbaysgalan1/balatro/internal/models"
	"github.com/google/uuid"
)

type memoryGameStates struct {
	mu     sync.Mutex
	states map[string]models.PlayerState
}

func newMemoryGameStates() *memoryGameStates {
	return &memoryGameStates{states: make(map[string]models.PlayerState)}
}

func (m *memoryGameStates) Upsert(ctx context.Context, state *models.PlayerState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[state.UserID] = *state
	return nil
}

func (m *memoryGameStates) FindByUserID(ctx context.Context, userID string) (*models.PlayerState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.states[userID]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

func (m *memoryGameStates) DeleteByUserID(ctx context.Context, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.states[userID]
	delete(m.states, userID)
	return ok, nil
}

type memoryHighscores struct {
	mu        sync.Mutex
	scores    []models.Highscore
	lists     int
	createErr error
}

func (m *memoryHighscores) Create(ctx context.Context, highscore *models.Highscore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if highscore.ID == uuid.Nil {
		highscore.ID = uuid.New()
	}
	m.scores = append(m.scores, *highscore)
	return nil
}

func (m *memoryHighscores) List(ctx context.Context, limit, offset int, userID string) (*models.HighscorePage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++

	var matching []models.Highscore
	for _, h := range m.scores {
		if userID == "" || h.UserID == userID {
			matching = append(matching, h)
		}
	}
	sort.SliceStable(matching, func(i, j int) bool { return matching[i].Score > matching[j].Score })

	page := &models.HighscorePage{TotalCount: int64(len(matching)), Limit: limit, Offset: offset}
	if offset < len(matching) {
		end := offset + limit
		if end > len(matching) {
			end = len(matching)
		}
		page.Entries = matching[offset:end]
	}
	return page, nil
}

func (m *memoryHighscores) BestForUser(ctx context.Context, userID string) (*models.Highscore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *models.Highscore
	for i := range m.scores {
		if m.scores[i].UserID == userID && (best == nil || m.scores[i].Score > best.Score) {
			h := m.scores[i]
			best = &h
		}
	}
	return best, nil
}

func (m *memoryHighscores) Rank(ctx context.Context, highscore *models.Highscore) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rank int64 = 1
	for _, h := range m.scores {
		if h.Score > highscore.Score {
			rank++
		}
	}
	return rank, nil
}

type memoryPlayers struct {
	mu      sync.Mutex
	players map[uuid.UUID]models.Player
	touched int
}

func newMemoryPlayers() *memoryPlayers {
	return &memoryPlayers{players: make(map[uuid.UUID]models.Player)}
}

func (m *memoryPlayers) Create(ctx context.Context, player *models.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[player.ID] = *player
	return nil
}

func (m *memoryPlayers) FindByID(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	player, ok := m.players[id]
	if !ok {
		return nil, nil
	}
	return &player, nil
}

func (m *memoryPlayers) Touch(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touched++
	return nil
}

func (m *memoryPlayers) RecordRun(ctx context.Context, id uuid.UUID, score int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	player, ok := m.players[id]
	if !ok {
		return errors.New("player not found")
	}
	player.GamesPlayed++
	if score > player.BestScore {
		player.BestScore = score
	}
	m.players[id] = player
	return nil
}

type memoryCache struct {
	mu     sync.Mutex
	states map[string][]byte
	pages  map[string]*models.HighscorePage
}

func newMemoryCache() *memoryCache {
	return &memoryCache{states: make(map[string][]byte), pages: make(map[string]*models.HighscorePage)}
}

func pageKey(limit, offset int, userID string) string {
	return fmt.Sprintf("%s:%d:%d", userID, limit, offset)
}

func (c *memoryCache) SetGameState(ctx context.Context, userID string, document []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states[userID] = document
	return nil
}

func (c *memoryCache) GetGameState(ctx context.Context, userID string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.states[userID], nil
}

func (c *memoryCache) InvalidateGameState(ctx context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.states, userID)
	return nil
}

func (c *memoryCache) SetHighscorePage(ctx context.Context, limit, offset int, userID string, page *models.HighscorePage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[pageKey(limit, offset, userID)] = page
	return nil
}

func (c *memoryCache) GetHighscorePage(ctx context.Context, limit, offset int, userID string) (*models.HighscorePage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pages[pageKey(limit, offset, userID)], nil
}

func (c *memoryCache) InvalidateHighscores(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages = make(map[string]*models.HighscorePage)
	return nil
}

func (c *memoryCache) Ping(ctx context.Context) error { return nil }
