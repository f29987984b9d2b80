package engine

import (
	"context"

	"github.com/anhbaysgalan1/balatro/internal/engine/domain/events"
	"github.com/anhbaysgalan1/balatro/internal/models"
	"github.com/google/uuid"
)

// GameStateStore persists one saved run per user. Lookups return nil, nil
// when nothing is stored.
type GameStateStore interface {
	Upsert(ctx context.Context, state *models.PlayerState) error
	FindByUserID(ctx context.Context, userID string) (*models.PlayerState, error)
	DeleteByUserID(ctx context.Context, userID string) (bool, error)
}

// HighscoreStore persists finished runs and answers leaderboard queries
type HighscoreStore interface {
	Create(ctx context.Context, highscore *models.Highscore) error
	List(ctx context.Context, limit, offset int, userID string) (*models.HighscorePage, error)
	BestForUser(ctx context.Context, userID string) (*models.Highscore, error)
	Rank(ctx context.Context, highscore *models.Highscore) (int64, error)
}

// PlayerStore manages guest accounts
type PlayerStore interface {
	Create(ctx context.Context, player *models.Player) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Player, error)
	Touch(ctx context.Context, id uuid.UUID) error
	RecordRun(ctx context.Context, id uuid.UUID, score int64) error
}

// EventStore interface for persisting run events
type EventStore interface {
	SaveEvents(ctx context.Context, aggregateID uuid.UUID, events []events.DomainEvent, expectedVersion int64) error
	GetEvents(ctx context.Context, aggregateID uuid.UUID) ([]events.DomainEvent, error)
	GetEventsFromVersion(ctx context.Context, aggregateID uuid.UUID, version int64) ([]events.DomainEvent, error)
}

// Cache is the read-through cache in front of the stores. Getters return
// nil, nil on a miss.
type Cache interface {
	SetGameState(ctx context.Context, userID string, document []byte) error
	GetGameState(ctx context.Context, userID string) ([]byte, error)
	InvalidateGameState(ctx context.Context, userID string) error

	SetHighscorePage(ctx context.Context, limit, offset int, userID string, page *models.HighscorePage) error
	GetHighscorePage(ctx context.Context, limit, offset int, userID string) (*models.HighscorePage, error)
	InvalidateHighscores(ctx context.Context) error

	Ping(ctx context.Context) error
}
