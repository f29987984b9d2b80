package engine

import (
	"fmt"

	"github.com/anhbaysgalan1/balatro/internal/engine/repositories"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// Stores bundles the persistence backends used by the services
type Stores struct {
	GameStates GameStateStore
	Highscores HighscoreStore
	Players    PlayerStore
	Events     EventStore
	Cache      Cache
}

// NewStores creates the stores without Redis
func NewStores(db *gorm.DB) (*Stores, error) {
	return NewStoresWithRedis(db, nil)
}

// NewStoresWithRedis creates the stores with Redis caching
func NewStoresWithRedis(db *gorm.DB, redisClient *redis.Client) (*Stores, error) {
	// Initialize event store
	eventStore := repositories.NewPostgreSQLEventStore(db)

	// Migrate event store tables
	if err := eventStore.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate event store: %w", err)
	}

	stores := &Stores{
		GameStates: repositories.NewGameStateRepository(db),
		Highscores: repositories.NewHighscoreRepository(db),
		Players:    repositories.NewPlayerRepository(db),
		Events:     eventStore,
	}

	// Initialize Redis cache if client is provided
	if redisClient != nil {
		stores.Cache = repositories.NewRedisCache(redisClient)
	}

	return stores, nil
}
