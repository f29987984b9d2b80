package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/anhbaysgalan1/balatro/internal/models"
	"github.com/go-redis/redis/v8"
)

// RedisCache provides caching for saved runs and leaderboard pages
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache instance
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client: client,
	}
}

const (
	// Cache key prefixes
	gameStateCachePrefix = "game_state:"
	highscorePagePrefix  = "highscores:page:"
	highscoreVersionKey  = "highscores:version"

	// Cache TTL durations
	gameStateTTL     = 1 * time.Hour
	highscorePageTTL = 5 * time.Minute
)

// Game State Caching

// SetGameState caches a user's saved run document
func (rc *RedisCache) SetGameState(ctx context.Context, userID string, document []byte) error {
	key := gameStateCachePrefix + userID

	if err := rc.client.Set(ctx, key, document, gameStateTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache game state: %w", err)
	}

	return nil
}

// GetGameState retrieves a cached run document
func (rc *RedisCache) GetGameState(ctx context.Context, userID string) ([]byte, error) {
	key := gameStateCachePrefix + userID

	data, err := rc.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get cached game state: %w", err)
	}

	return data, nil
}

// InvalidateGameState removes a cached run document
func (rc *RedisCache) InvalidateGameState(ctx context.Context, userID string) error {
	return rc.client.Del(ctx, gameStateCachePrefix+userID).Err()
}

// Leaderboard Caching

// Page keys embed a version counter; bumping it orphans every cached page,
// which then expire on their own.
func (rc *RedisCache) pageKey(ctx context.Context, limit, offset int, userID string) (string, error) {
	version, err := rc.client.Get(ctx, highscoreVersionKey).Int64()
	if err != nil && err != redis.Nil {
		return "", fmt.Errorf("failed to get leaderboard version: %w", err)
	}
	return fmt.Sprintf("%s%d:%d:%d:%s", highscorePagePrefix, version, limit, offset, userID), nil
}

// SetHighscorePage caches one leaderboard page
func (rc *RedisCache) SetHighscorePage(ctx context.Context, limit, offset int, userID string, page *models.HighscorePage) error {
	key, err := rc.pageKey(ctx, limit, offset, userID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("failed to marshal highscore page: %w", err)
	}

	if err := rc.client.Set(ctx, key, data, highscorePageTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache highscore page: %w", err)
	}

	return nil
}

// GetHighscorePage retrieves a cached leaderboard page
func (rc *RedisCache) GetHighscorePage(ctx context.Context, limit, offset int, userID string) (*models.HighscorePage, error) {
	key, err := rc.pageKey(ctx, limit, offset, userID)
	if err != nil {
		return nil, err
	}

	data, err := rc.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get cached highscore page: %w", err)
	}

	var page models.HighscorePage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("failed to unmarshal highscore page: %w", err)
	}

	return &page, nil
}

// InvalidateHighscores drops every cached leaderboard page
func (rc *RedisCache) InvalidateHighscores(ctx context.Context) error {
	return rc.client.Incr(ctx, highscoreVersionKey).Err()
}

// Utility Methods

// Ping checks the Redis connection
func (rc *RedisCache) Ping(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// GetCacheStats returns basic cache statistics
func (rc *RedisCache) GetCacheStats(ctx context.Context) (map[string]interface{}, error) {
	dbSize, err := rc.client.DBSize(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get Redis DB size: %w", err)
	}

	version, err := rc.client.Get(ctx, highscoreVersionKey).Int64()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get leaderboard version: %w", err)
	}

	stats := map[string]interface{}{
		"db_size":             dbSize,
		"leaderboard_version": version,
	}

	return stats, nil
}
