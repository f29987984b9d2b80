package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/anhbaysgalan1/balatro/internal/database"
	"github.com/anhbaysgalan1/balatro/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlayerRepository stores guest accounts
type PlayerRepository struct {
	db *gorm.DB
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *gorm.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) Create(ctx context.Context, player *models.Player) error {
	if err := r.db.WithContext(ctx).Create(player).Error; err != nil {
		return fmt.Errorf("failed to create player: %w", database.Classify(err))
	}
	return nil
}

// FindByID returns the player, or nil if there is none
func (r *PlayerRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	var player models.Player
	err := r.db.WithContext(ctx).First(&player, "id = ?", id).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return &player, nil
}

// Touch updates the last seen timestamp
func (r *PlayerRepository) Touch(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Model(&models.Player{}).
		Where("id = ?", id).
		Update("last_seen_at", time.Now().UTC()).Error
	if err != nil {
		return fmt.Errorf("failed to touch player: %w", err)
	}
	return nil
}

// RecordRun counts a finished run and keeps the best score
func (r *PlayerRepository) RecordRun(ctx context.Context, id uuid.UUID, score int64) error {
	err := r.db.WithContext(ctx).Model(&models.Player{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"games_played": gorm.Expr("games_played + 1"),
			"best_score":   gorm.Expr("GREATEST(best_score, ?)", score),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}
